package study

import (
	"fmt"
	"strings"
)

/*
TaskType selects what kind of content the endpoint generates for a topic.
The string value is what goes over the wire as task_type.
*/
type TaskType string

const (
	TaskExplain TaskType = "explain"
	TaskQuiz    TaskType = "quiz"
	TaskNotes   TaskType = "notes"
)

// Tasks lists every task type in tab order.
var Tasks = []TaskType{TaskExplain, TaskQuiz, TaskNotes}

/*
TaskInfo carries the presentation text attached to a task type.
*/
type TaskInfo struct {
	Tab     string
	Prompt  string
	Feature string
	Blurb   string
}

var taskInfo = map[TaskType]TaskInfo{
	TaskExplain: {
		Tab:     "Explain Concept",
		Prompt:  "What concept would you like explained?",
		Feature: "Simple Explanations",
		Blurb:   "Get complex topics explained in easy-to-understand language",
	},
	TaskQuiz: {
		Tab:     "Generate Quiz",
		Prompt:  "Generate quiz questions for:",
		Feature: "Practice Quizzes",
		Blurb:   "Test your knowledge with AI-generated quiz questions",
	},
	TaskNotes: {
		Tab:     "Study Notes",
		Prompt:  "Create study notes for:",
		Feature: "Study Materials",
		Blurb:   "Generate comprehensive notes for any subject",
	},
}

// Valid reports whether t is one of the known task types.
func (t TaskType) Valid() bool {
	_, ok := taskInfo[t]
	return ok
}

func (t TaskType) Info() TaskInfo { return taskInfo[t] }

func (t TaskType) String() string { return string(t) }

/*
Next returns the task after t in tab order, wrapping around. Prev is the
inverse.
*/
func (t TaskType) Next() TaskType { return t.shift(1) }

func (t TaskType) Prev() TaskType { return t.shift(len(Tasks) - 1) }

func (t TaskType) shift(n int) TaskType {
	for i, task := range Tasks {
		if task == t {
			return Tasks[(i+n)%len(Tasks)]
		}
	}
	return TaskExplain
}

/*
ParseTaskType maps a wire value such as "quiz" to its TaskType.
*/
func ParseTaskType(s string) (TaskType, error) {
	t := TaskType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown task type %q (want one of explain, quiz, notes)", s)
	}
	return t, nil
}
