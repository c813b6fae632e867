package study

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/theapemachine/study-assistant/pkg/errors"
)

type fakeGenerator struct {
	calls  []Request
	result string
	err    error
}

func (f *fakeGenerator) Generate(_ context.Context, req Request) (string, error) {
	f.calls = append(f.calls, req)
	return f.result, f.err
}

func newTestSession(gen Generator) (*Session, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := log.New(buf)
	logger.SetLevel(log.DebugLevel)
	return NewSession(gen, WithLogger(logger)), buf
}

func TestNewSession(t *testing.T) {
	Convey("Given a new session", t, func() {
		session, _ := newTestSession(&fakeGenerator{})

		Convey("It should start idle on the explain task", func() {
			So(session.ID, ShouldNotBeEmpty)
			So(session.Phase(), ShouldEqual, Idle)
			So(session.ActiveTask(), ShouldEqual, TaskExplain)
			So(session.Input(), ShouldBeEmpty)
			So(session.Busy(), ShouldBeFalse)

			_, hasResult := session.Result()
			_, hasError := session.ErrorMessage()
			So(hasResult, ShouldBeFalse)
			So(hasError, ShouldBeFalse)
		})
	})
}

func TestSubmit(t *testing.T) {
	Convey("Given a session with a successful endpoint", t, func() {
		gen := &fakeGenerator{result: "Photosynthesis is..."}
		session, _ := newTestSession(gen)

		Convey("When the topic is Photosynthesis and the task is explain", func() {
			session.SetInput("Photosynthesis")
			issued := session.Run(context.Background())

			Convey("Then the session should succeed with the result", func() {
				So(issued, ShouldBeTrue)
				So(session.Phase(), ShouldEqual, Succeeded)

				result, ok := session.Result()
				So(ok, ShouldBeTrue)
				So(result, ShouldEqual, "Photosynthesis is...")

				_, hasError := session.ErrorMessage()
				So(hasError, ShouldBeFalse)
				So(gen.calls, ShouldResemble, []Request{{Topic: "Photosynthesis", TaskType: TaskExplain}})
			})
		})

		Convey("When the topic is empty or whitespace", func() {
			for _, topic := range []string{"", "   ", "\t\n"} {
				session.SetInput(topic)
				_, ok := session.Submit()
				So(ok, ShouldBeFalse)
			}

			Convey("Then no request is sent and the phase is unchanged", func() {
				So(session.Phase(), ShouldEqual, Idle)
				So(gen.calls, ShouldBeEmpty)
				So(session.Run(context.Background()), ShouldBeFalse)
				So(gen.calls, ShouldBeEmpty)
			})
		})

		Convey("When the topic has surrounding whitespace", func() {
			session.SetInput("  Recursion  ")
			req, ok := session.Submit()

			Convey("Then the topic is sent untrimmed", func() {
				So(ok, ShouldBeTrue)
				So(req.Topic, ShouldEqual, "  Recursion  ")
			})
		})
	})

	Convey("Given a session whose endpoint returns 500", t, func() {
		gen := &fakeGenerator{err: &errors.StatusError{StatusCode: 500, Body: "internal"}}
		session, logs := newTestSession(gen)

		Convey("When submitting Recursion as a quiz", func() {
			session.SetInput("Recursion")
			session.SelectTask(TaskQuiz)
			session.Run(context.Background())

			Convey("Then the session fails with the fixed message", func() {
				So(session.Phase(), ShouldEqual, Failed)

				msg, ok := session.ErrorMessage()
				So(ok, ShouldBeTrue)
				So(msg, ShouldEqual, "Failed to generate content. Please try again.")

				_, hasResult := session.Result()
				So(hasResult, ShouldBeFalse)
			})

			Convey("Then the technical detail goes to the log only", func() {
				So(logs.String(), ShouldContainSubstring, "generation failed")
				So(logs.String(), ShouldContainSubstring, "500")

				msg, _ := session.ErrorMessage()
				So(msg, ShouldNotContainSubstring, "500")
			})
		})
	})
}

func TestPendingLifecycle(t *testing.T) {
	Convey("Given a session that already succeeded", t, func() {
		gen := &fakeGenerator{result: "first"}
		session, _ := newTestSession(gen)
		session.SetInput("Graphs")
		session.Run(context.Background())
		So(session.Phase(), ShouldEqual, Succeeded)

		Convey("When a new submission starts", func() {
			req, ok := session.Submit()

			Convey("Then it is pending with both outcome fields cleared", func() {
				So(ok, ShouldBeTrue)
				So(req.Topic, ShouldEqual, "Graphs")
				So(session.Phase(), ShouldEqual, Pending)
				So(session.Busy(), ShouldBeTrue)

				state := session.Snapshot()
				So(state.HasResult(), ShouldBeFalse)
				So(state.HasError(), ShouldBeFalse)
				So(state.Result, ShouldBeEmpty)
				So(state.ErrorMessage, ShouldBeEmpty)
			})

			Convey("Then a second submission is refused", func() {
				_, again := session.Submit()
				So(again, ShouldBeFalse)
				So(session.Seq(), ShouldEqual, uint64(2))
			})
		})
	})

	Convey("Given a session that failed", t, func() {
		gen := &fakeGenerator{err: &errors.TransportError{URL: "http://unreachable/generate"}}
		session, _ := newTestSession(gen)
		session.SetInput("Graphs")
		session.Run(context.Background())
		So(session.Phase(), ShouldEqual, Failed)

		Convey("When the user submits again against a healthy endpoint", func() {
			gen.err = nil
			gen.result = "Graphs are..."
			req, ok := session.Submit()

			So(ok, ShouldBeTrue)
			_, hasError := session.ErrorMessage()
			So(hasError, ShouldBeFalse)

			session.Resolve(session.Generate(context.Background(), session.Seq(), req))

			Convey("Then the new result replaces the error", func() {
				So(session.Phase(), ShouldEqual, Succeeded)
				result, _ := session.Result()
				So(result, ShouldEqual, "Graphs are...")
				So(len(gen.calls), ShouldEqual, 2)
			})
		})
	})
}

func TestRequestCapture(t *testing.T) {
	Convey("Given a pending quiz submission about Binary Search Trees", t, func() {
		gen := &fakeGenerator{result: "Q1..."}
		session, _ := newTestSession(gen)
		session.SetInput("Binary Search Trees")
		session.SelectTask(TaskQuiz)

		req, ok := session.Submit()
		So(ok, ShouldBeTrue)
		seq := session.Seq()

		Convey("When input and task change before the response", func() {
			session.SetInput("Something else")
			session.SelectTask(TaskNotes)
			session.Resolve(session.Generate(context.Background(), seq, req))

			Convey("Then the dispatched request keeps the original values", func() {
				So(gen.calls, ShouldResemble, []Request{{Topic: "Binary Search Trees", TaskType: TaskQuiz}})
				So(session.Phase(), ShouldEqual, Succeeded)
				So(session.Input(), ShouldEqual, "Something else")
				So(session.ActiveTask(), ShouldEqual, TaskNotes)
			})
		})
	})
}

func TestSelectTask(t *testing.T) {
	Convey("Given a session showing a result", t, func() {
		session, _ := newTestSession(&fakeGenerator{result: "Notes on cells"})
		session.SetInput("Cells")
		session.Run(context.Background())
		before := session.Snapshot()

		Convey("When switching through every task", func() {
			for _, task := range []TaskType{TaskNotes, TaskQuiz, TaskExplain, TaskNotes} {
				session.SelectTask(task)
			}

			Convey("Then only the active task changes", func() {
				after := session.Snapshot()
				So(after.ActiveTask, ShouldEqual, TaskNotes)
				So(after.Phase, ShouldEqual, before.Phase)
				So(after.Result, ShouldEqual, "Notes on cells")
				So(after.ErrorMessage, ShouldEqual, before.ErrorMessage)
				So(after.Input, ShouldEqual, before.Input)
			})
		})

		Convey("When selecting an unknown task", func() {
			session.SelectTask(TaskType("essay"))

			Convey("Then nothing changes", func() {
				So(session.Snapshot(), ShouldResemble, before)
			})
		})
	})
}

func TestResolve(t *testing.T) {
	Convey("Given a pending session", t, func() {
		session, _ := newTestSession(&fakeGenerator{})
		session.SetInput("Entropy")
		req, _ := session.Submit()

		Convey("When an outcome with an old sequence arrives", func() {
			session.Resolve(Outcome{Seq: session.Seq() - 1, Request: req, Result: "stale"})

			Convey("Then it is dropped", func() {
				So(session.Phase(), ShouldEqual, Pending)
			})
		})

		Convey("When the matching outcome arrives twice", func() {
			session.Resolve(Outcome{Seq: session.Seq(), Request: req, Result: "fresh"})
			session.Resolve(Outcome{Seq: session.Seq(), Request: req, Err: &errors.DecodeError{Message: "late"}})

			Convey("Then only the first applies", func() {
				So(session.Phase(), ShouldEqual, Succeeded)
				result, _ := session.Result()
				So(result, ShouldEqual, "fresh")
			})
		})
	})
}

func TestExclusiveOutcome(t *testing.T) {
	Convey("Given every reachable phase", t, func() {
		gen := &fakeGenerator{}
		session, _ := newTestSession(gen)

		check := func() {
			_, hasResult := session.Result()
			_, hasError := session.ErrorMessage()
			So(hasResult && hasError, ShouldBeFalse)
		}

		check()
		session.SetInput("Topic")
		req, _ := session.Submit()
		check()
		session.Resolve(Outcome{Seq: session.Seq(), Request: req, Result: "ok"})
		check()
		req, _ = session.Submit()
		session.Resolve(Outcome{Seq: session.Seq(), Request: req, Err: &errors.StatusError{StatusCode: 404}})
		check()
		session.SelectTask(TaskQuiz)
		check()
	})
}
