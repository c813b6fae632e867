package study

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/theapemachine/study-assistant/pkg/errors"
)

// FailureMessage is the only failure text a user ever sees.
const FailureMessage = "Failed to generate content. Please try again."

/*
Phase is the status of the most recent submission.
*/
type Phase int

const (
	Idle Phase = iota
	Pending
	Succeeded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

/*
Request is the value sent to the generation endpoint. It is captured when a
submission is accepted, so later edits to the session never reach it.
*/
type Request struct {
	Topic    string   `json:"topic"`
	TaskType TaskType `json:"task_type"`
}

/*
Generator produces content for a request. The HTTP client satisfies it in
production; tests pass a GeneratorFunc.
*/
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func(ctx context.Context, req Request) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

/*
Outcome is the completion event of one submission. Exactly one of Result
and Err is meaningful: Err == nil means success.
*/
type Outcome struct {
	Seq     uint64
	Request Request
	Result  string
	Err     error
}

/*
State is a read-only copy of the session for renderers.
*/
type State struct {
	ActiveTask   TaskType
	Input        string
	Phase        Phase
	Result       string
	ErrorMessage string
}

// HasResult reports whether Result is present.
func (s State) HasResult() bool { return s.Phase == Succeeded }

// HasError reports whether ErrorMessage is present.
func (s State) HasError() bool { return s.Phase == Failed }

/*
Session is the controller for one study interaction cycle. It owns all
mutable state and is driven by a single logical thread: the UI event loop
or a sequential caller. Generate is the only method that may run elsewhere,
and it touches no session state.
*/
type Session struct {
	ID        string
	generator Generator
	logger    *log.Logger

	activeTask TaskType
	input      string
	phase      Phase
	result     string
	seq        uint64
}

type Option func(*Session)

// WithLogger routes diagnostics to logger instead of the default logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

/*
NewSession creates a session in the Idle phase with the explain task active.
*/
func NewSession(generator Generator, opts ...Option) *Session {
	session := &Session{
		ID:         uuid.NewString(),
		generator:  generator,
		logger:     log.Default(),
		activeTask: TaskExplain,
		phase:      Idle,
	}

	for _, opt := range opts {
		opt(session)
	}

	session.logger = session.logger.With("session", session.ID)
	return session
}

/*
SelectTask switches the active task. A prior result or error and the topic
stay as they are.
*/
func (s *Session) SelectTask(task TaskType) {
	if !task.Valid() {
		s.logger.Warn("ignoring unknown task type", "task", task)
		return
	}
	s.activeTask = task
}

// SetInput stores the topic text exactly as typed.
func (s *Session) SetInput(text string) {
	s.input = text
}

/*
Submit starts a generation if the topic is not blank and nothing is in
flight. On acceptance the session moves to Pending, drops any previous
result or error, and returns the captured request. Otherwise it returns
false and nothing changes.
*/
func (s *Session) Submit() (Request, bool) {
	if strings.TrimSpace(s.input) == "" {
		s.logger.Debug("blank topic, submission skipped")
		return Request{}, false
	}

	if s.phase == Pending {
		s.logger.Debug("submission already in flight", "seq", s.seq)
		return Request{}, false
	}

	s.seq++
	s.phase = Pending
	s.result = ""

	req := Request{Topic: s.input, TaskType: s.activeTask}
	s.logger.Info("submitting", "seq", s.seq, "task", req.TaskType, "topic", req.Topic)

	return req, true
}

/*
Seq is the sequence number of the latest accepted submission.
*/
func (s *Session) Seq() uint64 { return s.seq }

/*
Generate runs req against the generator and wraps the answer in an Outcome
stamped with seq. Failures are logged here with full detail, since the
session itself only keeps the fixed user message.
*/
func (s *Session) Generate(ctx context.Context, seq uint64, req Request) Outcome {
	ctx, span := otel.Tracer("study-assistant/study").Start(ctx, "study.generate")
	defer span.End()

	span.SetAttributes(
		attribute.String("study.session", s.ID),
		attribute.String("study.task_type", req.TaskType.String()),
		attribute.Int64("study.seq", int64(seq)),
	)

	result, err := s.generator.Generate(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(errors.KindOf(err)))

		s.logger.Error(
			"generation failed",
			"seq", seq,
			"task", req.TaskType,
			"kind", errors.KindOf(err),
			"status", errors.StatusOf(err),
			"error", err,
		)

		return Outcome{Seq: seq, Request: req, Err: err}
	}

	s.logger.Info("generation succeeded", "seq", seq, "task", req.TaskType, "bytes", len(result))
	return Outcome{Seq: seq, Request: req, Result: result}
}

/*
Resolve applies the outcome of the pending submission. Outcomes that do not
belong to it are dropped.
*/
func (s *Session) Resolve(outcome Outcome) {
	if s.phase != Pending || outcome.Seq != s.seq {
		s.logger.Warn("dropping stale outcome", "seq", outcome.Seq, "current", s.seq, "phase", s.phase)
		return
	}

	if outcome.Err != nil {
		s.phase = Failed
		s.result = ""
		return
	}

	s.phase = Succeeded
	s.result = outcome.Result
}

/*
Run is Submit, Generate and Resolve in sequence, for callers without an
event loop. It reports whether a request was issued.
*/
func (s *Session) Run(ctx context.Context) bool {
	req, ok := s.Submit()
	if !ok {
		return false
	}

	s.Resolve(s.Generate(ctx, s.seq, req))
	return true
}

func (s *Session) ActiveTask() TaskType { return s.activeTask }

func (s *Session) Input() string { return s.input }

func (s *Session) Phase() Phase { return s.phase }

// Busy reports whether the submit affordance must be disabled.
func (s *Session) Busy() bool { return s.phase == Pending }

func (s *Session) Result() (string, bool) {
	if s.phase != Succeeded {
		return "", false
	}
	return s.result, true
}

func (s *Session) ErrorMessage() (string, bool) {
	if s.phase != Failed {
		return "", false
	}
	return FailureMessage, true
}

func (s *Session) Snapshot() State {
	state := State{
		ActiveTask: s.activeTask,
		Input:      s.input,
		Phase:      s.phase,
	}

	state.Result, _ = s.Result()
	state.ErrorMessage, _ = s.ErrorMessage()

	return state
}
