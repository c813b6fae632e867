package errors

import (
	stderrors "errors"
	"fmt"
)

/*
Kind names the class of failure a generation call ended in. Every kind
collapses to the same user-facing message; the kind only travels to the
diagnostic log.
*/
type Kind string

const (
	KindTransport Kind = "transport"
	KindStatus    Kind = "status"
	KindDecode    Kind = "decode"
	KindUnknown   Kind = "unknown"
)

// Error types for calls against the generation endpoint.
type (
	// TransportError means the request never produced an HTTP response.
	TransportError struct {
		URL string
		Err error
	}

	// StatusError means the endpoint answered with a non-2xx status.
	StatusError struct {
		StatusCode int
		Body       string
	}

	// DecodeError means a 2xx body did not have the expected shape.
	DecodeError struct {
		Message string
		Err     error
	}
)

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to reach generation endpoint %q: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("failed to reach generation endpoint %q", e.URL)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("generation endpoint returned status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("generation endpoint returned status %d", e.StatusCode)
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to decode generation response: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("failed to decode generation response: %s", e.Message)
}

func (e *DecodeError) Unwrap() error { return e.Err }

/*
KindOf classifies err by the first generation error found in its chain.
*/
func KindOf(err error) Kind {
	var (
		transportErr *TransportError
		statusErr    *StatusError
		decodeErr    *DecodeError
	)

	switch {
	case stderrors.As(err, &transportErr):
		return KindTransport
	case stderrors.As(err, &statusErr):
		return KindStatus
	case stderrors.As(err, &decodeErr):
		return KindDecode
	}

	return KindUnknown
}

/*
StatusOf returns the HTTP status carried by err, or 0 when the failure
happened before a status was received.
*/
func StatusOf(err error) int {
	var statusErr *StatusError
	if stderrors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}
