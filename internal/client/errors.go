package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed call.
type Kind int

const (
	KindTransport    Kind = iota // request never got a response
	KindUnauthorized             // 401
	KindValidation               // other 4xx
	KindServer                   // 5xx
	KindDecode                   // response body was not the expected JSON
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindUnauthorized:
		return "unauthorized"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	case KindDecode:
		return "decode"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ErrUnauthorized matches any Error of KindUnauthorized via errors.Is.
var ErrUnauthorized = errors.New("unauthorized")

// Error is returned for every failed request.
type Error struct {
	Kind    Kind
	Status  int    // 0 for transport failures
	Message string // display text, server-provided when available
	Err     error  // underlying cause, if any
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Kind == KindUnauthorized
}

func kindFor(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status >= 500:
		return KindServer
	default:
		return KindValidation
	}
}

var genericMessages = map[Kind]string{
	KindTransport:    "could not reach the server",
	KindUnauthorized: "your session has expired, please sign in again",
	KindValidation:   "the request was rejected",
	KindServer:       "the server ran into a problem",
	KindDecode:       "the server sent an unexpected response",
}

// Message returns a human-readable description of err, preferring the
// server's own message. It is what state containers show to users.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ce *Error
	if errors.As(err, &ce) {
		if ce.Message != "" {
			return ce.Message
		}
		return genericMessages[ce.Kind]
	}
	return err.Error()
}
