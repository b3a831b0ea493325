package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Kind classifies why a question batch request failed.
type Kind int

const (
	// Unavailable covers network failures, 5xx answers and anything the
	// vendor SDK could not classify.
	Unavailable Kind = iota
	// RateLimited is a 429. RetryAfter carries the server's hint if sent.
	RateLimited
	// Malformed means the reply was not a question batch document.
	Malformed
	// Truncated means the reply stopped at the token limit.
	Truncated
)

func (k Kind) String() string {
	switch k {
	case RateLimited:
		return "rate limited"
	case Malformed:
		return "malformed batch"
	case Truncated:
		return "truncated batch"
	default:
		return "unavailable"
	}
}

// Error is the only error type providers return.
type Error struct {
	Kind       Kind
	Provider   string
	Status     int // HTTP status, 0 when none was received
	RetryAfter time.Duration
	Content    json.RawMessage // the offending reply for Malformed and Truncated
	Err        error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Provider != "" {
		msg = e.Provider + ": " + msg
	}
	if e.Status != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Transient reports whether sending the same request again could succeed.
func (e *Error) Transient() bool {
	return e.Kind == Unavailable || e.Kind == RateLimited
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// statusError classifies a failed HTTP exchange with a vendor API.
func statusError(provider string, status int, err error) *Error {
	kind := Unavailable
	if status == http.StatusTooManyRequests {
		kind = RateLimited
	}
	return &Error{Kind: kind, Provider: provider, Status: status, Err: err}
}

func malformed(provider string, content json.RawMessage, err error) *Error {
	return &Error{Kind: Malformed, Provider: provider, Content: content, Err: err}
}

func truncated(provider string, content json.RawMessage) *Error {
	return &Error{Kind: Truncated, Provider: provider, Content: content}
}
