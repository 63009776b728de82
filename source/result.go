package source

import (
	"fmt"

	"github.com/wanderlab/voyago/schema"
)

// ErrorKind classifies an adapter failure.
type ErrorKind string

const (
	RateLimited       ErrorKind = "rate_limited"
	Timeout           ErrorKind = "timeout"
	AuthInvalid       ErrorKind = "auth_invalid"
	MalformedResponse ErrorKind = "malformed_response"
	Unreachable       ErrorKind = "unreachable"
)

// Transient reports whether a failure of this kind is worth one retry.
// AuthInvalid and MalformedResponse are configuration/contract errors and
// never retried.
func (k ErrorKind) Transient() bool {
	switch k {
	case RateLimited, Timeout, Unreachable:
		return true
	}
	return false
}

// Error is the failure an adapter resolves to. It never crosses the adapter
// boundary as a raised fault; it travels inside a Result.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

type resultState uint8

const (
	stateOK resultState = iota
	stateDegraded
	stateFailed
)

// Result is the tagged outcome of one adapter call: Ok(T), Degraded(T, reason)
// or Failed(ErrorKind). Every adapter call resolves to exactly one of the
// three; adapters never panic or leak errors across their boundary.
type Result[T any] struct {
	state  resultState
	value  T
	reason string
	kind   ErrorKind
	err    error
}

// Ok wraps a fully satisfied value.
func Ok[T any](v T) Result[T] {
	return Result[T]{state: stateOK, value: v}
}

// Degraded wraps a partially satisfied value, e.g. weather for only 5 of 7
// requested days.
func Degraded[T any](v T, reason string) Result[T] {
	return Result[T]{state: stateDegraded, value: v, reason: reason}
}

// Failed wraps a classified failure.
func Failed[T any](kind ErrorKind, err error) Result[T] {
	return Result[T]{state: stateFailed, kind: kind, err: err}
}

func (r Result[T]) OK() bool       { return r.state == stateOK }
func (r Result[T]) Degraded() bool { return r.state == stateDegraded }
func (r Result[T]) Failed() bool   { return r.state == stateFailed }

// Value returns the carried value; ok is false for failed results.
func (r Result[T]) Value() (v T, ok bool) {
	if r.state == stateFailed {
		return v, false
	}
	return r.value, true
}

// Reason returns the degradation reason, empty unless Degraded.
func (r Result[T]) Reason() string { return r.reason }

// Kind returns the failure kind, empty unless Failed.
func (r Result[T]) Kind() ErrorKind { return r.kind }

// Err returns the underlying failure as a *Error, nil unless Failed.
func (r Result[T]) Err() error {
	if r.state != stateFailed {
		return nil
	}
	return &Error{Kind: r.kind, Err: r.err}
}

// Retryable reports whether this result is a transient failure.
func (r Result[T]) Retryable() bool {
	return r.state == stateFailed && r.kind.Transient()
}

// Status converts the result into a status map entry.
func (r Result[T]) Status() schema.SourceStatus {
	switch r.state {
	case stateOK:
		return schema.SourceStatus{State: schema.StateOK}
	case stateDegraded:
		return schema.SourceStatus{State: schema.StateDegraded, Reason: r.reason}
	default:
		reason := string(r.kind)
		if r.err != nil {
			reason = fmt.Sprintf("%s: %v", r.kind, r.err)
		}
		return schema.SourceStatus{State: schema.StateFailed, Reason: reason}
	}
}
