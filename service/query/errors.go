package query

import (
	"errors"
	"fmt"
)

// Kind classifies query failures.
type Kind uint8

const (
	KindUnexpected Kind = iota
	KindIdentityResolutionFailed
	KindQueryFailed
	KindEmptyResponse
)

func (k Kind) String() string {
	switch k {
	case KindIdentityResolutionFailed:
		return "IdentityResolutionFailed"
	case KindQueryFailed:
		return "QueryFailed"
	case KindEmptyResponse:
		return "EmptyResponse"
	default:
		return "Unexpected"
	}
}

// Error is the only error type returned by Service operations.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Sentinels matching any Error of the kind with errors.Is.
var (
	ErrIdentityResolutionFailed = &Error{Kind: KindIdentityResolutionFailed}
	ErrQueryFailed              = &Error{Kind: KindQueryFailed}
	ErrEmptyResponse            = &Error{Kind: KindEmptyResponse}
	ErrUnexpected               = &Error{Kind: KindUnexpected}
)

// ErrInvalidArgument is the cause of failures rejected before reaching the network.
var ErrInvalidArgument = errors.New("invalid argument")

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a sentinel of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Cause == nil && t.Kind == e.Kind
}

func newError(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}
