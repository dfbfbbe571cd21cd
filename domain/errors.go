package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
)

// ErrorKind classifies failures surfaced to callers.
type ErrorKind string

const (
	KindUnknown             ErrorKind = ""
	KindNotConnected        ErrorKind = "NotConnected"
	KindUserRejected        ErrorKind = "UserRejected"
	KindInsufficientFunds   ErrorKind = "InsufficientFunds"
	KindUpstreamUnavailable ErrorKind = "UpstreamUnavailable"
	KindMalformedResponse   ErrorKind = "MalformedResponse"
	KindInvalidInput        ErrorKind = "InvalidInput"
)

var (
	// ErrNotConnected means no wallet bridge or no active account
	ErrNotConnected = &Error{Kind: KindNotConnected}
	// ErrUserRejected means the signing request was declined
	ErrUserRejected = &Error{Kind: KindUserRejected}
	// ErrInsufficientFunds means the account cannot cover the transaction
	ErrInsufficientFunds = &Error{Kind: KindInsufficientFunds}
	// ErrUpstreamUnavailable means the marketplace api or the bridge could not be reached
	ErrUpstreamUnavailable = &Error{Kind: KindUpstreamUnavailable}
	// ErrMalformedResponse means an external source answered with an unexpected shape
	ErrMalformedResponse = &Error{Kind: KindMalformedResponse}
	// ErrInvalidInput means the caller supplied an unusable value
	ErrInvalidInput = &Error{Kind: KindInvalidInput}
)

// Error carries a kind, a human readable message and the underlying cause.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// NewError builds an Error of the given kind.
func NewError(kind ErrorKind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// Errorf builds an Error of the given kind with a formatted message.
func Errorf(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any Error of the same kind, so errors.Is(err, ErrUserRejected) works
// regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of the first Error in err's chain, KindUnknown if none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
