package usecase

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind is the closed set of domain error categories. Every public
// operation returns either a success value or a *DomainError carrying one
// of these kinds; storage errors never escape unmapped.
type ErrorKind string

const (
	KindNotFound   ErrorKind = "not_found"
	KindValidation ErrorKind = "validation"
	KindConflict   ErrorKind = "conflict"
	KindForbidden  ErrorKind = "forbidden"
	KindGone       ErrorKind = "gone"
	KindInternal   ErrorKind = "internal"
)

type DomainError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *DomainError) Unwrap() error { return e.Err }

func ErrNotFound(message string) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: message}
}

func ErrValidation(message string) *DomainError {
	return &DomainError{Kind: KindValidation, Message: message}
}

func ErrConflict(message string) *DomainError {
	return &DomainError{Kind: KindConflict, Message: message}
}

func ErrForbidden(message string) *DomainError {
	return &DomainError{Kind: KindForbidden, Message: message}
}

func ErrGone(message string) *DomainError {
	return &DomainError{Kind: KindGone, Message: message}
}

func ErrInternal(message string, cause error) *DomainError {
	return &DomainError{Kind: KindInternal, Message: message, Err: cause}
}

// KindOf returns the kind of err, or KindInternal for anything that is not
// a *DomainError.
func KindOf(err error) ErrorKind {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindInternal
}

// wrapUnexpected maps an unexpected failure to Internal, letting the
// cancellation signal pass through untouched so callers can tell the
// difference between "gave up" and "broke".
func wrapUnexpected(message string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return ErrInternal(message, err)
}
