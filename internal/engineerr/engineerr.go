// Package engineerr defines the closed error taxonomy surfaced by the
// dependency engine's storage components. Every exported store method
// returns either nil or an *Error of one of these kinds; callers map kinds
// to presentation and exit codes.
package engineerr

import (
	"database/sql"
	"errors"
	"fmt"
)

// Kind is a closed enumeration of engine error kinds.
type Kind string

const (
	InvalidInput     Kind = "InvalidInput"
	InvalidTaskId    Kind = "InvalidTaskId"
	InvalidCharacter Kind = "InvalidCharacter"
	InvalidKebabCase Kind = "InvalidKebabCase"
	InvalidData      Kind = "InvalidData"
	CycleDetected    Kind = "CycleDetected"
	PrepareFailed    Kind = "PrepareFailed"
	BindFailed       Kind = "BindFailed"
	StepFailed       Kind = "StepFailed"
)

// Error is the concrete error type returned by engine operations. It wraps
// an optional underlying cause without losing the closed Kind it belongs to.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same Kind, allowing
// errors.Is(err, engineerr.New(engineerr.CycleDetected, "")) style comparisons.
func (e *Error) Is(target error) bool {
	var te *Error
	if errors.As(target, &te) {
		return te.Kind == e.Kind
	}
	return false
}

// New builds an *Error with no wrapped cause.
func New(kind Kind, op string) *Error {
	return &Error{Kind: kind, Op: op}
}

// Wrap builds an *Error of the given kind wrapping err. Returns nil if err
// is nil.
func Wrap(kind Kind, op string, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// WrapDB classifies a raw database/sql error as StepFailed, converting
// sql.ErrNoRows into InvalidData; it never yields PrepareFailed or
// BindFailed. Callers that
// already know the semantic kind (e.g. a unique-constraint violation they
// want surfaced as InvalidData) should use Wrap directly instead.
func WrapDB(op string, err error) *Error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return &Error{Kind: InvalidData, Op: op, Err: err}
	}
	return &Error{Kind: StepFailed, Op: op, Err: err}
}

// KindOf extracts the Kind of err if it is (or wraps) an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// Is reports whether err carries the given Kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
