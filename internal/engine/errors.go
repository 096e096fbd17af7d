package engine

import "fmt"

// Code classifies an engine-level failure the way the planner/wire layer
// needs to: coarsely enough to pick a wire status byte (spec.md §7), not so
// coarsely that callers lose the ability to log something useful.
type Code int

const (
	CodeNotFound Code = iota
	CodeAlreadyExists
	CodeCapacityExhausted
	CodeInvalidOperand
	CodeBadFormat
	CodeUnimplemented
)

// Error is the engine's single error type. Kernels never return bare
// fmt.Errorf; they return *Error so a caller can switch on Code without
// string matching.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return e.Message }

// NewError builds an *Error with a formatted message.
func NewError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
