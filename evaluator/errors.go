/*
File   : lattice/evaluator/errors.go
*/

package evaluator

import (
	"fmt"

	"github.com/monkeylang/lattice/object"
)

// ErrorKind is the closed set of ways evaluation can fail.
type ErrorKind string

const (
	ErrUnknownOperator          ErrorKind = "UNKNOWN_OPERATOR"
	ErrTypeMismatch             ErrorKind = "TYPE_MISMATCH"
	ErrNotAFunction             ErrorKind = "NOT_A_FUNCTION"
	ErrFunctionArgumentMismatch ErrorKind = "FUNCTION_ARGUMENT_MISMATCH"
	ErrAllocationFailed         ErrorKind = "ALLOCATION_FAILED"
)

// Error is the single error value an Eval call can return. Kind is the
// discriminant callers match on; the remaining fields exist only to
// produce a useful structured log line at the point of detection.
type Error struct {
	Kind     ErrorKind
	Operator string
	Left     object.Type
	Right    object.Type
	Got      int
	Want     int
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrUnknownOperator:
		if e.Left == "" {
			return fmt.Sprintf("unknown operator: %s%s", e.Operator, e.Right)
		}
		return fmt.Sprintf("unknown operator: %s %s %s", e.Left, e.Operator, e.Right)
	case ErrTypeMismatch:
		return fmt.Sprintf("type mismatch: %s %s %s", e.Left, e.Operator, e.Right)
	case ErrNotAFunction:
		return fmt.Sprintf("not a function: %s", e.Left)
	case ErrFunctionArgumentMismatch:
		return fmt.Sprintf("wrong number of arguments: want=%d, got=%d", e.Want, e.Got)
	case ErrAllocationFailed:
		return "allocation failed during evaluation"
	default:
		return "unknown evaluation error"
	}
}
