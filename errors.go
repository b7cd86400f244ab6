package go_javad

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	// ErrIllegalArgument reports a malformed name, descriptor, signature, operand or flag set.
	ErrIllegalArgument = errors.New("illegal argument")
	// ErrIllegalState reports a visit call made out of order or more often than allowed.
	ErrIllegalState = errors.New("illegal state")
	// ErrUnsupported reports an operation the visited member cannot support.
	ErrUnsupported = errors.New("unsupported operation")
)

// CheckError is the failure returned by every checker.
type CheckError struct {
	Kind error  // one of ErrIllegalArgument, ErrIllegalState or ErrUnsupported
	Msg  string // human readable message, carries the offending value
	Err  error  // cause, if any
}

func (e *CheckError) Error() string {
	return e.Msg
}

// Is reports whether target is the kind of e.
func (e *CheckError) Is(target error) bool {
	return target == e.Kind
}

func (e *CheckError) Unwrap() error {
	return e.Err
}

func illegalArgument(format string, args ...any) error {
	return &CheckError{Kind: ErrIllegalArgument, Msg: fmt.Sprintf(format, args...)}
}

func illegalState(format string, args ...any) error {
	return &CheckError{Kind: ErrIllegalState, Msg: fmt.Sprintf(format, args...)}
}

func unsupported(format string, args ...any) error {
	return &CheckError{Kind: ErrUnsupported, Msg: fmt.Sprintf(format, args...)}
}

// wrapArgument reports an illegal argument caused by err.
func wrapArgument(err error, format string, args ...any) error {
	return &CheckError{Kind: ErrIllegalArgument, Msg: fmt.Sprintf(format, args...), Err: err}
}

// invalid builds the "Invalid <what>" prefix shared by most messages.
func invalid(what string) string {
	if what == "" {
		return "Invalid"
	}
	return "Invalid " + what
}
