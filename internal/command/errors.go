package command

import (
	"errors"
	"fmt"
)

// Error kinds for expected command failures. The kind is shown to the user
// as a title, so it is written in CamelCase.
const (
	KindCommandNotFound = "CommandNotFound"
	KindBadArgument     = "BadArgument"
	KindMissingArgument = "MissingRequiredArgument"
	KindNotOwner        = "NotOwner"
	KindCheckFailure    = "CheckFailure"
)

// Error is an expected failure raised on purpose by command code. It is shown
// to the invoking user and never reported to the developer.
type Error struct {
	Kind    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Errorf creates an Error of the given kind.
func Errorf(kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports that no command is registered under name.
func NotFound(name string) *Error {
	return Errorf(KindCommandNotFound, "Command %q is not found", name)
}

// BadArgument reports an argument that failed validation.
func BadArgument(format string, args ...any) *Error {
	return Errorf(KindBadArgument, format, args...)
}

// IsNotFound reports whether err is a command lookup failure.
func IsNotFound(err error) bool {
	var cmdErr *Error
	return errors.As(err, &cmdErr) && cmdErr.Kind == KindCommandNotFound
}

// InvokeError wraps an unexpected failure that happened while a command ran.
type InvokeError struct {
	Command string
	Err     error
}

// NewInvokeError wraps err as a failure of the named command.
func NewInvokeError(name string, err error) *InvokeError {
	return &InvokeError{Command: name, Err: err}
}

func (e *InvokeError) Error() string {
	return fmt.Sprintf("command %s raised an error: %v", e.Command, e.Err)
}

func (e *InvokeError) Unwrap() error {
	return e.Err
}

// PanicError carries a recovered panic value.
type PanicError struct {
	Value any
	stack []byte
}

// NewPanicError wraps a recovered value together with the stack it was
// recovered on.
func NewPanicError(value any, stack []byte) *PanicError {
	return &PanicError{Value: value, stack: stack}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Stack returns the goroutine stack at the point of recovery.
func (e *PanicError) Stack() []byte {
	return e.stack
}
