package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnauthorized is used whenever a request without sufficient
	// authorization is handled.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrNotFound is used when a requested operation cannot be completed
	// due to missing data.
	ErrNotFound = Register(3, "not found")

	// ErrMsg is returned whenever an event is invalid and cannot be
	// handled.
	ErrMsg = Register(4, "invalid message")

	// ErrModel is returned whenever a message is invalid and cannot
	// be used (ie. persisted).
	ErrModel = Register(5, "invalid model")

	// ErrDuplicate is returned when there is a record already that has the same
	// unique key/index used.
	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman is returned when application reaches a code path which should not
	// ever be reached if the code was written as expected by the framework.
	ErrHuman = Register(7, "coding error")

	// ErrImmutable is returned when something that is considered immutable
	// gets modified.
	ErrImmutable = Register(8, "cannot be modified")

	// ErrEmpty is returned when a value fails a not empty assertion.
	ErrEmpty = Register(9, "value is empty")

	// ErrState is returned when an object is in invalid state.
	ErrState = Register(10, "invalid state")

	// ErrType is returned whenever the type is not what was expected.
	ErrType = Register(11, "invalid type")

	// ErrInsufficientAmount is returned when an amount of currency is
	// insufficient, e.g. funds/fees.
	ErrInsufficientAmount = Register(12, "insufficient amount")

	// ErrAmount stands for invalid amount of whatever.
	ErrAmount = Register(13, "invalid amount")

	// ErrInput stands for general input problems indication.
	ErrInput = Register(14, "invalid input")

	// ErrExpired stands for expired entities, normally has to do with block
	// time expirations.
	ErrExpired = Register(15, "expired")

	// ErrOverflow s returned when a computation cannot be completed
	// because the result value exceeds the type.
	ErrOverflow = Register(16, "an operation cannot be completed due to value overflow")

	// ErrDatabase is returned in case of database issues.
	ErrDatabase = Register(17, "database")

	// ErrIteratorDone is returned by an iterator when there are no more
	// elements to read.
	ErrIteratorDone = Register(18, "iterator done")

	// ErrPanic is only set when we recover from a panic, so we know to
	// redact potentially sensitive system info.
	ErrPanic = Register(111222, "panic")
)

// Register declares a new root error. Extensions call it when their
// package is initialized, each with its own range of codes. Registering a
// code twice, or the success code, panics.
func Register(code uint32, description string) *Error {
	if code == SuccessCode {
		panic("error code 0 is reserved for success")
	}
	if e, ok := usedCodes[code]; ok {
		panic(fmt.Sprintf("error with code %d is already registered: %q", code, e.desc))
	}
	err := &Error{code: code, desc: description}
	usedCodes[code] = err
	return err
}

// usedCodes holds all registered root errors by code. Code 1 is taken by
// errors that do not wrap any registered error.
var usedCodes = map[uint32]*Error{
	internalCode: {code: internalCode, desc: internalLog},
}

// Error is a registered root error. Errors returned to clients must wrap
// one of them, which gives each failure a stable code.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

// ABCICode returns the registered code.
func (e Error) ABCICode() uint32 {
	return e.code
}

// New wraps this error with given description. It is a shortcut for
// Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

func (e *Error) Newf(description string, args ...interface{}) error {
	return Wrap(e, fmt.Sprintf(description, args...))
}

// Is returns true if err is this root error or wraps it. A nil *Error
// matches nil errors only, including typed nil pointers.
func (kind *Error) Is(err error) bool {
	if kind == nil {
		return errIsNil(err)
	}
	for err != nil {
		if err == kind {
			return true
		}
		err = parent(err)
	}
	return false
}

// Wrap adds a description to err. A stack trace is attached by the first
// wrap. Wrapping nil returns nil, so the result of a call can be wrapped
// unconditionally. Errors that do not wrap a registered error are
// classified as internal.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{parent: err, msg: description}
}

func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Unwrap makes wrapped errors usable with the standard library errors
// package.
func (e *wrappedError) Unwrap() error {
	return e.parent
}

// Format prints the stack trace of the first wrap with %+v.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s: %+v", e.msg, e.parent)
		return
	}
	fmt.Fprint(s, e.Error())
}

// Recover turns a panic into an ErrPanic assigned to err. It must be
// called directly by defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type causer interface {
	Cause() error
}

type unwrapper interface {
	Unwrap() error
}

// parent returns the error wrapped by err, or nil.
func parent(err error) error {
	switch e := err.(type) {
	case causer:
		return e.Cause()
	case unwrapper:
		return e.Unwrap()
	default:
		return nil
	}
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the first stack trace found in the chain of err.
func stackTrace(err error) errors.StackTrace {
	for err != nil {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		err = parent(err)
	}
	return nil
}
