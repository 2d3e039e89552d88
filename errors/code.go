package errors

import (
	"errors"
	"fmt"
	"reflect"
)

const (
	// SuccessCode is returned for a nil error.
	SuccessCode uint32 = 0

	// All unclassified errors that do not provide a code are clubbed under
	// an internal error code and a generic message instead of detailed
	// error string.
	internalCode uint32 = 1
	internalLog         = "internal error"
)

// Info returns the code and the log message that can be exposed to the
// client for given error. Any error that does not provide a code is
// categorized as internal. Unless running in debug mode, the message of an
// internal error is replaced with a generic one.
func Info(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessCode, ""
	}

	if code := Code(err); code != internalCode {
		if debug {
			return code, fmt.Sprintf("%+v", err)
		}
		return code, err.Error()
	}

	if debug {
		return internalCode, fmt.Sprintf("%+v", err)
	}
	return internalCode, internalLog
}

type coder interface {
	ABCICode() uint32
}

// Code returns the code of the root error wrapped by given error. Errors
// that do not carry a code are internal.
func Code(err error) uint32 {
	if errIsNil(err) {
		return SuccessCode
	}

	for err != nil {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		err = parent(err)
	}
	return internalCode
}

// errIsNil returns true if value represented by the given error is nil.
//
// Most of the time a simple == check is enough. There is a very narrowed
// spectrum of cases (mostly in tests) where a more sophisticated check is
// required.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	if val := reflect.ValueOf(err); val.Kind() == reflect.Ptr {
		return val.IsNil()
	}
	return false
}

// Redact replaces all errors that do not wrap a registered error with a
// generic internal error instance, hiding implementation details.
//
// This is a no-operation function when running in debug mode.
func Redact(err error, debug bool) error {
	if debug {
		return err
	}
	if ErrPanic.Is(err) {
		return errors.New(internalLog)
	}
	if Code(err) == internalCode {
		return errors.New(internalLog)
	}
	return err
}
