package assert

import (
	"bytes"
	"fmt"
	"reflect"
	"testing"

	"github.com/iov-one/pairswap/errors"
)

// Tester is the part of testing.TB the assertions report to.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil fails the test unless value is nil or a nil pointer, map, slice,
// channel, function or interface.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if isNil(value) {
		return
	}
	// %+v prints the stack trace of errors that carry one.
	t.Fatalf("want a nil value, got %+v", value)
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return v.IsNil()
	default:
		return false
	}
}

// Equal fails the test if two values are not deeply equal. Byte slices
// are printed in hex.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if wb, ok := want.([]byte); ok {
		if gb, ok := got.([]byte); ok {
			if !bytes.Equal(wb, gb) {
				t.Fatalf("bytes not equal\nwant %X\n got %X", wb, gb)
			}
			return
		}
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal\nwant %T %v\n got %T %v", want, want, got, got)
	}
}

// Panics fails the test if calling fn does not panic.
func Panics(t Tester, fn func()) {
	t.Helper()
	if !panics(fn) {
		t.Fatal("panic expected")
	}
}

func panics(fn func()) (ok bool) {
	defer func() {
		ok = recover() != nil
	}()
	fn()
	return false
}

// IsErr fails the test unless got is, or wraps, the want error. A nil want
// matches only a nil error.
func IsErr(t testing.TB, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if kind, ok := want.(interface{ Is(error) bool }); ok && kind.Is(got) {
		return
	}
	t.Fatalf("want %s, got %s", describe(want), describe(got))
}

func describe(err error) string {
	if err == nil || isNil(err) {
		return "no error"
	}
	return fmt.Sprintf("%q (code %d)\n%+v", err.Error(), errors.Code(err), err)
}
