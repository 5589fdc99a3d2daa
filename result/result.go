// Package result implements a generic container holding either a value or
// the error that prevented computing it.
//
// A [Result] lets callers chain fallible computations with [Map] and
// [FlatMap] and inspect the failure once, at the end of the chain.
package result

import (
	"errors"
	"fmt"

	"github.com/govalues/rational/optional"
)

var errNilFailure = errors.New("failure without an error")

// Result holds either a value of type T or a non-nil error.
// Its zero value is a success holding the zero value of T.
type Result[T any] struct {
	value T
	err   error
}

// Ok returns a successful result holding v.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Fail returns a failed result.
// A nil error is replaced with a generic one, so that the result still fails.
func Fail[T any](err error) Result[T] {
	if err == nil {
		err = errNilFailure
	}
	return Result[T]{err: err}
}

// Of converts the common (value, error) pair to a result.
func Of[T any](v T, err error) Result[T] {
	if err != nil {
		return Fail[T](err)
	}
	return Ok(v)
}

// IsOk returns true if the result holds a value.
func (r Result[T]) IsOk() bool {
	return r.err == nil
}

// IsErr returns true if the result holds an error.
func (r Result[T]) IsErr() bool {
	return r.err != nil
}

// Get returns the held value and a nil error, or the zero value of T and the
// held error.
func (r Result[T]) Get() (T, error) {
	if r.err != nil {
		var zero T
		return zero, r.err
	}
	return r.value, nil
}

// Err returns the held error, or nil for a successful result.
func (r Result[T]) Err() error {
	return r.err
}

// MustGet returns the held value.
//
// MustGet panics if the result holds an error.
func (r Result[T]) MustGet() T {
	if r.err != nil {
		panic(fmt.Sprintf("Result[%T].MustGet() failed: %v", r.value, r.err))
	}
	return r.value
}

// OrElse returns the held value, or def if the result holds an error.
func (r Result[T]) OrElse(def T) T {
	if r.err != nil {
		return def
	}
	return r.value
}

// Or returns r if it holds a value, and alt otherwise.
func (r Result[T]) Or(alt Result[T]) Result[T] {
	if r.err != nil {
		return alt
	}
	return r
}

// Option drops the error and returns the held value as an option.
func (r Result[T]) Option() optional.Option[T] {
	if r.err != nil {
		return optional.None[T]()
	}
	return optional.Some(r.value)
}

// String implements the [fmt.Stringer] interface.
func (r Result[T]) String() string {
	if r.err != nil {
		return fmt.Sprintf("Fail(%v)", r.err)
	}
	return fmt.Sprintf("Ok(%v)", r.value)
}

// Map applies f to the held value.
// A failed result is passed through and f is not called.
func Map[T, U any](r Result[T], f func(T) U) Result[U] {
	if r.err != nil {
		return Fail[U](r.err)
	}
	return Ok(f(r.value))
}

// FlatMap applies a fallible f to the held value.
// A failed result is passed through and f is not called.
func FlatMap[T, U any](r Result[T], f func(T) Result[U]) Result[U] {
	if r.err != nil {
		return Fail[U](r.err)
	}
	return f(r.value)
}

// Recover calls f with the held error and returns its result.
// A successful result is returned unchanged.
func Recover[T any](r Result[T], f func(error) Result[T]) Result[T] {
	if r.err == nil {
		return r
	}
	return f(r.err)
}
