// Package optional implements a generic container for a value that may be absent.
//
// An [Option] is either present (holding a value) or absent.
// Unlike an error, absence carries no reason.
// Options are values and are safe for concurrent use if the held value is.
package optional

import "fmt"

// Option holds either a value of type T or nothing.
// Its zero value is absent.
type Option[T any] struct {
	value T
	ok    bool
}

// Some returns a present option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None returns an absent option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// FromPair converts the common "comma ok" pair to an option.
func FromPair[T any](v T, ok bool) Option[T] {
	if !ok {
		return None[T]()
	}
	return Some(v)
}

// IsSome returns true if the option holds a value.
func (o Option[T]) IsSome() bool {
	return o.ok
}

// IsNone returns true if the option is absent.
func (o Option[T]) IsNone() bool {
	return !o.ok
}

// Get returns the held value and true, or the zero value of T and false.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

// MustGet returns the held value.
//
// MustGet panics if the option is absent.
func (o Option[T]) MustGet() T {
	if !o.ok {
		var zero T
		panic(fmt.Sprintf("Option[%T].MustGet() failed: value is absent", zero))
	}
	return o.value
}

// OrElse returns the held value, or def if the option is absent.
func (o Option[T]) OrElse(def T) T {
	if !o.ok {
		return def
	}
	return o.value
}

// OrElseGet is like [Option.OrElse] but computes the default lazily.
func (o Option[T]) OrElseGet(f func() T) T {
	if !o.ok {
		return f()
	}
	return o.value
}

// Or returns o if it is present, and alt otherwise.
func (o Option[T]) Or(alt Option[T]) Option[T] {
	if !o.ok {
		return alt
	}
	return o
}

// Filter returns o if it is present and the predicate holds, and an absent
// option otherwise.
func (o Option[T]) Filter(pred func(T) bool) Option[T] {
	if !o.ok || !pred(o.value) {
		return None[T]()
	}
	return o
}

// String implements the [fmt.Stringer] interface.
func (o Option[T]) String() string {
	if !o.ok {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}

// Map applies f to the held value.
// An absent option stays absent and f is not called.
func Map[T, U any](o Option[T], f func(T) U) Option[U] {
	if !o.ok {
		return None[U]()
	}
	return Some(f(o.value))
}

// FlatMap applies f to the held value and returns its result.
// An absent option stays absent and f is not called.
func FlatMap[T, U any](o Option[T], f func(T) Option[U]) Option[U] {
	if !o.ok {
		return None[U]()
	}
	return f(o.value)
}
