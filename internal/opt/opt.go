// Package opt provides an explicit optional value used for identifiers that
// may be absent, such as the empire of an observer or the turn before a game
// has started.
package opt

import "fmt"

// Value holds either a T or nothing. The zero value is empty.
// Two Values compare equal with == when both are empty or both hold equal T.
type Value[T comparable] struct {
	v  T
	ok bool
}

// Some wraps v.
func Some[T comparable](v T) Value[T] {
	return Value[T]{v: v, ok: true}
}

// None returns an empty Value.
func None[T comparable]() Value[T] {
	return Value[T]{}
}

// Get returns the held value and whether it is present.
func (o Value[T]) Get() (T, bool) {
	return o.v, o.ok
}

// IsSome reports whether a value is present.
func (o Value[T]) IsSome() bool { return o.ok }

// IsNone reports whether the value is absent.
func (o Value[T]) IsNone() bool { return !o.ok }

// OrElse returns the held value, or def when empty.
func (o Value[T]) OrElse(def T) T {
	if o.ok {
		return o.v
	}
	return def
}

// Is reports whether o holds exactly v.
func (o Value[T]) Is(v T) bool {
	return o.ok && o.v == v
}

func (o Value[T]) String() string {
	if !o.ok {
		return "none"
	}
	return fmt.Sprint(o.v)
}
