package forma

import "fmt"

// Option is a closed two-variant container: Some carrying a present value, or
// None. The zero value is None.
type Option[T any] struct {
	value T
	some  bool
}

// Some wraps a present value. Wrapping an absent value (nil interface, typed
// nil pointer/map/slice/func/chan) is a programming error and panics; absence
// is what None is for.
func Some[T any](v T) Option[T] {
	if IsAbsent(v) {
		panic("forma: Some called with an absent value")
	}
	return Option[T]{value: v, some: true}
}

// None returns the empty option.
func None[T any]() Option[T] { return Option[T]{} }

// IsSome reports whether the option carries a value.
func (o Option[T]) IsSome() bool { return o.some }

// IsNone reports whether the option is empty.
func (o Option[T]) IsNone() bool { return !o.some }

// Get deconstructs the option without panicking. Engine code branches on Get;
// the Unwrap family is reserved for trust boundaries.
func (o Option[T]) Get() (T, bool) { return o.value, o.some }

// Unwrap returns the value and panics on None.
func (o Option[T]) Unwrap() T {
	if !o.some {
		panic("forma: Unwrap on None")
	}
	return o.value
}

// Expect is Unwrap with a caller-supplied panic message.
func (o Option[T]) Expect(msg string) T {
	if !o.some {
		panic(msg)
	}
	return o.value
}

// UnwrapOr returns the value, or def when None.
func (o Option[T]) UnwrapOr(def T) T {
	if !o.some {
		return def
	}
	return o.value
}

// UnwrapOrElse returns the value, or the result of fn when None.
func (o Option[T]) UnwrapOrElse(fn func() T) T {
	if !o.some {
		return fn()
	}
	return o.value
}

// Filter keeps a Some value satisfying pred and turns everything else into
// None.
func (o Option[T]) Filter(pred func(T) bool) Option[T] {
	if o.some && pred(o.value) {
		return o
	}
	return None[T]()
}

// Or returns o when Some, otherwise alt.
func (o Option[T]) Or(alt Option[T]) Option[T] {
	if o.some {
		return o
	}
	return alt
}

// OrElse returns o when Some, otherwise the result of fn.
func (o Option[T]) OrElse(fn func() Option[T]) Option[T] {
	if o.some {
		return o
	}
	return fn()
}

// Map applies fn to a present value. Type-changing transforms live in the
// package-level MapOption because methods cannot introduce type parameters.
func (o Option[T]) Map(fn func(T) T) Option[T] {
	if !o.some {
		return o
	}
	return Some(fn(o.value))
}

// String renders "Some(v)" or "None".
func (o Option[T]) String() string {
	if !o.some {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}

// MapOption transforms a present value into an option of another type.
func MapOption[T, U any](o Option[T], fn func(T) U) Option[U] {
	if v, ok := o.Get(); ok {
		return Some(fn(v))
	}
	return None[U]()
}

// AndThenOption chains fn across a present value; None short-circuits.
func AndThenOption[T, U any](o Option[T], fn func(T) Option[U]) Option[U] {
	if v, ok := o.Get(); ok {
		return fn(v)
	}
	return None[U]()
}

// OkOr converts the option into a Result, using e for the None case.
func OkOr[T, E any](o Option[T], e E) Result[T, E] {
	if v, ok := o.Get(); ok {
		return Ok[T, E](v)
	}
	return Err[T](e)
}

// OkOrElse converts the option into a Result, invoking fn only for None.
func OkOrElse[T, E any](o Option[T], fn func() E) Result[T, E] {
	if v, ok := o.Get(); ok {
		return Ok[T, E](v)
	}
	return Err[T](fn())
}
