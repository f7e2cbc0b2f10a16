package forma

import "fmt"

// Result is a closed two-variant container: Ok carrying a success value, or
// Err carrying a failure value. Construct through Ok/Err; the zero value is an
// Err holding E's zero value so that forgotten initialization fails loudly.
type Result[T, E any] struct {
	value T
	err   E
	ok    bool
}

// Ok wraps a success value.
func Ok[T, E any](v T) Result[T, E] { return Result[T, E]{value: v, ok: true} }

// Err wraps a failure value. T stays explicit at call sites while E is
// inferred from the argument.
func Err[T, E any](e E) Result[T, E] { return Result[T, E]{err: e} }

// IsOk reports whether the result is a success.
func (r Result[T, E]) IsOk() bool { return r.ok }

// IsErr reports whether the result is a failure.
func (r Result[T, E]) IsErr() bool { return !r.ok }

// Get deconstructs the success side without panicking. Engine code branches
// on Get/GetErr; the Unwrap family is reserved for trust boundaries so that
// malformed input can never abort the process.
func (r Result[T, E]) Get() (T, bool) { return r.value, r.ok }

// GetErr deconstructs the failure side without panicking.
func (r Result[T, E]) GetErr() (E, bool) { return r.err, !r.ok }

// Unwrap returns the success value and panics on Err, rendering the failure.
func (r Result[T, E]) Unwrap() T {
	if !r.ok {
		panic(fmt.Sprintf("forma: Unwrap on Err: %v", r.err))
	}
	return r.value
}

// UnwrapErr returns the failure value and panics on Ok.
func (r Result[T, E]) UnwrapErr() E {
	if r.ok {
		panic(fmt.Sprintf("forma: UnwrapErr on Ok: %v", r.value))
	}
	return r.err
}

// Expect is Unwrap with a caller-supplied panic message.
func (r Result[T, E]) Expect(msg string) T {
	if !r.ok {
		panic(fmt.Sprintf("%s: %v", msg, r.err))
	}
	return r.value
}

// UnwrapOr returns the success value, or def when Err.
func (r Result[T, E]) UnwrapOr(def T) T {
	if !r.ok {
		return def
	}
	return r.value
}

// UnwrapOrElse returns the success value, or derives one from the failure.
func (r Result[T, E]) UnwrapOrElse(fn func(E) T) T {
	if !r.ok {
		return fn(r.err)
	}
	return r.value
}

// Or returns r when Ok, otherwise alt.
func (r Result[T, E]) Or(alt Result[T, E]) Result[T, E] {
	if r.ok {
		return r
	}
	return alt
}

// OrElse returns r when Ok, otherwise the result of fn applied to the
// failure.
func (r Result[T, E]) OrElse(fn func(E) Result[T, E]) Result[T, E] {
	if r.ok {
		return r
	}
	return fn(r.err)
}

// Map applies fn to a success value. Type-changing transforms live in the
// package-level MapResult.
func (r Result[T, E]) Map(fn func(T) T) Result[T, E] {
	if !r.ok {
		return r
	}
	return Ok[T, E](fn(r.value))
}

// MapErr applies fn to a failure value.
func (r Result[T, E]) MapErr(fn func(E) E) Result[T, E] {
	if r.ok {
		return r
	}
	return Err[T](fn(r.err))
}

// String renders "Ok(v)" or "Err(e)".
func (r Result[T, E]) String() string {
	if r.ok {
		return fmt.Sprintf("Ok(%v)", r.value)
	}
	return fmt.Sprintf("Err(%v)", r.err)
}

// MapResult transforms a success value into a result of another type.
func MapResult[T, U, E any](r Result[T, E], fn func(T) U) Result[U, E] {
	if v, ok := r.Get(); ok {
		return Ok[U, E](fn(v))
	}
	e, _ := r.GetErr()
	return Err[U](e)
}

// MapErrResult transforms a failure value into another failure type.
func MapErrResult[T, E, F any](r Result[T, E], fn func(E) F) Result[T, F] {
	if e, bad := r.GetErr(); bad {
		return Err[T](fn(e))
	}
	v, _ := r.Get()
	return Ok[T, F](v)
}

// AndThenResult chains fn across a success value; Err short-circuits.
func AndThenResult[T, U, E any](r Result[T, E], fn func(T) Result[U, E]) Result[U, E] {
	if v, ok := r.Get(); ok {
		return fn(v)
	}
	e, _ := r.GetErr()
	return Err[U](e)
}

// MatchResult performs structural case analysis, collapsing both variants
// into a single type.
func MatchResult[T, E, R any](r Result[T, E], ok func(T) R, err func(E) R) R {
	if v, present := r.Get(); present {
		return ok(v)
	}
	e, _ := r.GetErr()
	return err(e)
}
