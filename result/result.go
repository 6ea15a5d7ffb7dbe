// Package result provides a minimal two-variant outcome container used by
// casters to carry either a value or an error without panicking.
//
// Methods cover operations that keep the value type; transformations that
// change it (Map, Chain, Match) are free functions because Go methods cannot
// declare their own type parameters.
package result

import "fmt"

// Result holds either a success value of type T or a failure of type E.
// The zero Result is a success holding the zero T.
type Result[T, E any] struct {
	value T
	err   E
	isErr bool
}

// Ok wraps a success value.
func Ok[T, E any](v T) Result[T, E] { return Result[T, E]{value: v} }

// Err wraps a failure.
func Err[T, E any](e E) Result[T, E] { return Result[T, E]{err: e, isErr: true} }

func (r Result[T, E]) IsOk() bool  { return !r.isErr }
func (r Result[T, E]) IsErr() bool { return r.isErr }

// Value returns the success value (zero T on failure).
func (r Result[T, E]) Value() T { return r.value }

// Error returns the failure (zero E on success).
func (r Result[T, E]) Error() E { return r.err }

// Get returns both sides in the usual Go shape.
func (r Result[T, E]) Get() (T, E, bool) { return r.value, r.err, !r.isErr }

// Unwrap returns the value or panics with the failure. When E implements
// error the panic value is the error itself.
func (r Result[T, E]) Unwrap() T {
	if r.isErr {
		if e, ok := any(r.err).(error); ok {
			panic(e)
		}
		panic(fmt.Sprintf("result: unwrap on failure: %v", r.err))
	}
	return r.value
}

// UnwrapOr returns the value or fallback on failure.
func (r Result[T, E]) UnwrapOr(fallback T) T {
	if r.isErr {
		return fallback
	}
	return r.value
}

// UnwrapOrElse returns the value or the result of handle on failure.
func (r Result[T, E]) UnwrapOrElse(handle func(E) T) T {
	if r.isErr {
		return handle(r.err)
	}
	return r.value
}

// MapErr transforms the failure, leaving successes untouched.
func (r Result[T, E]) MapErr(fn func(E) E) Result[T, E] {
	if r.isErr {
		return Err[T](fn(r.err))
	}
	return r
}

// Map transforms the success value, leaving failures untouched.
func Map[T, S, E any](r Result[T, E], fn func(T) S) Result[S, E] {
	if r.isErr {
		return Err[S](r.err)
	}
	return Ok[S, E](fn(r.value))
}

// Chain feeds the success value into fn, which may itself fail.
func Chain[T, S, E any](r Result[T, E], fn func(T) Result[S, E]) Result[S, E] {
	if r.isErr {
		return Err[S](r.err)
	}
	return fn(r.value)
}

// Match folds both variants into a single value.
func Match[T, E, S any](r Result[T, E], onOk func(T) S, onErr func(E) S) S {
	if r.isErr {
		return onErr(r.err)
	}
	return onOk(r.value)
}
