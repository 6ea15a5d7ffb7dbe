package castage

import (
	"sync/atomic"

	"github.com/reoring/castage/result"
)

// Outcome of a fail-fast cast.
type Outcome[T any] = result.Result[T, *CastingError]

// ParseOutcome of an exhaustive parse.
type ParseOutcome[T any] = result.Result[T, Errors]

// Guard decides whether an input has the expected shape and, if so, narrows
// it to T.
type Guard[T any] func(value any) (T, bool)

// Predicate lifts a boolean type check into an identity Guard.
func Predicate(pred func(any) bool) Guard[any] {
	return func(v any) (any, bool) { return v, pred(v) }
}

// Transform runs after a guard accepted the input and may still fail.
type Transform[T, S any] func(value T, path Path) Outcome[S]

// Parser is the exhaustive counterpart of Transform.
type Parser[T, S any] func(value T, path Path) ParseOutcome[S]

// AnyCaster is the type-erased view of a Caster that combinators use to hold
// heterogeneous children. Values produced through it are plain: Optional and
// Nullable results surface as Undefined, nil or the dereferenced value.
type AnyCaster interface {
	Name() string
	CastAny(value any, path ...string) Outcome[any]
	ParseAny(value any, path ...string) ParseOutcome[any]
}

// Caster validates an untyped value and converts it into T. Casters are
// immutable and safe for concurrent use.
type Caster[T any] struct {
	name string
	// cast and parse receive the caster's current name so that Named can
	// relabel guard failures without rebuilding the closure.
	cast  func(name string, value any, path Path) Outcome[T]
	parse func(name string, value any, path Path) ParseOutcome[T]
	plain func(T) any
}

var _ AnyCaster = Caster[any]{}

// DefaultMaxDepth bounds how deep casters descend into nested input.
const DefaultMaxDepth = 512

var maxDepth atomic.Int64

func init() { maxDepth.Store(DefaultMaxDepth) }

// SetMaxDepth changes the nesting limit for every caster in the process;
// n <= 0 restores DefaultMaxDepth. Call it during startup.
func SetMaxDepth(n int) {
	if n <= 0 {
		n = DefaultMaxDepth
	}
	maxDepth.Store(int64(n))
}

// MaxDepth returns the current nesting limit.
func MaxDepth() int { return int(maxDepth.Load()) }

// ReasonMaxDepth is the reason attached to errors raised past MaxDepth.
const ReasonMaxDepth = "maximum nesting depth exceeded"

func depthError(name string, value any, path Path) *CastingError {
	extra := Received(name, value)
	extra.Reason = ReasonMaxDepth
	return NewError(ErrInvalidValue, path, extra)
}

// FromGuard builds a caster whose transform is the guard's narrowing.
// Rejected values fail with ErrInvalidValueType.
func FromGuard[T any](guard Guard[T], name string) Caster[T] {
	return FromGuardCode(guard, name, ErrInvalidValueType)
}

// FromGuardCode is FromGuard with a custom error code for rejected values.
func FromGuardCode[T any](guard Guard[T], name string, code Code) Caster[T] {
	return FromGuardAndTransform(guard, func(v T, _ Path) Outcome[T] { return result.Ok[T, *CastingError](v) }, name, code, nil)
}

// FromGuardAndTransform is the general constructor. The guard decides the
// shape; transform may still reject the value with its own error. parser, if
// not nil, implements exhaustive parsing; otherwise Parse wraps the single
// error of Cast. An empty code means ErrInvalidValueType.
func FromGuardAndTransform[T, S any](guard Guard[T], transform Transform[T, S], name string, code Code, parser Parser[T, S]) Caster[S] {
	if code == "" {
		code = ErrInvalidValueType
	}
	c := Caster[S]{name: name}
	c.cast = func(name string, value any, path Path) Outcome[S] {
		if len(path) > MaxDepth() {
			return result.Err[S](depthError(name, value, path))
		}
		v, ok := guard(value)
		if !ok {
			return result.Err[S](NewError(code, path, Received(name, value)))
		}
		return transform(v, path)
	}
	if parser != nil {
		c.parse = func(name string, value any, path Path) ParseOutcome[S] {
			if len(path) > MaxDepth() {
				return result.Err[S](Errors{depthError(name, value, path)})
			}
			v, ok := guard(value)
			if !ok {
				return result.Err[S](Errors{NewError(code, path, Received(name, value))})
			}
			return parser(v, path)
		}
	}
	return c
}

// Name is the human readable type descriptor used in error messages.
func (c Caster[T]) Name() string { return c.name }

// Cast validates value at path, stopping at the first error.
func (c Caster[T]) Cast(value any, path ...string) Outcome[T] {
	return c.cast(c.name, value, Path(path))
}

// Parse validates value at path and collects every error that container
// casters can find independently.
func (c Caster[T]) Parse(value any, path ...string) ParseOutcome[T] {
	if c.parse != nil {
		return c.parse(c.name, value, Path(path))
	}
	return single(c.cast(c.name, value, Path(path)))
}

func single[T any](r Outcome[T]) ParseOutcome[T] {
	if r.IsErr() {
		return result.Err[T](Errors{r.Error()})
	}
	return result.Ok[T, Errors](r.Value())
}

// CastAny implements AnyCaster.
func (c Caster[T]) CastAny(value any, path ...string) Outcome[any] {
	return result.Map(c.Cast(value, path...), c.plainOf)
}

// ParseAny implements AnyCaster.
func (c Caster[T]) ParseAny(value any, path ...string) ParseOutcome[any] {
	return result.Map(c.Parse(value, path...), c.plainOf)
}

func (c Caster[T]) plainOf(v T) any {
	if c.plain != nil {
		return c.plain(v)
	}
	return v
}

// Try is the Go-shaped form of Cast. The error is a *CastingError.
func (c Caster[T]) Try(value any) (T, error) {
	r := c.Cast(value)
	if r.IsErr() {
		var zero T
		return zero, r.Error()
	}
	return r.Value(), nil
}

// TryAll is the Go-shaped form of Parse. The error is Errors.
func (c Caster[T]) TryAll(value any) (T, error) {
	r := c.Parse(value)
	if r.IsErr() {
		var zero T
		return zero, r.Error()
	}
	return r.Value(), nil
}

// MustCast returns the cast value or panics with the *CastingError. Use it
// only where validity is already established.
func (c Caster[T]) MustCast(value any, path ...string) T {
	return c.Cast(value, path...).Unwrap()
}

// Named returns a copy of c reporting itself as name. Errors that c raises
// at the call path (guard failures, Optional, Nullable, Default and Validate
// rejections) use the new name; errors from nested casters keep theirs.
func (c Caster[T]) Named(name string) Caster[T] {
	c.name = name
	return c
}

// Optional accepts Undefined as nil. Failures raised exactly at the call
// path report "<name> | undefined"; deeper failures keep their own
// expectation.
func Optional[T any](c Caster[T]) Caster[*T] {
	return orSentinel(c, c.name+" | undefined", IsUndefined, Undefined)
}

// Nullable accepts nil (null) as a nil pointer, reporting "<name> | null".
func Nullable[T any](c Caster[T]) Caster[*T] {
	return orSentinel(c, c.name+" | null", IsNull, nil)
}

func orSentinel[T any](c Caster[T], expected string, accept func(any) bool, sentinel any) Caster[*T] {
	return Caster[*T]{
		name: expected,
		cast: func(name string, value any, path Path) Outcome[*T] {
			if accept(value) {
				return result.Ok[*T, *CastingError](nil)
			}
			r := c.Cast(value, path...).MapErr(replaceExpected(name, path))
			return result.Map(r, ptr[T])
		},
		parse: func(name string, value any, path Path) ParseOutcome[*T] {
			if accept(value) {
				return result.Ok[*T, Errors](nil)
			}
			r := c.Parse(value, path...).MapErr(func(es Errors) Errors {
				return mapErrors(es, replaceExpected(name, path))
			})
			return result.Map(r, ptr[T])
		},
		plain: func(p *T) any {
			if p == nil {
				return sentinel
			}
			return c.plainOf(*p)
		},
	}
}

func ptr[T any](v T) *T { return &v }

// Default substitutes v for Undefined input. An empty name means
// "<name> | undefined".
func (c Caster[T]) Default(v T, name string) Caster[T] {
	if name == "" {
		name = c.name + " | undefined"
	}
	return Caster[T]{
		name: name,
		cast: func(name string, value any, path Path) Outcome[T] {
			if IsUndefined(value) {
				return result.Ok[T, *CastingError](v)
			}
			return c.Cast(value, path...).MapErr(replaceExpected(name, path))
		},
		parse: func(name string, value any, path Path) ParseOutcome[T] {
			if IsUndefined(value) {
				return result.Ok[T, Errors](v)
			}
			return c.Parse(value, path...).MapErr(func(es Errors) Errors {
				return mapErrors(es, replaceExpected(name, path))
			})
		},
		plain: c.plain,
	}
}

// Validate refines c with a semantic check on the cast value. Rejections are
// ErrInvalidValue with the caster's name (c's name when empty) as expectation.
func (c Caster[T]) Validate(pred func(T) bool, name string) Caster[T] {
	return c.refine(pred, name, func(name string, v T, path Path) *CastingError {
		return NewError(ErrInvalidValue, path, Received(name, v))
	})
}

// ValidateWith is Validate with a custom error factory.
func (c Caster[T]) ValidateWith(pred func(T) bool, name string, fail func(T, Path) *CastingError) Caster[T] {
	return c.refine(pred, name, func(_ string, v T, path Path) *CastingError { return fail(v, path) })
}

func (c Caster[T]) refine(pred func(T) bool, name string, fail func(string, T, Path) *CastingError) Caster[T] {
	if name == "" {
		name = c.name
	}
	check := func(name string, v T, path Path) Outcome[T] {
		if pred(v) {
			return result.Ok[T, *CastingError](v)
		}
		return result.Err[T](fail(name, v, path))
	}
	return Caster[T]{
		name: name,
		cast: func(name string, value any, path Path) Outcome[T] {
			return result.Chain(c.Cast(value, path...), func(v T) Outcome[T] { return check(name, v, path) })
		},
		parse: func(name string, value any, path Path) ParseOutcome[T] {
			return result.Chain(c.Parse(value, path...), func(v T) ParseOutcome[T] { return single(check(name, v, path)) })
		},
		plain: c.plain,
	}
}

// Map applies a total transform to successful results. An empty name means
// "(<name> |> map)".
func Map[T, S any](c Caster[T], fn func(T) S, name string) Caster[S] {
	if name == "" {
		name = "(" + c.name + " |> map)"
	}
	return Caster[S]{
		name: name,
		cast: func(_ string, value any, path Path) Outcome[S] {
			return result.Map(c.Cast(value, path...), fn)
		},
		parse: func(_ string, value any, path Path) ParseOutcome[S] {
			return result.Map(c.Parse(value, path...), fn)
		},
	}
}

// Chain feeds the result of c into next. The downstream path tags its last
// segment with "::<c's name>" so errors can be traced back to the value c
// produced. An empty name means "(<c> |> <next>)".
func Chain[T, S any](c Caster[T], next Caster[S], name string) Caster[S] {
	if name == "" {
		name = "(" + c.name + " |> " + next.name + ")"
	}
	return Caster[S]{
		name: name,
		cast: func(_ string, value any, path Path) Outcome[S] {
			return result.Chain(c.Cast(value, path...), func(v T) Outcome[S] {
				return next.Cast(c.plainOf(v), path.chained(c.name)...)
			})
		},
		parse: func(_ string, value any, path Path) ParseOutcome[S] {
			return result.Chain(c.Parse(value, path...), func(v T) ParseOutcome[S] {
				return next.Parse(c.plainOf(v), path.chained(c.name)...)
			})
		},
		plain: next.plain,
	}
}

// Match returns a function that casts its input and folds the outcome.
func Match[T, S any](c Caster[T], onOk func(T) S, onErr func(*CastingError) S) func(value any, path ...string) S {
	return func(value any, path ...string) S {
		return result.Match(c.Cast(value, path...), onOk, onErr)
	}
}

// Is turns a caster into a boolean type check.
func Is(c AnyCaster) func(any) bool {
	return func(v any) bool { return c.CastAny(v).IsOk() }
}

// Erase lifts any AnyCaster into a Caster[any] producing plain values.
func Erase(c AnyCaster) Caster[any] {
	if ca, ok := c.(Caster[any]); ok {
		return ca
	}
	return Caster[any]{
		name: c.Name(),
		cast: func(_ string, value any, path Path) Outcome[any] {
			return c.CastAny(value, path...)
		},
		parse: func(_ string, value any, path Path) ParseOutcome[any] {
			return c.ParseAny(value, path...)
		},
	}
}
