package castage

import (
	"strings"

	"github.com/reoring/castage/result"
)

// OneOf tries each caster in order at the same path and returns the first
// success. When all fail, the error is ErrInvalidValueType expecting
// "(a | b | ...)" with one cause per alternative, in order.
func OneOf(casters ...AnyCaster) Caster[any] {
	cs := append([]AnyCaster(nil), casters...)
	return oneOf(cs, func(c AnyCaster, v any, path Path) Outcome[any] { return c.CastAny(v, path...) })
}

// OneOfT is OneOf over casters sharing a result type.
func OneOfT[T any](casters ...Caster[T]) Caster[T] {
	cs := append([]Caster[T](nil), casters...)
	return oneOf(cs, func(c Caster[T], v any, path Path) Outcome[T] { return c.Cast(v, path...) })
}

func oneOf[C AnyCaster, T any](cs []C, try func(C, any, Path) Outcome[T]) Caster[T] {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.Name()
	}
	name := "(" + strings.Join(names, " | ") + ")"
	accept := func(v any) (any, bool) { return v, true }
	transform := func(value any, path Path) Outcome[T] {
		causes := make([]*CastingError, 0, len(cs))
		for _, c := range cs {
			r := try(c, value, path)
			if r.IsOk() {
				return r
			}
			causes = append(causes, r.Error())
		}
		extra := Received(name, value)
		extra.Causes = causes
		return result.Err[T](NewError(ErrInvalidValueType, path, extra))
	}
	return FromGuardAndTransform(accept, transform, name, ErrInvalidValueType, nil)
}
