package castage

import (
	"maps"
	"strings"

	"github.com/reoring/castage/result"
)

// AllOf applies every caster to the same object at the same path and merges
// their results with shallow assignment; later casters win on key
// collisions. Non-objects fail the guard before any component runs. The name
// is "(a & b & ...)".
//
// Cast stops at the first failing component. Parse runs every component's
// Parse and returns all of their errors together.
func AllOf(casters ...AnyCaster) Caster[map[string]any] {
	cs := append([]AnyCaster(nil), casters...)
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.Name()
	}
	name := "(" + strings.Join(names, " & ") + ")"
	merge := func(dst map[string]any, c AnyCaster, v any, path Path) *CastingError {
		obj, ok := AsObject(v)
		if !ok {
			return NewError(ErrInvalidValueType, path, Received(c.Name(), v))
		}
		maps.Copy(dst, obj)
		return nil
	}
	transform := func(obj map[string]any, path Path) Outcome[map[string]any] {
		out := make(map[string]any)
		for _, c := range cs {
			r := c.CastAny(obj, path...)
			if r.IsErr() {
				return result.Err[map[string]any](r.Error())
			}
			if err := merge(out, c, r.Value(), path); err != nil {
				return result.Err[map[string]any](err)
			}
		}
		return result.Ok[map[string]any, *CastingError](out)
	}
	parser := func(obj map[string]any, path Path) ParseOutcome[map[string]any] {
		out := make(map[string]any)
		var errs Errors
		for _, c := range cs {
			r := c.ParseAny(obj, path...)
			if r.IsErr() {
				errs = append(errs, r.Error()...)
				continue
			}
			if err := merge(out, c, r.Value(), path); err != nil {
				errs = append(errs, err)
			}
		}
		if len(errs) > 0 {
			return result.Err[map[string]any](errs)
		}
		return result.Ok[map[string]any, Errors](out)
	}
	return FromGuardAndTransform(AsObject, transform, name, ErrInvalidValueType, parser)
}
