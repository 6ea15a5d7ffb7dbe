// Package bind turns the map produced by a struct caster into a typed Go
// value, so callers can validate with castage and then work with their own
// structs. Field names are matched through `json` tags.
package bind

import (
	"github.com/mitchellh/mapstructure"

	"github.com/reoring/castage"
	"github.com/reoring/castage/result"
)

// ReasonDecode prefixes the reason of errors raised while binding.
const ReasonDecode = "cannot bind: "

// Into casts with c and decodes the resulting object into a T. A decode
// failure is ErrInvalidValue at the call path, expecting name (c's name when
// empty), with the decoder message as reason.
func Into[T any](c castage.Caster[map[string]any], name string) castage.Caster[T] {
	if name == "" {
		name = c.Name()
	}
	transform := func(v any, path castage.Path) castage.Outcome[T] {
		return result.Chain(c.Cast(v, path...), func(obj map[string]any) castage.Outcome[T] {
			return decode[T](obj, name, path)
		})
	}
	parser := func(v any, path castage.Path) castage.ParseOutcome[T] {
		return result.Chain(c.Parse(v, path...), func(obj map[string]any) castage.ParseOutcome[T] {
			r := decode[T](obj, name, path)
			if r.IsErr() {
				return result.Err[T](castage.Errors{r.Error()})
			}
			return result.Ok[T, castage.Errors](r.Value())
		})
	}
	return castage.FromGuardAndTransform(castage.Predicate(func(any) bool { return true }), transform, name, "", parser)
}

// Decode fills out from obj using the same rules as Into.
func Decode(obj map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		Result:     out,
		DecodeHook: mapstructure.StringToTimeHookFunc("2006-01-02T15:04:05Z07:00"),
	})
	if err != nil {
		return err
	}
	return dec.Decode(obj)
}

func decode[T any](obj map[string]any, name string, path castage.Path) castage.Outcome[T] {
	var out T
	if err := Decode(obj, &out); err != nil {
		extra := castage.Received(name, obj)
		extra.Reason = ReasonDecode + err.Error()
		return result.Err[T](castage.NewError(castage.ErrInvalidValue, path, extra))
	}
	return result.Ok[T, *castage.CastingError](out)
}
