package castage

import (
	"strings"

	"github.com/reoring/castage/result"
)

// Tuple casts a fixed-length positional array. Elements past the end of the
// input are cast as Undefined; if that fails the error becomes
// ErrMissingValue expecting the slot's caster name, so optional slots may be
// omitted. The result always has one entry per caster; extra input elements
// are ignored. The name is "[a, b, ...]".
func Tuple(casters ...AnyCaster) Caster[[]any] {
	cs := append([]AnyCaster(nil), casters...)
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.Name()
	}
	slot := func(list []any, i int) (any, bool) {
		if i < len(list) {
			return list[i], true
		}
		return Undefined, false
	}
	transform := func(list []any, path Path) Outcome[[]any] {
		items := make([]any, len(cs))
		for i, c := range cs {
			v, present := slot(list, i)
			at := path.Index(i)
			r := c.CastAny(v, at...)
			if r.IsErr() {
				if !present {
					return result.Err[[]any](NewError(ErrMissingValue, at, Extra{Expected: c.Name()}))
				}
				return result.Err[[]any](r.Error())
			}
			items[i] = r.Value()
		}
		return result.Ok[[]any, *CastingError](items)
	}
	parser := func(list []any, path Path) ParseOutcome[[]any] {
		items := make([]any, len(cs))
		var errs Errors
		for i, c := range cs {
			v, present := slot(list, i)
			at := path.Index(i)
			r := c.ParseAny(v, at...)
			if r.IsErr() {
				for _, err := range r.Error() {
					if !present {
						err = NewError(ErrMissingValue, at, Extra{Expected: c.Name()})
					}
					errs = append(errs, err)
				}
				continue
			}
			items[i] = r.Value()
		}
		if len(errs) > 0 {
			return result.Err[[]any](errs)
		}
		return result.Ok[[]any, Errors](items)
	}
	return FromGuardAndTransform(AsArray, transform, "["+strings.Join(names, ", ")+"]", ErrInvalidValueType, parser)
}
