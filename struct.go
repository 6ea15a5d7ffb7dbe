package castage

import (
	"strings"

	"github.com/reoring/castage/result"
)

// FieldDef declares one key of a struct schema.
type FieldDef struct {
	Key    string
	Caster AnyCaster
}

// Field pairs a key with its caster.
func Field(key string, c AnyCaster) FieldDef { return FieldDef{Key: key, Caster: c} }

// StructCaster is a keyed-record caster producing map[string]any. It
// satisfies AnyCaster directly; generic combinators such as Array, Map or
// Optional need the embedded Caster:
//
//	castage.Array(castage.Struct(fields...).Caster)
type StructCaster struct {
	Caster[map[string]any]
	fields []FieldDef
}

// Struct builds a caster for objects with the declared fields. Fields are
// checked in declaration order; unknown input keys are ignored and dropped.
// A field whose key is absent fails with ErrMissingValue unless its caster
// accepts Undefined, in which case it is left out of the result. Duplicate
// keys panic.
func Struct(fields ...FieldDef) StructCaster {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, dup := seen[f.Key]; dup {
			panic("castage: duplicate struct field " + f.Key)
		}
		seen[f.Key] = struct{}{}
	}
	fs := append([]FieldDef(nil), fields...)
	return StructCaster{
		Caster: FromGuardAndTransform(AsObject, structTransform(fs), structName(fs), ErrInvalidValueType, structParser(fs)),
		fields: fs,
	}
}

// Named returns a copy of s reporting itself as name.
func (s StructCaster) Named(name string) StructCaster {
	s.Caster = s.Caster.Named(name)
	return s
}

// Fields returns the declared fields in order.
func (s StructCaster) Fields() []FieldDef { return append([]FieldDef(nil), s.fields...) }

func structName(fields []FieldDef) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.Key + ": " + f.Caster.Name()
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// missingValue reports an absent key: the code becomes ErrMissingValue with
// the field caster's name and no received value.
func missingValue(err *CastingError, c AnyCaster) *CastingError {
	return NewError(ErrMissingValue, err.Path, Extra{Expected: c.Name()})
}

func lookupField(obj map[string]any, key string) (any, bool) {
	v, ok := obj[key]
	if !ok {
		return Undefined, false
	}
	return v, true
}

func structTransform(fields []FieldDef) Transform[map[string]any, map[string]any] {
	return func(obj map[string]any, path Path) Outcome[map[string]any] {
		out := make(map[string]any, len(fields))
		for _, f := range fields {
			v, present := lookupField(obj, f.Key)
			r := f.Caster.CastAny(v, path.Field(f.Key)...)
			if r.IsErr() {
				err := r.Error()
				if !present {
					err = missingValue(err, f.Caster)
				}
				return result.Err[map[string]any](err)
			}
			if val := r.Value(); present || !IsUndefined(val) {
				out[f.Key] = val
			}
		}
		return result.Ok[map[string]any, *CastingError](out)
	}
}

func structParser(fields []FieldDef) Parser[map[string]any, map[string]any] {
	return func(obj map[string]any, path Path) ParseOutcome[map[string]any] {
		out := make(map[string]any, len(fields))
		var errs Errors
		for _, f := range fields {
			v, present := lookupField(obj, f.Key)
			r := f.Caster.ParseAny(v, path.Field(f.Key)...)
			if r.IsErr() {
				for _, err := range r.Error() {
					if !present {
						err = missingValue(err, f.Caster)
					}
					errs = append(errs, err)
				}
				continue
			}
			if val := r.Value(); present || !IsUndefined(val) {
				out[f.Key] = val
			}
		}
		if len(errs) > 0 {
			return result.Err[map[string]any](errs)
		}
		return result.Ok[map[string]any, Errors](out)
	}
}
