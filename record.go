package castage

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/reoring/castage/result"
)

// Record casts an object with dynamic keys. Keys are visited in ascending
// order. A key rejected by key fails with ErrInvalidKey at the record's own
// path (received is the raw key); values are cast at path+key. The name is
// "Record<key, value>".
//
// Parse collects value errors exhaustively but still checks keys with Cast:
// a key caster is not expected to report more than one error per key.
func Record[K comparable, V any](key Caster[K], value Caster[V]) Caster[map[K]V] {
	transform := func(obj map[string]any, path Path) Outcome[map[K]V] {
		out := make(map[K]V, len(obj))
		for _, k := range sortedKeys(obj) {
			kr := key.Cast(k, path...).MapErr(updateError(ErrInvalidKey, path))
			if kr.IsErr() {
				return result.Err[map[K]V](kr.Error())
			}
			vr := value.Cast(obj[k], path.Field(k)...)
			if vr.IsErr() {
				return result.Err[map[K]V](vr.Error())
			}
			out[kr.Value()] = vr.Value()
		}
		return result.Ok[map[K]V, *CastingError](out)
	}
	parser := func(obj map[string]any, path Path) ParseOutcome[map[K]V] {
		out := make(map[K]V, len(obj))
		var errs Errors
		for _, k := range sortedKeys(obj) {
			kr := key.Cast(k, path...).MapErr(updateError(ErrInvalidKey, path))
			if kr.IsErr() {
				errs = append(errs, kr.Error())
				continue
			}
			vr := value.Parse(obj[k], path.Field(k)...)
			if vr.IsErr() {
				errs = append(errs, vr.Error()...)
				continue
			}
			out[kr.Value()] = vr.Value()
		}
		if len(errs) > 0 {
			return result.Err[map[K]V](errs)
		}
		return result.Ok[map[K]V, Errors](out)
	}
	out := FromGuardAndTransform(AsObject, transform, "Record<"+key.name+", "+value.name+">", ErrInvalidValueType, parser)
	if value.plain != nil || reflect.TypeFor[K]().Kind() != reflect.String {
		out.plain = func(m map[K]V) any {
			plain := make(map[string]any, len(m))
			for k, v := range m {
				plain[keyString(key.plainOf(k))] = value.plainOf(v)
			}
			return plain
		}
	}
	return out
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	if rv := reflect.ValueOf(k); rv.Kind() == reflect.String {
		return rv.String()
	}
	return fmt.Sprint(k)
}
