package castage

import (
	"encoding/json"
	"reflect"
	"strings"

	gojson "github.com/goccy/go-json"
)

// Literal is the set of types usable with Value and Values.
type Literal interface {
	~string | ~bool | ~int | ~int64 | ~float64
}

// Value accepts exactly v. Numbers compare by value across Go numeric kinds.
func Value[T Literal](v T) Caster[T] {
	return Values(v)
}

// Values accepts any of vs; the name lists the JSON-rendered literals joined
// by " | ".
func Values[T Literal](vs ...T) Caster[T] {
	names := make([]string, len(vs))
	for i, v := range vs {
		names[i] = literalName(v)
	}
	guard := func(value any) (T, bool) {
		for _, v := range vs {
			if literalEqual(v, value) {
				return v, true
			}
		}
		var zero T
		return zero, false
	}
	return FromGuard(guard, strings.Join(names, " | "))
}

func literalName(v any) string {
	bs, err := gojson.Marshal(v)
	if err != nil {
		return FormatValue(v)
	}
	return string(bs)
}

func literalEqual(lit, value any) bool {
	if lf, ok := toFloat64(lit); ok {
		if _, isBool := value.(bool); isBool {
			return false
		}
		vf, ok := toFloat64(value)
		return ok && vf == lf
	}
	lv, vv := reflect.ValueOf(lit), reflect.ValueOf(value)
	if !vv.IsValid() || lv.Kind() != vv.Kind() {
		return false
	}
	switch lv.Kind() {
	case reflect.String:
		if _, isNum := value.(json.Number); isNum {
			return false
		}
		return lv.String() == vv.String()
	case reflect.Bool:
		return lv.Bool() == vv.Bool()
	}
	return false
}
