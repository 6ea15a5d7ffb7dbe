package codec

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/reoring/castage"
	"github.com/reoring/castage/result"
)

// YAML decodes a YAML document held in a string. Mappings come out as
// map[string]any, with non-string keys formatted, so the result feeds
// straight into Struct or Record.
var YAML = castage.FromGuardAndTransform(castage.AsString, decodeYAML, "YAML", castage.ErrInvalidValueType, nil)

// YAMLStruct is the YAML counterpart of JSONStruct, named "Yaml({ ... })".
func YAMLStruct(fields ...castage.FieldDef) castage.Caster[map[string]any] {
	s := castage.Struct(fields...)
	name := "Yaml(" + s.Name() + ")"
	return castage.Chain(YAML, s.Named(name).Caster, name)
}

func decodeYAML(s string, path castage.Path) castage.Outcome[any] {
	v, err := DecodeYAML([]byte(s))
	if err != nil {
		extra := castage.Received("YAML", s)
		extra.Reason = err.Error()
		return result.Err[any](castage.NewError(castage.ErrInvalidValue, path, extra))
	}
	return result.Ok[any, *castage.CastingError](v)
}

// DecodeYAML decodes one YAML document into plain values. An empty document
// decodes to nil.
func DecodeYAML(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return normalizeYAML(v), nil
}

func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeYAML(e)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = normalizeYAML(e)
		}
		return out
	case []any:
		for i, e := range t {
			t[i] = normalizeYAML(e)
		}
		return t
	}
	return v
}
