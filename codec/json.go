package codec

import (
	"bytes"
	"errors"
	"io"

	gojson "github.com/goccy/go-json"

	"github.com/reoring/castage"
	"github.com/reoring/castage/result"
)

// JSON decodes a JSON document held in a string. Numbers come out as
// json.Number so integers keep their precision. A syntax error fails with
// ErrInvalidValue and the decoder message as reason.
var JSON = castage.FromGuardAndTransform(castage.AsString, decodeJSON, "JSON", castage.ErrInvalidValueType, nil)

// JSONObject is JSON restricted to objects.
var JSONObject = castage.Map(
	JSON.Validate(castage.IsObject, "Object"),
	func(v any) map[string]any { m, _ := castage.AsObject(v); return m },
	"Object",
)

// JSONStruct decodes a JSON string and casts the document with
// castage.Struct(fields...). The caster is named "Json({ ... })"; errors
// past the decoding step carry "::JSON" on their path.
func JSONStruct(fields ...castage.FieldDef) castage.Caster[map[string]any] {
	s := castage.Struct(fields...)
	name := "Json(" + s.Name() + ")"
	return castage.Chain(JSON, s.Named(name).Caster, name)
}

func decodeJSON(s string, path castage.Path) castage.Outcome[any] {
	v, err := DecodeJSON([]byte(s))
	if err != nil {
		extra := castage.Received("JSON", s)
		extra.Reason = err.Error()
		return result.Err[any](castage.NewError(castage.ErrInvalidValue, path, extra))
	}
	return result.Ok[any, *castage.CastingError](v)
}

// ErrTrailingData is returned by DecodeJSON when the input holds more than
// one value.
var ErrTrailingData = errors.New("unexpected data after top-level value")

// DecodeJSON decodes exactly one JSON value with json.Number for numbers.
func DecodeJSON(data []byte) (any, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	var rest any
	if err := dec.Decode(&rest); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}
	return v, nil
}
