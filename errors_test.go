package castage_test

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/castage"
)

func TestRender(t *testing.T) {
	assert.Equal(t,
		"ERR_MISSING_VALUE at path:\n  expected: string",
		missing("string", "path").Error())

	invalid := castage.NewError(castage.ErrInvalidValue, castage.Path{"path"}, castage.Received("string", "+"))
	assert.Equal(t, "ERR_INVALID_VALUE at path:\n  expected: string\n  received: +", invalid.Error())

	assert.Equal(t,
		"ERR_INVALID_VALUE_TYPE at a.0:\n  expected: int\n  received: null",
		invalidType("int", nil, "a", "0").Error())

	assert.Equal(t,
		"ERR_INVALID_VALUE_TYPE at :\n  expected: object\n  received: [1,2]",
		invalidType("object", []any{1, 2}).Error())

	assert.Equal(t, ">> ERR_MISSING_VALUE at x:\n>>   expected: int", castage.Render(missing("int", "x"), ">> "))
}

func TestRender_Causes(t *testing.T) {
	r := castage.OneOf(castage.Int, castage.String).Cast(true, "v")
	require.True(t, r.IsErr())
	want := "ERR_INVALID_VALUE_TYPE at v:\n" +
		"  expected: (int | string)\n" +
		"  received: true\n" +
		"  causes:\n" +
		"    ERR_INVALID_VALUE_TYPE at :\n" +
		"      expected: int\n" +
		"      received: true\n" +
		"    ERR_INVALID_VALUE_TYPE at :\n" +
		"      expected: string\n" +
		"      received: true"
	assert.Equal(t, want, r.Error().Error())
}

func TestRender_Reason(t *testing.T) {
	extra := castage.Received("int", "x")
	extra.Reason = "not a number"
	err := castage.NewError(castage.ErrInvalidValue, castage.Path{"n"}, extra)
	assert.Equal(t, "ERR_INVALID_VALUE at n:\n  expected: int\n  received: x\n  reason: not a number", err.Error())
}

func TestCastingError_JSON(t *testing.T) {
	err := castage.NewError(castage.ErrInvalidValue, castage.Path{"path"}, castage.Received("string", "+"))
	bs, mErr := gojson.Marshal(err)
	require.NoError(t, mErr)
	assert.JSONEq(t, `{"code":"ERR_INVALID_VALUE","path":["path"],"extra":{"expected":"string","received":"+"}}`, string(bs))

	var back castage.CastingError
	require.NoError(t, gojson.Unmarshal(bs, &back))
	assert.Equal(t, err, &back)
}

func TestCastingError_JSONShapes(t *testing.T) {
	bs, err := gojson.Marshal(missing("int"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"ERR_MISSING_VALUE","path":[],"extra":{"expected":"int"}}`, string(bs))

	// null is a real received value, undefined is not
	bs, err = gojson.Marshal(invalidType("int", nil, "a"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"ERR_INVALID_VALUE_TYPE","path":["a"],"extra":{"expected":"int","received":null}}`, string(bs))

	var back castage.CastingError
	require.NoError(t, gojson.Unmarshal(bs, &back))
	assert.True(t, back.Extra.HasReceived)
	assert.Nil(t, back.Extra.Received)

	bs, err = gojson.Marshal(invalidType("int", castage.Undefined, "a"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"ERR_INVALID_VALUE_TYPE","path":["a"],"extra":{"expected":"int"}}`, string(bs))

	union := castage.OneOf(castage.Int, castage.Null).Cast("x").Error()
	bs, err = gojson.Marshal(union)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"code":"ERR_INVALID_VALUE_TYPE","path":[],
		"extra":{"expected":"(int | null)","received":"x","causes":[
			{"code":"ERR_INVALID_VALUE_TYPE","path":[],"extra":{"expected":"int","received":"x"}},
			{"code":"ERR_INVALID_VALUE_TYPE","path":[],"extra":{"expected":"null","received":"x"}}
		]}
	}`, string(bs))

	var decoded castage.CastingError
	require.NoError(t, gojson.Unmarshal(bs, &decoded))
	require.Len(t, decoded.Extra.Causes, 2)
	assert.Equal(t, "null", decoded.Extra.Causes[1].Extra.Expected)
}

func TestCastingError_JSONLargeInteger(t *testing.T) {
	err := invalidType("string", int64(9007199254740993), "id")
	bs, mErr := gojson.Marshal(err)
	require.NoError(t, mErr)
	assert.Contains(t, string(bs), `"received":9007199254740993`)

	var back castage.CastingError
	require.NoError(t, gojson.Unmarshal(bs, &back))
	assert.Equal(t, json.Number("9007199254740993"), back.Extra.Received)

	again, mErr := gojson.Marshal(&back)
	require.NoError(t, mErr)
	assert.Contains(t, string(again), `"received":9007199254740993`)
	assert.Equal(t, "ERR_INVALID_VALUE_TYPE at id:\n  expected: string\n  received: 9007199254740993", back.Error())
}

func TestCastingError_JSONUnencodableReceived(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{math.NaN(), "NaN"},
		{math.Inf(1), "+Inf"},
		{math.Inf(-1), "-Inf"},
	}
	for _, tc := range cases {
		err := castage.Number.Cast(tc.in, "n").Error()
		require.NotNil(t, err)
		bs, mErr := gojson.Marshal(err)
		require.NoError(t, mErr)
		assert.JSONEq(t,
			`{"code":"ERR_INVALID_VALUE_TYPE","path":["n"],"extra":{"expected":"number","received":"`+tc.want+`"}}`,
			string(bs))
	}

	bs, mErr := gojson.Marshal(castage.Errors{castage.Number.Cast(math.NaN()).Error()})
	require.NoError(t, mErr)
	assert.Contains(t, string(bs), `"received":"NaN"`)
}

func TestErrors(t *testing.T) {
	es := castage.Errors{missing("int", "a"), missing("string", "b")}
	assert.Equal(t, "ERR_MISSING_VALUE at a; ERR_MISSING_VALUE at b", es.Error())
	assert.Equal(t, "ERR_MISSING_VALUE at a:\n  expected: int\n\nERR_MISSING_VALUE at b:\n  expected: string", es.Render())

	many := castage.Errors{missing("int", "a"), missing("int", "b"), missing("int", "c"), missing("int", "d")}
	assert.Equal(t, "ERR_MISSING_VALUE at a; ERR_MISSING_VALUE at b; ERR_MISSING_VALUE at c; ... (total 4)", many.Error())
}

func TestAsErrors(t *testing.T) {
	_, err := castage.Int.Try("x")
	require.Error(t, err)

	ce, ok := castage.AsCastingError(fmt.Errorf("decode: %w", err))
	require.True(t, ok)
	assert.Equal(t, invalidType("int", "x"), ce)

	es, ok := castage.AsErrors(err)
	require.True(t, ok)
	assert.Len(t, es, 1)

	_, err = castage.Struct(castage.Field("a", castage.Int), castage.Field("b", castage.Int)).TryAll(map[string]any{})
	es, ok = castage.AsErrors(fmt.Errorf("wrapped: %w", err))
	require.True(t, ok)
	assert.Len(t, es, 2)

	_, ok = castage.AsErrors(nil)
	assert.False(t, ok)
	_, ok = castage.AsCastingError(fmt.Errorf("plain"))
	assert.False(t, ok)
}
