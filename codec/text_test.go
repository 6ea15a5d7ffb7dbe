package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/castage"
	"github.com/reoring/castage/codec"
)

func TestTextInt(t *testing.T) {
	assert.Equal(t, "text::int", codec.TextInt.Name())
	for in, want := range map[string]int64{"0": 0, "1": 1, "42": 42, "-1": -1, "-42": -42} {
		assert.Equal(t, want, codec.TextInt.MustCast(in))
	}
	for _, in := range []any{"", " ", "  ", "a", "1.5", "1.0", "1.0.0", "0.1", "-1.1", 1, nil} {
		r := codec.TextInt.Cast(in)
		require.True(t, r.IsErr(), "input %#v", in)
		assert.Equal(t, castage.NewError(castage.ErrInvalidValueType, nil, castage.Received("text::int", in)), r.Error())
	}
}

func TestTextNumber(t *testing.T) {
	assert.Equal(t, "text::number", codec.TextNumber.Name())
	for in, want := range map[string]float64{
		"0": 0, "42": 42, "-1": -1, "1.5": 1.5, "0.0": 0, "-1.1": -1.1,
		"1.2e20": 1.2e20, "1.2e-20": 1.2e-20, "-1.2e+20": -1.2e20,
	} {
		assert.Equal(t, want, codec.TextNumber.MustCast(in), "input %q", in)
	}
	for _, in := range []any{"", " 1", "a", "NaN", "Infinity", "inf", "0x10", "1_000", 1.5} {
		assert.True(t, codec.TextNumber.Cast(in).IsErr(), "input %#v", in)
	}
}

func TestTextBool(t *testing.T) {
	assert.Equal(t, "text::boolean", codec.TextBool.Name())
	assert.True(t, codec.TextBool.MustCast("true"))
	assert.False(t, codec.TextBool.MustCast("false"))
	for _, in := range []any{"True", "1", "", true, nil} {
		r := codec.TextBool.Cast(in)
		require.True(t, r.IsErr())
		assert.Equal(t, castage.NewError(castage.ErrInvalidValueType, nil, castage.Received("text::boolean", in)), r.Error())
	}
}

func TestPossibleText(t *testing.T) {
	assert.Equal(t, "(int | text::int)", codec.PossibleTextInt.Name())
	assert.Equal(t, int64(4), codec.PossibleTextInt.MustCast(4))
	assert.Equal(t, int64(4), codec.PossibleTextInt.MustCast("4"))
	assert.True(t, codec.PossibleTextInt.Cast("4.5").IsErr())

	assert.Equal(t, 2.5, codec.PossibleTextNumber.MustCast("2.5"))
	assert.Equal(t, 2.5, codec.PossibleTextNumber.MustCast(2.5))

	assert.True(t, codec.PossibleTextBool.MustCast("true"))
	assert.False(t, codec.PossibleTextBool.MustCast(false))

	query := castage.Struct(
		castage.Field("page", codec.PossibleTextInt.Default(1, "")),
		castage.Field("verbose", castage.Optional(codec.PossibleTextBool)),
	)
	got, err := query.Try(map[string]any{"page": "3", "verbose": "false"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"page": int64(3), "verbose": false}, got)
}
