package castage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/castage"
)

func TestTuple(t *testing.T) {
	tup := castage.Tuple(castage.Int, castage.String)
	assert.Equal(t, "[int, string]", tup.Name())

	assert.Equal(t, []any{int64(1), "a"}, tup.MustCast([]any{1, "a"}))
	assert.Equal(t, []any{int64(1), "a"}, tup.MustCast([]any{1, "a", true}))

	assert.Equal(t, invalidType("int", "x", "0"), tup.Cast([]any{"x", 1}).Error())
	assert.Equal(t, missing("string", "t", "1"), tup.Cast([]any{1}, "t").Error())
	assert.Equal(t, invalidType("[int, string]", map[string]any{}), tup.Cast(map[string]any{}).Error())
}

func TestTuple_OptionalTail(t *testing.T) {
	tup := castage.Tuple(castage.Number, castage.Optional(castage.Number))
	assert.Equal(t, []any{1.0, castage.Undefined}, tup.MustCast([]any{1}))
	assert.Equal(t, []any{1.0, 2.0}, tup.MustCast([]any{1, 2}))

	// an explicit undefined in range is present, so the error keeps its type
	strict := castage.Tuple(castage.Number, castage.Number)
	assert.Equal(t, invalidType("number", castage.Undefined, "1"), strict.Cast([]any{1, castage.Undefined}).Error())
}

func TestTuple_Parse(t *testing.T) {
	tup := castage.Tuple(castage.Int, castage.String)
	r := tup.Parse([]any{})
	require.True(t, r.IsErr())
	assert.Equal(t, castage.Errors{missing("int", "0"), missing("string", "1")}, r.Error())

	r = tup.Parse([]any{"x", 2})
	require.True(t, r.IsErr())
	assert.Equal(t, castage.Errors{invalidType("int", "x", "0"), invalidType("string", 2, "1")}, r.Error())
}
