package castage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/castage"
)

func TestAllOf(t *testing.T) {
	ab := castage.AllOf(
		castage.Struct(castage.Field("a", castage.Int)),
		castage.Struct(castage.Field("b", castage.String)),
	)
	assert.Equal(t, "({ a: int } & { b: string })", ab.Name())

	got, err := ab.Try(map[string]any{"a": 1, "b": "x", "c": true})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": int64(1), "b": "x"}, got)

	assert.Equal(t, invalidType("({ a: int } & { b: string })", nil), ab.Cast(nil).Error())
	assert.Equal(t, missing("string", "b"), ab.Cast(map[string]any{"a": 1}).Error())
}

func TestAllOf_ParseCollectsEveryComponent(t *testing.T) {
	ab := castage.AllOf(
		castage.Struct(castage.Field("a", castage.Int)),
		castage.Struct(castage.Field("b", castage.String)),
	)
	r := ab.Parse(map[string]any{}, "obj")
	require.True(t, r.IsErr())
	assert.Equal(t, castage.Errors{missing("int", "obj", "a"), missing("string", "obj", "b")}, r.Error())
}

func TestAllOf_LaterComponentWins(t *testing.T) {
	c := castage.AllOf(
		castage.Struct(castage.Field("a", castage.AnyValue)),
		castage.Struct(castage.Field("a", castage.Int)),
	)
	assert.Equal(t, map[string]any{"a": int64(1)}, c.MustCast(map[string]any{"a": 1.0}))
}

func TestAllOf_NonObjectComponent(t *testing.T) {
	one := castage.Map(castage.Object, func(map[string]any) any { return 1 }, "one")
	c := castage.AllOf(castage.Struct(), one)
	assert.Equal(t, invalidType("one", 1), c.Cast(map[string]any{}).Error())
}
