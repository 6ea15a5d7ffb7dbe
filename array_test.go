package castage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/castage"
)

func TestArray(t *testing.T) {
	ints := castage.Array(castage.Int)
	assert.Equal(t, "Array<int>", ints.Name())

	assert.Equal(t, []int64{1, 2}, ints.MustCast([]any{1, 2}))
	assert.Equal(t, []int64{3}, ints.MustCast([]int{3}))
	assert.Equal(t, []int64{}, ints.MustCast([]any{}))

	assert.Equal(t, invalidType("int", "x", "xs", "1"), ints.Cast([]any{1, "x", "y"}, "xs").Error())
	assert.Equal(t, invalidType("Array<int>", "x"), ints.Cast("x").Error())
	assert.Equal(t, invalidType("Array<int>", nil), ints.Cast(nil).Error())
	assert.True(t, ints.Cast([]byte("ab")).IsErr())
}

func TestArray_Parse(t *testing.T) {
	r := castage.Array(castage.Int).Parse([]any{"a", 1, "b"})
	require.True(t, r.IsErr())
	assert.Equal(t, castage.Errors{invalidType("int", "a", "0"), invalidType("int", "b", "2")}, r.Error())

	users := castage.Array(castage.Struct(castage.Field("id", castage.Int)).Caster)
	r2 := users.Parse([]any{map[string]any{}, map[string]any{"id": 1}, map[string]any{"id": "2"}}, "users")
	require.True(t, r2.IsErr())
	assert.Equal(t, castage.Errors{
		missing("int", "users", "0", "id"),
		invalidType("int", "2", "users", "2", "id"),
	}, r2.Error())
}

func TestArrayOf(t *testing.T) {
	opt := castage.ArrayOf(castage.Optional(castage.Int))
	assert.Equal(t, "Array<int | undefined>", opt.Name())
	assert.Equal(t, []any{int64(1), castage.Undefined}, opt.MustCast([]any{1, castage.Undefined}))

	nested := castage.Array(castage.Array(castage.String))
	assert.Equal(t, invalidType("string", 1, "1", "0"), nested.Cast([]any{[]any{"a"}, []any{1}}).Error())
}

func TestNonEmptyArray(t *testing.T) {
	ne := castage.NonEmptyArray(castage.String)
	assert.Equal(t, "NonEmptyArray<string>", ne.Name())
	assert.Equal(t, []string{"a"}, ne.MustCast([]any{"a"}))

	assert.Equal(t,
		castage.NewError(castage.ErrInvalidValue, castage.Path{"tags"}, castage.Received("[string, ...]", []string{})),
		ne.Cast([]any{}, "tags").Error())
	assert.Equal(t, invalidType("NonEmptyArray<string>", "a"), ne.Cast("a").Error())
	assert.Equal(t, invalidType("string", 1, "0"), ne.Cast([]any{1}).Error())
}
