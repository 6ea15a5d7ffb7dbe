package bind_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/castage"
	"github.com/reoring/castage/bind"
	"github.com/reoring/castage/codec"
)

type address struct {
	Street string `json:"street"`
	Zip    int    `json:"zip"`
}

type user struct {
	Name     string    `json:"name"`
	Age      int       `json:"age"`
	Tags     []string  `json:"tags,omitempty"`
	Address  address   `json:"address"`
	Nickname *string   `json:"nickname"`
	Joined   time.Time `json:"joined"`
}

func userCaster() castage.StructCaster {
	return castage.Struct(
		castage.Field("name", castage.String),
		castage.Field("age", castage.Int),
		castage.Field("tags", castage.Optional(castage.Array(castage.String))),
		castage.Field("address", castage.Struct(
			castage.Field("street", castage.String),
			castage.Field("zip", castage.Int),
		)),
		castage.Field("nickname", castage.Nullable(castage.String)),
		castage.Field("joined", codec.IsoDate),
	).Named("User")
}

func TestInto(t *testing.T) {
	c := bind.Into[user](userCaster().Caster, "")
	assert.Equal(t, "User", c.Name())

	got, err := c.Try(map[string]any{
		"name":     "Ann",
		"age":      41,
		"tags":     []any{"a", "b"},
		"address":  map[string]any{"street": "Main", "zip": 12345},
		"nickname": nil,
		"joined":   "2020-01-02",
	})
	require.NoError(t, err)
	assert.Equal(t, user{
		Name:    "Ann",
		Age:     41,
		Tags:    []string{"a", "b"},
		Address: address{Street: "Main", Zip: 12345},
		Joined:  time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC),
	}, got)

	nick, err := c.Try(map[string]any{
		"name": "Bob", "age": 3, "address": map[string]any{"street": "x", "zip": 1},
		"nickname": "bobby", "joined": "2021",
	})
	require.NoError(t, err)
	require.NotNil(t, nick.Nickname)
	assert.Equal(t, "bobby", *nick.Nickname)
	assert.Nil(t, nick.Tags)
}

func TestInto_CastErrorsPassThrough(t *testing.T) {
	c := bind.Into[user](userCaster().Caster, "")
	_, err := c.Try(map[string]any{"name": 1})
	ce, ok := castage.AsCastingError(err)
	require.True(t, ok)
	assert.Equal(t, castage.ErrInvalidValueType, ce.Code)
	assert.Equal(t, castage.Path{"name"}, ce.Path)

	_, err = c.TryAll(map[string]any{})
	es, ok := castage.AsErrors(err)
	require.True(t, ok)
	assert.Len(t, es, 5)
}

func TestInto_DecodeFailure(t *testing.T) {
	type narrow struct {
		N uint8 `json:"n"`
	}
	c := bind.Into[narrow](castage.Struct(castage.Field("n", castage.String)).Caster, "Narrow")
	r := c.Cast(map[string]any{"n": "x"}, "body")
	require.True(t, r.IsErr())
	e := r.Error()
	assert.Equal(t, castage.ErrInvalidValue, e.Code)
	assert.Equal(t, castage.Path{"body"}, e.Path)
	assert.Equal(t, "Narrow", e.Extra.Expected)
	assert.True(t, strings.HasPrefix(e.Extra.Reason, bind.ReasonDecode), e.Extra.Reason)
}

func TestDecode(t *testing.T) {
	var a address
	require.NoError(t, bind.Decode(map[string]any{"street": "s", "zip": int64(9)}, &a))
	assert.Equal(t, address{Street: "s", Zip: 9}, a)
}
