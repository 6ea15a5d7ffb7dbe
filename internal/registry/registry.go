// Package registry resolves caster names given on the command line or in a
// request URL.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/reoring/castage"
	"github.com/reoring/castage/codec"
)

// ErrUnknownCaster is returned by Lookup for names it cannot resolve.
var ErrUnknownCaster = errors.New("unknown caster")

// Registry maps names to casters. Besides registered names, Lookup
// understands the wrappers Array<N>, NonEmptyArray<N>, Record<string, N>,
// "N | undefined" and "N | null".
type Registry struct {
	mu      sync.RWMutex
	casters map[string]castage.AnyCaster
}

// New returns a registry holding the built-in casters under their own
// names.
func New() *Registry {
	r := &Registry{casters: make(map[string]castage.AnyCaster)}
	for _, c := range []castage.AnyCaster{
		castage.Int, castage.String, castage.Boolean, castage.Number, castage.Object,
		castage.Null, castage.UndefinedValue, castage.AnyValue, castage.Unknown,
		codec.Date, codec.IsoDate, codec.UnixTimestamp, codec.JsTimestamp,
		codec.JSON, codec.JSONObject, codec.YAML,
		codec.TextInt, codec.TextNumber, codec.TextBool,
	} {
		r.Register(c.Name(), c)
	}
	return r
}

// Register adds or replaces a named caster.
func (r *Registry) Register(name string, c castage.AnyCaster) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.casters[name] = c
}

// Names lists the registered names in order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.casters))
	for n := range r.casters {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Lookup resolves name, building wrapper casters on demand.
func (r *Registry) Lookup(name string) (castage.AnyCaster, error) {
	name = strings.TrimSpace(name)
	r.mu.RLock()
	c, ok := r.casters[name]
	r.mu.RUnlock()
	if ok {
		return c, nil
	}

	if inner, ok := strings.CutSuffix(name, " | undefined"); ok {
		c, err := r.Lookup(inner)
		if err != nil {
			return nil, err
		}
		return castage.Optional(castage.Erase(c)), nil
	}
	if inner, ok := strings.CutSuffix(name, " | null"); ok {
		c, err := r.Lookup(inner)
		if err != nil {
			return nil, err
		}
		return castage.Nullable(castage.Erase(c)), nil
	}
	if inner, ok := unwrap(name, "Array<"); ok {
		c, err := r.Lookup(inner)
		if err != nil {
			return nil, err
		}
		return castage.ArrayOf(c), nil
	}
	if inner, ok := unwrap(name, "NonEmptyArray<"); ok {
		c, err := r.Lookup(inner)
		if err != nil {
			return nil, err
		}
		return castage.NonEmptyArray(castage.Erase(c)), nil
	}
	if inner, ok := unwrap(name, "Record<string,"); ok {
		c, err := r.Lookup(inner)
		if err != nil {
			return nil, err
		}
		return castage.Record(castage.String, castage.Erase(c)), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCaster, name)
}

func unwrap(name, prefix string) (string, bool) {
	rest, ok := strings.CutPrefix(name, prefix)
	if !ok {
		return "", false
	}
	inner, ok := strings.CutSuffix(rest, ">")
	return strings.TrimSpace(inner), ok
}
