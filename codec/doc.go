// Package codec holds casters that decode a wire representation (text,
// JSON, YAML, timestamps) into a value before or instead of checking its
// shape. Every caster here is built from castage.FromGuardAndTransform, so
// it composes with the structural casters like any other.
package codec
