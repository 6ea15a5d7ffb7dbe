// Package castage validates untyped data (decoded JSON, YAML, query
// parameters) and converts it into typed Go values.
//
// A Caster[T] checks a value against an expected shape and returns either a
// T or a *CastingError describing the first mismatch: its Code, the Path to
// the offending value, and what was expected and received. Casters compose:
// Struct, Array, Tuple, Record, OneOf and AllOf build containers from leaf
// casters such as Int, String or Values. Optional and Nullable widen a
// caster; methods like Default and Validate refine it.
//
// Every caster has two entry points:
//
//   - Cast stops at the first error.
//   - Parse keeps going through container elements and returns Errors.
//
// Design policy:
//   - Casters are immutable values; sharing them between goroutines is safe.
//   - The nesting limit (SetMaxDepth) is the only process-wide setting. It is
//     read atomically on every cast; set it once at startup, since changing
//     it affects casts already running in other goroutines.
//   - Casting never panics. MustCast and result.Unwrap are the only helpers
//     that do.
//   - Wire formats (JSON, YAML, text, timestamps) live under codec/, struct
//     binding under bind/, the net/http middleware under middleware/ and the
//     CLI under cmd/castage.
//
// Typical usage:
//
//	user := castage.Struct(
//		castage.Field("name", castage.String),
//		castage.Field("age", castage.Optional(castage.Int)),
//	).Named("User")
//
//	v, err := user.Try(doc)      // first error only
//	v, err = user.TryAll(doc)    // castage.Errors
//	fmt.Println(err)
package castage
