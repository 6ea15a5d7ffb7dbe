package codec

import (
	"math"
	"strconv"
	"strings"

	"github.com/reoring/castage"
)

// TextInt accepts a decimal integer written as a string, e.g. a query
// parameter. Anything else, including "1.0", is a type error.
var TextInt = castage.FromGuard(func(v any) (int64, bool) {
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	return n, err == nil
}, "text::int")

// TextNumber accepts a finite decimal number written as a string.
var TextNumber = castage.FromGuard(func(v any) (float64, bool) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) != s || strings.ContainsAny(s, "_xXpP") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}, "text::number")

// TextBool accepts exactly "true" or "false".
var TextBool = castage.FromGuard(func(v any) (bool, bool) {
	switch v {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}, "text::boolean")

// PossibleTextInt accepts a native integer or its text form.
var PossibleTextInt = castage.OneOfT(castage.Int, TextInt)

// PossibleTextNumber accepts a native number or its text form.
var PossibleTextNumber = castage.OneOfT(castage.Number, TextNumber)

// PossibleTextBool accepts a native boolean or its text form.
var PossibleTextBool = castage.OneOfT(castage.Boolean, TextBool)
