package castage

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	gojson "github.com/goccy/go-json"
)

// Code identifies the kind of a CastingError.
type Code string

// Error codes. There are exactly four.
const (
	// ErrMissingValue: the key was absent (or the value undefined) where a
	// concrete value was required.
	ErrMissingValue Code = "ERR_MISSING_VALUE"
	// ErrInvalidValueType: a value is present but has the wrong shape.
	ErrInvalidValueType Code = "ERR_INVALID_VALUE_TYPE"
	// ErrInvalidValue: the shape is right but a refinement rejected it.
	ErrInvalidValue Code = "ERR_INVALID_VALUE"
	// ErrInvalidKey: a record key was rejected by the key caster.
	ErrInvalidKey Code = "ERR_INVALID_KEY"
)

// Extra carries the human-facing details of a CastingError.
type Extra struct {
	Expected string
	// Received is meaningful only when HasReceived is set; a nil Received with
	// HasReceived means the input was null.
	Received    any
	HasReceived bool
	// Causes is populated by unions only: one entry per failed alternative.
	Causes []*CastingError
	Reason string
}

// Received builds an Extra that records the offending value.
func Received(expected string, received any) Extra {
	return Extra{Expected: expected, Received: received, HasReceived: true}
}

// CastingError describes a single value that did not match its caster.
type CastingError struct {
	Code  Code  `json:"code"`
	Path  Path  `json:"path"`
	Extra Extra `json:"extra"`
}

// NewError builds a CastingError. The path is copied.
func NewError(code Code, path Path, extra Extra) *CastingError {
	return &CastingError{Code: code, Path: path.clone(), Extra: extra}
}

// Error renders the error in the multi-line text format (see Render).
func (e *CastingError) Error() string { return Render(e, "") }

// Render formats err as
//
//	<code> at <path>:
//	  expected: <expected>
//	  received: <received>
//
// Each line is prefixed with prefix. Causes follow under a "causes:" line,
// indented by four more spaces and with paths relative to err's path.
func Render(err *CastingError, prefix string) string {
	b := &strings.Builder{}
	render(b, err, err.Path, prefix)
	return b.String()
}

func render(b *strings.Builder, err *CastingError, path Path, prefix string) {
	fmt.Fprintf(b, "%s%s at %s:", prefix, err.Code, path)
	fmt.Fprintf(b, "\n%s  expected: %s", prefix, err.Extra.Expected)
	if err.Extra.HasReceived {
		fmt.Fprintf(b, "\n%s  received: %s", prefix, FormatValue(err.Extra.Received))
	}
	if err.Extra.Reason != "" {
		fmt.Fprintf(b, "\n%s  reason: %s", prefix, err.Extra.Reason)
	}
	if len(err.Extra.Causes) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s  causes:", prefix)
	for _, cause := range err.Extra.Causes {
		b.WriteString("\n")
		render(b, cause, cause.Path.relativeTo(err.Path), prefix+"    ")
	}
}

// FormatValue renders an input value for error messages: strings verbatim,
// nil as null, Undefined as undefined, everything else as compact JSON when
// possible.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case undefinedType:
		return "undefined"
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	}
	if bs, err := gojson.Marshal(v); err == nil {
		return string(bs)
	}
	return fmt.Sprintf("%v", v)
}

// MarshalJSON encodes the error as {"code", "path", "extra"}.
func (e *CastingError) MarshalJSON() ([]byte, error) {
	path := e.Path
	if path == nil {
		path = Path{}
	}
	return gojson.Marshal(struct {
		Code  Code           `json:"code"`
		Path  Path           `json:"path"`
		Extra map[string]any `json:"extra"`
	}{Code: e.Code, Path: path, Extra: e.Extra.wire()})
}

func (x Extra) wire() map[string]any {
	out := map[string]any{"expected": x.Expected}
	if x.HasReceived && !IsUndefined(x.Received) {
		out["received"] = x.Received
		// NaN, ±Inf and other unencodable inputs fall back to their text form.
		if _, err := gojson.Marshal(x.Received); err != nil {
			out["received"] = FormatValue(x.Received)
		}
	}
	if len(x.Causes) > 0 {
		out["causes"] = x.Causes
	}
	if x.Reason != "" {
		out["reason"] = x.Reason
	}
	return out
}

// UnmarshalJSON decodes the format produced by MarshalJSON.
func (e *CastingError) UnmarshalJSON(data []byte) error {
	var w struct {
		Code  Code `json:"code"`
		Path  Path `json:"path"`
		Extra struct {
			Expected string          `json:"expected"`
			Causes   []*CastingError `json:"causes"`
			Reason   string          `json:"reason"`
		} `json:"extra"`
	}
	if err := gojson.Unmarshal(data, &w); err != nil {
		return err
	}
	// received keeps numbers as json.Number so large integers survive.
	var raw struct {
		Extra map[string]any `json:"extra"`
	}
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	received, has := raw.Extra["received"]
	*e = CastingError{
		Code: w.Code,
		Path: w.Path.clone(),
		Extra: Extra{
			Expected:    w.Extra.Expected,
			Received:    received,
			HasReceived: has,
			Causes:      w.Extra.Causes,
			Reason:      w.Extra.Reason,
		},
	}
	return nil
}

// Errors is the list form produced by exhaustive parsing.
type Errors []*CastingError

// Error summarizes the first few errors.
func (es Errors) Error() string {
	if len(es) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(es), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		// e.g. ERR_MISSING_VALUE at user.name
		fmt.Fprintf(b, "%s at %s", es[i].Code, es[i].Path)
	}
	if len(es) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(es))
	}
	return b.String()
}

// Render renders every error in the text format, separated by blank lines.
func (es Errors) Render() string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = Render(e, "")
	}
	return strings.Join(parts, "\n\n")
}

// AsCastingError extracts a *CastingError from err using errors.As.
func AsCastingError(err error) (*CastingError, bool) {
	if err == nil {
		return nil, false
	}
	var ce *CastingError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// AsErrors extracts Errors from err. A single *CastingError is returned as a
// one-element list.
func AsErrors(err error) (Errors, bool) {
	if err == nil {
		return nil, false
	}
	var es Errors
	if errors.As(err, &es) {
		return es, true
	}
	if ce, ok := AsCastingError(err); ok {
		return Errors{ce}, true
	}
	return nil, false
}

// replaceExpected returns a rewrite that substitutes the expected name of
// errors raised exactly at path. Deeper errors are left alone.
func replaceExpected(expected string, path Path) func(*CastingError) *CastingError {
	return func(err *CastingError) *CastingError {
		if len(err.Path) != len(path) {
			return err
		}
		extra := err.Extra
		extra.Expected = expected
		return NewError(err.Code, err.Path, extra)
	}
}

// updateError rewrites the code and path of errors raised at the depth of path.
func updateError(code Code, path Path) func(*CastingError) *CastingError {
	return func(err *CastingError) *CastingError {
		if len(err.Path) != len(path) {
			return err
		}
		return NewError(code, path, err.Extra)
	}
}

func mapErrors(es Errors, fn func(*CastingError) *CastingError) Errors {
	out := make(Errors, len(es))
	for i, e := range es {
		out[i] = fn(e)
	}
	return out
}
