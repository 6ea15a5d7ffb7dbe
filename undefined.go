package castage

// undefinedType marks a value that is absent rather than null.
type undefinedType struct{}

// Undefined stands for an absent value. Struct and tuple casters pass it to
// field casters for missing keys and trailing elements; nil means null.
var Undefined any = undefinedType{}

func (undefinedType) String() string { return "undefined" }

// MarshalJSON encodes Undefined as null, the closest JSON equivalent.
func (undefinedType) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// IsUndefined reports whether v is Undefined.
func IsUndefined(v any) bool {
	_, ok := v.(undefinedType)
	return ok
}
