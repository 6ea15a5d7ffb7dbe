package castage

// Leaf casters.
var (
	Int     = FromGuard(AsInteger, "int")
	String  = FromGuard(AsString, "string")
	Boolean = FromGuard(AsBoolean, "boolean")
	Number  = FromGuard(AsNumber, "number")
	Object  = FromGuard(AsObject, "object")
	Null    = FromGuard(Predicate(IsNull), "null")
	// UndefinedValue accepts only Undefined.
	UndefinedValue = FromGuard(Predicate(IsUndefined), "undefined")
	// AnyValue accepts everything.
	AnyValue = FromGuard(Predicate(func(any) bool { return true }), "any")
	// Unknown accepts everything and returns it unchanged.
	Unknown = FromGuard(Predicate(func(any) bool { return true }), "unknown")
)
