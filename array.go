package castage

import "github.com/reoring/castage/result"

// Array casts every element with c, short-circuiting on the first failure;
// Parse collects the errors of every element. The name is "Array<elem>".
func Array[T any](c Caster[T]) Caster[[]T] {
	transform := func(list []any, path Path) Outcome[[]T] {
		items := make([]T, 0, len(list))
		for i, v := range list {
			r := c.Cast(v, path.Index(i)...)
			if r.IsErr() {
				return result.Err[[]T](r.Error())
			}
			items = append(items, r.Value())
		}
		return result.Ok[[]T, *CastingError](items)
	}
	parser := func(list []any, path Path) ParseOutcome[[]T] {
		items := make([]T, 0, len(list))
		var errs Errors
		for i, v := range list {
			r := c.Parse(v, path.Index(i)...)
			if r.IsErr() {
				errs = append(errs, r.Error()...)
				continue
			}
			items = append(items, r.Value())
		}
		if len(errs) > 0 {
			return result.Err[[]T](errs)
		}
		return result.Ok[[]T, Errors](items)
	}
	out := FromGuardAndTransform(AsArray, transform, "Array<"+c.name+">", ErrInvalidValueType, parser)
	if c.plain != nil {
		out.plain = func(items []T) any {
			plain := make([]any, len(items))
			for i, it := range items {
				plain[i] = c.plain(it)
			}
			return plain
		}
	}
	return out
}

// ArrayOf is Array over a type-erased element caster.
func ArrayOf(c AnyCaster) Caster[[]any] { return Array(Erase(c)) }

// NonEmptyArray is Array refined by len > 0. Empty input fails with
// ErrInvalidValue expecting "[elem, ...]".
func NonEmptyArray[T any](c Caster[T]) Caster[[]T] {
	name := "NonEmptyArray<" + c.name + ">"
	return Array(c).Named(name).ValidateWith(
		func(items []T) bool { return len(items) > 0 },
		name,
		func(items []T, path Path) *CastingError {
			return NewError(ErrInvalidValue, path, Received("["+c.name+", ...]", items))
		},
	)
}
