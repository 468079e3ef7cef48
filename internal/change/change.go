// Package change carries a value together with whether producing it modified anything.
package change

// Result is either Changed or Unchanged. The zero value is Unchanged with a zero value.
type Result[T any] struct {
	value   T
	changed bool
}

func Changed[T any](v T) Result[T] { return Result[T]{value: v, changed: true} }

func Unchanged[T any](v T) Result[T] { return Result[T]{value: v} }

func (r Result[T]) Value() T { return r.value }

func (r Result[T]) IsChanged() bool { return r.changed }

// IfChanged runs fn with the value only for the Changed variant and returns r unchanged.
func (r Result[T]) IfChanged(fn func(T)) Result[T] {
	if r.changed {
		fn(r.value)
	}
	return r
}

