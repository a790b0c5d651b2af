package colltab

// Option is the result of a table lookup, which may come up empty.
type Option[T any] struct {
	value T
	ok    bool
}

// Some wraps the result of a successful lookup.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None is the result of a lookup without a hit.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome reports whether the lookup found an entry.
func (o Option[T]) IsSome() bool {
	return o.ok
}

// IsNone reports whether the lookup came up empty.
func (o Option[T]) IsNone() bool {
	return !o.ok
}

// Unwrap returns the entry found, in Go's "(value, ok)" style.
func (o Option[T]) Unwrap() (T, bool) {
	return o.value, o.ok
}
