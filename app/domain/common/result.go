package common

// Result wraps a value that may have been produced in degraded mode. When an
// upstream query fails, the catalog serves the zero shape of the value and
// marks the result degraded instead of surfacing an error: an empty shelf
// beats a crashed page. Degraded exists so callers and metrics can tell
// "genuinely empty" from "upstream failed".
type Result[T any] struct {
	Value    T    `json:"value"`
	Degraded bool `json:"degraded"`
}

// Ok wraps a successfully computed value.
func Ok[T any](value T) Result[T] {
	return Result[T]{Value: value}
}

// Degraded wraps a fallback value produced after an upstream failure.
func Degraded[T any](value T) Result[T] {
	return Result[T]{Value: value, Degraded: true}
}
