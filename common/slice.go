package common

func PushFront[T any](s []T, x T) []T {
	return append([]T{x}, s...)
}

// Last returns the element n positions from the end, so Last(s, 0) is the
// most recently appended one.
func Last[T any](s []T, n int) T {
	return s[len(s)-1-n]
}

// Clone copies a slice so appends on the copy never reach the original.
func Clone[T any](s []T) []T {
	return append([]T(nil), s...)
}
