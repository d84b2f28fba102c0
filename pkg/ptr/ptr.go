// Package ptr provides a helper for taking pointers to literal values.
package ptr

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
