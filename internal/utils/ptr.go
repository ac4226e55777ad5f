package utils

// Ptr returns a pointer to v. Useful for building partial update inputs
// whose optional fields are pointers.
func Ptr[T any](v T) *T {
	return &v
}

// ComparePtr compares two pointers of the same type.
// It returns true if both are nil, or if both are non-nil and their values are equal.
func ComparePtr[T comparable](a, b *T) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
