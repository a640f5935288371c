package buffer

// equalSlice reports whether a and b have the same length and elements.
func equalSlice[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// EqualAsUint64Slice compares two slices whose elements are the size of a uint64.
func EqualAsUint64Slice[T comparable](a, b []T) bool {
	return equalSlice(a, b)
}

// EqualAsUint32Slice compares two slices whose elements are the size of a uint32.
func EqualAsUint32Slice[T comparable](a, b []T) bool {
	return equalSlice(a, b)
}

// EqualAsUint16Slice compares two slices whose elements are the size of a uint16.
func EqualAsUint16Slice[T comparable](a, b []T) bool {
	return equalSlice(a, b)
}

// EqualAsUint8Slice compares two slices whose elements are the size of a uint8.
func EqualAsUint8Slice[T comparable](a, b []T) bool {
	return equalSlice(a, b)
}
