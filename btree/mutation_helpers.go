package btree

// cloneSlice copies src into a new slice of the same length.
func cloneSlice[T any](src []T) []T {
	out := make([]T, len(src))
	copy(out, src)
	return out
}

// joinSlices copies a and b into one new slice.
func joinSlices[T any](a, b []T) []T {
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// reversedSlice returns a reversed copy of src.
func reversedSlice[T any](src []T) []T {
	out := make([]T, len(src))
	for i, v := range src {
		out[len(src)-1-i] = v
	}
	return out
}

// replaceAt returns a copy of src with the value at idx replaced.
func replaceAt[T any](src []T, idx int, value T) []T {
	assert(idx >= 0 && idx < len(src), "replaceAt index out of range")
	out := cloneSlice(src)
	out[idx] = value
	return out
}
