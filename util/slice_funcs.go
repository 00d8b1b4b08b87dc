package util

// Contains returns whether slice has an element equal to elem.
func Contains[T comparable](slice []T, elem T) bool {
	for _, x := range slice {
		if x == elem {
			return true
		}
	}

	return false
}

// Map returns the slice produced by applying f to each element of slice.
func Map[T, R any](slice []T, f func(T) R) []R {
	mapped := make([]R, len(slice))

	for i, elem := range slice {
		mapped[i] = f(elem)
	}

	return mapped
}
