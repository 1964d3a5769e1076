package params

// Count counts elements of any type
type Count[T any] struct{}

// Counter returns a Count over T
func Counter[T any]() Count[T] {
	return Count[T]{}
}

// Zero returns 0
func (Count[T]) Zero(initial uint64) uint64 {
	return 0
}

// AddAccumulator counts one more element
func (Count[T]) AddAccumulator(r uint64, _ T) (uint64, error) {
	return r + 1, nil
}

// AddInPlace adds two counts
func (Count[T]) AddInPlace(r1 uint64, r2 uint64) (uint64, error) {
	return r1 + r2, nil
}
