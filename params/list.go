package params

// List collects elements into a slice. Merging concatenates, so only the multiset of elements is
// independent of merge order, not their sequence.
type List[E any] struct{}

// Collector returns a List over E
func Collector[E any]() List[E] {
	return List[E]{}
}

// Zero returns an empty slice
func (List[E]) Zero(initial []E) []E {
	return []E{}
}

// AddAccumulator appends an element to r
func (List[E]) AddAccumulator(r []E, t E) ([]E, error) {
	return append(r, t), nil
}

// AddInPlace appends r2 to r1
func (List[E]) AddInPlace(r1 []E, r2 []E) ([]E, error) {
	return append(r1, r2...), nil
}

// Clone copies a slice
func (List[E]) Clone(r []E) []E {
	c := make([]E, len(r))
	copy(c, r)
	return c
}
