package params

// Set is the aggregate of a SetUnion
type Set[E comparable] map[E]struct{}

// SetUnion adds elements to a set, and unions sets together
type SetUnion[E comparable] struct{}

// Union returns a SetUnion over E
func Union[E comparable]() SetUnion[E] {
	return SetUnion[E]{}
}

// Zero returns an empty set
func (SetUnion[E]) Zero(initial Set[E]) Set[E] {
	return make(Set[E])
}

// AddAccumulator adds an element to r
func (SetUnion[E]) AddAccumulator(r Set[E], t E) (Set[E], error) {
	if r == nil {
		r = make(Set[E])
	}
	r[t] = struct{}{}
	return r, nil
}

// AddInPlace adds every element of r2 to r1
func (SetUnion[E]) AddInPlace(r1 Set[E], r2 Set[E]) (Set[E], error) {
	if r1 == nil {
		r1 = make(Set[E], len(r2))
	}
	for e := range r2 {
		r1[e] = struct{}{}
	}
	return r1, nil
}

// Clone copies a set
func (SetUnion[E]) Clone(r Set[E]) Set[E] {
	c := make(Set[E], len(r))
	for e := range r {
		c[e] = struct{}{}
	}
	return c
}
