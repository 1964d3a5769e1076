package params

// PairOf holds one value for each half of a Pair
type PairOf[A, B any] struct {
	First  A
	Second B
}

// Pair composes two Params, so that one accumulator can compute two aggregates at once. The first
// half is combined into a copy (for Params which support Clone), so if either half fails the operand
// is left unchanged.
type Pair[R1, T1, R2, T2 any] struct {
	first  Param[R1, T1]
	second Param[R2, T2]
}

// Compose returns a Pair of two Params
func Compose[R1, T1, R2, T2 any](first Param[R1, T1], second Param[R2, T2]) Pair[R1, T1, R2, T2] {
	return Pair[R1, T1, R2, T2]{first: first, second: second}
}

// Zero returns the zeroes of both halves
func (p Pair[R1, T1, R2, T2]) Zero(initial PairOf[R1, R2]) PairOf[R1, R2] {
	return PairOf[R1, R2]{
		First:  p.first.Zero(initial.First),
		Second: p.second.Zero(initial.Second),
	}
}

// AddAccumulator adds each half of t to the corresponding half of r
func (p Pair[R1, T1, R2, T2]) AddAccumulator(r PairOf[R1, R2], t PairOf[T1, T2]) (PairOf[R1, R2], error) {
	first, err := p.first.AddAccumulator(cloneWith(p.first, r.First), t.First)
	if err != nil {
		return r, err
	}
	second, err := p.second.AddAccumulator(r.Second, t.Second)
	if err != nil {
		return r, err
	}
	return PairOf[R1, R2]{First: first, Second: second}, nil
}

// AddInPlace merges each half of r2 into the corresponding half of r1
func (p Pair[R1, T1, R2, T2]) AddInPlace(r1 PairOf[R1, R2], r2 PairOf[R1, R2]) (PairOf[R1, R2], error) {
	first, err := p.first.AddInPlace(cloneWith(p.first, r1.First), r2.First)
	if err != nil {
		return r1, err
	}
	second, err := p.second.AddInPlace(r1.Second, r2.Second)
	if err != nil {
		return r1, err
	}
	return PairOf[R1, R2]{First: first, Second: second}, nil
}

// Clone copies both halves, where they support it
func (p Pair[R1, T1, R2, T2]) Clone(r PairOf[R1, R2]) PairOf[R1, R2] {
	return PairOf[R1, R2]{
		First:  cloneWith(p.first, r.First),
		Second: cloneWith(p.second, r.Second),
	}
}
