package params

import "cmp"

// Extremum is the result of a Min or Max. Valid is false until at least one element has been seen.
type Extremum[N cmp.Ordered] struct {
	Value N
	Valid bool
}

// Min tracks the smallest element seen
type Min[N cmp.Ordered] struct{}

// Minimum returns a Min over N
func Minimum[N cmp.Ordered]() Min[N] {
	return Min[N]{}
}

// Zero returns an empty Extremum
func (Min[N]) Zero(initial Extremum[N]) Extremum[N] {
	return Extremum[N]{}
}

// AddAccumulator keeps the smaller of r and t
func (p Min[N]) AddAccumulator(r Extremum[N], t N) (Extremum[N], error) {
	return p.AddInPlace(r, Extremum[N]{Value: t, Valid: true})
}

// AddInPlace keeps the smaller of r1 and r2
func (Min[N]) AddInPlace(r1 Extremum[N], r2 Extremum[N]) (Extremum[N], error) {
	if !r2.Valid {
		return r1, nil
	}
	if !r1.Valid || r2.Value < r1.Value {
		return r2, nil
	}
	return r1, nil
}

// Max tracks the largest element seen
type Max[N cmp.Ordered] struct{}

// Maximum returns a Max over N
func Maximum[N cmp.Ordered]() Max[N] {
	return Max[N]{}
}

// Zero returns an empty Extremum
func (Max[N]) Zero(initial Extremum[N]) Extremum[N] {
	return Extremum[N]{}
}

// AddAccumulator keeps the larger of r and t
func (p Max[N]) AddAccumulator(r Extremum[N], t N) (Extremum[N], error) {
	return p.AddInPlace(r, Extremum[N]{Value: t, Valid: true})
}

// AddInPlace keeps the larger of r1 and r2
func (Max[N]) AddInPlace(r1 Extremum[N], r2 Extremum[N]) (Extremum[N], error) {
	if !r2.Valid {
		return r1, nil
	}
	if !r1.Valid || r2.Value > r1.Value {
		return r2, nil
	}
	return r1, nil
}
