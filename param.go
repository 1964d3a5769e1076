package accum

// An AccumulableParam defines how to accumulate values of a particular type. The aggregate type R may
// differ from the element type T; imagine accumulating a set, where elements are added one at a time
// but two sets are unioned together.
//
// AddInPlace must be associative and commutative, and Zero(seed) must be an identity for AddInPlace.
// Adding an element must be consistent with merging a singleton partial:
// AddAccumulator(r, t) == AddInPlace(r, AddAccumulator(Zero(r), t)).
type AccumulableParam[R, T any] interface {
	// Zero returns the identity aggregate for initial, e.g. a vector of N zeroes for an N-dimensional vector
	Zero(initial R) R
	// AddAccumulator folds an element into an aggregate. It may modify and return r.
	AddAccumulator(r R, t T) (R, error)
	// AddInPlace merges two aggregates. It may modify and return r1.
	AddInPlace(r1 R, r2 R) (R, error)
}

// An AccumulatorParam is a simpler AccumulableParam, where elements are of the same type as the aggregate
type AccumulatorParam[T any] interface {
	Zero(initial T) T
	AddInPlace(t1 T, t2 T) (T, error)
}

// A Cloner is optionally implemented by AccumulableParams over reference types (slices, maps), so that
// values handed to an Owner never alias the shared aggregate
type Cloner[R any] interface {
	Clone(r R) R
}

// accumulatorParam adapts an AccumulatorParam to an AccumulableParam, where adding an element and
// merging a partial are the same operation
type accumulatorParam[T any] struct {
	AccumulatorParam[T]
}

func (p accumulatorParam[T]) AddAccumulator(r T, t T) (T, error) {
	return p.AddInPlace(r, t)
}

func (p accumulatorParam[T]) Clone(r T) T {
	if c, ok := p.AccumulatorParam.(Cloner[T]); ok {
		return c.Clone(r)
	}
	return r
}

// AsAccumulableParam exposes an AccumulatorParam as an AccumulableParam
func AsAccumulableParam[T any](p AccumulatorParam[T]) AccumulableParam[T, T] {
	if ap, ok := p.(AccumulableParam[T, T]); ok {
		return ap
	}
	return accumulatorParam[T]{p}
}

func clone[R, T any](p AccumulableParam[R, T], r R) R {
	if c, ok := p.(Cloner[R]); ok {
		return c.Clone(r)
	}
	return r
}
