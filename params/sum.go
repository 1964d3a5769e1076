package params

// Number is any integer or floating point type
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Sum adds numbers. Floating point addition is only approximately associative, so float sums may
// differ in their last bits depending on merge order.
type Sum[N Number] struct{}

// Adder returns a Sum over N
func Adder[N Number]() Sum[N] {
	return Sum[N]{}
}

// Int returns a Sum over int64
func Int() Sum[int64] {
	return Sum[int64]{}
}

// Float returns a Sum over float64
func Float() Sum[float64] {
	return Sum[float64]{}
}

// Zero returns 0
func (Sum[N]) Zero(initial N) N {
	return 0
}

// AddAccumulator adds an element to a sum
func (Sum[N]) AddAccumulator(r N, t N) (N, error) {
	return r + t, nil
}

// AddInPlace adds two sums
func (Sum[N]) AddInPlace(r1 N, r2 N) (N, error) {
	return r1 + r2, nil
}
