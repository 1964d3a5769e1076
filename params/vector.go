package params

import (
	"fmt"

	errors "github.com/go-sif/accum/errors"
)

// VectorSum adds fixed-dimension vectors element-wise. Operands of different dimensions are rejected.
type VectorSum struct{}

// Vectors returns a VectorSum
func Vectors() VectorSum {
	return VectorSum{}
}

// Zero returns a vector of zeroes with the dimension of initial
func (VectorSum) Zero(initial []float64) []float64 {
	return make([]float64, len(initial))
}

// AddAccumulator adds vector t to r
func (p VectorSum) AddAccumulator(r []float64, t []float64) ([]float64, error) {
	return p.AddInPlace(r, t)
}

// AddInPlace adds vector r2 to r1
func (VectorSum) AddInPlace(r1 []float64, r2 []float64) ([]float64, error) {
	if len(r1) != len(r2) {
		return r1, errors.TypeMismatchError{
			Param:  "VectorSum",
			Reason: fmt.Sprintf("cannot add a vector of dimension %d to a vector of dimension %d", len(r2), len(r1)),
		}
	}
	for i := range r2 {
		r1[i] += r2[i]
	}
	return r1, nil
}

// Clone copies a vector
func (VectorSum) Clone(r []float64) []float64 {
	c := make([]float64, len(r))
	copy(c, r)
	return c
}
