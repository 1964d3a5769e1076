package params

// Param is the reduction contract of accum.AccumulableParam, repeated here so that stock params
// do not depend on the accum package
type Param[R, T any] interface {
	Zero(initial R) R
	AddAccumulator(r R, t T) (R, error)
	AddInPlace(r1 R, r2 R) (R, error)
}

type cloner[R any] interface {
	Clone(r R) R
}

func cloneWith[R any](p interface{}, r R) R {
	if c, ok := p.(cloner[R]); ok {
		return c.Clone(r)
	}
	return r
}
