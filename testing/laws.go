package testing

import (
	"github.com/go-sif/accum"
	"github.com/stretchr/testify/require"
)

// RequireParamLaws checks that a Param is associative, commutative, has Zero(seed) as an identity, and
// adds elements consistently with merging singleton partials. Partials are built from three interleaved
// subsets of elements. If equal is nil, aggregates are compared with require.Equal.
func RequireParamLaws[R, T any](t require.TestingT, param accum.AccumulableParam[R, T], seed R, elements []T, equal func(a, b R) bool) {
	check := func(expected, actual R, msg string) {
		if equal == nil {
			require.Equal(t, expected, actual, msg)
		} else {
			require.True(t, equal(expected, actual), "%s: %v != %v", msg, expected, actual)
		}
	}
	// partials are rebuilt for every use, since params may modify their operands
	subsets := make([][]T, 3)
	for i, e := range elements {
		subsets[i%3] = append(subsets[i%3], e)
	}
	partial := func(i int) R {
		r := param.Zero(seed)
		for _, e := range subsets[i] {
			var err error
			r, err = param.AddAccumulator(r, e)
			require.NoError(t, err)
		}
		return r
	}
	merge := func(a, b R) R {
		r, err := param.AddInPlace(a, b)
		require.NoError(t, err)
		return r
	}

	check(merge(merge(partial(0), partial(1)), partial(2)), merge(partial(0), merge(partial(1), partial(2))), "associativity")
	check(merge(partial(0), partial(1)), merge(partial(1), partial(0)), "commutativity")
	check(partial(0), merge(param.Zero(seed), partial(0)), "identity")
	for _, e := range elements {
		added, err := param.AddAccumulator(partial(1), e)
		require.NoError(t, err)
		singleton, err := param.AddAccumulator(param.Zero(seed), e)
		require.NoError(t, err)
		check(added, merge(partial(1), singleton), "element consistency")
	}
}
