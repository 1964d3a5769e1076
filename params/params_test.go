package params_test

import (
	"sort"
	"testing"

	"github.com/go-sif/accum"
	accerrors "github.com/go-sif/accum/errors"
	"github.com/go-sif/accum/params"
	acctest "github.com/go-sif/accum/testing"
	"github.com/stretchr/testify/require"
)

func TestSumLaws(t *testing.T) {
	acctest.RequireParamLaws[int64, int64](t, accum.AsAccumulableParam[int64](params.Int()), 0, []int64{1, -2, 3, 40, 5, -6, 7}, nil)
	acctest.RequireParamLaws[uint8, uint8](t, accum.AsAccumulableParam[uint8](params.Adder[uint8]()), 0, []uint8{200, 100, 3}, nil)
	// small integers sum exactly in floating point
	acctest.RequireParamLaws[float64, float64](t, accum.AsAccumulableParam[float64](params.Float()), 0, []float64{0.5, 1, 2.25, -4}, nil)
}

func TestSumZeroIgnoresInitial(t *testing.T) {
	require.EqualValues(t, 0, params.Int().Zero(42))
}

func TestCountLaws(t *testing.T) {
	acctest.RequireParamLaws[uint64, string](t, params.Counter[string](), 7, []string{"a", "b", "a", "c"}, nil)
	r, err := params.Counter[string]().AddAccumulator(0, "x")
	require.Nil(t, err)
	require.EqualValues(t, 1, r)
}

func TestExtremumLaws(t *testing.T) {
	elements := []int{5, -3, 12, 0, 7, 12}
	acctest.RequireParamLaws[params.Extremum[int], int](t, params.Minimum[int](), params.Extremum[int]{}, elements, nil)
	acctest.RequireParamLaws[params.Extremum[int], int](t, params.Maximum[int](), params.Extremum[int]{}, elements, nil)
	acctest.RequireParamLaws[params.Extremum[string], string](t, params.Maximum[string](), params.Extremum[string]{}, []string{"b", "a", "c"}, nil)
}

func TestExtremum(t *testing.T) {
	lo := params.Minimum[float64]()
	r := lo.Zero(params.Extremum[float64]{Value: -100, Valid: true})
	require.False(t, r.Valid)
	for _, v := range []float64{3, 1.5, 2} {
		var err error
		r, err = lo.AddAccumulator(r, v)
		require.Nil(t, err)
	}
	require.Equal(t, params.Extremum[float64]{Value: 1.5, Valid: true}, r)

	// an empty partial never wins
	r, err := lo.AddInPlace(r, params.Extremum[float64]{})
	require.Nil(t, err)
	require.Equal(t, 1.5, r.Value)

	hi := params.Maximum[float64]()
	m, err := hi.AddInPlace(params.Extremum[float64]{}, params.Extremum[float64]{Value: -1, Valid: true})
	require.Nil(t, err)
	require.Equal(t, params.Extremum[float64]{Value: -1, Valid: true}, m)
}

func TestSetUnionLaws(t *testing.T) {
	acctest.RequireParamLaws[params.Set[string], string](t, params.Union[string](), nil, []string{"a", "b", "a", "c", "d", "b"}, nil)
}

func TestSetUnionClone(t *testing.T) {
	union := params.Union[int]()
	s, err := union.AddAccumulator(nil, 1)
	require.Nil(t, err)
	c := union.Clone(s)
	c[2] = struct{}{}
	require.Len(t, s, 1)
	require.Len(t, c, 2)
}

func sameMultiset(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	x := append([]int{}, a...)
	y := append([]int{}, b...)
	sort.Ints(x)
	sort.Ints(y)
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

func TestListLaws(t *testing.T) {
	acctest.RequireParamLaws[[]int, int](t, params.Collector[int](), nil, []int{3, 1, 4, 1, 5, 9, 2, 6}, sameMultiset)
}

func TestListZeroIsEmpty(t *testing.T) {
	z := params.Collector[string]().Zero([]string{"seed"})
	require.NotNil(t, z)
	require.Len(t, z, 0)
}

func TestVectorSumLaws(t *testing.T) {
	elements := [][]float64{{1, 2}, {3, 4}, {-1, 0.5}, {0, 0}, {2, 2}}
	acctest.RequireParamLaws[[]float64, []float64](t, params.Vectors(), []float64{9, 9}, elements, nil)
}

func TestVectorSumDimensionMismatch(t *testing.T) {
	r, err := params.Vectors().AddInPlace([]float64{1, 2}, []float64{1, 2, 3})
	var mismatch accerrors.TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, "VectorSum", mismatch.Param)
	require.Equal(t, []float64{1, 2}, r)
}

func TestPairLaws(t *testing.T) {
	pair := params.Compose[uint64, string, params.Set[string], string](params.Counter[string](), params.Union[string]())
	elements := []params.PairOf[string, string]{
		{First: "a", Second: "x"},
		{First: "b", Second: "y"},
		{First: "c", Second: "x"},
		{First: "d", Second: "z"},
	}
	acctest.RequireParamLaws[params.PairOf[uint64, params.Set[string]], params.PairOf[string, string]](t, pair, params.PairOf[uint64, params.Set[string]]{}, elements, nil)

	r := pair.Zero(params.PairOf[uint64, params.Set[string]]{})
	for _, e := range elements {
		var err error
		r, err = pair.AddAccumulator(r, e)
		require.Nil(t, err)
	}
	require.EqualValues(t, 4, r.First)
	require.Len(t, r.Second, 3)

	c := pair.Clone(r)
	c.Second["w"] = struct{}{}
	require.Len(t, r.Second, 3)
}

func TestPairPropagatesErrors(t *testing.T) {
	pair := params.Compose[uint64, string, []float64, []float64](params.Counter[string](), params.Vectors())
	r := params.PairOf[uint64, []float64]{First: 1, Second: []float64{0}}
	_, err := pair.AddAccumulator(r, params.PairOf[string, []float64]{First: "a", Second: []float64{1, 2}})
	var mismatch accerrors.TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
}

func TestFailedPairCombineLeavesOperandIntact(t *testing.T) {
	pair := params.Compose[params.Set[string], string, []float64, []float64](params.Union[string](), params.Vectors())
	r := params.PairOf[params.Set[string], []float64]{First: params.Set[string]{"a": {}}, Second: []float64{0, 0}}
	var mismatch accerrors.TypeMismatchError

	_, err := pair.AddInPlace(r, params.PairOf[params.Set[string], []float64]{First: params.Set[string]{"b": {}}, Second: []float64{1}})
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, params.Set[string]{"a": {}}, r.First)

	_, err = pair.AddAccumulator(r, params.PairOf[string, []float64]{First: "c", Second: []float64{1, 2, 3}})
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, params.Set[string]{"a": {}}, r.First)
	require.Equal(t, []float64{0, 0}, r.Second)
}
