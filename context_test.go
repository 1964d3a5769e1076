package accum_test

import (
	"bytes"
	"testing"

	"github.com/go-sif/accum"
	accerrors "github.com/go-sif/accum/errors"
	"github.com/go-sif/accum/logging"
	"github.com/go-sif/accum/params"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNewContextDefaults(t *testing.T) {
	t.Setenv(logging.EnvLogLevel, "error")
	actx, err := accum.NewContext(nil)
	require.Nil(t, err)
	require.Equal(t, "accum", actx.Name())
	require.NotEmpty(t, actx.ID())
	require.NotNil(t, actx.Owner())
	require.Equal(t, 0, actx.Registry().Len())
	require.Equal(t, logrus.ErrorLevel, actx.Logger().Logger.GetLevel())

	other, err := accum.NewContext(&accum.ContextOptions{Name: "other", LogLevel: "debug"})
	require.Nil(t, err)
	require.Equal(t, "other", other.Name())
	require.NotEqual(t, actx.ID(), other.ID())
	require.Equal(t, logrus.DebugLevel, other.Logger().Logger.GetLevel())
}

func TestContextLogsWithFields(t *testing.T) {
	var buf bytes.Buffer
	actx, err := accum.NewContext(&accum.ContextOptions{
		Name:   "logged",
		Logger: logging.NewLogger(&buf, logging.DebugLevel),
	})
	require.Nil(t, err)
	accum.IntAccumulator(actx, 0, "hits")
	require.Contains(t, buf.String(), "context=logged")
	require.Contains(t, buf.String(), "accumulator=\"hits#1\"")
}

func TestContextsDoNotShareOwnership(t *testing.T) {
	first, err := accum.NewContext(nil)
	require.Nil(t, err)
	second, err := accum.NewContext(nil)
	require.Nil(t, err)
	acc := accum.IntAccumulator(first, 1, "one")

	var violation accerrors.AccessViolationError
	_, err = acc.Value(second.Owner())
	require.ErrorAs(t, err, &violation)
	_, err = first.Registry().SnapshotAll(second.Owner())
	require.ErrorAs(t, err, &violation)
}

func TestContextLifecycle(t *testing.T) {
	actx := createTestContext(t)
	ints := accum.IntAccumulator(actx, 0, "ints")
	floats := accum.FloatAccumulator(actx, 0.5, "floats")
	maxes := accum.NewAccumulable[params.Extremum[int64], int64](actx, params.Extremum[int64]{}, params.Maximum[int64](), "max")

	require.Nil(t, ints.Merge(2))
	require.Nil(t, floats.Merge(0.25))
	local := maxes.Local()
	for _, v := range []int64{3, 9, -1} {
		require.Nil(t, local.Add(v))
	}
	require.Nil(t, local.Merge())
	require.Nil(t, actx.FinalizeAll())

	snapshot, err := actx.SnapshotAll()
	require.Nil(t, err)
	require.EqualValues(t, 2, snapshot[ints.ID()])
	require.Equal(t, 0.75, snapshot[floats.ID()])
	require.Equal(t, params.Extremum[int64]{Value: 9, Valid: true}, snapshot[maxes.ID()])

	require.Nil(t, actx.ResetAll())
	require.Equal(t, accum.Active, ints.State())
	f, err := floats.Value(actx.Owner())
	require.Nil(t, err)
	require.Equal(t, 0.0, f)

	require.Nil(t, actx.Close())
	require.Equal(t, 0, actx.Registry().Len())
	require.Equal(t, accum.Destroyed, maxes.State())
	var unknown accerrors.UnknownAccumulatorError
	require.ErrorAs(t, ints.Merge(1), &unknown)
}
