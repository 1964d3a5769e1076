package accum_test

import (
	"sync"
	"testing"

	"github.com/go-sif/accum"
	"github.com/go-sif/accum/codec"
	accerrors "github.com/go-sif/accum/errors"
	"github.com/go-sif/accum/params"
	"github.com/stretchr/testify/require"
)

func TestRegistryAssignsIncreasingIDs(t *testing.T) {
	owner, err := accum.NewOwner()
	require.Nil(t, err)
	reg := accum.NewRegistry(owner)
	a := accum.RegisterAccumulator[int64](reg, params.Int(), 0, "a")
	b := accum.Register[uint64, string](reg, params.Counter[string](), 0, "b")
	c := accum.RegisterAccumulator[float64](reg, params.Float(), 0, "c")
	require.True(t, a.ID() < b.ID())
	require.True(t, b.ID() < c.ID())
	require.Equal(t, []int64{a.ID(), b.ID(), c.ID()}, reg.IDs())
	require.Equal(t, 3, reg.Len())

	require.Nil(t, reg.Unregister(owner, b.ID()))
	d := accum.RegisterAccumulator[int64](reg, params.Int(), 0, "d")
	require.True(t, c.ID() < d.ID())
	require.Equal(t, []int64{a.ID(), c.ID(), d.ID()}, reg.IDs())
}

func TestRegistryLookup(t *testing.T) {
	owner, err := accum.NewOwner()
	require.Nil(t, err)
	reg := accum.NewRegistry(owner)
	a := accum.RegisterAccumulator[int64](reg, params.Int(), 0, "a")

	e, err := reg.Lookup(a.ID())
	require.Nil(t, err)
	require.Equal(t, "a", e.Name())

	var unknown accerrors.UnknownAccumulatorError
	_, err = reg.Lookup(1000)
	require.ErrorAs(t, err, &unknown)
	require.EqualValues(t, 1000, unknown.ID)

	got, err := accum.Get[int64, int64](reg, a.ID())
	require.Nil(t, err)
	require.Same(t, a.Accumulable, got)

	var mismatch accerrors.TypeMismatchError
	_, err = accum.Get[float64, float64](reg, a.ID())
	require.ErrorAs(t, err, &mismatch)

	require.ErrorAs(t, reg.Unregister(owner, 1000), &unknown)
	require.Nil(t, reg.Unregister(owner, a.ID()))
	_, err = accum.Get[int64, int64](reg, a.ID())
	require.ErrorAs(t, err, &unknown)
}

func TestRegistryRequiresOwner(t *testing.T) {
	owner, err := accum.NewOwner()
	require.Nil(t, err)
	stranger, err := accum.NewOwner()
	require.Nil(t, err)
	reg := accum.NewRegistry(owner)
	a := accum.RegisterAccumulator[int64](reg, params.Int(), 0, "a")

	var violation accerrors.AccessViolationError
	_, err = reg.SnapshotAll(stranger)
	require.ErrorAs(t, err, &violation)
	require.Equal(t, "SnapshotAll", violation.Op)
	require.ErrorAs(t, reg.ResetAll(stranger), &violation)
	require.ErrorAs(t, reg.FinalizeAll(nil), &violation)
	require.ErrorAs(t, reg.Unregister(stranger, a.ID()), &violation)
	require.Equal(t, 1, reg.Len())

	e, err := reg.Lookup(a.ID())
	require.Nil(t, err)
	_, err = e.Snapshot(stranger)
	require.ErrorAs(t, err, &violation)
}

func TestSnapshotAndResetAll(t *testing.T) {
	owner, err := accum.NewOwner()
	require.Nil(t, err)
	reg := accum.NewRegistry(owner)
	sum := accum.RegisterAccumulator[int64](reg, params.Int(), 10, "sum")
	words := accum.Register[params.Set[string], string](reg, params.Union[string](), nil, "words")

	require.Nil(t, sum.Merge(5))
	local := words.Local()
	require.Nil(t, local.Add("hello"))
	require.Nil(t, reg.Commit("task-1", local))

	snapshot, err := reg.SnapshotAll(owner)
	require.Nil(t, err)
	require.Len(t, snapshot, 2)
	require.EqualValues(t, 15, snapshot[sum.ID()])
	require.Equal(t, params.Set[string]{"hello": {}}, snapshot[words.ID()])

	require.Nil(t, reg.ResetAll(owner))
	snapshot, err = reg.SnapshotAll(owner)
	require.Nil(t, err)
	require.EqualValues(t, 0, snapshot[sum.ID()])
	require.Empty(t, snapshot[words.ID()])
}

func TestCommitCollectsErrors(t *testing.T) {
	owner, err := accum.NewOwner()
	require.Nil(t, err)
	reg := accum.NewRegistry(owner)
	a := accum.RegisterAccumulator[int64](reg, params.Int(), 0, "a")
	b := accum.RegisterAccumulator[int64](reg, params.Int(), 0, "b")

	stale := a.Local()
	require.Nil(t, stale.Add(1))
	require.Nil(t, stale.Merge())
	fresh := b.Local()
	require.Nil(t, fresh.Add(2))

	// the stale buffer fails, but the fresh one is still merged
	var merged accerrors.AlreadyMergedError
	require.ErrorAs(t, reg.Commit("task-1", stale, fresh), &merged)
	v, err := b.Value(owner)
	require.Nil(t, err)
	require.EqualValues(t, 2, v)

	// a repeated token is rejected per accumulator
	again := b.Local()
	require.Nil(t, again.Add(2))
	require.ErrorAs(t, reg.Commit("task-1", again), &merged)
	v, err = b.Value(owner)
	require.Nil(t, err)
	require.EqualValues(t, 2, v)
}

func TestCommitToUnregisteredAccumulator(t *testing.T) {
	owner, err := accum.NewOwner()
	require.Nil(t, err)
	reg := accum.NewRegistry(owner)
	a := accum.RegisterAccumulator[int64](reg, params.Int(), 0, "a")
	local := a.Local()
	require.Nil(t, local.Add(1))
	require.Nil(t, reg.Unregister(owner, a.ID()))
	var unknown accerrors.UnknownAccumulatorError
	require.ErrorAs(t, reg.Commit("task-1", local), &unknown)
}

func TestMergeUpdates(t *testing.T) {
	owner, err := accum.NewOwner()
	require.Nil(t, err)
	reg := accum.NewRegistry(owner)
	a := accum.RegisterAccumulator[int64](reg, params.Int(), 0, "a")
	b := accum.Register[uint64, string](reg, params.Counter[string](), 0, "b")

	require.Nil(t, reg.MergeUpdates("task-1", map[int64]interface{}{
		a.ID(): int64(3),
		b.ID(): uint64(4),
	}))
	var mismatch accerrors.TypeMismatchError
	require.ErrorAs(t, reg.MergeUpdates("task-2", map[int64]interface{}{a.ID(): "three"}), &mismatch)
	var unknown accerrors.UnknownAccumulatorError
	require.ErrorAs(t, reg.MergeUpdates("task-3", map[int64]interface{}{99: int64(1)}), &unknown)

	snapshot, err := reg.SnapshotAll(owner)
	require.Nil(t, err)
	require.EqualValues(t, 3, snapshot[a.ID()])
	require.EqualValues(t, 4, snapshot[b.ID()])
}

func TestMergeEncoded(t *testing.T) {
	owner, err := accum.NewOwner()
	require.Nil(t, err)
	reg := accum.NewRegistry(owner)
	a := accum.RegisterAccumulator[int64](reg, params.Int(), 0, "a", accum.WithCodec[int64](codec.ProtoInt64()))
	b := accum.Register[uint64, string](reg, params.Counter[string](), 0, "b", accum.WithCodec[uint64](codec.Uint64()))

	la := a.Local()
	require.Nil(t, la.Add(-7))
	lb := b.Local()
	require.Nil(t, lb.Add("x"))
	require.Nil(t, lb.Add("y"))
	bufA, err := la.Encode()
	require.Nil(t, err)
	bufB, err := lb.Encode()
	require.Nil(t, err)

	updates := map[int64][]byte{a.ID(): bufA, b.ID(): bufB}
	require.Nil(t, reg.MergeEncoded("task-1", updates))
	var merged accerrors.AlreadyMergedError
	require.ErrorAs(t, reg.MergeEncoded("task-1", updates), &merged)

	snapshot, err := reg.SnapshotAll(owner)
	require.Nil(t, err)
	require.EqualValues(t, -7, snapshot[a.ID()])
	require.EqualValues(t, 2, snapshot[b.ID()])
}

func TestSnapshotIsConsistentCut(t *testing.T) {
	owner, err := accum.NewOwner()
	require.Nil(t, err)
	reg := accum.NewRegistry(owner)
	a := accum.RegisterAccumulator[int64](reg, params.Int(), 0, "a")
	b := accum.RegisterAccumulator[int64](reg, params.Int(), 0, "b")

	var wg sync.WaitGroup
	numWorkers := 8
	commitsPerWorker := 200
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < commitsPerWorker; j++ {
				la := a.Local()
				lb := b.Local()
				require.Nil(t, la.Add(1))
				require.Nil(t, lb.Add(1))
				require.Nil(t, reg.Commit("", la, lb))
			}
		}()
	}
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	for finished := false; !finished; {
		select {
		case <-done:
			finished = true
		default:
		}
		snapshot, err := reg.SnapshotAll(owner)
		require.Nil(t, err)
		require.Equal(t, snapshot[a.ID()], snapshot[b.ID()])
	}
	snapshot, err := reg.SnapshotAll(owner)
	require.Nil(t, err)
	require.EqualValues(t, numWorkers*commitsPerWorker, snapshot[a.ID()])
	require.EqualValues(t, numWorkers*commitsPerWorker, snapshot[b.ID()])
}
