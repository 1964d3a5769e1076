package accum

// An Accumulator is a simpler Accumulable, where the elements being added are of the same type as the
// aggregate, i.e. variables that are only "added" to through an associative operation and can therefore
// be efficiently supported in parallel. They can be used to implement counters or sums.
//
// Workers add to an Accumulator through Local buffers, but cannot read its value. Only the Owner can
// read the Accumulator's value:
//
//	acc := accum.IntAccumulator(ctx, 0, "total")
//	local := acc.Local()
//	local.Add(1)
//	local.Merge()
//	v, err := acc.Value(ctx.Owner())
type Accumulator[T any] struct {
	*Accumulable[T, T]
}
