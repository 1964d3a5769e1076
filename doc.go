// Package accum contains the core components of accum, a library of shared accumulators for parallel
// aggregation. Many workers fold elements into private Local buffers without synchronization, then
// merge those buffers into a shared Accumulable whose global value only its Owner may read. The
// reduction itself is supplied by an AccumulableParam, which must be associative and commutative
// so that the order in which workers report never changes the result.
package accum
