// Package params provides stock reduction algebras for accumulators: sums, counts, extrema, set
// unions, lists, vector sums, and the composition of two algebras into one.
package params
