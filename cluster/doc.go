// Package cluster runs jobs against accumulators on a pool of local workers. It plays the part of the
// processing engine: tasks accumulate into private buffers, failed attempts are discarded and retried
// with fresh buffers, and each successful task's buffers are committed to the owner's Registry once.
package cluster
