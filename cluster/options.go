package cluster

import (
	"runtime"
)

// Options configure a Coordinator
type Options struct {
	NumWorkers       int  // the number of tasks to run concurrently (defaults to the number of CPUs)
	MaxTaskAttempts  int  // how many times a task is attempted before the job fails (defaults to 3)
	SerializeUpdates bool // iff true, task buffers are encoded with each accumulator's Codec before merging
	ResetBeforeRun   bool // iff true, every accumulator is reset before the job runs
}

// CloneOptions makes a copy of an Options
func CloneOptions(opts *Options) *Options {
	return &Options{
		NumWorkers:       opts.NumWorkers,
		MaxTaskAttempts:  opts.MaxTaskAttempts,
		SerializeUpdates: opts.SerializeUpdates,
		ResetBeforeRun:   opts.ResetBeforeRun,
	}
}

func ensureDefaultOptionsValues(opts *Options) {
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = runtime.NumCPU()
	}
	if opts.MaxTaskAttempts <= 0 {
		opts.MaxTaskAttempts = 3
	}
}
