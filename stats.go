package accum

import "time"

// RuntimeStatistics facilitates the retrieval of statistics about a job which reports into accumulators
type RuntimeStatistics interface {
	// GetStartTime returns the start time of the job
	GetStartTime() time.Time
	// GetRuntime returns the running time of the job
	GetRuntime() time.Duration
	// GetNumTasks returns the number of tasks in the job
	GetNumTasks() int
	// GetNumAttempts returns the number of task attempts started so far, including retries
	GetNumAttempts() int64
	// GetNumFailedAttempts returns the number of task attempts which failed, and whose buffers were discarded
	GetNumFailedAttempts() int64
	// GetNumCommits returns the number of task attempts whose buffers were merged
	GetNumCommits() int64
	// GetCurrentTaskProcessingTime returns a rolling average of task attempt processing time
	GetCurrentTaskProcessingTime() time.Duration
}
