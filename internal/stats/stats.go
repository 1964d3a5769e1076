package stats

import (
	"sync"
	"time"
)

const statisticRollingWindows = 5

// RunStatistics contains statistics about a running job. It is safe for concurrent use by workers.
type RunStatistics struct {
	lock                   sync.Mutex
	started                bool
	finished               bool
	startTime              time.Time
	totalRuntime           time.Duration
	numTasks               int
	attempts               int64
	failedAttempts         int64
	commits                int64
	recentTaskRuntimes     []time.Duration // for rolling average of recent task attempt runtimes
	recentTaskRuntimesHead int
}

// Start triggers statistics tracking, if it hasn't been started already
func (rs *RunStatistics) Start(numTasks int) {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if !rs.started {
		rs.started = true
		rs.startTime = time.Now()
		rs.numTasks = numTasks
		rs.recentTaskRuntimes = make([]time.Duration, statisticRollingWindows)
	}
}

// Finish completes statistics tracking
func (rs *RunStatistics) Finish() {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if !rs.finished {
		rs.finished = true
		rs.totalRuntime = time.Since(rs.startTime)
	}
}

// StartAttempt tracks the beginning of a task attempt, returning its start time
func (rs *RunStatistics) StartAttempt() time.Time {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	rs.attempts++
	return time.Now()
}

// EndAttempt tracks the end of a task attempt which began at start
func (rs *RunStatistics) EndAttempt(start time.Time, failed bool) {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if len(rs.recentTaskRuntimes) == 0 {
		rs.recentTaskRuntimes = make([]time.Duration, statisticRollingWindows)
	}
	rs.recentTaskRuntimes[rs.recentTaskRuntimesHead] = time.Since(start)
	rs.recentTaskRuntimesHead = (rs.recentTaskRuntimesHead + 1) % len(rs.recentTaskRuntimes)
	if failed {
		rs.failedAttempts++
	}
}

// Commit tracks a task attempt whose buffers were merged
func (rs *RunStatistics) Commit() {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	rs.commits++
}

// GetStartTime returns the start time of the job
func (rs *RunStatistics) GetStartTime() time.Time {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.startTime
}

// GetRuntime returns the running time of the job
func (rs *RunStatistics) GetRuntime() time.Duration {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if rs.finished {
		return rs.totalRuntime
	}
	return time.Since(rs.startTime)
}

// GetNumTasks returns the number of tasks in the job
func (rs *RunStatistics) GetNumTasks() int {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.numTasks
}

// GetNumAttempts returns the number of task attempts started so far, including retries
func (rs *RunStatistics) GetNumAttempts() int64 {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.attempts
}

// GetNumFailedAttempts returns the number of task attempts which failed
func (rs *RunStatistics) GetNumFailedAttempts() int64 {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.failedAttempts
}

// GetNumCommits returns the number of task attempts whose buffers were merged
func (rs *RunStatistics) GetNumCommits() int64 {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.commits
}

// GetCurrentTaskProcessingTime returns a rolling average of task attempt processing time
func (rs *RunStatistics) GetCurrentTaskProcessingTime() time.Duration {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	var total time.Duration
	var count int64
	for _, v := range rs.recentTaskRuntimes {
		if v > 0 {
			total += v
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / time.Duration(count)
}
