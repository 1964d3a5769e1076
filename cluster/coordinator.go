package cluster

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-sif/accum"
	"github.com/go-sif/accum/internal/stats"
	uuid "github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Result is the outcome of a Job
type Result struct {
	JobID  string                  // JobID uniquely identifies the run
	Values map[int64]interface{}   // Values holds the global value of every accumulator after the job, keyed by id
	Stats  accum.RuntimeStatistics // Stats describes the run
}

// A Coordinator runs Jobs on behalf of the owner of an accum.Context, one Job at a time
type Coordinator struct {
	actx *accum.Context
	opts *Options
	log  *logrus.Entry
	lock sync.Mutex
}

// NewCoordinator creates a Coordinator which commits task buffers to actx's Registry
func NewCoordinator(actx *accum.Context, opts *Options) *Coordinator {
	if opts == nil {
		opts = &Options{}
	} else {
		opts = CloneOptions(opts)
	}
	ensureDefaultOptionsValues(opts)
	return &Coordinator{
		actx: actx,
		opts: opts,
		log:  actx.Logger(),
	}
}

// Run a Job, blocking until every Task has committed or the Job has failed. Tasks run concurrently on
// up to NumWorkers goroutines. A failed attempt's buffers never reach the accumulators; once a Task
// has exhausted its attempts, the Job is cancelled and the error returned. Buffers already committed
// by other Tasks are retained, as are accumulator values from the failed Job.
func (c *Coordinator) Run(ctx context.Context, job *Job) (*Result, error) {
	if job == nil {
		return nil, fmt.Errorf("Job cannot be nil")
	}
	c.lock.Lock()
	defer c.lock.Unlock()

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	log := c.log.WithFields(logrus.Fields{"job": job.Name, "job_id": id.String()})
	if c.opts.ResetBeforeRun {
		if err := c.actx.ResetAll(); err != nil {
			return nil, err
		}
	}
	statsTracker := &stats.RunStatistics{}
	statsTracker.Start(len(job.Tasks))
	defer statsTracker.Finish()

	log.Infof("Running job with %d tasks on %d workers...", len(job.Tasks), c.opts.NumWorkers)
	workers := semaphore.NewWeighted(int64(c.opts.NumWorkers))
	g, gctx := errgroup.WithContext(ctx)
	for i, task := range job.Tasks {
		if err := workers.Acquire(gctx, 1); err != nil {
			break
		}
		taskID := fmt.Sprintf("%s/%d", id.String(), i)
		task := task
		g.Go(func() error {
			defer workers.Release(1)
			return c.runTask(gctx, log, statsTracker, taskID, task)
		})
	}
	if err := g.Wait(); err != nil {
		log.Errorf("Job failed: %v", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := c.actx.FinalizeAll(); err != nil {
		return nil, err
	}
	values, err := c.actx.SnapshotAll()
	if err != nil {
		return nil, err
	}
	log.Infof("Finished job: %d attempts, %d failed", statsTracker.GetNumAttempts(), statsTracker.GetNumFailedAttempts())
	return &Result{JobID: id.String(), Values: values, Stats: statsTracker}, nil
}
