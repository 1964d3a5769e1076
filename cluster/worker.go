package cluster

import (
	"context"
	"fmt"

	"github.com/go-sif/accum/internal/stats"
	iutil "github.com/go-sif/accum/internal/util"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

// runTask attempts a Task until it succeeds or runs out of attempts. Every attempt receives fresh
// buffers; only the buffers of the successful attempt are committed, using the task id as the merge
// token, so a retried task is never counted twice.
func (c *Coordinator) runTask(ctx context.Context, log *logrus.Entry, statsTracker *stats.RunStatistics, taskID string, task Task) error {
	var multierr *multierror.Error
	for attempt := 1; attempt <= c.opts.MaxTaskAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		tc := newTaskContext(ctx, taskID, attempt, log)
		start := statsTracker.StartAttempt()
		err := iutil.SafeCall(tc.String(), func() error {
			return task(tc)
		})
		if err == nil {
			// a cancelled job must not commit anything further
			err = ctx.Err()
		}
		if err != nil {
			statsTracker.EndAttempt(start, true)
			tc.discard()
			multierr = multierror.Append(multierr, err)
			tc.Logger().Warnf("Attempt failed, discarding %d local buffers: %v", len(tc.locals), err)
			continue
		}
		statsTracker.EndAttempt(start, false)
		if err := c.commit(tc); err != nil {
			return fmt.Errorf("Unable to commit task %s: %w", tc, err)
		}
		statsTracker.Commit()
		tc.Logger().Debugf("Committed %d local buffers", len(tc.locals))
		return nil
	}
	log.WithField("task", taskID).Errorf("Task failed after %d attempts:\n%s", c.opts.MaxTaskAttempts, iutil.FormatMultiError(multierr.WrappedErrors()))
	return fmt.Errorf("Task %s failed after %d attempts: %w", taskID, c.opts.MaxTaskAttempts, multierr)
}

// commit merges an attempt's buffers into the Registry, either directly or, if SerializeUpdates is
// set, by way of each accumulator's Codec
func (c *Coordinator) commit(tc *TaskContext) error {
	registry := c.actx.Registry()
	pending := tc.pending()
	if !c.opts.SerializeUpdates {
		return registry.Commit(tc.TaskID(), pending...)
	}
	updates := make(map[int64][]byte, len(pending))
	for _, p := range pending {
		buf, err := p.Encode()
		if err != nil {
			return err
		}
		updates[p.AccumulatorID()] = buf
		p.MarkMerged()
	}
	return registry.MergeEncoded(tc.TaskID(), updates)
}
