package cluster

import (
	"context"
	"fmt"

	"github.com/go-sif/accum"
	errors "github.com/go-sif/accum/errors"
	"github.com/sirupsen/logrus"
)

// A Task is one unit of work within a Job. It accumulates into the buffers returned by Local, and
// reports failure by returning an error (or panicking), in which case its buffers are discarded.
type Task func(tc *TaskContext) error

// A Job is a set of Tasks, after which accumulator values are safe for the owner to read
type Job struct {
	Name  string
	Tasks []Task
}

// A TaskContext is handed to a single attempt of a Task. It is not safe for concurrent use.
type TaskContext struct {
	ctx     context.Context
	taskID  string
	attempt int
	log     *logrus.Entry
	locals  map[int64]accum.Pending
	order   []int64
}

func newTaskContext(ctx context.Context, taskID string, attempt int, log *logrus.Entry) *TaskContext {
	return &TaskContext{
		ctx:     ctx,
		taskID:  taskID,
		attempt: attempt,
		log:     log.WithFields(logrus.Fields{"task": taskID, "attempt": attempt}),
		locals:  make(map[int64]accum.Pending),
	}
}

// Context returns the Context of the running job, which is cancelled if the job fails
func (tc *TaskContext) Context() context.Context {
	return tc.ctx
}

// TaskID returns the identifier of the Task, which is shared by all of its attempts
func (tc *TaskContext) TaskID() string {
	return tc.taskID
}

// Attempt returns the 1-based attempt number
func (tc *TaskContext) Attempt() int {
	return tc.attempt
}

// Logger returns a logger for this attempt
func (tc *TaskContext) Logger() *logrus.Entry {
	return tc.log
}

// String describes this attempt
func (tc *TaskContext) String() string {
	return fmt.Sprintf("%s (attempt %d)", tc.taskID, tc.attempt)
}

// Local returns this attempt's buffer for an Accumulable, creating it on first use. Accumulables are
// keyed by id, so mixing Accumulables from different Registries within one task panics with a
// TypeMismatchError, failing the attempt.
func Local[R, T any](tc *TaskContext, a *accum.Accumulable[R, T]) *accum.Local[R, T] {
	if p, ok := tc.locals[a.ID()]; ok {
		if l, ok := p.(*accum.Local[R, T]); ok && l.Accumulable() == a {
			return l
		}
		panic(errors.TypeMismatchError{
			Param:  a.String(),
			Reason: fmt.Sprintf("task %s already holds a different buffer for accumulator id %d", tc.taskID, a.ID()),
		})
	}
	l := a.Local()
	tc.locals[a.ID()] = l
	tc.order = append(tc.order, a.ID())
	return l
}

func (tc *TaskContext) pending() []accum.Pending {
	result := make([]accum.Pending, len(tc.order))
	for i, id := range tc.order {
		result[i] = tc.locals[id]
	}
	return result
}

func (tc *TaskContext) discard() {
	for _, p := range tc.locals {
		p.Discard()
	}
}
