package accum

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	errors "github.com/go-sif/accum/errors"
	"github.com/hashicorp/go-multierror"
)

// An Entry is the type-erased view of a registered Accumulable, used by a Registry and by engines
// which report partials without knowing their static types
type Entry interface {
	ID() int64                                          // ID returns the registry-assigned identifier
	Name() string                                       // Name returns the human-readable name, which may be empty
	State() State                                       // State returns the current lifecycle State
	String() string                                     // String describes the Entry without revealing its value
	Snapshot(owner *Owner) (interface{}, error)         // Snapshot returns the global value (owner-only)
	Reset(owner *Owner) error                           // Reset returns the global value to zero (owner-only)
	MergeUpdate(token string, update interface{}) error // MergeUpdate merges an untyped partial
	MergeBytes(token string, buf []byte) error          // MergeBytes merges a serialized partial
	finalize(owner *Owner) error
	destroy(owner *Owner) error
}

// Pending is a worker's local buffer awaiting a merge, as seen by a Registry
type Pending interface {
	AccumulatorID() int64         // AccumulatorID returns the id of the Accumulable the buffer belongs to
	MergeOnce(token string) error // MergeOnce folds the buffer into the global value
	Encode() ([]byte, error)      // Encode serializes the buffer
	MarkMerged()                  // MarkMerged prevents the buffer from being merged again
	Discard()                     // Discard drops the buffer
}

// A Registry is the collection of live Accumulables belonging to one Owner. It assigns identifiers,
// and supports resetting and snapshotting every Accumulable at job boundaries.
type Registry struct {
	owner   *Owner
	nextID  int64
	lock    sync.RWMutex // guards entries
	entries map[int64]Entry
	// cut is held shared while a batch of partials is merged, and exclusively while every Accumulable
	// is read or reset, so that a snapshot never contains part of a batch
	cut sync.RWMutex
}

// NewRegistry creates an empty Registry whose Accumulables belong to owner
func NewRegistry(owner *Owner) *Registry {
	return &Registry{owner: owner, entries: make(map[int64]Entry)}
}

// Register creates a new Accumulable in reg, with a monotonically increasing id. The global value
// starts at initial, while Local buffers start at param.Zero(initial).
func Register[R, T any](reg *Registry, param AccumulableParam[R, T], initial R, name string, opts ...Option[R]) *Accumulable[R, T] {
	id := atomic.AddInt64(&reg.nextID, 1)
	a := newAccumulable(id, name, initial, param, reg.owner, opts...)
	reg.lock.Lock()
	defer reg.lock.Unlock()
	reg.entries[id] = a
	return a
}

// RegisterAccumulator creates a new Accumulator in reg
func RegisterAccumulator[T any](reg *Registry, param AccumulatorParam[T], initial T, name string, opts ...Option[T]) *Accumulator[T] {
	return &Accumulator[T]{Register(reg, AsAccumulableParam(param), initial, name, opts...)}
}

// Get retrieves a registered Accumulable with known types
func Get[R, T any](reg *Registry, id int64) (*Accumulable[R, T], error) {
	e, err := reg.Lookup(id)
	if err != nil {
		return nil, err
	}
	a, ok := e.(*Accumulable[R, T])
	if !ok {
		var r R
		var t T
		return nil, errors.TypeMismatchError{
			Param:  e.String(),
			Reason: fmt.Sprintf("accumulator is not an Accumulable[%T, %T]", r, t),
		}
	}
	return a, nil
}

// Lookup retrieves a registered Accumulable by id
func (r *Registry) Lookup(id int64) (Entry, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, errors.UnknownAccumulatorError{ID: id}
	}
	return e, nil
}

// IDs returns the ids of all live Accumulables, in ascending order
func (r *Registry) IDs() []int64 {
	r.lock.RLock()
	defer r.lock.RUnlock()
	ids := make([]int64, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len returns the number of live Accumulables
func (r *Registry) Len() int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return len(r.entries)
}

// Unregister destroys an Accumulable and removes it from this Registry
func (r *Registry) Unregister(owner *Owner, id int64) error {
	if err := r.checkOwner(owner, "Unregister"); err != nil {
		return err
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return errors.UnknownAccumulatorError{ID: id}
	}
	delete(r.entries, id)
	return e.destroy(owner)
}

// SnapshotAll returns the global value of every live Accumulable, keyed by id. The snapshot is a
// consistent cut with respect to Commit, MergeUpdates and MergeEncoded.
func (r *Registry) SnapshotAll(owner *Owner) (map[int64]interface{}, error) {
	if err := r.checkOwner(owner, "SnapshotAll"); err != nil {
		return nil, err
	}
	r.cut.Lock()
	defer r.cut.Unlock()
	result := make(map[int64]interface{})
	for _, e := range r.live() {
		v, err := e.Snapshot(owner)
		if err != nil {
			return nil, err
		}
		result[e.ID()] = v
	}
	return result, nil
}

// ResetAll returns every live Accumulable to its Param's zero, ahead of a job which reuses them
func (r *Registry) ResetAll(owner *Owner) error {
	if err := r.checkOwner(owner, "ResetAll"); err != nil {
		return err
	}
	r.cut.Lock()
	defer r.cut.Unlock()
	var multierr *multierror.Error
	for _, e := range r.live() {
		if err := e.Reset(owner); err != nil {
			multierr = multierror.Append(multierr, err)
		}
	}
	return multierr.ErrorOrNil()
}

// FinalizeAll marks every live Accumulable as Finalized, signalling that all workers have reported
func (r *Registry) FinalizeAll(owner *Owner) error {
	if err := r.checkOwner(owner, "FinalizeAll"); err != nil {
		return err
	}
	r.cut.Lock()
	defer r.cut.Unlock()
	var multierr *multierror.Error
	for _, e := range r.live() {
		if err := e.finalize(owner); err != nil {
			multierr = multierror.Append(multierr, err)
		}
	}
	return multierr.ErrorOrNil()
}

// Commit merges a batch of local buffers, typically everything one task accumulated, using token to
// reject duplicate reports. Failures of individual buffers are collected and returned together; the
// remaining buffers are still merged.
func (r *Registry) Commit(token string, pending ...Pending) error {
	r.cut.RLock()
	defer r.cut.RUnlock()
	var multierr *multierror.Error
	for _, p := range pending {
		if _, err := r.Lookup(p.AccumulatorID()); err != nil {
			multierr = multierror.Append(multierr, err)
			continue
		}
		if err := p.MergeOnce(token); err != nil {
			multierr = multierror.Append(multierr, err)
		}
	}
	return multierr.ErrorOrNil()
}

// MergeUpdates merges a batch of untyped partials keyed by accumulator id
func (r *Registry) MergeUpdates(token string, updates map[int64]interface{}) error {
	r.cut.RLock()
	defer r.cut.RUnlock()
	var multierr *multierror.Error
	for id, update := range updates {
		e, err := r.Lookup(id)
		if err == nil {
			err = e.MergeUpdate(token, update)
		}
		if err != nil {
			multierr = multierror.Append(multierr, err)
		}
	}
	return multierr.ErrorOrNil()
}

// MergeEncoded merges a batch of serialized partials keyed by accumulator id
func (r *Registry) MergeEncoded(token string, updates map[int64][]byte) error {
	r.cut.RLock()
	defer r.cut.RUnlock()
	var multierr *multierror.Error
	for id, buf := range updates {
		e, err := r.Lookup(id)
		if err == nil {
			err = e.MergeBytes(token, buf)
		}
		if err != nil {
			multierr = multierror.Append(multierr, err)
		}
	}
	return multierr.ErrorOrNil()
}

// live returns every registered Entry, in id order
func (r *Registry) live() []Entry {
	r.lock.RLock()
	defer r.lock.RUnlock()
	entries := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID() < entries[j].ID() })
	return entries
}

func (r *Registry) checkOwner(owner *Owner, op string) error {
	if !r.owner.owns(owner) {
		return errors.AccessViolationError{Name: "registry", Op: op}
	}
	return nil
}
