package accum

import (
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
	errors "github.com/go-sif/accum/errors"
)

// State describes where an Accumulable is in its lifecycle
type State int

const (
	// Active Accumulables accept merges from workers
	Active State = iota
	// Finalized Accumulables have passed a job boundary, and their value is safe for the Owner to read
	Finalized
	// Destroyed Accumulables have been removed from their Registry, and reject all operations
	Destroyed
)

// String returns a textual representation of this State
func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Finalized:
		return "finalized"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// An Accumulable is a shared aggregation cell. Workers accumulate into private Local buffers, and
// fold those buffers into the global value with Merge. Only the Owner the Accumulable was registered
// with may read or overwrite the global value.
type Accumulable[R, T any] struct {
	id      int64
	name    string
	initial R
	param   AccumulableParam[R, T]
	owner   *Owner
	codec   Codec[R]

	lock   sync.Mutex // guards everything below
	value  R
	state  State
	tokens map[uint64]struct{} // hashes of merge tokens seen since the last reset
}

// Option configures an Accumulable at registration time
type Option[R any] func(*settings[R])

type settings[R any] struct {
	codec Codec[R]
}

// WithCodec configures the Codec used to serialize local buffers and deserialize incoming partials
func WithCodec[R any](c Codec[R]) Option[R] {
	return func(s *settings[R]) {
		s.codec = c
	}
}

func newAccumulable[R, T any](id int64, name string, initial R, param AccumulableParam[R, T], owner *Owner, opts ...Option[R]) *Accumulable[R, T] {
	s := &settings[R]{}
	for _, opt := range opts {
		opt(s)
	}
	return &Accumulable[R, T]{
		id:      id,
		name:    name,
		initial: initial,
		param:   param,
		owner:   owner,
		codec:   s.codec,
		value:   clone(param, initial),
		state:   Active,
		tokens:  make(map[uint64]struct{}),
	}
}

// ID returns the registry-assigned identifier of this Accumulable
func (a *Accumulable[R, T]) ID() int64 {
	return a.id
}

// Name returns the human-readable name of this Accumulable, which may be empty
func (a *Accumulable[R, T]) Name() string {
	return a.name
}

// Param returns the reduction algebra of this Accumulable
func (a *Accumulable[R, T]) Param() AccumulableParam[R, T] {
	return a.param
}

// Codec returns the Codec of this Accumulable, or nil if none was configured
func (a *Accumulable[R, T]) Codec() Codec[R] {
	return a.codec
}

// State returns the current lifecycle State of this Accumulable
func (a *Accumulable[R, T]) State() State {
	a.lock.Lock()
	defer a.lock.Unlock()
	return a.state
}

// String returns a description of this Accumulable. It never includes the value, which is owner-only.
func (a *Accumulable[R, T]) String() string {
	name := a.name
	if len(name) == 0 {
		name = "unnamed"
	}
	return fmt.Sprintf("%s#%d", name, a.id)
}

// Local creates a new worker-local buffer for this Accumulable, seeded with the Param's zero
func (a *Accumulable[R, T]) Local() *Local[R, T] {
	return &Local[R, T]{acc: a, value: a.param.Zero(a.initial)}
}

// Merge folds a full aggregate into the global value. Merge does not detect duplicate reports;
// use MergeOnce when the same partial might be delivered more than once.
func (a *Accumulable[R, T]) Merge(term R) error {
	a.lock.Lock()
	defer a.lock.Unlock()
	return a.mergeLocked(term)
}

// MergeOnce folds a full aggregate into the global value, unless a merge with the same token has
// already been applied since the last reset, in which case an AlreadyMergedError is returned and the
// global value is unchanged. An empty token behaves like Merge.
func (a *Accumulable[R, T]) MergeOnce(token string, term R) error {
	if len(token) == 0 {
		return a.Merge(term)
	}
	h := xxhash.Sum64String(token)
	a.lock.Lock()
	defer a.lock.Unlock()
	if _, ok := a.tokens[h]; ok {
		return errors.AlreadyMergedError{ID: a.id, Token: token}
	}
	if err := a.mergeLocked(term); err != nil {
		return err
	}
	a.tokens[h] = struct{}{}
	return nil
}

// MergeBytes decodes a serialized partial with this Accumulable's Codec, then applies it with MergeOnce
func (a *Accumulable[R, T]) MergeBytes(token string, buf []byte) error {
	if a.codec == nil {
		return errors.MissingCodecError{ID: a.id}
	}
	term, err := a.codec.Decode(buf)
	if err != nil {
		return fmt.Errorf("Unable to decode partial for accumulator %s: %w", a, err)
	}
	return a.MergeOnce(token, term)
}

// MergeUpdate merges an untyped partial, which must be of this Accumulable's aggregate type
func (a *Accumulable[R, T]) MergeUpdate(token string, update interface{}) error {
	term, ok := update.(R)
	if !ok {
		return errors.TypeMismatchError{
			Param:  a.String(),
			Reason: fmt.Sprintf("update of type %T cannot be merged into %T", update, a.initial),
		}
	}
	return a.MergeOnce(token, term)
}

func (a *Accumulable[R, T]) mergeLocked(term R) error {
	if a.state == Destroyed {
		return errors.UnknownAccumulatorError{ID: a.id}
	}
	v, err := a.param.AddInPlace(a.value, term)
	if err != nil {
		return err
	}
	a.value = v
	a.state = Active
	return nil
}

// Value returns the global value of this Accumulable. Only the Owner may call Value.
func (a *Accumulable[R, T]) Value(owner *Owner) (R, error) {
	a.lock.Lock()
	defer a.lock.Unlock()
	if err := a.checkOwnerLocked(owner, "Value"); err != nil {
		var zero R
		return zero, err
	}
	return clone(a.param, a.value), nil
}

// Snapshot returns the global value of this Accumulable as an interface{}. Only the Owner may call Snapshot.
func (a *Accumulable[R, T]) Snapshot(owner *Owner) (interface{}, error) {
	v, err := a.Value(owner)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// SetValue overwrites the global value of this Accumulable. Only the Owner may call SetValue.
func (a *Accumulable[R, T]) SetValue(owner *Owner, v R) error {
	a.lock.Lock()
	defer a.lock.Unlock()
	if err := a.checkOwnerLocked(owner, "SetValue"); err != nil {
		return err
	}
	a.value = clone(a.param, v)
	return nil
}

// Reset returns the global value to the Param's zero, forgets all merge tokens, and reactivates
// this Accumulable. Only the Owner may call Reset.
func (a *Accumulable[R, T]) Reset(owner *Owner) error {
	a.lock.Lock()
	defer a.lock.Unlock()
	if err := a.checkOwnerLocked(owner, "Reset"); err != nil {
		return err
	}
	a.value = a.param.Zero(a.initial)
	a.tokens = make(map[uint64]struct{})
	a.state = Active
	return nil
}

func (a *Accumulable[R, T]) finalize(owner *Owner) error {
	a.lock.Lock()
	defer a.lock.Unlock()
	if err := a.checkOwnerLocked(owner, "Finalize"); err != nil {
		return err
	}
	a.state = Finalized
	return nil
}

func (a *Accumulable[R, T]) destroy(owner *Owner) error {
	a.lock.Lock()
	defer a.lock.Unlock()
	if err := a.checkOwnerLocked(owner, "Destroy"); err != nil {
		return err
	}
	a.state = Destroyed
	a.tokens = nil
	var zero R
	a.value = zero
	return nil
}

func (a *Accumulable[R, T]) checkOwnerLocked(owner *Owner, op string) error {
	if a.state == Destroyed {
		return errors.UnknownAccumulatorError{ID: a.id}
	}
	if !a.owner.owns(owner) {
		return errors.AccessViolationError{ID: a.id, Name: a.name, Op: op}
	}
	return nil
}
