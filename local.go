package accum

import (
	errors "github.com/go-sif/accum/errors"
)

// A Local is a worker's private accumulation buffer for an Accumulable. Adds never synchronize with
// other workers, and are invisible to the global value until the buffer is merged. A Local is meant to
// be used by a single goroutine, and may be merged at most once. A Local that is never merged (or is
// discarded) contributes nothing to the global value.
type Local[R, T any] struct {
	acc       *Accumulable[R, T]
	value     R
	merged    bool
	discarded bool
}

var _ Pending = (*Local[int64, int64])(nil)

// AccumulatorID returns the id of the Accumulable this buffer belongs to
func (l *Local[R, T]) AccumulatorID() int64 {
	return l.acc.id
}

// Accumulable returns the Accumulable this buffer belongs to
func (l *Local[R, T]) Accumulable() *Accumulable[R, T] {
	return l.acc
}

// Add folds an element into this buffer
func (l *Local[R, T]) Add(term T) error {
	if err := l.checkUsable(); err != nil {
		return err
	}
	v, err := l.acc.param.AddAccumulator(l.value, term)
	if err != nil {
		return err
	}
	l.value = v
	return nil
}

// LocalValue returns the current contents of this buffer. This is NOT the global value.
// The result may be mutated directly, e.g. to add an element to a set.
func (l *Local[R, T]) LocalValue() R {
	return l.value
}

// Merge folds this buffer into the global value of its Accumulable
func (l *Local[R, T]) Merge() error {
	return l.MergeOnce("")
}

// MergeOnce folds this buffer into the global value of its Accumulable, deduplicated by token
// (see Accumulable.MergeOnce)
func (l *Local[R, T]) MergeOnce(token string) error {
	if err := l.checkUsable(); err != nil {
		return err
	}
	if err := l.acc.MergeOnce(token, l.value); err != nil {
		return err
	}
	l.merged = true
	return nil
}

// Encode serializes this buffer with its Accumulable's Codec, so that it may be merged elsewhere
// with Accumulable.MergeBytes
func (l *Local[R, T]) Encode() ([]byte, error) {
	if err := l.checkUsable(); err != nil {
		return nil, err
	}
	if l.acc.codec == nil {
		return nil, errors.MissingCodecError{ID: l.acc.id}
	}
	return l.acc.codec.Encode(l.value)
}

// MarkMerged records that this buffer's contents were delivered by some other route (e.g. as encoded
// bytes), so that it cannot be merged again
func (l *Local[R, T]) MarkMerged() {
	l.merged = true
}

// Discard drops the contents of this buffer, which may no longer be used
func (l *Local[R, T]) Discard() {
	l.discarded = true
	var zero R
	l.value = zero
}

func (l *Local[R, T]) checkUsable() error {
	if l.discarded {
		return errors.DiscardedError{ID: l.acc.id}
	}
	if l.merged {
		return errors.AlreadyMergedError{ID: l.acc.id}
	}
	return nil
}
