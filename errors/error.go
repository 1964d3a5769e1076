package errors

import (
	"fmt"
)

// AccessViolationError occurs when an owner-only operation is attempted with a missing or foreign Owner
type AccessViolationError struct {
	ID   int64
	Name string
	Op   string
}

// Error returns a textual representation of this AccessViolationError
func (e AccessViolationError) Error() string {
	return fmt.Sprintf("%s on accumulator %s#%d is only allowed for its owner", e.Op, e.Name, e.ID)
}

// TypeMismatchError occurs when a reduction is asked to combine operands which violate its shape or type contract
type TypeMismatchError struct {
	Param  string
	Reason string
}

// Error returns a textual representation of this TypeMismatchError
func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("Type mismatch in %s: %s", e.Param, e.Reason)
}

// UnknownAccumulatorError occurs when an accumulator id was never registered, or has been destroyed
type UnknownAccumulatorError struct{ ID int64 }

// Error returns a textual representation of this UnknownAccumulatorError
func (e UnknownAccumulatorError) Error() string {
	return fmt.Sprintf("Accumulator %d does not exist", e.ID)
}

// AlreadyMergedError occurs when a local buffer, or a merge token, is merged a second time
type AlreadyMergedError struct {
	ID    int64
	Token string
}

// Error returns a textual representation of this AlreadyMergedError
func (e AlreadyMergedError) Error() string {
	if len(e.Token) == 0 {
		return fmt.Sprintf("Local buffer for accumulator %d has already been merged", e.ID)
	}
	return fmt.Sprintf("Token %s has already been merged into accumulator %d", e.Token, e.ID)
}

// DiscardedError occurs when a discarded local buffer is used
type DiscardedError struct{ ID int64 }

// Error returns a textual representation of this DiscardedError
func (e DiscardedError) Error() string {
	return fmt.Sprintf("Local buffer for accumulator %d was discarded", e.ID)
}

// MissingCodecError occurs when a serialized merge is attempted against an accumulator without a Codec
type MissingCodecError struct{ ID int64 }

// Error returns a textual representation of this MissingCodecError
func (e MissingCodecError) Error() string {
	return fmt.Sprintf("Accumulator %d has no codec configured", e.ID)
}
