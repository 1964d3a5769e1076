package accum

import (
	uuid "github.com/gofrs/uuid"
)

// An Owner is the capability to read and overwrite the global value of an Accumulable. Accumulables are
// bound to an Owner when they are registered; presenting any other Owner (or nil) is an access violation.
// Workers are never handed the Owner, only Local buffers.
type Owner struct {
	id uuid.UUID
}

// NewOwner creates a new, unique Owner
func NewOwner() (*Owner, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	return &Owner{id: id}, nil
}

// ID returns the unique identifier of this Owner
func (o *Owner) ID() string {
	return o.id.String()
}

func (o *Owner) owns(a *Owner) bool {
	return o != nil && o == a
}
