package text

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrMissingResource   = errors.New("missing resource")
	ErrNotCreated        = errors.New("geometry buffer not created")
	ErrAlreadyCreated    = errors.New("geometry buffer already created")
	ErrCapacityExceeded  = errors.New("geometry exceeds buffer capacity")
	ErrMalformedGeometry = errors.New("malformed geometry")
	ErrDeleted           = errors.New("geometry buffer deleted")
)

// ResourceError reports a font descriptor or atlas that could not be read.
type ResourceError struct {
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

func (e *ResourceError) Is(target error) bool {
	return target == ErrMissingResource
}

// CapacityError is returned by GeometryBuffer.Update when the new content does not fit.
type CapacityError struct {
	Capacity int // vertices allocated
	Required int // vertices in the new content
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%v: %d vertices required, %d allocated", ErrCapacityExceeded, e.Required, e.Capacity)
}

func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacityExceeded
}
