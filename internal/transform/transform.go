package transform

import (
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/domain"
)

// InputTransform defines the interface for all input transformations.
// Transforms are composable operations that derive a variant plan from a base
// plan, used by conservative mode, stress testing, and scenario comparison.
type InputTransform interface {
	// Apply returns a modified copy of base. base itself is never changed.
	Apply(base domain.Inputs) (domain.Inputs, error)

	// Name returns a short identifier for this transform (e.g., "set_return_rate").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks if the transform parameters are valid for base without applying it.
	Validate(base domain.Inputs) error
}

// ApplyTransforms applies a sequence of transforms to a base plan.
// Transforms are applied in order, with each transform receiving the output of the previous one.
func ApplyTransforms(base domain.Inputs, transforms []InputTransform) (domain.Inputs, error) {
	current := base.Clone()

	for i, transform := range transforms {
		if transform == nil {
			return domain.Inputs{}, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return domain.Inputs{}, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return domain.Inputs{}, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	return current, nil
}

// MustApply is ApplyTransforms for fixed transform sets whose parameters are
// known to be valid. It panics on error.
func MustApply(base domain.Inputs, transforms []InputTransform) domain.Inputs {
	out, err := ApplyTransforms(base, transforms)
	if err != nil {
		panic(err)
	}
	return out
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
