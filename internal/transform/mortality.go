package transform

import (
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/domain"
)

// SetLifeExpectancy sets the age the projection plans through.
type SetLifeExpectancy struct {
	Age int
}

func (sl *SetLifeExpectancy) Name() string {
	return "set_life_expectancy"
}

func (sl *SetLifeExpectancy) Description() string {
	return fmt.Sprintf("Plan through age %d", sl.Age)
}

func (sl *SetLifeExpectancy) Validate(base domain.Inputs) error {
	if sl.Age <= 0 {
		return NewTransformError(sl.Name(), "validate", fmt.Sprintf("age must be positive, got %d", sl.Age), nil)
	}
	return nil
}

func (sl *SetLifeExpectancy) Apply(base domain.Inputs) (domain.Inputs, error) {
	modified := base.Clone()
	modified.LifeExpectancy = sl.Age
	return modified, nil
}

// MinLifeExpectancy extends the planning horizon to at least Age, keeping a
// longer existing horizon.
type MinLifeExpectancy struct {
	Age int
}

func (ml *MinLifeExpectancy) Name() string {
	return "min_life_expectancy"
}

func (ml *MinLifeExpectancy) Description() string {
	return fmt.Sprintf("Plan through at least age %d", ml.Age)
}

func (ml *MinLifeExpectancy) Validate(base domain.Inputs) error {
	if ml.Age <= 0 {
		return NewTransformError(ml.Name(), "validate", fmt.Sprintf("age must be positive, got %d", ml.Age), nil)
	}
	return nil
}

func (ml *MinLifeExpectancy) Apply(base domain.Inputs) (domain.Inputs, error) {
	modified := base.Clone()
	if modified.LifeExpectancy < ml.Age {
		modified.LifeExpectancy = ml.Age
	}
	return modified, nil
}
