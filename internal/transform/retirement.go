package transform

import (
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/domain"
)

// PostponeRetirement shifts the retirement age by Years. Negative values retire
// earlier. This is useful for exploring "work one more year" scenarios.
type PostponeRetirement struct {
	Years int
}

func (pt *PostponeRetirement) Name() string {
	return "postpone_retirement"
}

func (pt *PostponeRetirement) Description() string {
	if pt.Years < 0 {
		return fmt.Sprintf("Retire %d years earlier", -pt.Years)
	}
	return fmt.Sprintf("Postpone retirement by %d years", pt.Years)
}

func (pt *PostponeRetirement) Validate(base domain.Inputs) error {
	newAge := base.RetirementAge + pt.Years
	if newAge <= base.CurrentAge {
		return NewTransformError(pt.Name(), "validate", fmt.Sprintf("retirement age %d would not be after current age %d", newAge, base.CurrentAge), nil)
	}
	if newAge > base.LifeExpectancy {
		return NewTransformError(pt.Name(), "validate", fmt.Sprintf("retirement age %d would be after life expectancy %d", newAge, base.LifeExpectancy), nil)
	}
	return nil
}

func (pt *PostponeRetirement) Apply(base domain.Inputs) (domain.Inputs, error) {
	modified := base.Clone()
	modified.RetirementAge = base.RetirementAge + pt.Years
	return modified, nil
}

// SetRetirementAge sets the retirement age to an absolute value.
// Unlike PostponeRetirement which is relative, this sets an exact age.
type SetRetirementAge struct {
	Age int
}

func (sr *SetRetirementAge) Name() string {
	return "set_retirement_age"
}

func (sr *SetRetirementAge) Description() string {
	return fmt.Sprintf("Retire at age %d", sr.Age)
}

func (sr *SetRetirementAge) Validate(base domain.Inputs) error {
	if sr.Age <= base.CurrentAge {
		return NewTransformError(sr.Name(), "validate", fmt.Sprintf("retirement age %d must be after current age %d", sr.Age, base.CurrentAge), nil)
	}
	return nil
}

func (sr *SetRetirementAge) Apply(base domain.Inputs) (domain.Inputs, error) {
	modified := base.Clone()
	modified.RetirementAge = sr.Age
	return modified, nil
}
