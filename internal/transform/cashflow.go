package transform

import (
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// AddCashflow schedules a one-time inflow (positive) or outflow (negative) at Age.
// The projection honours only the first cashflow per age, so adding at an age
// that already has one is rejected.
type AddCashflow struct {
	Age    int
	Amount decimal.Decimal
	Label  string
}

func (ac *AddCashflow) Name() string {
	return "add_cashflow"
}

func (ac *AddCashflow) Description() string {
	label := ac.Label
	if label == "" {
		label = "one-time cashflow"
	}
	return fmt.Sprintf("Add %s of $%s at age %d", label, ac.Amount.StringFixed(0), ac.Age)
}

func (ac *AddCashflow) Validate(base domain.Inputs) error {
	if ac.Amount.IsZero() {
		return NewTransformError(ac.Name(), "validate", "amount cannot be zero", nil)
	}
	if ac.Age < base.CurrentAge || ac.Age > base.LifeExpectancy {
		return NewTransformError(ac.Name(), "validate", fmt.Sprintf("age %d is outside the projection (%d-%d)", ac.Age, base.CurrentAge, base.LifeExpectancy), nil)
	}
	if _, exists := base.CashflowAt(ac.Age); exists {
		return NewTransformError(ac.Name(), "validate", fmt.Sprintf("a cashflow is already scheduled at age %d", ac.Age), nil)
	}
	return nil
}

func (ac *AddCashflow) Apply(base domain.Inputs) (domain.Inputs, error) {
	modified := base.Clone()
	modified.OneTimeCashflows = append(modified.OneTimeCashflows, domain.Cashflow{
		Age:    ac.Age,
		Amount: ac.Amount,
		Label:  ac.Label,
	})
	return modified, nil
}

// RemoveCashflow drops every cashflow scheduled at Age.
type RemoveCashflow struct {
	Age int
}

func (rc *RemoveCashflow) Name() string {
	return "remove_cashflow"
}

func (rc *RemoveCashflow) Description() string {
	return fmt.Sprintf("Remove one-time cashflows at age %d", rc.Age)
}

func (rc *RemoveCashflow) Validate(base domain.Inputs) error {
	if _, exists := base.CashflowAt(rc.Age); !exists {
		return NewTransformError(rc.Name(), "validate", fmt.Sprintf("no cashflow scheduled at age %d", rc.Age), nil)
	}
	return nil
}

func (rc *RemoveCashflow) Apply(base domain.Inputs) (domain.Inputs, error) {
	modified := base.Clone()
	kept := modified.OneTimeCashflows[:0]
	for _, cf := range modified.OneTimeCashflows {
		if cf.Age != rc.Age {
			kept = append(kept, cf)
		}
	}
	modified.OneTimeCashflows = kept
	return modified, nil
}
