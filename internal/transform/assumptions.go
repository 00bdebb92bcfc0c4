package transform

import (
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	minRate = decimal.NewFromInt(-100)
	maxRate = decimal.NewFromInt(100)
)

func validateRate(name string, rate decimal.Decimal) error {
	if rate.LessThanOrEqual(minRate) || rate.GreaterThan(maxRate) {
		return NewTransformError(name, "validate", fmt.Sprintf("rate must be greater than -100 and at most 100, got %s", rate.String()), nil)
	}
	return nil
}

// SetReturnRate replaces the annual rate of return assumption.
type SetReturnRate struct {
	Rate decimal.Decimal // percent, e.g. 5 for 5%
}

func (sr *SetReturnRate) Name() string {
	return "set_return_rate"
}

func (sr *SetReturnRate) Description() string {
	return fmt.Sprintf("Set rate of return to %s%%", sr.Rate.StringFixed(1))
}

func (sr *SetReturnRate) Validate(base domain.Inputs) error {
	return validateRate(sr.Name(), sr.Rate)
}

func (sr *SetReturnRate) Apply(base domain.Inputs) (domain.Inputs, error) {
	modified := base.Clone()
	modified.RateOfReturn = sr.Rate
	return modified, nil
}

// SetInflationRate replaces the annual inflation assumption.
// Inflation drives both retirement spending growth and the today's-dollars view.
type SetInflationRate struct {
	Rate decimal.Decimal // percent
}

func (si *SetInflationRate) Name() string {
	return "set_inflation_rate"
}

func (si *SetInflationRate) Description() string {
	return fmt.Sprintf("Set inflation rate to %s%%", si.Rate.StringFixed(1))
}

func (si *SetInflationRate) Validate(base domain.Inputs) error {
	return validateRate(si.Name(), si.Rate)
}

func (si *SetInflationRate) Apply(base domain.Inputs) (domain.Inputs, error) {
	modified := base.Clone()
	modified.InflationRate = si.Rate
	return modified, nil
}

// ScaleSpending multiplies annual retirement spending by Factor.
type ScaleSpending struct {
	Factor decimal.Decimal // e.g. 1.1 for +10%
}

func (ss *ScaleSpending) Name() string {
	return "scale_spending"
}

func (ss *ScaleSpending) Description() string {
	pct := ss.Factor.Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100))
	if pct.IsNegative() {
		return fmt.Sprintf("Reduce annual spending by %s%%", pct.Abs().StringFixed(0))
	}
	return fmt.Sprintf("Increase annual spending by %s%%", pct.StringFixed(0))
}

func (ss *ScaleSpending) Validate(base domain.Inputs) error {
	if ss.Factor.IsNegative() {
		return NewTransformError(ss.Name(), "validate", fmt.Sprintf("factor must be non-negative, got %s", ss.Factor.String()), nil)
	}
	return nil
}

func (ss *ScaleSpending) Apply(base domain.Inputs) (domain.Inputs, error) {
	modified := base.Clone()
	modified.AnnualSpending = base.AnnualSpending.Mul(ss.Factor)
	return modified, nil
}

// SetSpending replaces annual retirement spending outright.
type SetSpending struct {
	Amount decimal.Decimal
}

func (ss *SetSpending) Name() string {
	return "set_spending"
}

func (ss *SetSpending) Description() string {
	return fmt.Sprintf("Set annual spending to $%s", ss.Amount.StringFixed(0))
}

func (ss *SetSpending) Validate(base domain.Inputs) error {
	if ss.Amount.IsNegative() {
		return NewTransformError(ss.Name(), "validate", fmt.Sprintf("amount must be non-negative, got %s", ss.Amount.String()), nil)
	}
	return nil
}

func (ss *SetSpending) Apply(base domain.Inputs) (domain.Inputs, error) {
	modified := base.Clone()
	modified.AnnualSpending = ss.Amount
	return modified, nil
}
