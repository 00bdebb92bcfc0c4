package transform

import (
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// SetContribution replaces the annual contribution made during working years.
type SetContribution struct {
	Amount decimal.Decimal
}

func (sc *SetContribution) Name() string {
	return "set_contribution"
}

func (sc *SetContribution) Description() string {
	return fmt.Sprintf("Set annual contribution to $%s", sc.Amount.StringFixed(0))
}

func (sc *SetContribution) Validate(base domain.Inputs) error {
	if sc.Amount.IsNegative() {
		return NewTransformError(sc.Name(), "validate", fmt.Sprintf("amount must be non-negative, got %s", sc.Amount.String()), nil)
	}
	return nil
}

func (sc *SetContribution) Apply(base domain.Inputs) (domain.Inputs, error) {
	modified := base.Clone()
	modified.AnnualContribution = sc.Amount
	return modified, nil
}

// ScaleContribution multiplies the annual contribution by Factor.
type ScaleContribution struct {
	Factor decimal.Decimal // e.g. 1.1 to save 10% more
}

func (sc *ScaleContribution) Name() string {
	return "scale_contribution"
}

func (sc *ScaleContribution) Description() string {
	pct := sc.Factor.Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100))
	if pct.IsNegative() {
		return fmt.Sprintf("Save %s%% less each year", pct.Abs().StringFixed(0))
	}
	return fmt.Sprintf("Save %s%% more each year", pct.StringFixed(0))
}

func (sc *ScaleContribution) Validate(base domain.Inputs) error {
	if sc.Factor.IsNegative() {
		return NewTransformError(sc.Name(), "validate", fmt.Sprintf("factor must be non-negative, got %s", sc.Factor.String()), nil)
	}
	return nil
}

func (sc *ScaleContribution) Apply(base domain.Inputs) (domain.Inputs, error) {
	modified := base.Clone()
	modified.AnnualContribution = base.AnnualContribution.Mul(sc.Factor)
	return modified, nil
}

// SetSavings replaces the current savings balance.
type SetSavings struct {
	Amount decimal.Decimal
}

func (ss *SetSavings) Name() string {
	return "set_savings"
}

func (ss *SetSavings) Description() string {
	return fmt.Sprintf("Set current savings to $%s", ss.Amount.StringFixed(0))
}

func (ss *SetSavings) Validate(base domain.Inputs) error {
	if ss.Amount.IsNegative() {
		return NewTransformError(ss.Name(), "validate", fmt.Sprintf("amount must be non-negative, got %s", ss.Amount.String()), nil)
	}
	return nil
}

func (ss *SetSavings) Apply(base domain.Inputs) (domain.Inputs, error) {
	modified := base.Clone()
	modified.CurrentSavings = ss.Amount
	return modified, nil
}
