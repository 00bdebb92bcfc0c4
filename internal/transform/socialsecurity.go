package transform

import (
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// SetSocialSecurity sets the annual Social Security income received in retirement.
// A zero amount clears it.
type SetSocialSecurity struct {
	Amount decimal.Decimal
}

func (ss *SetSocialSecurity) Name() string {
	return "set_social_security"
}

func (ss *SetSocialSecurity) Description() string {
	if ss.Amount.IsZero() {
		return "Remove Social Security income"
	}
	return fmt.Sprintf("Set Social Security income to $%s/yr", ss.Amount.StringFixed(0))
}

func (ss *SetSocialSecurity) Validate(base domain.Inputs) error {
	if ss.Amount.IsNegative() {
		return NewTransformError(ss.Name(), "validate", fmt.Sprintf("amount must be non-negative, got %s", ss.Amount.String()), nil)
	}
	return nil
}

func (ss *SetSocialSecurity) Apply(base domain.Inputs) (domain.Inputs, error) {
	modified := base.Clone()
	if ss.Amount.IsZero() {
		modified.SocialSecurityIncome = nil
	} else {
		modified.SocialSecurityIncome = domain.DecimalPtr(ss.Amount)
	}
	return modified, nil
}

// SetPension sets the annual pension income received in retirement.
// A zero amount clears it.
type SetPension struct {
	Amount decimal.Decimal
}

func (sp *SetPension) Name() string {
	return "set_pension"
}

func (sp *SetPension) Description() string {
	if sp.Amount.IsZero() {
		return "Remove pension income"
	}
	return fmt.Sprintf("Set pension income to $%s/yr", sp.Amount.StringFixed(0))
}

func (sp *SetPension) Validate(base domain.Inputs) error {
	if sp.Amount.IsNegative() {
		return NewTransformError(sp.Name(), "validate", fmt.Sprintf("amount must be non-negative, got %s", sp.Amount.String()), nil)
	}
	return nil
}

func (sp *SetPension) Apply(base domain.Inputs) (domain.Inputs, error) {
	modified := base.Clone()
	if sp.Amount.IsZero() {
		modified.PensionIncome = nil
	} else {
		modified.PensionIncome = domain.DecimalPtr(sp.Amount)
	}
	return modified, nil
}
