package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Format is a plan file encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// AssumptionsConservative applies the conservative adjustment after loading
const AssumptionsConservative = "conservative"

// PlanFile is the on-disk plan: the projection inputs plus an optional
// assumptions preset.
type PlanFile struct {
	domain.Inputs `yaml:",inline"`
	Assumptions   string `yaml:"assumptions,omitempty" json:"assumptions,omitempty" toml:"assumptions,omitempty"`
}

// InputParser handles parsing of plan files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// FormatFromPath picks the encoding from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported plan file extension %q (want .yaml, .yml, .toml or .json)", filepath.Ext(path))
	}
}

// Conservative reports whether the plan asks for the conservative assumption set
func (p PlanFile) Conservative() bool {
	return strings.EqualFold(strings.TrimSpace(p.Assumptions), AssumptionsConservative)
}

// LoadPlan reads and validates a plan file from YAML, TOML or JSON. The
// assumptions preset is checked but not applied.
func (ip *InputParser) LoadPlan(filename string) (PlanFile, error) {
	format, err := FormatFromPath(filename)
	if err != nil {
		return PlanFile{}, err
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return PlanFile{}, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	plan, err := ip.ParsePlan(data, format)
	if err != nil {
		return PlanFile{}, fmt.Errorf("%s: %w", filename, err)
	}
	return plan, nil
}

// ParsePlan decodes a plan in the given format and validates its inputs and preset name
func (ip *InputParser) ParsePlan(data []byte, format Format) (PlanFile, error) {
	plan, err := ip.decode(data, format)
	if err != nil {
		return PlanFile{}, err
	}

	if err := ip.ValidateInputs(plan.Inputs); err != nil {
		return PlanFile{}, fmt.Errorf("plan validation failed: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(plan.Assumptions)) {
	case "", "base", AssumptionsConservative:
		return plan, nil
	default:
		return PlanFile{}, &ValidationError{
			Field:  "assumptions",
			Reason: fmt.Sprintf("unknown preset %q (want %q)", plan.Assumptions, AssumptionsConservative),
		}
	}
}

// LoadFromFile is LoadPlan with the assumptions preset applied. The result may
// exceed the validation bounds (conservative spending is raised 10%).
func (ip *InputParser) LoadFromFile(filename string) (domain.Inputs, error) {
	plan, err := ip.LoadPlan(filename)
	if err != nil {
		return domain.Inputs{}, err
	}
	return plan.Effective(), nil
}

// Parse is ParsePlan with the assumptions preset applied
func (ip *InputParser) Parse(data []byte, format Format) (domain.Inputs, error) {
	plan, err := ip.ParsePlan(data, format)
	if err != nil {
		return domain.Inputs{}, err
	}
	return plan.Effective(), nil
}

// Effective returns the inputs with the assumptions preset applied
func (p PlanFile) Effective() domain.Inputs {
	if p.Conservative() {
		return calculation.ApplyConservativeAdjustment(p.Inputs)
	}
	return p.Inputs
}

func (ip *InputParser) decode(data []byte, format Format) (PlanFile, error) {
	var plan PlanFile

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &plan); err != nil {
			return plan, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &plan); err != nil {
			return plan, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&plan); err != nil {
			return plan, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return plan, fmt.Errorf("unsupported format %q", format)
	}

	return plan, nil
}

// ValidationError names the input that failed validation
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// IsValidationError reports whether err carries a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Bounds accepted for plan inputs
var (
	maxSavings        = decimal.NewFromInt(10000000)
	maxContribution   = decimal.NewFromInt(100000)
	maxReturnRate     = decimal.NewFromInt(20)
	maxSpending       = decimal.NewFromInt(500000)
	maxInflationRate  = decimal.NewFromInt(10)
	maxSocialSecurity = decimal.NewFromInt(100000)
	maxPension        = decimal.NewFromInt(200000)
)

const (
	minCurrentAge        = 18
	maxAge               = 100
	maxLifeExpectancyAge = 120
)

// ValidateInputs checks a plan against the ranges the planner accepts
func (ip *InputParser) ValidateInputs(inputs domain.Inputs) error {
	if inputs.CurrentAge < minCurrentAge || inputs.CurrentAge > maxAge {
		return &ValidationError{"current_age", fmt.Sprintf("must be between %d and %d, got %d", minCurrentAge, maxAge, inputs.CurrentAge)}
	}
	if inputs.RetirementAge <= inputs.CurrentAge || inputs.RetirementAge > maxAge {
		return &ValidationError{"retirement_age", fmt.Sprintf("must be after current age %d and at most %d, got %d", inputs.CurrentAge, maxAge, inputs.RetirementAge)}
	}
	if inputs.LifeExpectancy <= inputs.RetirementAge || inputs.LifeExpectancy > maxLifeExpectancyAge {
		return &ValidationError{"life_expectancy", fmt.Sprintf("must be after retirement age %d and at most %d, got %d", inputs.RetirementAge, maxLifeExpectancyAge, inputs.LifeExpectancy)}
	}

	if err := validateAmount("current_savings", inputs.CurrentSavings, maxSavings); err != nil {
		return err
	}
	if err := validateAmount("annual_contribution", inputs.AnnualContribution, maxContribution); err != nil {
		return err
	}
	if err := validateAmount("rate_of_return", inputs.RateOfReturn, maxReturnRate); err != nil {
		return err
	}
	if err := validateAmount("annual_spending", inputs.AnnualSpending, maxSpending); err != nil {
		return err
	}
	if err := validateAmount("inflation_rate", inputs.InflationRate, maxInflationRate); err != nil {
		return err
	}
	if inputs.SocialSecurityIncome != nil {
		if err := validateAmount("social_security_income", *inputs.SocialSecurityIncome, maxSocialSecurity); err != nil {
			return err
		}
	}
	if inputs.PensionIncome != nil {
		if err := validateAmount("pension_income", *inputs.PensionIncome, maxPension); err != nil {
			return err
		}
	}

	for i, cf := range inputs.OneTimeCashflows {
		if cf.Age < inputs.CurrentAge || cf.Age > inputs.LifeExpectancy {
			return &ValidationError{
				Field:  fmt.Sprintf("one_time_cashflows[%d].age", i),
				Reason: fmt.Sprintf("must be between %d and %d, got %d", inputs.CurrentAge, inputs.LifeExpectancy, cf.Age),
			}
		}
	}

	return nil
}

func validateAmount(field string, v, max decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(max) {
		return &ValidationError{field, fmt.Sprintf("must be between 0 and %s, got %s", max.String(), v.String())}
	}
	return nil
}
