package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (InputTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_return_rate", createSetReturnRate)
	registry.Register("set_inflation_rate", createSetInflationRate)
	registry.Register("scale_spending", createScaleSpending)
	registry.Register("set_spending", createSetSpending)
	registry.Register("set_life_expectancy", createSetLifeExpectancy)
	registry.Register("min_life_expectancy", createMinLifeExpectancy)
	registry.Register("postpone_retirement", createPostponeRetirement)
	registry.Register("set_retirement_age", createSetRetirementAge)
	registry.Register("set_contribution", createSetContribution)
	registry.Register("scale_contribution", createScaleContribution)
	registry.Register("set_savings", createSetSavings)
	registry.Register("set_social_security", createSetSocialSecurity)
	registry.Register("set_pension", createSetPension)
	registry.Register("add_cashflow", createAddCashflow)
	registry.Register("remove_cashflow", createRemoveCashflow)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (InputTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "add_cashflow:age=55,amount=-20000,label=Wedding"
func (r *TransformRegistry) ParseTransformSpec(spec string) (InputTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func decimalParam(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return value, nil
}

func intParam(transform string, params map[string]string, key string) (int, error) {
	raw, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return value, nil
}

// Factory functions for each transform

func createSetReturnRate(params map[string]string) (InputTransform, error) {
	rate, err := decimalParam("set_return_rate", params, "rate")
	if err != nil {
		return nil, err
	}
	return &SetReturnRate{Rate: rate}, nil
}

func createSetInflationRate(params map[string]string) (InputTransform, error) {
	rate, err := decimalParam("set_inflation_rate", params, "rate")
	if err != nil {
		return nil, err
	}
	return &SetInflationRate{Rate: rate}, nil
}

func createScaleSpending(params map[string]string) (InputTransform, error) {
	factor, err := decimalParam("scale_spending", params, "factor")
	if err != nil {
		return nil, err
	}
	return &ScaleSpending{Factor: factor}, nil
}

func createSetSpending(params map[string]string) (InputTransform, error) {
	amount, err := decimalParam("set_spending", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetSpending{Amount: amount}, nil
}

func createSetLifeExpectancy(params map[string]string) (InputTransform, error) {
	age, err := intParam("set_life_expectancy", params, "age")
	if err != nil {
		return nil, err
	}
	return &SetLifeExpectancy{Age: age}, nil
}

func createMinLifeExpectancy(params map[string]string) (InputTransform, error) {
	age, err := intParam("min_life_expectancy", params, "age")
	if err != nil {
		return nil, err
	}
	return &MinLifeExpectancy{Age: age}, nil
}

func createPostponeRetirement(params map[string]string) (InputTransform, error) {
	years, err := intParam("postpone_retirement", params, "years")
	if err != nil {
		return nil, err
	}
	return &PostponeRetirement{Years: years}, nil
}

func createSetRetirementAge(params map[string]string) (InputTransform, error) {
	age, err := intParam("set_retirement_age", params, "age")
	if err != nil {
		return nil, err
	}
	return &SetRetirementAge{Age: age}, nil
}

func createSetContribution(params map[string]string) (InputTransform, error) {
	amount, err := decimalParam("set_contribution", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetContribution{Amount: amount}, nil
}

func createScaleContribution(params map[string]string) (InputTransform, error) {
	factor, err := decimalParam("scale_contribution", params, "factor")
	if err != nil {
		return nil, err
	}
	return &ScaleContribution{Factor: factor}, nil
}

func createSetSavings(params map[string]string) (InputTransform, error) {
	amount, err := decimalParam("set_savings", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetSavings{Amount: amount}, nil
}

func createSetSocialSecurity(params map[string]string) (InputTransform, error) {
	amount, err := decimalParam("set_social_security", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetSocialSecurity{Amount: amount}, nil
}

func createSetPension(params map[string]string) (InputTransform, error) {
	amount, err := decimalParam("set_pension", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetPension{Amount: amount}, nil
}

func createAddCashflow(params map[string]string) (InputTransform, error) {
	age, err := intParam("add_cashflow", params, "age")
	if err != nil {
		return nil, err
	}
	amount, err := decimalParam("add_cashflow", params, "amount")
	if err != nil {
		return nil, err
	}
	return &AddCashflow{Age: age, Amount: amount, Label: params["label"]}, nil
}

func createRemoveCashflow(params map[string]string) (InputTransform, error) {
	age, err := intParam("remove_cashflow", params, "age")
	if err != nil {
		return nil, err
	}
	return &RemoveCashflow{Age: age}, nil
}
