package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ExampleInputs returns the starting plan shown to new users
func ExampleInputs() domain.Inputs {
	return domain.Inputs{
		CurrentAge:         30,
		RetirementAge:      65,
		CurrentSavings:     decimal.NewFromInt(50000),
		AnnualContribution: decimal.NewFromInt(15000),
		RateOfReturn:       decimal.NewFromInt(7),
		AnnualSpending:     decimal.NewFromInt(50000),
		InflationRate:      decimal.NewFromInt(3),
		LifeExpectancy:     90,
	}
}

// Encode renders a plan in the given format
func Encode(inputs domain.Inputs, format Format) ([]byte, error) {
	plan := PlanFile{Inputs: inputs}

	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(plan); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return buf.Bytes(), nil
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(plan); err != nil {
			return nil, fmt.Errorf("failed to encode TOML: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// SaveToFile writes a plan, choosing the format from the file extension
func (ip *InputParser) SaveToFile(inputs domain.Inputs, filename string) error {
	format, err := FormatFromPath(filename)
	if err != nil {
		return err
	}

	data, err := Encode(inputs, format)
	if err != nil {
		return err
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
