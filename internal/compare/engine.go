package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/transform"
)

// Scenario is a named plan compared as-is
type Scenario struct {
	Name        string
	Description string
	Inputs      domain.Inputs
}

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	Engine            *calculation.ProjectionEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(engine *calculation.ProjectionEngine) *CompareEngine {
	if engine == nil {
		engine = calculation.NewProjectionEngine()
	}
	return &CompareEngine{
		Engine:            engine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Display name of the base plan
	Templates        []string // List of template names to apply
	ConfigPath       string
}

// Compare projects the base plan and one variant per template
func (ce *CompareEngine) Compare(
	ctx context.Context,
	inputs domain.Inputs,
	options CompareOptions,
) (*ComparisonSet, error) {
	if len(options.Templates) == 0 {
		return nil, fmt.Errorf("at least one template is required")
	}

	baseName := options.BaseScenarioName
	if baseName == "" {
		baseName = "base"
	}

	baseResult := ce.MetricsCalculator.CalculateMetrics(baseName, inputs, ce.Engine.Project(inputs))

	alternatives := make([]ComparisonResult, 0, len(options.Templates))
	for _, templateName := range options.Templates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modified, err := transform.ApplyTemplate(inputs, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(template.Name, modified, ce.Engine.Project(modified))
		altResult.Description = template.Description
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)

		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		ConfigPath:         options.ConfigPath,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// CompareScenarios compares explicit plans (not using templates) against a base plan
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	base Scenario,
	alternatives []Scenario,
) (*ComparisonSet, error) {
	if len(alternatives) == 0 {
		return nil, fmt.Errorf("at least one alternative scenario is required")
	}

	baseResult := ce.MetricsCalculator.CalculateMetrics(base.Name, base.Inputs, ce.Engine.Project(base.Inputs))

	results := make([]ComparisonResult, 0, len(alternatives))
	for _, alt := range alternatives {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(alt.Name, alt.Inputs, ce.Engine.Project(alt.Inputs))
		altResult.Description = alt.Description
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
		results = append(results, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   base.Name,
		BaseResult:         &baseResult,
		AlternativeResults: results,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
