package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []InputTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ConservativeTransforms is the conservative assumption set: 5% return, 3.5%
// inflation, 10% more spending, and a horizon of at least age 95.
func ConservativeTransforms() []InputTransform {
	return []InputTransform{
		&SetReturnRate{Rate: decimal.NewFromInt(5)},
		&SetInflationRate{Rate: decimal.NewFromFloat(3.5)},
		&ScaleSpending{Factor: decimal.NewFromFloat(1.1)},
		&MinLifeExpectancy{Age: 95},
	}
}

// WorstCaseTransforms is the pessimistic stress scenario: 4% return, 5%
// inflation, planning to exactly age 95, 10% more spending.
func WorstCaseTransforms() []InputTransform {
	return []InputTransform{
		&SetReturnRate{Rate: decimal.NewFromInt(4)},
		&SetInflationRate{Rate: decimal.NewFromInt(5)},
		&SetLifeExpectancy{Age: 95},
		&ScaleSpending{Factor: decimal.NewFromFloat(1.1)},
	}
}

// BestCaseTransforms is the optimistic stress scenario: 10% return, 2% inflation.
func BestCaseTransforms() []InputTransform {
	return []InputTransform{
		&SetReturnRate{Rate: decimal.NewFromInt(10)},
		&SetInflationRate{Rate: decimal.NewFromInt(2)},
	}
}

// CreateBuiltInTemplates creates a template registry with common retirement scenarios
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Assumption sets
	registry.Register(Template{
		Name:        "conservative",
		Description: "5% return, 3.5% inflation, +10% spending, plan to at least 95",
		Transforms:  ConservativeTransforms(),
	})

	registry.Register(Template{
		Name:        "worst_case",
		Description: "Stress test: 4% return, 5% inflation, plan to 95, +10% spending",
		Transforms:  WorstCaseTransforms(),
	})

	registry.Register(Template{
		Name:        "best_case",
		Description: "Stress test: 10% return, 2% inflation",
		Transforms:  BestCaseTransforms(),
	})

	// Retirement timing
	registry.Register(Template{
		Name:        "retire_later_2yr",
		Description: "Postpone retirement by 2 years",
		Transforms: []InputTransform{
			&PostponeRetirement{Years: 2},
		},
	})

	registry.Register(Template{
		Name:        "retire_earlier_2yr",
		Description: "Retire 2 years earlier",
		Transforms: []InputTransform{
			&PostponeRetirement{Years: -2},
		},
	})

	// Saving and spending
	registry.Register(Template{
		Name:        "save_more_10pct",
		Description: "Increase annual contributions by 10%",
		Transforms: []InputTransform{
			&ScaleContribution{Factor: decimal.NewFromFloat(1.1)},
		},
	})

	registry.Register(Template{
		Name:        "spend_less_10pct",
		Description: "Reduce retirement spending by 10%",
		Transforms: []InputTransform{
			&ScaleSpending{Factor: decimal.NewFromFloat(0.9)},
		},
	})

	// Combination
	registry.Register(Template{
		Name:        "retire_later_save_more",
		Description: "Postpone retirement 2 years + save 10% more",
		Transforms: []InputTransform{
			&PostponeRetirement{Years: 2},
			&ScaleContribution{Factor: decimal.NewFromFloat(1.1)},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base plan
func ApplyTemplate(base domain.Inputs, template Template) (domain.Inputs, error) {
	if len(template.Transforms) == 0 {
		return base.Clone(), nil
	}
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := map[string][]Template{
		"Assumptions":            {},
		"Retirement Timing":      {},
		"Saving and Spending":    {},
		"Combination Strategies": {},
	}

	for _, name := range registry.List() {
		template := registry.templates[name]
		switch {
		case name == "conservative" || strings.HasSuffix(name, "_case"):
			categories["Assumptions"] = append(categories["Assumptions"], template)
		case strings.HasPrefix(name, "retire_") && strings.Count(name, "_") == 2:
			categories["Retirement Timing"] = append(categories["Retirement Timing"], template)
		case strings.HasPrefix(name, "save_") || strings.HasPrefix(name, "spend_"):
			categories["Saving and Spending"] = append(categories["Saving and Spending"], template)
		default:
			categories["Combination Strategies"] = append(categories["Combination Strategies"], template)
		}
	}

	for _, category := range []string{"Assumptions", "Retirement Timing", "Saving and Spending", "Combination Strategies"} {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-26s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  nestegg compare plan.yaml --with conservative,retire_later_2yr\n")
	sb.WriteString("  nestegg compare plan.yaml --with worst_case,best_case\n")

	return sb.String()
}
