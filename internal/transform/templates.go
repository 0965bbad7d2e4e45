package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ConfigTransform
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
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
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

// CreateBuiltInTemplates creates a template registry with common what-if questions
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()
	one := decimal.NewFromInt(1)

	registry.Register(Template{
		Name:        "inflation_plus_1",
		Description: "Inflation one point higher than assumed",
		Transforms:  []ConfigTransform{&AdjustInflation{Delta: one}},
	})
	registry.Register(Template{
		Name:        "inflation_minus_1",
		Description: "Inflation one point lower than assumed",
		Transforms:  []ConfigTransform{&AdjustInflation{Delta: one.Neg()}},
	})

	registry.Register(Template{
		Name:        "returns_plus_1",
		Description: "Every bucket returns one point more",
		Transforms:  []ConfigTransform{&AdjustReturns{Delta: one}},
	})
	registry.Register(Template{
		Name:        "returns_minus_1",
		Description: "Every bucket returns one point less",
		Transforms:  []ConfigTransform{&AdjustReturns{Delta: one.Neg()}},
	})

	registry.Register(Template{
		Name:        "expenses_minus_10",
		Description: "Cut regular expenses by 10%",
		Transforms:  []ConfigTransform{&ScaleExpenses{Factor: decimal.RequireFromString("0.9")}},
	})
	registry.Register(Template{
		Name:        "expenses_plus_10",
		Description: "Regular expenses 10% higher",
		Transforms:  []ConfigTransform{&ScaleExpenses{Factor: decimal.RequireFromString("1.1")}},
	})

	registry.Register(Template{
		Name:        "no_one_time",
		Description: "Skip every planned one-time expense",
		Transforms:  []ConfigTransform{&DropOneTimeExpenses{}},
	})

	// Combinations
	registry.Register(Template{
		Name:        "stress",
		Description: "Inflation +1 and returns -1",
		Transforms: []ConfigTransform{
			&AdjustInflation{Delta: one},
			&AdjustReturns{Delta: one.Neg()},
		},
	})
	registry.Register(Template{
		Name:        "frugal",
		Description: "Cut regular expenses by 10% and skip one-time expenses",
		Transforms: []ConfigTransform{
			&ScaleExpenses{Factor: decimal.RequireFromString("0.9")},
			&DropOneTimeExpenses{},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base configuration
func ApplyTemplate(base *domain.CalculatorConfig, template Template) (*domain.CalculatorConfig, error) {
	if len(template.Transforms) == 0 {
		if base == nil {
			return nil, fmt.Errorf("base configuration cannot be nil")
		}
		return base.DeepCopy(), nil
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

	categories := map[string][]Template{}
	order := []string{"Inflation", "Returns", "Expenses", "Combination Strategies"}

	for _, name := range registry.List() {
		template := registry.templates[name]
		switch {
		case strings.HasPrefix(name, "inflation_"):
			categories["Inflation"] = append(categories["Inflation"], template)
		case strings.HasPrefix(name, "returns_"):
			categories["Returns"] = append(categories["Returns"], template)
		case strings.HasPrefix(name, "expenses_"), name == "no_one_time":
			categories["Expenses"] = append(categories["Expenses"], template)
		default:
			categories["Combination Strategies"] = append(categories["Combination Strategies"], template)
		}
	}

	for _, category := range order {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  runway compare plan.yaml --with inflation_plus_1,returns_minus_1\n")
	sb.WriteString("  runway compare --with stress --transform defer_expense:id=2,years=3\n")

	return sb.String()
}
