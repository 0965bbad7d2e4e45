package compare

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/runway/internal/calculation"
	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/rgehrsitz/runway/internal/transform"
)

// CustomScenarioName names the alternative built from ad-hoc transforms.
const CustomScenarioName = "custom"

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Label for the unmodified configuration
	Templates        []string // Template names, one alternative each
	Transforms       []string // Transform specs combined into one "custom" alternative
	ConfigPath       string
}

// Compare projects the base configuration and every requested alternative.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	config *domain.CalculatorConfig,
	options CompareOptions,
) (*ComparisonSet, error) {
	if config == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if len(options.Templates) == 0 && len(options.Transforms) == 0 {
		return nil, fmt.Errorf("at least one template or transform is required")
	}

	baseName := options.BaseScenarioName
	if baseName == "" {
		baseName = "base"
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseName, config, ce.CalcEngine.RunConfig(*config))
	baseResult.Description = "Configuration as entered"

	alternatives := []ComparisonResult{}

	for _, templateName := range options.Templates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modified, err := transform.ApplyTemplate(config, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}

		alt := ce.MetricsCalculator.CalculateMetrics(template.Name, modified, ce.CalcEngine.RunConfig(*modified))
		alt.Description = template.Description
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(alt, baseResult))
	}

	if len(options.Transforms) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		transforms := make([]transform.ConfigTransform, 0, len(options.Transforms))
		descriptions := make([]string, 0, len(options.Transforms))
		for _, spec := range options.Transforms {
			t, err := ce.TransformRegistry.ParseTransformSpec(spec)
			if err != nil {
				return nil, fmt.Errorf("failed to parse transform %q: %w", spec, err)
			}
			transforms = append(transforms, t)
			descriptions = append(descriptions, t.Description())
		}

		modified, err := transform.ApplyTransforms(config, transforms)
		if err != nil {
			return nil, err
		}

		alt := ce.MetricsCalculator.CalculateMetrics(CustomScenarioName, modified, ce.CalcEngine.RunConfig(*modified))
		alt.Description = strings.Join(descriptions, "; ")
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(alt, baseResult))
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
