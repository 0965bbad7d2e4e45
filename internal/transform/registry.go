package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ConfigTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("adjust_inflation", createAdjustInflation)
	registry.Register("adjust_returns", createAdjustReturns)
	registry.Register("scale_expenses", createScaleExpenses)
	registry.Register("set_expenses", createSetExpenses)
	registry.Register("defer_expense", createDeferExpense)
	registry.Register("drop_one_time_expenses", createDropOneTimeExpenses)
	registry.Register("remove_bucket", createRemoveBucket)
	registry.Register("scale_corpus", createScaleCorpus)
	registry.Register("postpone_retirement", createPostponeRetirement)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ConfigTransform, error) {
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
// Example: "defer_expense:id=2,years=3"
// Transforms without parameters may omit the colon.
func (r *TransformRegistry) ParseTransformSpec(spec string) (ConfigTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	params := make(map[string]string)
	if len(parts) == 2 {
		paramsStr := strings.TrimSpace(parts[1])
		if paramsStr != "" {
			for _, paramPair := range strings.Split(paramsStr, ",") {
				kv := strings.SplitN(paramPair, "=", 2)
				if len(kv) != 2 {
					return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
				}
				params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
			}
		}
	}

	return r.Create(name, params)
}

func decimalParam(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func intParam(transform string, params map[string]string, key string) (int, error) {
	raw, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

// Factory functions for each transform

func createAdjustInflation(params map[string]string) (ConfigTransform, error) {
	delta, err := decimalParam("adjust_inflation", params, "delta")
	if err != nil {
		return nil, err
	}
	return &AdjustInflation{Delta: delta}, nil
}

func createAdjustReturns(params map[string]string) (ConfigTransform, error) {
	delta, err := decimalParam("adjust_returns", params, "delta")
	if err != nil {
		return nil, err
	}
	return &AdjustReturns{Delta: delta}, nil
}

func createScaleExpenses(params map[string]string) (ConfigTransform, error) {
	factor, err := decimalParam("scale_expenses", params, "factor")
	if err != nil {
		return nil, err
	}
	return &ScaleExpenses{Factor: factor}, nil
}

func createSetExpenses(params map[string]string) (ConfigTransform, error) {
	amount, err := decimalParam("set_expenses", params, "amount")
	if err != nil {
		return nil, err
	}
	t := &SetExpenses{Amount: amount}
	if kind, ok := params["type"]; ok {
		t.Type = domain.ExpenseType(strings.ToLower(kind))
	}
	return t, nil
}

func createDeferExpense(params map[string]string) (ConfigTransform, error) {
	id, err := intParam("defer_expense", params, "id")
	if err != nil {
		return nil, err
	}
	years, err := intParam("defer_expense", params, "years")
	if err != nil {
		return nil, err
	}
	return &DeferExpense{ExpenseID: id, Years: years}, nil
}

func createDropOneTimeExpenses(map[string]string) (ConfigTransform, error) {
	return &DropOneTimeExpenses{}, nil
}

func createRemoveBucket(params map[string]string) (ConfigTransform, error) {
	id, err := intParam("remove_bucket", params, "id")
	if err != nil {
		return nil, err
	}
	return &RemoveBucket{BucketID: id}, nil
}

func createScaleCorpus(params map[string]string) (ConfigTransform, error) {
	factor, err := decimalParam("scale_corpus", params, "factor")
	if err != nil {
		return nil, err
	}
	return &ScaleCorpus{Factor: factor}, nil
}

func createPostponeRetirement(params map[string]string) (ConfigTransform, error) {
	years, err := decimalParam("postpone_retirement", params, "years")
	if err != nil {
		return nil, err
	}
	return &PostponeRetirement{Years: years}, nil
}
