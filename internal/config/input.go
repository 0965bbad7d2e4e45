package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/runway/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of calculator configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a calculator configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.CalculatorConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	config, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return config, nil
}

// Parse decodes and validates a configuration document. A document starting
// with '{' is read as JSON with camelCase keys, anything else as YAML.
func (ip *InputParser) Parse(data []byte) (*domain.CalculatorConfig, error) {
	var config domain.CalculatorConfig
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.applyDefaults(&config)

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// WriteToFile writes the configuration as YAML.
func (ip *InputParser) WriteToFile(filename string, config *domain.CalculatorConfig) error {
	if config == nil {
		return fmt.Errorf("configuration is nil")
	}
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// applyDefaults fills in the fields a hand-written file is likely to omit.
func (ip *InputParser) applyDefaults(config *domain.CalculatorConfig) {
	if config.ExpenseType == "" {
		config.ExpenseType = domain.ExpenseMonthly
	}
	if config.NextBucketID == 0 {
		config.NextBucketID = nextID(len(config.InvestmentBuckets), func(i int) int { return config.InvestmentBuckets[i].ID })
	}
	if config.NextExpenseID == 0 {
		config.NextExpenseID = nextID(len(config.OneTimeExpenses), func(i int) int { return config.OneTimeExpenses[i].ID })
	}
}

func nextID(n int, id func(int) int) int {
	highest := 0
	for i := 0; i < n; i++ {
		if id(i) > highest {
			highest = id(i)
		}
	}
	return highest + 1
}

// ValidateConfiguration checks the structure of a configuration. Numeric
// plausibility (negative amounts, extreme rates) is left to the engine,
// which tolerates any finite input.
func (ip *InputParser) ValidateConfiguration(config *domain.CalculatorConfig) error {
	if config == nil {
		return fmt.Errorf("configuration is nil")
	}
	if !config.ExpenseType.Valid() {
		return fmt.Errorf("invalid expense type %q", config.ExpenseType)
	}

	seen := make(map[int]bool, len(config.InvestmentBuckets))
	for i, b := range config.InvestmentBuckets {
		if err := ip.validateBucket(b, seen, config.NextBucketID); err != nil {
			return fmt.Errorf("investment bucket %d validation failed: %w", i, err)
		}
	}

	seen = make(map[int]bool, len(config.OneTimeExpenses))
	for i, e := range config.OneTimeExpenses {
		if err := ip.validateExpense(e, seen, config.NextExpenseID); err != nil {
			return fmt.Errorf("one-time expense %d validation failed: %w", i, err)
		}
	}

	seen = make(map[int]bool, len(config.Contributions))
	for i, c := range config.Contributions {
		if seen[c.ID] {
			return fmt.Errorf("contribution %d validation failed: duplicate id %d", i, c.ID)
		}
		seen[c.ID] = true
	}
	if len(config.Contributions) > 0 && config.RetirementAge.LessThanOrEqual(config.CurrentAge) {
		return fmt.Errorf("retirement age must be after the current age when contributions are given")
	}

	return nil
}

func (ip *InputParser) validateBucket(b domain.InvestmentBucket, seen map[int]bool, next int) error {
	if b.Name == "" {
		return fmt.Errorf("name is required")
	}
	if seen[b.ID] {
		return fmt.Errorf("duplicate id %d", b.ID)
	}
	seen[b.ID] = true
	if b.ID >= next {
		return fmt.Errorf("id %d is not below next_bucket_id %d", b.ID, next)
	}
	return nil
}

func (ip *InputParser) validateExpense(e domain.OneTimeExpense, seen map[int]bool, next int) error {
	if e.Name == "" {
		return fmt.Errorf("name is required")
	}
	if seen[e.ID] {
		return fmt.Errorf("duplicate id %d", e.ID)
	}
	seen[e.ID] = true
	if e.ID >= next {
		return fmt.Errorf("id %d is not below next_expense_id %d", e.ID, next)
	}
	if e.YearsFromNow < 0 {
		return fmt.Errorf("years_from_now cannot be negative")
	}
	return nil
}
