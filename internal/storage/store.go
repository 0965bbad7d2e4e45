package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/runway/internal/calculation"
	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/shopspring/decimal"
)

// ConfigKey is the key the calculator snapshot is stored under.
const ConfigKey = "retirement_calculator_config"

// ErrMalformedSnapshot is returned when a stored snapshot does not match the
// calculator schema.
var ErrMalformedSnapshot = errors.New("malformed snapshot")

// Store persists the calculator configuration as a single snapshot.
type Store struct {
	KV     KV
	Logger calculation.Logger
}

// NewStore creates a store over kv with a no-op logger.
func NewStore(kv KV) *Store {
	return &Store{KV: kv, Logger: calculation.NopLogger{}}
}

func (s *Store) logger() calculation.Logger {
	if s.Logger == nil {
		return calculation.NopLogger{}
	}
	return s.Logger
}

// Load returns the saved configuration, or the default configuration when
// nothing is saved or the snapshot cannot be read. It never fails.
func (s *Store) Load() domain.CalculatorConfig {
	cfg, found, err := s.inspect()
	switch {
	case err != nil:
		s.logger().Errorf("failed to load calculator config, using defaults: %v", err)
		return domain.DefaultConfig()
	case !found:
		return domain.DefaultConfig()
	}
	return cfg
}

// Inspect decodes the saved snapshot strictly. It returns the default
// configuration and a nil error when nothing is saved.
func (s *Store) Inspect() (domain.CalculatorConfig, error) {
	cfg, found, err := s.inspect()
	if err != nil {
		return domain.CalculatorConfig{}, err
	}
	if !found {
		return domain.DefaultConfig(), nil
	}
	return cfg, nil
}

func (s *Store) inspect() (domain.CalculatorConfig, bool, error) {
	raw, ok, err := s.KV.Get(ConfigKey)
	if err != nil {
		return domain.CalculatorConfig{}, false, fmt.Errorf("failed to read snapshot: %w", err)
	}
	if !ok || len(bytes.TrimSpace(raw)) == 0 {
		return domain.CalculatorConfig{}, false, nil
	}
	cfg, err := DecodeSnapshot(raw)
	if err != nil {
		return domain.CalculatorConfig{}, false, err
	}
	return cfg, true, nil
}

// Save writes cfg as the snapshot, replacing any previous one.
func (s *Store) Save(cfg domain.CalculatorConfig) error {
	data, err := EncodeSnapshot(cfg)
	if err != nil {
		return err
	}
	if err := s.KV.Set(ConfigKey, data); err != nil {
		s.logger().Errorf("failed to save calculator config: %v", err)
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	s.logger().Debugf("saved calculator config (%d bytes)", len(data))
	return nil
}

// Reset removes the snapshot so the next Load returns the defaults.
func (s *Store) Reset() error {
	if err := s.KV.Delete(ConfigKey); err != nil {
		return fmt.Errorf("failed to reset snapshot: %w", err)
	}
	return nil
}

// EncodeSnapshot renders cfg in the snapshot format: camelCase keys with
// decimals written as strings.
func EncodeSnapshot(cfg domain.CalculatorConfig) ([]byte, error) {
	if cfg.InvestmentBuckets == nil {
		cfg.InvestmentBuckets = []domain.InvestmentBucket{}
	}
	if cfg.OneTimeExpenses == nil {
		cfg.OneTimeExpenses = []domain.OneTimeExpense{}
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

type bucketWire struct {
	ID     *int             `json:"id"`
	Name   *string          `json:"name"`
	Amount *decimal.Decimal `json:"amount"`
	Return *decimal.Decimal `json:"return"`
}

type expenseWire struct {
	ID            *int             `json:"id"`
	Name          *string          `json:"name"`
	YearsFromNow  *int             `json:"yearsFromNow"`
	CurrentCost   *decimal.Decimal `json:"currentCost"`
	InflationRate *decimal.Decimal `json:"inflationRate"`
}

type contributionWire struct {
	ID            *int             `json:"id"`
	Name          *string          `json:"name"`
	MonthlyAmount *decimal.Decimal `json:"monthlyAmount"`
	Return        *decimal.Decimal `json:"return"`
}

type snapshotWire struct {
	CurrentAge        *decimal.Decimal    `json:"currentAge"`
	Inflation         *decimal.Decimal    `json:"inflation"`
	MonthlyExpenses   *decimal.Decimal    `json:"monthlyExpenses"`
	ExpenseType       *domain.ExpenseType `json:"expenseType"`
	InvestmentBuckets *[]bucketWire       `json:"investmentBuckets"`
	OneTimeExpenses   *[]expenseWire      `json:"oneTimeExpenses"`
	NextBucketID      *int                `json:"nextBucketId"`
	NextExpenseID     *int                `json:"nextExpenseId"`

	RetirementAge *decimal.Decimal   `json:"retirementAge"`
	Contributions []contributionWire `json:"contributions"`
}

// DecodeSnapshot parses a snapshot, rejecting unknown keys, missing required
// fields, unknown expense types, negative years and trailing data. Every
// failure wraps ErrMalformedSnapshot.
func DecodeSnapshot(data []byte) (domain.CalculatorConfig, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var w snapshotWire
	if err := dec.Decode(&w); err != nil {
		return domain.CalculatorConfig{}, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return domain.CalculatorConfig{}, fmt.Errorf("%w: trailing data after snapshot", ErrMalformedSnapshot)
	}

	missing := func(field string) error {
		return fmt.Errorf("%w: missing %s", ErrMalformedSnapshot, field)
	}

	switch {
	case w.CurrentAge == nil:
		return domain.CalculatorConfig{}, missing("currentAge")
	case w.Inflation == nil:
		return domain.CalculatorConfig{}, missing("inflation")
	case w.MonthlyExpenses == nil:
		return domain.CalculatorConfig{}, missing("monthlyExpenses")
	case w.ExpenseType == nil:
		return domain.CalculatorConfig{}, missing("expenseType")
	case w.InvestmentBuckets == nil:
		return domain.CalculatorConfig{}, missing("investmentBuckets")
	case w.OneTimeExpenses == nil:
		return domain.CalculatorConfig{}, missing("oneTimeExpenses")
	case w.NextBucketID == nil:
		return domain.CalculatorConfig{}, missing("nextBucketId")
	case w.NextExpenseID == nil:
		return domain.CalculatorConfig{}, missing("nextExpenseId")
	}

	cfg := domain.CalculatorConfig{
		CurrentAge:        *w.CurrentAge,
		Inflation:         *w.Inflation,
		MonthlyExpenses:   *w.MonthlyExpenses,
		ExpenseType:       *w.ExpenseType,
		InvestmentBuckets: make([]domain.InvestmentBucket, 0, len(*w.InvestmentBuckets)),
		OneTimeExpenses:   make([]domain.OneTimeExpense, 0, len(*w.OneTimeExpenses)),
		NextBucketID:      *w.NextBucketID,
		NextExpenseID:     *w.NextExpenseID,
	}
	if !cfg.ExpenseType.Valid() {
		return domain.CalculatorConfig{}, fmt.Errorf("%w: invalid expenseType %q", ErrMalformedSnapshot, cfg.ExpenseType)
	}
	if w.RetirementAge != nil {
		cfg.RetirementAge = *w.RetirementAge
	}

	for i, b := range *w.InvestmentBuckets {
		if b.ID == nil || b.Name == nil || b.Amount == nil || b.Return == nil {
			return domain.CalculatorConfig{}, missing(fmt.Sprintf("field in investmentBuckets[%d]", i))
		}
		cfg.InvestmentBuckets = append(cfg.InvestmentBuckets, domain.InvestmentBucket{
			ID: *b.ID, Name: *b.Name, Amount: *b.Amount, Return: *b.Return,
		})
	}
	for i, e := range *w.OneTimeExpenses {
		if e.ID == nil || e.Name == nil || e.YearsFromNow == nil || e.CurrentCost == nil || e.InflationRate == nil {
			return domain.CalculatorConfig{}, missing(fmt.Sprintf("field in oneTimeExpenses[%d]", i))
		}
		if *e.YearsFromNow < 0 {
			return domain.CalculatorConfig{}, fmt.Errorf("%w: oneTimeExpenses[%d].yearsFromNow cannot be negative", ErrMalformedSnapshot, i)
		}
		cfg.OneTimeExpenses = append(cfg.OneTimeExpenses, domain.OneTimeExpense{
			ID: *e.ID, Name: *e.Name, YearsFromNow: *e.YearsFromNow,
			CurrentCost: *e.CurrentCost, InflationRate: *e.InflationRate,
		})
	}
	for i, c := range w.Contributions {
		if c.ID == nil || c.Name == nil || c.MonthlyAmount == nil || c.Return == nil {
			return domain.CalculatorConfig{}, missing(fmt.Sprintf("field in contributions[%d]", i))
		}
		cfg.Contributions = append(cfg.Contributions, domain.ContributionBucket{
			ID: *c.ID, Name: *c.Name, MonthlyAmount: *c.MonthlyAmount, Return: *c.Return,
		})
	}

	return cfg, nil
}
