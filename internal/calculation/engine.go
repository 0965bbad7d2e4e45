package calculation

import (
	"github.com/rgehrsitz/runway/internal/domain"
)

// CalculationEngine runs projections and reports what it did through a
// Logger. It holds no per-call state and may be shared between goroutines.
type CalculationEngine struct {
	Logger Logger
	Debug  bool // log every simulated year
}

// NewCalculationEngine creates an engine with a no-op logger.
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger installs l, or the no-op logger when l is nil.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

func (ce *CalculationEngine) logger() Logger {
	if ce == nil || ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}

// Run projects p and logs a summary of the result.
func (ce *CalculationEngine) Run(p domain.ProjectionParams) domain.ProjectionResult {
	log := ce.logger()
	log.Debugf("projecting %d buckets, %d one-time expenses, %d contributions",
		len(p.InvestmentBuckets), len(p.OneTimeExpenses), len(p.Contributions))

	result := Project(p)

	log.Infof("corpus=%s weighted=%s%% real=%s%% yearsLeft=%s survivalAge=%s",
		result.TotalCorpus.StringFixed(2),
		result.WeightedReturn.StringFixed(2),
		result.RealReturn.StringFixed(2),
		result.YearsLeft.StringFixed(2),
		result.SurvivalAge.StringFixed(1))

	if result.WeightedReturn.IsPositive() {
		log.Debugf("compounding branch produced %d displayed years", len(result.YearlyData))
	} else {
		log.Debugf("non-positive weighted return, using cumulative draw-down")
	}

	if ce != nil && ce.Debug {
		for _, y := range result.YearlyData {
			log.Debugf("year %d age %s corpus %s regular %s one-time %s",
				y.Year, y.Age.String(), y.Corpus.StringFixed(2),
				y.RegularExpenses.StringFixed(2), y.OneTimeExpenses.StringFixed(2))
		}
	}

	for _, e := range result.FutureOneTimeExpenses {
		if e.YearsFromNow == 0 {
			log.Warnf("one-time expense %q is due now and is not deducted by the projection", e.Name)
		}
	}

	return result
}

// RunConfig projects a calculator configuration.
func (ce *CalculationEngine) RunConfig(cfg domain.CalculatorConfig) domain.ProjectionResult {
	return ce.Run(cfg.Params())
}
