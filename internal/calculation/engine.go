package calculation

import (
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	decimalZero    = decimal.Zero
	decimalOne     = decimal.NewFromInt(1)
	decimalHundred = decimal.NewFromInt(100)
)

// Reported amounts are rounded to cents and rates to four places. The running
// balance and inflation factor keep carryPlaces digits from year to year.
const (
	moneyPlaces = 2
	ratePlaces  = 4
	carryPlaces = 10
)

// Logger is the logging surface the engine writes to.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...interface{}) {}
func (NopLogger) Infof(string, ...interface{})  {}
func (NopLogger) Warnf(string, ...interface{})  {}
func (NopLogger) Errorf(string, ...interface{}) {}

// ProjectionEngine runs retirement projections and the analyses derived from them.
// It holds no per-call state and is safe for concurrent use once configured.
type ProjectionEngine struct {
	Logger Logger
	Debug  bool // log each projection year, not just the summary
}

// NewProjectionEngine creates a new projection engine
func NewProjectionEngine() *ProjectionEngine {
	return &ProjectionEngine{Logger: NopLogger{}}
}

// SetLogger replaces the engine logger; nil restores the no-op logger.
func (pe *ProjectionEngine) SetLogger(l Logger) {
	if l == nil {
		pe.Logger = NopLogger{}
		return
	}
	pe.Logger = l
}

func (pe *ProjectionEngine) logger() Logger {
	if pe == nil || pe.Logger == nil {
		return NopLogger{}
	}
	return pe.Logger
}

var defaultEngine = NewProjectionEngine()

// Project runs a projection with the default engine.
func Project(inputs domain.Inputs) domain.Results {
	return defaultEngine.Project(inputs)
}

// ApplyConservativeAdjustment applies the conservative assumption set with the default engine.
func ApplyConservativeAdjustment(inputs domain.Inputs) domain.Inputs {
	return defaultEngine.ApplyConservativeAdjustment(inputs)
}

// CoastStatus computes Coast FIRE progress with the default engine.
func CoastStatus(inputs domain.Inputs) domain.CoastResult {
	return defaultEngine.CoastStatus(inputs)
}

// EarliestStopAge searches for the earliest contribution-stop age with the default engine.
func EarliestStopAge(inputs domain.Inputs) (int, bool) {
	return defaultEngine.EarliestStopAge(inputs)
}

// StressScenarios runs the worst/base/best projections with the default engine.
func StressScenarios(inputs domain.Inputs) domain.StressScenarios {
	return defaultEngine.StressScenarios(inputs)
}

// growthFactor returns 1 + pct/100.
func growthFactor(pct decimal.Decimal) decimal.Decimal {
	return decimalOne.Add(pct.Div(decimalHundred))
}

// compound returns (1 + pct/100)^years.
func compound(pct decimal.Decimal, years int) decimal.Decimal {
	if years == 0 {
		return decimalOne
	}
	return growthFactor(pct).Pow(decimal.NewFromInt(int64(years)))
}

func maxDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

func minDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}
