package components

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestParameterSlider_Clamps(t *testing.T) {
	s := NewParameterSlider("age", "Age", dec(150), dec(18), dec(100), dec(1))
	assert.Equal(t, "100", s.Value.String(), "constructor should clamp to max")

	assert.False(t, s.Increment(), "increment at max must not move")
	assert.True(t, s.Decrement())
	assert.Equal(t, "99", s.Value.String())

	s.SetValue(dec(-5))
	assert.Equal(t, "18", s.Value.String())
	assert.Equal(t, 0.0, s.Percentage())
}

func TestParameterSlider_FormatValue(t *testing.T) {
	tests := []struct {
		unit SliderUnit
		v    decimal.Decimal
		want string
	}{
		{UnitPercent, decimal.NewFromFloat(7.25), "7.3%"},
		{UnitYears, dec(65), "65"},
		{UnitDollars, dec(50000), "$50,000"},
	}
	for _, tt := range tests {
		s := NewParameterSlider("k", "K", dec(0), dec(0), dec(100000), dec(1)).WithUnit(tt.unit)
		if got := s.FormatValue(tt.v); got != tt.want {
			t.Errorf("FormatValue(%s) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestParameterSlider_RenderCompactMarksFocus(t *testing.T) {
	s := NewParameterSlider("age", "Age", dec(40), dec(18), dec(100), dec(1)).WithUnit(UnitYears)
	assert.NotContains(t, s.RenderCompact(10), "▸")

	s.SetFocused(true)
	out := s.RenderCompact(10)
	assert.Contains(t, out, "▸")
	assert.Contains(t, out, "40")
}

func TestProgressBar_Filled(t *testing.T) {
	tests := []struct {
		percent  int64
		filled   int
		complete bool
	}{
		{-10, 0, false},
		{0, 0, false},
		{50, 15, false},
		{100, 30, true},
		{250, 30, true},
	}
	for _, tt := range tests {
		p := NewProgressBar(dec(tt.percent))
		assert.Equal(t, tt.filled, p.Filled(), "percent %d", tt.percent)
		assert.Equal(t, tt.complete, p.IsComplete(), "percent %d", tt.percent)
	}
}

func TestProgressBar_RenderIncludesDetail(t *testing.T) {
	out := NewProgressBar(dec(40)).WithLabel("Coast").WithDetail("$40 of $100").Render()
	assert.Contains(t, out, "Coast")
	assert.Contains(t, out, "$40 of $100")
}

func TestASCIIChart_Empty(t *testing.T) {
	out := NewASCIIChart("Balance").Render()
	assert.Contains(t, out, "No data to display")
}

func TestASCIIChart_Render(t *testing.T) {
	out := NewASCIIChart("Balance").
		AddSeries("Nominal", []float64{100000, 150000, 90000, 0}, "#7C3AED").
		WithLabels([]string{"60", "61", "62", "63"}).
		WithSize(40, 6).
		WithMarker(1, "Retirement").
		WithXAxisLabel("Age").
		Render()

	assert.Contains(t, out, "Balance")
	assert.Contains(t, out, "Age")
	assert.Contains(t, out, "┊")
	assert.Contains(t, out, "$0")
}

func TestFormatChartValue(t *testing.T) {
	assert.Equal(t, "$1.5M", formatChartValue(1500000))
	assert.Equal(t, "$25K", formatChartValue(25000))
	assert.Equal(t, "$999", formatChartValue(999))
}

func TestMetricCard_Render(t *testing.T) {
	card := NewMetricCard("Final Balance", "$1,000").WithTrend(false, "-5%").WithStatus(false)
	out := card.Render()
	assert.Contains(t, out, "Final Balance")
	assert.Contains(t, out, "$1,000")
	assert.Contains(t, out, "▼")
}

func TestMetricGrid(t *testing.T) {
	cards := []*MetricCard{
		NewMetricCard("A", "1"),
		NewMetricCard("B", "2"),
		NewMetricCard("C", "3"),
	}
	out := MetricGrid(cards, 2)
	if strings.Index(out, "A") > strings.Index(out, "C") {
		t.Error("first row should render before second")
	}
	assert.Empty(t, MetricGrid(nil, 2))
}

func TestScenarioCard_Render(t *testing.T) {
	card := NewScenarioCard("Worst Case").
		WithDescription("4% return").
		WithOnTrack(false).
		AddHighlight("Runs out at %d", 84)

	out := card.Render()
	assert.Contains(t, out, "Worst Case")
	assert.Contains(t, out, "Runs out at 84")
}
