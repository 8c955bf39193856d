package engine_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/warp/projection-engine/engine"
)

// =============================================================================
// RECURRING REVENUE TESTS
// =============================================================================

func TestRevenue_RecurringGrowsLinearly(t *testing.T) {
	// GIVEN: One recurring stream with S new units/month at price P,
	//        no escalation
	// WHEN:  Simulating a full year
	// THEN:  revenue(k) = k * S * P for every month k

	cfg := baseConfig()
	cfg.RevenueLines = []engine.RevenueLine{recurringLine("svc", 10, 500)}

	p := mustSimulate(t, cfg)

	for _, rec := range p.Records {
		want := decimal.NewFromInt(int64(rec.Month)).Mul(dec(500)).Mul(dec(10))
		assertDecimal(t, "revenue", rec.Revenue, want)
	}
}

func TestRevenue_CarriedUnitsNeverDecrease(t *testing.T) {
	// GIVEN: Two streams with different growth rates
	// WHEN:  Simulating two years
	// THEN:  Revenue per stream is monotonically non-decreasing, which can
	//        only hold if carried units are (prices are constant here)

	cfg := baseConfig()
	cfg.Years = 2
	cfg.RevenueLines = []engine.RevenueLine{
		recurringLine("a", 10, 3),
		recurringLine("b", 7, 0), // zero growth: flat at zero units
	}

	p := mustSimulate(t, cfg)

	prev := decimal.Zero
	for _, rec := range p.Records {
		if rec.Revenue.LessThan(prev) {
			t.Errorf("month %d: revenue %v dropped below previous %v", rec.Month, rec.Revenue, prev)
		}
		prev = rec.Revenue
	}

	// Stream b never sells anything: it must contribute exactly zero.
	for _, rec := range p.Records {
		want := decimal.NewFromInt(int64(rec.Month)).Mul(dec(3)).Mul(dec(10))
		assertDecimal(t, "total revenue", rec.Revenue, want)
	}
}

// =============================================================================
// PRICE ESCALATION TESTS
// =============================================================================

func TestRevenue_AnnualEscalationCompoundsPerYear(t *testing.T) {
	// GIVEN: A recurring stream with a 10% annual price increase
	// WHEN:  Simulating three years
	// THEN:  Year 1 uses the base price; year y uses base * 1.1^(y-1),
	//        stepping at year boundaries, not month by month

	cfg := baseConfig()
	cfg.Years = 3
	cfg.RevenueLines = []engine.RevenueLine{{
		Stream:            "svc",
		Mode:              engine.RevenueRecurring,
		UnitPrice:         dec(100),
		MonthlyNewUnits:   dec(1),
		AnnualIncreasePct: dec(10),
	}}

	p := mustSimulate(t, cfg)

	factors := []decimal.Decimal{dec(1), dec(1.1), dec(1.21)}
	for _, rec := range p.Records {
		price := dec(100).Mul(factors[rec.Year-1])
		want := decimal.NewFromInt(int64(rec.Month)).Mul(price)
		assertDecimal(t, "escalated revenue", rec.Revenue, want)
	}
}

// =============================================================================
// ONE-TIME REVENUE TESTS
// =============================================================================

func TestRevenue_OneTimeSpreadOverImplementationWindow(t *testing.T) {
	// GIVEN: A one-time stream spread over 3 implementation months
	// WHEN:  Simulating one year
	// THEN:  Months 1-3 each recognize (carried * price) / 3; months 4-12
	//        recognize nothing. The window is measured from the start of
	//        the year, so carried units keep accumulating underneath it.

	cfg := baseConfig()
	cfg.RevenueLines = []engine.RevenueLine{{
		Stream:               "projects",
		Mode:                 engine.RevenueOneTime,
		UnitPrice:            dec(9000),
		MonthlyNewUnits:      dec(1),
		ImplementationMonths: 3,
	}}

	p := mustSimulate(t, cfg)

	for _, rec := range p.Records {
		carried := decimal.NewFromInt(int64(rec.Month))
		var want decimal.Decimal
		if rec.MonthInYear <= 3 {
			want = carried.Mul(dec(9000)).Div(dec(3))
		} else {
			want = decimal.Zero
		}
		assertDecimal(t, "one-time revenue", rec.Revenue, want)
	}
}

func TestRevenue_OneTimeWindowResetsEachYear(t *testing.T) {
	// GIVEN: The same one-time stream over two years
	// WHEN:  Simulating
	// THEN:  Months 13-15 (window of year 2) recognize revenue again

	cfg := baseConfig()
	cfg.Years = 2
	cfg.RevenueLines = []engine.RevenueLine{{
		Stream:               "projects",
		Mode:                 engine.RevenueOneTime,
		UnitPrice:            dec(1200),
		MonthlyNewUnits:      dec(2),
		ImplementationMonths: 2,
	}}

	p := mustSimulate(t, cfg)

	for _, rec := range p.Records {
		inWindow := rec.MonthInYear <= 2
		if inWindow && rec.Revenue.IsZero() {
			t.Errorf("month %d: expected revenue inside the window, got zero", rec.Month)
		}
		if !inWindow && !rec.Revenue.IsZero() {
			t.Errorf("month %d: expected zero outside the window, got %v", rec.Month, rec.Revenue)
		}
	}
}

func TestRevenue_OneTimeWithoutWindowRecognizesFirstMonthOfYear(t *testing.T) {
	// GIVEN: A one-time stream with no implementation window
	// WHEN:  Simulating two years
	// THEN:  Only months 1 and 13 recognize revenue

	cfg := baseConfig()
	cfg.Years = 2
	cfg.RevenueLines = []engine.RevenueLine{{
		Stream:          "setup",
		Mode:            engine.RevenueOneTime,
		UnitPrice:       dec(500),
		MonthlyNewUnits: dec(1),
	}}

	p := mustSimulate(t, cfg)

	for _, rec := range p.Records {
		if rec.MonthInYear == 1 {
			want := decimal.NewFromInt(int64(rec.Month)).Mul(dec(500))
			assertDecimal(t, "first-month revenue", rec.Revenue, want)
		} else if !rec.Revenue.IsZero() {
			t.Errorf("month %d: expected zero, got %v", rec.Month, rec.Revenue)
		}
	}
}
