/*
simulate.go - The simulation loop

PURPOSE:
  Drives one projection run: a single linear pass over months
  1..horizon, computing each month's accrual P&L, resolving its cash
  movement, and appending one immutable MonthlyRecord. Yearly summaries
  are rolled up from the finished record sequence.

PER-MONTH DEPENDENCY ORDER:
  revenue -> cost (needs the month's per-stream revenue and carried
  units) -> opex/capex -> cash (needs the month's accruals plus up to
  six months of history). No month reads a future month's state.

STATE:
  All mutable state - carried unit counts, accrual history, cumulative
  totals, cash balance - lives in a simState created at the top of
  Simulate and discarded on return. Simulate is therefore a pure
  function: deterministic, side-effect free, and safe to call from any
  number of goroutines at once.

SEE ALSO:
  - validate.go: Runs first; no record is produced on invalid input
  - record.go: Output types
*/
package engine

import "github.com/shopspring/decimal"

// =============================================================================
// SIMULATION STATE - Scoped to one Simulate call
// =============================================================================

// simState carries the loop's working state. It never escapes Simulate.
type simState struct {
	// carried unit counts per revenue stream, advanced once per month in
	// revenue-line declaration order.
	carried map[StreamID]decimal.Decimal

	// Accrual history indexed by month-1, consulted by the cash delay
	// lookback. Only the trailing max-delay months are ever read, but
	// retaining the full horizon (<= 120 months) is simpler.
	revenueHist []decimal.Decimal
	costHist    []decimal.Decimal
	opexHist    []decimal.Decimal
	capexHist   []decimal.Decimal
}

func newSimState(cfg ProjectionConfig) *simState {
	horizon := cfg.Horizon()
	return &simState{
		carried:     make(map[StreamID]decimal.Decimal, len(cfg.RevenueLines)),
		revenueHist: make([]decimal.Decimal, 0, horizon),
		costHist:    make([]decimal.Decimal, 0, horizon),
		opexHist:    make([]decimal.Decimal, 0, horizon),
		capexHist:   make([]decimal.Decimal, 0, horizon),
	}
}

// =============================================================================
// SIMULATE - Pure projection function
// =============================================================================

// Simulate validates the config and runs the full projection. It returns one
// MonthlyRecord per month of the horizon plus one YearSummary per projection
// year, or a *ConfigurationError before producing anything.
func Simulate(cfg ProjectionConfig) (*Projection, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	st := newSimState(cfg)
	horizon := cfg.Horizon()
	records := make([]MonthlyRecord, 0, horizon)

	var (
		cumulativeRevenue     = decimal.Zero
		cumulativeCost        = decimal.Zero
		cumulativeGrossProfit = decimal.Zero
		cashBalance           = cfg.StartingCash
	)

	for month := 1; month <= horizon; month++ {
		year := ((month - 1) / 12) + 1
		monthInYear := ((month - 1) % 12) + 1
		date := cfg.StartDate.AddDate(0, month-1, 0)

		// Accrual stages, in dependency order.
		revenue, byStream := revenueForMonth(cfg, st, year, monthInYear)
		cost := costForMonth(cfg, st, revenue, byStream)
		grossProfit := revenue.Sub(cost)
		opex := opexForMonth(cfg, month, year)
		capex := capexForMonth(cfg, month)
		netIncome := grossProfit.Sub(opex)

		// Record accruals before cash resolution: a zero delay reads the
		// current month.
		st.revenueHist = append(st.revenueHist, revenue)
		st.costHist = append(st.costHist, cost)
		st.opexHist = append(st.opexHist, opex)
		st.capexHist = append(st.capexHist, capex)

		cash := cashForMonth(cfg, st, month)
		cashBalance = cashBalance.Add(cash.net)

		cumulativeRevenue = cumulativeRevenue.Add(revenue)
		cumulativeCost = cumulativeCost.Add(cost)
		cumulativeGrossProfit = cumulativeGrossProfit.Add(grossProfit)

		records = append(records, MonthlyRecord{
			Month:       month,
			Date:        date,
			Year:        year,
			MonthInYear: monthInYear,

			Revenue:           revenue,
			CostOfRevenue:     cost,
			GrossProfit:       grossProfit,
			OperatingExpenses: opex,
			Capex:             capex,
			NetIncome:         netIncome,

			CashReceipts: cash.receipts,
			CashPayments: cash.payments,
			NetCashFlow:  cash.net,
			CashBalance:  cashBalance,

			CumulativeRevenue:     cumulativeRevenue,
			CumulativeCost:        cumulativeCost,
			CumulativeGrossProfit: cumulativeGrossProfit,
		})
	}

	return &Projection{
		Records: records,
		Years:   summarizeYears(records),
	}, nil
}

// =============================================================================
// YEARLY ROLLUP
// =============================================================================

// summarizeYears groups the finished record sequence by projection year and
// sums revenue, gross profit, and net income per year. Records arrive in
// month order, so years appear in order too.
func summarizeYears(records []MonthlyRecord) []YearSummary {
	var years []YearSummary

	for _, rec := range records {
		if len(years) == 0 || years[len(years)-1].Year != rec.Year {
			years = append(years, YearSummary{
				Year:             rec.Year,
				TotalRevenue:     decimal.Zero,
				TotalGrossProfit: decimal.Zero,
				TotalNetIncome:   decimal.Zero,
			})
		}
		y := &years[len(years)-1]
		y.TotalRevenue = y.TotalRevenue.Add(rec.Revenue)
		y.TotalGrossProfit = y.TotalGrossProfit.Add(rec.GrossProfit)
		y.TotalNetIncome = y.TotalNetIncome.Add(rec.NetIncome)
	}

	return years
}
