/*
revenue.go - Per-month revenue accumulation

PURPOSE:
  Walks the config's revenue lines once per month, advancing each
  stream's carried unit count and producing the month's revenue with
  price escalation applied. The per-stream breakdown is returned
  alongside the total because cost aggregation links to it.

CARRIED UNITS:
  Each stream accumulates MonthlyNewUnits every month into a carried
  count that starts at zero and only grows - the model has no churn.
  The carried state lives in the simulation's simState and is mutated
  strictly in revenue-line declaration order.

ONE-TIME RECOGNITION WINDOW:
  A one-time line with ImplementationMonths = n recognizes
  (carried * price) / n in months 1..n OF EACH PROJECTION YEAR and
  nothing in the remaining months. The window is measured from the
  start of each year, not from each cohort's own sale month. That is
  the documented behavior of the system this engine models, preserved
  here for compatibility even though a cohort-relative window would
  arguably be the better model.

SEE ALSO:
  - cost.go: Consumes the per-stream breakdown
  - escalation.go: Annual compounding factor
*/
package engine

import "github.com/shopspring/decimal"

// revenueForMonth advances carried units for every revenue line and returns
// the month's total revenue plus the per-stream amounts. month and year are
// 1-based; monthInYear is 1-12.
func revenueForMonth(cfg ProjectionConfig, st *simState, year, monthInYear int) (decimal.Decimal, map[StreamID]decimal.Decimal) {
	total := decimal.Zero
	byStream := make(map[StreamID]decimal.Decimal, len(cfg.RevenueLines))

	for _, line := range cfg.RevenueLines {
		// New sales land first: a unit sold in month m earns in month m.
		carried := st.carried[line.Stream].Add(line.MonthlyNewUnits)
		st.carried[line.Stream] = carried

		price := line.UnitPrice.Mul(annualFactor(line.AnnualIncreasePct, year))

		var amount decimal.Decimal
		switch line.Mode {
		case RevenueRecurring:
			amount = carried.Mul(price)

		case RevenueOneTime:
			if line.ImplementationMonths > 0 {
				if monthInYear <= line.ImplementationMonths {
					amount = carried.Mul(price).Div(decimal.NewFromInt(int64(line.ImplementationMonths)))
				}
			} else if monthInYear == 1 {
				amount = carried.Mul(price)
			}
		}

		byStream[line.Stream] = amount
		total = total.Add(amount)
	}

	return total, byStream
}
