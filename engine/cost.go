/*
cost.go - Per-month cost of revenue aggregation

PURPOSE:
  Computes the month's cost of revenue from the config's cost lines.
  Costs link to revenue streams by StreamID: per-unit costs multiply
  the referenced stream's carried units, and percentage costs take a
  cut of the referenced stream's revenue for the SAME month (or of
  total revenue when unlinked). Validation guarantees every reference
  resolves, so the lookups here cannot dangle.

SEE ALSO:
  - revenue.go: Produces the carried counts and per-stream breakdown
  - validate.go: Reference integrity
*/
package engine

import "github.com/shopspring/decimal"

// costForMonth computes total cost of revenue for the month. revenueByStream
// and totalRevenue are this same month's revenue outputs; carried counts in
// st have already been advanced by revenueForMonth.
func costForMonth(cfg ProjectionConfig, st *simState, totalRevenue decimal.Decimal, revenueByStream map[StreamID]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero

	for _, line := range cfg.CostLines {
		var amount decimal.Decimal
		switch line.Mode {
		case CostPerUnit:
			amount = st.carried[line.Stream].Mul(line.Amount)

		case CostFixedMonthly:
			amount = line.Amount

		case CostPercentOfRevenue:
			base := totalRevenue
			if line.Stream != "" {
				base = revenueByStream[line.Stream]
			}
			amount = base.Mul(line.Amount).Div(decimalHundred)
		}

		total = total.Add(amount)
	}

	return total
}
