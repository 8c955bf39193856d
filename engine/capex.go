/*
capex.go - One-time capital outlay scheduling

PURPOSE:
  Emits each capital purchase exactly once, in the unique month where
  its purchase year and purchase month land on the projection timeline.
  Capex never enters net income - it affects cash flow only. The
  depreciation fields on CapexLine are carried for future amortization
  support and deliberately unread here.
*/
package engine

import "github.com/shopspring/decimal"

// capexForMonth sums the capital outlays scheduled for the given 1-based
// overall month index.
func capexForMonth(cfg ProjectionConfig, month int) decimal.Decimal {
	total := decimal.Zero

	for _, line := range cfg.CapexLines {
		target := (line.PurchaseYear-1)*12 + line.PurchaseMonth
		if month == target {
			total = total.Add(line.Cost)
		}
	}

	return total
}
