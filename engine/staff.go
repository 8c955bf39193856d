/*
staff.go - Per-month operating expense aggregation

PURPOSE:
  Computes the month's operating expenses from staff positions. A
  position contributes its full monthly cost from its start month
  onward; positions never end. Annual escalation compounds on the
  salary component only - benefits and allowance stay flat.

SEE ALSO:
  - escalation.go: Same per-year compounding as revenue pricing
*/
package engine

import "github.com/shopspring/decimal"

// opexForMonth sums the monthly cost of every position active in the given
// month. month is the 1-based overall month index; year the 1-based
// projection year.
func opexForMonth(cfg ProjectionConfig, month, year int) decimal.Decimal {
	total := decimal.Zero

	for _, line := range cfg.StaffLines {
		if month < line.StartMonth {
			continue
		}
		salary := line.MonthlySalary.Mul(annualFactor(line.AnnualIncreasePct, year))
		total = total.Add(salary).Add(line.Benefits).Add(line.Allowance)
	}

	return total
}
