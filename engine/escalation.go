package engine

import "github.com/shopspring/decimal"

var (
	decimalOne     = decimal.NewFromInt(1)
	decimalHundred = decimal.NewFromInt(100)
)

// annualFactor returns (1 + pct/100)^(year-1): the compounding escalation
// multiplier for the given 1-based projection year. Year 1 always uses the
// unescalated base, and the factor steps once per calendar year rather than
// compounding month by month.
func annualFactor(pct decimal.Decimal, year int) decimal.Decimal {
	if year <= 1 || pct.IsZero() {
		return decimalOne
	}
	rate := decimalOne.Add(pct.Div(decimalHundred))
	return rate.Pow(decimal.NewFromInt(int64(year - 1)))
}
