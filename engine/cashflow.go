/*
cashflow.go - Accrual-to-cash conversion with month delays

PURPOSE:
  Converts each month's accrual figures into delayed cash movement and
  maintains the running cash balance. Each category (receipts from
  revenue; payments for cost, opex, capex) has its own delay d in
  [0, 6] months: the cash for month m is that category's accrual from
  month m-d, and nothing at all during the first d months. There is no
  partial catch-up - cash simply starts d months late.

TRUE LOOKBACK:
  The conversion is a real historical lookback into the run's accrual
  history, never a pass-through of the current month's figure. With
  d = 0 the two coincide by definition.

INSOLVENCY:
  The balance may go negative. The engine reports it as-is; reacting to
  insolvency is the caller's concern.

SEE ALSO:
  - simulate.go: Appends to the accrual history each month
*/
package engine

import "github.com/shopspring/decimal"

// cashFlow holds one month's resolved cash movement.
type cashFlow struct {
	receipts decimal.Decimal
	payments decimal.Decimal
	net      decimal.Decimal
}

// cashForMonth resolves month m's cash movement from the accrual history
// recorded so far. The history slices are 0-indexed by month-1 and already
// contain month m's accruals when this is called.
func cashForMonth(cfg ProjectionConfig, st *simState, month int) cashFlow {
	receipts := lookback(st.revenueHist, month, cfg.ReceiptDelay)

	payments := lookback(st.costHist, month, cfg.CostDelay).
		Add(lookback(st.opexHist, month, cfg.OpexDelay)).
		Add(lookback(st.capexHist, month, cfg.CapexDelay))

	return cashFlow{
		receipts: receipts,
		payments: payments,
		net:      receipts.Sub(payments),
	}
}

// lookback returns hist[month-delay] (1-based months), or zero while the
// delay window has not elapsed.
func lookback(hist []decimal.Decimal, month, delay int) decimal.Decimal {
	if month <= delay {
		return decimal.Zero
	}
	return hist[month-delay-1]
}
