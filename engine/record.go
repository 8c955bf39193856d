package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// MONTHLY RECORD - One row of engine output, immutable once appended
// =============================================================================

// MonthlyRecord is the engine's per-month output. Records are produced in
// strict month order and never revisited: each month's figures depend only
// on the config and on past months.
type MonthlyRecord struct {
	// Position in the horizon.
	Month       int       // 1-based overall month index
	Date        time.Time // StartDate advanced Month-1 calendar months
	Year        int       // 1-based projection year: ((Month-1) / 12) + 1
	MonthInYear int       // 1-based month within the year: ((Month-1) % 12) + 1

	// Accrual P&L for the month.
	Revenue           decimal.Decimal
	CostOfRevenue     decimal.Decimal
	GrossProfit       decimal.Decimal // Revenue - CostOfRevenue, never clamped
	OperatingExpenses decimal.Decimal
	Capex             decimal.Decimal
	NetIncome         decimal.Decimal // GrossProfit - OperatingExpenses (capex excluded)

	// Cash movement for the month, after delay resolution.
	CashReceipts decimal.Decimal
	CashPayments decimal.Decimal
	NetCashFlow  decimal.Decimal
	CashBalance  decimal.Decimal // running balance; may go negative

	// Running totals from month 1 through this month.
	CumulativeRevenue     decimal.Decimal
	CumulativeCost        decimal.Decimal
	CumulativeGrossProfit decimal.Decimal
}

// =============================================================================
// YEAR SUMMARY - Yearly rollup of the monthly records
// =============================================================================

// YearSummary aggregates one projection year's monthly records.
type YearSummary struct {
	Year             int
	TotalRevenue     decimal.Decimal
	TotalGrossProfit decimal.Decimal
	TotalNetIncome   decimal.Decimal
}

// =============================================================================
// PROJECTION - Complete output of one simulation
// =============================================================================

// Projection is the terminal state of one Simulate call: exactly one record
// per month of the horizon, plus one summary per projection year.
type Projection struct {
	Records []MonthlyRecord
	Years   []YearSummary
}
