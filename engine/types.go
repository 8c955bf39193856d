/*
Package engine provides the core financial projection engine.

PURPOSE:
  This package contains the types and algorithms for producing a
  month-by-month profit & loss and cash flow projection from a set of
  business assumptions: revenue streams, cost rules, staffing, and
  capital purchases.

KEY CONCEPTS IN THIS FILE (types.go):
  - ProjectionConfig: The immutable set of assumptions driving one run
  - RevenueLine/CostLine/StaffLine/CapexLine: The assumption line items
  - StreamID: Type-safe identifier linking costs to revenue streams

DESIGN PRINCIPLES:
  1. Purity: Simulate is a pure function of its config - no I/O, no
     shared state, re-entrant. Callers can run many projections
     concurrently with no coordination.
  2. Precision: Uses decimal.Decimal to avoid floating-point errors
     in money and unit arithmetic.
  3. Accrual vs cash: P&L figures are accrual-based; cash movement is
     derived separately with configurable month delays.
  4. Fail fast: Invalid configuration is rejected before any month is
     simulated - the engine never returns partial output.

USAGE:
  cfg := engine.ProjectionConfig{
      Years:     3,
      StartDate: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
      RevenueLines: []engine.RevenueLine{
          {Stream: "saas", Mode: engine.RevenueRecurring,
           UnitPrice: decimal.NewFromInt(10),
           MonthlyNewUnits: decimal.NewFromInt(500)},
      },
  }
  projection, err := engine.Simulate(cfg)

SEE ALSO:
  - record.go: MonthlyRecord and YearSummary output types
  - simulate.go: The simulation loop
  - validate.go: Configuration invariants
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

// StreamID identifies a revenue stream within one configuration.
// Cost lines reference revenue streams by this ID, so it must be unique
// across the config's RevenueLines.
type StreamID string

// =============================================================================
// CALCULATION MODES
// =============================================================================

// RevenueMode determines how a revenue line recognizes revenue each month.
type RevenueMode string

const (
	// RevenueRecurring recognizes revenue every month for the full carried
	// unit base (subscriptions, licenses, managed devices).
	RevenueRecurring RevenueMode = "recurring"

	// RevenueOneTime recognizes revenue only during a bounded window
	// (project fees, setup charges). See revenue.go for the window rules.
	RevenueOneTime RevenueMode = "one_time"
)

// CostMode determines how a cost line computes its monthly amount.
type CostMode string

const (
	// CostPerUnit multiplies the referenced stream's carried units by a
	// cost per unit (hosting per customer, support per device).
	CostPerUnit CostMode = "per_unit"

	// CostFixedMonthly contributes a constant amount every month.
	CostFixedMonthly CostMode = "fixed_monthly"

	// CostPercentOfRevenue takes a percentage of the referenced stream's
	// revenue, or of total revenue when no stream is referenced.
	CostPercentOfRevenue CostMode = "percent_of_revenue"
)

// =============================================================================
// PROJECTION CONFIG - Immutable input to one simulation
// =============================================================================

// ProjectionConfig holds every assumption for one projection run.
// The engine only reads it; ownership stays with the caller.
type ProjectionConfig struct {
	Name string

	// Years sets the horizon: Years * 12 months are simulated.
	Years int

	// StartDate anchors month 1. Each subsequent month advances one
	// calendar month.
	StartDate time.Time

	// StartingCash seeds the running cash balance before month 1.
	StartingCash decimal.Decimal

	// Cash delays, each an integer count of months in [0, 6].
	// A delay of d means the cash movement for month m's accrual lands
	// in month m+d.
	ReceiptDelay int // revenue -> cash receipts
	CostDelay    int // cost of revenue -> cash payments
	OpexDelay    int // operating expenses -> cash payments
	CapexDelay   int // capital purchases -> cash payments

	RevenueLines []RevenueLine
	CostLines    []CostLine
	StaffLines   []StaffLine
	CapexLines   []CapexLine
}

// Horizon returns the number of months simulated.
func (c ProjectionConfig) Horizon() int { return c.Years * 12 }

// =============================================================================
// ASSUMPTION LINES
// =============================================================================

// RevenueLine describes one revenue stream.
type RevenueLine struct {
	// Stream uniquely identifies this line within the config.
	Stream StreamID

	Mode RevenueMode

	// UnitPrice is the base price per carried unit, before escalation.
	UnitPrice decimal.Decimal

	// MonthlyNewUnits is added to the carried unit count every month.
	// Carried units never decrease - the model has no churn.
	MonthlyNewUnits decimal.Decimal

	// AnnualIncreasePct escalates UnitPrice by this percentage, compounding
	// per calendar year of the projection (year 1 uses the base price).
	AnnualIncreasePct decimal.Decimal

	// ImplementationMonths spreads a one-time cohort's revenue over this
	// many months at the start of each projection year. Zero means the
	// full amount is recognized in the first month of each year.
	// Only meaningful for RevenueOneTime; must be positive when set.
	ImplementationMonths int
}

// CostLine describes one cost-of-revenue rule.
type CostLine struct {
	Name string

	Mode CostMode

	// Amount is interpreted per Mode: cost per unit (CostPerUnit),
	// monthly amount (CostFixedMonthly), or percentage (CostPercentOfRevenue).
	Amount decimal.Decimal

	// Stream links this cost to a revenue stream. Required for CostPerUnit
	// (which unit base to multiply); optional for CostPercentOfRevenue
	// (empty means percentage of total revenue).
	Stream StreamID
}

// StaffLine describes one staff position.
type StaffLine struct {
	Title string

	MonthlySalary decimal.Decimal
	Benefits      decimal.Decimal
	Allowance     decimal.Decimal

	// StartMonth is the 1-based projection month the position becomes
	// active. The position contributes its full monthly cost from that
	// month onward; positions never end.
	StartMonth int

	// AnnualIncreasePct escalates the salary component only. Benefits and
	// allowance stay flat.
	AnnualIncreasePct decimal.Decimal
}

// CapexLine describes one capital purchase.
type CapexLine struct {
	Asset string

	Cost decimal.Decimal

	// PurchaseMonth (1-12, within the purchase year) and PurchaseYear
	// (1-based) pin the single month the outlay occurs.
	PurchaseMonth int
	PurchaseYear  int

	// Depreciation inputs are carried through for future amortization
	// support but are not consumed by the engine: capex affects cash
	// only, never the P&L.
	SalvageValue      decimal.Decimal
	DepreciationYears int
}
