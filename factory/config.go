/*
Package factory provides JSON to Go projection config conversion.

PURPOSE:
  Converts JSON projection definitions into engine.ProjectionConfig
  values. This enables projection setup without code changes - analysts
  define assumptions in JSON, and the factory creates the proper Go
  structs with sensible defaults filled in.

WHY JSON?
  - Non-developers can edit assumptions
  - Easy integration with an admin UI
  - Version control for assumption sets
  - Database storage of configurations

JSON SCHEMA:
  {
    "name": "SaaS Startup",
    "projection_years": 3,
    "start_date": "2026-01-01",
    "starting_cash": 50000,
    "receipt_delay": 1,
    "revenue_assumptions": [
      {"stream": "subscriptions", "mode": "recurring",
       "unit_price": 49, "monthly_new_units": 20,
       "annual_increase_pct": 5}
    ],
    "cost_assumptions": [
      {"name": "hosting", "mode": "per_unit", "amount": 4,
       "stream": "subscriptions"}
    ],
    "staff_assumptions": [
      {"title": "Engineer", "monthly_salary": 8000, "start_month": 1,
       "annual_increase_pct": 3}
    ],
    "capex_assumptions": [
      {"asset": "Laptops", "cost": 6000, "purchase_month": 1,
       "purchase_year": 1}
    ]
  }

DEFAULTS:
  - projection_years: 3 when omitted
  - staff start_month: 1 when omitted
  - capex purchase_month / purchase_year: 1 when omitted
  - all money fields: 0 when omitted

VALIDATION:
  The factory checks JSON shape (parseable date, known modes) and then
  delegates the structural invariants to engine.Validate, so a config
  that parses here is guaranteed to simulate.

USAGE:
  cfg, err := factory.ParseConfig(jsonString)
  if err != nil { ... }
  projection, err := engine.Simulate(cfg)

SEE ALSO:
  - engine/types.go: The target config types
  - engine/validate.go: Structural invariants
*/
package factory

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/projection-engine/engine"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// ConfigJSON is the JSON representation of a projection configuration.
type ConfigJSON struct {
	Name            string  `json:"name"`
	ProjectionYears int     `json:"projection_years,omitempty"`
	StartDate       string  `json:"start_date"`
	StartingCash    float64 `json:"starting_cash,omitempty"`

	ReceiptDelay int `json:"receipt_delay,omitempty"`
	CostDelay    int `json:"cost_delay,omitempty"`
	OpexDelay    int `json:"opex_delay,omitempty"`
	CapexDelay   int `json:"capex_delay,omitempty"`

	RevenueAssumptions []RevenueJSON `json:"revenue_assumptions,omitempty"`
	CostAssumptions    []CostJSON    `json:"cost_assumptions,omitempty"`
	StaffAssumptions   []StaffJSON   `json:"staff_assumptions,omitempty"`
	CapexAssumptions   []CapexJSON   `json:"capex_assumptions,omitempty"`
}

// RevenueJSON represents one revenue stream assumption.
type RevenueJSON struct {
	Stream               string  `json:"stream"`
	Mode                 string  `json:"mode"` // recurring, one_time
	UnitPrice            float64 `json:"unit_price"`
	MonthlyNewUnits      float64 `json:"monthly_new_units,omitempty"`
	AnnualIncreasePct    float64 `json:"annual_increase_pct,omitempty"`
	ImplementationMonths int     `json:"implementation_months,omitempty"`
}

// CostJSON represents one cost-of-revenue assumption.
type CostJSON struct {
	Name   string  `json:"name"`
	Mode   string  `json:"mode"` // per_unit, fixed_monthly, percent_of_revenue
	Amount float64 `json:"amount"`
	Stream string  `json:"stream,omitempty"`
}

// StaffJSON represents one staff position assumption.
type StaffJSON struct {
	Title             string  `json:"title"`
	MonthlySalary     float64 `json:"monthly_salary"`
	Benefits          float64 `json:"benefits,omitempty"`
	Allowance         float64 `json:"allowance,omitempty"`
	StartMonth        int     `json:"start_month,omitempty"`
	AnnualIncreasePct float64 `json:"annual_increase_pct,omitempty"`
}

// CapexJSON represents one capital purchase assumption.
type CapexJSON struct {
	Asset             string  `json:"asset"`
	Cost              float64 `json:"cost"`
	PurchaseMonth     int     `json:"purchase_month,omitempty"`
	PurchaseYear      int     `json:"purchase_year,omitempty"`
	SalvageValue      float64 `json:"salvage_value,omitempty"`
	DepreciationYears int     `json:"depreciation_years,omitempty"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	defaultProjectionYears = 3
	defaultStartMonth      = 1
)

// =============================================================================
// PARSING
// =============================================================================

// ParseConfig converts a JSON document into a validated ProjectionConfig.
func ParseConfig(jsonStr string) (engine.ProjectionConfig, error) {
	var doc ConfigJSON
	if err := json.Unmarshal([]byte(jsonStr), &doc); err != nil {
		return engine.ProjectionConfig{}, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return BuildConfig(doc)
}

// BuildConfig converts an already-unmarshalled ConfigJSON into a validated
// ProjectionConfig, applying defaults.
func BuildConfig(doc ConfigJSON) (engine.ProjectionConfig, error) {
	cfg := engine.ProjectionConfig{
		Name:         doc.Name,
		Years:        doc.ProjectionYears,
		StartingCash: decimal.NewFromFloat(doc.StartingCash),
		ReceiptDelay: doc.ReceiptDelay,
		CostDelay:    doc.CostDelay,
		OpexDelay:    doc.OpexDelay,
		CapexDelay:   doc.CapexDelay,
	}

	if cfg.Years == 0 {
		cfg.Years = defaultProjectionYears
	}

	if doc.StartDate != "" {
		start, err := time.Parse("2006-01-02", doc.StartDate)
		if err != nil {
			return engine.ProjectionConfig{}, fmt.Errorf("invalid start_date %q (use YYYY-MM-DD): %w", doc.StartDate, err)
		}
		cfg.StartDate = start
	}

	for i, r := range doc.RevenueAssumptions {
		mode, err := revenueMode(r.Mode)
		if err != nil {
			return engine.ProjectionConfig{}, fmt.Errorf("revenue_assumptions[%d]: %w", i, err)
		}
		cfg.RevenueLines = append(cfg.RevenueLines, engine.RevenueLine{
			Stream:               engine.StreamID(r.Stream),
			Mode:                 mode,
			UnitPrice:            decimal.NewFromFloat(r.UnitPrice),
			MonthlyNewUnits:      decimal.NewFromFloat(r.MonthlyNewUnits),
			AnnualIncreasePct:    decimal.NewFromFloat(r.AnnualIncreasePct),
			ImplementationMonths: r.ImplementationMonths,
		})
	}

	for i, c := range doc.CostAssumptions {
		mode, err := costMode(c.Mode)
		if err != nil {
			return engine.ProjectionConfig{}, fmt.Errorf("cost_assumptions[%d]: %w", i, err)
		}
		cfg.CostLines = append(cfg.CostLines, engine.CostLine{
			Name:   c.Name,
			Mode:   mode,
			Amount: decimal.NewFromFloat(c.Amount),
			Stream: engine.StreamID(c.Stream),
		})
	}

	for _, s := range doc.StaffAssumptions {
		startMonth := s.StartMonth
		if startMonth == 0 {
			startMonth = defaultStartMonth
		}
		cfg.StaffLines = append(cfg.StaffLines, engine.StaffLine{
			Title:             s.Title,
			MonthlySalary:     decimal.NewFromFloat(s.MonthlySalary),
			Benefits:          decimal.NewFromFloat(s.Benefits),
			Allowance:         decimal.NewFromFloat(s.Allowance),
			StartMonth:        startMonth,
			AnnualIncreasePct: decimal.NewFromFloat(s.AnnualIncreasePct),
		})
	}

	for _, x := range doc.CapexAssumptions {
		purchaseMonth := x.PurchaseMonth
		if purchaseMonth == 0 {
			purchaseMonth = 1
		}
		purchaseYear := x.PurchaseYear
		if purchaseYear == 0 {
			purchaseYear = 1
		}
		cfg.CapexLines = append(cfg.CapexLines, engine.CapexLine{
			Asset:             x.Asset,
			Cost:              decimal.NewFromFloat(x.Cost),
			PurchaseMonth:     purchaseMonth,
			PurchaseYear:      purchaseYear,
			SalvageValue:      decimal.NewFromFloat(x.SalvageValue),
			DepreciationYears: x.DepreciationYears,
		})
	}

	if err := engine.Validate(cfg); err != nil {
		return engine.ProjectionConfig{}, err
	}

	return cfg, nil
}

// MarshalConfig serializes a ConfigJSON document for storage.
func MarshalConfig(doc ConfigJSON) (string, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(b), nil
}

func revenueMode(s string) (engine.RevenueMode, error) {
	switch s {
	case "recurring", "":
		return engine.RevenueRecurring, nil
	case "one_time":
		return engine.RevenueOneTime, nil
	default:
		return "", fmt.Errorf("unknown revenue mode %q", s)
	}
}

func costMode(s string) (engine.CostMode, error) {
	switch s {
	case "per_unit":
		return engine.CostPerUnit, nil
	case "fixed_monthly":
		return engine.CostFixedMonthly, nil
	case "percent_of_revenue":
		return engine.CostPercentOfRevenue, nil
	default:
		return "", fmt.Errorf("unknown cost mode %q", s)
	}
}
