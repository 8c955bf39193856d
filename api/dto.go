/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

MONEY REPRESENTATION:
  The engine computes in decimal.Decimal; DTOs expose float64 for
  frontend convenience. The lossless decimal values stay server-side
  (store columns are decimal strings).

VALIDATION:
  Validation is done in the factory and engine, not in DTOs. DTOs are
  pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/config.go: ConfigJSON type embedded in requests
*/
package api

import (
	"github.com/warp/projection-engine/engine"
	"github.com/warp/projection-engine/factory"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// ProjectionDTO represents a stored projection in API responses.
type ProjectionDTO struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Config    factory.ConfigJSON `json:"config"`
	Version   int                `json:"version"`
	CreatedAt string             `json:"created_at,omitempty"`
	UpdatedAt string             `json:"updated_at,omitempty"`
}

// SaveProjectionRequest creates or updates a projection. The config is
// validated and recomputed before anything is stored.
type SaveProjectionRequest struct {
	ID     string             `json:"id"`
	Config factory.ConfigJSON `json:"config"`
}

// SimulateRequest runs the engine statelessly: nothing is persisted.
type SimulateRequest struct {
	Config factory.ConfigJSON `json:"config"`
}

// SimulateResponse is the full output of one engine run.
type SimulateResponse struct {
	Records   []MonthlyRecordDTO `json:"records"`
	Summaries []YearSummaryDTO   `json:"summaries"`
}

// MonthlyRecordDTO is one month of projection output.
type MonthlyRecordDTO struct {
	Month       int    `json:"month"`
	Date        string `json:"date"`
	Year        int    `json:"year"`
	MonthInYear int    `json:"month_in_year"`

	Revenue           float64 `json:"revenue"`
	CostOfRevenue     float64 `json:"cost_of_revenue"`
	GrossProfit       float64 `json:"gross_profit"`
	OperatingExpenses float64 `json:"operating_expenses"`
	Capex             float64 `json:"capex"`
	NetIncome         float64 `json:"net_income"`

	CashReceipts float64 `json:"cash_receipts"`
	CashPayments float64 `json:"cash_payments"`
	NetCashFlow  float64 `json:"net_cash_flow"`
	CashBalance  float64 `json:"cash_balance"`

	CumulativeRevenue     float64 `json:"cumulative_revenue"`
	CumulativeCost        float64 `json:"cumulative_cost"`
	CumulativeGrossProfit float64 `json:"cumulative_gross_profit"`
}

// YearSummaryDTO is one projection year's rollup.
type YearSummaryDTO struct {
	Year             int     `json:"year"`
	TotalRevenue     float64 `json:"total_revenue"`
	TotalGrossProfit float64 `json:"total_gross_profit"`
	TotalNetIncome   float64 `json:"total_net_income"`
}

// RecomputeResponse reports one recompute invocation.
type RecomputeResponse struct {
	ID     string `json:"id"`
	Months int    `json:"months"`
	Years  int    `json:"years"`
}

// RecomputeAllResponse reports a batch recompute run.
type RecomputeAllResponse struct {
	Recomputed int      `json:"recomputed"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors,omitempty"`
}

// ScenarioDTO describes a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects a demo scenario.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toRecordDTOs(records []engine.MonthlyRecord) []MonthlyRecordDTO {
	dtos := make([]MonthlyRecordDTO, len(records))
	for i, r := range records {
		dtos[i] = toRecordDTO(r)
	}
	return dtos
}

func toRecordDTO(r engine.MonthlyRecord) MonthlyRecordDTO {
	return MonthlyRecordDTO{
		Month:       r.Month,
		Date:        r.Date.Format("2006-01-02"),
		Year:        r.Year,
		MonthInYear: r.MonthInYear,

		Revenue:           r.Revenue.InexactFloat64(),
		CostOfRevenue:     r.CostOfRevenue.InexactFloat64(),
		GrossProfit:       r.GrossProfit.InexactFloat64(),
		OperatingExpenses: r.OperatingExpenses.InexactFloat64(),
		Capex:             r.Capex.InexactFloat64(),
		NetIncome:         r.NetIncome.InexactFloat64(),

		CashReceipts: r.CashReceipts.InexactFloat64(),
		CashPayments: r.CashPayments.InexactFloat64(),
		NetCashFlow:  r.NetCashFlow.InexactFloat64(),
		CashBalance:  r.CashBalance.InexactFloat64(),

		CumulativeRevenue:     r.CumulativeRevenue.InexactFloat64(),
		CumulativeCost:        r.CumulativeCost.InexactFloat64(),
		CumulativeGrossProfit: r.CumulativeGrossProfit.InexactFloat64(),
	}
}

func toSummaryDTOs(years []engine.YearSummary) []YearSummaryDTO {
	dtos := make([]YearSummaryDTO, len(years))
	for i, y := range years {
		dtos[i] = YearSummaryDTO{
			Year:             y.Year,
			TotalRevenue:     y.TotalRevenue.InexactFloat64(),
			TotalGrossProfit: y.TotalGrossProfit.InexactFloat64(),
			TotalNetIncome:   y.TotalNetIncome.InexactFloat64(),
		}
	}
	return dtos
}
