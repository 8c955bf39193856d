/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	projection configurations for testing and demos. Each scenario saves a
	config and computes its records, demonstrating specific engine features.

AVAILABLE SCENARIOS:

	saas-startup:     Recurring subscriptions with per-unit hosting costs,
	                  payment fees, staged hiring, and a receipt delay
	consulting-firm:  One-time project revenue spread over implementation
	                  months, percentage subcontractor costs
	hardware-rollout: Device fleet growth with capex purchases and the
	                  full set of cash delays

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Build configuration documents
 3. Save each projection with freshly computed results

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "saas-startup"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create a builder returning []factory.ConfigJSON
 3. Add case to LoadScenario handler

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: LoadScenario, ListScenarios handlers
  - factory/config.go: Config JSON schema
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/warp/projection-engine/engine"
	"github.com/warp/projection-engine/factory"
	"github.com/warp/projection-engine/store/sqlite"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "saas-startup",
		Name:        "SaaS Startup",
		Description: "Recurring subscriptions, per-unit hosting, staged hiring, 1-month receipt delay",
	},
	{
		ID:          "consulting-firm",
		Name:        "Consulting Firm",
		Description: "One-time project revenue spread over implementation months, subcontractor percentage costs",
	},
	{
		ID:          "hardware-rollout",
		Name:        "Hardware Rollout",
		Description: "Device fleet growth with capex purchases and delays on every cash category",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, nil)
}

// LoadScenario resets the database and loads the requested scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}

	var docs []factory.ConfigJSON
	switch req.ScenarioID {
	case "saas-startup":
		docs = saasStartupConfigs()
	case "consulting-firm":
		docs = consultingFirmConfigs()
	case "hardware-rollout":
		docs = hardwareRolloutConfigs()
	default:
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	for i, doc := range docs {
		id := fmt.Sprintf("%s-%d", req.ScenarioID, i+1)
		if err := saveScenarioProjection(ctx, h.Store, id, doc); err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load scenario: %v", err), err)
			return
		}
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// ResetDatabase clears all data without loading anything.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func saveScenarioProjection(ctx context.Context, store *sqlite.Store, id string, doc factory.ConfigJSON) error {
	cfg, err := factory.BuildConfig(doc)
	if err != nil {
		return err
	}
	projection, err := engine.Simulate(cfg)
	if err != nil {
		return err
	}
	configJSON, err := factory.MarshalConfig(doc)
	if err != nil {
		return err
	}
	return store.SaveProjection(ctx, sqlite.ProjectionRecord{
		ID:         id,
		Name:       cfg.Name,
		ConfigJSON: configJSON,
	}, projection)
}

// =============================================================================
// SCENARIO BUILDERS
// =============================================================================

func saasStartupConfigs() []factory.ConfigJSON {
	return []factory.ConfigJSON{{
		Name:            "SaaS Startup",
		ProjectionYears: 3,
		StartDate:       "2026-01-01",
		StartingCash:    150000,
		ReceiptDelay:    1,
		RevenueAssumptions: []factory.RevenueJSON{
			{Stream: "subscriptions", Mode: "recurring", UnitPrice: 49,
				MonthlyNewUnits: 40, AnnualIncreasePct: 5},
			{Stream: "onboarding", Mode: "one_time", UnitPrice: 500,
				MonthlyNewUnits: 40, ImplementationMonths: 2},
		},
		CostAssumptions: []factory.CostJSON{
			{Name: "Hosting", Mode: "per_unit", Amount: 4, Stream: "subscriptions"},
			{Name: "Payment fees", Mode: "percent_of_revenue", Amount: 3},
		},
		StaffAssumptions: []factory.StaffJSON{
			{Title: "Founder / CEO", MonthlySalary: 9000, Benefits: 900, AnnualIncreasePct: 3},
			{Title: "Backend Engineer", MonthlySalary: 8000, Benefits: 800, StartMonth: 3, AnnualIncreasePct: 4},
			{Title: "Support Specialist", MonthlySalary: 4500, Benefits: 450, StartMonth: 7, AnnualIncreasePct: 3},
		},
		CapexAssumptions: []factory.CapexJSON{
			{Asset: "Laptops", Cost: 9000, PurchaseMonth: 1, PurchaseYear: 1, DepreciationYears: 3},
		},
	}}
}

func consultingFirmConfigs() []factory.ConfigJSON {
	return []factory.ConfigJSON{{
		Name:            "Consulting Firm",
		ProjectionYears: 3,
		StartDate:       "2026-01-01",
		StartingCash:    80000,
		ReceiptDelay:    2,
		OpexDelay:       1,
		RevenueAssumptions: []factory.RevenueJSON{
			{Stream: "projects", Mode: "one_time", UnitPrice: 45000,
				MonthlyNewUnits: 1, ImplementationMonths: 6, AnnualIncreasePct: 8},
			{Stream: "retainers", Mode: "recurring", UnitPrice: 3500,
				MonthlyNewUnits: 0.5, AnnualIncreasePct: 8},
		},
		CostAssumptions: []factory.CostJSON{
			{Name: "Subcontractors", Mode: "percent_of_revenue", Amount: 35, Stream: "projects"},
			{Name: "Tooling", Mode: "fixed_monthly", Amount: 1200},
		},
		StaffAssumptions: []factory.StaffJSON{
			{Title: "Managing Partner", MonthlySalary: 12000, Benefits: 1500, Allowance: 800, AnnualIncreasePct: 4},
			{Title: "Senior Consultant", MonthlySalary: 9500, Benefits: 1100, StartMonth: 2, AnnualIncreasePct: 5},
			{Title: "Analyst", MonthlySalary: 5500, Benefits: 600, StartMonth: 5, AnnualIncreasePct: 5},
		},
	}}
}

func hardwareRolloutConfigs() []factory.ConfigJSON {
	return []factory.ConfigJSON{{
		Name:            "Hardware Rollout",
		ProjectionYears: 5,
		StartDate:       "2026-01-01",
		StartingCash:    500000,
		ReceiptDelay:    2,
		CostDelay:       1,
		OpexDelay:       1,
		CapexDelay:      3,
		RevenueAssumptions: []factory.RevenueJSON{
			{Stream: "devices", Mode: "recurring", UnitPrice: 30,
				MonthlyNewUnits: 250, AnnualIncreasePct: 2},
			{Stream: "installation", Mode: "one_time", UnitPrice: 120,
				MonthlyNewUnits: 250},
		},
		CostAssumptions: []factory.CostJSON{
			{Name: "Connectivity", Mode: "per_unit", Amount: 6, Stream: "devices"},
			{Name: "Field service", Mode: "percent_of_revenue", Amount: 8, Stream: "devices"},
			{Name: "Warehouse", Mode: "fixed_monthly", Amount: 7500},
		},
		StaffAssumptions: []factory.StaffJSON{
			{Title: "Operations Lead", MonthlySalary: 10000, Benefits: 1200, Allowance: 600, AnnualIncreasePct: 3},
			{Title: "Field Technician", MonthlySalary: 5200, Benefits: 700, Allowance: 900, StartMonth: 2, AnnualIncreasePct: 3},
			{Title: "Field Technician II", MonthlySalary: 5200, Benefits: 700, Allowance: 900, StartMonth: 8, AnnualIncreasePct: 3},
		},
		CapexAssumptions: []factory.CapexJSON{
			{Asset: "Assembly line", Cost: 180000, PurchaseMonth: 1, PurchaseYear: 1, DepreciationYears: 7, SalvageValue: 20000},
			{Asset: "Service vans", Cost: 64000, PurchaseMonth: 6, PurchaseYear: 1, DepreciationYears: 5, SalvageValue: 8000},
			{Asset: "Warehouse expansion", Cost: 120000, PurchaseMonth: 3, PurchaseYear: 3, DepreciationYears: 10},
		},
	}}
}
