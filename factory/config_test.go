package factory_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/projection-engine/engine"
	"github.com/warp/projection-engine/factory"
)

func decimalFromInt(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func TestParseConfig_FullDocument(t *testing.T) {
	jsonStr := `{
		"name": "SaaS Startup",
		"projection_years": 2,
		"start_date": "2026-01-01",
		"starting_cash": 50000,
		"receipt_delay": 1,
		"capex_delay": 2,
		"revenue_assumptions": [
			{"stream": "subscriptions", "mode": "recurring", "unit_price": 49,
			 "monthly_new_units": 20, "annual_increase_pct": 5},
			{"stream": "onboarding", "mode": "one_time", "unit_price": 500,
			 "monthly_new_units": 20, "implementation_months": 2}
		],
		"cost_assumptions": [
			{"name": "hosting", "mode": "per_unit", "amount": 4, "stream": "subscriptions"},
			{"name": "fees", "mode": "percent_of_revenue", "amount": 3}
		],
		"staff_assumptions": [
			{"title": "Engineer", "monthly_salary": 8000, "annual_increase_pct": 3}
		],
		"capex_assumptions": [
			{"asset": "Laptops", "cost": 6000, "purchase_month": 1, "purchase_year": 1}
		]
	}`

	cfg, err := factory.ParseConfig(jsonStr)
	require.NoError(t, err)

	assert.Equal(t, "SaaS Startup", cfg.Name)
	assert.Equal(t, 24, cfg.Horizon())
	assert.Equal(t, 1, cfg.ReceiptDelay)
	assert.Equal(t, 2, cfg.CapexDelay)
	assert.True(t, cfg.StartingCash.Equal(decimalFromInt(50000)))

	require.Len(t, cfg.RevenueLines, 2)
	assert.Equal(t, engine.RevenueRecurring, cfg.RevenueLines[0].Mode)
	assert.Equal(t, engine.RevenueOneTime, cfg.RevenueLines[1].Mode)
	assert.Equal(t, 2, cfg.RevenueLines[1].ImplementationMonths)

	require.Len(t, cfg.CostLines, 2)
	assert.Equal(t, engine.StreamID("subscriptions"), cfg.CostLines[0].Stream)
	assert.Equal(t, engine.StreamID(""), cfg.CostLines[1].Stream)

	// Omitted staff start month defaults to 1.
	require.Len(t, cfg.StaffLines, 1)
	assert.Equal(t, 1, cfg.StaffLines[0].StartMonth)

	// Parsed config must simulate cleanly.
	p, err := engine.Simulate(cfg)
	require.NoError(t, err)
	assert.Len(t, p.Records, 24)
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := factory.ParseConfig(`{"name": "Bare", "start_date": "2026-06-01"}`)
	require.NoError(t, err)

	// projection_years defaults to 3.
	assert.Equal(t, 36, cfg.Horizon())
	assert.True(t, cfg.StartingCash.IsZero())
}

func TestParseConfig_CapexDefaults(t *testing.T) {
	cfg, err := factory.ParseConfig(`{
		"name": "Capex",
		"start_date": "2026-01-01",
		"capex_assumptions": [{"asset": "Truck", "cost": 30000}]
	}`)
	require.NoError(t, err)

	require.Len(t, cfg.CapexLines, 1)
	assert.Equal(t, 1, cfg.CapexLines[0].PurchaseMonth)
	assert.Equal(t, 1, cfg.CapexLines[0].PurchaseYear)
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		jsonStr string
	}{
		{"malformed JSON", `{`},
		{"bad date", `{"name": "x", "start_date": "01/02/2026"}`},
		{"unknown revenue mode", `{
			"name": "x", "start_date": "2026-01-01",
			"revenue_assumptions": [{"stream": "a", "mode": "weekly", "unit_price": 1}]
		}`},
		{"unknown cost mode", `{
			"name": "x", "start_date": "2026-01-01",
			"cost_assumptions": [{"name": "c", "mode": "hourly", "amount": 1}]
		}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := factory.ParseConfig(tt.jsonStr)
			assert.Error(t, err)
		})
	}
}

func TestParseConfig_DelegatesToEngineValidation(t *testing.T) {
	// Structural invariants (delay range, dangling references) surface as
	// engine ConfigurationErrors.
	_, err := factory.ParseConfig(`{
		"name": "x", "start_date": "2026-01-01", "receipt_delay": 7
	}`)
	require.Error(t, err)

	var cfgErr *engine.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "receipt_delay", cfgErr.Field)

	_, err = factory.ParseConfig(`{
		"name": "x", "start_date": "2026-01-01",
		"cost_assumptions": [{"name": "c", "mode": "per_unit", "amount": 1, "stream": "ghost"}]
	}`)
	require.Error(t, err)
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "cost_lines[0].stream", cfgErr.Field)
}
