package engine_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/warp/projection-engine/engine"
)

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestValidate_AcceptsMinimalConfig(t *testing.T) {
	if err := engine.Validate(baseConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_RejectsBadConfigs(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*engine.ProjectionConfig)
		wantField string
	}{
		{
			name:      "zero years",
			mutate:    func(c *engine.ProjectionConfig) { c.Years = 0 },
			wantField: "years",
		},
		{
			name:      "negative years",
			mutate:    func(c *engine.ProjectionConfig) { c.Years = -2 },
			wantField: "years",
		},
		{
			name:      "missing start date",
			mutate:    func(c *engine.ProjectionConfig) { c.StartDate = time.Time{} },
			wantField: "start_date",
		},
		{
			name:      "receipt delay above max",
			mutate:    func(c *engine.ProjectionConfig) { c.ReceiptDelay = 7 },
			wantField: "receipt_delay",
		},
		{
			name:      "negative cost delay",
			mutate:    func(c *engine.ProjectionConfig) { c.CostDelay = -1 },
			wantField: "cost_delay",
		},
		{
			name:      "opex delay above max",
			mutate:    func(c *engine.ProjectionConfig) { c.OpexDelay = 12 },
			wantField: "opex_delay",
		},
		{
			name:      "capex delay above max",
			mutate:    func(c *engine.ProjectionConfig) { c.CapexDelay = 7 },
			wantField: "capex_delay",
		},
		{
			name: "revenue line without stream",
			mutate: func(c *engine.ProjectionConfig) {
				c.RevenueLines = []engine.RevenueLine{{Mode: engine.RevenueRecurring}}
			},
			wantField: "revenue_lines[0].stream",
		},
		{
			name: "duplicate streams",
			mutate: func(c *engine.ProjectionConfig) {
				c.RevenueLines = []engine.RevenueLine{
					recurringLine("saas", 10, 1),
					recurringLine("saas", 20, 1),
				}
			},
			wantField: "revenue_lines[1].stream",
		},
		{
			name: "dangling cost reference",
			mutate: func(c *engine.ProjectionConfig) {
				c.RevenueLines = []engine.RevenueLine{recurringLine("saas", 10, 1)}
				c.CostLines = []engine.CostLine{
					{Name: "x", Mode: engine.CostPerUnit, Amount: dec(1), Stream: "ghost"},
				}
			},
			wantField: "cost_lines[0].stream",
		},
		{
			name: "per-unit cost without reference",
			mutate: func(c *engine.ProjectionConfig) {
				c.CostLines = []engine.CostLine{
					{Name: "x", Mode: engine.CostPerUnit, Amount: dec(1)},
				}
			},
			wantField: "cost_lines[0].stream",
		},
		{
			name: "negative implementation months",
			mutate: func(c *engine.ProjectionConfig) {
				c.RevenueLines = []engine.RevenueLine{{
					Stream:               "projects",
					Mode:                 engine.RevenueOneTime,
					UnitPrice:            dec(100),
					ImplementationMonths: -1,
				}}
			},
			wantField: "revenue_lines[0].implementation_months",
		},
		{
			name: "staff start month below one",
			mutate: func(c *engine.ProjectionConfig) {
				c.StaffLines = []engine.StaffLine{{Title: "x", StartMonth: 0}}
			},
			wantField: "staff_lines[0].start_month",
		},
		{
			name: "capex purchase month out of range",
			mutate: func(c *engine.ProjectionConfig) {
				c.CapexLines = []engine.CapexLine{
					{Asset: "x", PurchaseMonth: 13, PurchaseYear: 1},
				}
			},
			wantField: "capex_lines[0].purchase_month",
		},
		{
			name: "capex purchase year below one",
			mutate: func(c *engine.ProjectionConfig) {
				c.CapexLines = []engine.CapexLine{
					{Asset: "x", PurchaseMonth: 1, PurchaseYear: 0},
				}
			},
			wantField: "capex_lines[0].purchase_year",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.mutate(&cfg)

			err := engine.Validate(cfg)
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			var cfgErr *engine.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigurationError, got %T", err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("field: got %q, want %q", cfgErr.Field, tt.wantField)
			}
			if !errors.Is(err, engine.ErrInvalidConfig) {
				t.Error("error does not wrap ErrInvalidConfig")
			}
			if !strings.Contains(cfgErr.Error(), cfgErr.Field) {
				t.Errorf("error message %q does not name the field", cfgErr.Error())
			}
		})
	}
}

func TestValidate_DelayBoundsInclusive(t *testing.T) {
	// 0 and 6 are both valid.
	cfg := baseConfig()
	cfg.ReceiptDelay = 0
	cfg.CostDelay = 6
	cfg.OpexDelay = 6
	cfg.CapexDelay = 0

	if err := engine.Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
