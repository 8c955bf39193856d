/*
validate.go - Configuration invariants

PURPOSE:
  Checks the structural invariants of a ProjectionConfig before any
  simulation work: positive horizon, delay ranges, cost-to-revenue
  reference integrity, and one-time recognition window sanity.

WHY VALIDATE STRUCTURALLY:
  Several runtime hazards are prevented here instead of guarded in the
  loop. Division by ImplementationMonths cannot panic because a
  negative window on a one-time line is rejected up front (zero means
  unset and is never divided by). A PerUnit cost can never look up a
  missing carried-unit entry because dangling stream references are
  rejected up front.

SEE ALSO:
  - errors.go: ConfigurationError
  - simulate.go: Calls Validate before the month loop
*/
package engine

import "fmt"

// Maximum cash delay, in months, for any category.
const maxDelayMonths = 6

// Validate checks a ProjectionConfig's structural invariants. It returns nil
// if the config is simulatable, or a *ConfigurationError naming the first
// offending field. It never mutates the config.
func Validate(cfg ProjectionConfig) error {
	if cfg.Years < 1 {
		return &ConfigurationError{
			Field:  "years",
			Reason: fmt.Sprintf("must be at least 1, got %d", cfg.Years),
		}
	}
	if cfg.StartDate.IsZero() {
		return &ConfigurationError{
			Field:  "start_date",
			Reason: "required",
		}
	}

	delays := []struct {
		field string
		value int
	}{
		{"receipt_delay", cfg.ReceiptDelay},
		{"cost_delay", cfg.CostDelay},
		{"opex_delay", cfg.OpexDelay},
		{"capex_delay", cfg.CapexDelay},
	}
	for _, d := range delays {
		if d.value < 0 || d.value > maxDelayMonths {
			return &ConfigurationError{
				Field:  d.field,
				Reason: fmt.Sprintf("must be between 0 and %d months, got %d", maxDelayMonths, d.value),
			}
		}
	}

	// Revenue stream IDs must be unique: cost lines reference them.
	streams := make(map[StreamID]bool, len(cfg.RevenueLines))
	for i, rl := range cfg.RevenueLines {
		if rl.Stream == "" {
			return &ConfigurationError{
				Field:  fmt.Sprintf("revenue_lines[%d].stream", i),
				Reason: "required",
			}
		}
		if streams[rl.Stream] {
			return &ConfigurationError{
				Field:  fmt.Sprintf("revenue_lines[%d].stream", i),
				Reason: fmt.Sprintf("duplicate stream %q", rl.Stream),
			}
		}
		streams[rl.Stream] = true

		if rl.Mode == RevenueOneTime && rl.ImplementationMonths < 0 {
			return &ConfigurationError{
				Field:  fmt.Sprintf("revenue_lines[%d].implementation_months", i),
				Reason: fmt.Sprintf("must not be negative, got %d", rl.ImplementationMonths),
			}
		}
	}

	for i, cl := range cfg.CostLines {
		if cl.Mode == CostPerUnit && cl.Stream == "" {
			return &ConfigurationError{
				Field:  fmt.Sprintf("cost_lines[%d].stream", i),
				Reason: "per-unit cost requires a revenue stream reference",
			}
		}
		if cl.Stream != "" && !streams[cl.Stream] {
			return &ConfigurationError{
				Field:  fmt.Sprintf("cost_lines[%d].stream", i),
				Reason: fmt.Sprintf("references unknown revenue stream %q", cl.Stream),
			}
		}
	}

	for i, sl := range cfg.StaffLines {
		if sl.StartMonth < 1 {
			return &ConfigurationError{
				Field:  fmt.Sprintf("staff_lines[%d].start_month", i),
				Reason: fmt.Sprintf("must be at least 1, got %d", sl.StartMonth),
			}
		}
	}

	for i, cx := range cfg.CapexLines {
		if cx.PurchaseMonth < 1 || cx.PurchaseMonth > 12 {
			return &ConfigurationError{
				Field:  fmt.Sprintf("capex_lines[%d].purchase_month", i),
				Reason: fmt.Sprintf("must be between 1 and 12, got %d", cx.PurchaseMonth),
			}
		}
		if cx.PurchaseYear < 1 {
			return &ConfigurationError{
				Field:  fmt.Sprintf("capex_lines[%d].purchase_year", i),
				Reason: fmt.Sprintf("must be at least 1, got %d", cx.PurchaseYear),
			}
		}
	}

	return nil
}
