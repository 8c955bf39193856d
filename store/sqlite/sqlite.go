/*
Package sqlite provides a SQLite-backed implementation of projection storage.

PURPOSE:
  Persists projection configurations (as JSON) together with their
  computed monthly records and yearly summaries. In production, the
  same patterns apply to PostgreSQL - only minor SQL dialect
  differences.

RECOMPUTE-ON-SAVE:
  The engine itself is a pure function and knows nothing about
  persistence. The recompute-on-save behavior lives at this boundary:
  SaveProjection stores the config and atomically replaces the cached
  records and summaries with the output of a fresh simulation supplied
  by the caller.

KEY TABLES:
  projections:      Configuration documents (versioned JSON)
  monthly_records:  Cached engine output, one row per month
  year_summaries:   Cached yearly rollups

DECIMAL STORAGE:
  Money columns are TEXT holding decimal strings, never REAL. Decimals
  round-trip exactly through decimal.NewFromString.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/projections.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - engine/record.go: The record types cached here
  - api/handlers.go: The caller that pairs save with recompute
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/projection-engine/engine"
)

// Store implements projection persistence using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// ProjectionRecord is a stored projection configuration.
type ProjectionRecord struct {
	ID         string
	Name       string
	ConfigJSON string
	Version    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Projection configurations
	CREATE TABLE IF NOT EXISTS projections (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		config_json TEXT NOT NULL,
		version INTEGER DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Cached engine output, one row per simulated month.
	-- Replaced wholesale on every recompute; never updated in place.
	CREATE TABLE IF NOT EXISTS monthly_records (
		projection_id TEXT NOT NULL,
		month_number INTEGER NOT NULL,
		month_date TEXT NOT NULL,
		year_number INTEGER NOT NULL,
		month_in_year INTEGER NOT NULL,
		revenue TEXT NOT NULL,
		cost_of_revenue TEXT NOT NULL,
		gross_profit TEXT NOT NULL,
		operating_expenses TEXT NOT NULL,
		capex TEXT NOT NULL,
		net_income TEXT NOT NULL,
		cash_receipts TEXT NOT NULL,
		cash_payments TEXT NOT NULL,
		net_cash_flow TEXT NOT NULL,
		cash_balance TEXT NOT NULL,
		cumulative_revenue TEXT NOT NULL,
		cumulative_cost TEXT NOT NULL,
		cumulative_gross_profit TEXT NOT NULL,
		PRIMARY KEY (projection_id, month_number),
		FOREIGN KEY (projection_id) REFERENCES projections(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_monthly_records_year
		ON monthly_records(projection_id, year_number);

	-- Cached yearly rollups
	CREATE TABLE IF NOT EXISTS year_summaries (
		projection_id TEXT NOT NULL,
		year_number INTEGER NOT NULL,
		total_revenue TEXT NOT NULL,
		total_gross_profit TEXT NOT NULL,
		total_net_income TEXT NOT NULL,
		PRIMARY KEY (projection_id, year_number),
		FOREIGN KEY (projection_id) REFERENCES projections(id) ON DELETE CASCADE
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// PROJECTION STORE
// =============================================================================

// SaveProjection stores a projection config and atomically replaces its
// cached results. Passing a nil projection clears the cache (config saved,
// results pending recompute).
func (s *Store) SaveProjection(ctx context.Context, rec ProjectionRecord, p *engine.Projection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO projections (id, name, config_json, version, created_at, updated_at)
		VALUES (?, ?, ?, 1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			config_json = excluded.config_json,
			version = projections.version + 1,
			updated_at = excluded.updated_at
	`, rec.ID, rec.Name, rec.ConfigJSON, now, now)
	if err != nil {
		return fmt.Errorf("failed to save projection: %w", err)
	}

	if err := replaceResultsTx(ctx, tx, rec.ID, p); err != nil {
		return err
	}

	return tx.Commit()
}

// ReplaceResults swaps a stored projection's cached records and summaries
// for freshly simulated ones.
func (s *Store) ReplaceResults(ctx context.Context, projectionID string, p *engine.Projection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := replaceResultsTx(ctx, tx, projectionID, p); err != nil {
		return err
	}
	return tx.Commit()
}

func replaceResultsTx(ctx context.Context, tx *sql.Tx, projectionID string, p *engine.Projection) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM monthly_records WHERE projection_id = ?`, projectionID); err != nil {
		return fmt.Errorf("failed to clear monthly records: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM year_summaries WHERE projection_id = ?`, projectionID); err != nil {
		return fmt.Errorf("failed to clear year summaries: %w", err)
	}
	if p == nil {
		return nil
	}

	recStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO monthly_records
		(projection_id, month_number, month_date, year_number, month_in_year,
		 revenue, cost_of_revenue, gross_profit, operating_expenses, capex, net_income,
		 cash_receipts, cash_payments, net_cash_flow, cash_balance,
		 cumulative_revenue, cumulative_cost, cumulative_gross_profit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare record insert: %w", err)
	}
	defer recStmt.Close()

	for _, r := range p.Records {
		_, err := recStmt.ExecContext(ctx,
			projectionID,
			r.Month,
			r.Date.Format("2006-01-02"),
			r.Year,
			r.MonthInYear,
			r.Revenue.String(),
			r.CostOfRevenue.String(),
			r.GrossProfit.String(),
			r.OperatingExpenses.String(),
			r.Capex.String(),
			r.NetIncome.String(),
			r.CashReceipts.String(),
			r.CashPayments.String(),
			r.NetCashFlow.String(),
			r.CashBalance.String(),
			r.CumulativeRevenue.String(),
			r.CumulativeCost.String(),
			r.CumulativeGrossProfit.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert monthly record %d: %w", r.Month, err)
		}
	}

	for _, y := range p.Years {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO year_summaries
			(projection_id, year_number, total_revenue, total_gross_profit, total_net_income)
			VALUES (?, ?, ?, ?, ?)
		`, projectionID, y.Year, y.TotalRevenue.String(), y.TotalGrossProfit.String(), y.TotalNetIncome.String())
		if err != nil {
			return fmt.Errorf("failed to insert year summary %d: %w", y.Year, err)
		}
	}

	return nil
}

// GetProjection returns a stored projection config, or nil if not found.
func (s *Store) GetProjection(ctx context.Context, id string) (*ProjectionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, config_json, version, created_at, updated_at
		FROM projections WHERE id = ?
	`, id)

	var rec ProjectionRecord
	var createdAt, updatedAt string
	err := row.Scan(&rec.ID, &rec.Name, &rec.ConfigJSON, &rec.Version, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get projection: %w", err)
	}

	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &rec, nil
}

// ListProjections returns all stored projection configs, newest first.
func (s *Store) ListProjections(ctx context.Context) ([]ProjectionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, config_json, version, created_at, updated_at
		FROM projections ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projections: %w", err)
	}
	defer rows.Close()

	var records []ProjectionRecord
	for rows.Next() {
		var rec ProjectionRecord
		var createdAt, updatedAt string
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.ConfigJSON, &rec.Version, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan projection: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// DeleteProjection removes a projection and its cached results.
func (s *Store) DeleteProjection(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The foreign keys cascade, but only when the pragma survived the
	// connection; delete the children explicitly so behavior doesn't
	// depend on it.
	if _, err := s.db.ExecContext(ctx, `DELETE FROM monthly_records WHERE projection_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete monthly records: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM year_summaries WHERE projection_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete year summaries: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM projections WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete projection: %w", err)
	}
	return nil
}

// =============================================================================
// RESULT RETRIEVAL
// =============================================================================

// GetMonthlyRecords returns a projection's cached monthly records in month
// order. An empty result means the projection has not been computed yet.
func (s *Store) GetMonthlyRecords(ctx context.Context, projectionID string) ([]engine.MonthlyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT month_number, month_date, year_number, month_in_year,
		       revenue, cost_of_revenue, gross_profit, operating_expenses, capex, net_income,
		       cash_receipts, cash_payments, net_cash_flow, cash_balance,
		       cumulative_revenue, cumulative_cost, cumulative_gross_profit
		FROM monthly_records
		WHERE projection_id = ?
		ORDER BY month_number
	`, projectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly records: %w", err)
	}
	defer rows.Close()

	var records []engine.MonthlyRecord
	for rows.Next() {
		var r engine.MonthlyRecord
		var date string
		decimals := []*decimal.Decimal{
			&r.Revenue, &r.CostOfRevenue, &r.GrossProfit, &r.OperatingExpenses,
			&r.Capex, &r.NetIncome, &r.CashReceipts, &r.CashPayments,
			&r.NetCashFlow, &r.CashBalance, &r.CumulativeRevenue,
			&r.CumulativeCost, &r.CumulativeGrossProfit,
		}
		raw := make([]string, len(decimals))
		dest := []any{&r.Month, &date, &r.Year, &r.MonthInYear}
		for i := range raw {
			dest = append(dest, &raw[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan monthly record: %w", err)
		}
		for i, ptr := range decimals {
			d, err := decimal.NewFromString(raw[i])
			if err != nil {
				return nil, fmt.Errorf("corrupt decimal in monthly record: %w", err)
			}
			*ptr = d
		}
		r.Date, _ = time.Parse("2006-01-02", date)
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetYearSummaries returns a projection's cached yearly rollups in year order.
func (s *Store) GetYearSummaries(ctx context.Context, projectionID string) ([]engine.YearSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT year_number, total_revenue, total_gross_profit, total_net_income
		FROM year_summaries
		WHERE projection_id = ?
		ORDER BY year_number
	`, projectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query year summaries: %w", err)
	}
	defer rows.Close()

	var years []engine.YearSummary
	for rows.Next() {
		var y engine.YearSummary
		var revenue, gross, net string
		if err := rows.Scan(&y.Year, &revenue, &gross, &net); err != nil {
			return nil, fmt.Errorf("failed to scan year summary: %w", err)
		}
		if y.TotalRevenue, err = decimal.NewFromString(revenue); err != nil {
			return nil, fmt.Errorf("corrupt decimal in year summary: %w", err)
		}
		if y.TotalGrossProfit, err = decimal.NewFromString(gross); err != nil {
			return nil, fmt.Errorf("corrupt decimal in year summary: %w", err)
		}
		if y.TotalNetIncome, err = decimal.NewFromString(net); err != nil {
			return nil, fmt.Errorf("corrupt decimal in year summary: %w", err)
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

// =============================================================================
// MAINTENANCE
// =============================================================================

// Reset clears all data. Used by demo scenario loading.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"monthly_records", "year_summaries", "projections"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to reset %s: %w", table, err)
		}
	}
	return nil
}
