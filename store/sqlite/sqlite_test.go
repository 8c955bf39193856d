package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/projection-engine/engine"
	"github.com/warp/projection-engine/factory"
	"github.com/warp/projection-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

const demoConfigJSON = `{
	"name": "Demo",
	"projection_years": 2,
	"start_date": "2026-01-01",
	"starting_cash": 10000,
	"receipt_delay": 1,
	"revenue_assumptions": [
		{"stream": "subs", "mode": "recurring", "unit_price": 10, "monthly_new_units": 100}
	],
	"cost_assumptions": [
		{"name": "hosting", "mode": "per_unit", "amount": 1, "stream": "subs"}
	],
	"staff_assumptions": [
		{"title": "Engineer", "monthly_salary": 5000}
	]
}`

func simulateDemo(t *testing.T) *engine.Projection {
	t.Helper()
	cfg, err := factory.ParseConfig(demoConfigJSON)
	require.NoError(t, err)
	p, err := engine.Simulate(cfg)
	require.NoError(t, err)
	return p
}

// =============================================================================
// PROJECTION PERSISTENCE TESTS
// =============================================================================

func TestStore_SaveAndGetProjection(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := sqlite.ProjectionRecord{ID: "proj-1", Name: "Demo", ConfigJSON: demoConfigJSON}
	require.NoError(t, store.SaveProjection(ctx, rec, simulateDemo(t)))

	got, err := store.GetProjection(ctx, "proj-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Demo", got.Name)
	assert.Equal(t, demoConfigJSON, got.ConfigJSON)
	assert.Equal(t, 1, got.Version)
}

func TestStore_GetProjection_NotFound(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetProjection(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_SaveBumpsVersion(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := sqlite.ProjectionRecord{ID: "proj-1", Name: "Demo", ConfigJSON: demoConfigJSON}
	require.NoError(t, store.SaveProjection(ctx, rec, nil))
	require.NoError(t, store.SaveProjection(ctx, rec, nil))

	got, err := store.GetProjection(ctx, "proj-1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)
}

func TestStore_RecordsRoundTripExactly(t *testing.T) {
	// Decimal values must survive storage bit-for-bit: they are stored as
	// strings, never floats.
	store := newTestStore(t)
	ctx := context.Background()

	p := simulateDemo(t)
	rec := sqlite.ProjectionRecord{ID: "proj-1", Name: "Demo", ConfigJSON: demoConfigJSON}
	require.NoError(t, store.SaveProjection(ctx, rec, p))

	records, err := store.GetMonthlyRecords(ctx, "proj-1")
	require.NoError(t, err)
	require.Len(t, records, len(p.Records))

	for i, got := range records {
		want := p.Records[i]
		assert.Equal(t, want.Month, got.Month)
		assert.Equal(t, want.Year, got.Year)
		assert.Equal(t, want.MonthInYear, got.MonthInYear)
		assert.True(t, got.Revenue.Equal(want.Revenue), "month %d revenue", want.Month)
		assert.True(t, got.CashBalance.Equal(want.CashBalance), "month %d cash balance", want.Month)
		assert.True(t, got.CumulativeGrossProfit.Equal(want.CumulativeGrossProfit), "month %d cumulative", want.Month)
	}

	years, err := store.GetYearSummaries(ctx, "proj-1")
	require.NoError(t, err)
	require.Len(t, years, len(p.Years))
	for i, got := range years {
		assert.True(t, got.TotalRevenue.Equal(p.Years[i].TotalRevenue), "year %d revenue", got.Year)
	}
}

func TestStore_ReplaceResultsSwapsCache(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := sqlite.ProjectionRecord{ID: "proj-1", Name: "Demo", ConfigJSON: demoConfigJSON}
	require.NoError(t, store.SaveProjection(ctx, rec, simulateDemo(t)))

	// Recompute with a shorter horizon and swap.
	cfg, err := factory.ParseConfig(`{"name": "Demo", "projection_years": 1, "start_date": "2026-01-01"}`)
	require.NoError(t, err)
	shorter, err := engine.Simulate(cfg)
	require.NoError(t, err)
	require.NoError(t, store.ReplaceResults(ctx, "proj-1", shorter))

	records, err := store.GetMonthlyRecords(ctx, "proj-1")
	require.NoError(t, err)
	assert.Len(t, records, 12)
}

func TestStore_DeleteProjectionRemovesResults(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := sqlite.ProjectionRecord{ID: "proj-1", Name: "Demo", ConfigJSON: demoConfigJSON}
	require.NoError(t, store.SaveProjection(ctx, rec, simulateDemo(t)))
	require.NoError(t, store.DeleteProjection(ctx, "proj-1"))

	got, err := store.GetProjection(ctx, "proj-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	records, err := store.GetMonthlyRecords(ctx, "proj-1")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStore_ListProjections(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveProjection(ctx, sqlite.ProjectionRecord{
		ID: "a", Name: "First", ConfigJSON: demoConfigJSON,
	}, nil))
	require.NoError(t, store.SaveProjection(ctx, sqlite.ProjectionRecord{
		ID: "b", Name: "Second", ConfigJSON: demoConfigJSON,
	}, nil))

	list, err := store.ListProjections(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestStore_Reset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveProjection(ctx, sqlite.ProjectionRecord{
		ID: "a", Name: "First", ConfigJSON: demoConfigJSON,
	}, simulateDemo(t)))
	require.NoError(t, store.Reset(ctx))

	list, err := store.ListProjections(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
