package service

import (
	"context"
	"testing"
	"time"

	"merchant-pulse/internal/adapter/storage/memory"
	"merchant-pulse/internal/core/domain"
	"merchant-pulse/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSampleStore returns an initialized store holding sampleLedger at baseTime.
func newSampleStore(t *testing.T) *memory.LedgerStore {
	t.Helper()
	store := memory.NewLedgerStore(0, baseTime)
	require.NoError(t, store.Initialize(sampleMerchants(), 0, NewGenerator(GeneratorConfig{Seed: 1})))

	ledger := sampleLedger()
	for i := len(ledger) - 1; i >= 0; i-- {
		store.Append(ledger[i])
	}
	return store
}

func newTestDashboard(t *testing.T) *dashboardService {
	t.Helper()
	svc := NewDashboardService(newSampleStore(t), DashboardConfig{Analytics: DefaultAnalyticsOptions()}, zerolog.Nop())
	return svc.(*dashboardService)
}

func TestDashboardService_GetTransactionData(t *testing.T) {
	svc := newTestDashboard(t)

	data, err := svc.GetTransactionData(context.Background(), domain.TimeRangeWeek, domain.TransactionFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"t5", "t4", "t3", "t2"}, ids(data.Transactions))
	assert.Equal(t, int64(281500), data.TotalVolume)
	assert.Len(t, data.VolumeOverTime, 7)

	filtered, err := svc.GetTransactionData(context.Background(), domain.TimeRangeDay,
		domain.TransactionFilter{Status: string(domain.TransactionStatusPending)})
	require.NoError(t, err)
	assert.Equal(t, []string{"t4"}, ids(filtered.Transactions))
}

func TestDashboardService_GetTransactionData_FallsBackOnPanic(t *testing.T) {
	svc := newTestDashboard(t)
	svc.compute = func(ports.LedgerSnapshot, domain.TimeRange, domain.TransactionFilter, AnalyticsOptions) domain.TransactionData {
		panic("boom")
	}

	data, err := svc.GetTransactionData(context.Background(), domain.TimeRangeWeek, domain.TransactionFilter{})
	require.NoError(t, err)
	assert.Equal(t, domain.EmptyTransactionData(), *data)
}

func TestDashboardService_GetTransactionHistory(t *testing.T) {
	svc := newTestDashboard(t)
	ctx := context.Background()

	page, err := svc.GetTransactionHistory(ctx, ports.TransactionQuery{
		TimeRange:  domain.TimeRangeWeek,
		Pagination: domain.Pagination{Page: 1, PageSize: 10},
		Search:     "zain",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"t5", "t3"}, ids(page.Transactions))
	assert.Equal(t, 2, page.TotalItems)
	assert.Equal(t, 1, page.TotalPages)

	page, err = svc.GetTransactionHistory(ctx, ports.TransactionQuery{
		TimeRange:  domain.TimeRangeMonth,
		Pagination: domain.Pagination{Page: 2, PageSize: 2},
		Sort:       &domain.TransactionSort{Field: domain.TxSortAmount, Direction: domain.SortDesc},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"t3", "t5"}, ids(page.Transactions))
	assert.Equal(t, 5, page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)

	page, err = svc.GetTransactionHistory(ctx, ports.TransactionQuery{
		TimeRange:  domain.TimeRangeWeek,
		Pagination: domain.Pagination{Page: 1, PageSize: 10},
		Search:     "nothing matches this",
	})
	require.NoError(t, err)
	assert.NotNil(t, page.Transactions)
	assert.Empty(t, page.Transactions)
}

func TestDashboardService_GetMerchants(t *testing.T) {
	svc := newTestDashboard(t)

	page, err := svc.GetMerchants(context.Background(), ports.MerchantQuery{
		TimeRange:  domain.TimeRangeWeek,
		Pagination: domain.Pagination{Page: 1, PageSize: 10},
		Sort:       &domain.MerchantSort{Field: domain.MerchantSortTransactionVolume, Direction: domain.SortDesc},
	})
	require.NoError(t, err)
	require.NotEmpty(t, page.Merchants)
	assert.Equal(t, "m2", page.Merchants[0].ID)
	assert.Equal(t, int64(200000), page.Merchants[0].TransactionVolume, "totals are windowed")
}

func TestDashboardService_GetTransactionByID(t *testing.T) {
	svc := newTestDashboard(t)
	ctx := context.Background()

	got, err := svc.GetTransactionByID(ctx, "t3")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(75000), got.Amount)

	missing, err := svc.GetTransactionByID(ctx, "txn_missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDashboardService_GetMerchantByID(t *testing.T) {
	svc := newTestDashboard(t)
	ctx := context.Background()

	got, err := svc.GetMerchantByID(ctx, "m1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Zain Cash", got.Name)
	assert.Equal(t, "contact@zaincash.iq", got.ContactEmail)
	assert.Equal(t, "123 Main Street, Baghdad", got.Address)
	assert.Equal(t, domain.MerchantStatusActive, got.Status)
	assert.Contains(t, domain.MerchantCategories, got.Category)
	assert.Regexp(t, `^\+964 \d{7}$`, got.ContactPhone)
	assert.Equal(t, int64(2), got.TransactionCount)

	again, err := svc.GetMerchantByID(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, got, again, "details are stable across reads")

	missing, err := svc.GetMerchantByID(ctx, "m404")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDashboardService_GetMerchantStats(t *testing.T) {
	svc := newTestDashboard(t)
	ctx := context.Background()

	stats, err := svc.GetMerchantStats(ctx, "m2")
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, int64(1100000), stats.TotalVolume)
	assert.Equal(t, int64(2), stats.TotalTransactions)
	assert.Equal(t, int64(2), stats.ActiveUsers)
	assert.InDelta(t, -77.7777, stats.VolumeChange, 1e-3)
	assert.InDelta(t, 0.0, stats.TransactionChange, 1e-9)
	assert.Zero(t, stats.AverageTransactionTime, "a single entry has no spacing")

	missing, err := svc.GetMerchantStats(ctx, "m404")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDashboardService_HonorsCancellation(t *testing.T) {
	svc := NewDashboardService(newSampleStore(t), DashboardConfig{SimulatedLatency: time.Hour}, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.GetTransactionData(ctx, domain.TimeRangeWeek, domain.TransactionFilter{})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = svc.GetTransactionHistory(ctx, ports.TransactionQuery{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMeanGapMinutes(t *testing.T) {
	ledger := []domain.Transaction{
		tx("c", "m1", "A", 1, domain.TransactionStatusCompleted, "", baseTime.Add(30*time.Minute)),
		tx("a", "m1", "A", 1, domain.TransactionStatusCompleted, "", baseTime),
		tx("b", "m1", "A", 1, domain.TransactionStatusCompleted, "", baseTime.Add(10*time.Minute)),
	}
	assert.InDelta(t, 15.0, meanGapMinutes(ledger), 1e-9)
	assert.Zero(t, meanGapMinutes(ledger[:1]))
}

func TestBootstrapLedger(t *testing.T) {
	store := memory.NewLedgerStore(0, baseTime.Add(10*time.Hour))
	gen := NewGenerator(GeneratorConfig{Seed: 5})

	require.NoError(t, BootstrapLedger(store, gen, 4, 30, zerolog.Nop()))
	require.True(t, store.Initialized())
	assert.Len(t, store.Roster(), 4)

	snap := store.Snapshot()
	assert.GreaterOrEqual(t, len(snap.Transactions), 4*30)
	assert.LessOrEqual(t, len(snap.Transactions), 4*30*3)
	assert.Equal(t, PreviousPeriodTotals(snap.Transactions, snap.Now), snap.Baseline)

	retained := store.Len()
	require.NoError(t, BootstrapLedger(store, gen, 4, 30, zerolog.Nop()))
	assert.Equal(t, retained, store.Len(), "second bootstrap is a no-op")
}
