package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"merchant-pulse/internal/core/domain"
	"merchant-pulse/internal/core/ports"

	"github.com/rs/zerolog"
)

// DashboardConfig tunes the read path.
type DashboardConfig struct {
	// SimulatedLatency delays every read after the snapshot is taken.
	SimulatedLatency time.Duration
	Analytics        AnalyticsOptions
}

// dashboardService implements ports.DashboardService.
type dashboardService struct {
	store ports.LedgerStore
	cfg   DashboardConfig
	log   zerolog.Logger

	compute func(ports.LedgerSnapshot, domain.TimeRange, domain.TransactionFilter, AnalyticsOptions) domain.TransactionData
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(store ports.LedgerStore, cfg DashboardConfig, log zerolog.Logger) ports.DashboardService {
	return &dashboardService{
		store:   store,
		cfg:     cfg,
		log:     log,
		compute: AnalyzeSnapshot,
	}
}

// GetTransactionData returns the analytics bundle for the window and filter.
// Failures inside the computation yield the empty bundle, never an error.
func (s *dashboardService) GetTransactionData(ctx context.Context, timeRange domain.TimeRange, filter domain.TransactionFilter) (*domain.TransactionData, error) {
	snap := s.store.Snapshot()
	if err := s.delay(ctx); err != nil {
		return nil, err
	}

	data := s.analyze(snap, timeRange, filter)
	return &data, nil
}

func (s *dashboardService) analyze(snap ports.LedgerSnapshot, tr domain.TimeRange, filter domain.TransactionFilter) (data domain.TransactionData) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().
				Interface("panic", r).
				Str("time_range", string(tr)).
				Msg("Analytics computation failed, serving empty bundle")
			data = domain.EmptyTransactionData()
		}
	}()
	return s.compute(snap, tr, filter, s.cfg.Analytics)
}

// GetTransactionHistory returns one page of the windowed ledger. A non-blank
// search runs first, then the filter, the sort and pagination.
func (s *dashboardService) GetTransactionHistory(ctx context.Context, q ports.TransactionQuery) (*domain.TransactionPage, error) {
	snap := s.store.Snapshot()
	if err := s.delay(ctx); err != nil {
		return nil, err
	}

	page := PageTransactions(ListTransactions(snap, q), q.Pagination)
	return &page, nil
}

// GetMerchants returns one page of merchants with totals recomputed over the window.
func (s *dashboardService) GetMerchants(ctx context.Context, q ports.MerchantQuery) (*domain.MerchantPage, error) {
	snap := s.store.Snapshot()
	if err := s.delay(ctx); err != nil {
		return nil, err
	}

	page := PageMerchants(ListMerchants(snap, q), q.Pagination)
	return &page, nil
}

// GetTransactionByID returns nil, nil when no retained transaction has the id.
func (s *dashboardService) GetTransactionByID(ctx context.Context, id string) (*domain.Transaction, error) {
	tx, ok := s.store.FindTransaction(id)
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return tx, nil
}

// GetMerchantByID returns the merchant with synthesized contact details, or
// nil, nil when the id is neither on the roster nor in the aggregate cache.
func (s *dashboardService) GetMerchantByID(ctx context.Context, id string) (*domain.MerchantDetails, error) {
	snap := s.store.Snapshot()
	if err := s.delay(ctx); err != nil {
		return nil, err
	}

	m, found := s.store.RosterMerchant(id)
	for _, cached := range snap.Merchants {
		if cached.ID == id {
			m, found = cached, true
			break
		}
	}
	if !found {
		return nil, nil
	}

	return synthesizeDetails(m), nil
}

// synthesizeDetails derives contact fields from the merchant id so repeated
// reads agree.
func synthesizeDetails(m domain.Merchant) *domain.MerchantDetails {
	h := fnv.New32a()
	_, _ = h.Write([]byte(m.ID))
	sum := h.Sum32()

	city := m.City
	if city == "" {
		city = domain.Cities[0]
	}

	return &domain.MerchantDetails{
		Merchant:     m,
		ContactEmail: fmt.Sprintf("contact@%s.iq", strings.Join(strings.Fields(strings.ToLower(m.Name)), "")),
		ContactPhone: fmt.Sprintf("+964 %07d", sum%10000000),
		Address:      "123 Main Street, " + city,
		Category:     domain.MerchantCategories[sum%uint32(len(domain.MerchantCategories))],
		Status:       domain.MerchantStatusActive,
	}
}

// GetMerchantStats summarizes every retained transaction of the merchant.
// Deltas compare the last seven days with the seven before. Returns nil, nil
// for a merchant with no history and no roster entry.
func (s *dashboardService) GetMerchantStats(ctx context.Context, merchantID string) (*domain.MerchantStats, error) {
	snap := s.store.Snapshot()
	if err := s.delay(ctx); err != nil {
		return nil, err
	}

	txns := FilterTransactions(snap.Transactions, domain.TransactionFilter{MerchantID: merchantID})
	if len(txns) == 0 {
		if _, ok := s.store.RosterMerchant(merchantID); !ok {
			return nil, nil
		}
	}

	all := Totals(txns)
	currentStart := snap.Now.Add(-baselineOffset)
	current := between(txns, currentStart, snap.Now, true)
	previous := between(txns, currentStart.Add(-baselineOffset), currentStart, false)
	curTotals, prevTotals := Totals(current), Totals(previous)
	curGap, prevGap := meanGapMinutes(current), meanGapMinutes(previous)

	return &domain.MerchantStats{
		TotalVolume:            all.TotalVolume,
		TotalTransactions:      all.TotalTransactions,
		ActiveUsers:            all.ActiveUsers,
		AverageTransactionTime: curGap,
		VolumeChange:           PercentageChange(float64(curTotals.TotalVolume), float64(prevTotals.TotalVolume)),
		TransactionChange:      PercentageChange(float64(curTotals.TotalTransactions), float64(prevTotals.TotalTransactions)),
		UserChange:             PercentageChange(float64(curTotals.ActiveUsers), float64(prevTotals.ActiveUsers)),
		TimeChange:             PercentageChange(curGap, prevGap),
	}, nil
}

// meanGapMinutes is the average spacing of txns in minutes, 0 below two entries.
func meanGapMinutes(txns []domain.Transaction) float64 {
	if len(txns) < 2 {
		return 0
	}
	first, last := txns[0].Timestamp, txns[0].Timestamp
	for _, tx := range txns[1:] {
		if tx.Timestamp.Before(first) {
			first = tx.Timestamp
		}
		if tx.Timestamp.After(last) {
			last = tx.Timestamp
		}
	}
	return last.Sub(first).Minutes() / float64(len(txns)-1)
}

// delay simulates network latency after the snapshot has been taken.
func (s *dashboardService) delay(ctx context.Context) error {
	if s.cfg.SimulatedLatency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.cfg.SimulatedLatency)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// BootstrapLedger generates the merchant roster, backfills the ledger and
// fixes the previous-period baseline at the boot-time clock. It is a no-op on
// an initialized store.
func BootstrapLedger(store ports.LedgerStore, gen *Generator, merchants, lookbackDays int, log zerolog.Logger) error {
	if store.Initialized() {
		return nil
	}

	started := time.Now()
	roster := gen.Roster(merchants, store.Now())
	if err := store.Initialize(roster, lookbackDays, gen); err != nil {
		return fmt.Errorf("initialize ledger: %w", err)
	}

	snap := store.Snapshot()
	baseline := PreviousPeriodTotals(snap.Transactions, snap.Now)
	store.SetBaseline(baseline)

	log.Info().
		Int("merchants", len(roster)).
		Int("lookback_days", lookbackDays).
		Int("retained", len(snap.Transactions)).
		Int64("baseline_volume", baseline.TotalVolume).
		Time("simulated_now", snap.Now).
		Dur("took", time.Since(started)).
		Msg("Ledger initialized")
	return nil
}
