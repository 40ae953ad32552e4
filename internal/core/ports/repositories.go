package ports

import (
	"context"
	"time"

	"merchant-pulse/internal/core/domain"
)

// TransactionGenerator fabricates synthetic, internally consistent transactions.
type TransactionGenerator interface {
	// Generate builds one transaction for the merchant at the given instant.
	// It never reads the wall clock.
	Generate(merchantID, merchantName string, at time.Time) domain.Transaction
	// BackfillDay builds the 1-3 historical transactions a merchant made on the
	// calendar day starting at dayStart.
	BackfillDay(merchant domain.Merchant, dayStart time.Time) []domain.Transaction
}

// LedgerStore owns the transaction sequence, the merchant aggregate cache and
// the simulated clock. It is the only mutable shared state in the process.
type LedgerStore interface {
	// Initialize backfills lookbackDays of history for every roster merchant.
	// Calling it again once the ledger is populated is a no-op.
	Initialize(roster []domain.Merchant, lookbackDays int, gen TransactionGenerator) error
	Initialized() bool

	// Append inserts at the head and folds the entry into the aggregate cache.
	Append(tx domain.Transaction)
	// EvictOverflow trims the oldest entries beyond capacity and reverses their
	// effect on the aggregate cache. It returns the evicted entries.
	EvictOverflow(capacity int) []domain.Transaction
	// Tick advances the simulated clock by step, builds a transaction at the new
	// instant and records it (append + bounded eviction) under one write. The
	// returned snapshot is captured inside that write.
	Tick(step time.Duration, build func(now time.Time) domain.Transaction) (domain.Transaction, LedgerSnapshot)

	// Snapshot returns a stable, read-only view of the ledger.
	Snapshot() LedgerSnapshot
	FindTransaction(id string) (*domain.Transaction, bool)
	RosterMerchant(id string) (domain.Merchant, bool)
	Roster() []domain.Merchant
	Now() time.Time

	// SetBaseline fixes the previous-period totals percentage deltas compare against.
	SetBaseline(baseline domain.PeriodTotals)
}

// LedgerSnapshot is a consistent view of the ledger at one instant. The
// Transactions slice is shared with the store and must not be mutated.
type LedgerSnapshot struct {
	Transactions []domain.Transaction // Newest first
	Merchants    []domain.Merchant    // Aggregate cache, roster order
	Now          time.Time            // Simulated clock
	Baseline     domain.PeriodTotals
	Version      uint64 // Incremented on every write
}

// ExportCache stores serialized exports keyed by ledger version and parameters.
type ExportCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // Returns nil, nil on miss
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
