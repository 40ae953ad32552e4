package memory

import (
	"context"

	"merchant-pulse/pkg/apperror"
)

// HealthCheck implements ports.HealthChecker for the ledger store. The ledger
// is healthy once its backfill has completed.
type HealthCheck struct {
	store *LedgerStore
}

// NewHealthCheck creates a ledger health checker.
func NewHealthCheck(store *LedgerStore) *HealthCheck {
	return &HealthCheck{store: store}
}

// Ping reports ErrLedgerNotReady until the store is initialized.
func (h *HealthCheck) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !h.store.Initialized() {
		return apperror.ErrLedgerNotReady()
	}
	return nil
}

// Name returns the dependency name.
func (h *HealthCheck) Name() string {
	return "ledger"
}
