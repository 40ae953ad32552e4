package domain

import (
	"time"
)

// Currency is the single currency every ledger amount is denominated in.
const Currency = "IQD"

// TransactionStatus represents the settlement state of a transaction.
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusRefunded  TransactionStatus = "refunded"
)

// StatusAll is the filter sentinel that disables status matching.
const StatusAll = "all"

// TransactionStatuses lists every status in generation order.
var TransactionStatuses = []TransactionStatus{
	TransactionStatusCompleted,
	TransactionStatusPending,
	TransactionStatusFailed,
	TransactionStatusRefunded,
}

// IsValid reports whether s is one of the four known statuses.
func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionStatusCompleted, TransactionStatusPending, TransactionStatusFailed, TransactionStatusRefunded:
		return true
	}
	return false
}

// Cities is the fixed set of locations transactions and merchants are drawn from.
var Cities = []string{"Baghdad", "Erbil", "Basra", "Mosul", "Najaf"}

// Transaction is an immutable ledger entry. Once appended to the ledger it is
// never mutated, only evicted or copied into derived views.
type Transaction struct {
	ID           string            `json:"id"`
	Amount       int64             `json:"amount"` // Whole IQD, no minor unit
	MerchantID   string            `json:"merchantId"`
	MerchantName string            `json:"merchantName"` // Copied at creation, never re-synced
	Status       TransactionStatus `json:"status"`
	Timestamp    time.Time         `json:"timestamp"`
	UserID       string            `json:"userId"`
	Currency     string            `json:"currency"`
	Location     string            `json:"location,omitempty"`
	PreviousTxID string            `json:"previousTxId,omitempty"` // Weak reference, may dangle after eviction
}

// InWindow reports whether the transaction timestamp lies in [from, to].
func (t *Transaction) InWindow(from, to time.Time) bool {
	return !t.Timestamp.Before(from) && !t.Timestamp.After(to)
}
