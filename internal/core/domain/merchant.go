package domain

import (
	"time"
)

// MerchantStatus represents the state of a merchant account.
type MerchantStatus string

const (
	MerchantStatusActive   MerchantStatus = "active"
	MerchantStatusInactive MerchantStatus = "inactive"
	MerchantStatusPending  MerchantStatus = "pending"
)

// MerchantCategories is the fixed set of categories synthesized on detail reads.
var MerchantCategories = []string{"Retail", "Food", "Electronics", "Services", "Healthcare"}

// Merchant is the per-merchant aggregate. Identity fields are fixed at creation;
// TransactionCount and TransactionVolume are derived from the retained ledger.
type Merchant struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	City              string    `json:"city"`
	JoinedDate        time.Time `json:"joinedDate"`
	TransactionCount  int64     `json:"transactionCount"`
	TransactionVolume int64     `json:"transactionVolume"`
}

// MerchantDetails extends Merchant with contact fields synthesized on read.
type MerchantDetails struct {
	Merchant
	ContactEmail string         `json:"contactEmail"`
	ContactPhone string         `json:"contactPhone"`
	Address      string         `json:"address"`
	Category     string         `json:"category"`
	Status       MerchantStatus `json:"status"`
}

// MerchantStats summarizes one merchant's retained activity.
type MerchantStats struct {
	TotalVolume            int64   `json:"totalVolume"`
	TotalTransactions      int64   `json:"totalTransactions"`
	ActiveUsers            int64   `json:"activeUsers"`
	AverageTransactionTime float64 `json:"averageTransactionTime"` // Mean minutes between transactions
	VolumeChange           float64 `json:"volumeChange"`
	TransactionChange      float64 `json:"transactionChange"`
	UserChange             float64 `json:"userChange"`
	TimeChange             float64 `json:"timeChange"`
}
