package domain

import "time"

// TransactionFilter is the AND-combined predicate set over ledger entries.
// Every field is optional; zero values disable the corresponding check.
type TransactionFilter struct {
	MinAmount  *int64     `json:"minAmount,omitempty"`
	MaxAmount  *int64     `json:"maxAmount,omitempty"`
	Status     string     `json:"status,omitempty"` // "" or "all" disables the check
	StartDate  *time.Time `json:"startDate,omitempty"`
	EndDate    *time.Time `json:"endDate,omitempty"`
	MerchantID string     `json:"merchantId,omitempty"`
	Location   string     `json:"location,omitempty"`
}

// HasStatus reports whether the filter constrains status.
func (f TransactionFilter) HasStatus() bool {
	return f.Status != "" && f.Status != StatusAll
}

// MerchantFilter is the AND-combined predicate set over merchant aggregates.
type MerchantFilter struct {
	MinVolume *int64     `json:"minVolume,omitempty"`
	MaxVolume *int64     `json:"maxVolume,omitempty"`
	MinCount  *int64     `json:"minCount,omitempty"`
	MaxCount  *int64     `json:"maxCount,omitempty"`
	Status    string     `json:"status,omitempty"` // merchant has a transaction with this status in window
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	Name      string     `json:"name,omitempty"`
	City      string     `json:"city,omitempty"`
}

// SortDirection flips comparator sign.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// TransactionSortField enumerates the sortable transaction fields.
type TransactionSortField string

const (
	TxSortID           TransactionSortField = "id"
	TxSortAmount       TransactionSortField = "amount"
	TxSortMerchantID   TransactionSortField = "merchantId"
	TxSortMerchantName TransactionSortField = "merchantName"
	TxSortStatus       TransactionSortField = "status"
	TxSortTimestamp    TransactionSortField = "timestamp"
	TxSortUserID       TransactionSortField = "userId"
	TxSortCurrency     TransactionSortField = "currency"
	TxSortLocation     TransactionSortField = "location"
	TxSortPreviousTxID TransactionSortField = "previousTxId"
)

// TransactionSort is an optional ordering; a nil *TransactionSort keeps ledger order.
type TransactionSort struct {
	Field     TransactionSortField `json:"field"`
	Direction SortDirection        `json:"direction"`
}

// MerchantSortField enumerates the sortable merchant fields.
type MerchantSortField string

const (
	MerchantSortID                MerchantSortField = "id"
	MerchantSortName              MerchantSortField = "name"
	MerchantSortCity              MerchantSortField = "city"
	MerchantSortJoinedDate        MerchantSortField = "joinedDate"
	MerchantSortTransactionCount  MerchantSortField = "transactionCount"
	MerchantSortTransactionVolume MerchantSortField = "transactionVolume"
)

// MerchantSort is an optional merchant ordering.
type MerchantSort struct {
	Field     MerchantSortField `json:"field"`
	Direction SortDirection     `json:"direction"`
}

// Pagination is a 1-based page request.
type Pagination struct {
	Page     int
	PageSize int
}

// TransactionPage is one page of a filtered, sorted transaction listing.
type TransactionPage struct {
	Transactions []Transaction `json:"transactions"`
	TotalItems   int           `json:"totalItems"`
	TotalPages   int           `json:"totalPages"`
	CurrentPage  int           `json:"currentPage"`
}

// MerchantPage is one page of a filtered, sorted merchant listing.
type MerchantPage struct {
	Merchants   []Merchant `json:"merchants"`
	TotalItems  int        `json:"totalItems"`
	TotalPages  int        `json:"totalPages"`
	CurrentPage int        `json:"currentPage"`
}

// Clone returns a copy that shares no pointers with f.
func (f TransactionFilter) Clone() TransactionFilter {
	out := f
	if f.MinAmount != nil {
		v := *f.MinAmount
		out.MinAmount = &v
	}
	if f.MaxAmount != nil {
		v := *f.MaxAmount
		out.MaxAmount = &v
	}
	if f.StartDate != nil {
		v := *f.StartDate
		out.StartDate = &v
	}
	if f.EndDate != nil {
		v := *f.EndDate
		out.EndDate = &v
	}
	return out
}
