package ports

import (
	"context"
	"time"

	"merchant-pulse/internal/core/domain"
)

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

// --- Service Ports (Business Logic) ---

// DashboardService answers the read queries of the analytics dashboard.
// Lookups that find nothing return (nil, nil).
type DashboardService interface {
	GetTransactionData(ctx context.Context, timeRange domain.TimeRange, filter domain.TransactionFilter) (*domain.TransactionData, error)
	GetTransactionHistory(ctx context.Context, q TransactionQuery) (*domain.TransactionPage, error)
	GetMerchants(ctx context.Context, q MerchantQuery) (*domain.MerchantPage, error)
	GetTransactionByID(ctx context.Context, id string) (*domain.Transaction, error)
	GetMerchantByID(ctx context.Context, id string) (*domain.MerchantDetails, error)
	GetMerchantStats(ctx context.Context, merchantID string) (*domain.MerchantStats, error)
}

// TransactionQuery holds validated input for a transaction listing.
type TransactionQuery struct {
	TimeRange  domain.TimeRange
	Pagination domain.Pagination
	Filter     domain.TransactionFilter
	Sort       *domain.TransactionSort
	Search     string // Blank = no search
}

// MerchantQuery holds validated input for a merchant listing.
type MerchantQuery struct {
	TimeRange  domain.TimeRange
	Pagination domain.Pagination
	Filter     domain.MerchantFilter
	Sort       *domain.MerchantSort
	Search     string
}

// ExportService serializes ledger views for download.
type ExportService interface {
	ExportTransactions(ctx context.Context, req TransactionExportRequest) ([]byte, error)
	ExportMerchants(ctx context.Context, req MerchantExportRequest) ([]byte, error)
}

// TransactionExportRequest holds validated input for a transaction export.
type TransactionExportRequest struct {
	TimeRange     domain.TimeRange
	Format        domain.ExportFormat
	Filter        domain.TransactionFilter
	Sort          *domain.TransactionSort
	MerchantID    string // Optional scope
	TransactionID string // Optional scope
}

// MerchantExportRequest holds validated input for a merchant export.
type MerchantExportRequest struct {
	TimeRange domain.TimeRange
	Format    domain.ExportFormat
	Filter    domain.MerchantFilter
	Sort      *domain.MerchantSort
}

// FeedService runs simulated live feeds and the update subscription hub.
type FeedService interface {
	// Connect starts a feed, closing any previously active one.
	Connect(ctx context.Context, opts FeedOptions) (FeedHandle, error)
	// Lookup returns a running feed by id.
	Lookup(id string) (FeedHandle, bool)
	// Subscribe registers fn for analytics updates keyed by merchantID, or
	// the dashboard key when merchantID is empty. It returns the subscription id.
	Subscribe(merchantID string, fn func(domain.TransactionData)) string
	Unsubscribe(merchantID, subscriptionID string)
	// CloseAll stops every running feed and waits for them to exit.
	CloseAll()
}

// FeedOptions configures one live feed. Zero durations and counts fall back
// to the service defaults.
type FeedOptions struct {
	OnMessage            func(domain.FeedMessage)
	ReconnectInterval    time.Duration
	MaxReconnectAttempts int
	Filters              domain.TransactionFilter
	TimeRange            domain.TimeRange
	MerchantID           string // Scopes generation to one merchant
	RefreshInterval      time.Duration
}

// FeedHandle controls a running feed.
type FeedHandle interface {
	ID() string
	// Send applies a JSON control message. Malformed payloads are ignored.
	Send(payload []byte)
	// Close stops the feed. No tick starts after Close returns.
	Close()
	// Done is closed once the feed goroutine has exited.
	Done() <-chan struct{}
	State() domain.FeedState
}
