package domain

import "encoding/json"

// FeedState is the connection state of a live feed.
type FeedState string

const (
	FeedStateDisconnected FeedState = "disconnected"
	FeedStateConnecting   FeedState = "connecting"
	FeedStateConnected    FeedState = "connected"
)

// Feed message types delivered to the consumer callback.
const (
	FeedMessageNewTransaction = "newTransaction"
	FeedMessageError          = "error"
)

// FeedMessage is one event on the feed data channel. UpdatedData is only
// present when MatchesFilters is true.
type FeedMessage struct {
	Type           string           `json:"type"`
	Transaction    *Transaction     `json:"transaction,omitempty"`
	UpdatedData    *TransactionData `json:"updatedData,omitempty"`
	MatchesFilters bool             `json:"matchesFilters"`
	Code           string           `json:"code,omitempty"` // Error code of an error message
	Error          string           `json:"error,omitempty"`
}

// Control message types accepted by a feed handle.
const (
	ControlUpdateFilters         = "updateFilters"
	ControlUpdateTimeRange       = "updateTimeRange"
	ControlUpdateRefreshInterval = "updateRefreshInterval"
)

// ControlMessage adjusts the active parameters of a running feed. Filters is
// merged key by key into the active filter set.
type ControlMessage struct {
	Type      string          `json:"type"`
	Filters   json.RawMessage `json:"filters,omitempty"`
	TimeRange string          `json:"timeRange,omitempty"`
	// RefreshInterval is the new tick interval in milliseconds.
	RefreshInterval int64 `json:"refreshInterval,omitempty"`
}

// DashboardKey is the subscriber key used when no merchant scopes the feed.
const DashboardKey = "dashboard"
