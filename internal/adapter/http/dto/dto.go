package dto

import (
	"strings"
	"time"

	"merchant-pulse/internal/core/domain"
	"merchant-pulse/internal/core/ports"
)

// TransactionFilterQuery holds the transaction filter query parameters.
type TransactionFilterQuery struct {
	MinAmount  *int64 `form:"minAmount" binding:"omitempty,gte=0"`
	MaxAmount  *int64 `form:"maxAmount" binding:"omitempty,gte=0"`
	Status     string `form:"status" binding:"omitempty,oneof=all completed pending failed refunded"`
	StartDate  string `form:"startDate" binding:"omitempty,iso_date"`
	EndDate    string `form:"endDate" binding:"omitempty,iso_date"`
	MerchantID string `form:"merchantId" binding:"omitempty,safe_id"`
	Location   string `form:"location" binding:"omitempty,max=100"`
}

// ToFilter converts the parameters to a domain filter. Dates have already
// been validated by binding.
func (q TransactionFilterQuery) ToFilter() domain.TransactionFilter {
	return domain.TransactionFilter{
		MinAmount:  q.MinAmount,
		MaxAmount:  q.MaxAmount,
		Status:     q.Status,
		StartDate:  datePtr(q.StartDate),
		EndDate:    datePtr(q.EndDate),
		MerchantID: q.MerchantID,
		Location:   q.Location,
	}
}

// SortQuery holds the sort query parameters.
type SortQuery struct {
	SortField     string `form:"sortField" binding:"omitempty,max=50"`
	SortDirection string `form:"sortDirection" binding:"omitempty,oneof=asc desc"`
}

func (q SortQuery) direction() domain.SortDirection {
	if q.SortDirection == string(domain.SortDesc) {
		return domain.SortDesc
	}
	return domain.SortAsc
}

// PageQuery holds pagination parameters. Values below 1 fall back to defaults.
type PageQuery struct {
	Page     int `form:"page"`
	PageSize int `form:"pageSize" binding:"omitempty,max=1000"`
}

func (q PageQuery) toPagination() domain.Pagination {
	return domain.Pagination{Page: q.Page, PageSize: q.PageSize}
}

// DashboardQuery is the query of GET /api/v1/dashboard.
type DashboardQuery struct {
	TimeRange string `form:"timeRange" binding:"omitempty,time_range"`
	TransactionFilterQuery
}

// TransactionListQuery is the query of GET /api/v1/transactions.
type TransactionListQuery struct {
	TimeRange string `form:"timeRange" binding:"omitempty,time_range"`
	Search    string `form:"search" binding:"omitempty,max=200"`
	TransactionFilterQuery
	SortQuery
	PageQuery
}

var transactionSortFields = map[string]domain.TransactionSortField{
	"id":           domain.TxSortID,
	"amount":       domain.TxSortAmount,
	"merchantId":   domain.TxSortMerchantID,
	"merchantName": domain.TxSortMerchantName,
	"status":       domain.TxSortStatus,
	"timestamp":    domain.TxSortTimestamp,
	"userId":       domain.TxSortUserID,
	"currency":     domain.TxSortCurrency,
	"location":     domain.TxSortLocation,
	"previousTxId": domain.TxSortPreviousTxID,
}

// TransactionSort returns the requested ordering, nil when none was given or
// the field is unknown.
func (q SortQuery) TransactionSort() *domain.TransactionSort {
	field, ok := transactionSortFields[q.SortField]
	if !ok {
		return nil
	}
	return &domain.TransactionSort{Field: field, Direction: q.direction()}
}

// ToQuery converts the parameters to a service query.
func (q TransactionListQuery) ToQuery() ports.TransactionQuery {
	return ports.TransactionQuery{
		TimeRange:  domain.TimeRange(q.TimeRange).OrDefault(),
		Pagination: q.toPagination(),
		Filter:     q.ToFilter(),
		Sort:       q.TransactionSort(),
		Search:     strings.TrimSpace(q.Search),
	}
}

// MerchantFilterQuery holds the merchant filter query parameters. The volume
// bounds keep the minAmount/maxAmount names dashboards send.
type MerchantFilterQuery struct {
	MinVolume *int64 `form:"minAmount" binding:"omitempty,gte=0"`
	MaxVolume *int64 `form:"maxAmount" binding:"omitempty,gte=0"`
	MinCount  *int64 `form:"minCount" binding:"omitempty,gte=0"`
	MaxCount  *int64 `form:"maxCount" binding:"omitempty,gte=0"`
	Status    string `form:"status" binding:"omitempty,oneof=all completed pending failed refunded"`
	StartDate string `form:"startDate" binding:"omitempty,iso_date"`
	EndDate   string `form:"endDate" binding:"omitempty,iso_date"`
	Name      string `form:"name" binding:"omitempty,max=100"`
	City      string `form:"city" binding:"omitempty,max=100"`
}

// ToFilter converts the parameters to a domain filter.
func (q MerchantFilterQuery) ToFilter() domain.MerchantFilter {
	return domain.MerchantFilter{
		MinVolume: q.MinVolume,
		MaxVolume: q.MaxVolume,
		MinCount:  q.MinCount,
		MaxCount:  q.MaxCount,
		Status:    q.Status,
		StartDate: datePtr(q.StartDate),
		EndDate:   datePtr(q.EndDate),
		Name:      q.Name,
		City:      q.City,
	}
}

var merchantSortFields = map[string]domain.MerchantSortField{
	"id":                domain.MerchantSortID,
	"name":              domain.MerchantSortName,
	"city":              domain.MerchantSortCity,
	"joinedDate":        domain.MerchantSortJoinedDate,
	"transactionCount":  domain.MerchantSortTransactionCount,
	"transactionVolume": domain.MerchantSortTransactionVolume,
}

// MerchantSort returns the requested ordering, nil when none was given or the
// field is unknown.
func (q SortQuery) MerchantSort() *domain.MerchantSort {
	field, ok := merchantSortFields[q.SortField]
	if !ok {
		return nil
	}
	return &domain.MerchantSort{Field: field, Direction: q.direction()}
}

// MerchantListQuery is the query of GET /api/v1/merchants.
type MerchantListQuery struct {
	TimeRange string `form:"timeRange" binding:"omitempty,time_range"`
	Search    string `form:"search" binding:"omitempty,max=200"`
	MerchantFilterQuery
	SortQuery
	PageQuery
}

// ToQuery converts the parameters to a service query.
func (q MerchantListQuery) ToQuery() ports.MerchantQuery {
	return ports.MerchantQuery{
		TimeRange:  domain.TimeRange(q.TimeRange).OrDefault(),
		Pagination: q.toPagination(),
		Filter:     q.ToFilter(),
		Sort:       q.MerchantSort(),
		Search:     strings.TrimSpace(q.Search),
	}
}

// TransactionExportQuery is the query of GET /api/v1/export/transactions.
type TransactionExportQuery struct {
	Format        string `form:"format" binding:"omitempty,oneof=csv json"`
	TimeRange     string `form:"timeRange" binding:"omitempty,time_range"`
	TransactionID string `form:"transactionId" binding:"omitempty,safe_id"`
	TransactionFilterQuery
	SortQuery
}

// ToRequest converts the parameters to an export request. Format defaults to csv.
func (q TransactionExportQuery) ToRequest() ports.TransactionExportRequest {
	return ports.TransactionExportRequest{
		TimeRange:     domain.TimeRange(q.TimeRange).OrDefault(),
		Format:        exportFormat(q.Format),
		Filter:        q.ToFilter(),
		Sort:          q.TransactionSort(),
		MerchantID:    q.MerchantID,
		TransactionID: q.TransactionID,
	}
}

// MerchantExportQuery is the query of GET /api/v1/export/merchants.
type MerchantExportQuery struct {
	Format    string `form:"format" binding:"omitempty,oneof=csv json"`
	TimeRange string `form:"timeRange" binding:"omitempty,time_range"`
	MerchantFilterQuery
	SortQuery
}

// ToRequest converts the parameters to an export request. Format defaults to csv.
func (q MerchantExportQuery) ToRequest() ports.MerchantExportRequest {
	return ports.MerchantExportRequest{
		TimeRange: domain.TimeRange(q.TimeRange).OrDefault(),
		Format:    exportFormat(q.Format),
		Filter:    q.ToFilter(),
		Sort:      q.MerchantSort(),
	}
}

// FeedQuery is the query of GET /api/v1/feed. Intervals are in milliseconds.
type FeedQuery struct {
	TimeRange            string `form:"timeRange" binding:"omitempty,time_range"`
	MerchantID           string `form:"merchantId" binding:"omitempty,safe_id"`
	RefreshInterval      int64  `form:"refreshInterval" binding:"omitempty,min=100,max=60000"`
	ReconnectInterval    int64  `form:"reconnectInterval" binding:"omitempty,min=100,max=60000"`
	MaxReconnectAttempts int    `form:"maxReconnectAttempts" binding:"omitempty,min=1,max=20"`
	TransactionFilterQuery
}

// ToOptions converts the parameters to feed options without a callback.
func (q FeedQuery) ToOptions() ports.FeedOptions {
	filter := q.ToFilter()
	// The scope is carried by MerchantID, not by the filter.
	filter.MerchantID = ""
	return ports.FeedOptions{
		ReconnectInterval:    time.Duration(q.ReconnectInterval) * time.Millisecond,
		MaxReconnectAttempts: q.MaxReconnectAttempts,
		Filters:              filter,
		TimeRange:            domain.TimeRange(q.TimeRange).OrDefault(),
		MerchantID:           q.MerchantID,
		RefreshInterval:      time.Duration(q.RefreshInterval) * time.Millisecond,
	}
}

// UpdatesQuery is the query of GET /api/v1/updates.
type UpdatesQuery struct {
	MerchantID string `form:"merchantId" binding:"omitempty,safe_id"`
}

// ControlRequest is the body of POST /api/v1/feed/:id/control. The raw body
// is forwarded to the feed once the type is known.
type ControlRequest struct {
	Type string `json:"type" binding:"required,oneof=updateFilters updateTimeRange updateRefreshInterval"`
}

// ControlAcceptedResponse acknowledges a queued control message.
type ControlAcceptedResponse struct {
	FeedID string `json:"feedId"`
	Type   string `json:"type"`
}

func exportFormat(s string) domain.ExportFormat {
	if s == "" {
		return domain.ExportFormatCSV
	}
	return domain.ExportFormat(s)
}

func datePtr(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil
	}
	return &t
}
