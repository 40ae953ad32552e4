package domain

import "time"

// PeriodTotals are the headline figures over one time window.
type PeriodTotals struct {
	TotalVolume        int64 `json:"totalVolume"`
	TotalTransactions  int64 `json:"totalTransactions"`
	ActiveUsers        int64 `json:"activeUsers"`
	FailedTransactions int64 `json:"failedTransactions"`
}

// VolumePoint is one zero-filled bucket of the volume series.
type VolumePoint struct {
	Time   time.Time `json:"time"`
	Volume int64     `json:"volume"`
}

// ActivityCell is one cell of the activity heatmap. The meaning of Day and
// Hour depends on the time range the grid was built for.
type ActivityCell struct {
	Day   int `json:"day"`
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// TransactionData is the full analytics bundle for the dashboard.
type TransactionData struct {
	Transactions []Transaction `json:"transactions"`
	PeriodTotals
	VolumeChange      float64        `json:"volumeChange"`
	TransactionChange float64        `json:"transactionChange"`
	UserChange        float64        `json:"userChange"`
	FailedChange      float64        `json:"failedChange"`
	VolumeOverTime    []VolumePoint  `json:"volumeOverTime"`
	TopMerchants      []Merchant     `json:"topMerchants"`
	ActivityByHour    []ActivityCell `json:"activityByHour"`
}

// EmptyTransactionData is the well-typed fallback bundle: all totals zero and
// every slice present but empty.
func EmptyTransactionData() TransactionData {
	return TransactionData{
		Transactions:   []Transaction{},
		VolumeOverTime: []VolumePoint{},
		TopMerchants:   []Merchant{},
		ActivityByHour: []ActivityCell{},
	}
}
