package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeRange(t *testing.T) {
	tests := []struct {
		in     string
		want   TimeRange
		wantOK bool
	}{
		{"day", TimeRangeDay, true},
		{"week", TimeRangeWeek, true},
		{"month", TimeRangeMonth, true},
		{"year", TimeRangeYear, true},
		{"", TimeRangeWeek, false},
		{"decade", TimeRangeWeek, false},
		{"Day", TimeRangeWeek, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseTimeRange(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestTimeRange_WindowAndStart(t *testing.T) {
	now := time.Date(2025, 3, 17, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 24*time.Hour, TimeRangeDay.Window())
	assert.Equal(t, 7*24*time.Hour, TimeRangeWeek.Window())
	assert.Equal(t, 30*24*time.Hour, TimeRangeMonth.Window())
	assert.Equal(t, 365*24*time.Hour, TimeRangeYear.Window())
	assert.Equal(t, TimeRangeWeek.Window(), TimeRange("bogus").Window())

	assert.Equal(t, now.Add(-24*time.Hour), TimeRangeDay.Start(now))
	assert.Equal(t, TimeRangeMonth, TimeRange("month").OrDefault())
	assert.Equal(t, DefaultTimeRange, TimeRange("").OrDefault())
}

func TestTransactionStatus_IsValid(t *testing.T) {
	for _, s := range TransactionStatuses {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, TransactionStatus(StatusAll).IsValid())
	assert.False(t, TransactionStatus("settled").IsValid())
}

func TestTransaction_InWindow(t *testing.T) {
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.Add(7 * 24 * time.Hour)

	tx := Transaction{Timestamp: from}
	assert.True(t, tx.InWindow(from, to), "lower bound is inclusive")
	tx.Timestamp = to
	assert.True(t, tx.InWindow(from, to), "upper bound is inclusive")
	tx.Timestamp = from.Add(-time.Millisecond)
	assert.False(t, tx.InWindow(from, to))
}

func TestTransaction_JSONOmitsEmptyOptionalFields(t *testing.T) {
	raw, err := json.Marshal(Transaction{ID: "t1", Amount: 5000, Currency: Currency})
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "location")
	assert.NotContains(t, fields, "previousTxId")
	assert.Equal(t, "IQD", fields["currency"])
}

func TestTransactionFilter_HasStatus(t *testing.T) {
	assert.False(t, TransactionFilter{}.HasStatus())
	assert.False(t, TransactionFilter{Status: StatusAll}.HasStatus())
	assert.True(t, TransactionFilter{Status: "failed"}.HasStatus())
}

func TestTransactionFilter_Clone(t *testing.T) {
	minAmount := int64(100)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	f := TransactionFilter{MinAmount: &minAmount, StartDate: &start, Status: "pending"}

	c := f.Clone()
	require.NotNil(t, c.MinAmount)
	require.NotNil(t, c.StartDate)
	assert.Equal(t, f, c)

	*c.MinAmount = 999
	*c.StartDate = start.AddDate(1, 0, 0)
	assert.Equal(t, int64(100), *f.MinAmount)
	assert.Equal(t, start, *f.StartDate)
	assert.Nil(t, TransactionFilter{}.Clone().MaxAmount)
}

func TestEmptyTransactionData_SlicesPresent(t *testing.T) {
	raw, err := json.Marshal(EmptyTransactionData())
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	for _, key := range []string{"transactions", "volumeOverTime", "topMerchants", "activityByHour"} {
		assert.Equal(t, []interface{}{}, fields[key], key)
	}
	assert.Equal(t, float64(0), fields["totalVolume"])
}

func TestExportFormat(t *testing.T) {
	assert.True(t, ExportFormatCSV.IsValid())
	assert.True(t, ExportFormatJSON.IsValid())
	assert.False(t, ExportFormat("xml").IsValid())
	assert.Equal(t, "text/csv", ExportFormatCSV.ContentType())
	assert.Equal(t, "application/json", ExportFormatJSON.ContentType())
}

func TestControlMessage_KeepsRawFilters(t *testing.T) {
	var msg ControlMessage
	require.NoError(t, json.Unmarshal([]byte(`{"type":"updateFilters","filters":{"status":"failed","minAmount":null}}`), &msg))

	assert.Equal(t, ControlUpdateFilters, msg.Type)
	assert.JSONEq(t, `{"status":"failed","minAmount":null}`, string(msg.Filters))
}
