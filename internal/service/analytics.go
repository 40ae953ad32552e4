package service

import (
	"cmp"
	"slices"
	"time"

	"merchant-pulse/internal/core/domain"
	"merchant-pulse/internal/core/ports"
)

// baselineOffset is how far back the previous comparison period ends.
const baselineOffset = 7 * 24 * time.Hour

// AnalyticsOptions sizes the derived slices of a TransactionData bundle.
type AnalyticsOptions struct {
	RecentLimit  int // Newest transactions carried in the bundle
	TopMerchants int
}

// DefaultAnalyticsOptions matches the dashboard widgets.
func DefaultAnalyticsOptions() AnalyticsOptions {
	return AnalyticsOptions{RecentLimit: 40, TopMerchants: 5}
}

// Totals sums volume, count, distinct users and failures over txns.
func Totals(txns []domain.Transaction) domain.PeriodTotals {
	var t domain.PeriodTotals
	users := make(map[string]struct{})
	for i := range txns {
		t.TotalVolume += txns[i].Amount
		t.TotalTransactions++
		users[txns[i].UserID] = struct{}{}
		if txns[i].Status == domain.TransactionStatusFailed {
			t.FailedTransactions++
		}
	}
	t.ActiveUsers = int64(len(users))
	return t
}

// PeriodTotals computes Totals over [now - window(tr), now].
func PeriodTotals(txns []domain.Transaction, now time.Time, tr domain.TimeRange) domain.PeriodTotals {
	return Totals(between(txns, tr.OrDefault().Start(now), now, true))
}

// PreviousPeriodTotals computes Totals over the week that ended seven days
// before now, [now-14d, now-7d).
func PreviousPeriodTotals(txns []domain.Transaction, now time.Time) domain.PeriodTotals {
	end := now.Add(-baselineOffset)
	return Totals(between(txns, end.Add(-baselineOffset), end, false))
}

// PercentageChange returns the relative change from previous to current in
// percent. A zero previous yields 100 when current is positive, else 0.
func PercentageChange(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}

// VolumeOverTime buckets volume over the window ending at now. Day, week and
// month use 24 hourly, 7 daily and 30 daily buckets counted back from now;
// year uses the 12 calendar months ending with the month of now. Empty
// buckets are present with zero volume.
func VolumeOverTime(txns []domain.Transaction, tr domain.TimeRange, now time.Time) []domain.VolumePoint {
	tr = tr.OrDefault()
	if tr == domain.TimeRangeYear {
		return monthlyVolume(txns, now)
	}

	n, width := 7, 24*time.Hour
	switch tr {
	case domain.TimeRangeDay:
		n, width = 24, time.Hour
	case domain.TimeRangeMonth:
		n = 30
	}

	start := now.Add(-time.Duration(n) * width)
	points := make([]domain.VolumePoint, n)
	for i := range points {
		points[i].Time = start.Add(time.Duration(i) * width)
	}
	for i := range txns {
		ts := txns[i].Timestamp
		if ts.Before(start) || ts.After(now) {
			continue
		}
		// The bucket ending at now is closed on the right.
		b := min(int(ts.Sub(start)/width), n-1)
		points[b].Volume += txns[i].Amount
	}
	return points
}

func monthlyVolume(txns []domain.Transaction, now time.Time) []domain.VolumePoint {
	now = now.UTC()
	first := time.Date(now.Year(), now.Month()-11, 1, 0, 0, 0, 0, time.UTC)
	points := make([]domain.VolumePoint, 12)
	for i := range points {
		points[i].Time = first.AddDate(0, i, 0)
	}
	for i := range txns {
		ts := txns[i].Timestamp.UTC()
		if ts.Before(first) || ts.After(now) {
			continue
		}
		b := (ts.Year()-first.Year())*12 + int(ts.Month()) - int(first.Month())
		if b >= 0 && b < len(points) {
			points[b].Volume += txns[i].Amount
		}
	}
	return points
}

// ActivityByHour counts transactions in the window ending at now into a
// zero-initialised grid:
//
//	day    24 cells, Hour = hour of day on the calendar day of now, Day = weekday of now
//	week   7x24 cells, Day = weekday (0 = Sunday), Hour = hour of day
//	month  30 cells for the trailing 30 dates, Day = day of month
//	year   52 cells, Day = week of year since Jan 1 (clamped to 51)
func ActivityByHour(txns []domain.Transaction, tr domain.TimeRange, now time.Time) []domain.ActivityCell {
	now = now.UTC()
	switch tr.OrDefault() {
	case domain.TimeRangeDay:
		return dayActivity(txns, now)
	case domain.TimeRangeMonth:
		return monthActivity(txns, now)
	case domain.TimeRangeYear:
		return yearActivity(txns, now)
	default:
		return weekActivity(txns, now)
	}
}

func dayActivity(txns []domain.Transaction, now time.Time) []domain.ActivityCell {
	today := now.Truncate(24 * time.Hour)
	cells := make([]domain.ActivityCell, 24)
	for h := range cells {
		cells[h] = domain.ActivityCell{Day: int(now.Weekday()), Hour: h}
	}
	for i := range txns {
		ts := txns[i].Timestamp.UTC()
		if ts.Before(today) || ts.After(now) {
			continue
		}
		cells[ts.Hour()].Count++
	}
	return cells
}

func weekActivity(txns []domain.Transaction, now time.Time) []domain.ActivityCell {
	start := domain.TimeRangeWeek.Start(now)
	cells := make([]domain.ActivityCell, 7*24)
	for d := 0; d < 7; d++ {
		for h := 0; h < 24; h++ {
			cells[d*24+h] = domain.ActivityCell{Day: d, Hour: h}
		}
	}
	for i := range txns {
		ts := txns[i].Timestamp.UTC()
		if ts.Before(start) || ts.After(now) {
			continue
		}
		cells[int(ts.Weekday())*24+ts.Hour()].Count++
	}
	return cells
}

func monthActivity(txns []domain.Transaction, now time.Time) []domain.ActivityCell {
	today := now.Truncate(24 * time.Hour)
	first := today.AddDate(0, 0, -29)
	cells := make([]domain.ActivityCell, 30)
	for i := range cells {
		cells[i] = domain.ActivityCell{Day: first.AddDate(0, 0, i).Day()}
	}
	for i := range txns {
		ts := txns[i].Timestamp.UTC()
		if ts.Before(first) || ts.After(now) {
			continue
		}
		cells[int(ts.Sub(first)/(24*time.Hour))].Count++
	}
	return cells
}

func yearActivity(txns []domain.Transaction, now time.Time) []domain.ActivityCell {
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	cells := make([]domain.ActivityCell, 52)
	for w := range cells {
		cells[w] = domain.ActivityCell{Day: w}
	}
	for i := range txns {
		ts := txns[i].Timestamp.UTC()
		if ts.Before(yearStart) || ts.After(now) {
			continue
		}
		w := min(int(ts.Sub(yearStart)/(7*24*time.Hour)), 51)
		cells[w].Count++
	}
	return cells
}

// TopMerchants ranks merchants by volume over txns, largest first, ties by
// id. City and join date come from known when present.
func TopMerchants(txns []domain.Transaction, known []domain.Merchant, n int) []domain.Merchant {
	meta := make(map[string]domain.Merchant, len(known))
	for _, m := range known {
		meta[m.ID] = m
	}

	agg := make(map[string]*domain.Merchant)
	for i := range txns {
		tx := &txns[i]
		m, ok := agg[tx.MerchantID]
		if !ok {
			m = &domain.Merchant{ID: tx.MerchantID, Name: tx.MerchantName, JoinedDate: time.Unix(0, 0).UTC()}
			if k, found := meta[tx.MerchantID]; found {
				m.City = k.City
				m.JoinedDate = k.JoinedDate
			}
			agg[tx.MerchantID] = m
		}
		m.TransactionCount++
		m.TransactionVolume += tx.Amount
	}

	out := make([]domain.Merchant, 0, len(agg))
	for _, m := range agg {
		out = append(out, *m)
	}
	slices.SortFunc(out, func(a, b domain.Merchant) int {
		if c := cmp.Compare(b.TransactionVolume, a.TransactionVolume); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// ComputeTransactionData builds the analytics bundle over txns, which must
// already be filtered and newest first. Deltas compare against baseline.
func ComputeTransactionData(
	txns []domain.Transaction,
	known []domain.Merchant,
	baseline domain.PeriodTotals,
	now time.Time,
	tr domain.TimeRange,
	opts AnalyticsOptions,
) domain.TransactionData {
	tr = tr.OrDefault()
	current := PeriodTotals(txns, now, tr)

	recent := txns
	if opts.RecentLimit > 0 && len(recent) > opts.RecentLimit {
		recent = recent[:opts.RecentLimit]
	}

	return domain.TransactionData{
		Transactions:      append(make([]domain.Transaction, 0, len(recent)), recent...),
		PeriodTotals:      current,
		VolumeChange:      PercentageChange(float64(current.TotalVolume), float64(baseline.TotalVolume)),
		TransactionChange: PercentageChange(float64(current.TotalTransactions), float64(baseline.TotalTransactions)),
		UserChange:        PercentageChange(float64(current.ActiveUsers), float64(baseline.ActiveUsers)),
		FailedChange:      PercentageChange(float64(current.FailedTransactions), float64(baseline.FailedTransactions)),
		VolumeOverTime:    VolumeOverTime(txns, tr, now),
		TopMerchants:      TopMerchants(between(txns, tr.Start(now), now, true), known, opts.TopMerchants),
		ActivityByHour:    ActivityByHour(txns, tr, now),
	}
}

// AnalyzeSnapshot narrows the snapshot to the window of tr and to filter,
// then builds the analytics bundle at the snapshot clock.
func AnalyzeSnapshot(snap ports.LedgerSnapshot, tr domain.TimeRange, filter domain.TransactionFilter, opts AnalyticsOptions) domain.TransactionData {
	tr = tr.OrDefault()
	txns := FilterTransactions(SinceTransactions(snap.Transactions, tr.Start(snap.Now)), filter)
	return ComputeTransactionData(txns, snap.Merchants, snap.Baseline, snap.Now, tr, opts)
}

// between keeps entries in [from, to], or [from, to) when closed is false.
func between(txns []domain.Transaction, from, to time.Time, closed bool) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txns))
	for i := range txns {
		ts := txns[i].Timestamp
		if ts.Before(from) || ts.After(to) || (!closed && ts.Equal(to)) {
			continue
		}
		out = append(out, txns[i])
	}
	return out
}
