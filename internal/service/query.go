package service

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"merchant-pulse/internal/core/domain"
	"merchant-pulse/internal/core/ports"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Default page geometry when the caller sends none.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// FilterTransactions applies amount range, status, date range, merchant and
// location checks in that order. The input slice is never modified.
func FilterTransactions(txns []domain.Transaction, f domain.TransactionFilter) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txns))
	for i := range txns {
		if matchesTransaction(&txns[i], f) {
			out = append(out, txns[i])
		}
	}
	return out
}

func matchesTransaction(tx *domain.Transaction, f domain.TransactionFilter) bool {
	if !matchesAmountStatusLocation(tx, f) {
		return false
	}
	if f.StartDate != nil && tx.Timestamp.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && tx.Timestamp.After(*f.EndDate) {
		return false
	}
	if f.MerchantID != "" && tx.MerchantID != f.MerchantID {
		return false
	}
	return true
}

// matchesAmountStatusLocation is the subset of the filter the live feed gates on.
func matchesAmountStatusLocation(tx *domain.Transaction, f domain.TransactionFilter) bool {
	if f.MinAmount != nil && tx.Amount < *f.MinAmount {
		return false
	}
	if f.MaxAmount != nil && tx.Amount > *f.MaxAmount {
		return false
	}
	if f.HasStatus() && string(tx.Status) != f.Status {
		return false
	}
	if f.Location != "" && tx.Location != f.Location {
		return false
	}
	return true
}

// SinceTransactions keeps entries at or after from.
func SinceTransactions(txns []domain.Transaction, from time.Time) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txns))
	for i := range txns {
		if !txns[i].Timestamp.Before(from) {
			out = append(out, txns[i])
		}
	}
	return out
}

// SearchTransactions returns entries whose id, merchant name, user id,
// location or status contain query, ignoring case. An empty query matches all.
func SearchTransactions(txns []domain.Transaction, query string) []domain.Transaction {
	q := strings.ToLower(query)
	out := make([]domain.Transaction, 0, len(txns))
	for _, tx := range txns {
		for _, field := range []string{tx.ID, tx.MerchantName, tx.UserID, tx.Location, string(tx.Status)} {
			if strings.Contains(strings.ToLower(field), q) {
				out = append(out, tx)
				break
			}
		}
	}
	return out
}

// SortTransactions returns a stably sorted copy. A nil sort or an unknown
// field keeps the input order.
func SortTransactions(txns []domain.Transaction, s *domain.TransactionSort) []domain.Transaction {
	out := slices.Clone(txns)
	if s == nil {
		return out
	}
	compare := transactionComparator(s.Field)
	if compare == nil {
		return out
	}
	slices.SortStableFunc(out, directed(compare, s.Direction))
	return out
}

func transactionComparator(field domain.TransactionSortField) func(a, b domain.Transaction) int {
	// collate.Collator keeps scratch buffers, so each sort gets its own.
	c := collate.New(language.English)
	text := func(get func(domain.Transaction) string) func(a, b domain.Transaction) int {
		return func(a, b domain.Transaction) int { return c.CompareString(get(a), get(b)) }
	}
	optional := func(get func(domain.Transaction) string) func(a, b domain.Transaction) int {
		return func(a, b domain.Transaction) int {
			av, bv := get(a), get(b)
			if av == "" || bv == "" {
				return 0
			}
			return c.CompareString(av, bv)
		}
	}

	switch field {
	case domain.TxSortID:
		return text(func(t domain.Transaction) string { return t.ID })
	case domain.TxSortAmount:
		return func(a, b domain.Transaction) int { return cmp.Compare(a.Amount, b.Amount) }
	case domain.TxSortMerchantID:
		return text(func(t domain.Transaction) string { return t.MerchantID })
	case domain.TxSortMerchantName:
		return text(func(t domain.Transaction) string { return t.MerchantName })
	case domain.TxSortStatus:
		return text(func(t domain.Transaction) string { return string(t.Status) })
	case domain.TxSortTimestamp:
		return func(a, b domain.Transaction) int { return a.Timestamp.Compare(b.Timestamp) }
	case domain.TxSortUserID:
		return text(func(t domain.Transaction) string { return t.UserID })
	case domain.TxSortCurrency:
		return text(func(t domain.Transaction) string { return t.Currency })
	case domain.TxSortLocation:
		return optional(func(t domain.Transaction) string { return t.Location })
	case domain.TxSortPreviousTxID:
		return optional(func(t domain.Transaction) string { return t.PreviousTxID })
	}
	return nil
}

func directed[T any](compare func(a, b T) int, dir domain.SortDirection) func(a, b T) int {
	if dir == domain.SortDesc {
		return func(a, b T) int { return compare(b, a) }
	}
	return compare
}

// Paginate slices one 1-based page out of items. Pages past the end are
// empty. Non-positive inputs fall back to DefaultPage and DefaultPageSize.
func Paginate[T any](items []T, p domain.Pagination) (page []T, totalItems, totalPages, currentPage int) {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}

	totalItems = len(items)
	totalPages = totalItems / p.PageSize
	if totalItems%p.PageSize != 0 {
		totalPages++
	}

	// Compared by division so a huge page cannot overflow the offset.
	if p.Page-1 > totalItems/p.PageSize {
		return []T{}, totalItems, totalPages, p.Page
	}
	start := min((p.Page-1)*p.PageSize, totalItems)
	end := min(start+p.PageSize, totalItems)
	return append(make([]T, 0, end-start), items[start:end]...), totalItems, totalPages, p.Page
}

// PageTransactions wraps Paginate into a TransactionPage.
func PageTransactions(txns []domain.Transaction, p domain.Pagination) domain.TransactionPage {
	items, total, pages, current := Paginate(txns, p)
	return domain.TransactionPage{Transactions: items, TotalItems: total, TotalPages: pages, CurrentPage: current}
}

// PageMerchants wraps Paginate into a MerchantPage.
func PageMerchants(ms []domain.Merchant, p domain.Pagination) domain.MerchantPage {
	items, total, pages, current := Paginate(ms, p)
	return domain.MerchantPage{Merchants: items, TotalItems: total, TotalPages: pages, CurrentPage: current}
}

// merchantActivity summarises one merchant's transactions inside a window.
type merchantActivity struct {
	count    int64
	volume   int64
	statuses map[domain.TransactionStatus]struct{}
	earliest time.Time
	latest   time.Time
}

// ActivityIndex maps merchant id to its windowed activity.
type ActivityIndex map[string]*merchantActivity

// indexActivity groups the transactions at or after from by merchant.
func indexActivity(txns []domain.Transaction, from time.Time) ActivityIndex {
	idx := make(ActivityIndex)
	for i := range txns {
		tx := &txns[i]
		if tx.Timestamp.Before(from) {
			continue
		}
		a, ok := idx[tx.MerchantID]
		if !ok {
			a = &merchantActivity{
				statuses: make(map[domain.TransactionStatus]struct{}, len(domain.TransactionStatuses)),
				earliest: tx.Timestamp,
				latest:   tx.Timestamp,
			}
			idx[tx.MerchantID] = a
		}
		a.count++
		a.volume += tx.Amount
		a.statuses[tx.Status] = struct{}{}
		if tx.Timestamp.Before(a.earliest) {
			a.earliest = tx.Timestamp
		}
		if tx.Timestamp.After(a.latest) {
			a.latest = tx.Timestamp
		}
	}
	return idx
}

// WindowMerchants recomputes count and volume of each cached merchant over
// the transactions at or after from. Merchants with no activity in the window
// are kept with zero totals.
func WindowMerchants(merchants []domain.Merchant, txns []domain.Transaction, from time.Time) ([]domain.Merchant, ActivityIndex) {
	idx := indexActivity(txns, from)
	out := make([]domain.Merchant, len(merchants))
	for i, m := range merchants {
		m.TransactionCount, m.TransactionVolume = 0, 0
		if a, ok := idx[m.ID]; ok {
			m.TransactionCount = a.count
			m.TransactionVolume = a.volume
		}
		out[i] = m
	}
	return out, idx
}

// SearchMerchants keeps merchants whose name or city contains query, ignoring case.
func SearchMerchants(ms []domain.Merchant, query string) []domain.Merchant {
	q := strings.ToLower(query)
	out := make([]domain.Merchant, 0, len(ms))
	for _, m := range ms {
		if strings.Contains(strings.ToLower(m.Name), q) || strings.Contains(strings.ToLower(m.City), q) {
			out = append(out, m)
		}
	}
	return out
}

// FilterMerchants applies volume and count ranges, then the activity checks
// (status, start and end date) against idx, then exact name and city.
func FilterMerchants(ms []domain.Merchant, f domain.MerchantFilter, idx ActivityIndex) []domain.Merchant {
	out := make([]domain.Merchant, 0, len(ms))
	for _, m := range ms {
		if matchesMerchant(m, f, idx[m.ID]) {
			out = append(out, m)
		}
	}
	return out
}

func matchesMerchant(m domain.Merchant, f domain.MerchantFilter, a *merchantActivity) bool {
	if f.MinVolume != nil && m.TransactionVolume < *f.MinVolume {
		return false
	}
	if f.MaxVolume != nil && m.TransactionVolume > *f.MaxVolume {
		return false
	}
	if f.MinCount != nil && m.TransactionCount < *f.MinCount {
		return false
	}
	if f.MaxCount != nil && m.TransactionCount > *f.MaxCount {
		return false
	}
	if f.Status != "" && f.Status != domain.StatusAll {
		if a == nil {
			return false
		}
		if _, ok := a.statuses[domain.TransactionStatus(f.Status)]; !ok {
			return false
		}
	}
	if f.StartDate != nil && (a == nil || a.latest.Before(*f.StartDate)) {
		return false
	}
	if f.EndDate != nil && (a == nil || a.earliest.After(*f.EndDate)) {
		return false
	}
	if f.Name != "" && m.Name != f.Name {
		return false
	}
	if f.City != "" && m.City != f.City {
		return false
	}
	return true
}

// SortMerchants returns a stably sorted copy.
func SortMerchants(ms []domain.Merchant, s *domain.MerchantSort) []domain.Merchant {
	out := slices.Clone(ms)
	if s == nil {
		return out
	}
	compare := merchantComparator(s.Field)
	if compare == nil {
		return out
	}
	slices.SortStableFunc(out, directed(compare, s.Direction))
	return out
}

func merchantComparator(field domain.MerchantSortField) func(a, b domain.Merchant) int {
	c := collate.New(language.English)
	switch field {
	case domain.MerchantSortID:
		return func(a, b domain.Merchant) int { return c.CompareString(a.ID, b.ID) }
	case domain.MerchantSortName:
		return func(a, b domain.Merchant) int { return c.CompareString(a.Name, b.Name) }
	case domain.MerchantSortCity:
		return func(a, b domain.Merchant) int {
			if a.City == "" || b.City == "" {
				return 0
			}
			return c.CompareString(a.City, b.City)
		}
	case domain.MerchantSortJoinedDate:
		return func(a, b domain.Merchant) int { return a.JoinedDate.Compare(b.JoinedDate) }
	case domain.MerchantSortTransactionCount:
		return func(a, b domain.Merchant) int { return cmp.Compare(a.TransactionCount, b.TransactionCount) }
	case domain.MerchantSortTransactionVolume:
		return func(a, b domain.Merchant) int { return cmp.Compare(a.TransactionVolume, b.TransactionVolume) }
	}
	return nil
}

// ListTransactions runs a transaction query over the snapshot without
// paginating. The window start is ANDed with the filter's own start date.
func ListTransactions(snap ports.LedgerSnapshot, q ports.TransactionQuery) []domain.Transaction {
	filter := q.Filter
	windowStart := q.TimeRange.OrDefault().Start(snap.Now)
	if filter.StartDate == nil || filter.StartDate.Before(windowStart) {
		filter.StartDate = &windowStart
	}

	txns := snap.Transactions
	if strings.TrimSpace(q.Search) != "" {
		txns = SearchTransactions(txns, q.Search)
	}
	return SortTransactions(FilterTransactions(txns, filter), q.Sort)
}

// ListMerchants runs a merchant query over the snapshot without paginating.
func ListMerchants(snap ports.LedgerSnapshot, q ports.MerchantQuery) []domain.Merchant {
	merchants, idx := WindowMerchants(snap.Merchants, snap.Transactions, q.TimeRange.OrDefault().Start(snap.Now))
	if strings.TrimSpace(q.Search) != "" {
		merchants = SearchMerchants(merchants, q.Search)
	}
	return SortMerchants(FilterMerchants(merchants, q.Filter, idx), q.Sort)
}
