package memory

import (
	"sort"
	"sync"
	"time"

	"merchant-pulse/internal/core/domain"
	"merchant-pulse/internal/core/ports"
)

// LedgerStore implements ports.LedgerStore in process memory.
//
// The transaction slice is copy-on-write: writers publish a new slice header
// and never modify elements of a published backing array, so a snapshot stays
// valid after the lock is released without copying on read.
type LedgerStore struct {
	mu          sync.RWMutex
	txns        []domain.Transaction // Newest first
	cache       map[string]*domain.Merchant
	roster      map[string]domain.Merchant
	rosterOrder []string
	capacity    int // 0 = unbounded
	now         time.Time
	baseline    domain.PeriodTotals
	version     uint64
	initialized bool
}

// NewLedgerStore creates an empty store whose simulated clock starts at start.
func NewLedgerStore(capacity int, start time.Time) *LedgerStore {
	return &LedgerStore{
		cache:    make(map[string]*domain.Merchant),
		roster:   make(map[string]domain.Merchant),
		capacity: capacity,
		now:      start.UTC(),
	}
}

// Initialize backfills lookbackDays of history per roster merchant, sorts the
// sequence newest first, rebuilds the aggregate cache and applies retention.
func (s *LedgerStore) Initialize(roster []domain.Merchant, lookbackDays int, gen ports.TransactionGenerator) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	s.rosterOrder = s.rosterOrder[:0]
	for _, m := range roster {
		m.TransactionCount = 0
		m.TransactionVolume = 0
		s.roster[m.ID] = m
		s.rosterOrder = append(s.rosterOrder, m.ID)
	}

	today := s.now.Truncate(24 * time.Hour)
	var txns []domain.Transaction
	for _, m := range roster {
		for daysBack := 0; daysBack < lookbackDays; daysBack++ {
			txns = append(txns, gen.BackfillDay(m, today.AddDate(0, 0, -daysBack))...)
		}
	}

	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Timestamp.After(txns[j].Timestamp)
	})

	s.txns = txns
	for i := range s.txns {
		s.addToCache(&s.txns[i])
	}
	s.evictLocked(s.capacity)

	s.initialized = true
	s.version++
	return nil
}

// Initialized reports whether the backfill has completed.
func (s *LedgerStore) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// Append inserts tx at the head of the sequence and updates its merchant aggregate.
func (s *LedgerStore) Append(tx domain.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendLocked(tx)
}

// EvictOverflow removes entries beyond capacity from the tail. A capacity of
// zero or less means unbounded and evicts nothing.
func (s *LedgerStore) EvictOverflow(capacity int) []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evictLocked(capacity)
}

// Tick advances the clock, builds a transaction at the new instant and records
// it. The snapshot is taken under the same write, so it holds the new
// transaction and nothing recorded after it.
func (s *LedgerStore) Tick(step time.Duration, build func(now time.Time) domain.Transaction) (domain.Transaction, ports.LedgerSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.now = s.now.Add(step)
	tx := build(s.now)
	s.appendLocked(tx)
	s.evictLocked(s.capacity)
	return tx, s.snapshotLocked()
}

// Snapshot returns a consistent read-only view of the ledger.
func (s *LedgerStore) Snapshot() ports.LedgerSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *LedgerStore) snapshotLocked() ports.LedgerSnapshot {
	return ports.LedgerSnapshot{
		Transactions: s.txns,
		Merchants:    s.merchantsLocked(),
		Now:          s.now,
		Baseline:     s.baseline,
		Version:      s.version,
	}
}

// FindTransaction looks a retained transaction up by id.
func (s *LedgerStore) FindTransaction(id string) (*domain.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.txns {
		if s.txns[i].ID == id {
			tx := s.txns[i]
			return &tx, true
		}
	}
	return nil, false
}

// RosterMerchant returns the identity record of a roster merchant.
func (s *LedgerStore) RosterMerchant(id string) (domain.Merchant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.roster[id]
	return m, ok
}

// Roster returns the merchant roster in registration order.
func (s *LedgerStore) Roster() []domain.Merchant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Merchant, 0, len(s.rosterOrder))
	for _, id := range s.rosterOrder {
		out = append(out, s.roster[id])
	}
	return out
}

// Now returns the simulated clock.
func (s *LedgerStore) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now
}

// SetBaseline fixes the previous-period totals.
func (s *LedgerStore) SetBaseline(baseline domain.PeriodTotals) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baseline = baseline
}

// Len returns the number of retained transactions.
func (s *LedgerStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.txns)
}

func (s *LedgerStore) appendLocked(tx domain.Transaction) {
	next := make([]domain.Transaction, 0, len(s.txns)+1)
	next = append(next, tx)
	next = append(next, s.txns...)
	s.txns = next
	s.addToCache(&tx)
	s.version++
}

func (s *LedgerStore) evictLocked(capacity int) []domain.Transaction {
	if capacity <= 0 || len(s.txns) <= capacity {
		return nil
	}

	evicted := make([]domain.Transaction, len(s.txns)-capacity)
	copy(evicted, s.txns[capacity:])
	s.txns = s.txns[:capacity:capacity]

	for i := range evicted {
		s.removeFromCache(&evicted[i])
	}
	s.version++
	return evicted
}

func (s *LedgerStore) addToCache(tx *domain.Transaction) {
	m, ok := s.cache[tx.MerchantID]
	if !ok {
		m = &domain.Merchant{
			ID:         tx.MerchantID,
			Name:       tx.MerchantName,
			JoinedDate: time.Unix(0, 0).UTC(),
		}
		if r, known := s.roster[tx.MerchantID]; known {
			m.City = r.City
			m.JoinedDate = r.JoinedDate
		}
		s.cache[tx.MerchantID] = m
	}
	m.TransactionCount++
	m.TransactionVolume += tx.Amount
}

func (s *LedgerStore) removeFromCache(tx *domain.Transaction) {
	m, ok := s.cache[tx.MerchantID]
	if !ok {
		return
	}
	m.TransactionCount--
	m.TransactionVolume -= tx.Amount
	if m.TransactionCount <= 0 {
		delete(s.cache, tx.MerchantID)
	}
}

// merchantsLocked copies the aggregate cache: roster merchants first in
// roster order, then merchants unknown to the roster sorted by id.
func (s *LedgerStore) merchantsLocked() []domain.Merchant {
	out := make([]domain.Merchant, 0, len(s.cache))
	seen := make(map[string]struct{}, len(s.rosterOrder))
	for _, id := range s.rosterOrder {
		seen[id] = struct{}{}
		if m, ok := s.cache[id]; ok {
			out = append(out, *m)
		}
	}

	var extra []domain.Merchant
	for id, m := range s.cache {
		if _, ok := seen[id]; !ok {
			extra = append(extra, *m)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].ID < extra[j].ID })
	return append(out, extra...)
}
