package memory

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"merchant-pulse/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)

// stubGenerator emits two transactions per merchant per day with sequential ids.
type stubGenerator struct {
	seq int
}

func (g *stubGenerator) Generate(merchantID, merchantName string, at time.Time) domain.Transaction {
	g.seq++
	return domain.Transaction{
		ID:           fmt.Sprintf("txn_%d", g.seq),
		Amount:       int64(1000 * g.seq),
		MerchantID:   merchantID,
		MerchantName: merchantName,
		Status:       domain.TransactionStatusCompleted,
		Timestamp:    at,
		UserID:       fmt.Sprintf("user_%d", g.seq),
		Currency:     domain.Currency,
	}
}

func (g *stubGenerator) BackfillDay(m domain.Merchant, dayStart time.Time) []domain.Transaction {
	return []domain.Transaction{
		g.Generate(m.ID, m.Name, dayStart.Add(3*time.Hour)),
		g.Generate(m.ID, m.Name, dayStart.Add(15*time.Hour)),
	}
}

func testRoster() []domain.Merchant {
	return []domain.Merchant{
		{ID: "m1", Name: "Zain Cash", City: "Baghdad", JoinedDate: testStart.AddDate(-1, 0, 0)},
		{ID: "m2", Name: "Asia Hawala", City: "Erbil", JoinedDate: testStart.AddDate(0, -6, 0)},
	}
}

func newTx(id, merchantID string, amount int64, ts time.Time) domain.Transaction {
	return domain.Transaction{
		ID:           id,
		Amount:       amount,
		MerchantID:   merchantID,
		MerchantName: "Merchant " + merchantID,
		Status:       domain.TransactionStatusPending,
		Timestamp:    ts,
		UserID:       "user_" + id,
		Currency:     domain.Currency,
	}
}

// assertAggregatesConsistent checks every cached merchant against the retained ledger.
func assertAggregatesConsistent(t *testing.T, s *LedgerStore) {
	t.Helper()
	snap := s.Snapshot()

	counts := map[string]int64{}
	volumes := map[string]int64{}
	for _, tx := range snap.Transactions {
		counts[tx.MerchantID]++
		volumes[tx.MerchantID] += tx.Amount
	}

	assert.Len(t, snap.Merchants, len(counts), "cache should hold exactly the merchants with retained transactions")
	for _, m := range snap.Merchants {
		assert.Equal(t, counts[m.ID], m.TransactionCount, "count for %s", m.ID)
		assert.Equal(t, volumes[m.ID], m.TransactionVolume, "volume for %s", m.ID)
	}
}

func TestLedgerStore_Initialize(t *testing.T) {
	s := NewLedgerStore(0, testStart)
	require.NoError(t, s.Initialize(testRoster(), 10, &stubGenerator{}))

	assert.True(t, s.Initialized())
	assert.Equal(t, 2*2*10, s.Len())

	snap := s.Snapshot()
	for i := 1; i < len(snap.Transactions); i++ {
		assert.False(t, snap.Transactions[i].Timestamp.After(snap.Transactions[i-1].Timestamp),
			"ledger must be sorted newest first at index %d", i)
	}
	assertAggregatesConsistent(t, s)

	m1 := snap.Merchants[0]
	assert.Equal(t, "m1", m1.ID)
	assert.Equal(t, "Baghdad", m1.City)
	assert.Equal(t, testStart.AddDate(-1, 0, 0), m1.JoinedDate)
}

func TestLedgerStore_Initialize_SecondCallIsNoop(t *testing.T) {
	s := NewLedgerStore(0, testStart)
	require.NoError(t, s.Initialize(testRoster(), 3, &stubGenerator{}))
	before := s.Snapshot()

	require.NoError(t, s.Initialize(testRoster(), 30, &stubGenerator{}))
	after := s.Snapshot()

	assert.Equal(t, len(before.Transactions), len(after.Transactions))
	assert.Equal(t, before.Version, after.Version)
}

func TestLedgerStore_Initialize_AppliesCapacity(t *testing.T) {
	s := NewLedgerStore(15, testStart)
	require.NoError(t, s.Initialize(testRoster(), 10, &stubGenerator{}))

	assert.Equal(t, 15, s.Len())
	assertAggregatesConsistent(t, s)
}

func TestLedgerStore_Append_UpdatesAggregate(t *testing.T) {
	s := NewLedgerStore(0, testStart)
	require.NoError(t, s.Initialize(testRoster(), 1, &stubGenerator{}))

	before, _ := findMerchant(s.Snapshot().Merchants, "m2")
	s.Append(newTx("new-1", "m2", 5000, testStart.Add(time.Hour)))

	snap := s.Snapshot()
	assert.Equal(t, "new-1", snap.Transactions[0].ID, "append inserts at the head")

	after, ok := findMerchant(snap.Merchants, "m2")
	require.True(t, ok)
	assert.Equal(t, before.TransactionCount+1, after.TransactionCount)
	assert.Equal(t, before.TransactionVolume+5000, after.TransactionVolume)
}

func TestLedgerStore_Append_UnknownMerchantFallsBack(t *testing.T) {
	s := NewLedgerStore(0, testStart)
	require.NoError(t, s.Initialize(testRoster(), 1, &stubGenerator{}))

	s.Append(newTx("ghost-1", "m99", 700, testStart))

	m, ok := findMerchant(s.Snapshot().Merchants, "m99")
	require.True(t, ok)
	assert.Equal(t, "", m.City)
	assert.Equal(t, time.Unix(0, 0).UTC(), m.JoinedDate)
	assert.Equal(t, int64(1), m.TransactionCount)
	assert.Equal(t, int64(700), m.TransactionVolume)
}

func TestLedgerStore_EvictOverflow_Bound(t *testing.T) {
	s := NewLedgerStore(0, testStart)
	for i := 0; i < 10; i++ {
		s.Append(newTx(fmt.Sprintf("t%d", i), "m1", 100, testStart.Add(time.Duration(i)*time.Minute)))
	}

	// Newest first: t9 ... t0. The three oldest by position are t2, t1, t0.
	evicted := s.EvictOverflow(7)
	require.Len(t, evicted, 3)
	assert.Equal(t, []string{"t2", "t1", "t0"}, ids(evicted))
	assert.Equal(t, 7, s.Len())
	assertAggregatesConsistent(t, s)

	assert.Nil(t, s.EvictOverflow(7), "nothing to evict at capacity")
	assert.Nil(t, s.EvictOverflow(0), "zero capacity means unbounded")
}

func TestLedgerStore_EvictOverflow_RemovesEmptiedMerchant(t *testing.T) {
	s := NewLedgerStore(0, testStart)
	s.Append(newTx("old", "m2", 100, testStart))
	s.Append(newTx("new", "m1", 100, testStart.Add(time.Minute)))

	s.EvictOverflow(1)

	_, ok := findMerchant(s.Snapshot().Merchants, "m2")
	assert.False(t, ok, "merchant with no retained transactions leaves the cache")
	assertAggregatesConsistent(t, s)
}

func TestLedgerStore_AggregateConsistency_RandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := NewLedgerStore(0, testStart)
	merchants := []string{"m1", "m2", "m3", "m4"}

	for i := 0; i < 500; i++ {
		if rng.Intn(4) == 0 {
			capacity := 1 + rng.Intn(40)
			before := s.Len()
			s.EvictOverflow(capacity)
			if before > capacity {
				assert.Equal(t, capacity, s.Len())
			}
		} else {
			s.Append(newTx(fmt.Sprintf("r%d", i), merchants[rng.Intn(len(merchants))],
				int64(1+rng.Intn(10000)), testStart.Add(time.Duration(i)*time.Second)))
		}
		assertAggregatesConsistent(t, s)
	}
}

func TestLedgerStore_Tick(t *testing.T) {
	s := NewLedgerStore(5, testStart)
	for i := 0; i < 5; i++ {
		s.Append(newTx(fmt.Sprintf("t%d", i), "m1", 100, testStart))
	}

	var builtAt time.Time
	tx, snap := s.Tick(time.Hour, func(now time.Time) domain.Transaction {
		builtAt = now
		return newTx("tick", "m2", 900, now)
	})

	assert.Equal(t, testStart.Add(time.Hour), builtAt)
	assert.Equal(t, testStart.Add(time.Hour), s.Now())
	assert.Equal(t, "tick", tx.ID)
	assert.Equal(t, 5, s.Len(), "tick applies the configured capacity")
	assert.Equal(t, "tick", s.Snapshot().Transactions[0].ID)
	assert.Equal(t, "tick", snap.Transactions[0].ID)
	assert.Len(t, snap.Transactions, 5)
	assert.Equal(t, testStart.Add(time.Hour), snap.Now)
	assertAggregatesConsistent(t, s)
}

func TestLedgerStore_TickSnapshotExcludesLaterWrites(t *testing.T) {
	s := NewLedgerStore(0, testStart)
	s.Append(newTx("seed", "m1", 100, testStart))

	_, first := s.Tick(time.Minute, func(now time.Time) domain.Transaction { return newTx("first", "m1", 10, now) })
	_, second := s.Tick(time.Minute, func(now time.Time) domain.Transaction { return newTx("second", "m2", 20, now) })

	assert.Equal(t, []string{"first", "seed"}, ids(first.Transactions))
	assert.Equal(t, testStart.Add(time.Minute), first.Now)
	assert.Less(t, first.Version, second.Version)
	assert.Equal(t, []string{"second", "first", "seed"}, ids(second.Transactions))
	for _, m := range first.Merchants {
		assert.NotEqual(t, "m2", m.ID, "merchant created by a later tick leaked into the earlier snapshot")
	}
}

func TestLedgerStore_SnapshotIsStableAcrossWrites(t *testing.T) {
	s := NewLedgerStore(3, testStart)
	for i := 0; i < 3; i++ {
		s.Append(newTx(fmt.Sprintf("t%d", i), "m1", 100, testStart))
	}
	snap := s.Snapshot()
	held := ids(snap.Transactions)

	s.Tick(time.Minute, func(now time.Time) domain.Transaction { return newTx("x", "m1", 1, now) })
	s.EvictOverflow(1)

	assert.Equal(t, held, ids(snap.Transactions), "a published snapshot is never mutated")
}

func TestLedgerStore_FindTransaction(t *testing.T) {
	s := NewLedgerStore(0, testStart)
	s.Append(newTx("abc", "m1", 100, testStart))

	tx, ok := s.FindTransaction("abc")
	require.True(t, ok)
	assert.Equal(t, "abc", tx.ID)

	tx, ok = s.FindTransaction("missing")
	assert.False(t, ok)
	assert.Nil(t, tx)
}

func TestLedgerStore_RosterAndBaseline(t *testing.T) {
	s := NewLedgerStore(0, testStart)
	require.NoError(t, s.Initialize(testRoster(), 1, &stubGenerator{}))

	roster := s.Roster()
	require.Len(t, roster, 2)
	assert.Equal(t, "m1", roster[0].ID)
	assert.Equal(t, int64(0), roster[0].TransactionCount, "roster holds identity only")

	_, ok := s.RosterMerchant("m2")
	assert.True(t, ok)
	_, ok = s.RosterMerchant("nope")
	assert.False(t, ok)

	s.SetBaseline(domain.PeriodTotals{TotalVolume: 10, TotalTransactions: 2})
	assert.Equal(t, int64(10), s.Snapshot().Baseline.TotalVolume)
}

func findMerchant(ms []domain.Merchant, id string) (domain.Merchant, bool) {
	for _, m := range ms {
		if m.ID == id {
			return m, true
		}
	}
	return domain.Merchant{}, false
}

func ids(txns []domain.Transaction) []string {
	out := make([]string, len(txns))
	for i := range txns {
		out[i] = txns[i].ID
	}
	return out
}
