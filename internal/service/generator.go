package service

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"merchant-pulse/internal/core/domain"

	"github.com/google/uuid"
)

// merchantNames seeds the synthetic roster.
var merchantNames = []string{
	"Zain Cash",
	"Asia Hawala",
	"Al-Rafidain Bank",
	"Korek Telecom",
	"Baghdad Mall",
	"Babylon Hotel",
	"Erbil Grand Bazaar",
	"Basra Oil Supplies",
	"Mosul Electronics",
	"Najaf Pharmacy",
	"Tigris Coffee House",
	"Euphrates Logistics",
	"Kurdistan Motors",
	"Iraqi Airways",
	"Al-Mansour Restaurants",
	"Samarra Textiles",
	"Karbala Sweets",
	"Duhok Fresh Market",
	"Sulaymaniyah Books",
	"FastPay Iraq",
}

// GeneratorConfig controls the synthetic data distribution.
type GeneratorConfig struct {
	Seed         int64 // 0 = seeded from wall clock
	MinAmount    int64
	AmountSpread int64 // Amounts fall in [MinAmount, MinAmount+AmountSpread)
}

// DefaultGeneratorConfig returns the distribution used by the dashboard.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		MinAmount:    1000,
		AmountSpread: 1000000,
	}
}

// Generator produces synthetic transactions and merchants. It is safe for
// concurrent use; every draw goes through one mutex-guarded random source so
// a fixed seed yields a reproducible sequence.
type Generator struct {
	cfg  GeneratorConfig
	mu   sync.Mutex
	rand *rand.Rand
}

// NewGenerator returns a configured Generator.
func NewGenerator(cfg GeneratorConfig) *Generator {
	def := DefaultGeneratorConfig()
	if cfg.MinAmount <= 0 {
		cfg.MinAmount = def.MinAmount
	}
	if cfg.AmountSpread <= 0 {
		cfg.AmountSpread = def.AmountSpread
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return &Generator{
		cfg:  cfg,
		rand: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Generate builds one transaction for the merchant at the given instant.
func (g *Generator) Generate(merchantID, merchantName string, at time.Time) domain.Transaction {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.generateLocked(merchantID, merchantName, at)
}

// BackfillDay builds 1-3 transactions at random times of the given day.
func (g *Generator) BackfillDay(m domain.Merchant, dayStart time.Time) []domain.Transaction {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := g.rand.Intn(3) + 1
	out := make([]domain.Transaction, 0, n)
	for i := 0; i < n; i++ {
		at := dayStart.
			Add(time.Duration(g.rand.Intn(24)) * time.Hour).
			Add(time.Duration(g.rand.Intn(60)) * time.Minute)
		out = append(out, g.generateLocked(m.ID, m.Name, at))
	}
	return out
}

// Roster builds count merchants with ids m1..mN. Join dates fall within the
// year before start.
func (g *Generator) Roster(count int, start time.Time) []domain.Merchant {
	g.mu.Lock()
	defer g.mu.Unlock()

	day := start.UTC().Truncate(24 * time.Hour)
	out := make([]domain.Merchant, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, domain.Merchant{
			ID:         fmt.Sprintf("m%d", i+1),
			Name:       merchantNames[i%len(merchantNames)],
			City:       domain.Cities[g.rand.Intn(len(domain.Cities))],
			JoinedDate: day.AddDate(0, 0, -g.rand.Intn(365)),
		})
	}
	return out
}

// Pick returns a uniformly random merchant from roster.
func (g *Generator) Pick(roster []domain.Merchant) domain.Merchant {
	g.mu.Lock()
	defer g.mu.Unlock()
	return roster[g.rand.Intn(len(roster))]
}

// Jump returns a random duration in [0, max].
func (g *Generator) Jump(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return time.Duration(g.rand.Int63n(int64(max) + 1))
}

func (g *Generator) generateLocked(merchantID, merchantName string, at time.Time) domain.Transaction {
	return domain.Transaction{
		ID:           "txn_" + g.token(),
		Amount:       g.cfg.MinAmount + g.rand.Int63n(g.cfg.AmountSpread),
		MerchantID:   merchantID,
		MerchantName: merchantName,
		Status:       domain.TransactionStatuses[g.rand.Intn(len(domain.TransactionStatuses))],
		Timestamp:    at.UTC(),
		UserID:       "user_" + g.token()[:12],
		Currency:     domain.Currency,
		Location:     domain.Cities[g.rand.Intn(len(domain.Cities))],
	}
}

// token mints a uuid from the seeded source, dashes stripped.
func (g *Generator) token() string {
	id, err := uuid.NewRandomFromReader(g.rand)
	if err != nil {
		id = uuid.New()
	}
	return strings.ReplaceAll(id.String(), "-", "")
}
