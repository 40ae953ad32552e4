package service

import (
	"sync"

	"merchant-pulse/internal/core/domain"

	"github.com/google/uuid"
)

// Hub fans analytics updates out to subscribers keyed by merchant id, or by
// domain.DashboardKey for unscoped feeds.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[string]func(domain.TransactionData)
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[string]func(domain.TransactionData))}
}

func hubKey(merchantID string) string {
	if merchantID == "" {
		return domain.DashboardKey
	}
	return merchantID
}

// Subscribe registers fn and returns the subscription id.
func (h *Hub) Subscribe(merchantID string, fn func(domain.TransactionData)) string {
	id := uuid.NewString()
	key := hubKey(merchantID)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[key] == nil {
		h.subs[key] = make(map[string]func(domain.TransactionData))
	}
	h.subs[key][id] = fn
	return id
}

// Unsubscribe removes a subscription. Unknown ids are ignored.
func (h *Hub) Unsubscribe(merchantID, subscriptionID string) {
	key := hubKey(merchantID)

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs[key], subscriptionID)
	if len(h.subs[key]) == 0 {
		delete(h.subs, key)
	}
}

// Publish invokes every subscriber of the key outside the lock, so callbacks
// may subscribe or unsubscribe.
func (h *Hub) Publish(merchantID string, data domain.TransactionData) {
	key := hubKey(merchantID)

	h.mu.RLock()
	fns := make([]func(domain.TransactionData), 0, len(h.subs[key]))
	for _, fn := range h.subs[key] {
		fns = append(fns, fn)
	}
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(data)
	}
}

// Count returns the number of subscribers of the key.
func (h *Hub) Count(merchantID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[hubKey(merchantID)])
}
