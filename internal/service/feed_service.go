package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"merchant-pulse/internal/core/domain"
	"merchant-pulse/internal/core/ports"
	"merchant-pulse/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const maxReconnectsReached = "maximum reconnection attempts reached"

// FeedConfig holds the defaults applied to every feed.
type FeedConfig struct {
	RefreshInterval      time.Duration
	ReconnectInterval    time.Duration
	MaxReconnectAttempts int
	// ConnectDelay simulates the handshake before a feed reports connected.
	ConnectDelay time.Duration
	// MaxClockJump bounds the random clock advance per tick.
	MaxClockJump time.Duration
	// FixedStep replaces the random advance when positive.
	FixedStep time.Duration
	Analytics AnalyticsOptions
}

// DefaultFeedConfig returns the stock feed settings.
func DefaultFeedConfig() FeedConfig {
	return FeedConfig{
		RefreshInterval:      time.Second,
		ReconnectInterval:    5 * time.Second,
		MaxReconnectAttempts: 5,
		ConnectDelay:         250 * time.Millisecond,
		MaxClockJump:         10_000 * time.Second,
		Analytics:            DefaultAnalyticsOptions(),
	}
}

// feedService implements ports.FeedService.
type feedService struct {
	store ports.LedgerStore
	gen   *Generator
	hub   *Hub
	cfg   FeedConfig
	log   zerolog.Logger

	// ready reports whether a feed may open. Swapped in tests.
	ready func() error

	mu     sync.Mutex
	active *feed
	feeds  map[string]*feed
}

// NewFeedService creates a feed service generating into store.
func NewFeedService(store ports.LedgerStore, gen *Generator, hub *Hub, cfg FeedConfig, log zerolog.Logger) ports.FeedService {
	return newFeedService(store, gen, hub, cfg, log)
}

func newFeedService(store ports.LedgerStore, gen *Generator, hub *Hub, cfg FeedConfig, log zerolog.Logger) *feedService {
	def := DefaultFeedConfig()
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = def.RefreshInterval
	}
	if cfg.ReconnectInterval <= 0 {
		cfg.ReconnectInterval = def.ReconnectInterval
	}
	if cfg.MaxReconnectAttempts < 0 {
		cfg.MaxReconnectAttempts = 0
	}
	if cfg.MaxClockJump <= 0 {
		cfg.MaxClockJump = def.MaxClockJump
	}
	if hub == nil {
		hub = NewHub()
	}

	s := &feedService{
		store: store,
		gen:   gen,
		hub:   hub,
		cfg:   cfg,
		log:   log,
		feeds: make(map[string]*feed),
	}
	s.ready = func() error {
		if !s.store.Initialized() {
			return apperror.ErrLedgerNotReady()
		}
		return nil
	}
	return s
}

// Connect starts a new feed and closes the previously active one.
func (s *feedService) Connect(ctx context.Context, opts ports.FeedOptions) (ports.FeedHandle, error) {
	f, err := s.newFeed(ctx, opts)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	prev := s.active
	s.active = f
	s.feeds[f.id] = f
	s.mu.Unlock()

	// The replaced feed must be gone before the new one ticks.
	if prev != nil {
		prev.Close()
		<-prev.Done()
	}

	go s.run(f)
	return f, nil
}

func (s *feedService) newFeed(ctx context.Context, opts ports.FeedOptions) (*feed, error) {
	var merchant *domain.Merchant
	if opts.MerchantID != "" {
		m, ok := s.store.RosterMerchant(opts.MerchantID)
		if !ok {
			return nil, apperror.ErrUnknownMerchant(opts.MerchantID)
		}
		merchant = &m
	}

	if opts.OnMessage == nil {
		opts.OnMessage = func(domain.FeedMessage) {}
	}
	if opts.ReconnectInterval <= 0 {
		opts.ReconnectInterval = s.cfg.ReconnectInterval
	}
	if opts.MaxReconnectAttempts <= 0 {
		opts.MaxReconnectAttempts = s.cfg.MaxReconnectAttempts
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = s.cfg.RefreshInterval
	}

	// The feed outlives the request that opened it.
	fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	id := uuid.NewString()
	return &feed{
		id:        id,
		opts:      opts,
		merchant:  merchant,
		ctx:       fctx,
		cancel:    cancel,
		control:   make(chan []byte, 16),
		done:      make(chan struct{}),
		state:     domain.FeedStateDisconnected,
		filters:   opts.Filters.Clone(),
		timeRange: opts.TimeRange.OrDefault(),
		interval:  opts.RefreshInterval,
		log:       s.log.With().Str("feed_id", id).Str("merchant_id", opts.MerchantID).Logger(),
	}, nil
}

// Lookup returns a running feed by id.
func (s *feedService) Lookup(id string) (ports.FeedHandle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.feeds[id]
	if !ok {
		return nil, false
	}
	return f, true
}

func (s *feedService) Subscribe(merchantID string, fn func(domain.TransactionData)) string {
	return s.hub.Subscribe(merchantID, fn)
}

func (s *feedService) Unsubscribe(merchantID, subscriptionID string) {
	s.hub.Unsubscribe(merchantID, subscriptionID)
}

// CloseAll stops every running feed and waits for them to exit.
func (s *feedService) CloseAll() {
	s.mu.Lock()
	running := make([]*feed, 0, len(s.feeds))
	for _, f := range s.feeds {
		running = append(running, f)
	}
	s.mu.Unlock()

	for _, f := range running {
		f.Close()
	}
	for _, f := range running {
		<-f.Done()
	}
}

func (s *feedService) run(f *feed) {
	defer s.finish(f)

	f.setState(domain.FeedStateConnecting)
	for attempt := 0; ; attempt++ {
		err := s.ready()
		if err == nil {
			break
		}
		if attempt >= f.opts.MaxReconnectAttempts {
			failure := apperror.ErrFeedConnectFailed(fmt.Errorf("%s: %w", maxReconnectsReached, err))
			f.log.Error().Err(failure).Int("attempts", attempt).Msg("Feed gave up reconnecting")
			if f.ctx.Err() == nil {
				f.opts.OnMessage(domain.FeedMessage{
					Type:  domain.FeedMessageError,
					Code:  failure.Code,
					Error: maxReconnectsReached,
				})
			}
			return
		}
		f.log.Warn().Err(err).Int("attempt", attempt+1).Msg("Feed connect failed, retrying")
		if !f.sleep(f.opts.ReconnectInterval) {
			return
		}
	}

	if !f.sleep(s.cfg.ConnectDelay) {
		return
	}
	f.setState(domain.FeedStateConnected)
	f.log.Info().Dur("refresh_interval", f.interval).Msg("Feed connected")

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()
	for {
		select {
		case <-f.ctx.Done():
			return
		case payload := <-f.control:
			if f.apply(payload) {
				ticker.Reset(f.interval)
			}
		case <-ticker.C:
			if f.ctx.Err() != nil {
				return
			}
			s.tick(f)
		}
	}
}

func (s *feedService) finish(f *feed) {
	f.setState(domain.FeedStateDisconnected)

	s.mu.Lock()
	delete(s.feeds, f.id)
	if s.active == f {
		s.active = nil
	}
	s.mu.Unlock()

	close(f.done)
	f.log.Info().Msg("Feed closed")
}

// tick advances the clock, records one transaction and delivers it. The
// analytics bundle is attached and published only when the transaction passes
// the active filters and time range.
func (s *feedService) tick(f *feed) {
	var m domain.Merchant
	if f.merchant != nil {
		m = *f.merchant
	} else {
		roster := s.store.Roster()
		if len(roster) == 0 {
			return
		}
		m = s.gen.Pick(roster)
	}

	step := s.cfg.FixedStep
	if step <= 0 {
		step = s.gen.Jump(s.cfg.MaxClockJump)
	}

	tx, snap := s.store.Tick(step, func(now time.Time) domain.Transaction {
		return s.gen.Generate(m.ID, m.Name, now)
	})

	msg := domain.FeedMessage{
		Type:           domain.FeedMessageNewTransaction,
		Transaction:    &tx,
		MatchesFilters: feedMatches(&tx, f.filters, f.timeRange, snap.Now),
	}
	if msg.MatchesFilters {
		data := AnalyzeSnapshot(snap, f.timeRange, f.filters, s.cfg.Analytics)
		msg.UpdatedData = &data
	}

	if f.ctx.Err() != nil {
		return
	}
	f.opts.OnMessage(msg)
	if msg.UpdatedData != nil {
		s.hub.Publish(f.opts.MerchantID, *msg.UpdatedData)
	}
}

// feedMatches gates live updates on amount bounds, status, location and the
// time-range window.
func feedMatches(tx *domain.Transaction, filter domain.TransactionFilter, tr domain.TimeRange, now time.Time) bool {
	if !matchesAmountStatusLocation(tx, filter) {
		return false
	}
	return !tx.Timestamp.Before(tr.Start(now))
}

// feed implements ports.FeedHandle. filters, timeRange and interval are owned
// by the run goroutine.
type feed struct {
	id       string
	opts     ports.FeedOptions
	merchant *domain.Merchant
	ctx      context.Context
	cancel   context.CancelFunc
	control  chan []byte
	done     chan struct{}
	log      zerolog.Logger

	mu    sync.RWMutex
	state domain.FeedState

	filters   domain.TransactionFilter
	timeRange domain.TimeRange
	interval  time.Duration
}

func (f *feed) ID() string { return f.id }

func (f *feed) Done() <-chan struct{} { return f.done }

// Close cancels the feed without waiting for it to exit.
func (f *feed) Close() { f.cancel() }

func (f *feed) State() domain.FeedState {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state
}

func (f *feed) setState(state domain.FeedState) {
	f.mu.Lock()
	f.state = state
	f.mu.Unlock()
}

// Send queues a control message. It is dropped once the feed is closed.
func (f *feed) Send(payload []byte) {
	buf := append([]byte(nil), payload...)
	select {
	case f.control <- buf:
	case <-f.ctx.Done():
	}
}

// sleep waits d while still applying control messages. It reports false when
// the feed was closed.
func (f *feed) sleep(d time.Duration) bool {
	if d <= 0 {
		return f.ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	for {
		select {
		case <-f.ctx.Done():
			return false
		case payload := <-f.control:
			f.apply(payload)
		case <-t.C:
			return true
		}
	}
}

// apply updates the feed parameters from a control message and reports
// whether the refresh interval changed.
func (f *feed) apply(payload []byte) bool {
	var msg domain.ControlMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		f.log.Debug().Err(err).Msg("Ignoring malformed control message")
		return false
	}

	switch msg.Type {
	case domain.ControlUpdateFilters:
		if len(msg.Filters) == 0 {
			return false
		}
		next := f.filters.Clone()
		if err := json.Unmarshal(msg.Filters, &next); err != nil {
			f.log.Debug().Err(err).Msg("Ignoring malformed filter update")
			return false
		}
		f.filters = next
	case domain.ControlUpdateTimeRange:
		tr, ok := domain.ParseTimeRange(msg.TimeRange)
		if !ok {
			f.log.Debug().Str("time_range", msg.TimeRange).Msg("Ignoring unknown time range")
			return false
		}
		f.timeRange = tr
	case domain.ControlUpdateRefreshInterval:
		if msg.RefreshInterval <= 0 {
			return false
		}
		f.interval = time.Duration(msg.RefreshInterval) * time.Millisecond
		return true
	default:
		f.log.Debug().Str("type", msg.Type).Msg("Ignoring unknown control message")
	}
	return false
}
