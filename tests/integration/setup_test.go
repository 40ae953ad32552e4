package integration

import (
	"bufio"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"merchant-pulse/config"
	httpHandler "merchant-pulse/internal/adapter/http/handler"
	"merchant-pulse/internal/adapter/storage/memory"
	redisStorage "merchant-pulse/internal/adapter/storage/redis"
	"merchant-pulse/internal/core/ports"
	"merchant-pulse/internal/service"
	"merchant-pulse/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

var simStart = time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)

// testApp wires the real ledger, services, HTTP layer and Redis stores
// (backed by miniredis) behind an httptest server.
type testApp struct {
	server *httptest.Server
	redis  *miniredis.Miniredis
	store  *memory.LedgerStore
	feeds  ports.FeedService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	log := logger.New("error", false)

	store := memory.NewLedgerStore(2000, simStart)
	gen := service.NewGenerator(service.GeneratorConfig{Seed: 99})
	require.NoError(t, service.BootstrapLedger(store, gen, 6, 5, log))

	dashboardSvc := service.NewDashboardService(store, service.DashboardConfig{
		Analytics: service.DefaultAnalyticsOptions(),
	}, log)
	exportSvc := service.NewExportService(store, redisStorage.NewExportCache(rdb), service.ExportConfig{
		CacheTTL: time.Minute,
	}, log)

	feedCfg := service.DefaultFeedConfig()
	feedCfg.RefreshInterval = 5 * time.Millisecond
	feedCfg.ReconnectInterval = 10 * time.Millisecond
	feedCfg.ConnectDelay = 0
	feedCfg.FixedStep = time.Second
	feedSvc := service.NewFeedService(store, gen, service.NewHub(), feedCfg, log)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		DashboardSvc:   dashboardSvc,
		ExportSvc:      exportSvc,
		FeedSvc:        feedSvc,
		RateLimitStore: redisStorage.NewRateLimitStore(rdb),
		RateLimits:     config.RateLimitConfig{Export: 5, Feed: 50},
		HealthCheckers: []ports.HealthChecker{
			memory.NewHealthCheck(store),
			redisStorage.NewHealthCheck(rdb),
		},
		Logger: log,
	})

	return &testApp{
		server: httptest.NewServer(router),
		redis:  mr,
		store:  store,
		feeds:  feedSvc,
	}
}

func (a *testApp) close() {
	a.feeds.CloseAll()
	a.server.CloseClientConnections()
	a.server.Close()
	a.redis.Close()
}

// sseEvent is one parsed Server-Sent Event.
type sseEvent struct {
	Name string
	Data string
}

// readEvents parses an event stream until EOF, then closes the channel.
func readEvents(body io.ReadCloser) <-chan sseEvent {
	out := make(chan sseEvent, 256)
	go func() {
		defer close(out)
		defer body.Close()
		sc := bufio.NewScanner(body)
		sc.Buffer(make([]byte, 0, 64<<10), 4<<20)
		var ev sseEvent
		for sc.Scan() {
			line := sc.Text()
			switch {
			case line == "":
				if ev.Name != "" || ev.Data != "" {
					out <- ev
				}
				ev = sseEvent{}
			case strings.HasPrefix(line, "event:"):
				ev.Name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			case strings.HasPrefix(line, "data:"):
				ev.Data += strings.TrimPrefix(line, "data:")
			}
		}
	}()
	return out
}

// nextEvent returns the next event named name, skipping others.
func nextEvent(t *testing.T, events <-chan sseEvent, name string) sseEvent {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			require.True(t, ok, "stream ended before a %q event", name)
			if ev.Name == name {
				return ev
			}
		case <-timeout:
			t.Fatalf("no %q event within 5s", name)
		}
	}
}

// waitClosed drains events until the stream ends.
func waitClosed(t *testing.T, events <-chan sseEvent) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("stream still open after 5s")
		}
	}
}
