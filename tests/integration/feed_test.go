package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"merchant-pulse/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openStream starts an SSE request and returns its headers and parsed events.
func openStream(t *testing.T, ctx context.Context, url string) (http.Header, <-chan sseEvent) {
	t.Helper()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/event-stream"), resp.Header.Get("Content-Type"))
	return resp.Header, readEvents(resp.Body)
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

func decodeMessage(t *testing.T, ev sseEvent) domain.FeedMessage {
	t.Helper()
	var msg domain.FeedMessage
	require.NoError(t, json.Unmarshal([]byte(ev.Data), &msg))
	return msg
}

func TestIntegration_FeedLifecycle(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	before := app.store.Now()
	header, events := openStream(t, ctx, app.server.URL+"/api/v1/feed?merchantId=m3&timeRange=day")
	feedID := header.Get("X-Feed-ID")
	require.NotEmpty(t, feedID)

	connected := nextEvent(t, events, "connected")
	assert.Contains(t, connected.Data, feedID)

	msg := decodeMessage(t, nextEvent(t, events, domain.FeedMessageNewTransaction))
	require.NotNil(t, msg.Transaction)
	assert.Equal(t, "m3", msg.Transaction.MerchantID)
	assert.True(t, msg.MatchesFilters)
	require.NotNil(t, msg.UpdatedData)
	assert.True(t, app.store.Now().After(before), "ticks advance the simulated clock")

	// No transaction can match an impossible amount band.
	resp := do(t, http.MethodPost, app.server.URL+"/api/v1/feed/"+feedID+"/control",
		`{"type":"updateFilters","filters":{"minAmount":999999999999}}`)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	for {
		msg = decodeMessage(t, nextEvent(t, events, domain.FeedMessageNewTransaction))
		if !msg.MatchesFilters {
			break
		}
	}
	assert.Nil(t, msg.UpdatedData)

	resp = do(t, http.MethodDelete, app.server.URL+"/api/v1/feed/"+feedID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	waitClosed(t, events)

	resp = do(t, http.MethodPost, app.server.URL+"/api/v1/feed/"+feedID+"/control", `{"type":"updateTimeRange","timeRange":"week"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestIntegration_NewFeedReplacesActive(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, first := openStream(t, ctx, app.server.URL+"/api/v1/feed")
	nextEvent(t, first, "connected")

	_, second := openStream(t, ctx, app.server.URL+"/api/v1/feed")
	nextEvent(t, second, "connected")

	waitClosed(t, first)
	nextEvent(t, second, domain.FeedMessageNewTransaction)
}

func TestIntegration_UpdatesFromFeed(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, updates := openStream(t, ctx, app.server.URL+"/api/v1/updates")
	_, merchantUpdates := openStream(t, ctx, app.server.URL+"/api/v1/updates?merchantId=m1")
	_, feed := openStream(t, ctx, app.server.URL+"/api/v1/feed?timeRange=week")
	nextEvent(t, feed, "connected")

	ev := nextEvent(t, updates, "update")
	var data domain.TransactionData
	require.NoError(t, json.Unmarshal([]byte(ev.Data), &data))
	assert.Positive(t, data.TotalTransactions)

	// An unscoped feed publishes to dashboard subscribers only.
	select {
	case ev, ok := <-merchantUpdates:
		if ok {
			t.Fatalf("merchant subscriber received %q", ev.Name)
		}
	default:
	}
}

// TestIntegration_ConcurrentReadsDuringFeed hammers the read endpoints while a
// feed appends to the ledger.
func TestIntegration_ConcurrentReadsDuringFeed(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, feed := openStream(t, ctx, app.server.URL+"/api/v1/feed")
	nextEvent(t, feed, domain.FeedMessageNewTransaction)

	targets := []string{
		"/api/v1/dashboard?timeRange=day",
		"/api/v1/transactions?sortField=amount&sortDirection=desc&pageSize=20",
		"/api/v1/transactions?search=bagh",
		"/api/v1/merchants?sortField=transactionVolume",
		"/api/v1/export/transactions?format=json&timeRange=day",
	}

	var wg sync.WaitGroup
	var failures int64
	for w := 0; w < 10; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				target := targets[(w+i)%len(targets)]
				resp, err := http.Get(app.server.URL + target)
				if err != nil {
					atomic.AddInt64(&failures, 1)
					continue
				}
				resp.Body.Close()
				// Exports may be rate limited; everything else must succeed.
				if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusTooManyRequests {
					atomic.AddInt64(&failures, 1)
				}
			}
		}(w)
	}
	wg.Wait()

	assert.Zero(t, atomic.LoadInt64(&failures))

	var page struct {
		Data domain.TransactionPage `json:"data"`
	}
	code := getJSON(t, app.server.URL+"/api/v1/transactions?timeRange=year&pageSize=1000", &page)
	require.Equal(t, http.StatusOK, code)
	assert.LessOrEqual(t, page.Data.TotalItems, 2000)
}
