package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck_Ping(t *testing.T) {
	store := NewLedgerStore(0, testStart)
	hc := NewHealthCheck(store)

	assert.Equal(t, "ledger", hc.Name())
	assert.Error(t, hc.Ping(context.Background()), "not ready before backfill")

	require.NoError(t, store.Initialize(testRoster(), 1, &stubGenerator{}))
	assert.NoError(t, hc.Ping(context.Background()))
}
