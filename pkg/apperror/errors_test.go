package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "[LED_003] Ledger is still initializing", ErrLedgerNotReady().Error())
	assert.Equal(t, "[SYS_002] Cache backend error: connection refused",
		ErrCacheError(fmt.Errorf("connection refused")).Error())
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("redis: connection closed")

	assert.ErrorIs(t, InternalError(inner), inner)
	assert.ErrorIs(t, ErrExportFailed(inner), inner)
	assert.Nil(t, ErrFeedNotFound().Unwrap())
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		err    *AppError
		code   string
		status int
	}{
		{ErrInvalidQuery("bad page"), CodeInvalidQuery, http.StatusBadRequest},
		{Validation("bad"), CodeInvalidQuery, http.StatusBadRequest},
		{ErrNotFound("Transaction"), CodeNotFound, http.StatusNotFound},
		{ErrLedgerNotReady(), CodeLedgerNotReady, http.StatusServiceUnavailable},
		{ErrFeedNotFound(), CodeFeedNotFound, http.StatusNotFound},
		{ErrFeedConnectFailed(errors.New("boom")), CodeFeedConnectFailed, http.StatusServiceUnavailable},
		{ErrUnknownMerchant("m99"), CodeUnknownMerchant, http.StatusNotFound},
		{ErrUnsupportedFormat("xml"), CodeUnsupportedFormat, http.StatusBadRequest},
		{ErrExportFailed(errors.New("boom")), CodeExportFailed, http.StatusInternalServerError},
		{ErrRateLimitExceeded(), CodeRateLimited, http.StatusTooManyRequests},
		{ErrCacheError(errors.New("boom")), CodeCache, http.StatusInternalServerError},
		{InternalError(nil), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code+" "+tt.err.Message, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
		})
	}
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "Merchant not found", ErrNotFound("Merchant").Message)
	assert.Equal(t, `unknown merchant "m99"`, ErrUnknownMerchant("m99").Message)
	assert.Contains(t, ErrUnsupportedFormat("xml").Message, `"xml"`)
}

func TestHasCode(t *testing.T) {
	wrapped := fmt.Errorf("connect feed: %w", ErrUnknownMerchant("m7"))

	assert.True(t, HasCode(wrapped, CodeUnknownMerchant))
	assert.False(t, HasCode(wrapped, CodeFeedNotFound))
	assert.False(t, HasCode(errors.New("plain"), CodeUnknown))
	assert.False(t, HasCode(nil, CodeUnknown))
}
