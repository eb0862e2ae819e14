package handler_test

import (
	"context"
	"customer-service/internal/api/handler"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestHealthHandler_Health(t *testing.T) {
	tests := []struct {
		name     string
		db       handler.Pinger
		wantCode int
		wantBody string
	}{
		{"database up", stubPinger{}, http.StatusOK, `{"status":"ok","database":"up"}`},
		{"database down", stubPinger{err: errors.New("connection refused")}, http.StatusServiceUnavailable, `{"status":"degraded","database":"down"}`},
		{"no database", nil, http.StatusOK, `{"status":"ok","database":"unknown"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewHealthHandler(tt.db, testLogger)

			rec := do(t, http.HandlerFunc(h.Health), http.MethodGet, "/health", "")

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
