package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dbPingerMock struct {
	err error
}

func (m *dbPingerMock) Ping(_ context.Context) error {
	return m.err
}

type breakerStub string

func (b breakerStub) State() string { return string(b) }

type consumerStub bool

func (c consumerStub) Consuming() bool { return bool(c) }

func probe(t *testing.T, h http.HandlerFunc) (int, HealthResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec.Code, resp
}

func TestLive_IgnoresDependencies(t *testing.T) {
	t.Parallel()
	fixed := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	h := NewHealthHandler(HealthDeps{DB: &dbPingerMock{err: errors.New("down")}})
	h.now = func() time.Time { return fixed }

	code, resp := probe(t, h.Live)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, statusOK, resp.Status)
	assert.True(t, resp.Timestamp.Equal(fixed))
}

func TestReady(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		dbErr  error
		code   int
		status string
	}{
		{"database up", nil, http.StatusOK, statusOK},
		{"database down", errors.New("connection refused"), http.StatusServiceUnavailable, statusDown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := NewHealthHandler(HealthDeps{DB: &dbPingerMock{err: tt.dbErr}, Consumer: consumerStub(false)})
			code, resp := probe(t, h.Ready)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.status, resp.Status)
		})
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		dbErr     error
		breaker   breakerState
		consuming bool
		code      int
		status    string
		expect    map[string]string
	}{
		{
			name: "all ok", breaker: breakerStub("closed"), consuming: true,
			code: http.StatusOK, status: statusOK,
			expect: map[string]string{"database": statusOK, "broker": "closed", "email_consumer": statusOK},
		},
		{
			name: "open breaker degrades", breaker: breakerStub("open"), consuming: true,
			code: http.StatusOK, status: statusDegraded,
			expect: map[string]string{"broker": "open"},
		},
		{
			name: "half-open breaker is fine", breaker: breakerStub("half-open"), consuming: true,
			code: http.StatusOK, status: statusOK,
		},
		{
			name: "consumer not started degrades", breaker: breakerStub("closed"), consuming: false,
			code: http.StatusOK, status: statusDegraded,
			expect: map[string]string{"email_consumer": statusStarting},
		},
		{
			name: "database down wins", dbErr: errors.New("refused"), breaker: breakerStub("open"), consuming: false,
			code: http.StatusServiceUnavailable, status: statusDown,
			expect: map[string]string{"database": statusDown},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := NewHealthHandler(HealthDeps{
				DB:       &dbPingerMock{err: tt.dbErr},
				Broker:   tt.breaker,
				Consumer: consumerStub(tt.consuming),
				Version:  "v1.2.0",
			})

			code, resp := probe(t, h.Health)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.status, resp.Status)
			assert.Equal(t, "v1.2.0", resp.Version)
			for comp, want := range tt.expect {
				assert.Equal(t, want, resp.Components[comp].Status, comp)
			}
		})
	}
}

func TestHealth_DatabaseLatency(t *testing.T) {
	t.Parallel()
	h := NewHealthHandler(HealthDeps{DB: &dbPingerMock{}})

	_, resp := probe(t, h.Health)
	assert.NotEmpty(t, resp.Components["database"].Latency)
	_, hasBroker := resp.Components["broker"]
	assert.False(t, hasBroker, "optional components are omitted when not wired")
}
