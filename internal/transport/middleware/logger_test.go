package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/aistomin/andys-backend/pkg/ctxutil"
)

// accessLine runs one request through Logger and decodes the JSON log line.
func accessLine(t *testing.T, h http.HandlerFunc, req *http.Request) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	Logger(logger)(h).ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	return line
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusCreated, "INFO"},
		{http.StatusNotFound, "WARN"},
		{http.StatusUnauthorized, "WARN"},
		{http.StatusInternalServerError, "ERROR"},
	}
	for _, tt := range tests {
		line := accessLine(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}, httptest.NewRequest(http.MethodGet, "/videos", nil))

		if line["level"] != tt.level {
			t.Errorf("status %d: level = %v, want %s", tt.status, line["level"], tt.level)
		}
		if got := int(line["status"].(float64)); got != tt.status {
			t.Errorf("status = %d, want %d", got, tt.status)
		}
	}
}

func TestLogger_ImplicitOKAndBytes(t *testing.T) {
	line := accessLine(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[]}`))
	}, httptest.NewRequest(http.MethodGet, "/photos", nil))

	if line["msg"] != "http.request" {
		t.Errorf("msg = %v", line["msg"])
	}
	if line["method"] != "GET" || line["path"] != "/photos" {
		t.Errorf("method/path = %v %v", line["method"], line["path"])
	}
	if int(line["status"].(float64)) != http.StatusOK {
		t.Errorf("status = %v, want 200", line["status"])
	}
	if int(line["bytes"].(float64)) != len(`{"content":[]}`) {
		t.Errorf("bytes = %v", line["bytes"])
	}
	if _, ok := line["duration"]; !ok {
		t.Error("duration missing")
	}
	if _, ok := line["username"]; ok {
		t.Error("anonymous request logged a username")
	}
}

func TestLogger_RequestContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/videos/7", nil)
	ctx := ctxutil.WithRequestID(req.Context(), "req-42")
	ctx = ctxutil.WithUsername(ctx, "admin")
	req = req.WithContext(ctx)

	line := accessLine(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, req)

	if line["request_id"] != "req-42" {
		t.Errorf("request_id = %v", line["request_id"])
	}
	if line["username"] != "admin" {
		t.Errorf("username = %v", line["username"])
	}
}

func TestLogger_RoutePattern(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := chi.NewRouter()
	r.Use(Logger(logger))
	r.Delete("/videos/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/videos/9", nil))

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if line["route"] != "/videos/{id}" {
		t.Errorf("route = %v, want /videos/{id}", line["route"])
	}
	if line["path"] != "/videos/9" {
		t.Errorf("path = %v", line["path"])
	}
}
