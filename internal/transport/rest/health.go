package rest

import (
	"context"
	"net/http"
	"time"
)

const probeTimeout = 3 * time.Second

// Component and overall health states.
const (
	statusOK       = "ok"
	statusDegraded = "degraded"
	statusDown     = "down"
	statusStarting = "starting"
)

type dbPinger interface {
	Ping(ctx context.Context) error
}

// breakerState reports the email publisher's circuit breaker state.
type breakerState interface {
	State() string
}

// consumerState reports whether the email consumer is consuming.
type consumerState interface {
	Consuming() bool
}

// HealthDeps are the components /health inspects. Broker and Consumer are
// optional.
type HealthDeps struct {
	DB       dbPinger
	Broker   breakerState
	Consumer consumerState
	Version  string
}

// HealthHandler serves the liveness, readiness and health probes.
type HealthHandler struct {
	deps HealthDeps
	now  func() time.Time
}

func NewHealthHandler(deps HealthDeps) *HealthHandler {
	return &HealthHandler{deps: deps, now: time.Now}
}

// HealthResponse is the body of every probe.
type HealthResponse struct {
	Status     string                     `json:"status"`
	Version    string                     `json:"version,omitempty"`
	Components map[string]ComponentStatus `json:"components,omitempty"`
	Timestamp  time.Time                  `json:"timestamp"`
}

type ComponentStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live answers 200 while the process serves HTTP.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: statusOK, Timestamp: h.now()})
}

// Ready answers 503 until the database is reachable.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	db := h.pingDB(r.Context())
	code := http.StatusOK
	if db.Status != statusOK {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{Status: db.Status, Timestamp: h.now()})
}

// Health reports every component. Only a database outage is fatal; an
// open breaker or an idle consumer degrade the status because content
// reads keep working without the queue.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	components := map[string]ComponentStatus{"database": h.pingDB(r.Context())}
	overall := statusOK
	if components["database"].Status != statusOK {
		overall = statusDown
	}

	if h.deps.Broker != nil {
		state := h.deps.Broker.State()
		components["broker"] = ComponentStatus{Status: state}
		if state == "open" {
			overall = worst(overall, statusDegraded)
		}
	}

	if h.deps.Consumer != nil {
		c := ComponentStatus{Status: statusOK}
		if !h.deps.Consumer.Consuming() {
			c.Status = statusStarting
			overall = worst(overall, statusDegraded)
		}
		components["email_consumer"] = c
	}

	code := http.StatusOK
	if overall == statusDown {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{
		Status:     overall,
		Version:    h.deps.Version,
		Components: components,
		Timestamp:  h.now(),
	})
}

func (h *HealthHandler) pingDB(ctx context.Context) ComponentStatus {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	start := time.Now()
	if err := h.deps.DB.Ping(ctx); err != nil {
		return ComponentStatus{Status: statusDown}
	}
	return ComponentStatus{Status: statusOK, Latency: time.Since(start).String()}
}

func worst(a, b string) string {
	rank := map[string]int{statusOK: 0, statusDegraded: 1, statusDown: 2}
	if rank[b] > rank[a] {
		return b
	}
	return a
}
