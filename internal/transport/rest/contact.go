package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aistomin/andys-backend/internal/service/contact"
)

type contactService interface {
	ContactUs(ctx context.Context, input contact.Input) (*contact.Result, error)
}

// ContactHandler accepts Contact-Us form submissions.
type ContactHandler struct {
	svc contactService
	log *slog.Logger
}

// NewContactHandler creates a ContactHandler.
func NewContactHandler(svc contactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{svc: svc, log: logger.With("handler", "contact")}
}

type contactResponse struct {
	// Queued is false when the submission repeated a recent one.
	Queued bool `json:"queued"`
}

// ContactUs handles POST /contact/us. A suppressed duplicate still answers
// 201 so callers cannot probe earlier submissions.
func (h *ContactHandler) ContactUs(w http.ResponseWriter, r *http.Request) {
	var in contact.Input
	if !decodeJSON(w, r, &in) {
		return
	}

	res, err := h.svc.ContactUs(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, contactResponse{Queued: res.Sent})
}
