package rest

import (
	"context"
	"log/slog"
	"net/http"
)

type contentService[T any] interface {
	Load(ctx context.Context) ([]T, error)
	Save(ctx context.Context, item T) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// ContentRoutes is a CRUD handler set mounted under Path.
type ContentRoutes interface {
	Path() string
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

// ContentHandler serves one content type T through its JSON shape D.
type ContentHandler[T, D any] struct {
	path    string
	svc     contentService[T]
	toDTO   func(T) D
	fromDTO func(D) T
	// clearID makes POST always insert.
	clearID func(*T)
	log     *slog.Logger
}

func (h *ContentHandler[T, D]) Path() string { return h.path }

// List handles GET {path}.
func (h *ContentHandler[T, D]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Load(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]D, 0, len(items))
	for _, it := range items {
		out = append(out, h.toDTO(it))
	}
	writeJSON(w, http.StatusOK, listResponse[D]{Content: out})
}

// Create handles POST {path}.
func (h *ContentHandler[T, D]) Create(w http.ResponseWriter, r *http.Request) {
	item, ok := h.decode(w, r)
	if !ok {
		return
	}
	h.clearID(&item)
	h.save(w, r, item, http.StatusCreated)
}

// Update handles PUT {path}. The id travels in the body.
func (h *ContentHandler[T, D]) Update(w http.ResponseWriter, r *http.Request) {
	item, ok := h.decode(w, r)
	if !ok {
		return
	}
	h.save(w, r, item, http.StatusOK)
}

// Delete handles DELETE {path}/{id}.
func (h *ContentHandler[T, D]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ContentHandler[T, D]) decode(w http.ResponseWriter, r *http.Request) (T, bool) {
	var dto D
	if !decodeJSON(w, r, &dto) {
		var zero T
		return zero, false
	}
	return h.fromDTO(dto), true
}

func (h *ContentHandler[T, D]) save(w http.ResponseWriter, r *http.Request, item T, status int) {
	saved, err := h.svc.Save(r.Context(), item)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, status, h.toDTO(*saved))
}
