package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"berdoz/internal/core"
	applog "berdoz/internal/log"
	"berdoz/internal/services"
	"berdoz/internal/storage"
)

// recordHandler serves the REST endpoint of one module.
type recordHandler[T core.Record[T]] struct {
	svc *services.RecordService[T]
}

// RegisterModule mounts list, create, update, delete and view routes for
// svc under its module endpoint.
func RegisterModule[T core.Record[T]](r chi.Router, svc *services.RecordService[T]) {
	h := &recordHandler[T]{svc: svc}
	r.Route(svc.Module().Endpoint, func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/view", h.view)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

func (h *recordHandler[T]) list(w http.ResponseWriter, r *http.Request) {
	recs, err := h.svc.List(r.Context(), storage.DefaultListLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	NewJSONResponse().Write(w, recs)
}

func (h *recordHandler[T]) create(w http.ResponseWriter, r *http.Request) {
	var rec T
	if err := decodeJSON(w, r, maxRecordBody, &rec); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := h.svc.Create(r.Context(), rec)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.logChange(r, created.GetID(), applog.OpCreate)
	NewJSONResponse().Status(http.StatusCreated).Write(w, created)
}

func (h *recordHandler[T]) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var rec T
	if err := decodeJSON(w, r, maxRecordBody, &rec); err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := h.svc.Update(r.Context(), id, rec)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.logChange(r, id, applog.OpUpdate)
	NewJSONResponse().Write(w, updated)
}

func (h *recordHandler[T]) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	h.logChange(r, id, applog.OpDelete)
	NewJSONResponse().Write(w, messageBody{Message: "record deleted"})
}

func (h *recordHandler[T]) view(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.View(r.Context(), ParseViewState(r.URL.Query()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	NewJSONResponse().Write(w, view)
}

func (h *recordHandler[T]) logChange(r *http.Request, id, op string) {
	applog.NewStructuredLogger(applog.FromContext(r.Context())).
		LogRecordChanged(r.Context(), h.svc.Module().Name, id, op)
}
