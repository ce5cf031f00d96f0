package snippets

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/snipops/snippetd/internal/modules/respond"
	"github.com/snipops/snippetd/observe"
)

type handler struct {
	store  Store
	logger observe.Logger
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	limit := DefaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respond.Error(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	items, err := h.store.ListSnippets(r.Context(), limit)
	if err != nil {
		h.logger.Error(r.Context(), "snippet list failed", observe.Field{Key: "error", Value: err.Error()})
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if items == nil {
		items = []Snippet{}
	}
	respond.JSON(w, http.StatusOK, items)
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	snippet, err := h.store.GetSnippet(r.Context(), name)
	if errors.Is(err, ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "snippet not found")
		return
	}
	if err != nil {
		h.logger.Error(r.Context(), "snippet read failed",
			observe.Field{Key: "snippet", Value: name},
			observe.Field{Key: "error", Value: err.Error()},
		)
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, snippet)
}

func (h *handler) delete(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	err := h.store.DeleteSnippet(r.Context(), name)
	if errors.Is(err, ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "snippet not found")
		return
	}
	if err != nil {
		h.logger.Error(r.Context(), "snippet delete failed",
			observe.Field{Key: "snippet", Value: name},
			observe.Field{Key: "error", Value: err.Error()},
		)
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.logger.Info(r.Context(), "snippet deleted", observe.Field{Key: "snippet", Value: name})
	w.WriteHeader(http.StatusNoContent)
}
