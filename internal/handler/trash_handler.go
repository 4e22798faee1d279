package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"institute-api/internal/model"
	"institute-api/internal/service"
	"institute-api/pkg/apierror"
)

type TrashHandler struct {
	service *service.TrashService
}

func NewTrashHandler(service *service.TrashService) *TrashHandler {
	return &TrashHandler{service: service}
}

func (h *TrashHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.ListFor(r.Context(), actorFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.TrashListData{Items: entries}, &model.Meta{Total: len(entries)})
}

func (h *TrashHandler) Restore(w http.ResponseWriter, r *http.Request) {
	trashID := chi.URLParam(r, "id")
	if trashID == "" {
		writeError(w, apierror.BadRequest("trash entry id is required", "id"))
		return
	}

	entry, err := h.service.Restore(r.Context(), trashID, actorFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, entry, nil)
}

func (h *TrashHandler) Purge(w http.ResponseWriter, r *http.Request) {
	trashID := chi.URLParam(r, "id")
	if trashID == "" {
		writeError(w, apierror.BadRequest("trash entry id is required", "id"))
		return
	}

	if err := h.service.Purge(r.Context(), trashID, actorFromRequest(r)); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
