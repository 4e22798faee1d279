package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"institute-api/internal/model"
	"institute-api/internal/service"
	"institute-api/pkg/apierror"
)

type ActivityHandler struct {
	service *service.ActivityService
}

func NewActivityHandler(service *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, apierror.BadRequest("limit must be a non-negative integer", raw))
			return
		}
		limit = parsed
	}

	entries, err := h.service.ListFor(r.Context(), actorFromRequest(r), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.ActivityListData{Items: entries}, &model.Meta{Total: len(entries)})
}

// Record lets clients append their own audit entries, for example UI-side
// actions the backend never sees directly.
func (h *ActivityHandler) Record(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.RecordActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	entry, err := h.service.Record(r.Context(), actorFromRequest(r),
		model.ActivityKind(payload.Kind), payload.Description,
		model.EntityKind(payload.TargetKind), payload.TargetID, payload.Metadata)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, entry, nil)
}
