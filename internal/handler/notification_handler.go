package handler

import (
	"encoding/json"
	"net/http"

	"institute-api/internal/middleware"
	"institute-api/internal/model"
	"institute-api/internal/service"
	"institute-api/pkg/apierror"
)

type NotificationHandler struct {
	service *service.NotificationService
}

func NewNotificationHandler(service *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	notifications, err := h.service.ListFor(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.NotificationListData{Items: notifications}, &model.Meta{Total: len(notifications)})
}

func (h *NotificationHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.UpdateNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}
	if payload.Read == nil {
		writeError(w, apierror.BadRequest("read is required", "read"))
		return
	}

	notification, err := h.service.SetRead(r.Context(), id, claims.UserID, *payload.Read)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, notification, nil)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	updated, err := h.service.MarkAllRead(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"updated": updated}, nil)
}
