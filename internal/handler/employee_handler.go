package handler

import (
	"encoding/json"
	"net/http"

	"institute-api/internal/model"
	"institute-api/internal/service"
	"institute-api/pkg/apierror"
)

type EmployeeHandler struct {
	service *service.EmployeeService
}

func NewEmployeeHandler(service *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.EmployeeListData{Items: employees}, &model.Meta{Total: len(employees)})
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	employee, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, employee, nil)
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	employee, err := h.service.Create(r.Context(), payload, actorFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, employee, nil)
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	employee, err := h.service.Update(r.Context(), id, payload, actorFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, employee, nil)
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	entry, err := h.service.Delete(r.Context(), id, actorFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, entry, nil)
}

func (h *EmployeeHandler) Departments(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, h.service.Departments(), nil)
}
