package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"institute-api/pkg/apierror"
)

func idParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apierror.BadRequest("id must be a positive integer", raw)
	}

	return id, nil
}
