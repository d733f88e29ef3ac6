package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Kruzk02/grocery-store-api/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Title  string            `json:"title"`
	Detail string            `json:"detail,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// writeError maps domain errors onto statuses: not found is 404,
// validation is 400 with the field map, a lost concurrency check is 409,
// anything else a generic 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		writeJSON(w, http.StatusNotFound, errorBody{Title: "Resource Not Found", Detail: nf.Error()})
		return
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, errorBody{Title: "Validation Error", Errors: ve.Fields})
		return
	}

	if errors.Is(err, domain.ErrConcurrentModification) {
		writeJSON(w, http.StatusConflict, errorBody{
			Title:  "Conflict",
			Detail: "the resource was modified concurrently, retry the request",
		})
		return
	}

	s.logger.Error("request failed", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, errorBody{Title: "Internal Server Error"})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
