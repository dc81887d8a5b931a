package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/raosiddharth510-rao/store/internal/domain/model"
	"github.com/raosiddharth510-rao/store/internal/infra/repository/cartstore"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error     string `json:"error"`
	Available *int   `json:"available,omitempty"`
}

// writeDomainError maps the domain error taxonomy onto HTTP statuses.
// Nothing is swallowed; the message goes back verbatim.
func writeDomainError(w http.ResponseWriter, err error) {
	var validationErr *model.ValidationError
	var stockErr *model.InsufficientStockError
	var persistErr *model.PersistenceError

	switch {
	case errors.As(err, &stockErr):
		writeJSON(w, http.StatusConflict, errorResponse{Error: stockErr.Error(), Available: &stockErr.Available})
	case errors.As(err, &validationErr), errors.Is(err, model.ErrCartEmpty):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, model.ErrProductNotFound), errors.Is(err, cartstore.ErrCartNotExist):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.As(err, &persistErr):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}
