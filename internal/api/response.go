package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"motofibra/catalog/internal/common"
	"motofibra/catalog/internal/constants"
	"motofibra/catalog/internal/logging"
	"motofibra/catalog/internal/models"
	"motofibra/catalog/internal/models/dtos/responses"
)

func respondWithSuccess[T any](w http.ResponseWriter, statusCode int, data *T) {
	resp := responses.APIResponse[T]{
		Status:    string(constants.APIStatusOk),
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithFields(w, statusCode, message, nil)
}

func respondWithFields(w http.ResponseWriter, statusCode int, message string, fields map[string]string) {
	resp := responses.APIResponse[any]{
		Status:    string(constants.APIStatusError),
		Timestamp: time.Now().UTC(),
		Error:     message,
		Fields:    fields,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

// respondWithServiceError maps catalog errors to status codes. Unknown errors
// are logged and reported as 500 without their detail.
func respondWithServiceError(w http.ResponseWriter, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		respondWithFields(w, http.StatusUnprocessableEntity, constants.MsgValidationFailed, verr.Fields)
	case errors.Is(err, models.ErrPartNotFound):
		respondWithError(w, http.StatusNotFound, constants.MsgPartNotFound)
	case errors.Is(err, models.ErrDetailsNotFound):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, common.ErrInvalidID):
		respondWithError(w, http.StatusBadRequest, constants.MsgInvalidPartID)
	default:
		logging.Error("Request failed", "error", err.Error())
		respondWithError(w, http.StatusInternalServerError, constants.MsgInternalError)
	}
}
