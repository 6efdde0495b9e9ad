// Package rest exposes every service operation over a JSON REST API with a
// uniform response envelope.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/linkmark-backend/internal/adapter/provider/straico"
	"github.com/heartmarshall/linkmark-backend/internal/domain"
)

// envelope is the uniform response shape: {"success":true,"data":...} on
// success, {"success":false,"error":{...}} on failure.
type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, code, message string, fields ...fieldError) {
	writeJSON(w, status, envelope{
		Success: false,
		Error:   &errorBody{Code: code, Message: message, Fields: fields},
	})
}

// respondError maps service errors onto HTTP statuses and the error envelope.
func respondError(ctx context.Context, log *slog.Logger, w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		fields := make([]fieldError, len(ve.Errors))
		for i, fe := range ve.Errors {
			fields[i] = fieldError{Field: fe.Field, Message: fe.Message}
		}
		writeError(w, http.StatusBadRequest, "validation_failed", "validation failed", fields...)
		return
	}

	var apiErr *straico.APIError
	if errors.As(err, &apiErr) {
		respondStraicoError(w, apiErr)
		return
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already_exists", "already exists")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", "conflict")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, 499, "request_cancelled", "request cancelled")
	default:
		log.ErrorContext(ctx, "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

// respondStraicoError keeps upstream AI errors distinguishable: key problems
// come back as 400 with a dedicated code so the UI can prompt for
// reconfiguration instead of logging the user out.
func respondStraicoError(w http.ResponseWriter, apiErr *straico.APIError) {
	code := "straico_" + string(apiErr.Kind)
	switch apiErr.Kind {
	case straico.KindInvalidKey, straico.KindForbidden:
		writeError(w, http.StatusBadRequest, code, apiErr.Message)
	case straico.KindRateLimited:
		writeError(w, http.StatusTooManyRequests, code, apiErr.Message)
	default:
		writeError(w, http.StatusBadGateway, code, apiErr.Message)
	}
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
