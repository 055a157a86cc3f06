package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"worktrack/internal/errors"
	"worktrack/internal/validation"
)

// errorResponse is the JSON body for all error responses.
type errorResponse struct {
	Error  string                  `json:"error"`
	Code   string                  `json:"code"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the application error taxonomy onto HTTP statuses.
// Validation errors are field-attributed; internal failures are logged and
// surfaced opaque.
func writeError(w http.ResponseWriter, err error) {
	if ve, ok := err.(*validation.ValidationError); ok {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  "validation failed",
			Code:   "VALIDATION_FAILED",
			Fields: ve.Errors,
		})
		return
	}

	if appErr, ok := errors.AsAppError(err); ok {
		status := http.StatusInternalServerError
		switch appErr.Type {
		case errors.ErrorTypeValidation:
			status = http.StatusUnprocessableEntity
		case errors.ErrorTypeNotFound:
			status = http.StatusNotFound
		case errors.ErrorTypeConflict:
			status = http.StatusConflict
		case errors.ErrorTypeForbidden:
			status = http.StatusForbidden
		case errors.ErrorTypeTimeout:
			status = http.StatusGatewayTimeout
		}

		if errors.ShouldLogError(err) {
			slog.Error("request failed", "code", appErr.Code, "error", err)
		}

		writeJSON(w, status, errorResponse{
			Error: errors.GetUserMessage(err),
			Code:  appErr.Code,
		})
		return
	}

	slog.Error("request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error: errors.GetUserMessage(err),
		Code:  errors.GetErrorCode(err),
	})
}
