package handler

import (
	"net/http"

	"github.com/Temutjin2k/ride-hail-insights/pkg/logger"
	wrap "github.com/Temutjin2k/ride-hail-insights/pkg/logger/wrapper"
)

// ErrorResponse writes {"error": message} with the given status. Middleware
// uses it too, so every error body has the same shape.
func ErrorResponse(w http.ResponseWriter, status int, message any) {
	env := envelope{"error": message}

	if err := writeJSON(w, status, env, nil); err != nil {
		w.WriteHeader(500)
	}
}

// failedValidationResponse returns 422 UnprocessableEntity status.
// The request was well-formed but one or more fields failed validation;
// repeating it unchanged will fail the same way.
func failedValidationResponse(w http.ResponseWriter, errors map[string]string) {
	ErrorResponse(w, http.StatusUnprocessableEntity, errors)
}

// badRequestResponse returns 400 BadRequest status
func badRequestResponse(w http.ResponseWriter, message any) {
	ErrorResponse(w, http.StatusBadRequest, message)
}

// internalErrorResponse returns 500 InternalServerError status
func internalErrorResponse(w http.ResponseWriter, message any) {
	ErrorResponse(w, http.StatusInternalServerError, message)
}

// serviceErrorResponse logs err and writes its mapped status. Internal
// errors are not echoed to the client.
func serviceErrorResponse(w http.ResponseWriter, r *http.Request, l logger.Logger, msg string, err error) {
	ctx := wrap.ErrorCtx(r.Context(), err)
	code := GetCode(err)
	if code >= http.StatusInternalServerError && code != http.StatusServiceUnavailable {
		l.Error(ctx, msg, err)
		internalErrorResponse(w, "the server encountered a problem and could not process your request")
		return
	}

	l.Warn(ctx, msg, "error", err.Error(), "status", code)
	ErrorResponse(w, code, err.Error())
}

func writeOrLog(w http.ResponseWriter, r *http.Request, l logger.Logger, status int, data any) {
	if err := writeJSON(w, status, data, nil); err != nil {
		l.Error(r.Context(), "failed to write response", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}
