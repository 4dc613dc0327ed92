package middleware

import (
	"net/http"

	"github.com/Temutjin2k/ride-hail-insights/internal/adapter/http/handler"
)

const bearerChallenge = `Bearer realm="dashboard"`

// errorResponse answers in the handlers' error envelope. 401 responses also
// carry the bearer challenge.
func errorResponse(w http.ResponseWriter, status int, message any) {
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", bearerChallenge)
	}
	handler.ErrorResponse(w, status, message)
}
