package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/acasalaka/apapmedika-gateway/internal/apiclient"
	"github.com/acasalaka/apapmedika-gateway/internal/session"
)

type envelope struct {
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Data: data, Message: message})
}

// writeError maps a store error onto the gateway's own status codes: token
// failures are the caller's problem, backend rejections keep their status,
// transport failures surface as a bad gateway.
func writeError(w http.ResponseWriter, err error) {
	var tokenErr *session.TokenError
	if errors.As(err, &tokenErr) {
		writeJSON(w, http.StatusUnauthorized, nil, tokenErr.Error())
		return
	}

	var httpErr *apiclient.HTTPError
	if errors.As(err, &httpErr) {
		writeJSON(w, httpErr.Status, nil, httpErr.Error())
		return
	}

	var netErr *apiclient.NetworkError
	if errors.As(err, &netErr) {
		log.Error().Err(err).Msg("Backend unreachable")
		writeJSON(w, http.StatusBadGateway, nil, "backend unavailable")
		return
	}

	log.Error().Err(err).Msg("Unexpected handler error")
	writeJSON(w, http.StatusInternalServerError, nil, err.Error())
}
