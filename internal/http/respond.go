package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/arjunsaxaena/CraveConnect/internal/catalog"
	"github.com/arjunsaxaena/CraveConnect/internal/orders"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.WithError(err).Error("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleUpstreamError maps client-layer failures onto HTTP statuses: a typed
// upstream status passes through, anything else is a 502.
func handleUpstreamError(w http.ResponseWriter, err error) {
	var se *catalog.StatusError
	if errors.As(err, &se) {
		respondError(w, se.Code, "upstream_error", se.Message)
		return
	}
	var ue *orders.UpstreamError
	if errors.As(err, &ue) {
		respondError(w, ue.Code, "upstream_error", ue.Message)
		return
	}
	respondError(w, http.StatusBadGateway, "upstream_unavailable", "backend service unavailable")
}
