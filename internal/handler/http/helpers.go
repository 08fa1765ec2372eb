package http

import (
	"net/http"

	"github.com/MKhiriev/go-data-hub/internal/logger"
	"github.com/MKhiriev/go-data-hub/internal/utils"
	"github.com/MKhiriev/go-data-hub/models"
)

func writeErrorBody(w http.ResponseWriter, status int, message string, fields ...string) {
	utils.WriteError(w, status, message, fields...)
}

func writeJSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	if _, err := utils.WriteJSON(w, data, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}

// callerIdentity returns the identity stored by the auth middleware.
func callerIdentity(r *http.Request) models.Identity {
	identity, _ := utils.GetIdentityFromContext(r.Context())
	return identity
}

func decodeBody(r *http.Request, v any) error {
	if err := utils.DecodeJSON(r.Body, v); err != nil {
		logger.FromRequest(r).Err(err).Msg("invalid JSON was passed")
		return ErrInvalidJSON
	}
	return nil
}
