package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-data-hub/internal/app"
	"github.com/MKhiriev/go-data-hub/internal/identity"
	"github.com/MKhiriev/go-data-hub/internal/logger"
	"github.com/MKhiriev/go-data-hub/internal/service"
	"github.com/MKhiriev/go-data-hub/internal/store"
)

var errorStatusMap = map[error]int{
	ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrInvalidState:               http.StatusBadRequest,
	ErrSignInDenied:               http.StatusUnauthorized,
	ErrInvalidJSON:                http.StatusBadRequest,

	service.ErrValidation:     http.StatusBadRequest,
	service.ErrEmptyRecord:    http.StatusBadRequest,
	service.ErrUnknownTable:   http.StatusBadRequest,
	service.ErrNotFound:       http.StatusNotFound,
	service.ErrNotLoggedIn:    http.StatusUnauthorized,
	service.ErrInvalidSession: http.StatusUnauthorized,
	service.ErrAccessDenied:   http.StatusForbidden,
	service.ErrSelfRemoval:    http.StatusConflict,

	identity.ErrMissingCode:       http.StatusBadRequest,
	identity.ErrEmailNotVerified:  http.StatusForbidden,
	identity.ErrExchangeFailed:    http.StatusBadGateway,
	identity.ErrUserInfoFailed:    http.StatusBadGateway,
	identity.ErrMalformedResponse: http.StatusBadGateway,

	store.ErrTimeout: http.StatusGatewayTimeout,
}

// statusFromError maps err to a response status. Store failures other than
// timeouts are reported as 502.
func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	if store.IsStoreError(err) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// writeError logs err and writes the JSON error envelope. Validation errors
// carry the offending fields; store errors say the operation was not applied.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	log := logger.FromRequest(r)

	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		log.Warn().Err(err).Int("status", status).Send()
		writeErrorBody(w, status, verr.Error(), verr.Fields...)
	case store.IsStoreError(err):
		log.Err(err).Int("status", status).Msg("store call failed")
		writeErrorBody(w, status, app.MsgOperationNotApplied+": "+err.Error())
	case status == http.StatusInternalServerError:
		log.Err(err).Msg("unexpected error")
		writeErrorBody(w, status, app.MsgInternalServerError)
	default:
		log.Warn().Err(err).Int("status", status).Send()
		writeErrorBody(w, status, err.Error())
	}
}
