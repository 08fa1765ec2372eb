package http

import (
	"net/http"

	"github.com/MKhiriev/go-data-hub/internal/logger"
	"github.com/MKhiriev/go-data-hub/internal/utils"
)

// auth requires a valid bearer session token and stores the identity it
// carries in the request context. It answers 401 on any failure.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		token, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, ErrInvalidAuthorizationHeader)
			return
		}

		ctx := r.Context()
		identity, err := h.services.SessionService.Parse(ctx, token)
		if err != nil {
			writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithIdentity(ctx, identity)))
	})
}

// authorize runs the authorization gate for the identity stored by auth.
// Membership is re-checked on every request, so removing an address takes
// effect once the cached authorization table expires or is invalidated.
func (h *Handler) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := callerIdentity(r)

		if err := h.services.AccessGate.Authorize(r.Context(), identity); err != nil {
			logger.FromRequest(r).Warn().Err(err).Str("email", identity.Email).Msg("access refused")
			writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}
