package http

import (
	"net/http"

	"github.com/MKhiriev/go-data-hub/internal/logger"
	"github.com/MKhiriev/go-data-hub/internal/utils"
)

const (
	stateCookieName   = "datahub_oauth_state"
	stateCookieMaxAge = 600
	stateNonceBytes   = 24
)

// login sends the browser to the provider consent page. The state is a
// signed nonce, also kept in a short-lived cookie and checked by callback.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	nonce, err := utils.RandomToken(stateNonceBytes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	state := utils.SignValue(nonce, h.stateKey)

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/api/auth",
		MaxAge:   stateCookieMaxAge,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.identity.AuthCodeURL(state), http.StatusFound)
}

// callback completes the sign-in: it checks the state, exchanges the code,
// runs the authorization gate and returns a session token.
func (h *Handler) callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	query := r.URL.Query()

	if reason := query.Get("error"); reason != "" {
		log.Warn().Str("reason", reason).Msg("provider refused sign-in")
		writeError(w, r, ErrSignInDenied)
		return
	}

	cookie, err := r.Cookie(stateCookieName)
	if err != nil || cookie.Value != query.Get("state") {
		writeError(w, r, ErrInvalidState)
		return
	}
	if _, ok := utils.VerifySignedValue(cookie.Value, h.stateKey); !ok {
		writeError(w, r, ErrInvalidState)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookieName, Value: "", Path: "/api/auth", MaxAge: -1})

	identity, err := h.identity.Exchange(ctx, query.Get("code"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.AccessGate.Authorize(ctx, identity); err != nil {
		log.Warn().Err(err).Str("email", identity.Email).Msg("sign-in refused")
		writeError(w, r, err)
		return
	}

	session, err := h.services.SessionService.Issue(ctx, identity)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("email", identity.Email).Msg("signed in")
	writeJSON(w, r, session, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, callerIdentity(r), http.StatusOK)
}
