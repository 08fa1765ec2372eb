package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-data-hub/internal/config"
	"github.com/MKhiriev/go-data-hub/internal/logger"
	"github.com/MKhiriev/go-data-hub/internal/utils"
	"github.com/MKhiriev/go-data-hub/models"
)

// sessionService is the concrete implementation of SessionService.
// It turns a verified identity into a signed HS256 token and back.
type sessionService struct {
	// signKey is the HMAC secret used to sign and verify session tokens.
	signKey string

	// issuer is the "iss" claim embedded in every issued token. Tokens with a
	// different issuer are rejected during parsing.
	issuer string

	// duration controls how long a newly issued token remains valid.
	duration time.Duration
}

// NewSessionService constructs a SessionService from the session settings
// in cfg. All state is read-only after construction.
func NewSessionService(cfg config.App) SessionService {
	return &sessionService{
		signKey:  cfg.SessionSignKey,
		issuer:   cfg.SessionIssuer,
		duration: cfg.SessionDuration,
	}
}

// Issue signs a session token for identity. Anonymous identities are
// rejected with ErrNotLoggedIn.
func (s *sessionService) Issue(ctx context.Context, identity models.Identity) (models.Session, error) {
	if !identity.LoggedIn || models.NormalizeEmail(identity.Email) == "" {
		return models.Session{}, ErrNotLoggedIn
	}

	token, expires, err := utils.GenerateSessionToken(s.issuer, identity, s.duration, s.signKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionService.Issue").Msg("error signing session token")
		return models.Session{}, fmt.Errorf("error issuing session: %w", err)
	}

	identity.Email = models.NormalizeEmail(identity.Email)
	return models.Session{Token: token, ExpiresAt: expires.Unix(), Identity: identity}, nil
}

// Parse verifies token and returns the identity it carries. Any validation
// failure (expired, wrong issuer, malformed) is reported as ErrInvalidSession.
func (s *sessionService) Parse(ctx context.Context, token string) (models.Identity, error) {
	claims, err := utils.ValidateAndParseSessionToken(token, s.signKey, s.issuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*sessionService.Parse").Msg("rejected session token")
		return models.Identity{}, ErrInvalidSession
	}
	return claims.Identity(), nil
}
