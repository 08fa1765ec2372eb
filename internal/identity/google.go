// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package identity signs users in with Google using the OAuth 2.0
// authorization code flow and turns the result into a models.Identity.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-data-hub/internal/config"
	"github.com/MKhiriev/go-data-hub/internal/logger"
	"github.com/MKhiriev/go-data-hub/internal/utils"
	"github.com/MKhiriev/go-data-hub/models"
)

const googleScopes = "openid email profile"

// GoogleProvider exchanges authorization codes for the signed-in account.
type GoogleProvider struct {
	client *utils.HTTPClient
	cfg    config.Google
}

func NewGoogleProvider(cfg config.Google, timeout time.Duration) *GoogleProvider {
	return &GoogleProvider{client: utils.NewHTTPClient(timeout), cfg: cfg}
}

// AuthCodeURL returns the consent page address carrying state.
func (p *GoogleProvider) AuthCodeURL(state string) string {
	q := url.Values{}
	q.Set("client_id", p.cfg.ClientID)
	q.Set("redirect_uri", p.cfg.RedirectURL)
	q.Set("response_type", "code")
	q.Set("scope", googleScopes)
	q.Set("state", state)
	q.Set("prompt", "select_account")

	sep := "?"
	if strings.Contains(p.cfg.AuthURL, "?") {
		sep = "&"
	}
	return p.cfg.AuthURL + sep + q.Encode()
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type userInfo struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

// Exchange trades code for an access token and reads the account profile.
// Only verified addresses produce a logged-in identity.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (models.Identity, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(code) == "" {
		return models.Identity{}, ErrMissingCode
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"code":          code,
			"client_id":     p.cfg.ClientID,
			"client_secret": p.cfg.ClientSecret,
			"redirect_uri":  p.cfg.RedirectURL,
			"grant_type":    "authorization_code",
		}).
		Post(p.cfg.TokenURL)
	if err != nil {
		log.Err(err).Str("func", "*GoogleProvider.Exchange").Msg("token request failed")
		return models.Identity{}, fmt.Errorf("%w: %w", ErrExchangeFailed, err)
	}
	if resp.IsError() {
		log.Error().Int("status", resp.StatusCode()).Str("func", "*GoogleProvider.Exchange").Msg("token request rejected")
		return models.Identity{}, fmt.Errorf("%w: status %d", ErrExchangeFailed, resp.StatusCode())
	}

	var token tokenResponse
	if err = json.Unmarshal(resp.Body(), &token); err != nil || token.AccessToken == "" {
		return models.Identity{}, fmt.Errorf("%w: token response", ErrMalformedResponse)
	}

	resp, err = p.client.R().
		SetContext(ctx).
		SetAuthToken(token.AccessToken).
		Get(p.cfg.UserInfoURL)
	if err != nil {
		log.Err(err).Str("func", "*GoogleProvider.Exchange").Msg("userinfo request failed")
		return models.Identity{}, fmt.Errorf("%w: %w", ErrUserInfoFailed, err)
	}
	if resp.IsError() {
		return models.Identity{}, fmt.Errorf("%w: status %d", ErrUserInfoFailed, resp.StatusCode())
	}

	var info userInfo
	if err = json.Unmarshal(resp.Body(), &info); err != nil || info.Email == "" {
		return models.Identity{}, fmt.Errorf("%w: userinfo response", ErrMalformedResponse)
	}
	if !info.EmailVerified {
		return models.Identity{}, ErrEmailNotVerified
	}

	return models.Identity{
		Email:       models.NormalizeEmail(info.Email),
		DisplayName: strings.TrimSpace(info.Name),
		LoggedIn:    true,
	}, nil
}
