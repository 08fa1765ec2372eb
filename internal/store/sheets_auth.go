package store

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	sheetsScope       = "https://www.googleapis.com/auth/spreadsheets"
	jwtBearerGrant    = "urn:ietf:params:oauth:grant-type:jwt-bearer"
	defaultTokenURI   = "https://oauth2.googleapis.com/token"
	tokenRefreshSlack = time.Minute
)

// tokenSource yields the bearer token attached to every Sheets API call.
type tokenSource interface {
	Token(ctx context.Context) (string, error)
}

type staticToken string

func (t staticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

// serviceAccountKey is the subset of a Google service-account JSON key the
// JWT bearer grant needs.
type serviceAccountKey struct {
	ClientEmail  string `json:"client_email"`
	PrivateKey   string `json:"private_key"`
	PrivateKeyID string `json:"private_key_id"`
	TokenURI     string `json:"token_uri"`
}

// serviceAccountTokens exchanges a self-signed RS256 assertion for an access
// token and caches it until shortly before expiry.
type serviceAccountTokens struct {
	client *resty.Client
	key    serviceAccountKey
	signer *rsa.PrivateKey
	now    func() time.Time

	mu      sync.Mutex
	token   string
	expires time.Time
}

func loadServiceAccount(path string, client *resty.Client) (*serviceAccountTokens, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read service account key: %w", err)
	}
	return newServiceAccountTokens(raw, client)
}

func newServiceAccountTokens(raw []byte, client *resty.Client) (*serviceAccountTokens, error) {
	var key serviceAccountKey
	if err := json.Unmarshal(raw, &key); err != nil {
		return nil, fmt.Errorf("decode service account key: %w", err)
	}
	if key.ClientEmail == "" || key.PrivateKey == "" {
		return nil, fmt.Errorf("service account key lacks client_email or private_key")
	}
	if key.TokenURI == "" {
		key.TokenURI = defaultTokenURI
	}

	signer, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(key.PrivateKey))
	if err != nil {
		return nil, fmt.Errorf("parse service account private key: %w", err)
	}

	return &serviceAccountTokens{client: client, key: key, signer: signer, now: time.Now}, nil
}

func (s *serviceAccountTokens) assertion() (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"iss":   s.key.ClientEmail,
		"scope": sheetsScope,
		"aud":   s.key.TokenURI,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if s.key.PrivateKeyID != "" {
		token.Header["kid"] = s.key.PrivateKeyID
	}
	return token.SignedString(s.signer)
}

func (s *serviceAccountTokens) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && s.now().Before(s.expires.Add(-tokenRefreshSlack)) {
		return s.token, nil
	}

	assertion, err := s.assertion()
	if err != nil {
		return "", fmt.Errorf("%w: sign assertion: %w", ErrUnauthorized, err)
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
		TokenType   string `json:"token_type"`
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"grant_type": jwtBearerGrant,
			"assertion":  assertion,
		}).
		Post(s.key.TokenURI)
	if err != nil {
		return "", transportError(ctx, err)
	}
	if err = mapSheetsError(resp); err != nil {
		return "", err
	}
	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("%w: decode token response: %w", ErrMalformedResponse, err)
	}
	if strings.TrimSpace(result.AccessToken) == "" {
		return "", fmt.Errorf("%w: token endpoint returned no access token", ErrUnauthorized)
	}

	s.token = result.AccessToken
	s.expires = s.now().Add(time.Duration(result.ExpiresIn) * time.Second)

	return s.token, nil
}
