package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-data-hub/internal/config"
	"github.com/MKhiriev/go-data-hub/internal/logger"
	"github.com/MKhiriev/go-data-hub/internal/utils"
	"github.com/MKhiriev/go-data-hub/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises the base URL from adapterCfg.HTTPAddress and seeds the
// bearer token from adapterCfg.Token.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(adapterCfg.RequestTimeout)
	client.SetBaseURL(baseURL)

	a := &httpServerAdapter{client: client, logger: logger}
	a.SetToken(adapterCfg.Token)

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Version GETs /api/version/, which answers plain text.
func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.String()), nil
}

func (h *httpServerAdapter) Me(ctx context.Context) (models.Identity, error) {
	var identity models.Identity
	err := h.do(ctx, "me", resty.MethodGet, "/api/me", nil, &identity)
	return identity, err
}

func (h *httpServerAdapter) Dashboard(ctx context.Context) (models.DashboardSummary, error) {
	var summary models.DashboardSummary
	err := h.do(ctx, "dashboard", resty.MethodGet, "/api/dashboard", nil, &summary)
	return summary, err
}

// ListProjects GETs /api/projects, adding ?active=true when onlyActive is set.
func (h *httpServerAdapter) ListProjects(ctx context.Context, onlyActive bool) ([]models.Project, error) {
	path := "/api/projects"
	if onlyActive {
		path += "?active=true"
	}

	var projects []models.Project
	err := h.do(ctx, "list projects", resty.MethodGet, path, nil, &projects)
	return projects, err
}

func (h *httpServerAdapter) CreateProject(ctx context.Context, req models.NewProjectRequest) (models.Project, error) {
	var project models.Project
	err := h.do(ctx, "create project", resty.MethodPost, "/api/projects", req, &project)
	return project, err
}

func (h *httpServerAdapter) ToggleProject(ctx context.Context, id string) (models.Project, error) {
	var project models.Project
	err := h.do(ctx, "toggle project", resty.MethodPost, "/api/projects/"+url.PathEscape(id)+"/toggle", nil, &project)
	return project, err
}

func (h *httpServerAdapter) DeleteProject(ctx context.Context, id string) (models.Project, error) {
	var project models.Project
	err := h.do(ctx, "delete project", resty.MethodDelete, "/api/projects/"+url.PathEscape(id), nil, &project)
	return project, err
}

func (h *httpServerAdapter) ListUsers(ctx context.Context) ([]models.AuthorizedUser, error) {
	var users []models.AuthorizedUser
	err := h.do(ctx, "list users", resty.MethodGet, "/api/users", nil, &users)
	return users, err
}

func (h *httpServerAdapter) AddUser(ctx context.Context, req models.NewUserRequest) (models.AuthorizedUser, error) {
	var user models.AuthorizedUser
	err := h.do(ctx, "add user", resty.MethodPost, "/api/users", req, &user)
	return user, err
}

func (h *httpServerAdapter) DeleteUser(ctx context.Context, email string) (models.AuthorizedUser, error) {
	var user models.AuthorizedUser
	err := h.do(ctx, "delete user", resty.MethodDelete, "/api/users/"+url.PathEscape(email), nil, &user)
	return user, err
}

func (h *httpServerAdapter) ListBeneficiaries(ctx context.Context) (models.Snapshot, error) {
	var snap models.Snapshot
	err := h.do(ctx, "list beneficiaries", resty.MethodGet, "/api/beneficiaries", nil, &snap)
	return snap, err
}

func (h *httpServerAdapter) RegisterBeneficiary(ctx context.Context, b models.Beneficiary) (models.RegistrationResult, error) {
	var result models.RegistrationResult
	err := h.do(ctx, "register beneficiary", resty.MethodPost, "/api/beneficiaries", b, &result)
	return result, err
}

// InvalidateCache POSTs /api/cache/invalidate, with ?table= when table is set.
func (h *httpServerAdapter) InvalidateCache(ctx context.Context, table string) error {
	path := "/api/cache/invalidate"
	if table != "" {
		path += "?table=" + url.QueryEscape(table)
	}
	return h.do(ctx, "invalidate cache", resty.MethodPost, path, nil, nil)
}

// do sends an authenticated JSON request. A nil body sends none, a nil
// result discards the response.
func (h *httpServerAdapter) do(ctx context.Context, op, method, path string, body, result any) error {
	req := h.authedRequest(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		h.logger.Err(err).Str("op", op).Msg("request failed")
		return fmt.Errorf("%s request: %w", op, err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Warn().Err(err).Str("op", op).Int("status", resp.StatusCode()).Send()
		return err
	}
	return nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
