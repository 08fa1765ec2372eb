package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-data-hub/internal/config"
	"github.com/MKhiriev/go-data-hub/internal/logger"
	"github.com/MKhiriev/go-data-hub/internal/mock"
	"github.com/MKhiriev/go-data-hub/internal/service"
	"github.com/MKhiriev/go-data-hub/internal/utils"
	"github.com/MKhiriev/go-data-hub/models"
)

const testToken = "session-token"

var testIdentity = models.Identity{Email: "op@x.com", DisplayName: "Operadora", LoggedIn: true}

type testMocks struct {
	gate          *mock.MockAccessGate
	users         *mock.MockUserService
	projects      *mock.MockProjectService
	beneficiaries *mock.MockBeneficiaryService
	dashboard     *mock.MockDashboardService
	sessions      *mock.MockSessionService
	cache         *mock.MockCacheService
	appInfo       *mock.MockAppInfoService
	identity      *mock.MockIdentityProvider
}

func newTestHandler(t *testing.T) (*Handler, testMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := testMocks{
		gate:          mock.NewMockAccessGate(ctrl),
		users:         mock.NewMockUserService(ctrl),
		projects:      mock.NewMockProjectService(ctrl),
		beneficiaries: mock.NewMockBeneficiaryService(ctrl),
		dashboard:     mock.NewMockDashboardService(ctrl),
		sessions:      mock.NewMockSessionService(ctrl),
		cache:         mock.NewMockCacheService(ctrl),
		appInfo:       mock.NewMockAppInfoService(ctrl),
		identity:      mock.NewMockIdentityProvider(ctrl),
	}

	services := &service.Services{
		AccessGate:         m.gate,
		UserService:        m.users,
		ProjectService:     m.projects,
		BeneficiaryService: m.beneficiaries,
		DashboardService:   m.dashboard,
		SessionService:     m.sessions,
		CacheService:       m.cache,
		AppInfoService:     m.appInfo,
	}

	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("# metrics"))
	})

	return NewHandler(services, m.identity, config.App{StateKey: "state-key"}, metrics, logger.Nop()), m
}

// signedIn makes the auth and authorize middlewares accept testToken.
func (m testMocks) signedIn() {
	m.sessions.EXPECT().Parse(gomock.Any(), testToken).Return(testIdentity, nil).AnyTimes()
	m.gate.EXPECT().Authorize(gomock.Any(), testIdentity).Return(nil).AnyTimes()
}

func serve(t *testing.T, h *Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+testToken)

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) utils.ErrorBody {
	t.Helper()
	var body utils.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler_StoresDependencies(t *testing.T) {
	svc := &service.Services{}
	log := logger.Nop()

	h := NewHandler(svc, nil, config.App{StateKey: "k"}, nil, log)

	require.NotNil(t, h)
	assert.Equal(t, svc, h.services)
	assert.Equal(t, "k", h.stateKey)
	assert.Equal(t, log, h.logger)
}

// ─────────────────────────────────────────────
// Init: route registration
// ─────────────────────────────────────────────

func TestInit_ProtectedRoutesRequireToken(t *testing.T) {
	h, _ := newTestHandler(t)
	router := h.Init()

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/me"},
		{http.MethodGet, "/api/users"},
		{http.MethodPost, "/api/users"},
		{http.MethodDelete, "/api/users/a@x.com"},
		{http.MethodGet, "/api/projects"},
		{http.MethodPost, "/api/projects"},
		{http.MethodGet, "/api/projects/p1"},
		{http.MethodDelete, "/api/projects/p1"},
		{http.MethodPost, "/api/projects/p1/toggle"},
		{http.MethodGet, "/api/beneficiaries"},
		{http.MethodPost, "/api/beneficiaries"},
		{http.MethodGet, "/api/dashboard"},
		{http.MethodPost, "/api/cache/invalidate"},
	}

	for _, tc := range routes {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestInit_UnknownRouteReturns404(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nonexistent", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInit_WrongMethodReturns404(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/version/", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInit_ServesMetrics(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "# metrics", rec.Body.String())
}

func TestGetServerVersion(t *testing.T) {
	h, m := newTestHandler(t)
	m.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("v1.2.3-beta+build.42")

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/version/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "v1.2.3-beta+build.42", rec.Body.String())
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
}
