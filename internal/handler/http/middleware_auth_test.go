package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-data-hub/internal/service"
	"github.com/MKhiriev/go-data-hub/internal/store"
	"github.com/MKhiriev/go-data-hub/internal/utils"
	"github.com/MKhiriev/go-data-hub/models"
)

func runProtected(h *Handler, authHeader string, next http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	h.auth(h.authorize(next)).ServeHTTP(rec, req)
	return rec
}

func TestAuth_RejectsBadHeaders(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "missing", header: ""},
		{name: "no token", header: "Bearer"},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "extra parts", header: "Bearer a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(t)
			called := false

			rec := runProtected(h, tt.header, http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, called)
		})
	}
}

func TestAuth_InvalidSession(t *testing.T) {
	h, m := newTestHandler(t)
	m.sessions.EXPECT().Parse(gomock.Any(), "expired").Return(models.Identity{}, service.ErrInvalidSession)

	rec := runProtected(h, "Bearer expired", http.NotFoundHandler())

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, service.ErrInvalidSession.Error(), decodeError(t, rec).Error)
}

func TestAuthorize_Outcomes(t *testing.T) {
	tests := []struct {
		name       string
		gateErr    error
		wantStatus int
	}{
		{name: "member", gateErr: nil, wantStatus: http.StatusTeapot},
		{name: "not a member", gateErr: service.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "store down", gateErr: &store.StoreError{Op: store.OpRead, Table: models.TableAuth, Err: store.ErrUnavailable}, wantStatus: http.StatusBadGateway},
		{name: "store timeout", gateErr: &store.StoreError{Op: store.OpRead, Table: models.TableAuth, Err: store.ErrTimeout}, wantStatus: http.StatusGatewayTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			m.sessions.EXPECT().Parse(gomock.Any(), testToken).Return(testIdentity, nil)
			m.gate.EXPECT().Authorize(gomock.Any(), testIdentity).Return(tt.gateErr)

			var got models.Identity
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, _ = utils.GetIdentityFromContext(r.Context())
				w.WriteHeader(http.StatusTeapot)
			})

			rec := runProtected(h, "Bearer "+testToken, next)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.gateErr == nil {
				assert.Equal(t, testIdentity, got)
			}
		})
	}
}
