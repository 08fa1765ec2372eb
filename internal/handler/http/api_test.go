package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-data-hub/internal/app"
	"github.com/MKhiriev/go-data-hub/internal/service"
	"github.com/MKhiriev/go-data-hub/internal/store"
	"github.com/MKhiriev/go-data-hub/models"
)

// ─────────────────────────────────────────────
// users
// ─────────────────────────────────────────────

func TestUsers_List(t *testing.T) {
	h, m := newTestHandler(t)
	m.signedIn()
	users := []models.AuthorizedUser{{Name: "Ana", Email: "ana@x.com", Phone: "1"}}
	m.users.EXPECT().List(gomock.Any()).Return(users, nil)

	rec := serve(t, h, http.MethodGet, "/api/users", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []models.AuthorizedUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, users, got)
}

func TestUsers_Add(t *testing.T) {
	req := models.NewUserRequest{Name: "Bia", Email: "bia@x.com", Phone: "2"}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantFields []string
	}{
		{name: "created", wantStatus: http.StatusCreated},
		{
			name:       "validation",
			err:        &service.ValidationError{Fields: []string{models.ColPhone}},
			wantStatus: http.StatusBadRequest,
			wantFields: []string{models.ColPhone},
		},
		{
			name:       "store unavailable",
			err:        &store.StoreError{Op: store.OpWrite, Table: models.TableAuth, Err: store.ErrUnavailable},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			m.signedIn()
			m.users.EXPECT().Add(gomock.Any(), testIdentity, req).
				Return(models.AuthorizedUser{Name: req.Name, Email: req.Email, Phone: req.Phone}, tt.err)

			rec := serve(t, h, http.MethodPost, "/api/users", req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.err != nil {
				body := decodeError(t, rec)
				assert.Equal(t, tt.wantFields, body.Fields)
			}
		})
	}
}

func TestUsers_AddRejectsUnknownFields(t *testing.T) {
	h, m := newTestHandler(t)
	m.signedIn()

	rec := serve(t, h, http.MethodPost, "/api/users", map[string]string{"papel": "admin"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ErrInvalidJSON.Error(), decodeError(t, rec).Error)
}

func TestUsers_Delete(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "removed", wantStatus: http.StatusOK},
		{name: "unknown address", err: service.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "self removal", err: service.ErrSelfRemoval, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			m.signedIn()
			m.users.EXPECT().DeleteByEmail(gomock.Any(), testIdentity, "ana@x.com").
				Return(models.AuthorizedUser{Email: "ana@x.com"}, tt.err)

			rec := serve(t, h, http.MethodDelete, "/api/users/ana%40x.com", nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

// ─────────────────────────────────────────────
// projects
// ─────────────────────────────────────────────

func TestProjects_List(t *testing.T) {
	all := []models.Project{{ID: "p1", Status: models.ActiveYes}, {ID: "p2", Status: models.ActiveNo}}

	tests := []struct {
		name  string
		path  string
		setup func(m testMocks)
		want  []models.Project
	}{
		{
			name:  "all",
			path:  "/api/projects",
			setup: func(m testMocks) { m.projects.EXPECT().List(gomock.Any()).Return(all, nil) },
			want:  all,
		},
		{
			name:  "active only",
			path:  "/api/projects?active=true",
			setup: func(m testMocks) { m.projects.EXPECT().ListActive(gomock.Any()).Return(all[:1], nil) },
			want:  all[:1],
		},
		{
			name:  "unparsable flag lists all",
			path:  "/api/projects?active=maybe",
			setup: func(m testMocks) { m.projects.EXPECT().List(gomock.Any()).Return(all, nil) },
			want:  all,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			m.signedIn()
			tt.setup(m)

			rec := serve(t, h, http.MethodGet, tt.path, nil)

			require.Equal(t, http.StatusOK, rec.Code)
			var got []models.Project
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProjects_Create(t *testing.T) {
	h, m := newTestHandler(t)
	m.signedIn()
	req := models.NewProjectRequest{Name: "Horta", Status: models.ActiveYes}
	created := models.Project{ID: "id-1", Name: "Horta", Status: models.ActiveYes}
	m.projects.EXPECT().Create(gomock.Any(), testIdentity, req).Return(created, nil)

	rec := serve(t, h, http.MethodPost, "/api/projects", req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, created, got)
}

func TestProjects_ByID(t *testing.T) {
	found := models.Project{ID: "p1", Name: "Horta", Status: models.ActiveNo}

	tests := []struct {
		name       string
		method     string
		path       string
		setup      func(m testMocks)
		wantStatus int
	}{
		{
			name:       "get",
			method:     http.MethodGet,
			path:       "/api/projects/p1",
			setup:      func(m testMocks) { m.projects.EXPECT().Find(gomock.Any(), "p1").Return(found, nil) },
			wantStatus: http.StatusOK,
		},
		{
			name:   "get missing",
			method: http.MethodGet,
			path:   "/api/projects/p9",
			setup: func(m testMocks) {
				m.projects.EXPECT().Find(gomock.Any(), "p9").Return(models.Project{}, service.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "delete",
			method:     http.MethodDelete,
			path:       "/api/projects/p1",
			setup:      func(m testMocks) { m.projects.EXPECT().Delete(gomock.Any(), "p1").Return(found, nil) },
			wantStatus: http.StatusOK,
		},
		{
			name:   "toggle",
			method: http.MethodPost,
			path:   "/api/projects/p1/toggle",
			setup: func(m testMocks) {
				toggled := found
				toggled.Status = models.ActiveYes
				m.projects.EXPECT().ToggleStatus(gomock.Any(), "p1").Return(toggled, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "toggle times out",
			method: http.MethodPost,
			path:   "/api/projects/p1/toggle",
			setup: func(m testMocks) {
				err := &store.StoreError{Op: store.OpWrite, Table: models.TableProjects, Err: store.ErrTimeout, Temporary: true}
				m.projects.EXPECT().ToggleStatus(gomock.Any(), "p1").Return(models.Project{}, err)
			},
			wantStatus: http.StatusGatewayTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			m.signedIn()
			tt.setup(m)

			rec := serve(t, h, tt.method, tt.path, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestProjects_StoreErrorSaysNotApplied(t *testing.T) {
	h, m := newTestHandler(t)
	m.signedIn()
	err := &store.StoreError{Op: store.OpWrite, Table: models.TableProjects, Err: store.ErrQuotaExceeded}
	m.projects.EXPECT().Delete(gomock.Any(), "p1").Return(models.Project{}, err)

	rec := serve(t, h, http.MethodDelete, "/api/projects/p1", nil)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.True(t, strings.HasPrefix(decodeError(t, rec).Error, app.MsgOperationNotApplied))
}

// ─────────────────────────────────────────────
// beneficiaries
// ─────────────────────────────────────────────

func TestBeneficiaries_List(t *testing.T) {
	h, m := newTestHandler(t)
	m.signedIn()
	snap := models.Snapshot{
		Table:   models.TableBeneficiaries,
		Columns: []string{models.ColFullName},
		Records: []models.Record{{models.ColFullName: models.String("Maria")}},
	}
	m.beneficiaries.EXPECT().List(gomock.Any()).Return(snap, nil)

	rec := serve(t, h, http.MethodGet, "/api/beneficiaries", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Maria")
}

func TestBeneficiaries_Register(t *testing.T) {
	h, m := newTestHandler(t)
	m.signedIn()
	b := models.Beneficiary{FullName: "Maria", CPF: "123", Projects: []string{"Horta"}}
	result := models.RegistrationResult{
		Name:            "Maria",
		ProjectsCounted: 0,
		Warnings:        []string{"1 of 1 selected projects were not found"},
	}
	m.beneficiaries.EXPECT().Register(gomock.Any(), testIdentity, b).Return(result, nil)

	rec := serve(t, h, http.MethodPost, "/api/beneficiaries", b)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got models.RegistrationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, result, got)
}

// ─────────────────────────────────────────────
// dashboard
// ─────────────────────────────────────────────

func TestDashboard(t *testing.T) {
	h, m := newTestHandler(t)
	m.signedIn()
	m.dashboard.EXPECT().Summary(gomock.Any()).Return(models.DashboardSummary{TotalBeneficiaries: 3, ActiveProjects: 1}, nil)

	rec := serve(t, h, http.MethodGet, "/api/dashboard", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.DashboardSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 3, got.TotalBeneficiaries)
	assert.Equal(t, 1, got.ActiveProjects)
}

func TestDashboard_UnexpectedErrorIsGeneric(t *testing.T) {
	h, m := newTestHandler(t)
	m.signedIn()
	m.dashboard.EXPECT().Summary(gomock.Any()).Return(models.DashboardSummary{}, errors.New("secret detail"))

	rec := serve(t, h, http.MethodGet, "/api/dashboard", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret detail")
	assert.Equal(t, app.MsgInternalServerError, decodeError(t, rec).Error)
}

// ─────────────────────────────────────────────
// cache
// ─────────────────────────────────────────────

func TestInvalidateCache(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		setup      func(m testMocks)
		wantStatus int
	}{
		{
			name:       "all tables",
			path:       "/api/cache/invalidate",
			setup:      func(m testMocks) { m.cache.EXPECT().InvalidateAll(gomock.Any()) },
			wantStatus: http.StatusNoContent,
		},
		{
			name: "one table",
			path: "/api/cache/invalidate?table=Projetos",
			setup: func(m testMocks) {
				m.cache.EXPECT().Invalidate(gomock.Any(), models.TableProjects).Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name: "unknown table",
			path: "/api/cache/invalidate?table=Outra",
			setup: func(m testMocks) {
				m.cache.EXPECT().Invalidate(gomock.Any(), "Outra").Return(service.ErrUnknownTable)
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			m.signedIn()
			tt.setup(m)

			rec := serve(t, h, http.MethodPost, tt.path, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

// ─────────────────────────────────────────────
// statusFromError
// ─────────────────────────────────────────────

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: &service.ValidationError{Fields: []string{"x"}}, want: http.StatusBadRequest},
		{name: "empty record", err: service.ErrEmptyRecord, want: http.StatusBadRequest},
		{name: "wrapped not found", err: errors.Join(errors.New("ctx"), service.ErrNotFound), want: http.StatusNotFound},
		{name: "not logged in", err: service.ErrNotLoggedIn, want: http.StatusUnauthorized},
		{name: "denied", err: service.ErrAccessDenied, want: http.StatusForbidden},
		{name: "rejected write", err: &store.StoreError{Op: store.OpWrite, Err: store.ErrRejected}, want: http.StatusBadGateway},
		{name: "timeout", err: &store.StoreError{Op: store.OpRead, Err: store.ErrTimeout}, want: http.StatusGatewayTimeout},
		{name: "other", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}
