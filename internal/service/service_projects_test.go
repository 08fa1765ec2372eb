package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-data-hub/internal/validators"
	"github.com/MKhiriev/go-data-hub/models"
)

type fixedIDs string

func (f fixedIDs) Generate() string { return string(f) }

func newTestProjectService(t *testing.T, s testStack) *projectService {
	t.Helper()
	svc := NewProjectService(s.cache, s.engine, validators.NewRecordValidator(), fixedIDs("p-new")).(*projectService)
	svc.now = func() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) }
	return svc
}

func TestProjectService_ListActive(t *testing.T) {
	s := newTestStack(t, projectsTable(
		projectRow("p1", "Horta", " sim ", models.Int(0)),
		projectRow("p2", "Oficina", "Não", models.Int(0)),
		projectRow("p3", "Reforço", "SIM", models.Int(0)),
	))
	svc := newTestProjectService(t, s)

	active, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "p1", active[0].ID)
	assert.Equal(t, "p3", active[1].ID)
}

func TestProjectService_Create(t *testing.T) {
	s := newTestStack(t, projectsTable())
	svc := newTestProjectService(t, s)
	ctx := context.Background()

	p, err := svc.Create(ctx, operator, models.NewProjectRequest{Name: "Horta", Status: "Sim"})
	require.NoError(t, err)
	assert.Equal(t, "p-new", p.ID)
	assert.Zero(t, p.BeneficiaryCount)
	assert.Equal(t, "Operadora", p.CreatedBy)

	found, err := svc.Find(ctx, "p-new")
	require.NoError(t, err)
	assert.Equal(t, "Horta", found.Name)
}

func TestProjectService_Create_InvalidStatus(t *testing.T) {
	s := newTestStack(t, projectsTable())
	svc := newTestProjectService(t, s)

	_, err := svc.Create(context.Background(), operator, models.NewProjectRequest{Name: "Horta", Status: "talvez"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, readTable(t, s.store, models.TableProjects).Len())
}

func TestProjectService_ToggleStatus(t *testing.T) {
	s := newTestStack(t, projectsTable(
		projectRow("p1", "Horta", "Sim", models.Int(2)),
		projectRow("p2", "Oficina", "sim", models.Int(0)),
	))
	svc := newTestProjectService(t, s)
	ctx := context.Background()

	p, err := svc.ToggleStatus(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, models.ActiveNo, p.Status)
	assert.Equal(t, 2, p.BeneficiaryCount)

	p, err = svc.ToggleStatus(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, models.ActiveYes, p.Status)

	// only the exact "Sim" turns off
	p, err = svc.ToggleStatus(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, models.ActiveYes, p.Status)
}

func TestProjectService_DeleteAndFindMissing(t *testing.T) {
	s := newTestStack(t, projectsTable(projectRow("p1", "Horta", "Sim", models.Int(0))))
	svc := newTestProjectService(t, s)
	ctx := context.Background()

	removed, err := svc.Delete(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Horta", removed.Name)

	_, err = svc.Find(ctx, "p1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Delete(ctx, "p1")
	assert.ErrorIs(t, err, ErrNotFound)
}
