package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-data-hub/internal/adapter"
	"github.com/MKhiriev/go-data-hub/models"
)

func TestDashboard_RendersSummary(t *testing.T) {
	api := newAPI(t)
	m := newDashboardModel(context.Background(), api)

	income := 1234.5
	api.EXPECT().Dashboard(gomock.Any()).Return(models.DashboardSummary{
		TotalBeneficiaries:     3,
		PeopleServed:           11,
		AveragePerCapitaIncome: &income,
		DistinctProjects:       2,
		ActiveProjects:         1,
		BySex:                  []models.CategoryCount{{Label: "Feminino", Count: 2}, {Label: "Masculino", Count: 1}},
	}, nil)

	m.loading = true
	m.Update(m.load()())

	assert.False(t, m.loading)
	view := m.View()
	assert.Contains(t, view, "Beneficiários cadastrados: 3")
	assert.Contains(t, view, "Pessoas atendidas:         11")
	assert.Contains(t, view, "R$ 1234,50")
	assert.Contains(t, view, "Feminino")
	assert.Contains(t, view, "Histórico de hanseníase")
}

func TestDashboard_LoadError(t *testing.T) {
	api := newAPI(t)
	m := newDashboardModel(context.Background(), api)

	api.EXPECT().Dashboard(gomock.Any()).Return(models.DashboardSummary{}, adapter.ErrForbidden)
	m.Update(m.load()())

	assert.True(t, m.capturing())
	assert.Contains(t, m.View(), "não está autorizado")

	m.Update(press("enter"))
	assert.False(t, m.capturing())
	assert.Contains(t, m.View(), "carregando")
}

func TestDashboard_RefreshWhileLoadingIsIgnored(t *testing.T) {
	m := newDashboardModel(context.Background(), newAPI(t))

	m.loading = true
	assert.Nil(t, m.Update(refreshMsg{}))

	m.loading = false
	assert.NotNil(t, m.Update(refreshMsg{}))
	assert.True(t, m.loading)
}
