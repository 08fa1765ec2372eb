package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-data-hub/internal/adapter"
	"github.com/MKhiriev/go-data-hub/models"
)

const topCategories = 8

type dashboardModel struct {
	ctx context.Context
	api adapter.ServerAdapter

	summary models.DashboardSummary
	loaded  bool
	loading bool
	errMsg  string
	spinner spinner.Model
}

func newDashboardModel(ctx context.Context, api adapter.ServerAdapter) *dashboardModel {
	return &dashboardModel{
		ctx:     ctx,
		api:     api,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (m *dashboardModel) title() string   { return "Painel" }
func (m *dashboardModel) capturing() bool { return m.errMsg != "" }

func (m *dashboardModel) Init() tea.Cmd {
	m.loading = true
	return tea.Batch(m.spinner.Tick, m.load())
}

func (m *dashboardModel) load() tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		summary, err := api.Dashboard(ctx)
		return dashboardLoadedMsg{summary: summary, err: err}
	}
}

func (m *dashboardModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case refreshMsg:
		if m.loading {
			return nil
		}
		m.loading = true
		return tea.Batch(m.spinner.Tick, m.load())

	case dashboardLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return nil
		}
		m.summary = msg.summary
		m.loaded = true
		return nil

	case spinner.TickMsg:
		if !m.loading {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		if m.errMsg != "" && (msg.String() == "enter" || msg.String() == "esc") {
			m.errMsg = ""
		}
	}
	return nil
}

func (m *dashboardModel) View() string {
	if m.errMsg != "" {
		return errorOverlayModel{message: m.errMsg}.View()
	}
	if !m.loaded {
		return renderPage("PAINEL", m.spinner.View()+" carregando...", "r: atualizar")
	}

	s := m.summary
	var b strings.Builder
	fmt.Fprintf(&b, "Beneficiários cadastrados: %d\n", s.TotalBeneficiaries)
	fmt.Fprintf(&b, "Pessoas atendidas:         %d\n", s.PeopleServed)
	fmt.Fprintf(&b, "Renda per capita média:    %s\n", formatCurrency(s.AveragePerCapitaIncome))
	fmt.Fprintf(&b, "Projetos com beneficiários: %d\n", s.DistinctProjects)
	fmt.Fprintf(&b, "Projetos ativos:           %d\n", s.ActiveProjects)
	b.WriteString("\n")
	b.WriteString(renderBars("Sexo", s.BySex, 0))
	b.WriteString(renderBars("Faixa etária", s.ByAgeBracket, 0))
	b.WriteString(renderBars("Projetos", s.ByProject, topCategories))
	b.WriteString(renderBars("Bairros", s.ByNeighborhood, topCategories))
	b.WriteString(renderBars("Cor / raça / etnia", s.ByRace, 0))
	b.WriteString(renderBars("Identidade de gênero", s.ByGender, 0))
	b.WriteString(renderBars("Tipo de residência", s.ByHousingType, 0))
	b.WriteString(renderBars("Acesso a água", s.WaterAccess, 0))
	b.WriteString(renderBars("Acesso a esgoto", s.SewageAccess, 0))
	b.WriteString(renderBars("Acesso a energia", s.PowerAccess, 0))
	b.WriteString(renderBars("Histórico de hanseníase", s.LeprosyHistory, 0))

	title := "PAINEL"
	if m.loading {
		title += " " + m.spinner.View()
	}
	return renderPage(title, strings.TrimRight(b.String(), "\n"), "r: atualizar")
}
