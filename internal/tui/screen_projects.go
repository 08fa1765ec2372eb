package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-data-hub/internal/adapter"
	"github.com/MKhiriev/go-data-hub/models"
)

const (
	actionCreated     = "criado"
	actionToggled     = "alterado"
	actionDeleted     = "excluído"
	actionAuthorized  = "autorizado"
	actionRevoked     = "removido"
	projectNameWidth  = 32
	projectOwnerWidth = 20
)

type projectsModel struct {
	ctx context.Context
	api adapter.ServerAdapter

	items      []models.Project
	idx        int
	onlyActive bool
	loading    bool
	busy       bool
	status     string
	errMsg     string

	confirm *confirmModel
	form    *formModel
}

func newProjectsModel(ctx context.Context, api adapter.ServerAdapter) *projectsModel {
	return &projectsModel{ctx: ctx, api: api}
}

func (m *projectsModel) title() string { return "Projetos" }

func (m *projectsModel) capturing() bool {
	return m.form != nil || m.confirm != nil || m.errMsg != ""
}

func (m *projectsModel) Init() tea.Cmd {
	m.loading = true
	return m.load()
}

func (m *projectsModel) load() tea.Cmd {
	ctx, api, onlyActive := m.ctx, m.api, m.onlyActive
	return func() tea.Msg {
		items, err := api.ListProjects(ctx, onlyActive)
		return projectsLoadedMsg{items: items, err: err}
	}
}

func (m *projectsModel) selected() (models.Project, bool) {
	if m.idx < 0 || m.idx >= len(m.items) {
		return models.Project{}, false
	}
	return m.items[m.idx], true
}

func (m *projectsModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case refreshMsg:
		if m.loading || m.busy {
			return nil
		}
		m.loading = true
		return m.load()

	case projectsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return nil
		}
		m.items = msg.items
		m.idx = min(m.idx, max(len(m.items)-1, 0))
		return nil

	case projectChangedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return nil
		}
		m.status = projectStatus(msg.action, msg.project)
		m.loading = true
		return m.load()

	case copiedMsg:
		if msg.err != nil {
			m.errMsg = "Não foi possível copiar: " + msg.err.Error()
			return nil
		}
		m.status = msg.what + " copiado"
		return nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.form != nil {
		form, cmd, _ := m.form.Update(msg)
		m.form = &form
		return cmd
	}
	return nil
}

func (m *projectsModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.errMsg != "" {
		if key.Matches(msg, keys.enter, keys.esc) {
			m.errMsg = ""
		}
		return nil
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	if m.confirm != nil {
		switch {
		case key.Matches(msg, keys.yes):
			m.confirm = nil
			p, ok := m.selected()
			if !ok {
				return nil
			}
			m.busy = true
			return m.change(actionDeleted, func(ctx context.Context) (models.Project, error) {
				return m.api.DeleteProject(ctx, p.ID)
			})
		case key.Matches(msg, keys.no):
			m.confirm = nil
		}
		return nil
	}

	switch {
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.filter):
		m.onlyActive = !m.onlyActive
		m.idx = 0
		m.loading = true
		return m.load()
	case key.Matches(msg, keys.newItem):
		form := newProjectForm()
		m.form = &form
		m.status = ""
	case key.Matches(msg, keys.toggle):
		p, ok := m.selected()
		if !ok || m.busy {
			return nil
		}
		m.busy = true
		return m.change(actionToggled, func(ctx context.Context) (models.Project, error) {
			return m.api.ToggleProject(ctx, p.ID)
		})
	case key.Matches(msg, keys.delete):
		p, ok := m.selected()
		if !ok || m.busy {
			return nil
		}
		m.confirm = &confirmModel{message: p.Name}
	case key.Matches(msg, keys.copy):
		if p, ok := m.selected(); ok {
			return copyCmd("ID", p.ID)
		}
	}
	return nil
}

func (m *projectsModel) updateForm(msg tea.KeyMsg) tea.Cmd {
	form, cmd, action := m.form.Update(msg)
	switch action {
	case formCancel:
		m.form = nil
		return nil
	case formSubmit:
		m.form = nil
		m.busy = true
		req := models.NewProjectRequest{
			Name:        form.value(0),
			Status:      form.value(1),
			Description: form.value(2),
			Responsible: form.value(3),
		}
		return m.change(actionCreated, func(ctx context.Context) (models.Project, error) {
			return m.api.CreateProject(ctx, req)
		})
	}
	m.form = &form
	return cmd
}

func (m *projectsModel) change(action string, call func(ctx context.Context) (models.Project, error)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		p, err := call(ctx)
		return projectChangedMsg{action: action, project: p, err: err}
	}
}

func newProjectForm() formModel {
	return newFormModel("NOVO PROJETO",
		newField("Nome", "nome do projeto", true),
		newField("Ativo", models.ActiveYes+" / "+models.ActiveNo, false),
		newField("Descrição", "", false),
		newField("Responsável", "", false),
	).setValue(1, models.ActiveYes)
}

func projectStatus(action string, p models.Project) string {
	if action == actionToggled {
		if p.IsActive() {
			return fmt.Sprintf("Projeto %q ativado", p.Name)
		}
		return fmt.Sprintf("Projeto %q desativado", p.Name)
	}
	return fmt.Sprintf("Projeto %q %s", p.Name, action)
}

func (m *projectsModel) View() string {
	if m.errMsg != "" {
		return errorOverlayModel{message: m.errMsg}.View()
	}
	if m.form != nil {
		return m.form.View()
	}
	if m.confirm != nil {
		return m.confirm.View()
	}

	var b strings.Builder
	if m.onlyActive {
		b.WriteString(helpStyle.Render("filtro: somente ativos"))
		b.WriteString("\n\n")
	}

	if len(m.items) == 0 {
		if m.loading {
			b.WriteString("carregando...")
		} else {
			b.WriteString("Nenhum projeto cadastrado")
		}
	}

	for i, p := range m.items {
		active := "não"
		if p.IsActive() {
			active = "sim"
		}
		line := fmt.Sprintf("%s  %-3s  %4d  %s",
			padRight(fitText(p.Name, projectNameWidth), projectNameWidth),
			active,
			p.BeneficiaryCount,
			fitText(valueOrDash(p.Responsible), projectOwnerWidth))
		if i == m.idx {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
	}

	title := fmt.Sprintf("PROJETOS (%d)", len(m.items))
	help := "↑/↓: mover │ n: novo │ t: ativar/desativar │ d: excluir │ c: copiar ID │ a: filtro"
	return renderPage(title, strings.TrimRight(b.String(), "\n"), help)
}
