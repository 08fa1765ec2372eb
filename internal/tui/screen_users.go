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
	userNameWidth  = 28
	userEmailWidth = 34
)

// usersModel manages the authorization table.
type usersModel struct {
	ctx  context.Context
	api  adapter.ServerAdapter
	self string

	items   []models.AuthorizedUser
	idx     int
	loading bool
	busy    bool
	status  string
	errMsg  string

	confirm *confirmModel
	form    *formModel
}

func newUsersModel(ctx context.Context, api adapter.ServerAdapter, self models.Identity) *usersModel {
	return &usersModel{ctx: ctx, api: api, self: models.NormalizeEmail(self.Email)}
}

func (m *usersModel) title() string { return "Usuários" }

func (m *usersModel) capturing() bool {
	return m.form != nil || m.confirm != nil || m.errMsg != ""
}

func (m *usersModel) Init() tea.Cmd {
	m.loading = true
	return m.load()
}

func (m *usersModel) load() tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		items, err := api.ListUsers(ctx)
		return usersLoadedMsg{items: items, err: err}
	}
}

func (m *usersModel) selected() (models.AuthorizedUser, bool) {
	if m.idx < 0 || m.idx >= len(m.items) {
		return models.AuthorizedUser{}, false
	}
	return m.items[m.idx], true
}

func (m *usersModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case refreshMsg:
		if m.loading || m.busy {
			return nil
		}
		m.loading = true
		return m.load()

	case usersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return nil
		}
		m.items = msg.items
		m.idx = min(m.idx, max(len(m.items)-1, 0))
		return nil

	case userChangedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return nil
		}
		m.status = fmt.Sprintf("Usuário %s %s", msg.user.Email, msg.action)
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

func (m *usersModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.errMsg != "" {
		if key.Matches(msg, keys.enter, keys.esc) {
			m.errMsg = ""
		}
		return nil
	}

	if m.form != nil {
		form, cmd, action := m.form.Update(msg)
		switch action {
		case formCancel:
			m.form = nil
			return nil
		case formSubmit:
			m.form = nil
			m.busy = true
			req := models.NewUserRequest{Name: form.value(0), Email: form.value(1), Phone: form.value(2)}
			return m.change(actionAuthorized, func(ctx context.Context) (models.AuthorizedUser, error) {
				return m.api.AddUser(ctx, req)
			})
		}
		m.form = &form
		return cmd
	}

	if m.confirm != nil {
		switch {
		case key.Matches(msg, keys.yes):
			m.confirm = nil
			u, ok := m.selected()
			if !ok {
				return nil
			}
			m.busy = true
			return m.change(actionRevoked, func(ctx context.Context) (models.AuthorizedUser, error) {
				return m.api.DeleteUser(ctx, u.Email)
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
	case key.Matches(msg, keys.newItem):
		form := newFormModel("AUTORIZAR USUÁRIO",
			newField("Nome", "", true),
			newField("E-mail", "conta Google", true),
			newField("Telefone", "", false),
		)
		m.form = &form
		m.status = ""
	case key.Matches(msg, keys.delete):
		u, ok := m.selected()
		if !ok || m.busy {
			return nil
		}
		if models.NormalizeEmail(u.Email) == m.self {
			m.errMsg = humanizeError(adapter.ErrConflict)
			return nil
		}
		m.confirm = &confirmModel{message: u.Email}
	case key.Matches(msg, keys.copy):
		if u, ok := m.selected(); ok {
			return copyCmd("E-mail", u.Email)
		}
	}
	return nil
}

func (m *usersModel) change(action string, call func(ctx context.Context) (models.AuthorizedUser, error)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		u, err := call(ctx)
		return userChangedMsg{action: action, user: u, err: err}
	}
}

func (m *usersModel) View() string {
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
	if len(m.items) == 0 {
		if m.loading {
			b.WriteString("carregando...")
		} else {
			b.WriteString("Nenhum usuário autorizado")
		}
	}

	for i, u := range m.items {
		line := fmt.Sprintf("%s  %s  %s",
			padRight(fitText(u.Name, userNameWidth), userNameWidth),
			padRight(fitText(u.Email, userEmailWidth), userEmailWidth),
			valueOrDash(u.Phone))
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

	title := fmt.Sprintf("USUÁRIOS AUTORIZADOS (%d)", len(m.items))
	help := "↑/↓: mover │ n: autorizar │ d: remover │ c: copiar e-mail"
	return renderPage(title, strings.TrimRight(b.String(), "\n"), help)
}
