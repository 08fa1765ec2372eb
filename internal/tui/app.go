package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-data-hub/internal/adapter"
	"github.com/MKhiriev/go-data-hub/models"
)

// RootModel is a TUI router:
// 1) keeps the tabs and the active one
// 2) handles global keys (ctrl+c, q, tab, r, x, v) unless a page captures input
// 3) routes key presses and page-scoped messages to the active tab
// 4) broadcasts data messages to every tab
type RootModel struct {
	ctx context.Context
	api adapter.ServerAdapter

	pages    []page
	current  int
	identity models.Identity

	buildInfo     models.AppBuildInfo
	serverVersion string
	showBuildInfo bool

	status     string
	quitByUser bool
}

// NewRootModel builds the dashboard, projects and users tabs for identity.
func NewRootModel(ctx context.Context, api adapter.ServerAdapter, identity models.Identity, buildInfo models.AppBuildInfo) RootModel {
	return RootModel{
		ctx: ctx,
		api: api,
		pages: []page{
			newDashboardModel(ctx, api),
			newProjectsModel(ctx, api),
			newUsersModel(ctx, api, identity),
		},
		identity:  identity,
		buildInfo: buildInfo,
	}
}

func (r RootModel) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(r.pages)+1)
	for _, p := range r.pages {
		cmds = append(cmds, p.Init())
	}
	cmds = append(cmds, r.fetchServerVersion())
	return tea.Batch(cmds...)
}

func (r RootModel) fetchServerVersion() tea.Cmd {
	ctx, api := r.ctx, r.api
	return func() tea.Msg {
		v, err := api.Version(ctx)
		if err != nil {
			return nil
		}
		return serverVersionMsg{version: v}
	}
}

func (r RootModel) invalidateCache() tea.Cmd {
	ctx, api := r.ctx, r.api
	return func() tea.Msg {
		return cacheInvalidatedMsg{err: api.InvalidateCache(ctx, "")}
	}
}

func (r RootModel) active() page {
	return r.pages[r.current]
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return r.handleKey(msg)

	case serverVersionMsg:
		r.serverVersion = msg.version
		return r, nil

	case cacheInvalidatedMsg:
		if msg.err != nil {
			r.status = "Falha ao limpar o cache: " + humanizeError(msg.err)
			return r, nil
		}
		r.status = "Cache limpo"
		return r, r.active().Update(refreshMsg{})

	case refreshMsg, copiedMsg:
		return r, r.active().Update(msg)
	}

	cmds := make([]tea.Cmd, 0, len(r.pages))
	for _, p := range r.pages {
		cmds = append(cmds, p.Update(msg))
	}
	return r, tea.Batch(cmds...)
}

func (r RootModel) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	if k.String() == "ctrl+c" {
		r.quitByUser = true
		return r, tea.Quit
	}

	if r.showBuildInfo {
		if key.Matches(k, keys.esc, keys.buildInfo) {
			r.showBuildInfo = false
		}
		return r, nil
	}

	if r.active().capturing() {
		return r, r.active().Update(k)
	}

	switch {
	case key.Matches(k, keys.quit):
		r.quitByUser = true
		return r, tea.Quit
	case key.Matches(k, keys.tab):
		r.current = (r.current + 1) % len(r.pages)
		r.status = ""
		return r, nil
	case key.Matches(k, keys.backtab):
		r.current = (r.current - 1 + len(r.pages)) % len(r.pages)
		r.status = ""
		return r, nil
	case key.Matches(k, keys.buildInfo):
		r.showBuildInfo = true
		return r, nil
	case key.Matches(k, keys.refresh):
		r.status = ""
		return r, r.active().Update(refreshMsg{})
	case key.Matches(k, keys.invalidate):
		r.status = "Limpando cache..."
		return r, r.invalidateCache()
	}

	return r, r.active().Update(k)
}

func (r RootModel) View() string {
	if r.showBuildInfo {
		return appStyle.Render(renderBuildInfoWindow(r.buildInfo, r.serverVersion))
	}

	var b strings.Builder
	for i, p := range r.pages {
		if i > 0 {
			b.WriteString("   ")
		}
		if i == r.current {
			b.WriteString(activeTabStyle.Render(p.title()))
		} else {
			b.WriteString(tabStyle.Render(p.title()))
		}
	}
	if who := r.identity.DisplayName; who != "" {
		b.WriteString("   │ " + who)
	} else if r.identity.Email != "" {
		b.WriteString("   │ " + r.identity.Email)
	}
	b.WriteString("\n\n")
	b.WriteString(r.active().View())
	b.WriteString("\n")

	if r.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(r.status))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab: próxima aba │ r: atualizar │ x: limpar cache │ v: sobre │ q: sair"))

	return appStyle.Render(b.String())
}
