package tui

import "github.com/MKhiriev/go-data-hub/models"

// refreshMsg asks the active page to reload its data.
type refreshMsg struct{}

type dashboardLoadedMsg struct {
	summary models.DashboardSummary
	err     error
}

type projectsLoadedMsg struct {
	items []models.Project
	err   error
}

// projectChangedMsg reports a create, toggle or delete.
type projectChangedMsg struct {
	action  string
	project models.Project
	err     error
}

type usersLoadedMsg struct {
	items []models.AuthorizedUser
	err   error
}

type userChangedMsg struct {
	action string
	user   models.AuthorizedUser
	err    error
}

type cacheInvalidatedMsg struct {
	err error
}

// copiedMsg reports the result of a clipboard copy.
type copiedMsg struct {
	what string
	err  error
}

type serverVersionMsg struct {
	version string
}
