// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the terminal client's view of the data hub HTTP API.
//
// [ServerAdapter] hides the transport from the client screens. Non-2xx
// responses are mapped by mapHTTPError to the sentinel errors in errors.go,
// so callers can use [errors.Is] (e.g. [ErrForbidden] when the address was
// removed from the authorization table, [ErrBadGateway] when the table store
// refused a call).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-data-hub/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines the calls the terminal client makes against the API.
// Every call except Version needs a session token set through SetToken.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or "" if none is set.
	Token() string

	// Version returns the server build version. No token needed.
	Version(ctx context.Context) (string, error)

	// Me returns the identity the current token belongs to.
	Me(ctx context.Context) (models.Identity, error)

	// Dashboard fetches the aggregated beneficiary and project figures.
	Dashboard(ctx context.Context) (models.DashboardSummary, error)

	// ListProjects returns every project, or only active ones.
	ListProjects(ctx context.Context, onlyActive bool) ([]models.Project, error)

	// CreateProject appends a project and returns it with its generated id.
	CreateProject(ctx context.Context, req models.NewProjectRequest) (models.Project, error)

	// ToggleProject flips the active flag of a project and returns the
	// updated row.
	ToggleProject(ctx context.Context, id string) (models.Project, error)

	// DeleteProject removes a project and returns the removed row.
	DeleteProject(ctx context.Context, id string) (models.Project, error)

	// ListUsers returns the authorization table.
	ListUsers(ctx context.Context) ([]models.AuthorizedUser, error)

	// AddUser authorizes a new address.
	AddUser(ctx context.Context, req models.NewUserRequest) (models.AuthorizedUser, error)

	// DeleteUser revokes an address. Removing the caller's own address
	// fails with [ErrConflict].
	DeleteUser(ctx context.Context, email string) (models.AuthorizedUser, error)

	// ListBeneficiaries returns the raw beneficiaries table.
	ListBeneficiaries(ctx context.Context) (models.Snapshot, error)

	// RegisterBeneficiary stores a beneficiary and bumps the counters of the
	// selected projects.
	RegisterBeneficiary(ctx context.Context, b models.Beneficiary) (models.RegistrationResult, error)

	// InvalidateCache drops the server-side cache of one table, or of every
	// table when table is "".
	InvalidateCache(ctx context.Context, table string) error
}
