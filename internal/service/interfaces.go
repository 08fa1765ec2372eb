// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the business logic of the data hub: row-level
// mutations over whole-table stores, the authorization gate and the domain
// services behind the API.
package service

import (
	"context"

	"github.com/MKhiriev/go-data-hub/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// MutationEngine applies row-level changes to tables that can only be read
// and replaced whole. Every operation reads the table fresh from the store,
// writes the full new snapshot back and only then invalidates the cache.
// Any error means nothing was written.
type MutationEngine interface {
	// Append adds record at the end of table.
	Append(ctx context.Context, table string, record models.Record) error

	// UpdateField sets one field of the first record matching key and
	// returns the updated record.
	UpdateField(ctx context.Context, table string, key models.Key, field string, value models.Value) (models.Record, error)

	// UpdateFieldFunc is UpdateField with the new value computed from the
	// current one inside the same read-modify-write.
	UpdateFieldFunc(ctx context.Context, table string, key models.Key, field string, fn func(models.Value) models.Value) (models.Record, error)

	// Delete removes the first record matching key and returns it.
	Delete(ctx context.Context, table string, key models.Key) (models.Record, error)

	// IncrementCounts adds one to countColumn of the first record whose
	// keyColumn equals each of names, in a single write. It returns how many
	// records were incremented.
	IncrementCounts(ctx context.Context, table, keyColumn string, names []string, countColumn string) (int, error)
}

// AccessGate decides whether a signed-in e-mail may use the application.
type AccessGate interface {
	IsAllowed(ctx context.Context, email string) (bool, error)
	Authorize(ctx context.Context, identity models.Identity) error
}

type UserService interface {
	List(ctx context.Context) ([]models.AuthorizedUser, error)
	Add(ctx context.Context, by models.Identity, req models.NewUserRequest) (models.AuthorizedUser, error)
	DeleteByEmail(ctx context.Context, by models.Identity, email string) (models.AuthorizedUser, error)
}

type ProjectService interface {
	List(ctx context.Context) ([]models.Project, error)
	ListActive(ctx context.Context) ([]models.Project, error)
	Find(ctx context.Context, id string) (models.Project, error)
	Create(ctx context.Context, by models.Identity, req models.NewProjectRequest) (models.Project, error)
	Delete(ctx context.Context, id string) (models.Project, error)
	ToggleStatus(ctx context.Context, id string) (models.Project, error)
}

type BeneficiaryService interface {
	List(ctx context.Context) (models.Snapshot, error)
	Register(ctx context.Context, by models.Identity, b models.Beneficiary) (models.RegistrationResult, error)
}

type DashboardService interface {
	Summary(ctx context.Context) (models.DashboardSummary, error)
}

// SessionService issues and verifies the session tokens handed out after
// sign-in.
type SessionService interface {
	Issue(ctx context.Context, identity models.Identity) (models.Session, error)
	Parse(ctx context.Context, token string) (models.Identity, error)
}

// CacheService forces tables to be re-read on the next access.
type CacheService interface {
	Invalidate(ctx context.Context, table string) error
	InvalidateAll(ctx context.Context)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// IDGenerator issues identifiers for new rows.
type IDGenerator interface {
	Generate() string
}
