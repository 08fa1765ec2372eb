// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// AuthorizedUser is one row of the authorization table. Every address listed
// there may use the application; there are no roles.
type AuthorizedUser struct {
	// Name is the display name of the user.
	Name string `json:"nome"`

	// Email is the Google account address used to sign in.
	// Compared case-insensitively.
	Email string `json:"e-mail"`

	// Phone is a free-form contact number.
	Phone string `json:"telefone"`

	// RegisteredAt is the registration timestamp as stored in the table.
	RegisteredAt string `json:"data_cadastro,omitempty"`

	// RegisteredBy is the display name of the operator that added the user.
	RegisteredBy string `json:"cadastrado_por,omitempty"`
}

// UserFromRecord maps an authorization table row to an AuthorizedUser.
func UserFromRecord(r Record) AuthorizedUser {
	return AuthorizedUser{
		Name:         r.Text(ColUserName),
		Email:        r.Text(ColEmail),
		Phone:        r.Text(ColPhone),
		RegisteredAt: r.Text(ColUserRegisteredAt),
		RegisteredBy: r.Text(ColUserRegisteredBy),
	}
}

// NewUserRequest carries the form fields needed to authorize a new address.
type NewUserRequest struct {
	Name  string `json:"nome"`
	Email string `json:"e-mail"`
	Phone string `json:"telefone"`
}

// ToRecord renders the request as a table row stamped with the registration
// time and the operator name.
func (r NewUserRequest) ToRecord(at time.Time, by string) Record {
	return Record{
		ColUserName:         text(r.Name),
		ColEmail:            text(r.Email),
		ColPhone:            text(r.Phone),
		ColUserRegisteredAt: Date(at),
		ColUserRegisteredBy: text(by),
	}
}
