// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Identity is the caller as reported by the identity provider.
type Identity struct {
	// Email is the verified account address.
	Email string `json:"email"`

	// DisplayName is the human-readable account name.
	DisplayName string `json:"display_name"`

	// LoggedIn is false for anonymous callers.
	LoggedIn bool `json:"is_logged_in"`
}

// Operator returns the name stamped into "registered by" columns: the
// display name, or the address when the provider did not send a name.
func (i Identity) Operator() string {
	if i.DisplayName != "" {
		return i.DisplayName
	}
	return i.Email
}

// SessionClaims are the JWT claims of a session token. The subject holds the
// e-mail address.
type SessionClaims struct {
	jwt.RegisteredClaims

	// Name is the display name captured at sign-in.
	Name string `json:"name,omitempty"`
}

// Identity converts verified claims back into an Identity.
func (c SessionClaims) Identity() Identity {
	return Identity{Email: c.Subject, DisplayName: c.Name, LoggedIn: c.Subject != ""}
}

// Session is returned to clients after a successful sign-in.
type Session struct {
	Token     string   `json:"token"`
	ExpiresAt int64    `json:"expires_at"`
	Identity  Identity `json:"identity"`
}
