// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of the transport layer. Callers can match against them
// with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrInvalidState is returned by the sign-in callback when the state
	// parameter does not match the signed state cookie.
	ErrInvalidState = errors.New("invalid sign-in state")

	// ErrSignInDenied is returned when the provider reports that the user
	// declined the consent screen.
	ErrSignInDenied = errors.New("sign-in was cancelled")

	ErrInvalidJSON = errors.New("invalid JSON was passed")
)
