// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides input validation and free-text sanitizing for
// the records submitted through the API.
//
// Core concepts:
//   - Validator: generic interface to validate arbitrary values or structures.
//     Supports optional field-level scoping for targeted validation.
//   - Sanitizer: strips markup from free text before it reaches a table.
//
// Validation runs before any store call, so a rejected submission never
// costs a network round trip.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}

// Sanitizer cleans user-supplied free text.
type Sanitizer interface {
	Sanitize(string) string
}
