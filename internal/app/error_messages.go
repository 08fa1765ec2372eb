// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains application-layer message strings shared by the API
// handlers and the terminal client.
//
// The handlers write them into the "error" field of JSON error bodies; the
// client matches on them to tell apart failures that share a status code.
package app

const (
	// MsgOperationNotApplied prefixes every error caused by the table store.
	// Nothing was written when a response carries it.
	MsgOperationNotApplied = "operation not applied"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgNotFound is returned for unknown routes and methods.
	MsgNotFound = "not found"
)
