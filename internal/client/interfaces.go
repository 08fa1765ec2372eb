// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-data-hub/models"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run() error
}

// UI is the interactive front end driven by App.
type UI interface {
	// Run blocks until the user quits or ctx is cancelled.
	Run(ctx context.Context, identity models.Identity) error

	// Refresh asks the visible screen to reload its data.
	Refresh(ctx context.Context)
}
