// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It checks the configured session against the API, starts the periodic
// screen refresh and hands the terminal over to the UI until the user quits.
package client
