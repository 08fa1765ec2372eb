// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the terminal front end of the data hub: a dashboard, the
// projects table and the authorization table, each on its own tab.
package tui

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-data-hub/internal/adapter"
	"github.com/MKhiriev/go-data-hub/internal/logger"
	"github.com/MKhiriev/go-data-hub/models"
)

type TUI struct {
	api       adapter.ServerAdapter
	buildInfo models.AppBuildInfo
	logger    *logger.Logger

	mu      sync.Mutex
	program *tea.Program
}

func New(api adapter.ServerAdapter, buildInfo models.AppBuildInfo, log *logger.Logger) (*TUI, error) {
	if api == nil {
		return nil, errors.New("tui: nil server adapter")
	}
	return &TUI{api: api, buildInfo: buildInfo, logger: log}, nil
}

// Run shows the main screen for identity and blocks until the user quits or
// ctx is cancelled.
func (t *TUI) Run(ctx context.Context, identity models.Identity) error {
	root := NewRootModel(ctx, t.api, identity, t.buildInfo)
	program := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx))

	t.mu.Lock()
	t.program = program
	t.mu.Unlock()
	defer func() {
		t.mu.Lock()
		t.program = nil
		t.mu.Unlock()
	}()

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		t.logger.Err(err).Str("func", "*TUI.Run").Msg("terminal program failed")
		return err
	}

	return nil
}

// Refresh asks the active tab to reload. It is a no-op when the screen is
// not running.
func (t *TUI) Refresh(context.Context) {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program != nil {
		program.Send(refreshMsg{})
	}
}
