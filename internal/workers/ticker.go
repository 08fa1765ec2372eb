// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"
)

// DefaultInterval is used when a Ticker is built with a non-positive interval.
const DefaultInterval = time.Minute

// Ticker calls job every interval until its context is cancelled. The first
// call happens one interval after Run starts.
type Ticker struct {
	interval time.Duration
	job      func(ctx context.Context)
}

// NewTicker builds a Ticker. A non-positive interval falls back to
// DefaultInterval.
func NewTicker(interval time.Duration, job func(ctx context.Context)) *Ticker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Ticker{interval: interval, job: job}
}

// Interval reports the effective tick interval.
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// Run implements Worker.
func (t *Ticker) Run(ctx context.Context) {
	if t.job == nil {
		return
	}

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.job(ctx)
		}
	}
}
