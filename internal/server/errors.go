// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// ErrNoListener means neither an HTTP address nor a router was configured.
var ErrNoListener = errors.New("server: no listener configured")
