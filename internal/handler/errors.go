package handler

import "errors"

// ErrNoHTTPHandler is returned by NewHandlers when cfg.Server.HTTPAddress is
// empty: the hub has no other transport to fall back to.
var ErrNoHTTPHandler = errors.New("handler: http address is empty")
