// Package server runs the data hub HTTP API.
//
// It owns the listener lifecycle: startup, signal handling, and graceful
// shutdown that lets in-flight table mutations finish before the process
// exits.
package server
