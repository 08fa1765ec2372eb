// Package http implements the JSON API of the data hub.
//
// It exposes route wiring, request handlers and middleware. Tracing, access
// logging, compression, session authentication and the authorization gate
// run here before requests reach the service layer.
package http
