package server

// Server owns the data hub listener for the lifetime of the process.
type Server interface {
	// RunServer serves until SIGINT, SIGTERM or SIGQUIT arrives, then drains
	// in-flight requests. A listener failure is returned.
	RunServer() error

	Shutdown()
}
