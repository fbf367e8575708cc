// Package providers contains the dependency injection providers for bible-tui.
package providers

import "time"

const (
	// shutdownTimeout bounds graceful shutdown of the HTTP server.
	shutdownTimeout = 10 * time.Second
)
