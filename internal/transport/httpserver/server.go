package httpserver

import (
	"net/http"
	"time"

	"baby-tracker-go/internal/config"
)

// New leaves WriteTimeout unset; chat and live responses stream for longer
// than any fixed limit, and REST routes carry their own timeout.
func New(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
