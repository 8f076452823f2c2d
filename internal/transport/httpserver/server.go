package httpserver

import (
	"net/http"
	"time"

	"court-register-go/internal/config"
)

// New builds the HTTP server. The write timeout leaves room for the router's
// 30 second request timeout.
func New(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}
