package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

// NewHTTPServer builds the listener with sane timeouts; uploads can carry a
// full screenshot, so the write side gets more room than the read side.
func NewHTTPServer(host string, port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              net.JoinHostPort(host, fmt.Sprintf("%d", port)),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}
}

// Shutdown drains in-flight requests with a short grace period.
func Shutdown(srv *http.Server, grace time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	return srv.Shutdown(ctx)
}
