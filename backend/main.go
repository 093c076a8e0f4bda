package main

import (
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"labfleet/backend/global"
	"labfleet/backend/initialize"
	"labfleet/backend/server"
)

func main() {
	cfgPath := flag.String("config", "config/backend.yaml", "Path to configuration file")
	flag.Parse()

	app, err := initialize.Build(*cfgPath)
	if err != nil {
		global.Logger.Fatal().Err(err).Msg("startup failed")
	}

	srv := server.NewHTTPServer(app.Cfg.HTTP.Host, app.Cfg.HTTP.Port, app.Router)
	go func() {
		global.Logger.Info().Str("addr", srv.Addr).Msg("backend listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			global.Logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	global.Logger.Info().Msg("shutdown signal received, draining...")
	if err := server.Shutdown(srv, 10*time.Second); err != nil {
		global.Logger.Error().Err(err).Msg("shutdown incomplete")
	}
}
