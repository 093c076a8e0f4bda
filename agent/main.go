package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"labfleet/internal/agent/api"
	"labfleet/internal/agent/command"
	"labfleet/internal/agent/config"
	"labfleet/internal/agent/heartbeat"
	"labfleet/internal/agent/logger"
	"labfleet/internal/agent/poller"
	"labfleet/internal/agent/power"
	"labfleet/internal/agent/screen"
)

func main() {
	cfgPath := flag.String("config", "config/agent.yaml", "Path to configuration file")
	flag.Parse()

	cfg := config.Init(*cfgPath)
	if err := logger.Init(cfg.LogPath); err != nil {
		fmt.Fprintln(os.Stderr, "cannot open log file:", err)
		os.Exit(1)
	}

	logger.Infof("Agent starting: server=%s client_id=%s poll=%v heartbeat=%v allow_destructive=%v",
		cfg.ServerURL(), cfg.ClientID, cfg.PollInterval, cfg.HeartbeatInterval, cfg.AllowDestructive)

	client := api.New(cfg.ServerURL(), cfg.ClientID, cfg.AuthToken)
	executor := command.NewExecutor(screen.NewOSCapturer(), power.NewOSController(), client, cfg.AllowDestructive)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		poller.New(client, executor, cfg.PollInterval).Run(ctx)
	}()
	go func() {
		defer wg.Done()
		heartbeat.New(client, cfg.HeartbeatInterval).Run(ctx)
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received, exiting...")
	wg.Wait()
}
