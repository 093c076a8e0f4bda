package main

import (
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"labfleet/internal/agent/api"
	"labfleet/internal/agent/command"
	"labfleet/internal/agent/heartbeat"
	"labfleet/internal/agent/logger"
	"labfleet/internal/agent/poller"
	"labfleet/internal/agent/power"
)

// simfleet runs N simulated lab clients against a backend: real polling and
// heartbeat loops, stubbed screenshot and power hardware. Useful for load
// tests and dashboard demos.

// 1x1 transparent PNG; stands in for a real capture.
const tinyPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="

type stubCapturer struct{}

func (stubCapturer) Capture() ([]byte, error) {
	return base64.StdEncoding.DecodeString(tinyPNG)
}

type stubPower struct{}

func (stubPower) Trigger(action power.Action) error { return nil }

func main() {
	var (
		server   = flag.String("server", "http://127.0.0.1:9400", "Backend base URL")
		count    = flag.Int("count", 10, "Number of simulated clients")
		prefix   = flag.String("prefix", "sim", "Client id prefix")
		poll     = flag.Duration("poll", 5*time.Second, "Poll interval")
		hb       = flag.Duration("heartbeat", 15*time.Second, "Heartbeat interval")
		token    = flag.String("token", "", "Bearer token for outbound calls")
		duration = flag.Duration("duration", 0, "Stop after this long (0 = run until signal)")
	)
	flag.Parse()

	if err := logger.Init(""); err != nil {
		fmt.Fprintln(os.Stderr, "logger init:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	logger.Infof("Simulating %d clients against %s", *count, *server)

	var wg sync.WaitGroup
	for i := 0; i < *count; i++ {
		clientID := fmt.Sprintf("%s-%03d", *prefix, i)
		client := api.New(*server, clientID, *token)
		executor := command.NewExecutor(stubCapturer{}, stubPower{}, client, false)

		wg.Add(2)
		go func() {
			defer wg.Done()
			poller.New(client, executor, *poll).Run(ctx)
		}()
		go func() {
			defer wg.Done()
			heartbeat.New(client, *hb).Run(ctx)
		}()
	}

	<-ctx.Done()
	logger.Info("Simulation stopping...")
	wg.Wait()
}
