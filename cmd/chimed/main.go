package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmhodges/clock"
	"github.com/joho/godotenv"

	"github.com/chimelabs/chime/internal/config"
	"github.com/chimelabs/chime/internal/engine"
	"github.com/chimelabs/chime/internal/exact"
	"github.com/chimelabs/chime/internal/logger"
	"github.com/chimelabs/chime/internal/payload"
	"github.com/chimelabs/chime/internal/ring"
	"github.com/chimelabs/chime/internal/sched"
	"github.com/chimelabs/chime/internal/store"
)

// connectWithRetry attempts to connect to Redis with exponential backoff
func connectWithRetry(redisURL string, clk clock.Clock, maxRetries int, log logger.Logger) (*store.RedisStore, error) {
	var st *store.RedisStore
	var err error

	for attempt := 0; attempt < maxRetries; attempt++ {
		st, err = store.NewRedisStore(redisURL, clk)
		if err == nil {
			return st, nil
		}

		// Calculate exponential backoff delay: 2^attempt seconds (max 30 seconds)
		delay := time.Duration(1<<uint(attempt)) * time.Second
		if delay > 30*time.Second {
			delay = 30 * time.Second
		}

		log.Warn("Failed to connect to Redis, retrying",
			"attempt", attempt+1,
			"max_attempts", maxRetries,
			"error", err,
			"retry_in", delay)

		time.Sleep(delay)
	}

	return nil, fmt.Errorf("failed to connect to Redis after %d attempts: %w", maxRetries, err)
}

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	// Set as default logger
	logger.SetDefault(log)

	mainLog := log.WithComponent(logger.ComponentEngine)

	mainLog.Info("Chime daemon starting",
		"redis_url", cfg.RedisURL,
		"snooze_duration", cfg.SnoozeDuration,
		"tick_interval", cfg.TickInterval)

	// Start pprof server on separate port for profiling
	go func() {
		mainLog.Info("Starting pprof server", "port", cfg.PprofPort, "url", fmt.Sprintf("http://localhost:%s/debug/pprof/", cfg.PprofPort))
		if err := http.ListenAndServe(":"+cfg.PprofPort, nil); err != nil {
			mainLog.Error("pprof server failed", "error", err)
		}
	}()

	clk := clock.New()

	// Connect to the alarm store with retry logic
	st, err := connectWithRetry(cfg.RedisURL, clk, 5, mainLog)
	if err != nil {
		mainLog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	mainLog.Info("Successfully connected to Redis")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Exact-alarm service: the precise-wakeup primitive everything
	// registers against
	exactSvc := exact.NewTickService(clk, cfg.TickInterval)
	go exactSvc.Run(ctx)

	// Scheduler reconciles alarm records against registrations
	codec := payload.NewJSONCodec()
	if cfg.PayloadFormat == "protobuf" {
		codec = payload.NewProtobufCodec()
	}
	scheduler := sched.New(st, exactSvc, clk, codec)

	// Execution state machine for ringing sessions
	machine := ring.NewMachine(
		scheduler,
		func() ring.Player { return ring.NewLogPlayer() },
		clk,
		cfg.SnoozeDuration,
		cfg.ConfirmDisplayDuration,
	)

	// SIGHUP signals a wall-clock change (NTP step, timezone change);
	// the dispatcher re-registers everything in response
	clockChanged := make(chan struct{}, 1)
	hupChan := make(chan os.Signal, 1)
	signal.Notify(hupChan, syscall.SIGHUP)
	go func() {
		for range hupChan {
			select {
			case clockChanged <- struct{}{}:
			default:
			}
		}
	}()

	// Dispatcher: firings in, ringing sessions out
	eng := engine.New(exactSvc.Fired(), clockChanged, st, scheduler, machine)
	go eng.Run(ctx)

	// Rebuild all registrations from the store at boot; registrations
	// are not persisted across restarts
	if err := scheduler.RefreshAll(ctx); err != nil {
		if errors.Is(err, exact.ErrDenied) {
			mainLog.Error("Exact alarm capability denied; alarms will not fire until granted", "error", err)
		} else {
			mainLog.Error("Initial registration refresh failed", "error", err)
		}
	} else {
		mainLog.Info("Alarm registrations rebuilt", "registered", exactSvc.Count())
	}

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	mainLog.Info("Shutting down", "signal", sig.String())

	cancel()
	signal.Stop(hupChan)
	close(hupChan)

	mainLog.Info("Chime daemon stopped")
}
