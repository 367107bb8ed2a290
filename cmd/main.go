package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	"toni/ai"
	"toni/contract"
	"toni/errors"
	"toni/infrastructure/rest"
	"toni/internal"
	"toni/observability"
	"toni/repositories"
	"toni/runtime/workers"
	"toni/services"
	"toni/sink"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
)

// Exit codes to provide meaningful status to the service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Toni backend terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component and blocks until a signal or a server failure.
// Deferred cleanups run before main exits.
func run() (int, error) {
	// 1. Configuration & Logger
	// A missing .env file is normal in production.
	_ = godotenv.Load()

	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Persistence (optional)
	store := openStore(config, log)
	if store != nil {
		defer func() {
			log.Info("Closing store...")
			if err := store.Close(); err != nil {
				log.Warn("Store close failed", "error", err)
			}
		}()
	}

	// 3. Supervised background workers
	sup := workers.NewSupervisor(log, workers.RestartPolicy{Delay: config.RestartDelay, MaxDelay: config.RestartMaxDelay})
	var publisher contract.Publisher = workers.NopPublisher{}
	if store != nil {
		recorder := workers.NewRecorder(log, config.RecorderBufferSize, sink.NewStoreSink(store, log))
		publisher = recorder
		sup.Add(recorder)
	}

	deps := rest.Deps{Store: store, Publisher: publisher}
	if monitoring, err := observability.NewMonitoringManager(); err != nil {
		log.Warn("Process monitoring unavailable", "error", err)
	} else {
		deps.Monitor = monitoring
		sup.Add(workers.NewHealthMonitoringWorker(log, monitoring, config.MetricInterval))
	}

	if config.DebugAddr != "" {
		if badgerStore, ok := store.(*repositories.BadgerStore); ok {
			sup.Add(internal.NewDebugServer(badgerStore.DB(), log, config.DebugAddr, debugStats(badgerStore, deps.Monitor)))
		} else {
			log.Warn("DEBUG_ADDR ignored, the inspector needs a badger:// store")
		}
	}

	// 4. AI services
	completer := ai.NewClient(config.OpenAIAPIKey)
	deps.Secretary = services.NewSecretaryService(log, completer, config.AIDefaults())
	deps.Expert = services.NewExpertService(log, completer, config.AIDefaults())

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Workers outlive the HTTP server so in-flight requests can still record.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	workersDone := make(chan struct{})
	go func() {
		sup.Run(workerCtx)
		close(workersDone)
	}()

	log.Info("Toni backend starting",
		"address", config.Address(),
		"ai_endpoint", lo.CoalesceOrEmpty(config.BackendAIEndpoint, "Not configured"),
		"database", store != nil)

	server := rest.NewServer(log, deps, config.MaxBodyBytes)
	serveErr := server.Start(ctx, config.Address(), config.ShutdownTimeout)

	// 6. Final Cleanup
	stopWorkers()
	<-workersDone
	if serveErr != nil {
		return exitRuntime, fmt.Errorf("http server: %w", serveErr)
	}
	log.Info("Program stopped cleanly")
	return exitOK, nil
}

// openStore returns nil when persistence is disabled or unusable. The server
// keeps running either way.
func openStore(config internal.Config, log *slog.Logger) repositories.IStore {
	store, err := repositories.Open(config.DatabaseURL, log)
	switch {
	case errors.Is(err, errors.ErrPersistenceDisabled):
		log.Warn("DATABASE_URL not configured, running without database")
		log.Warn("Session history and device registry features will be unavailable")
		return nil
	case errors.Is(err, errors.ErrUnsupportedDatabase):
		log.Warn("DATABASE_URL scheme not supported, running without database",
			"supported", strings.Join(repositories.SupportedSchemes, ", "), "error", err)
		return nil
	case err != nil:
		log.Warn("Database initialization failed, continuing without database", "error", err)
		return nil
	}
	log.Info("Database initialized successfully")
	return store
}

type latestStats interface {
	Latest() observability.ProcessStats
}

func debugStats(store *repositories.BadgerStore, monitor latestStats) internal.StatsProvider {
	return func() map[string]any {
		lsm, vlog := store.DB().Size()
		stats := map[string]any{
			"lsm_bytes":  lsm,
			"vlog_bytes": vlog,
			"rendered":   time.Now().UTC().Format(time.RFC3339),
		}
		if monitor != nil {
			latest := monitor.Latest()
			stats["rss_bytes"] = latest.RSSBytes
			stats["goroutines"] = latest.Goroutines
		}
		return stats
	}
}
