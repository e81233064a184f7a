/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the payroll engine HTTP server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (.env, environment, then flags)
  2. Initialize logger
  3. Open SQLite rule-set store and seed the built-in rule sets
  4. Create API handler and router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (overrides PAYROLL_PORT)
  -db      SQLite database path (overrides PAYROLL_DB)
           Use ":memory:" for in-memory database
  -env     dotenv file to read (default: .env)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection

EXAMPLES:
  ./server -db="./data/payroll.db"
  ./server -db=":memory:" -port=3000
  LOG_FORMAT=json PAYROLL_PARALLEL=true ./server

SEE ALSO:
  - config/config.go: Environment variables
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Rule-set storage
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/payroll-engine/api"
	"github.com/warp/payroll-engine/config"
	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/logger"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/store/sqlite"
)

func main() {
	if err := run(); err != nil {
		logger.Get().Fatal().Err(err).Msg("server failed")
	}
}

func run() error {
	port := flag.Int("port", 0, "HTTP server port (overrides PAYROLL_PORT)")
	dbPath := flag.String("db", "", "SQLite database path (overrides PAYROLL_DB)")
	envFile := flag.String("env", ".env", "dotenv file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		return err
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	logger.Init(cfg.LoggerOptions())
	log := logger.Get()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer store.Close()

	ctx := context.Background()
	presets, err := factory.NewRulesFactory().Presets()
	if err != nil {
		return err
	}
	seeded, err := store.SeedRuleSets(ctx, presets)
	if err != nil {
		return fmt.Errorf("failed to seed rule sets: %w", err)
	}
	if _, err := payroll.ResolveRules(ctx, store, payroll.RuleSetID(cfg.DefaultRuleSet), factory.StatutoryRuleSetID); err != nil {
		return fmt.Errorf("default rule set %q: %w", cfg.DefaultRuleSet, err)
	}
	log.Info().Str("db", cfg.DBPath).Int("seeded", seeded).Msg("rule-set store ready")

	handler := api.NewHandler(store)
	handler.DefaultRuleSet = payroll.RuleSetID(cfg.DefaultRuleSet)
	handler.Parallel = cfg.Parallel

	router := api.NewRouter(handler, api.RouterOptions{
		CORSOrigins: cfg.CORSOrigins,
		SlowRequest: time.Second,
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Str("default_rule_set", cfg.DefaultRuleSet).
			Bool("parallel", cfg.Parallel).
			Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}
