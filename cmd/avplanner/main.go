package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"avplanner/internal/config"
	"avplanner/internal/ingest"
	"avplanner/internal/logging"
	"avplanner/internal/perception"
	"avplanner/internal/server"
	"avplanner/internal/store"
)

const version = "1.0.0"

var (
	configPath string
	verbose    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "avplanner",
	Short: "avplanner - personal productivity backend",
	Long: `avplanner is the backend for a personal productivity planner.

It persists tasks, goals, lessons, notes, schedule items, and journal
entries as flat per-category collections, and turns natural-language
prompts (with optional screenshots) into planner records via a
generative backend.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("avplanner %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "avplanner.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func runServe() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logging.Initialize(logging.Settings{
		Debug: cfg.Logging.Debug,
		Level: cfg.Logging.Level,
		Dir:   cfg.Logging.Dir,
	}); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.CloseAll()

	backend, err := openBackend(cfg)
	if err != nil {
		return err
	}
	collections := store.NewCollections(backend)
	defer collections.Close()

	llm := perception.NewGeminiClientWithConfig(perception.GeminiConfig{
		APIKey:          cfg.LLM.APIKey,
		BaseURL:         cfg.LLM.BaseURL,
		Model:           cfg.LLM.Model,
		Timeout:         cfg.LLMTimeout(),
		MaxOutputTokens: cfg.LLM.MaxOutputTokens,
	})
	if cfg.LLM.APIKey == "" {
		logger.Warn("no API key configured; /ai and /chat will fail until GEMINI_API_KEY is set")
	}

	pipeline := ingest.New(llm, collections)
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.New(collections, pipeline, logger, cfg.Server.CORSOrigin).Handler(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening",
			zap.String("addr", cfg.Server.Addr),
			zap.String("storage", cfg.Storage.Backend),
			zap.String("model", cfg.LLM.Model),
		)
		logging.Boot("server listening on %s (storage=%s)", cfg.Server.Addr, cfg.Storage.Backend)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openBackend(cfg *config.Config) (store.DocumentStore, error) {
	switch cfg.Storage.Backend {
	case "file":
		return store.NewFileStore(cfg.Storage.DataDir)
	case "sqlite":
		return store.NewSQLiteStore(cfg.Storage.DatabasePath)
	case "memory":
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
