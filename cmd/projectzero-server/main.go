package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rcrowley/go-metrics"

	"github.com/project-zero/backend/internal/bootstrap"
	"github.com/project-zero/backend/internal/config"
	"github.com/project-zero/backend/internal/database"
	"github.com/project-zero/backend/internal/dictionary"
	"github.com/project-zero/backend/internal/enrichment"
	"github.com/project-zero/backend/internal/export"
	"github.com/project-zero/backend/internal/nlp"
	"github.com/project-zero/backend/internal/server"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(),
	})))

	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func logLevel() slog.Level {
	if os.Getenv("DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func run(ctx context.Context) error {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("godotenv.Load > %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	app := bootstrap.New()
	registry := metrics.DefaultRegistry

	client := dictionary.NewClient(dictionary.Config{
		BaseURL:    cfg.Dictionary.BaseURL,
		MaxRetries: cfg.Dictionary.MaxRetries,
		BaseDelay:  cfg.Dictionary.BaseDelay,
		Timeout:    cfg.Dictionary.Timeout,
		Registry:   registry,
	})
	var lookup enrichment.DefinitionLookup = client
	if cfg.Database.Enabled {
		db, err := database.Open(cfg.Database)
		if err != nil {
			return fmt.Errorf("database.Open > %w", err)
		}
		if err := database.Ping(ctx, db, 5*time.Second); err != nil {
			_ = db.Close()
			return fmt.Errorf("database.Ping > %w", err)
		}
		app.AddShutdownHook("database", func(ctx context.Context) error {
			return db.Close()
		})
		lookup = dictionary.NewArchivingLookup(client, dictionary.NewDBDictionaryRepository(db))
		slog.Default().Info("Archiving dictionary responses", "host", cfg.Database.Host, "database", cfg.Database.Database)
	}

	cache := enrichment.NewCache(lookup,
		enrichment.WithKeywordPause(cfg.Dictionary.KeywordPause),
		enrichment.WithRegistry(registry))

	nlpClient := nlp.NewClient(cfg.NLP.BaseURL, cfg.NLP.Timeout)
	app.AddShutdownHook("nlp client", func(ctx context.Context) error {
		return nlpClient.Close()
	})

	srv := server.NewServer(cache, nlpClient, registry, cfg.Server.CORS)
	httpServer := srv.NewHTTPServer(cfg.Server.Port)

	// Hooks run last-registered first: stop accepting requests, drain
	// keyword batches, then write the snapshot.
	app.AddShutdownHook("dictionary snapshot", func(ctx context.Context) error {
		return writeSnapshot(cfg.Outputs.Directory, cache)
	})
	app.AddShutdownHook("keyword batches", srv.Wait)
	app.AddShutdownHook("http server", httpServer.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		slog.Default().Info("Server is running", "port", cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpServer.ListenAndServe > %w", err)
		}
		return nil
	})
}

func loadConfig() (*config.Config, error) {
	configFile := os.Getenv("PROJECTZERO_CONFIG")
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

func writeSnapshot(directory string, cache *enrichment.Cache) error {
	if cache.Len() == 0 {
		return nil
	}
	path := filepath.Join(directory, fmt.Sprintf("snapshot-%s.yml", time.Now().Format("20060102-150405")))
	if err := export.WriteYAML(path, cache.WordDictionary()); err != nil {
		return fmt.Errorf("export.WriteYAML > %w", err)
	}
	slog.Default().Info("Wrote dictionary snapshot", "path", path, "words", cache.Len())
	return nil
}
