package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fatih/color"

	"github.com/project-zero/backend/internal/config"
	"github.com/project-zero/backend/internal/database"
	"github.com/project-zero/backend/internal/dictionary"
	"github.com/project-zero/backend/internal/enrichment"
)

const pingTimeout = 5 * time.Second

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

func newDictionaryClient(cfg *config.Config) *dictionary.Client {
	return dictionary.NewClient(dictionary.Config{
		BaseURL:    cfg.Dictionary.BaseURL,
		MaxRetries: cfg.Dictionary.MaxRetries,
		BaseDelay:  cfg.Dictionary.BaseDelay,
		Timeout:    cfg.Dictionary.Timeout,
	})
}

// openArchive connects to the archive database. The returned close function
// is a no-op when the database is disabled and the repository is nil.
func openArchive(ctx context.Context, cfg *config.Config) (dictionary.DictionaryRepository, func(), error) {
	if !cfg.Database.Enabled {
		return nil, func() {}, nil
	}
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("database.Open > %w", err)
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			slog.Default().Warn("Failed to close database", "error", err)
		}
	}
	if err := database.Ping(ctx, db, pingTimeout); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("database.Ping > %w", err)
	}
	return dictionary.NewDBDictionaryRepository(db), closeDB, nil
}

// newLookup returns the dictionary client, archiving found responses when
// the database is enabled.
func newLookup(ctx context.Context, cfg *config.Config) (enrichment.DefinitionLookup, func(), error) {
	client := newDictionaryClient(cfg)
	repository, closeArchive, err := openArchive(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if repository == nil {
		return client, closeArchive, nil
	}
	return dictionary.NewArchivingLookup(client, repository), closeArchive, nil
}

func printResult(w io.Writer, result dictionary.Result) error {
	bold := color.New(color.Bold)
	var err error
	switch result.Outcome {
	case dictionary.OutcomeFound:
		_, err = fmt.Fprintf(w, "%s: %s\n", bold.Sprint(result.Word), result.Definition)
	case dictionary.OutcomeNotFound:
		_, err = fmt.Fprintf(w, "%s: %s\n", bold.Sprint(result.Word), color.YellowString("no definition found"))
	default:
		_, err = fmt.Fprintf(w, "%s: %s (%v)\n", bold.Sprint(result.Word), color.RedString(result.Outcome.String()), result.Err)
	}
	if err != nil {
		return fmt.Errorf("fmt.Fprintf > %w", err)
	}
	return nil
}
