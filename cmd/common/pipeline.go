// Package common contains shared wiring for command handlers.
package common

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"card-ingest/internal/adapter"
	"card-ingest/internal/alert"
	"card-ingest/internal/batch"
	"card-ingest/internal/config"
	"card-ingest/internal/ingest"
	"card-ingest/internal/logging"
	"card-ingest/internal/prompt"
	"card-ingest/internal/refdata"
	"card-ingest/internal/resolver"
	"card-ingest/internal/store"
)

// Pipeline bundles everything one ingestion run needs.
type Pipeline struct {
	Registry  *adapter.Registry
	Ingestor  *ingest.Ingestor
	Processor *batch.Processor
	Notifier  alert.Notifier

	pool *pgxpool.Pool
}

// NewRegistry builds the source registry from configuration.
func NewRegistry(cfg *config.Config) *adapter.Registry {
	return adapter.NewDefaultRegistry(cfg.Wealthsimple.CreditURL)
}

// BuildPipeline connects the store and wires the full ingestion pipeline.
// Callers must Close it.
func BuildPipeline(ctx context.Context, cfg *config.Config, log logging.Logger, unattended bool) (*Pipeline, error) {
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("no database configured: set DATABASE_URL")
	}

	tables := refdata.Defaults()
	if cfg.Ingest.RefdataPath != "" {
		loaded, err := refdata.Load(cfg.Ingest.RefdataPath)
		if err != nil {
			return nil, fmt.Errorf("loading reference tables: %w", err)
		}
		tables = loaded
	}

	pool, err := store.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	db := store.NewPostgresStore(pool)

	var prompter prompt.Prompter
	if !unattended {
		prompter = prompt.NewTerminal(os.Stdin, os.Stdout)
	}

	res := resolver.New(tables, db, db, log)
	ingestor := ingest.New(db, db, db, res, prompter, tables, log, unattended)

	var notifier alert.Notifier = alert.Noop{}
	if cfg.Telegram.Enabled {
		tg, err := alert.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID, log)
		if err != nil {
			pool.Close()
			return nil, err
		}
		notifier = tg
	}

	registry := NewRegistry(cfg)
	return &Pipeline{
		Registry:  registry,
		Ingestor:  ingestor,
		Processor: batch.NewProcessor(registry, ingestor, log),
		Notifier:  notifier,
		pool:      pool,
	}, nil
}

// Close releases the database pool.
func (p *Pipeline) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// EnumerateInputs resolves the --filepath/--folder pair to a sorted list of
// input paths. Exactly one of the two must be set for file-backed sources.
func EnumerateInputs(filePath, folder string) ([]string, error) {
	if filePath != "" && folder != "" {
		return nil, fmt.Errorf("--filepath and --folder are mutually exclusive")
	}
	if filePath != "" {
		return []string{filePath}, nil
	}
	if folder == "" {
		return nil, fmt.Errorf("either --filepath or --folder is required for this source")
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("reading folder %s: %w", folder, err)
	}
	var inputs []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		inputs = append(inputs, filepath.Join(folder, entry.Name()))
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no input files in %s", folder)
	}
	sort.Strings(inputs)
	return inputs, nil
}
