package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hargabyte/scout/internal/cache"
	"github.com/hargabyte/scout/internal/config"
	"github.com/hargabyte/scout/internal/engine"
	"github.com/hargabyte/scout/internal/ingest"
)

// resolveRoot returns the absolute scan root: the first positional
// argument when present, the working directory otherwise.
func resolveRoot(args []string) (string, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving root: %w", err)
	}
	return abs, nil
}

// buildEngine returns a populated engine for root. With caching enabled a
// fresh snapshot is imported instead of rescanning; refresh forces the
// scan and updates the snapshot.
func buildEngine(ctx context.Context, root string, cfg *config.Config, refresh bool) (*engine.Engine, error) {
	eng := engine.New()

	var store *cache.Store
	if cfg.Cache.Enabled {
		scoutDir, err := config.EnsureConfigDir(root)
		if err != nil {
			return nil, err
		}
		store, err = cache.Open(scoutDir)
		if err != nil {
			return nil, err
		}
		defer store.Close()

		if !refresh {
			blob, err := store.Load(root, cfg.CacheTTL())
			if err == nil {
				if err := eng.Import(blob); err == nil {
					logger.Debug("loaded graph from snapshot",
						"nodes", eng.Graph().NodeCount(), "edges", eng.Graph().EdgeCount())
					return eng, nil
				}
				logger.Warn("cached snapshot unreadable, rescanning")
			} else {
				logger.Debug("no usable snapshot", "reason", err)
			}
		}
	}

	if err := scanInto(ctx, eng, root, cfg); err != nil {
		return nil, err
	}

	if store != nil {
		blob, err := eng.Export()
		if err != nil {
			return nil, fmt.Errorf("exporting snapshot: %w", err)
		}
		if err := store.Save(root, blob, eng.Graph().NodeCount(), eng.Graph().EdgeCount()); err != nil {
			logger.Warn("saving snapshot failed", "err", err)
		}
	}

	return eng, nil
}

// scanInto walks root and populates the engine's graph.
func scanInto(ctx context.Context, eng *engine.Engine, root string, cfg *config.Config) error {
	scanner, err := ingest.NewScanner(root, ingest.Options{
		Include:     cfg.Scan.Include,
		Exclude:     cfg.Scan.Exclude,
		MaxFileSize: cfg.Scan.MaxFileSize,
	})
	if err != nil {
		return err
	}
	for dir, reason := range scanner.AutoExcluded() {
		logger.Debug("auto-excluded directory", "dir", dir, "reason", reason)
	}

	records, err := scanner.Scan(ctx)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", root, err)
	}

	ingest.Populate(eng, filepath.Base(root), records)
	logger.Debug("scanned tree",
		"root", root, "files", len(records),
		"nodes", eng.Graph().NodeCount(), "edges", eng.Graph().EdgeCount())
	return nil
}

// mustWorkDir returns the current directory or exits.
func mustWorkDir() string {
	wd, err := os.Getwd()
	if err != nil {
		logger.Error("cannot determine working directory", "err", err)
		os.Exit(1)
	}
	return wd
}
