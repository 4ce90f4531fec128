package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/smallprintlabs/clausecheck/internal/config"
	"github.com/smallprintlabs/clausecheck/internal/engine"
	"github.com/smallprintlabs/clausecheck/internal/storage"
)

// initStore opens the pattern store with proper path expansion and runs
// migrations.
func initStore(ctx context.Context) (*storage.SQLiteStore, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	} else {
		dbPath = config.ExpandPath(dbPath)
	}

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initEngine opens the store and wraps it in an analysis engine. The caller
// owns the returned cleanup.
func initEngine(ctx context.Context) (*engine.Engine, func(), error) {
	store, err := initStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = store.Close() }
	return engine.New(store), cleanup, nil
}
