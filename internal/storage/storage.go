// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package storage provides the durable key/value store behind search
// history. Three backends share one interface: a JSON file for the
// default single-user setup, SQLite for a shared data file, and Redis
// when history should live off-host.
package storage

import (
	"fmt"

	"github.com/richmalloy/naturedash/pkg/types"
)

// Store is a durable string key/value store. Get reports presence
// separately from errors so a missing key is not a failure.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
	Close() error
}

// Open builds the store selected by the configuration. An empty
// backend defaults to the file store.
func Open(cfg types.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case types.BackendFile, "":
		return NewFileStore(cfg.Path)
	case types.BackendSQLite:
		return NewSQLiteStore(cfg.Path)
	case types.BackendRedis:
		return NewRedisStore(cfg.RedisAddr, cfg.RedisPassword), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
