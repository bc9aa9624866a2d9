// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by every provider client.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "naturedash/0.1 (github.com/richmalloy/naturedash)").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ProviderConfig holds settings shared by the category resolvers.
type ProviderConfig struct {
	HTTPConfig `yaml:",inline"`

	// EBirdAPIKey authenticates the bird-sighting provider.
	EBirdAPIKey string `json:"ebird_api_key,omitempty" yaml:"ebird_api_key,omitempty"`

	// NPSAPIKey authenticates the national-park catalog provider.
	NPSAPIKey string `json:"nps_api_key,omitempty" yaml:"nps_api_key,omitempty"`

	// QuakeLimit caps displayed earthquakes (default 3).
	QuakeLimit int `json:"quake_limit" yaml:"quake_limit"`

	// BirdLimit caps displayed bird sightings (default 6).
	BirdLimit int `json:"bird_limit" yaml:"bird_limit"`

	// InsectLimit caps displayed insect observations (default 4).
	InsectLimit int `json:"insect_limit" yaml:"insect_limit"`

	// ParkLimit caps displayed parks (default 4).
	ParkLimit int `json:"park_limit" yaml:"park_limit"`

	// FossilLimit caps displayed fossil occurrences (default 3).
	FossilLimit int `json:"fossil_limit" yaml:"fossil_limit"`

	// HeritageLimit caps displayed historical sites (default 6).
	HeritageLimit int `json:"heritage_limit" yaml:"heritage_limit"`

	// ParkRadiusMiles is the catalog distance filter (default 600).
	// The boundary is inclusive.
	ParkRadiusMiles float64 `json:"park_radius_miles" yaml:"park_radius_miles"`
}

// StorageBackend identifies the durable key/value store implementation.
type StorageBackend string

const (
	BackendFile   StorageBackend = "file"
	BackendSQLite StorageBackend = "sqlite"
	BackendRedis  StorageBackend = "redis"
)

// StorageConfig holds settings for the durable key/value store that
// backs the search-history and community lists.
type StorageConfig struct {
	// Backend selects the store: file, sqlite, or redis.
	Backend StorageBackend `json:"backend" yaml:"backend"`

	// Path is the data file location for the file and sqlite backends
	// (default "naturedash.db" next to the data file for sqlite).
	Path string `json:"path" yaml:"path"`

	// RedisAddr is the host:port for the redis backend.
	RedisAddr string `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty"`

	// RedisPassword is the optional redis auth password.
	RedisPassword string `json:"redis_password,omitempty" yaml:"redis_password,omitempty"`
}

// HistoryConfig holds settings for the search-history store.
type HistoryConfig struct {
	// MaxPersonal caps the personal history list (default 10).
	MaxPersonal int `json:"max_personal" yaml:"max_personal"`

	// MaxCommunity caps the community list across sessions (default 20).
	MaxCommunity int `json:"max_community" yaml:"max_community"`
}

// AppConfig groups all configuration for the dashboard.
type AppConfig struct {
	Provider ProviderConfig `json:"provider" yaml:"provider"`
	Storage  StorageConfig  `json:"storage" yaml:"storage"`
	History  HistoryConfig  `json:"history" yaml:"history"`
}
