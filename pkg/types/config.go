package types

import "errors"

// Config holds backend selection and parameters for Backend.Attach.
type Config struct {
	Backend   string        `json:"backend" yaml:"backend" mapstructure:"backend"`
	DataDir   string        `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
	SurrealDB SurrealConfig `json:"surrealdb" yaml:"surrealdb" mapstructure:"surrealdb"`
}

// SurrealConfig holds connection parameters for the surrealdb backend.
type SurrealConfig struct {
	URL       string `json:"url" yaml:"url" mapstructure:"url"`
	Namespace string `json:"namespace" yaml:"namespace" mapstructure:"namespace"`
	Database  string `json:"database" yaml:"database" mapstructure:"database"`
	Username  string `json:"username" yaml:"username" mapstructure:"username"`
	Password  string `json:"password" yaml:"password" mapstructure:"password"`
}

// Supported backend names.
const (
	BackendSQLite    = "sqlite"
	BackendMemory    = "memory"
	BackendSurrealDB = "surrealdb"
)

// Config validation errors.
var (
	ErrBackendEmpty      = errors.New("backend must not be empty")
	ErrBackendUnknown    = errors.New("unknown backend")
	ErrSurrealURLMissing = errors.New("surrealdb url must not be empty")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite:    true,
	BackendMemory:    true,
	BackendSurrealDB: true,
}

// Validate checks that the Config is well-formed.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.Backend == BackendSurrealDB && c.SurrealDB.URL == "" {
		return ErrSurrealURLMissing
	}
	return nil
}
