package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/hobbyist/internal/httpapi"
	"github.com/mesh-intelligence/hobbyist/internal/paths"
	"github.com/mesh-intelligence/hobbyist/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "HOBBYIST"

	cfgKeyBackend     = "backend"
	cfgKeyDataDir     = "data_dir"
	cfgKeyLogLevel    = "log_level"
	cfgKeyHTTPAddr    = "http.addr"
	cfgKeySurrealURL  = "surrealdb.url"
	cfgKeySurrealNS   = "surrealdb.namespace"
	cfgKeySurrealDB   = "surrealdb.database"
	cfgKeySurrealUser = "surrealdb.username"
	cfgKeySurrealPass = "surrealdb.password"
)

// envKeys are the settings that HOBBYIST_* variables may override.
// data_dir is resolved by the paths package, where the environment ranks
// below config.yaml.
var envKeys = []string{
	cfgKeyBackend,
	cfgKeyLogLevel,
	cfgKeyHTTPAddr,
	cfgKeySurrealURL,
	cfgKeySurrealNS,
	cfgKeySurrealDB,
	cfgKeySurrealUser,
	cfgKeySurrealPass,
}

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# hobbyist configuration

# Storage backend: sqlite, memory or surrealdb
backend: sqlite

# Data directory for the sqlite backend (optional; overridable by --data-dir)
# data_dir:

log_level: info

http:
  addr: ":8080"

surrealdb:
  url: ws://localhost:8000
  namespace: hobbyist
  database: hobbyist
  username: root
  password: root
`

// loadConfig reads config.yaml from configDir using Viper. It creates the
// directory and a default config.yaml on first run.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyLogLevel, "info")
	v.SetDefault(cfgKeyHTTPAddr, httpapi.DefaultAddr)
	v.SetDefault(cfgKeySurrealNS, "hobbyist")
	v.SetDefault(cfgKeySurrealDB, "hobbyist")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// storeConfig assembles the backend configuration from flags and viper.
func (a *app) storeConfig() (types.Config, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.v.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, sysErr(fmt.Errorf("resolve data dir: %w", err))
	}
	return types.Config{
		Backend: a.v.GetString(cfgKeyBackend),
		DataDir: dataDir,
		SurrealDB: types.SurrealConfig{
			URL:       a.v.GetString(cfgKeySurrealURL),
			Namespace: a.v.GetString(cfgKeySurrealNS),
			Database:  a.v.GetString(cfgKeySurrealDB),
			Username:  a.v.GetString(cfgKeySurrealUser),
			Password:  a.v.GetString(cfgKeySurrealPass),
		},
	}, nil
}
