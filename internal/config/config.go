package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvConfigPath   = "CONFIG_PATH"
	EnvDBConnection = "DB_CONNECTION"
	EnvJWTSecret    = "JWT_SECRET"
	EnvJWTExpiry    = "JWT_EXPIRY"
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
)

// AppConfig holds resolved application configuration values.
type AppConfig struct {
	ConfigPath string
}

// LoadFromEnv loads app config from environment variables.
func LoadFromEnv() (AppConfig, error) {
	return AppConfig{ConfigPath: ResolveConfigPath(os.Getenv(EnvConfigPath))}, nil
}

// ResolveConfigPath normalizes the config path and applies defaults.
func ResolveConfigPath(p string) string {
	trimmed := strings.TrimSpace(p)
	if trimmed == "" {
		trimmed = "./config.yaml"
	}
	if abs, err := filepath.Abs(trimmed); err == nil {
		return abs
	}
	return trimmed
}

// defaultDatabaseDSN keeps single-node deployments working without a config
// file by falling back to a local SQLite database.
const defaultDatabaseDSN = "waveup.db"

// LoadDatabaseDSN resolves the database DSN from the environment or the YAML
// config file, defaulting to a local SQLite file.
func LoadDatabaseDSN(configPath string) (string, error) {
	if dsn := strings.TrimSpace(os.Getenv(EnvDBConnection)); dsn != "" {
		return dsn, nil
	}

	// fileConfig maps the YAML fields needed for DSN resolution.
	type fileConfig struct {
		DatabaseDSN string `yaml:"database-dsn"`
		Database    struct {
			DSN string `yaml:"dsn"`
		} `yaml:"database"`
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultDatabaseDSN, nil
		}
		return "", fmt.Errorf("read config file: %w", err)
	}

	var cfg fileConfig
	if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal != nil {
		return "", fmt.Errorf("parse config file: %w", errUnmarshal)
	}

	if dsn := strings.TrimSpace(cfg.DatabaseDSN); dsn != "" {
		return dsn, nil
	}
	if dsn := strings.TrimSpace(cfg.Database.DSN); dsn != "" {
		return dsn, nil
	}
	return defaultDatabaseDSN, nil
}

// JWTConfig holds JWT secret and expiry settings.
type JWTConfig struct {
	Secret string        `yaml:"secret"`
	Expiry time.Duration `yaml:"expiry"`
}

// defaultJWTExpiry is used when the config omits or invalidates JWT expiry.
const defaultJWTExpiry = 30 * 24 * time.Hour

// LoadJWTConfig loads JWT settings from the YAML config file. Environment
// variables override file values.
func LoadJWTConfig(configPath string) (JWTConfig, error) {
	// fileConfig maps the YAML fields needed for JWT settings.
	type fileConfig struct {
		JWT JWTConfig `yaml:"jwt"`
	}

	result := JWTConfig{Expiry: defaultJWTExpiry}

	data, errRead := os.ReadFile(configPath)
	if errRead == nil {
		var cfg fileConfig
		if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal == nil {
			result = cfg.JWT
		}
	}

	if secret := strings.TrimSpace(os.Getenv(EnvJWTSecret)); secret != "" {
		result.Secret = secret
	}
	if expiryRaw := strings.TrimSpace(os.Getenv(EnvJWTExpiry)); expiryRaw != "" {
		if expiry, errParse := time.ParseDuration(expiryRaw); errParse == nil && expiry > 0 {
			result.Expiry = expiry
		}
	}

	if result.Expiry <= 0 {
		result.Expiry = defaultJWTExpiry
	}
	return result, nil
}

// LoadOpenAIAPIKey resolves the OpenAI API key from the environment or the
// YAML config file. An empty key disables AI generation.
func LoadOpenAIAPIKey(configPath string) string {
	if key := strings.TrimSpace(os.Getenv(EnvOpenAIAPIKey)); key != "" {
		return key
	}

	// fileConfig maps the YAML fields needed for the OpenAI key.
	type fileConfig struct {
		OpenAI struct {
			APIKey string `yaml:"api-key"`
		} `yaml:"openai"`
	}

	data, errRead := os.ReadFile(configPath)
	if errRead != nil {
		return ""
	}
	var cfg fileConfig
	if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal != nil {
		return ""
	}
	return strings.TrimSpace(cfg.OpenAI.APIKey)
}

// AdminSeed holds the optional bootstrap admin account.
type AdminSeed struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// LoadAdminSeed reads the bootstrap admin from the YAML config file. Both
// fields must be present for seeding to happen.
func LoadAdminSeed(configPath string) (AdminSeed, bool) {
	// fileConfig maps the YAML fields needed for the admin seed.
	type fileConfig struct {
		Admin AdminSeed `yaml:"admin"`
	}

	data, errRead := os.ReadFile(configPath)
	if errRead != nil {
		return AdminSeed{}, false
	}
	var cfg fileConfig
	if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal != nil {
		return AdminSeed{}, false
	}

	seed := AdminSeed{
		Username: strings.TrimSpace(cfg.Admin.Username),
		Password: cfg.Admin.Password,
	}
	if seed.Username == "" || seed.Password == "" {
		return AdminSeed{}, false
	}
	return seed, true
}
