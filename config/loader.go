package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/slikit/logger"
)

// FileSystem abstracts file probing for the loader (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem with actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// LoaderConfig holds loader dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// configSearchPaths are probed in order when no explicit file is given.
var configSearchPaths = []string{
	"./config.yml",
	"./config/config.yml",
	"./cmd/slid/config.yml",
	"../config.yml",
}

// envSearchPaths are probed in order when no explicit .env is given.
var envSearchPaths = []string{
	".env.slid",
	".env",
	"config/.env",
}

// Load reads the daemon configuration: YAML file first, then .env, then
// process environment variables, each layer overriding the previous.
// The result has defaults applied and is validated.
func Load(opts ...LoaderOption) (*Config, error) {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}

	cfg := &Config{}
	if err := loadInto(cfg, lc); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadInto(cfg *Config, lc LoaderConfig) error {
	v := viper.New()

	configFile := lc.ConfigFile
	if configFile == "" {
		configFile = firstExisting(lc.FileSystem, configSearchPaths)
	}
	if configFile != "" && lc.FileSystem.Exists(configFile) {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	envFile := lc.EnvFile
	if envFile == "" {
		envFile = firstExisting(lc.FileSystem, envSearchPaths)
	}
	if envFile != "" && lc.FileSystem.Exists(envFile) {
		if err := lc.FileSystem.LoadEnv(envFile); err != nil {
			logger.Warn("failed to load env file", logger.Fields(
				"path", envFile,
				logger.FieldError, err.Error(),
			))
		}
	}

	v.AutomaticEnv()
	bindEnvVars(v)

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unmarshaling config: %w", err)
	}
	return nil
}

func firstExisting(fs FileSystem, paths []string) string {
	for _, path := range paths {
		if fs.Exists(path) {
			return path
		}
	}
	return ""
}

// bindEnvVars maps environment variables onto nested config keys.
// Each variable is bound under every plausible nesting split, so
// BACKEND_BASE_URL reaches backend.base_url and SERVER_ADDR reaches
// server.addr without an explicit binding table.
func bindEnvVars(v *viper.Viper) {
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 {
			continue
		}
		for _, variant := range envKeyVariants(pair[0]) {
			v.Set(variant, pair[1])
		}
	}
}

// envKeyVariants generates nested key spellings for an env var name.
// BACKEND_BASE_URL -> [backend_base_url, backend.base.url, backend.base_url].
func envKeyVariants(envKey string) []string {
	lowerKey := strings.ToLower(envKey)
	parts := strings.Split(lowerKey, "_")
	if len(parts) <= 1 {
		return []string{lowerKey}
	}

	variants := []string{
		lowerKey,
		strings.ReplaceAll(lowerKey, "_", "."),
	}
	for i := 1; i < len(parts); i++ {
		variants = append(variants, strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"))
	}
	return dedupe(variants)
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}
