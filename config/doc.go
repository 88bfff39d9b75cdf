// Package config loads and validates the daemon configuration.
//
// Configuration comes from a YAML file plus environment variable overrides
// (via Viper), with optional .env files loaded through godotenv. Environment
// variables map onto nested keys by underscore splitting, so BACKEND_BASE_URL
// overrides backend.base_url.
package config
