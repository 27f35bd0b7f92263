package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sunthewhat/event-cert-api/common"
	"github.com/sunthewhat/event-cert-api/type/shared"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces environment overrides, e.g. EVENTCERT_POSTGRES.
const EnvPrefix = "EVENTCERT"

func LoadConfig() {
	config, err := Load("config.yml")
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	common.Config = config
}

// Load reads path, applies .env and environment overrides and validates the result.
func Load(path string) (*shared.Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to load .env file, using system environment variables", "error", err)
	}

	config := new(shared.Config)

	yml, readErr := os.ReadFile(path)
	if readErr != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, readErr)
	}

	if unmarshalErr := yaml.Unmarshal(yml, config); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", path, unmarshalErr)
	}

	if envErr := envconfig.Process(EnvPrefix, config); envErr != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", envErr)
	}

	if validateErr := validator.New().Struct(config); validateErr != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, validateErr)
	}

	return config, nil
}
