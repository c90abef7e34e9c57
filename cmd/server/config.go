package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/phrazzld/webapp/internal/config"
)

// dotenvFile is loaded into the process environment at startup if present.
const dotenvFile = ".env"

// loadAppConfig loads an optional .env file and resolves the settings.
// Variables already set in the environment are never overridden by .env.
func loadAppConfig(lookup func(string) (string, bool)) (*config.Settings, error) {
	if err := godotenv.Load(dotenvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", dotenvFile, err)
	}

	cfg, err := config.LoadWithOptions(config.Options{LookupEnv: lookup})
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
