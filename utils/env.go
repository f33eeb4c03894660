package utils

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"
)

// DefaultEnvFiles lists .env locations in order of preference
var DefaultEnvFiles = []string{
	".env",        // Current directory
	".env.local",  // Local override
	"config/.env", // Config directory
}

// LoadEnvFile merges the first .env file found in locations into v.
// A missing file is not an error; the process environment still applies.
// Returns the file that was loaded, or "" when none exists.
func LoadEnvFile(v *viper.Viper, locations ...string) (string, error) {
	for _, location := range locations {
		if _, err := os.Stat(location); os.IsNotExist(err) {
			continue
		}

		v.SetConfigFile(location)
		v.SetConfigType("env")
		if err := v.MergeInConfig(); err != nil {
			return "", fmt.Errorf("error reading %s file: %w", location, err)
		}

		slog.Debug("loaded environment file", "path", location)
		return location, nil
	}

	slog.Debug("no .env files found, using system environment only")
	return "", nil
}
