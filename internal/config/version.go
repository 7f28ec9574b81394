package config

import (
	"os"
	"strings"
)

// GetVersion returns the version from the environment or the VERSION file
func GetVersion() string {
	// Set by CI/CD
	if envVersion := os.Getenv("APP_VERSION"); envVersion != "" {
		return envVersion
	}

	if content, err := os.ReadFile("VERSION"); err == nil {
		return strings.TrimSpace(string(content))
	}

	return "0.1.0"
}
