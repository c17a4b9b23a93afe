package config

import (
	"os"
	"strings"
)

const fallbackVersion = "0.1.0"

// GetVersion returns the application version. CI/CD sets APP_VERSION;
// local builds read the VERSION file in the project root.
func GetVersion() string {
	if v := os.Getenv("APP_VERSION"); v != "" {
		return v
	}
	if content, err := os.ReadFile("VERSION"); err == nil {
		if v := strings.TrimSpace(string(content)); v != "" {
			return v
		}
	}
	return fallbackVersion
}
