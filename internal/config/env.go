package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// DefaultEnvFiles are loaded from the working directory, most specific first.
var DefaultEnvFiles = []string{".env.local", ".env"}

// LoadEnvFiles loads KEY=VALUE files into the process environment and returns
// the names that were loaded. Variables that are already set are never
// overwritten, so earlier files win over later ones. Missing files are skipped.
func LoadEnvFiles(files ...string) []string {
	var loaded []string
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			slog.Warn("Ignoring unreadable env file", "file", f, "error", err)
			continue
		}
		loaded = append(loaded, f)
	}
	if len(loaded) > 0 {
		slog.Debug("Loaded environment files", "files", loaded)
	}
	return loaded
}
