// Package config builds the run configuration once, in the command layer.
// Library packages receive values from here as parameters and never read
// process environment themselves.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// CacheFileName is the on-disk cache artifact, written into the output
// directory and always excluded from discovery.
const CacheFileName = ".codescribe-cache.json"

// Config is the explicit, immutable run configuration.
type Config struct {
	Root        string
	OutDir      string
	Model       string
	APIKey      string
	Concurrency int
	Offline     bool

	IncludePatterns []string
	ExcludePatterns []string
}

// DefaultIncludes cover the source kinds the classifier understands.
var DefaultIncludes = []string{
	"**/*.ts", "**/*.tsx", "**/*.js", "**/*.jsx",
	"**/*.vue", "**/*.svelte", "**/*.prisma", "**/*.sql",
}

// DefaultExcludes are combined with the project's root ignore file.
var DefaultExcludes = []string{
	".git/", "node_modules/", "dist/", "build/", "coverage/", ".next/",
	"*.min.js", "*.d.ts.map",
}

// Load resolves environment-backed settings. A .env file beside the working
// directory is honored when present; flags are parsed by the caller and
// merged over this.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Model:           firstNonEmpty(os.Getenv("CODESCRIBE_MODEL"), "gemini-2.5-flash"),
		APIKey:          strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		IncludePatterns: DefaultIncludes,
		ExcludePatterns: DefaultExcludes,
	}
}

// Validate rejects configurations the pipeline cannot run with.
func (c Config) Validate() error {
	if c.Root == "" {
		return errors.New("config: root directory is required")
	}
	if !c.Offline && c.APIKey == "" {
		return errors.New("config: GEMINI_API_KEY is not set (use --offline for a dry run)")
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
