// ABOUTME: Runtime configuration for bizlink
// ABOUTME: Loads an optional .env file, applies environment overrides and fills XDG defaults
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

const appName = "bizlink"

// Config holds everything the CLI, MCP server and calendar export need.
type Config struct {
	DBPath             string
	User               string // raw --as / BIZLINK_USER value, id or name
	GoogleClientID     string
	GoogleClientSecret string
	CalendarID         string
	TokenPath          string
}

// DataDir returns the XDG data directory for bizlink.
func DataDir() string {
	return filepath.Join(xdg.DataHome, appName)
}

// DefaultDBPath returns $XDG_DATA_HOME/bizlink/bizlink.db.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), appName+".db")
}

// DefaultTokenPath is where the Google OAuth token is kept.
func DefaultTokenPath() string {
	return filepath.Join(DataDir(), "google-credentials.json")
}

// Load reads envFiles (default ".env") if present, then the environment.
// A missing env file is not an error.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// godotenv.Load never overrides variables that are already set
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := &Config{
		DBPath:     DefaultDBPath(),
		CalendarID: "primary",
		TokenPath:  DefaultTokenPath(),
	}
	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("BIZLINK_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("BIZLINK_USER"); v != "" {
		cfg.User = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_ID"); v != "" {
		cfg.GoogleClientID = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_SECRET"); v != "" {
		cfg.GoogleClientSecret = v
	}
	if v := os.Getenv("BIZLINK_CALENDAR_ID"); v != "" {
		cfg.CalendarID = v
	}
	if v := os.Getenv("BIZLINK_TOKEN_PATH"); v != "" {
		cfg.TokenPath = v
	}
}

// Override applies non-empty command-line values on top of the loaded config.
func (c *Config) Override(dbPath, user string) {
	if dbPath != "" {
		c.DBPath = dbPath
	}
	if user != "" {
		c.User = user
	}
}

// HasGoogleCredentials reports whether calendar export can authenticate.
func (c *Config) HasGoogleCredentials() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// UserID parses User as a UUID. Name lookups happen in the CLI, which has the database.
func (c *Config) UserID() (uuid.UUID, bool) {
	id, err := uuid.Parse(c.User)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
