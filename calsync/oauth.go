// ABOUTME: OAuth configuration and token storage for the Google Calendar export
// ABOUTME: Builds the oauth2 config from bizlink settings and persists tokens with private permissions
package calsync

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harperreed/bizlink/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

// RedirectURL must match the OAuth client registered in Google Cloud Console.
const RedirectURL = "http://localhost:8080/oauth/callback"

// NewOAuthConfig creates an OAuth2 config allowed to write calendar events.
func NewOAuthConfig(cfg *config.Config) (*oauth2.Config, error) {
	if !cfg.HasGoogleCredentials() {
		return nil, fmt.Errorf("google OAuth credentials not configured. Set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET")
	}

	return &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  RedirectURL,
		Scopes:       []string{calendar.CalendarEventsScope},
		Endpoint:     google.Endpoint,
	}, nil
}

// SaveToken writes token to path, creating the directory if needed.
func SaveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create token file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	return nil
}

func LoadToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open token file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var token oauth2.Token
	if err := json.NewDecoder(f).Decode(&token); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	return &token, nil
}
