package calsync

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/bizlink/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
)

func TestNewOAuthConfig(t *testing.T) {
	_, err := NewOAuthConfig(&config.Config{})
	assert.ErrorContains(t, err, "GOOGLE_CLIENT_ID")

	cfg, err := NewOAuthConfig(&config.Config{GoogleClientID: "id", GoogleClientSecret: "secret"})
	require.NoError(t, err)
	assert.Equal(t, []string{calendar.CalendarEventsScope}, cfg.Scopes)
	assert.Equal(t, RedirectURL, cfg.RedirectURL)
}

func TestTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	token := &oauth2.Token{AccessToken: "abc", RefreshToken: "def", Expiry: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)}

	require.NoError(t, SaveToken(path, token))
	loaded, err := LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", loaded.AccessToken)
	assert.Equal(t, "def", loaded.RefreshToken)
	assert.True(t, token.Expiry.Equal(loaded.Expiry))

	_, err = LoadToken(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to open token file")
}
