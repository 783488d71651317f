// ABOUTME: Shared plumbing for the MCP tool handlers
// ABOUTME: Holds the acting member, parses ids and dates, and turns service errors into tool errors
package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/network"
)

// session is embedded by every handler group. The actor is fixed when the
// server starts and never read from tool input.
type session struct {
	svc   *network.Service
	actor uuid.UUID
}

func parseID(field, value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, fmt.Errorf("%s is required", field)
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %w", field, err)
	}
	return id, nil
}

func parseOptionalID(field, value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := parseID(field, value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// parseTime accepts RFC3339 or a bare date.
func parseTime(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s format (use ISO 8601/RFC3339): %w", field, err)
	}
	return t.UTC(), nil
}

func parseOptionalTime(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseTime(field, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func formatOptionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func formatOptionalID(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

// toolError prefixes the failure kind so the model can tell a bad request
// from a state problem. Internal failures keep their full chain.
func toolError(err error) error {
	var e *network.Error
	if !errors.As(err, &e) || e.Kind == network.KindInternal {
		return err
	}
	return fmt.Errorf("%s: %s", e.Kind, e.Msg)
}
