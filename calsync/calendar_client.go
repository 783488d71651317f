// ABOUTME: Calendar API client setup for Google Calendar integration
// ABOUTME: Creates an authenticated Calendar service and adapts it to the exporter
package calsync

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Calendar is the part of the Calendar API the exporter needs.
type Calendar interface {
	Insert(ctx context.Context, calendarID string, event *calendar.Event) (*calendar.Event, error)
	Update(ctx context.Context, calendarID, eventID string, event *calendar.Event) (*calendar.Event, error)
}

// NewCalendarClient creates a Google Calendar API service from an OAuth token.
func NewCalendarClient(ctx context.Context, oauthConfig *oauth2.Config, token *oauth2.Token) (*calendar.Service, error) {
	if token == nil {
		return nil, fmt.Errorf("token cannot be nil")
	}

	client := oauthConfig.Client(ctx, token)
	service, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return service, nil
}

type googleCalendar struct {
	svc *calendar.Service
}

// NewGoogleCalendar wraps a Calendar API service.
func NewGoogleCalendar(svc *calendar.Service) Calendar {
	return &googleCalendar{svc: svc}
}

func (g *googleCalendar) Insert(ctx context.Context, calendarID string, event *calendar.Event) (*calendar.Event, error) {
	return g.svc.Events.Insert(calendarID, event).Context(ctx).Do()
}

func (g *googleCalendar) Update(ctx context.Context, calendarID, eventID string, event *calendar.Event) (*calendar.Event, error) {
	return g.svc.Events.Update(calendarID, eventID, event).Context(ctx).Do()
}
