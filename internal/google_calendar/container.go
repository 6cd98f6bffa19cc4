package googlecalendar

import (
	"context"
	"time"

	"github.com/saulo-duarte/accountability-buddy/internal/config"
	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
)

type GoogleCalendarContainer struct {
	Notifier *ReminderNotifier
}

func NewGoogleCalendarContainer(ctx context.Context, settings config.Settings) (*GoogleCalendarContainer, error) {
	oauthConfig := &oauth2.Config{
		ClientID:     settings.GoogleClientID,
		ClientSecret: settings.GoogleClientSecret,
		Scopes:       []string{gcal.CalendarEventsScope},
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://accounts.google.com/o/oauth2/auth",
			TokenURL: "https://oauth2.googleapis.com/token",
		},
	}

	events, err := NewCalendarEvents(ctx, oauthConfig, settings.GoogleRefreshToken)
	if err != nil {
		return nil, err
	}

	return &GoogleCalendarContainer{
		Notifier: NewReminderNotifier(events, settings.GoogleCalendarID, time.Now),
	}, nil
}
