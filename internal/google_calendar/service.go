package googlecalendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/saulo-duarte/accountability-buddy/internal/config"
	"github.com/saulo-duarte/accountability-buddy/internal/goal"
	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const DefaultCalendarID = "primary"

var (
	ErrMissingCalendarTokens = errors.New("no google refresh token configured")
	ErrDecryptionFailed      = errors.New("failed to decrypt google refresh token")
)

type EventInserter interface {
	Insert(ctx context.Context, calendarID string, event *gcal.Event) (string, error)
}

// ReminderNotifier delivers goal reminders as calendar events.
type ReminderNotifier struct {
	events     EventInserter
	calendarID string
	now        func() time.Time
}

func NewReminderNotifier(events EventInserter, calendarID string, now func() time.Time) *ReminderNotifier {
	if calendarID == "" {
		calendarID = DefaultCalendarID
	}
	if now == nil {
		now = time.Now
	}
	return &ReminderNotifier{events: events, calendarID: calendarID, now: now}
}

func (n *ReminderNotifier) Notify(ctx context.Context, g goal.Goal) error {
	log := config.WithContext(ctx)

	event := buildReminderEvent(g, n.now())
	eventID, err := n.events.Insert(ctx, n.calendarID, event)
	if err != nil {
		log.WithError(err).WithField("goal_id", g.ID).Error("Failed to insert reminder event")
		return err
	}

	log.Infof("Created calendar event %s for goal %s", eventID, g.ID)
	return nil
}

func buildReminderEvent(g goal.Goal, start time.Time) *gcal.Event {
	minutes := g.TimeFrame
	if minutes < 1 {
		minutes = 1
	}
	end := start.Add(time.Duration(minutes) * time.Minute)

	return &gcal.Event{
		Summary:     "Goal reminder: " + g.Title,
		Description: fmt.Sprintf("%s\n\nCategory: %s\nPriority: %s", g.Description, g.Category, g.Priority),
		Start:       &gcal.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:         &gcal.EventDateTime{DateTime: end.Format(time.RFC3339)},
		Reminders: &gcal.EventReminders{
			UseDefault: false,
			Overrides: []*gcal.EventReminder{
				{Method: "popup", Minutes: 0},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}
}

type calendarEvents struct {
	srv *gcal.Service
}

// NewCalendarEvents builds a Calendar API client that authenticates with the
// encrypted refresh token from settings.
func NewCalendarEvents(ctx context.Context, oauthConfig *oauth2.Config, encryptedRefreshToken string) (EventInserter, error) {
	log := config.WithContext(ctx)

	if encryptedRefreshToken == "" {
		return nil, ErrMissingCalendarTokens
	}

	refreshToken, err := config.Decrypt(encryptedRefreshToken)
	if err != nil {
		log.WithError(err).Error("Failed to decrypt refresh token")
		return nil, ErrDecryptionFailed
	}

	token := &oauth2.Token{
		TokenType:    "Bearer",
		RefreshToken: refreshToken,
		Expiry:       time.Now().Add(-time.Hour),
	}

	client := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, token))
	srv, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		log.WithError(err).Error("Failed to create Calendar service client")
		return nil, err
	}

	return &calendarEvents{srv: srv}, nil
}

func (c *calendarEvents) Insert(ctx context.Context, calendarID string, event *gcal.Event) (string, error) {
	created, err := c.srv.Events.Insert(calendarID, event).Context(ctx).Do()
	if err != nil {
		return "", err
	}
	return created.Id, nil
}
