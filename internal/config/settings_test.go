package config_test

import (
	"testing"

	"github.com/saulo-duarte/accountability-buddy/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STORAGE_NAMESPACE", "")
	t.Setenv("REMINDER_SCHEDULE", "")
	t.Setenv("GOOGLE_CLIENT_ID", "")
	t.Setenv("ALLOWED_ORIGIN", "")

	s := config.Load()
	assert.Empty(t, s.AllowedOrigin)
	assert.Equal(t, "8080", s.Port)
	assert.Equal(t, "goal-storage", s.Namespace)
	assert.Equal(t, "@every 1m", s.ReminderSchedule)
	assert.Equal(t, "primary", s.GoogleCalendarID)
	assert.False(t, s.CalendarEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STORAGE_NAMESPACE", "alice")
	t.Setenv("GOOGLE_CLIENT_ID", "id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret")
	t.Setenv("GOOGLE_REFRESH_TOKEN", "token")

	s := config.Load()
	assert.Equal(t, "9000", s.Port)
	assert.Equal(t, "alice", s.Namespace)
	assert.True(t, s.CalendarEnabled())
}
