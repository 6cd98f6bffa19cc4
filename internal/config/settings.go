package config

import "os"

type Settings struct {
	Port             string
	DatabaseDSN      string
	SQLitePath       string
	Namespace        string
	Timezone         string
	ReminderSchedule string
	AllowedOrigin    string
	CookieDomain     string

	GeminiAPIKey string
	GeminiModel  string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRefreshToken string
	GoogleCalendarID   string
}

func Load() Settings {
	return Settings{
		Port:             getenv("PORT", "8080"),
		DatabaseDSN:      os.Getenv("DATABASE_DSN"),
		SQLitePath:       getenv("SQLITE_PATH", "goals.db"),
		Namespace:        getenv("STORAGE_NAMESPACE", "goal-storage"),
		Timezone:         os.Getenv("APP_TIMEZONE"),
		ReminderSchedule: getenv("REMINDER_SCHEDULE", "@every 1m"),
		AllowedOrigin:    os.Getenv("ALLOWED_ORIGIN"),
		CookieDomain:     os.Getenv("COOKIE_DOMAIN"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getenv("GEMINI_MODEL", "gemini-2.0-flash"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRefreshToken: os.Getenv("GOOGLE_REFRESH_TOKEN"),
		GoogleCalendarID:   getenv("GOOGLE_CALENDAR_ID", "primary"),
	}
}

// CalendarEnabled reports whether Google Calendar reminders are configured.
func (s Settings) CalendarEnabled() bool {
	return s.GoogleClientID != "" && s.GoogleClientSecret != "" && s.GoogleRefreshToken != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
