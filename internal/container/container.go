package container

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/accountability-buddy/internal/auth"
	"github.com/saulo-duarte/accountability-buddy/internal/config"
	"github.com/saulo-duarte/accountability-buddy/internal/goal"
	googlecalendar "github.com/saulo-duarte/accountability-buddy/internal/google_calendar"
	"github.com/saulo-duarte/accountability-buddy/internal/planner"
	"github.com/saulo-duarte/accountability-buddy/internal/reminder"
	"github.com/saulo-duarte/accountability-buddy/internal/router"
	"github.com/saulo-duarte/accountability-buddy/internal/storage"
	util "github.com/saulo-duarte/accountability-buddy/internal/utils"
)

type Container struct {
	Settings         config.Settings
	Location         *time.Location
	GoalContainer    *goal.Container
	PlannerContainer *planner.PlannerContainer
	AuthHandler      *auth.Handler
	Dispatcher       *reminder.Dispatcher

	closers []io.Closer
}

func New(ctx context.Context) *Container {
	config.Init()
	auth.Init()
	if os.Getenv("CRYPTO_KEY") != "" {
		config.InitCrypto()
	}

	settings := config.Load()
	log := config.WithContext(ctx)

	loc, err := util.LoadLocation(settings.Timezone)
	if err != nil {
		log.WithError(err).Fatal("Invalid APP_TIMEZONE")
	}

	c := &Container{
		Settings:    settings,
		Location:    loc,
		AuthHandler: auth.NewHandler(settings.CookieDomain),
	}

	slots, err := c.openSlots(ctx)
	if err != nil {
		log.WithError(err).Fatal("Failed to open goal storage")
	}

	goalContainer, err := goal.NewContainer(ctx, slots, settings.Namespace, loc)
	if err != nil {
		log.WithError(err).Fatal("Failed to load goals")
	}
	c.GoalContainer = goalContainer
	c.PlannerContainer = planner.NewPlannerContainer(ctx, settings, goalContainer.Service)

	notifiers := reminder.MultiNotifier{reminder.LogNotifier{}}
	if settings.CalendarEnabled() {
		calendarContainer, err := googlecalendar.NewGoogleCalendarContainer(ctx, settings)
		if err != nil {
			log.WithError(err).Warn("Google Calendar reminders disabled")
		} else {
			notifiers = append(notifiers, calendarContainer.Notifier)
		}
	}
	c.Dispatcher = reminder.NewDispatcher(goalContainer.Service, notifiers, time.Now)

	return c
}

// openSlots picks postgres when DATABASE_DSN is set and a local SQLite file
// otherwise. With a crypto key the snapshot is sealed before it is stored.
func (c *Container) openSlots(ctx context.Context) (storage.SlotStore, error) {
	var slots storage.SlotStore

	if c.Settings.DatabaseDSN != "" {
		if err := config.Connect(ctx, c.Settings.DatabaseDSN); err != nil {
			return nil, err
		}
		gormSlots, err := storage.NewGormSlotStore(config.DB)
		if err != nil {
			return nil, err
		}
		slots = gormSlots
	} else {
		sqliteSlots, err := storage.NewSQLiteSlotStore(c.Settings.SQLitePath)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, sqliteSlots)
		slots = sqliteSlots
	}

	if config.CryptoEnabled() {
		slots = storage.NewEncryptedSlotStore(slots)
	}
	return slots, nil
}

func (c *Container) Router() *chi.Mux {
	return router.New(router.RouterConfig{
		GoalHandler:    c.GoalContainer.Handler,
		PlannerHandler: c.PlannerContainer.Handler,
		AuthHandler:    c.AuthHandler,
		AllowedOrigin:  c.Settings.AllowedOrigin,
	})
}

func (c *Container) Scheduler() (*reminder.Scheduler, error) {
	return reminder.NewScheduler(c.Dispatcher, c.Settings.ReminderSchedule, c.Location)
}

func (c *Container) Close() {
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil {
			config.Logger.WithError(err).Warn("Failed to close resource")
		}
	}
}
