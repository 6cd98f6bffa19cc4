package goal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/accountability-buddy/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSlots struct {
	storage.SlotStore
	err error
}

func (f *failingSlots) Put(ctx context.Context, key string, value []byte, expected int64) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.SlotStore.Put(ctx, key, value, expected)
}

// racingSlots lets another writer land just before the first Put.
type racingSlots struct {
	*storage.MemorySlotStore
	before func()
}

func (r *racingSlots) Put(ctx context.Context, key string, value []byte, expected int64) (int64, error) {
	if r.before != nil {
		race := r.before
		r.before = nil
		race()
	}
	return r.MemorySlotStore.Put(ctx, key, value, expected)
}

func validDTO(title string) CreateGoalDTO {
	return CreateGoalDTO{
		Title:             title,
		Description:       "desc",
		TimeFrame:         15,
		Category:          CategoryPersonal,
		Priority:          PriorityMedium,
		Recurrence:        RecurrenceNone,
		ReminderFrequency: ReminderDaily,
	}
}

func newTestService(t *testing.T, slots storage.SlotStore) (Service, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)}
	store := NewStore(WithClock(clock.Now), WithLocation(time.UTC))
	svc := NewService(store, NewRepository(slots, "test-goals"))
	require.NoError(t, svc.Load(context.Background()))
	return svc, clock
}

func TestService_PersistsAndRestores(t *testing.T) {
	ctx := context.Background()
	slots := storage.NewMemorySlotStore()
	svc, _ := newTestService(t, slots)

	a, err := svc.Create(ctx, validDTO("a"))
	require.NoError(t, err)
	b, err := svc.Create(ctx, validDTO("b"))
	require.NoError(t, err)
	st, err := svc.AddSubTask(ctx, a.ID, "step one")
	require.NoError(t, err)
	require.NoError(t, svc.ToggleSubTask(ctx, a.ID, st.ID))
	require.NoError(t, svc.AddDependency(ctx, b.ID, a.ID))
	_, err = svc.UpdateStatus(ctx, a.ID, StatusCompleted)
	require.NoError(t, err)
	require.NoError(t, svc.RecordReminderSent(ctx, b.ID))

	reopened, _ := newTestService(t, slots)
	goals := reopened.List(ctx)
	require.Len(t, goals, 2)
	assert.Equal(t, a.ID, goals[0].ID)
	assert.Equal(t, StatusCompleted, goals[0].Status)
	require.NotNil(t, goals[0].CompletedAt)
	require.Len(t, goals[0].SubTasks, 1)
	assert.True(t, goals[0].SubTasks[0].Completed)
	assert.Equal(t, []uuid.UUID{a.ID}, goals[1].Dependencies)
	assert.NotNil(t, goals[1].LastReminderSent)
}

func TestService_LoadEmptySlot(t *testing.T) {
	svc, _ := newTestService(t, storage.NewMemorySlotStore())
	assert.Empty(t, svc.List(context.Background()))
}

func TestService_CreateValidates(t *testing.T) {
	svc, _ := newTestService(t, storage.NewMemorySlotStore())

	dto := validDTO("")
	_, err := svc.Create(context.Background(), dto)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, svc.List(context.Background()))
}

func TestService_UpdateStatusRejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, storage.NewMemorySlotStore())
	g, err := svc.Create(ctx, validDTO("a"))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, g.ID, Status("done"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_AddSubTaskRequiresTitle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, storage.NewMemorySlotStore())
	g, err := svc.Create(ctx, validDTO("a"))
	require.NoError(t, err)

	_, err = svc.AddSubTask(ctx, g.ID, "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_NotFoundIsNotPersisted(t *testing.T) {
	ctx := context.Background()
	failing := &failingSlots{SlotStore: storage.NewMemorySlotStore(), err: errors.New("should not save")}
	svc, _ := newTestService(t, failing)

	missing := uuid.New()
	assert.ErrorIs(t, svc.Delete(ctx, missing), ErrGoalNotFound)
	_, err := svc.UpdateStatus(ctx, missing, StatusCompleted)
	assert.ErrorIs(t, err, ErrGoalNotFound)
	assert.ErrorIs(t, svc.RecordReminderSent(ctx, missing), ErrGoalNotFound)
}

func TestService_SaveFailureIsReported(t *testing.T) {
	saveErr := errors.New("disk full")
	failing := &failingSlots{SlotStore: storage.NewMemorySlotStore(), err: saveErr}
	svc, _ := newTestService(t, failing)

	_, err := svc.Create(context.Background(), validDTO("a"))
	assert.ErrorIs(t, err, saveErr)
	assert.Empty(t, svc.List(context.Background()), "failed create must not linger in memory")
}

func TestService_SaveFailureRollsBackMutation(t *testing.T) {
	ctx := context.Background()
	failing := &failingSlots{SlotStore: storage.NewMemorySlotStore()}
	svc, _ := newTestService(t, failing)

	g, err := svc.Create(ctx, validDTO("a"))
	require.NoError(t, err)

	failing.err = errors.New("disk full")
	_, err = svc.UpdateStatus(ctx, g.ID, StatusCompleted)
	require.Error(t, err)
	assert.Error(t, svc.Delete(ctx, g.ID))

	got, err := svc.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusNotStarted, got.Status)
	assert.Nil(t, got.CompletedAt)
	assert.Equal(t, 0, svc.Streak(ctx))
}

func TestService_SharedSlotKeepsOtherWriters(t *testing.T) {
	ctx := context.Background()
	slots := storage.NewMemorySlotStore()
	api, _ := newTestService(t, slots)
	seed, err := api.Create(ctx, validDTO("seed"))
	require.NoError(t, err)

	sweeper, _ := newTestService(t, slots)

	created, err := api.Create(ctx, validDTO("created later"))
	require.NoError(t, err)

	due, err := sweeper.DueForReminder(ctx, time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, due, 2)
	for _, g := range due {
		require.NoError(t, sweeper.RecordReminderSent(ctx, g.ID))
	}

	fresh, _ := newTestService(t, slots)
	goals := fresh.List(ctx)
	require.Len(t, goals, 2)
	assert.Equal(t, seed.ID, goals[0].ID)
	assert.Equal(t, created.ID, goals[1].ID)
	assert.NotNil(t, goals[1].LastReminderSent)

	got, err := api.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.LastReminderSent, "api sees the sweeper's write")
}

func TestService_RetriesAfterConcurrentWrite(t *testing.T) {
	ctx := context.Background()
	slots := &racingSlots{MemorySlotStore: storage.NewMemorySlotStore()}
	first, _ := newTestService(t, slots)
	second, _ := newTestService(t, slots)

	var other *Goal
	slots.before = func() {
		var err error
		other, err = second.Create(ctx, validDTO("other process"))
		require.NoError(t, err)
	}

	mine, err := first.Create(ctx, validDTO("this process"))
	require.NoError(t, err)
	require.NotNil(t, other)

	fresh, _ := newTestService(t, slots)
	goals := fresh.List(ctx)
	require.Len(t, goals, 2)
	assert.Equal(t, other.ID, goals[0].ID)
	assert.Equal(t, mine.ID, goals[1].ID)
}

func TestService_StreakAndStatsUseClock(t *testing.T) {
	ctx := context.Background()
	svc, clock := newTestService(t, storage.NewMemorySlotStore())

	g, err := svc.Create(ctx, validDTO("a"))
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, g.ID, StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, 1, svc.Streak(ctx))
	assert.Equal(t, 1, svc.Stats(ctx).Streak)

	clock.Advance(24 * time.Hour)
	assert.Equal(t, 0, svc.Streak(ctx))
}
