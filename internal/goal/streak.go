package goal

import (
	"time"

	util "github.com/saulo-duarte/accountability-buddy/internal/utils"
)

const maxStreakDays = 365

type dayTally struct {
	total     int
	completed int
}

// Streak counts consecutive calendar days, walking back from the day of now,
// on which at least one goal was created and every goal created that day is
// completed. The walk stops at the first day failing either condition and
// never looks further back than maxStreakDays.
func (s *Store) Streak(now time.Time) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.computeStreakLocked(now)
}

// CurrentStreak returns the value cached by the last recompute.
func (s *Store) CurrentStreak() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.streak
}

func (s *Store) recalculateStreakLocked(now time.Time) int {
	s.streak = s.computeStreakLocked(now)
	return s.streak
}

func (s *Store) computeStreakLocked(now time.Time) int {
	tallies := s.tallyByDayLocked()
	today := util.DateOf(now, s.loc)

	streak := 0
	for i := 0; i < maxStreakDays; i++ {
		t, ok := tallies[today.AddDays(-i)]
		if !ok || t.total == 0 {
			break
		}
		if t.completed != t.total {
			break
		}
		streak++
	}
	return streak
}

func (s *Store) tallyByDayLocked() map[util.Date]dayTally {
	tallies := make(map[util.Date]dayTally)
	for _, g := range s.goals {
		day := util.DateOf(g.CreatedAt, s.loc)
		t := tallies[day]
		t.total++
		if g.Status == StatusCompleted {
			t.completed++
		}
		tallies[day] = t
	}
	return tallies
}
