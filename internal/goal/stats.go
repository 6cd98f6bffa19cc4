package goal

import (
	"math"
	"time"

	util "github.com/saulo-duarte/accountability-buddy/internal/utils"
)

const statsWindowDays = 7

type DayCompletion struct {
	Date           string `json:"date"`
	Total          int    `json:"total"`
	Completed      int    `json:"completed"`
	CompletionRate int    `json:"completion_rate"`
}

type CategoryStats struct {
	Category       Category `json:"category"`
	Total          int      `json:"total"`
	Completed      int      `json:"completed"`
	CompletionRate int      `json:"completion_rate"`
}

type DashboardStats struct {
	Total          int             `json:"total"`
	Completed      int             `json:"completed"`
	Active         int             `json:"active"`
	CompletionRate int             `json:"completion_rate"`
	Streak         int             `json:"streak"`
	LastDays       []DayCompletion `json:"last_days"`
	Categories     []CategoryStats `json:"categories"`
}

// Stats summarizes the collection for a dashboard as of now. LastDays covers
// the week ending on the day of now, oldest first.
func (s *Store) Stats(now time.Time) DashboardStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := DashboardStats{Streak: s.computeStreakLocked(now)}
	byCategory := make(map[Category]*CategoryStats, len(AllCategories))
	for _, c := range AllCategories {
		byCategory[c] = &CategoryStats{Category: c}
	}

	for _, g := range s.goals {
		stats.Total++
		done := g.Status == StatusCompleted
		if done {
			stats.Completed++
		}
		if cs, ok := byCategory[g.Category]; ok {
			cs.Total++
			if done {
				cs.Completed++
			}
		}
	}
	stats.Active = stats.Total - stats.Completed
	stats.CompletionRate = percent(stats.Completed, stats.Total)

	for _, c := range AllCategories {
		cs := byCategory[c]
		cs.CompletionRate = percent(cs.Completed, cs.Total)
		stats.Categories = append(stats.Categories, *cs)
	}

	tallies := s.tallyByDayLocked()
	today := util.DateOf(now, s.loc)
	for i := statsWindowDays - 1; i >= 0; i-- {
		day := today.AddDays(-i)
		t := tallies[day]
		stats.LastDays = append(stats.LastDays, DayCompletion{
			Date:           day.String(),
			Total:          t.total,
			Completed:      t.completed,
			CompletionRate: percent(t.completed, t.total),
		})
	}

	return stats
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
