package planner

import (
	"fmt"

	"github.com/saulo-duarte/accountability-buddy/internal/goal"
)

const (
	defaultCount = 3
	maxCount     = 10
)

const systemPrompt = `
You help people break personal goals into small, concrete sub-tasks.

Rules:
1. Each sub-task is a short imperative sentence (at most 80 characters).
2. Sub-tasks must be doable within the goal's time frame.
3. Do not repeat sub-tasks the goal already has.
4. Answer with pure, valid JSON only: an array of strings, no text outside it.

Expected format:

["<sub-task>", "<sub-task>"]
`

func clampCount(n int) int {
	if n <= 0 {
		return defaultCount
	}
	if n > maxCount {
		return maxCount
	}
	return n
}

func BuildUserPrompt(g goal.Goal, count int) string {
	existing := ""
	if len(g.SubTasks) > 0 {
		existing = "Existing sub-tasks:"
		for _, st := range g.SubTasks {
			existing += fmt.Sprintf("\n- %s", st.Title)
		}
		existing += "\n"
	}

	return fmt.Sprintf(
		"Suggest %d sub-tasks for the goal \"%s\".\nDescription: %s\nCategory: %s\nPriority: %s\nTime frame: %d minutes\n%s",
		count, g.Title, g.Description, g.Category, g.Priority, g.TimeFrame, existing,
	)
}
