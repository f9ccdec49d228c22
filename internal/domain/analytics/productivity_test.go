package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifehub/core/internal/domain/entities"
)

func day(t time.Time) string {
	return t.Format(entities.DayLayout)
}

func TestHabitStreakEmpty(t *testing.T) {
	id := uuid.New()
	s := HabitStreak(id, nil, time.Now())
	assert.Equal(t, 0, s.Current)
	assert.Equal(t, 0, s.Longest)
}

func TestHabitStreakCurrentAndLongest(t *testing.T) {
	id := uuid.New()
	today := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	completions := []entities.HabitCompletion{
		// Old five-day run.
		{HabitID: id, Day: day(today.AddDate(0, 0, -20))},
		{HabitID: id, Day: day(today.AddDate(0, 0, -19))},
		{HabitID: id, Day: day(today.AddDate(0, 0, -18))},
		{HabitID: id, Day: day(today.AddDate(0, 0, -17))},
		{HabitID: id, Day: day(today.AddDate(0, 0, -16))},
		// Current three-day run ending yesterday.
		{HabitID: id, Day: day(today.AddDate(0, 0, -3))},
		{HabitID: id, Day: day(today.AddDate(0, 0, -2))},
		{HabitID: id, Day: day(today.AddDate(0, 0, -1))},
		// Other habit's completion must not count.
		{HabitID: uuid.New(), Day: day(today)},
	}

	s := HabitStreak(id, completions, today)
	// Today is still pending, so the run ending yesterday counts.
	assert.Equal(t, 3, s.Current)
	assert.Equal(t, 5, s.Longest)
}

func TestHabitStreakIncludesToday(t *testing.T) {
	id := uuid.New()
	today := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	completions := []entities.HabitCompletion{
		{HabitID: id, Day: day(today.AddDate(0, 0, -1))},
		{HabitID: id, Day: day(today)},
	}

	s := HabitStreak(id, completions, today)
	assert.Equal(t, 2, s.Current)
	assert.Equal(t, 2, s.Longest)
}

func TestHabitStreakBrokenYesterday(t *testing.T) {
	id := uuid.New()
	today := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	completions := []entities.HabitCompletion{
		{HabitID: id, Day: day(today.AddDate(0, 0, -4))},
		{HabitID: id, Day: day(today.AddDate(0, 0, -3))},
	}

	s := HabitStreak(id, completions, today)
	assert.Equal(t, 0, s.Current)
	assert.Equal(t, 2, s.Longest)
}

func TestProductivityEmptyWindow(t *testing.T) {
	score := Productivity(nil, nil, nil, nil, 7*24*time.Hour)
	assert.Equal(t, 0.0, score.Score)
	assert.Equal(t, 0, score.TasksTotal)
}

func TestProductivityAllComplete(t *testing.T) {
	now := time.Now()
	done := now.Add(-time.Hour)
	tasks := []entities.Task{
		{ID: uuid.New(), Status: entities.TaskStatusCompleted, CompletedAt: &done, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: uuid.New(), Status: entities.TaskStatusCompleted, CompletedAt: &done, CreatedAt: now.Add(-3 * time.Hour)},
	}

	habit := entities.Habit{ID: uuid.New(), Frequency: entities.FrequencyDaily}
	var completions []entities.HabitCompletion
	for i := 0; i < 7; i++ {
		completions = append(completions, entities.HabitCompletion{
			HabitID: habit.ID,
			Day:     day(now.AddDate(0, 0, -i)),
		})
	}

	moods := []entities.MoodEntry{
		{Score: 5, Energy: 5, Stress: 1, RecordedAt: now},
	}

	score := Productivity(tasks, []entities.Habit{habit}, completions, moods, 7*24*time.Hour)
	require.Equal(t, 2, score.TasksCompleted)
	assert.InDelta(t, 1.0, score.TaskRate, 1e-9)
	assert.InDelta(t, 1.0, score.HabitRate, 1e-9)
	assert.InDelta(t, 5.0, score.AverageMood, 1e-9)
	assert.InDelta(t, 100.0, score.Score, 1e-9)
}

func TestProductivityIgnoresTasksOutsideWindow(t *testing.T) {
	old := time.Now().AddDate(0, -2, 0)
	tasks := []entities.Task{
		{ID: uuid.New(), Status: entities.TaskStatusTodo, CreatedAt: old},
	}

	score := Productivity(tasks, nil, nil, nil, 7*24*time.Hour)
	assert.Equal(t, 0, score.TasksTotal)
}

func TestProductivityArchivedHabitsExcluded(t *testing.T) {
	now := time.Now()
	habit := entities.Habit{ID: uuid.New(), Frequency: entities.FrequencyDaily, Archived: true}
	completions := []entities.HabitCompletion{
		{HabitID: habit.ID, Day: day(now)},
	}

	score := Productivity(nil, []entities.Habit{habit}, completions, nil, 7*24*time.Hour)
	assert.Equal(t, 0.0, score.HabitRate)
}
