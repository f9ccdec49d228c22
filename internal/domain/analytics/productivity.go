package analytics

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lifehub/core/internal/domain/entities"
)

// Productivity score weights. Tasks dominate because completing planned
// work is the strongest signal; mood is normalized from 1-5 to 0-1.
const (
	weightTasks  = 0.5
	weightHabits = 0.3
	weightMood   = 0.2
)

// ProductivityScore is a 0-100 blend of completion rates and mood.
type ProductivityScore struct {
	Score          float64 `json:"score"`
	TaskRate       float64 `json:"task_rate"`
	HabitRate      float64 `json:"habit_rate"`
	AverageMood    float64 `json:"average_mood"`
	TasksCompleted int     `json:"tasks_completed"`
	TasksTotal     int     `json:"tasks_total"`
}

// Productivity blends task completion rate, habit completion rate and
// normalized average mood into a 0-100 score. Components with no data
// are treated as zero, matching the dashboard's "empty window" display.
func Productivity(tasks []entities.Task, habits []entities.Habit, completions []entities.HabitCompletion, moods []entities.MoodEntry, window time.Duration) ProductivityScore {
	cutoff := time.Now().Add(-window)

	var total, done int
	for _, t := range tasks {
		if t.CreatedAt.Before(cutoff) && (t.CompletedAt == nil || t.CompletedAt.Before(cutoff)) {
			continue
		}
		total++
		if t.IsCompleted() {
			done++
		}
	}

	var taskRate float64
	if total > 0 {
		taskRate = float64(done) / float64(total)
	}

	windowDays := int(window.Hours() / 24)
	if windowDays < 1 {
		windowDays = 1
	}
	habitRate := habitCompletionRate(habits, completions, cutoff, windowDays)

	recent := EntriesSince(moods, cutoff)
	avgMood := AverageScore(recent)
	moodNorm := 0.0
	if avgMood > 0 {
		moodNorm = (avgMood - entities.ScoreMin) / (entities.ScoreMax - entities.ScoreMin)
	}

	score := 100 * (weightTasks*taskRate + weightHabits*habitRate + weightMood*moodNorm)

	return ProductivityScore{
		Score:          score,
		TaskRate:       taskRate,
		HabitRate:      habitRate,
		AverageMood:    avgMood,
		TasksCompleted: done,
		TasksTotal:     total,
	}
}

// habitCompletionRate is completions achieved over completions expected
// for active habits since the cutoff.
func habitCompletionRate(habits []entities.Habit, completions []entities.HabitCompletion, cutoff time.Time, days int) float64 {
	var expected, achieved int
	for _, h := range habits {
		if h.Archived {
			continue
		}
		expected += h.WeeklyTarget() * days / 7
		for _, c := range completions {
			if c.HabitID != h.ID {
				continue
			}
			day, err := time.Parse(entities.DayLayout, c.Day)
			if err != nil {
				continue
			}
			if !day.Before(cutoff.Truncate(24 * time.Hour)) {
				achieved++
			}
		}
	}

	if expected == 0 {
		return 0
	}
	rate := float64(achieved) / float64(expected)
	if rate > 1 {
		rate = 1
	}
	return rate
}

// Streak holds the current and longest run of habit completions.
type Streak struct {
	HabitID uuid.UUID `json:"habit_id"`
	Current int       `json:"current"`
	Longest int       `json:"longest"`
}

// HabitStreak computes the current and longest streak for one habit
// from its completion days. A missing completion for today does not
// break the current streak; the day is still in progress.
func HabitStreak(habitID uuid.UUID, completions []entities.HabitCompletion, today time.Time) Streak {
	days := make(map[string]struct{})
	for _, c := range completions {
		if c.HabitID == habitID {
			days[c.Day] = struct{}{}
		}
	}
	if len(days) == 0 {
		return Streak{HabitID: habitID}
	}

	ordered := make([]string, 0, len(days))
	for d := range days {
		ordered = append(ordered, d)
	}
	sort.Strings(ordered)

	// Longest run of consecutive days anywhere in history.
	longest, run := 1, 1
	prev, _ := time.Parse(entities.DayLayout, ordered[0])
	for _, d := range ordered[1:] {
		cur, err := time.Parse(entities.DayLayout, d)
		if err != nil {
			continue
		}
		if cur.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = cur
	}

	// Current streak counts back from today, allowing today itself to
	// be pending.
	current := 0
	day := today.Truncate(24 * time.Hour)
	if _, ok := days[day.Format(entities.DayLayout)]; !ok {
		day = day.Add(-24 * time.Hour)
	}
	for {
		if _, ok := days[day.Format(entities.DayLayout)]; !ok {
			break
		}
		current++
		day = day.Add(-24 * time.Hour)
	}

	return Streak{HabitID: habitID, Current: current, Longest: longest}
}
