package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lifehub/core/internal/domain/analytics"
	"github.com/lifehub/core/internal/infrastructure/logger"
	"github.com/lifehub/core/internal/ports"
)

// DashboardReport bundles the derived metrics shown on the dashboard.
// Everything here is computed locally from cached collections; no
// dedicated analytics endpoint exists on the server.
type DashboardReport struct {
	Window        time.Duration                  `json:"window"`
	Productivity  analytics.ProductivityScore    `json:"productivity"`
	MoodAverage   float64                        `json:"mood_average"`
	MoodTrend     analytics.Trend                `json:"mood_trend"`
	Correlations  analytics.CorrelationMatrix    `json:"correlations"`
	ByHour        []analytics.GroupAverage       `json:"by_hour"`
	ByWeekday     []analytics.GroupAverage       `json:"by_weekday"`
	ByWeather     []analytics.GroupAverage       `json:"by_weather"`
	TriggerImpact []analytics.TriggerImpact      `json:"trigger_impact"`
	Streaks       map[uuid.UUID]analytics.Streak `json:"streaks"`
	OverdueTasks  int                            `json:"overdue_tasks"`
}

// AnalyticsService assembles dashboard aggregates from the cached
// collections held by the other services.
type AnalyticsService struct {
	tasks  *TaskService
	habits *HabitService
	moods  *MoodService
	logger *logger.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(tasks *TaskService, habits *HabitService, moods *MoodService, log *logger.Logger) *AnalyticsService {
	return &AnalyticsService{
		tasks:  tasks,
		habits: habits,
		moods:  moods,
		logger: log.WithComponent("analytics"),
	}
}

// Dashboard computes the full report over the given lookback window.
func (s *AnalyticsService) Dashboard(ctx context.Context, window time.Duration) (*DashboardReport, error) {
	if window <= 0 {
		window = 7 * 24 * time.Hour
	}
	since := time.Now().Add(-window)

	tasks, err := s.tasks.ListTasks(ctx, ports.TaskFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	habits, err := s.habits.ListHabits(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load habits: %w", err)
	}

	// Streaks need the full history: a run that started before the
	// window must not be clipped. Productivity rates stay windowed.
	history, err := s.habits.ListCompletions(ctx, ports.CompletionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load completion history: %w", err)
	}

	completions, err := s.habits.ListCompletions(ctx, ports.CompletionFilter{From: &since})
	if err != nil {
		return nil, fmt.Errorf("failed to load completions: %w", err)
	}

	moods, err := s.moods.ListEntries(ctx, ports.MoodFilter{From: &since})
	if err != nil {
		return nil, fmt.Errorf("failed to load mood entries: %w", err)
	}

	triggers, err := s.moods.ListTriggers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load mood triggers: %w", err)
	}

	now := time.Now()
	streaks := make(map[uuid.UUID]analytics.Streak, len(habits))
	for _, h := range habits {
		streaks[h.ID] = analytics.HabitStreak(h.ID, history, now)
	}

	overdue := 0
	for _, t := range tasks {
		if t.IsOverdue() {
			overdue++
		}
	}

	report := &DashboardReport{
		Window:        window,
		Productivity:  analytics.Productivity(tasks, habits, completions, moods, window),
		MoodAverage:   analytics.AverageScore(moods),
		MoodTrend:     analytics.MoodTrend(moods),
		Correlations:  analytics.MoodCorrelations(moods),
		ByHour:        analytics.AverageByHour(moods),
		ByWeekday:     analytics.AverageByWeekday(moods),
		ByWeather:     analytics.AverageByWeather(moods),
		TriggerImpact: analytics.TriggerImpacts(moods, triggers),
		Streaks:       streaks,
		OverdueTasks:  overdue,
	}

	s.logger.Debugw("Dashboard report computed",
		"tasks", len(tasks),
		"habits", len(habits),
		"mood_entries", len(moods),
	)
	return report, nil
}

// MoodInsights recomputes only the mood-derived aggregates, used by
// views that do not need the productivity score.
func (s *AnalyticsService) MoodInsights(ctx context.Context, window time.Duration) (*DashboardReport, error) {
	if window <= 0 {
		window = 30 * 24 * time.Hour
	}
	since := time.Now().Add(-window)

	moods, err := s.moods.ListEntries(ctx, ports.MoodFilter{From: &since})
	if err != nil {
		return nil, fmt.Errorf("failed to load mood entries: %w", err)
	}
	triggers, err := s.moods.ListTriggers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load mood triggers: %w", err)
	}

	return &DashboardReport{
		Window:        window,
		MoodAverage:   analytics.AverageScore(moods),
		MoodTrend:     analytics.MoodTrend(moods),
		Correlations:  analytics.MoodCorrelations(moods),
		ByHour:        analytics.AverageByHour(moods),
		ByWeekday:     analytics.AverageByWeekday(moods),
		ByWeather:     analytics.AverageByWeather(moods),
		TriggerImpact: analytics.TriggerImpacts(moods, triggers),
	}, nil
}
