package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/lifehub/core/internal/domain/analytics"
	"github.com/lifehub/core/internal/domain/entities"
	"github.com/lifehub/core/internal/infrastructure/cache"
	"github.com/lifehub/core/internal/infrastructure/logger"
	"github.com/lifehub/core/internal/ports"
)

// HabitService handles habit-related operations
type HabitService struct {
	client   ports.HabitClient
	cache    *cache.Cache
	validate *validator.Validate
	logger   *logger.Logger
}

// NewHabitService creates a new habit service
func NewHabitService(client ports.HabitClient, c *cache.Cache, log *logger.Logger) *HabitService {
	return &HabitService{
		client:   client,
		cache:    c,
		validate: newValidator(),
		logger:   log.WithComponent("habits"),
	}
}

// ListHabits returns habits, served from cache when fresh.
func (s *HabitService) ListHabits(ctx context.Context, includeArchived bool) ([]entities.Habit, error) {
	key := cache.Key(nsHabits, "list", fmt.Sprintf("archived=%t", includeArchived))
	return cache.Fetch(ctx, s.cache, key, func(ctx context.Context) ([]entities.Habit, error) {
		return s.client.List(ctx, includeArchived)
	})
}

// GetHabit retrieves a habit by ID
func (s *HabitService) GetHabit(ctx context.Context, id uuid.UUID) (*entities.Habit, error) {
	key := cache.Key(nsHabits, "id", id.String())
	return cache.Fetch(ctx, s.cache, key, func(ctx context.Context) (*entities.Habit, error) {
		return s.client.Get(ctx, id)
	})
}

// CreateHabit validates and creates a new habit
func (s *HabitService) CreateHabit(ctx context.Context, req ports.CreateHabitRequest) (*entities.Habit, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid habit: %w", err)
	}
	if !req.Frequency.IsValid() {
		return nil, entities.ErrInvalidFrequency
	}

	habit, err := s.client.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}
	s.cache.Invalidate(nsHabits)

	s.logger.Infow("Habit created", "habit_id", habit.ID, "name", habit.Name)
	return habit, nil
}

// UpdateHabit validates and updates a habit
func (s *HabitService) UpdateHabit(ctx context.Context, id uuid.UUID, req ports.UpdateHabitRequest) (*entities.Habit, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid habit update: %w", err)
	}

	habit, err := s.client.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update habit: %w", err)
	}
	s.cache.Invalidate(nsHabits)

	s.logger.Infow("Habit updated", "habit_id", habit.ID)
	return habit, nil
}

// ArchiveHabit hides a habit from active tracking without deleting its
// history.
func (s *HabitService) ArchiveHabit(ctx context.Context, id uuid.UUID) (*entities.Habit, error) {
	archived := true
	return s.UpdateHabit(ctx, id, ports.UpdateHabitRequest{Archived: &archived})
}

// DeleteHabit deletes a habit
func (s *HabitService) DeleteHabit(ctx context.Context, id uuid.UUID) error {
	if err := s.client.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	s.cache.Invalidate(nsHabits)

	s.logger.Infow("Habit deleted", "habit_id", id)
	return nil
}

// ListCompletions returns habit completions, served from cache when fresh.
func (s *HabitService) ListCompletions(ctx context.Context, filter ports.CompletionFilter) ([]entities.HabitCompletion, error) {
	key := cache.Key(nsHabits, "completions", filterKey(filter))
	return cache.Fetch(ctx, s.cache, key, func(ctx context.Context) ([]entities.HabitCompletion, error) {
		return s.client.ListCompletions(ctx, filter)
	})
}

// CompleteHabit records a check-in for the given day (today when zero).
func (s *HabitService) CompleteHabit(ctx context.Context, habitID uuid.UUID, day time.Time, note *string) (*entities.HabitCompletion, error) {
	if day.IsZero() {
		day = time.Now()
	}

	req := ports.CompleteHabitRequest{Day: day.Format(entities.DayLayout), Note: note}
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid completion: %w", err)
	}

	completion, err := s.client.Complete(ctx, habitID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to complete habit: %w", err)
	}
	s.cache.Invalidate(nsHabits)

	s.logger.Infow("Habit completed", "habit_id", habitID, "day", req.Day)
	return completion, nil
}

// UncompleteHabit removes a recorded check-in.
func (s *HabitService) UncompleteHabit(ctx context.Context, completionID uuid.UUID) error {
	if err := s.client.Uncomplete(ctx, completionID); err != nil {
		return fmt.Errorf("failed to remove completion: %w", err)
	}
	s.cache.Invalidate(nsHabits)
	return nil
}

// Streaks computes the current and longest streak per active habit.
func (s *HabitService) Streaks(ctx context.Context) (map[uuid.UUID]analytics.Streak, error) {
	habits, err := s.ListHabits(ctx, false)
	if err != nil {
		return nil, err
	}
	completions, err := s.ListCompletions(ctx, ports.CompletionFilter{})
	if err != nil {
		return nil, err
	}

	today := time.Now()
	streaks := make(map[uuid.UUID]analytics.Streak, len(habits))
	for _, h := range habits {
		streaks[h.ID] = analytics.HabitStreak(h.ID, completions, today)
	}
	return streaks, nil
}
