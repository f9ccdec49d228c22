package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/lifehub/core/internal/domain/entities"
	"github.com/lifehub/core/internal/infrastructure/cache"
	"github.com/lifehub/core/internal/infrastructure/logger"
	"github.com/lifehub/core/internal/ports"
)

// MoodService handles mood tracking operations
type MoodService struct {
	client   ports.MoodClient
	cache    *cache.Cache
	validate *validator.Validate
	logger   *logger.Logger
}

// NewMoodService creates a new mood service
func NewMoodService(client ports.MoodClient, c *cache.Cache, log *logger.Logger) *MoodService {
	return &MoodService{
		client:   client,
		cache:    c,
		validate: newValidator(),
		logger:   log.WithComponent("mood"),
	}
}

// ListEntries returns mood entries, served from cache when fresh.
func (s *MoodService) ListEntries(ctx context.Context, filter ports.MoodFilter) ([]entities.MoodEntry, error) {
	key := cache.Key(nsMood, "entries", filterKey(filter))
	return cache.Fetch(ctx, s.cache, key, func(ctx context.Context) ([]entities.MoodEntry, error) {
		return s.client.ListEntries(ctx, filter)
	})
}

// CreateEntry validates and records a mood entry. Scores outside the
// 1-5 range never reach the API.
func (s *MoodService) CreateEntry(ctx context.Context, req ports.CreateMoodEntryRequest) (*entities.MoodEntry, error) {
	req.TriggerIDs = entities.DedupIDs(req.TriggerIDs)

	if err := s.validate.Struct(req); err != nil {
		if field, ok := scoreBoundsViolation(err); ok {
			return nil, fmt.Errorf("%s: %w", field, entities.ErrScoreOutOfRange)
		}
		return nil, fmt.Errorf("invalid mood entry: %w", err)
	}

	entry, err := s.client.CreateEntry(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create mood entry: %w", err)
	}
	s.cache.Invalidate(nsMood)

	s.logger.Infow("Mood entry recorded", "entry_id", entry.ID, "score", entry.Score)
	return entry, nil
}

// UpdateEntry validates and updates a mood entry
func (s *MoodService) UpdateEntry(ctx context.Context, id uuid.UUID, req ports.UpdateMoodEntryRequest) (*entities.MoodEntry, error) {
	req.TriggerIDs = entities.DedupIDs(req.TriggerIDs)

	if err := s.validate.Struct(req); err != nil {
		if field, ok := scoreBoundsViolation(err); ok {
			return nil, fmt.Errorf("%s: %w", field, entities.ErrScoreOutOfRange)
		}
		return nil, fmt.Errorf("invalid mood update: %w", err)
	}

	entry, err := s.client.UpdateEntry(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update mood entry: %w", err)
	}
	s.cache.Invalidate(nsMood)
	return entry, nil
}

// DeleteEntry deletes a mood entry
func (s *MoodService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	if err := s.client.DeleteEntry(ctx, id); err != nil {
		return fmt.Errorf("failed to delete mood entry: %w", err)
	}
	s.cache.Invalidate(nsMood)
	return nil
}

// ListTriggers returns mood triggers, served from cache when fresh.
func (s *MoodService) ListTriggers(ctx context.Context) ([]entities.MoodTrigger, error) {
	key := cache.Key(nsMood, "triggers")
	return cache.Fetch(ctx, s.cache, key, func(ctx context.Context) ([]entities.MoodTrigger, error) {
		return s.client.ListTriggers(ctx)
	})
}

// CreateTrigger validates and creates a mood trigger
func (s *MoodService) CreateTrigger(ctx context.Context, req ports.CreateTriggerRequest) (*entities.MoodTrigger, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid trigger: %w", err)
	}

	trigger, err := s.client.CreateTrigger(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create trigger: %w", err)
	}
	s.cache.Invalidate(nsMood)

	s.logger.Infow("Trigger created", "trigger_id", trigger.ID, "name", trigger.Name)
	return trigger, nil
}

// DeleteTrigger deletes a mood trigger
func (s *MoodService) DeleteTrigger(ctx context.Context, id uuid.UUID) error {
	if err := s.client.DeleteTrigger(ctx, id); err != nil {
		return fmt.Errorf("failed to delete trigger: %w", err)
	}
	s.cache.Invalidate(nsMood)
	return nil
}

// scoreBoundsViolation reports whether the validation error is a 1-5
// bounds failure on one of the rating fields. Other failures (note or
// weather length, missing fields) keep their own diagnosis.
func scoreBoundsViolation(err error) (string, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "", false
	}
	for _, v := range verrs {
		switch v.Field() {
		case "Score", "Energy", "Stress":
			if v.Tag() == "min" || v.Tag() == "max" {
				return v.Field(), true
			}
		}
	}
	return "", false
}
