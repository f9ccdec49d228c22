package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/lifehub/core/internal/domain/entities"
	"github.com/lifehub/core/internal/infrastructure/cache"
	"github.com/lifehub/core/internal/infrastructure/logger"
	"github.com/lifehub/core/internal/ports"
)

// CalendarService handles calendar event operations
type CalendarService struct {
	client   ports.CalendarClient
	cache    *cache.Cache
	validate *validator.Validate
	logger   *logger.Logger
}

// NewCalendarService creates a new calendar service
func NewCalendarService(client ports.CalendarClient, c *cache.Cache, log *logger.Logger) *CalendarService {
	return &CalendarService{
		client:   client,
		cache:    c,
		validate: newValidator(),
		logger:   log.WithComponent("calendar"),
	}
}

// ListEvents returns events in the window, served from cache when fresh.
func (s *CalendarService) ListEvents(ctx context.Context, from, to time.Time) ([]entities.CalendarEvent, error) {
	key := cache.Key(nsCalendar, "events",
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
	return cache.Fetch(ctx, s.cache, key, func(ctx context.Context) ([]entities.CalendarEvent, error) {
		return s.client.ListEvents(ctx, from, to)
	})
}

// UpcomingEvents returns events starting within the next `days` days.
func (s *CalendarService) UpcomingEvents(ctx context.Context, days int) ([]entities.CalendarEvent, error) {
	now := time.Now()
	return s.ListEvents(ctx, now, now.AddDate(0, 0, days))
}

// CreateEvent validates and creates a calendar event
func (s *CalendarService) CreateEvent(ctx context.Context, req ports.CreateEventRequest) (*entities.CalendarEvent, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid event: %w", err)
	}

	event, err := s.client.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	s.cache.Invalidate(nsCalendar)

	s.logger.Infow("Event created", "event_id", event.ID, "title", event.Title)
	return event, nil
}

// UpdateEvent validates and updates a calendar event
func (s *CalendarService) UpdateEvent(ctx context.Context, id uuid.UUID, req ports.UpdateEventRequest) (*entities.CalendarEvent, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid event update: %w", err)
	}
	if req.StartTime != nil && req.EndTime != nil && !req.EndTime.After(*req.StartTime) {
		return nil, fmt.Errorf("event end time must be after start time")
	}

	event, err := s.client.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	s.cache.Invalidate(nsCalendar)
	return event, nil
}

// DeleteEvent deletes a calendar event
func (s *CalendarService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if err := s.client.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	s.cache.Invalidate(nsCalendar)
	return nil
}
