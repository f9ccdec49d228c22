package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/lifehub/core/internal/domain/entities"
	"github.com/lifehub/core/internal/infrastructure/cache"
	"github.com/lifehub/core/internal/infrastructure/logger"
	"github.com/lifehub/core/internal/ports"
)

// JournalService handles journal operations
type JournalService struct {
	client   ports.JournalClient
	cache    *cache.Cache
	validate *validator.Validate
	logger   *logger.Logger
}

// NewJournalService creates a new journal service
func NewJournalService(client ports.JournalClient, c *cache.Cache, log *logger.Logger) *JournalService {
	return &JournalService{
		client:   client,
		cache:    c,
		validate: newValidator(),
		logger:   log.WithComponent("journal"),
	}
}

// ListEntries returns journal entries, served from cache when fresh.
func (s *JournalService) ListEntries(ctx context.Context, filter ports.JournalFilter) ([]entities.JournalEntry, error) {
	key := cache.Key(nsJournal, "list", filterKey(filter))
	return cache.Fetch(ctx, s.cache, key, func(ctx context.Context) ([]entities.JournalEntry, error) {
		return s.client.List(ctx, filter)
	})
}

// GetEntry retrieves a journal entry by ID
func (s *JournalService) GetEntry(ctx context.Context, id uuid.UUID) (*entities.JournalEntry, error) {
	key := cache.Key(nsJournal, "id", id.String())
	return cache.Fetch(ctx, s.cache, key, func(ctx context.Context) (*entities.JournalEntry, error) {
		return s.client.Get(ctx, id)
	})
}

// CreateEntry validates and creates a journal entry
func (s *JournalService) CreateEntry(ctx context.Context, req ports.CreateJournalRequest) (*entities.JournalEntry, error) {
	req.Tags = entities.DedupStrings(req.Tags)

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid journal entry: %w", err)
	}

	entry, err := s.client.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create journal entry: %w", err)
	}
	s.cache.Invalidate(nsJournal)

	s.logger.Infow("Journal entry created", "entry_id", entry.ID, "title", entry.Title)
	return entry, nil
}

// UpdateEntry validates and updates a journal entry
func (s *JournalService) UpdateEntry(ctx context.Context, id uuid.UUID, req ports.UpdateJournalRequest) (*entities.JournalEntry, error) {
	req.Tags = entities.DedupStrings(req.Tags)

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid journal update: %w", err)
	}

	entry, err := s.client.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update journal entry: %w", err)
	}
	s.cache.Invalidate(nsJournal)
	return entry, nil
}

// DeleteEntry deletes a journal entry
func (s *JournalService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	if err := s.client.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}
	s.cache.Invalidate(nsJournal)
	return nil
}
