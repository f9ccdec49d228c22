package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/lifehub/core/internal/adapters/repository"
	"github.com/lifehub/core/internal/domain/entities"
	"github.com/lifehub/core/internal/infrastructure/cache"
	"github.com/lifehub/core/internal/infrastructure/logger"
	"github.com/lifehub/core/internal/ports"
)

// PreferenceService couples the server-side preferences document with
// the locally persisted UI state (theme override, sidebar, search).
type PreferenceService struct {
	client   ports.PreferencesClient
	local    ports.PreferenceRepository
	cache    *cache.Cache
	validate *validator.Validate
	logger   *logger.Logger
}

// NewPreferenceService creates a new preference service
func NewPreferenceService(client ports.PreferencesClient, local ports.PreferenceRepository, c *cache.Cache, log *logger.Logger) *PreferenceService {
	return &PreferenceService{
		client:   client,
		local:    local,
		cache:    c,
		validate: newValidator(),
		logger:   log.WithComponent("preferences"),
	}
}

// GetPreferences returns the server preferences, served from cache when fresh.
func (s *PreferenceService) GetPreferences(ctx context.Context) (*entities.Preferences, error) {
	key := cache.Key(nsPreferences, "doc")
	return cache.Fetch(ctx, s.cache, key, func(ctx context.Context) (*entities.Preferences, error) {
		return s.client.Get(ctx)
	})
}

// UpdatePreferences validates and updates the server preferences
func (s *PreferenceService) UpdatePreferences(ctx context.Context, req ports.UpdatePreferencesRequest) (*entities.Preferences, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid preferences: %w", err)
	}

	prefs, err := s.client.Update(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update preferences: %w", err)
	}
	s.cache.Invalidate(nsPreferences)

	s.logger.Infow("Preferences updated")
	return prefs, nil
}

// ListThemes returns custom themes, served from cache when fresh.
func (s *PreferenceService) ListThemes(ctx context.Context) ([]entities.CustomTheme, error) {
	key := cache.Key(nsPreferences, "themes")
	return cache.Fetch(ctx, s.cache, key, func(ctx context.Context) ([]entities.CustomTheme, error) {
		return s.client.ListThemes(ctx)
	})
}

// CreateTheme validates and creates a custom theme
func (s *PreferenceService) CreateTheme(ctx context.Context, req ports.CreateThemeRequest) (*entities.CustomTheme, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid theme: %w", err)
	}

	theme, err := s.client.CreateTheme(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create theme: %w", err)
	}
	s.cache.Invalidate(nsPreferences)
	return theme, nil
}

// DeleteTheme deletes a custom theme
func (s *PreferenceService) DeleteTheme(ctx context.Context, id uuid.UUID) error {
	if err := s.client.DeleteTheme(ctx, id); err != nil {
		return fmt.Errorf("failed to delete theme: %w", err)
	}
	s.cache.Invalidate(nsPreferences)
	return nil
}

// Local UI state accessors. Unset keys fall back to defaults the same
// way a fresh browser profile would.

func (s *PreferenceService) LocalTheme(ctx context.Context) (entities.ThemeMode, error) {
	v, err := s.local.Get(ctx, repository.PrefTheme)
	if err != nil {
		if errors.Is(err, repository.ErrPreferenceNotFound) {
			return entities.ThemeSystem, nil
		}
		return "", err
	}

	mode := entities.ThemeMode(v)
	if !mode.IsValid() {
		return entities.ThemeSystem, nil
	}
	return mode, nil
}

func (s *PreferenceService) SetLocalTheme(ctx context.Context, mode entities.ThemeMode) error {
	if !mode.IsValid() {
		return fmt.Errorf("invalid theme mode %q", mode)
	}
	return s.local.Set(ctx, repository.PrefTheme, string(mode))
}

func (s *PreferenceService) SidebarOpen(ctx context.Context) (bool, error) {
	v, err := s.local.Get(ctx, repository.PrefSidebarOpen)
	if err != nil {
		if errors.Is(err, repository.ErrPreferenceNotFound) {
			return true, nil
		}
		return false, err
	}
	open, err := strconv.ParseBool(v)
	if err != nil {
		return true, nil
	}
	return open, nil
}

func (s *PreferenceService) SetSidebarOpen(ctx context.Context, open bool) error {
	return s.local.Set(ctx, repository.PrefSidebarOpen, strconv.FormatBool(open))
}

func (s *PreferenceService) SearchQuery(ctx context.Context) (string, error) {
	v, err := s.local.Get(ctx, repository.PrefSearchQuery)
	if err != nil {
		if errors.Is(err, repository.ErrPreferenceNotFound) {
			return "", nil
		}
		return "", err
	}
	return v, nil
}

func (s *PreferenceService) SetSearchQuery(ctx context.Context, query string) error {
	if query == "" {
		return s.local.Delete(ctx, repository.PrefSearchQuery)
	}
	return s.local.Set(ctx, repository.PrefSearchQuery, query)
}
