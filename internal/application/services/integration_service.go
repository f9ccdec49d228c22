package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/lifehub/core/internal/domain/entities"
	"github.com/lifehub/core/internal/infrastructure/cache"
	"github.com/lifehub/core/internal/infrastructure/logger"
	"github.com/lifehub/core/internal/ports"
)

// IntegrationService wraps external provider connections. A provider
// sync can create calendar events server-side, so syncs invalidate the
// calendar namespace as well.
type IntegrationService struct {
	client ports.IntegrationClient
	cache  *cache.Cache
	logger *logger.Logger
}

// NewIntegrationService creates a new integration service
func NewIntegrationService(client ports.IntegrationClient, c *cache.Cache, log *logger.Logger) *IntegrationService {
	return &IntegrationService{
		client: client,
		cache:  c,
		logger: log.WithComponent("integration"),
	}
}

// Status returns the connection state of all known providers.
func (s *IntegrationService) Status(ctx context.Context) ([]entities.IntegrationStatus, error) {
	statuses, err := s.client.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch integration status: %w", err)
	}
	return statuses, nil
}

// Connect initiates a provider connection
func (s *IntegrationService) Connect(ctx context.Context, provider string) (*entities.IntegrationStatus, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return nil, fmt.Errorf("provider is required")
	}

	status, err := s.client.Connect(ctx, provider)
	if err != nil {
		return nil, fmt.Errorf("failed to connect %s: %w", provider, err)
	}

	s.logger.Infow("Provider connected", "provider", provider)
	return status, nil
}

// Disconnect removes a provider connection
func (s *IntegrationService) Disconnect(ctx context.Context, provider string) error {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return fmt.Errorf("provider is required")
	}

	if err := s.client.Disconnect(ctx, provider); err != nil {
		return fmt.Errorf("failed to disconnect %s: %w", provider, err)
	}

	s.logger.Infow("Provider disconnected", "provider", provider)
	return nil
}

// Sync triggers a provider sync and drops cached calendar data.
func (s *IntegrationService) Sync(ctx context.Context, provider string) (*entities.IntegrationStatus, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return nil, fmt.Errorf("provider is required")
	}

	status, err := s.client.Sync(ctx, provider)
	if err != nil {
		return nil, fmt.Errorf("failed to sync %s: %w", provider, err)
	}
	s.cache.Invalidate(nsCalendar)

	s.logger.Infow("Provider synced", "provider", provider)
	return status, nil
}
