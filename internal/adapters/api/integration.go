package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/lifehub/core/internal/domain/entities"
	"github.com/lifehub/core/internal/ports"
)

// IntegrationClientImpl implements the IntegrationClient interface
type IntegrationClientImpl struct {
	client *Client
}

// NewIntegrationClient creates a new integration endpoint wrapper
func NewIntegrationClient(client *Client) ports.IntegrationClient {
	return &IntegrationClientImpl{client: client}
}

func (c *IntegrationClientImpl) Status(ctx context.Context) ([]entities.IntegrationStatus, error) {
	var statuses []entities.IntegrationStatus
	if err := c.client.get(ctx, "/integration/status", nil, &statuses); err != nil {
		return nil, fmt.Errorf("integration status: %w", err)
	}
	return statuses, nil
}

func (c *IntegrationClientImpl) Connect(ctx context.Context, provider string) (*entities.IntegrationStatus, error) {
	var status entities.IntegrationStatus
	path := "/integration/" + url.PathEscape(provider) + "/connect"
	if err := c.client.post(ctx, path, nil, &status); err != nil {
		return nil, fmt.Errorf("connect %s: %w", provider, err)
	}
	return &status, nil
}

func (c *IntegrationClientImpl) Disconnect(ctx context.Context, provider string) error {
	path := "/integration/" + url.PathEscape(provider) + "/connect"
	if err := c.client.delete(ctx, path); err != nil {
		return fmt.Errorf("disconnect %s: %w", provider, err)
	}
	return nil
}

func (c *IntegrationClientImpl) Sync(ctx context.Context, provider string) (*entities.IntegrationStatus, error) {
	var status entities.IntegrationStatus
	path := "/integration/" + url.PathEscape(provider) + "/sync"
	if err := c.client.post(ctx, path, nil, &status); err != nil {
		return nil, fmt.Errorf("sync %s: %w", provider, err)
	}
	return &status, nil
}
