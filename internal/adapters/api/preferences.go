package api

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lifehub/core/internal/domain/entities"
	"github.com/lifehub/core/internal/ports"
)

// PreferencesClientImpl implements the PreferencesClient interface
type PreferencesClientImpl struct {
	client *Client
}

// NewPreferencesClient creates a new preferences endpoint wrapper
func NewPreferencesClient(client *Client) ports.PreferencesClient {
	return &PreferencesClientImpl{client: client}
}

func (c *PreferencesClientImpl) Get(ctx context.Context) (*entities.Preferences, error) {
	var prefs entities.Preferences
	if err := c.client.get(ctx, "/preferences", nil, &prefs); err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	return &prefs, nil
}

func (c *PreferencesClientImpl) Update(ctx context.Context, req ports.UpdatePreferencesRequest) (*entities.Preferences, error) {
	var prefs entities.Preferences
	if err := c.client.put(ctx, "/preferences", req, &prefs); err != nil {
		return nil, fmt.Errorf("update preferences: %w", err)
	}
	return &prefs, nil
}

func (c *PreferencesClientImpl) ListThemes(ctx context.Context) ([]entities.CustomTheme, error) {
	var themes []entities.CustomTheme
	if err := c.client.get(ctx, "/preferences/themes", nil, &themes); err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}
	return themes, nil
}

func (c *PreferencesClientImpl) CreateTheme(ctx context.Context, req ports.CreateThemeRequest) (*entities.CustomTheme, error) {
	var theme entities.CustomTheme
	if err := c.client.post(ctx, "/preferences/themes", req, &theme); err != nil {
		return nil, fmt.Errorf("create theme: %w", err)
	}
	return &theme, nil
}

func (c *PreferencesClientImpl) DeleteTheme(ctx context.Context, id uuid.UUID) error {
	if err := c.client.delete(ctx, "/preferences/themes/"+id.String()); err != nil {
		return fmt.Errorf("delete theme: %w", err)
	}
	return nil
}
