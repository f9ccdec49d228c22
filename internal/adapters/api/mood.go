package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/lifehub/core/internal/domain/entities"
	"github.com/lifehub/core/internal/ports"
)

// MoodClientImpl implements the MoodClient interface
type MoodClientImpl struct {
	client *Client
}

// NewMoodClient creates a new mood endpoint wrapper
func NewMoodClient(client *Client) ports.MoodClient {
	return &MoodClientImpl{client: client}
}

func (c *MoodClientImpl) ListEntries(ctx context.Context, filter ports.MoodFilter) ([]entities.MoodEntry, error) {
	query := url.Values{}
	if filter.From != nil {
		query.Set("from", filter.From.Format(time.RFC3339))
	}
	if filter.To != nil {
		query.Set("to", filter.To.Format(time.RFC3339))
	}
	if filter.MinScore != nil {
		query.Set("min_score", strconv.Itoa(*filter.MinScore))
	}
	if filter.MaxScore != nil {
		query.Set("max_score", strconv.Itoa(*filter.MaxScore))
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		query.Set("offset", strconv.Itoa(filter.Offset))
	}

	var entries []entities.MoodEntry
	if err := c.client.get(ctx, "/mood", query, &entries); err != nil {
		return nil, fmt.Errorf("list mood entries: %w", err)
	}
	return entries, nil
}

func (c *MoodClientImpl) CreateEntry(ctx context.Context, req ports.CreateMoodEntryRequest) (*entities.MoodEntry, error) {
	var entry entities.MoodEntry
	if err := c.client.post(ctx, "/mood", req, &entry); err != nil {
		return nil, fmt.Errorf("create mood entry: %w", err)
	}
	return &entry, nil
}

func (c *MoodClientImpl) UpdateEntry(ctx context.Context, id uuid.UUID, req ports.UpdateMoodEntryRequest) (*entities.MoodEntry, error) {
	var entry entities.MoodEntry
	if err := c.client.put(ctx, "/mood/"+id.String(), req, &entry); err != nil {
		if IsNotFound(err) {
			return nil, entities.ErrMoodEntryNotFound
		}
		return nil, fmt.Errorf("update mood entry: %w", err)
	}
	return &entry, nil
}

func (c *MoodClientImpl) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	if err := c.client.delete(ctx, "/mood/"+id.String()); err != nil {
		if IsNotFound(err) {
			return entities.ErrMoodEntryNotFound
		}
		return fmt.Errorf("delete mood entry: %w", err)
	}
	return nil
}

func (c *MoodClientImpl) ListTriggers(ctx context.Context) ([]entities.MoodTrigger, error) {
	var triggers []entities.MoodTrigger
	if err := c.client.get(ctx, "/mood/triggers", nil, &triggers); err != nil {
		return nil, fmt.Errorf("list triggers: %w", err)
	}
	return triggers, nil
}

func (c *MoodClientImpl) CreateTrigger(ctx context.Context, req ports.CreateTriggerRequest) (*entities.MoodTrigger, error) {
	var trigger entities.MoodTrigger
	if err := c.client.post(ctx, "/mood/triggers", req, &trigger); err != nil {
		return nil, fmt.Errorf("create trigger: %w", err)
	}
	return &trigger, nil
}

func (c *MoodClientImpl) DeleteTrigger(ctx context.Context, id uuid.UUID) error {
	if err := c.client.delete(ctx, "/mood/triggers/"+id.String()); err != nil {
		if IsNotFound(err) {
			return entities.ErrTriggerNotFound
		}
		return fmt.Errorf("delete trigger: %w", err)
	}
	return nil
}
