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

// JournalClientImpl implements the JournalClient interface
type JournalClientImpl struct {
	client *Client
}

// NewJournalClient creates a new journal endpoint wrapper
func NewJournalClient(client *Client) ports.JournalClient {
	return &JournalClientImpl{client: client}
}

func (c *JournalClientImpl) List(ctx context.Context, filter ports.JournalFilter) ([]entities.JournalEntry, error) {
	query := url.Values{}
	if filter.Tag != nil {
		query.Set("tag", *filter.Tag)
	}
	if filter.Search != nil {
		query.Set("search", *filter.Search)
	}
	if filter.From != nil {
		query.Set("from", filter.From.Format(time.RFC3339))
	}
	if filter.To != nil {
		query.Set("to", filter.To.Format(time.RFC3339))
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		query.Set("offset", strconv.Itoa(filter.Offset))
	}

	var journalEntries []entities.JournalEntry
	if err := c.client.get(ctx, "/journal", query, &journalEntries); err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	return journalEntries, nil
}

func (c *JournalClientImpl) Get(ctx context.Context, id uuid.UUID) (*entities.JournalEntry, error) {
	var entry entities.JournalEntry
	if err := c.client.get(ctx, "/journal/"+id.String(), nil, &entry); err != nil {
		if IsNotFound(err) {
			return nil, entities.ErrJournalNotFound
		}
		return nil, fmt.Errorf("get journal entry: %w", err)
	}
	return &entry, nil
}

func (c *JournalClientImpl) Create(ctx context.Context, req ports.CreateJournalRequest) (*entities.JournalEntry, error) {
	var entry entities.JournalEntry
	if err := c.client.post(ctx, "/journal", req, &entry); err != nil {
		return nil, fmt.Errorf("create journal entry: %w", err)
	}
	return &entry, nil
}

func (c *JournalClientImpl) Update(ctx context.Context, id uuid.UUID, req ports.UpdateJournalRequest) (*entities.JournalEntry, error) {
	var entry entities.JournalEntry
	if err := c.client.put(ctx, "/journal/"+id.String(), req, &entry); err != nil {
		if IsNotFound(err) {
			return nil, entities.ErrJournalNotFound
		}
		return nil, fmt.Errorf("update journal entry: %w", err)
	}
	return &entry, nil
}

func (c *JournalClientImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.client.delete(ctx, "/journal/"+id.String()); err != nil {
		if IsNotFound(err) {
			return entities.ErrJournalNotFound
		}
		return fmt.Errorf("delete journal entry: %w", err)
	}
	return nil
}
