package api

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/lifehub/core/internal/domain/entities"
	"github.com/lifehub/core/internal/ports"
)

// CalendarClientImpl implements the CalendarClient interface
type CalendarClientImpl struct {
	client *Client
}

// NewCalendarClient creates a new calendar endpoint wrapper
func NewCalendarClient(client *Client) ports.CalendarClient {
	return &CalendarClientImpl{client: client}
}

func (c *CalendarClientImpl) ListEvents(ctx context.Context, from, to time.Time) ([]entities.CalendarEvent, error) {
	query := url.Values{}
	if !from.IsZero() {
		query.Set("from", from.Format(time.RFC3339))
	}
	if !to.IsZero() {
		query.Set("to", to.Format(time.RFC3339))
	}

	var events []entities.CalendarEvent
	if err := c.client.get(ctx, "/calendar/events", query, &events); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (c *CalendarClientImpl) Create(ctx context.Context, req ports.CreateEventRequest) (*entities.CalendarEvent, error) {
	var event entities.CalendarEvent
	if err := c.client.post(ctx, "/calendar/events", req, &event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return &event, nil
}

func (c *CalendarClientImpl) Update(ctx context.Context, id uuid.UUID, req ports.UpdateEventRequest) (*entities.CalendarEvent, error) {
	var event entities.CalendarEvent
	if err := c.client.put(ctx, "/calendar/events/"+id.String(), req, &event); err != nil {
		if IsNotFound(err) {
			return nil, entities.ErrEventNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return &event, nil
}

func (c *CalendarClientImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.client.delete(ctx, "/calendar/events/"+id.String()); err != nil {
		if IsNotFound(err) {
			return entities.ErrEventNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
