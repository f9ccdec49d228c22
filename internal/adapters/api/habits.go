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

// HabitClientImpl implements the HabitClient interface
type HabitClientImpl struct {
	client *Client
}

// NewHabitClient creates a new habit endpoint wrapper
func NewHabitClient(client *Client) ports.HabitClient {
	return &HabitClientImpl{client: client}
}

func (c *HabitClientImpl) List(ctx context.Context, includeArchived bool) ([]entities.Habit, error) {
	query := url.Values{}
	if includeArchived {
		query.Set("include_archived", "true")
	}

	var habits []entities.Habit
	if err := c.client.get(ctx, "/habits", query, &habits); err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	return habits, nil
}

func (c *HabitClientImpl) Get(ctx context.Context, id uuid.UUID) (*entities.Habit, error) {
	var habit entities.Habit
	if err := c.client.get(ctx, "/habits/"+id.String(), nil, &habit); err != nil {
		if IsNotFound(err) {
			return nil, entities.ErrHabitNotFound
		}
		return nil, fmt.Errorf("get habit: %w", err)
	}
	return &habit, nil
}

func (c *HabitClientImpl) Create(ctx context.Context, req ports.CreateHabitRequest) (*entities.Habit, error) {
	var habit entities.Habit
	if err := c.client.post(ctx, "/habits", req, &habit); err != nil {
		return nil, fmt.Errorf("create habit: %w", err)
	}
	return &habit, nil
}

func (c *HabitClientImpl) Update(ctx context.Context, id uuid.UUID, req ports.UpdateHabitRequest) (*entities.Habit, error) {
	var habit entities.Habit
	if err := c.client.put(ctx, "/habits/"+id.String(), req, &habit); err != nil {
		if IsNotFound(err) {
			return nil, entities.ErrHabitNotFound
		}
		return nil, fmt.Errorf("update habit: %w", err)
	}
	return &habit, nil
}

func (c *HabitClientImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.client.delete(ctx, "/habits/"+id.String()); err != nil {
		if IsNotFound(err) {
			return entities.ErrHabitNotFound
		}
		return fmt.Errorf("delete habit: %w", err)
	}
	return nil
}

func (c *HabitClientImpl) ListCompletions(ctx context.Context, filter ports.CompletionFilter) ([]entities.HabitCompletion, error) {
	query := url.Values{}
	if filter.HabitID != nil {
		query.Set("habit_id", filter.HabitID.String())
	}
	if filter.From != nil {
		query.Set("from", filter.From.Format(time.RFC3339))
	}
	if filter.To != nil {
		query.Set("to", filter.To.Format(time.RFC3339))
	}

	var completions []entities.HabitCompletion
	if err := c.client.get(ctx, "/habits/completions", query, &completions); err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	return completions, nil
}

func (c *HabitClientImpl) Complete(ctx context.Context, habitID uuid.UUID, req ports.CompleteHabitRequest) (*entities.HabitCompletion, error) {
	var completion entities.HabitCompletion
	if err := c.client.post(ctx, "/habits/"+habitID.String()+"/completions", req, &completion); err != nil {
		if IsNotFound(err) {
			return nil, entities.ErrHabitNotFound
		}
		return nil, fmt.Errorf("complete habit: %w", err)
	}
	return &completion, nil
}

func (c *HabitClientImpl) Uncomplete(ctx context.Context, completionID uuid.UUID) error {
	if err := c.client.delete(ctx, "/habits/completions/"+completionID.String()); err != nil {
		return fmt.Errorf("remove completion: %w", err)
	}
	return nil
}
