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

// TaskClientImpl implements the TaskClient interface
type TaskClientImpl struct {
	client *Client
}

// NewTaskClient creates a new task endpoint wrapper
func NewTaskClient(client *Client) ports.TaskClient {
	return &TaskClientImpl{client: client}
}

func (c *TaskClientImpl) List(ctx context.Context, filter ports.TaskFilter) ([]entities.Task, error) {
	query := url.Values{}
	if filter.Status != nil {
		query.Set("status", string(*filter.Status))
	}
	if filter.Priority != nil {
		query.Set("priority", string(*filter.Priority))
	}
	if filter.Tag != nil {
		query.Set("tag", *filter.Tag)
	}
	if filter.Search != nil {
		query.Set("search", *filter.Search)
	}
	if filter.DueBefore != nil {
		query.Set("due_before", filter.DueBefore.Format(time.RFC3339))
	}
	if filter.DueAfter != nil {
		query.Set("due_after", filter.DueAfter.Format(time.RFC3339))
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		query.Set("offset", strconv.Itoa(filter.Offset))
	}

	var tasks []entities.Task
	if err := c.client.get(ctx, "/tasks", query, &tasks); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (c *TaskClientImpl) Get(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	var task entities.Task
	if err := c.client.get(ctx, "/tasks/"+id.String(), nil, &task); err != nil {
		if IsNotFound(err) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &task, nil
}

func (c *TaskClientImpl) Create(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	var task entities.Task
	if err := c.client.post(ctx, "/tasks", req, &task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return &task, nil
}

func (c *TaskClientImpl) Update(ctx context.Context, id uuid.UUID, req ports.UpdateTaskRequest) (*entities.Task, error) {
	var task entities.Task
	if err := c.client.put(ctx, "/tasks/"+id.String(), req, &task); err != nil {
		if IsNotFound(err) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	return &task, nil
}

func (c *TaskClientImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.client.delete(ctx, "/tasks/"+id.String()); err != nil {
		if IsNotFound(err) {
			return entities.ErrTaskNotFound
		}
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
