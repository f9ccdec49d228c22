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

// TaskService handles task-related operations
type TaskService struct {
	client   ports.TaskClient
	cache    *cache.Cache
	validate *validator.Validate
	logger   *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(client ports.TaskClient, c *cache.Cache, log *logger.Logger) *TaskService {
	return &TaskService{
		client:   client,
		cache:    c,
		validate: newValidator(),
		logger:   log.WithComponent("tasks"),
	}
}

// ListTasks returns tasks matching the filter, served from cache when fresh.
func (s *TaskService) ListTasks(ctx context.Context, filter ports.TaskFilter) ([]entities.Task, error) {
	key := cache.Key(nsTasks, "list", filterKey(filter))
	return cache.Fetch(ctx, s.cache, key, func(ctx context.Context) ([]entities.Task, error) {
		return s.client.List(ctx, filter)
	})
}

// GetTask retrieves a task by ID
func (s *TaskService) GetTask(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	key := cache.Key(nsTasks, "id", id.String())
	return cache.Fetch(ctx, s.cache, key, func(ctx context.Context) (*entities.Task, error) {
		return s.client.Get(ctx, id)
	})
}

// CreateTask validates and creates a new task
func (s *TaskService) CreateTask(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	req.Tags = entities.DedupStrings(req.Tags)
	req.HabitIDs = entities.DedupIDs(req.HabitIDs)

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid task: %w", err)
	}

	task, err := s.client.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	s.cache.Invalidate(nsTasks)

	s.logger.Infow("Task created", "task_id", task.ID, "title", task.Title)
	return task, nil
}

// UpdateTask validates and updates a task
func (s *TaskService) UpdateTask(ctx context.Context, id uuid.UUID, req ports.UpdateTaskRequest) (*entities.Task, error) {
	req.Tags = entities.DedupStrings(req.Tags)
	req.HabitIDs = entities.DedupIDs(req.HabitIDs)

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid task update: %w", err)
	}

	task, err := s.client.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	s.cache.Invalidate(nsTasks)

	s.logger.Infow("Task updated", "task_id", task.ID)
	return task, nil
}

// CompleteTask marks a task completed.
func (s *TaskService) CompleteTask(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	status := entities.TaskStatusCompleted
	return s.UpdateTask(ctx, id, ports.UpdateTaskRequest{Status: &status})
}

// DeleteTask deletes a task
func (s *TaskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if err := s.client.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	s.cache.Invalidate(nsTasks)

	s.logger.Infow("Task deleted", "task_id", id)
	return nil
}

// OverdueTasks returns open tasks whose due date has passed.
func (s *TaskService) OverdueTasks(ctx context.Context) ([]entities.Task, error) {
	tasks, err := s.ListTasks(ctx, ports.TaskFilter{})
	if err != nil {
		return nil, err
	}

	overdue := make([]entities.Task, 0)
	for _, t := range tasks {
		if t.IsOverdue() {
			overdue = append(overdue, t)
		}
	}
	return overdue, nil
}
