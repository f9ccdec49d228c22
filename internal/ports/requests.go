package ports

import (
	"time"

	"github.com/google/uuid"

	"github.com/lifehub/core/internal/domain/entities"
)

// Task related types
type CreateTaskRequest struct {
	Title       string            `json:"title" validate:"required,max=200"`
	Description *string           `json:"description,omitempty" validate:"omitempty,max=2000"`
	Priority    entities.Priority `json:"priority" validate:"required,oneof=low medium high"`
	DueDate     *time.Time        `json:"due_date,omitempty"`
	Tags        []string          `json:"tags,omitempty" validate:"omitempty,dive,max=50"`
	HabitIDs    []uuid.UUID       `json:"habit_ids,omitempty"`
}

type UpdateTaskRequest struct {
	Title       *string              `json:"title,omitempty" validate:"omitempty,max=200"`
	Description *string              `json:"description,omitempty" validate:"omitempty,max=2000"`
	Status      *entities.TaskStatus `json:"status,omitempty" validate:"omitempty,oneof=todo in_progress completed"`
	Priority    *entities.Priority   `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time           `json:"due_date,omitempty"`
	Tags        []string             `json:"tags,omitempty" validate:"omitempty,dive,max=50"`
	HabitIDs    []uuid.UUID          `json:"habit_ids,omitempty"`
}

// Habit related types
type CreateHabitRequest struct {
	Name          string                  `json:"name" validate:"required,max=100"`
	Description   *string                 `json:"description,omitempty" validate:"omitempty,max=1000"`
	Frequency     entities.HabitFrequency `json:"frequency" validate:"required,oneof=daily weekly"`
	TargetPerWeek int                     `json:"target_per_week,omitempty" validate:"omitempty,min=1,max=7"`
	Color         string                  `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

type UpdateHabitRequest struct {
	Name          *string                  `json:"name,omitempty" validate:"omitempty,max=100"`
	Description   *string                  `json:"description,omitempty" validate:"omitempty,max=1000"`
	Frequency     *entities.HabitFrequency `json:"frequency,omitempty" validate:"omitempty,oneof=daily weekly"`
	TargetPerWeek *int                     `json:"target_per_week,omitempty" validate:"omitempty,min=1,max=7"`
	Color         *string                  `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Archived      *bool                    `json:"archived,omitempty"`
}

type CompleteHabitRequest struct {
	Day  string  `json:"day" validate:"required,datetime=2006-01-02"`
	Note *string `json:"note,omitempty" validate:"omitempty,max=500"`
}

// Mood related types. The 1-5 bounds are the dashboard's hard form
// rule: invalid scores never reach the API.
type CreateMoodEntryRequest struct {
	Score      int         `json:"score" validate:"required,min=1,max=5"`
	Energy     int         `json:"energy" validate:"required,min=1,max=5"`
	Stress     int         `json:"stress" validate:"required,min=1,max=5"`
	Note       *string     `json:"note,omitempty" validate:"omitempty,max=1000"`
	TriggerIDs []uuid.UUID `json:"trigger_ids,omitempty"`
	Weather    *string     `json:"weather,omitempty" validate:"omitempty,max=50"`
	RecordedAt time.Time   `json:"recorded_at" validate:"required"`
}

type UpdateMoodEntryRequest struct {
	Score      *int        `json:"score,omitempty" validate:"omitempty,min=1,max=5"`
	Energy     *int        `json:"energy,omitempty" validate:"omitempty,min=1,max=5"`
	Stress     *int        `json:"stress,omitempty" validate:"omitempty,min=1,max=5"`
	Note       *string     `json:"note,omitempty" validate:"omitempty,max=1000"`
	TriggerIDs []uuid.UUID `json:"trigger_ids,omitempty"`
	Weather    *string     `json:"weather,omitempty" validate:"omitempty,max=50"`
}

type CreateTriggerRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Category string `json:"category,omitempty" validate:"omitempty,max=50"`
}

// Journal related types
type CreateJournalRequest struct {
	Title     string   `json:"title" validate:"required,max=200"`
	Content   string   `json:"content" validate:"required"`
	Tags      []string `json:"tags,omitempty" validate:"omitempty,dive,max=50"`
	Mood      *int     `json:"mood,omitempty" validate:"omitempty,min=1,max=5"`
	EntryDate string   `json:"entry_date" validate:"required,datetime=2006-01-02"`
}

type UpdateJournalRequest struct {
	Title   *string  `json:"title,omitempty" validate:"omitempty,max=200"`
	Content *string  `json:"content,omitempty"`
	Tags    []string `json:"tags,omitempty" validate:"omitempty,dive,max=50"`
	Mood    *int     `json:"mood,omitempty" validate:"omitempty,min=1,max=5"`
}

// Calendar related types
type CreateEventRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	StartTime   time.Time  `json:"start_time" validate:"required"`
	EndTime     time.Time  `json:"end_time" validate:"required,gtfield=StartTime"`
	AllDay      bool       `json:"all_day"`
	Location    *string    `json:"location,omitempty" validate:"omitempty,max=200"`
	TaskID      *uuid.UUID `json:"task_id,omitempty"`
	HabitID     *uuid.UUID `json:"habit_id,omitempty"`
}

type UpdateEventRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	AllDay      *bool      `json:"all_day,omitempty"`
	Location    *string    `json:"location,omitempty" validate:"omitempty,max=200"`
}

// Preference related types
type UpdatePreferencesRequest struct {
	Theme            *entities.ThemeMode `json:"theme,omitempty" validate:"omitempty,oneof=light dark system"`
	CustomThemeID    *uuid.UUID          `json:"custom_theme_id,omitempty"`
	WeekStartsMonday *bool               `json:"week_starts_monday,omitempty"`
	DefaultView      *string             `json:"default_view,omitempty" validate:"omitempty,oneof=dashboard tasks habits mood journal calendar"`
	Notifications    *bool               `json:"notifications,omitempty"`
}

type CreateThemeRequest struct {
	Name   string             `json:"name" validate:"required,max=100"`
	Mode   entities.ThemeMode `json:"mode" validate:"required,oneof=light dark"`
	Colors map[string]string  `json:"colors" validate:"required,dive,keys,max=50,endkeys,hexcolor"`
}

// Transfer related types
type ExportRequest struct {
	Format   entities.ExportFormat `json:"format" validate:"required,oneof=json csv markdown"`
	Sections []string              `json:"sections,omitempty" validate:"omitempty,dive,oneof=tasks habits mood journal calendar preferences"`
}

// ImportSummary reports what the server accepted from an import payload.
type ImportSummary struct {
	Tasks    int      `json:"tasks"`
	Habits   int      `json:"habits"`
	Moods    int      `json:"moods"`
	Journal  int      `json:"journal"`
	Events   int      `json:"events"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings,omitempty"`
}

// MessageResponse is the API's generic acknowledgment body.
type MessageResponse struct {
	Message string `json:"message"`
}
