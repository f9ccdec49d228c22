package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lifehub/core/internal/domain/entities"
)

// TaskClient wraps the /tasks endpoints.
type TaskClient interface {
	List(ctx context.Context, filter TaskFilter) ([]entities.Task, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.Task, error)
	Create(ctx context.Context, req CreateTaskRequest) (*entities.Task, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateTaskRequest) (*entities.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// HabitClient wraps the /habits endpoints.
type HabitClient interface {
	List(ctx context.Context, includeArchived bool) ([]entities.Habit, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.Habit, error)
	Create(ctx context.Context, req CreateHabitRequest) (*entities.Habit, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateHabitRequest) (*entities.Habit, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListCompletions(ctx context.Context, filter CompletionFilter) ([]entities.HabitCompletion, error)
	Complete(ctx context.Context, habitID uuid.UUID, req CompleteHabitRequest) (*entities.HabitCompletion, error)
	Uncomplete(ctx context.Context, completionID uuid.UUID) error
}

// MoodClient wraps the /mood endpoints.
type MoodClient interface {
	ListEntries(ctx context.Context, filter MoodFilter) ([]entities.MoodEntry, error)
	CreateEntry(ctx context.Context, req CreateMoodEntryRequest) (*entities.MoodEntry, error)
	UpdateEntry(ctx context.Context, id uuid.UUID, req UpdateMoodEntryRequest) (*entities.MoodEntry, error)
	DeleteEntry(ctx context.Context, id uuid.UUID) error
	ListTriggers(ctx context.Context) ([]entities.MoodTrigger, error)
	CreateTrigger(ctx context.Context, req CreateTriggerRequest) (*entities.MoodTrigger, error)
	DeleteTrigger(ctx context.Context, id uuid.UUID) error
}

// JournalClient wraps the /journal endpoints.
type JournalClient interface {
	List(ctx context.Context, filter JournalFilter) ([]entities.JournalEntry, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.JournalEntry, error)
	Create(ctx context.Context, req CreateJournalRequest) (*entities.JournalEntry, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateJournalRequest) (*entities.JournalEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CalendarClient wraps the /calendar/events endpoints.
type CalendarClient interface {
	ListEvents(ctx context.Context, from, to time.Time) ([]entities.CalendarEvent, error)
	Create(ctx context.Context, req CreateEventRequest) (*entities.CalendarEvent, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateEventRequest) (*entities.CalendarEvent, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PreferencesClient wraps the /preferences endpoint.
type PreferencesClient interface {
	Get(ctx context.Context) (*entities.Preferences, error)
	Update(ctx context.Context, req UpdatePreferencesRequest) (*entities.Preferences, error)
	ListThemes(ctx context.Context) ([]entities.CustomTheme, error)
	CreateTheme(ctx context.Context, req CreateThemeRequest) (*entities.CustomTheme, error)
	DeleteTheme(ctx context.Context, id uuid.UUID) error
}

// IntegrationClient wraps the /integration/* endpoints.
type IntegrationClient interface {
	Status(ctx context.Context) ([]entities.IntegrationStatus, error)
	Connect(ctx context.Context, provider string) (*entities.IntegrationStatus, error)
	Disconnect(ctx context.Context, provider string) error
	Sync(ctx context.Context, provider string) (*entities.IntegrationStatus, error)
}

// TransferClient wraps the /export and /import endpoints. Payload
// generation stays server-side; the client only moves bytes.
type TransferClient interface {
	Export(ctx context.Context, req ExportRequest) ([]byte, error)
	Import(ctx context.Context, payload []byte) (*ImportSummary, error)
}

// PreferenceRepository persists local UI state (the localStorage analog).
type PreferenceRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	All(ctx context.Context) (map[string]string, error)
}

// BackupRepository stores downloaded export payloads with metadata.
type BackupRepository interface {
	Save(ctx context.Context, meta *entities.BackupMetadata, payload []byte) error
	List(ctx context.Context) ([]entities.BackupMetadata, error)
	Payload(ctx context.Context, id uuid.UUID) (*entities.BackupMetadata, []byte, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Prune(ctx context.Context, keep int) (int, error)
}

// Filter types for list queries
type TaskFilter struct {
	Status    *entities.TaskStatus
	Priority  *entities.Priority
	Tag       *string
	Search    *string
	DueBefore *time.Time
	DueAfter  *time.Time
	Limit     int
	Offset    int
}

type CompletionFilter struct {
	HabitID *uuid.UUID
	From    *time.Time
	To      *time.Time
}

type MoodFilter struct {
	From     *time.Time
	To       *time.Time
	MinScore *int
	MaxScore *int
	Limit    int
	Offset   int
}

type JournalFilter struct {
	Tag    *string
	Search *string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}
