package entities

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrHabitNotFound     = errors.New("habit not found")
	ErrMoodEntryNotFound = errors.New("mood entry not found")
	ErrJournalNotFound   = errors.New("journal entry not found")
	ErrEventNotFound     = errors.New("calendar event not found")
	ErrTriggerNotFound   = errors.New("mood trigger not found")
	ErrBackupNotFound    = errors.New("backup not found")
	ErrSessionExpired    = errors.New("session token expired")
	ErrScoreOutOfRange   = errors.New("score must be between 1 and 5")
	ErrInvalidFrequency  = errors.New("invalid habit frequency")
	ErrInvalidFormat     = errors.New("invalid export format")
	ErrWrongPassphrase   = errors.New("backup passphrase does not match")
)

// Score bounds for mood, energy and stress ratings.
const (
	ScoreMin = 1
	ScoreMax = 5
)

// Enums and types
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type HabitFrequency string

const (
	FrequencyDaily  HabitFrequency = "daily"
	FrequencyWeekly HabitFrequency = "weekly"
)

type ExportFormat string

const (
	FormatJSON     ExportFormat = "json"
	FormatCSV      ExportFormat = "csv"
	FormatMarkdown ExportFormat = "markdown"
)

type ThemeMode string

const (
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
	ThemeSystem ThemeMode = "system"
)

// Task represents a tracked task
type Task struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description *string     `json:"description,omitempty"`
	Status      TaskStatus  `json:"status"`
	Priority    Priority    `json:"priority"`
	DueDate     *time.Time  `json:"due_date,omitempty"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
	Tags        []string    `json:"tags"`
	HabitIDs    []uuid.UUID `json:"habit_ids,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Habit represents a recurring practice to track
type Habit struct {
	ID            uuid.UUID      `json:"id"`
	Name          string         `json:"name"`
	Description   *string        `json:"description,omitempty"`
	Frequency     HabitFrequency `json:"frequency"`
	TargetPerWeek int            `json:"target_per_week"`
	Color         string         `json:"color"`
	Archived      bool           `json:"archived"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// HabitCompletion records a single day's check-in for a habit
type HabitCompletion struct {
	ID        uuid.UUID `json:"id"`
	HabitID   uuid.UUID `json:"habit_id"`
	Day       string    `json:"day"` // YYYY-MM-DD
	Note      *string   `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MoodEntry records mood, energy and stress ratings at a point in time
type MoodEntry struct {
	ID         uuid.UUID   `json:"id"`
	Score      int         `json:"score"`  // 1-5
	Energy     int         `json:"energy"` // 1-5
	Stress     int         `json:"stress"` // 1-5
	Note       *string     `json:"note,omitempty"`
	TriggerIDs []uuid.UUID `json:"trigger_ids,omitempty"`
	Weather    *string     `json:"weather,omitempty"`
	RecordedAt time.Time   `json:"recorded_at"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// MoodTrigger is a user-defined cause that can be attached to mood entries
type MoodTrigger struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
}

// JournalEntry is a dated free-form note
type JournalEntry struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	Mood      *int      `json:"mood,omitempty"` // 1-5 when set
	EntryDate string    `json:"entry_date"`     // YYYY-MM-DD
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CalendarEvent represents a scheduled event
type CalendarEvent struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     time.Time  `json:"end_time"`
	AllDay      bool       `json:"all_day"`
	Location    *string    `json:"location,omitempty"`
	TaskID      *uuid.UUID `json:"task_id,omitempty"`
	HabitID     *uuid.UUID `json:"habit_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CustomTheme is a user-defined color theme
type CustomTheme struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	Mode      ThemeMode         `json:"mode"`
	Colors    map[string]string `json:"colors"`
	CreatedAt time.Time         `json:"created_at"`
}

// Preferences mirrors the server-side user preferences document
type Preferences struct {
	Theme            ThemeMode  `json:"theme"`
	CustomThemeID    *uuid.UUID `json:"custom_theme_id,omitempty"`
	WeekStartsMonday bool       `json:"week_starts_monday"`
	DefaultView      string     `json:"default_view"`
	Notifications    bool       `json:"notifications"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// BackupMetadata describes a locally stored export payload
type BackupMetadata struct {
	ID        uuid.UUID    `json:"id" db:"id"`
	Format    ExportFormat `json:"format" db:"format"`
	SizeBytes int64        `json:"size_bytes" db:"size_bytes"`
	Encrypted bool         `json:"encrypted" db:"encrypted"`
	Note      *string      `json:"note,omitempty" db:"note"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}

// IntegrationStatus reports the state of an external provider connection
type IntegrationStatus struct {
	Provider    string     `json:"provider"`
	Connected   bool       `json:"connected"`
	Account     *string    `json:"account,omitempty"`
	LastSyncAt  *time.Time `json:"last_sync_at,omitempty"`
	SyncEnabled bool       `json:"sync_enabled"`
}

// Business logic methods for Task
func (t *Task) IsCompleted() bool {
	return t.Status == TaskStatusCompleted
}

func (t *Task) IsOverdue() bool {
	if t.DueDate == nil {
		return false
	}
	return time.Now().After(*t.DueDate) && t.Status != TaskStatusCompleted
}

// Business logic methods for Habit
func (h *Habit) WeeklyTarget() int {
	if h.Frequency == FrequencyDaily {
		return 7
	}
	if h.TargetPerWeek > 0 {
		return h.TargetPerWeek
	}
	return 1
}

// IsCompletedOn reports whether the habit has a completion on the given day.
func (h *Habit) IsCompletedOn(day time.Time, completions []HabitCompletion) bool {
	key := day.Format(DayLayout)
	for _, c := range completions {
		if c.HabitID == h.ID && c.Day == key {
			return true
		}
	}
	return false
}

// DayLayout is the wire format for calendar days.
const DayLayout = "2006-01-02"

// Business logic methods for MoodEntry
func (m *MoodEntry) ScoresValid() bool {
	return scoreInRange(m.Score) && scoreInRange(m.Energy) && scoreInRange(m.Stress)
}

func scoreInRange(v int) bool {
	return v >= ScoreMin && v <= ScoreMax
}

// Business logic methods for CalendarEvent
func (e *CalendarEvent) Duration() time.Duration {
	return e.EndTime.Sub(e.StartTime)
}

func (e *CalendarEvent) Overlaps(other *CalendarEvent) bool {
	return e.StartTime.Before(other.EndTime) && other.StartTime.Before(e.EndTime)
}

// DedupStrings returns values with duplicates and blanks removed, order kept.
// Tag and trigger lists from forms arrive with ad hoc duplicates.
func DedupStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// DedupIDs returns ids with duplicates and nil UUIDs removed, order kept.
func DedupIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Utility methods
func (ts TaskStatus) IsValid() bool {
	switch ts {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

func (f HabitFrequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly:
		return true
	default:
		return false
	}
}

func (f ExportFormat) IsValid() bool {
	switch f {
	case FormatJSON, FormatCSV, FormatMarkdown:
		return true
	default:
		return false
	}
}

func (m ThemeMode) IsValid() bool {
	switch m {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	default:
		return false
	}
}
