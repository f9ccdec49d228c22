package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifehub/core/internal/adapters/repository"
	"github.com/lifehub/core/internal/domain/entities"
	"github.com/lifehub/core/internal/infrastructure/cache"
	"github.com/lifehub/core/internal/infrastructure/config"
	"github.com/lifehub/core/internal/infrastructure/logger"
	"github.com/lifehub/core/internal/ports"
)

func newTestCache() *cache.Cache {
	return cache.New(config.CacheConfig{Enabled: true, TTL: time.Minute}, logger.Nop())
}

// fakeTaskClient counts upstream calls so tests can observe cache behavior.
type fakeTaskClient struct {
	listCalls   int
	createCalls int
	tasks       []entities.Task
}

func (f *fakeTaskClient) List(ctx context.Context, filter ports.TaskFilter) ([]entities.Task, error) {
	f.listCalls++
	return f.tasks, nil
}

func (f *fakeTaskClient) Get(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			return &f.tasks[i], nil
		}
	}
	return nil, entities.ErrTaskNotFound
}

func (f *fakeTaskClient) Create(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	f.createCalls++
	task := entities.Task{
		ID:       uuid.New(),
		Title:    req.Title,
		Status:   entities.TaskStatusTodo,
		Priority: req.Priority,
		Tags:     req.Tags,
	}
	f.tasks = append(f.tasks, task)
	return &task, nil
}

func (f *fakeTaskClient) Update(ctx context.Context, id uuid.UUID, req ports.UpdateTaskRequest) (*entities.Task, error) {
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			if req.Status != nil {
				f.tasks[i].Status = *req.Status
			}
			return &f.tasks[i], nil
		}
	}
	return nil, entities.ErrTaskNotFound
}

func (f *fakeTaskClient) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type fakeMoodClient struct {
	listCalls   int
	createCalls int
	entries     []entities.MoodEntry
}

func (f *fakeMoodClient) ListEntries(ctx context.Context, filter ports.MoodFilter) ([]entities.MoodEntry, error) {
	f.listCalls++
	return f.entries, nil
}

func (f *fakeMoodClient) CreateEntry(ctx context.Context, req ports.CreateMoodEntryRequest) (*entities.MoodEntry, error) {
	f.createCalls++
	entry := entities.MoodEntry{
		ID:         uuid.New(),
		Score:      req.Score,
		Energy:     req.Energy,
		Stress:     req.Stress,
		RecordedAt: req.RecordedAt,
	}
	f.entries = append(f.entries, entry)
	return &entry, nil
}

func (f *fakeMoodClient) UpdateEntry(ctx context.Context, id uuid.UUID, req ports.UpdateMoodEntryRequest) (*entities.MoodEntry, error) {
	return nil, entities.ErrMoodEntryNotFound
}

func (f *fakeMoodClient) DeleteEntry(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeMoodClient) ListTriggers(ctx context.Context) ([]entities.MoodTrigger, error) {
	return nil, nil
}

func (f *fakeMoodClient) CreateTrigger(ctx context.Context, req ports.CreateTriggerRequest) (*entities.MoodTrigger, error) {
	return &entities.MoodTrigger{ID: uuid.New(), Name: req.Name, Category: req.Category}, nil
}

func (f *fakeMoodClient) DeleteTrigger(ctx context.Context, id uuid.UUID) error { return nil }

type fakeHabitClient struct {
	createCalls int
	habits      []entities.Habit
	completions []entities.HabitCompletion
}

func (f *fakeHabitClient) List(ctx context.Context, includeArchived bool) ([]entities.Habit, error) {
	return f.habits, nil
}

func (f *fakeHabitClient) Get(ctx context.Context, id uuid.UUID) (*entities.Habit, error) {
	return nil, entities.ErrHabitNotFound
}

func (f *fakeHabitClient) Create(ctx context.Context, req ports.CreateHabitRequest) (*entities.Habit, error) {
	f.createCalls++
	return &entities.Habit{ID: uuid.New(), Name: req.Name, Frequency: req.Frequency}, nil
}

func (f *fakeHabitClient) Update(ctx context.Context, id uuid.UUID, req ports.UpdateHabitRequest) (*entities.Habit, error) {
	return &entities.Habit{ID: id}, nil
}

func (f *fakeHabitClient) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeHabitClient) ListCompletions(ctx context.Context, filter ports.CompletionFilter) ([]entities.HabitCompletion, error) {
	out := make([]entities.HabitCompletion, 0, len(f.completions))
	for _, c := range f.completions {
		if filter.HabitID != nil && c.HabitID != *filter.HabitID {
			continue
		}
		if filter.From != nil {
			day, err := time.Parse(entities.DayLayout, c.Day)
			if err != nil || day.Before(filter.From.Truncate(24*time.Hour)) {
				continue
			}
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeHabitClient) Complete(ctx context.Context, habitID uuid.UUID, req ports.CompleteHabitRequest) (*entities.HabitCompletion, error) {
	return &entities.HabitCompletion{ID: uuid.New(), HabitID: habitID, Day: req.Day}, nil
}

func (f *fakeHabitClient) Uncomplete(ctx context.Context, completionID uuid.UUID) error {
	return nil
}

type fakeTransferClient struct {
	exportPayload []byte
	imported      [][]byte
}

func (f *fakeTransferClient) Export(ctx context.Context, req ports.ExportRequest) ([]byte, error) {
	return f.exportPayload, nil
}

func (f *fakeTransferClient) Import(ctx context.Context, payload []byte) (*ports.ImportSummary, error) {
	f.imported = append(f.imported, payload)
	return &ports.ImportSummary{Tasks: 2, Habits: 1}, nil
}

type fakeBackupRepo struct {
	saved   []entities.BackupMetadata
	payload map[uuid.UUID][]byte
}

func newFakeBackupRepo() *fakeBackupRepo {
	return &fakeBackupRepo{payload: make(map[uuid.UUID][]byte)}
}

func (f *fakeBackupRepo) Save(ctx context.Context, meta *entities.BackupMetadata, payload []byte) error {
	meta.ID = uuid.New()
	f.saved = append(f.saved, *meta)
	f.payload[meta.ID] = payload
	return nil
}

func (f *fakeBackupRepo) List(ctx context.Context) ([]entities.BackupMetadata, error) {
	return f.saved, nil
}

func (f *fakeBackupRepo) Payload(ctx context.Context, id uuid.UUID) (*entities.BackupMetadata, []byte, error) {
	for i := range f.saved {
		if f.saved[i].ID == id {
			return &f.saved[i], f.payload[id], nil
		}
	}
	return nil, nil, entities.ErrBackupNotFound
}

func (f *fakeBackupRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeBackupRepo) Prune(ctx context.Context, keep int) (int, error) { return 0, nil }

type fakePrefRepo struct {
	values map[string]string
}

func newFakePrefRepo() *fakePrefRepo {
	return &fakePrefRepo{values: make(map[string]string)}
}

func (f *fakePrefRepo) Get(ctx context.Context, key string) (string, error) {
	v, ok := f.values[key]
	if !ok {
		return "", repository.ErrPreferenceNotFound
	}
	return v, nil
}

func (f *fakePrefRepo) Set(ctx context.Context, key, value string) error {
	f.values[key] = value
	return nil
}

func (f *fakePrefRepo) Delete(ctx context.Context, key string) error {
	delete(f.values, key)
	return nil
}

func (f *fakePrefRepo) All(ctx context.Context) (map[string]string, error) {
	return f.values, nil
}

func TestListTasksServedFromCache(t *testing.T) {
	client := &fakeTaskClient{tasks: []entities.Task{{ID: uuid.New(), Title: "write report"}}}
	svc := NewTaskService(client, newTestCache(), logger.Nop())

	first, err := svc.ListTasks(context.Background(), ports.TaskFilter{})
	require.NoError(t, err)
	second, err := svc.ListTasks(context.Background(), ports.TaskFilter{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, client.listCalls)
}

func TestDistinctFiltersCachedSeparately(t *testing.T) {
	client := &fakeTaskClient{}
	svc := NewTaskService(client, newTestCache(), logger.Nop())

	status := entities.TaskStatusTodo
	_, err := svc.ListTasks(context.Background(), ports.TaskFilter{})
	require.NoError(t, err)
	_, err = svc.ListTasks(context.Background(), ports.TaskFilter{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, 2, client.listCalls)
}

func TestCreateTaskInvalidatesListCache(t *testing.T) {
	client := &fakeTaskClient{}
	svc := NewTaskService(client, newTestCache(), logger.Nop())

	_, err := svc.ListTasks(context.Background(), ports.TaskFilter{})
	require.NoError(t, err)

	_, err = svc.CreateTask(context.Background(), ports.CreateTaskRequest{
		Title:    "buy groceries",
		Priority: entities.PriorityMedium,
	})
	require.NoError(t, err)

	tasks, err := svc.ListTasks(context.Background(), ports.TaskFilter{})
	require.NoError(t, err)

	assert.Equal(t, 2, client.listCalls)
	assert.Len(t, tasks, 1)
}

func TestCreateTaskRejectsInvalidRequest(t *testing.T) {
	client := &fakeTaskClient{}
	svc := NewTaskService(client, newTestCache(), logger.Nop())

	_, err := svc.CreateTask(context.Background(), ports.CreateTaskRequest{
		Priority: entities.PriorityLow,
	})
	require.Error(t, err)
	assert.Zero(t, client.createCalls)
}

func TestMutationKeepsOtherNamespacesCached(t *testing.T) {
	c := newTestCache()
	taskClient := &fakeTaskClient{}
	moodClient := &fakeMoodClient{}
	tasks := NewTaskService(taskClient, c, logger.Nop())
	moods := NewMoodService(moodClient, c, logger.Nop())

	_, err := moods.ListEntries(context.Background(), ports.MoodFilter{})
	require.NoError(t, err)

	_, err = tasks.CreateTask(context.Background(), ports.CreateTaskRequest{
		Title:    "water plants",
		Priority: entities.PriorityLow,
	})
	require.NoError(t, err)

	_, err = moods.ListEntries(context.Background(), ports.MoodFilter{})
	require.NoError(t, err)

	assert.Equal(t, 1, moodClient.listCalls)
}

func TestCreateMoodEntryScoreOutOfRange(t *testing.T) {
	client := &fakeMoodClient{}
	svc := NewMoodService(client, newTestCache(), logger.Nop())

	for _, score := range []int{-1, 6, 42} {
		_, err := svc.CreateEntry(context.Background(), ports.CreateMoodEntryRequest{
			Score:      score,
			Energy:     3,
			Stress:     3,
			RecordedAt: time.Now(),
		})
		assert.ErrorIs(t, err, entities.ErrScoreOutOfRange, "score %d", score)
	}
	assert.Zero(t, client.createCalls)
}

func TestCreateMoodEntryLongNoteIsNotScoreError(t *testing.T) {
	client := &fakeMoodClient{}
	svc := NewMoodService(client, newTestCache(), logger.Nop())

	note := strings.Repeat("x", 1001)
	_, err := svc.CreateEntry(context.Background(), ports.CreateMoodEntryRequest{
		Score:      3,
		Energy:     3,
		Stress:     3,
		Note:       &note,
		RecordedAt: time.Now(),
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, entities.ErrScoreOutOfRange)
	assert.Zero(t, client.createCalls)
}

func TestUpdateMoodEntryScoreOutOfRange(t *testing.T) {
	client := &fakeMoodClient{}
	svc := NewMoodService(client, newTestCache(), logger.Nop())

	score := 6
	_, err := svc.UpdateEntry(context.Background(), uuid.New(), ports.UpdateMoodEntryRequest{Score: &score})
	assert.ErrorIs(t, err, entities.ErrScoreOutOfRange)

	weather := strings.Repeat("w", 51)
	_, err = svc.UpdateEntry(context.Background(), uuid.New(), ports.UpdateMoodEntryRequest{Weather: &weather})
	require.Error(t, err)
	assert.NotErrorIs(t, err, entities.ErrScoreOutOfRange)
}

func TestCreateMoodEntryValid(t *testing.T) {
	client := &fakeMoodClient{}
	svc := NewMoodService(client, newTestCache(), logger.Nop())

	entry, err := svc.CreateEntry(context.Background(), ports.CreateMoodEntryRequest{
		Score:      4,
		Energy:     3,
		Stress:     2,
		RecordedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, entry.Score)
	assert.Equal(t, 1, client.createCalls)
}

func TestCreateHabitInvalidFrequency(t *testing.T) {
	client := &fakeHabitClient{}
	svc := NewHabitService(client, newTestCache(), logger.Nop())

	_, err := svc.CreateHabit(context.Background(), ports.CreateHabitRequest{
		Name:      "stretch",
		Frequency: entities.HabitFrequency("hourly"),
	})
	require.Error(t, err)
	assert.Zero(t, client.createCalls)
}

func TestCompleteHabitDefaultsToToday(t *testing.T) {
	client := &fakeHabitClient{}
	svc := NewHabitService(client, newTestCache(), logger.Nop())

	completion, err := svc.CompleteHabit(context.Background(), uuid.New(), time.Time{}, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format(entities.DayLayout), completion.Day)
}

func TestImportClearsCache(t *testing.T) {
	c := newTestCache()
	taskClient := &fakeTaskClient{}
	tasks := NewTaskService(taskClient, c, logger.Nop())
	transfer := NewTransferService(&fakeTransferClient{}, newFakeBackupRepo(), c, logger.Nop())

	_, err := tasks.ListTasks(context.Background(), ports.TaskFilter{})
	require.NoError(t, err)

	summary, err := transfer.Import(context.Background(), []byte(`{"tasks":[]}`))
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Tasks)

	_, err = tasks.ListTasks(context.Background(), ports.TaskFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, taskClient.listCalls)
}

func TestImportRejectsEmptyPayload(t *testing.T) {
	transfer := NewTransferService(&fakeTransferClient{}, newFakeBackupRepo(), newTestCache(), logger.Nop())

	_, err := transfer.Import(context.Background(), nil)
	require.Error(t, err)
}

func TestExportToBackupStoresPayload(t *testing.T) {
	backups := newFakeBackupRepo()
	transfer := NewTransferService(
		&fakeTransferClient{exportPayload: []byte(`{"tasks":[]}`)},
		backups, newTestCache(), logger.Nop(),
	)

	meta, err := transfer.ExportToBackup(context.Background(), ports.ExportRequest{Format: entities.FormatJSON}, "weekly")
	require.NoError(t, err)

	assert.Equal(t, entities.FormatJSON, meta.Format)
	assert.Equal(t, int64(12), meta.SizeBytes)
	require.NotNil(t, meta.Note)
	assert.Equal(t, "weekly", *meta.Note)
	require.Len(t, backups.saved, 1)
}

func TestRestoreBackupRejectsNonJSON(t *testing.T) {
	backups := newFakeBackupRepo()
	transfer := NewTransferService(
		&fakeTransferClient{exportPayload: []byte("id,title\n")},
		backups, newTestCache(), logger.Nop(),
	)

	meta, err := transfer.ExportToBackup(context.Background(), ports.ExportRequest{Format: entities.FormatCSV}, "")
	require.NoError(t, err)

	_, err = transfer.RestoreBackup(context.Background(), meta.ID)
	require.Error(t, err)
}

func TestRestoreBackupRoundtrip(t *testing.T) {
	backups := newFakeBackupRepo()
	client := &fakeTransferClient{exportPayload: []byte(`{"habits":[]}`)}
	transfer := NewTransferService(client, backups, newTestCache(), logger.Nop())

	meta, err := transfer.ExportToBackup(context.Background(), ports.ExportRequest{Format: entities.FormatJSON}, "")
	require.NoError(t, err)

	_, err = transfer.RestoreBackup(context.Background(), meta.ID)
	require.NoError(t, err)

	require.Len(t, client.imported, 1)
	assert.Equal(t, client.exportPayload, client.imported[0])
}

func TestDashboardReport(t *testing.T) {
	c := newTestCache()
	overdue := time.Now().Add(-48 * time.Hour)
	habitID := uuid.New()

	taskClient := &fakeTaskClient{tasks: []entities.Task{
		{ID: uuid.New(), Title: "file taxes", Status: entities.TaskStatusTodo, DueDate: &overdue, CreatedAt: time.Now().Add(-time.Hour)},
		{ID: uuid.New(), Title: "inbox zero", Status: entities.TaskStatusCompleted, CreatedAt: time.Now().Add(-time.Hour)},
	}}
	habitClient := &fakeHabitClient{
		habits: []entities.Habit{{ID: habitID, Name: "run", Frequency: entities.FrequencyDaily}},
		completions: []entities.HabitCompletion{
			{ID: uuid.New(), HabitID: habitID, Day: time.Now().Format(entities.DayLayout)},
			{ID: uuid.New(), HabitID: habitID, Day: time.Now().Add(-24 * time.Hour).Format(entities.DayLayout)},
		},
	}
	moodClient := &fakeMoodClient{entries: []entities.MoodEntry{
		{ID: uuid.New(), Score: 4, Energy: 3, Stress: 2, RecordedAt: time.Now().Add(-2 * time.Hour)},
		{ID: uuid.New(), Score: 2, Energy: 2, Stress: 4, RecordedAt: time.Now().Add(-26 * time.Hour)},
	}}

	svc := NewAnalyticsService(
		NewTaskService(taskClient, c, logger.Nop()),
		NewHabitService(habitClient, c, logger.Nop()),
		NewMoodService(moodClient, c, logger.Nop()),
		logger.Nop(),
	)

	report, err := svc.Dashboard(context.Background(), 7*24*time.Hour)
	require.NoError(t, err)

	assert.Equal(t, 1, report.OverdueTasks)
	assert.InDelta(t, 3.0, report.MoodAverage, 0.001)
	require.Contains(t, report.Streaks, habitID)
	assert.Equal(t, 2, report.Streaks[habitID].Current)
	assert.GreaterOrEqual(t, report.Productivity.Score, 0.0)
	assert.LessOrEqual(t, report.Productivity.Score, 100.0)
}

func TestDashboardStreakSpansBeyondWindow(t *testing.T) {
	c := newTestCache()
	habitID := uuid.New()

	habitClient := &fakeHabitClient{
		habits: []entities.Habit{{ID: habitID, Name: "meditate", Frequency: entities.FrequencyDaily}},
	}
	for i := 0; i < 20; i++ {
		habitClient.completions = append(habitClient.completions, entities.HabitCompletion{
			ID:      uuid.New(),
			HabitID: habitID,
			Day:     time.Now().AddDate(0, 0, -i).Format(entities.DayLayout),
		})
	}

	svc := NewAnalyticsService(
		NewTaskService(&fakeTaskClient{}, c, logger.Nop()),
		NewHabitService(habitClient, c, logger.Nop()),
		NewMoodService(&fakeMoodClient{}, c, logger.Nop()),
		logger.Nop(),
	)

	report, err := svc.Dashboard(context.Background(), 7*24*time.Hour)
	require.NoError(t, err)

	require.Contains(t, report.Streaks, habitID)
	assert.Equal(t, 20, report.Streaks[habitID].Current, "streak must not be clipped to the lookback window")
	assert.Equal(t, 20, report.Streaks[habitID].Longest)
}

func TestLocalThemeDefaultsToSystem(t *testing.T) {
	svc := &PreferenceService{local: newFakePrefRepo(), logger: logger.Nop()}

	mode, err := svc.LocalTheme(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entities.ThemeSystem, mode)
}

func TestLocalThemeRoundtrip(t *testing.T) {
	svc := &PreferenceService{local: newFakePrefRepo(), logger: logger.Nop()}

	require.NoError(t, svc.SetLocalTheme(context.Background(), entities.ThemeDark))
	mode, err := svc.LocalTheme(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entities.ThemeDark, mode)

	err = svc.SetLocalTheme(context.Background(), entities.ThemeMode("sepia"))
	require.Error(t, err)
}

func TestSidebarAndSearchState(t *testing.T) {
	svc := &PreferenceService{local: newFakePrefRepo(), logger: logger.Nop()}

	open, err := svc.SidebarOpen(context.Background())
	require.NoError(t, err)
	assert.True(t, open, "sidebar defaults open")

	require.NoError(t, svc.SetSidebarOpen(context.Background(), false))
	open, err = svc.SidebarOpen(context.Background())
	require.NoError(t, err)
	assert.False(t, open)

	require.NoError(t, svc.SetSearchQuery(context.Background(), "groceries"))
	q, err := svc.SearchQuery(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "groceries", q)

	require.NoError(t, svc.SetSearchQuery(context.Background(), ""))
	q, err = svc.SearchQuery(context.Background())
	require.NoError(t, err)
	assert.Empty(t, q)
}
