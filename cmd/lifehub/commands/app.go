package commands

import (
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lifehub/core/internal/adapters/api"
	"github.com/lifehub/core/internal/adapters/repository"
	"github.com/lifehub/core/internal/application/services"
	"github.com/lifehub/core/internal/infrastructure/cache"
	"github.com/lifehub/core/internal/infrastructure/config"
	"github.com/lifehub/core/internal/infrastructure/database"
	"github.com/lifehub/core/internal/infrastructure/logger"
)

// App wires configuration, the API client, the cache and the local
// store into the services each command uses. Built once per invocation.
type App struct {
	Config *config.Config
	Logger *logger.Logger

	Tasks        *services.TaskService
	Habits       *services.HabitService
	Moods        *services.MoodService
	Journal      *services.JournalService
	Calendar     *services.CalendarService
	Analytics    *services.AnalyticsService
	Preferences  *services.PreferenceService
	Transfer     *services.TransferService
	Integrations *services.IntegrationService

	db *database.DB
}

func newApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	client, err := api.New(cfg.API, appLogger)
	if err != nil {
		return nil, err
	}

	db, err := database.New(cfg.Store)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	c := cache.New(cfg.Cache, appLogger)
	prefRepo := repository.NewPreferenceRepository(db.DB)
	backupRepo := repository.NewBackupRepository(db.DB, cfg.Store.BackupPassphrase)

	tasks := services.NewTaskService(api.NewTaskClient(client), c, appLogger)
	habits := services.NewHabitService(api.NewHabitClient(client), c, appLogger)
	moods := services.NewMoodService(api.NewMoodClient(client), c, appLogger)

	app := &App{
		Config:       cfg,
		Logger:       appLogger,
		Tasks:        tasks,
		Habits:       habits,
		Moods:        moods,
		Journal:      services.NewJournalService(api.NewJournalClient(client), c, appLogger),
		Calendar:     services.NewCalendarService(api.NewCalendarClient(client), c, appLogger),
		Analytics:    services.NewAnalyticsService(tasks, habits, moods, appLogger),
		Preferences:  services.NewPreferenceService(api.NewPreferencesClient(client), prefRepo, c, appLogger),
		Transfer:     services.NewTransferService(api.NewTransferClient(client), backupRepo, c, appLogger),
		Integrations: services.NewIntegrationService(api.NewIntegrationClient(client), c, appLogger),
		db:           db,
	}

	if cfg.Metrics.Enabled {
		app.serveMetrics(cfg.Metrics.Port)
	}
	return app, nil
}

// Close flushes logs and releases the local store.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.Logger.Warnw("Failed to close local store", "error", err)
		}
	}
	_ = a.Logger.Sync()
}

// serveMetrics exposes the Prometheus registry on a background
// listener for long-running invocations.
func (a *App) serveMetrics(port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		addr := fmt.Sprintf(":%d", port)
		a.Logger.Infow("Metrics listener started", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			a.Logger.Warnw("Metrics listener stopped", "error", err)
		}
	}()
}

// newTabWriter returns the writer used for all tabular command output.
func newTabWriter() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
}

func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

func formatOptTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return formatTime(*t)
}

func formatOptString(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
