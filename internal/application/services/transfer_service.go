package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/lifehub/core/internal/domain/entities"
	"github.com/lifehub/core/internal/infrastructure/cache"
	"github.com/lifehub/core/internal/infrastructure/logger"
	"github.com/lifehub/core/internal/ports"
)

// TransferService drives server-side export/import and the local
// backup store. Export payloads are generated by the server; this
// layer decides where the bytes land (file or encrypted backup row).
type TransferService struct {
	client   ports.TransferClient
	backups  ports.BackupRepository
	cache    *cache.Cache
	validate *validator.Validate
	logger   *logger.Logger
}

// NewTransferService creates a new transfer service
func NewTransferService(client ports.TransferClient, backups ports.BackupRepository, c *cache.Cache, log *logger.Logger) *TransferService {
	return &TransferService{
		client:   client,
		backups:  backups,
		cache:    c,
		validate: newValidator(),
		logger:   log.WithComponent("transfer"),
	}
}

// Export fetches an export payload from the server.
func (s *TransferService) Export(ctx context.Context, req ports.ExportRequest) ([]byte, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid export request: %w", err)
	}

	payload, err := s.client.Export(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to export: %w", err)
	}

	s.logger.Infow("Export fetched", "format", req.Format, "bytes", len(payload))
	return payload, nil
}

// ExportToFile writes an export payload to the given path.
func (s *TransferService) ExportToFile(ctx context.Context, req ports.ExportRequest, path string) error {
	payload, err := s.Export(ctx, req)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	s.logger.Infow("Export written", "path", path, "bytes", len(payload))
	return nil
}

// ExportToBackup stores an export payload as a local backup. The
// payload is encrypted at rest when a backup passphrase is configured.
func (s *TransferService) ExportToBackup(ctx context.Context, req ports.ExportRequest, note string) (*entities.BackupMetadata, error) {
	payload, err := s.Export(ctx, req)
	if err != nil {
		return nil, err
	}

	meta := &entities.BackupMetadata{
		Format:    req.Format,
		SizeBytes: int64(len(payload)),
		CreatedAt: time.Now(),
	}
	if note != "" {
		meta.Note = &note
	}
	if err := s.backups.Save(ctx, meta, payload); err != nil {
		return nil, fmt.Errorf("failed to store backup: %w", err)
	}

	s.logger.Infow("Backup stored", "backup_id", meta.ID, "format", meta.Format)
	return meta, nil
}

// Import pushes a payload to the server and clears the entire cache,
// since an import can touch every collection.
func (s *TransferService) Import(ctx context.Context, payload []byte) (*ports.ImportSummary, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("import payload is empty")
	}

	summary, err := s.client.Import(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to import: %w", err)
	}
	s.cache.Clear()

	s.logger.Infow("Import applied",
		"tasks", summary.Tasks,
		"habits", summary.Habits,
		"moods", summary.Moods,
		"journal", summary.Journal,
		"events", summary.Events,
		"skipped", summary.Skipped,
	)
	return summary, nil
}

// ImportFromFile reads a payload from disk and imports it.
func (s *TransferService) ImportFromFile(ctx context.Context, path string) (*ports.ImportSummary, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}
	return s.Import(ctx, payload)
}

// RestoreBackup imports a stored backup payload back into the server.
func (s *TransferService) RestoreBackup(ctx context.Context, id uuid.UUID) (*ports.ImportSummary, error) {
	meta, payload, err := s.backups.Payload(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load backup: %w", err)
	}
	if meta.Format != entities.FormatJSON {
		return nil, fmt.Errorf("backup %s is %s; only json backups can be restored", id, meta.Format)
	}
	return s.Import(ctx, payload)
}

// ListBackups returns stored backup metadata, newest first.
func (s *TransferService) ListBackups(ctx context.Context) ([]entities.BackupMetadata, error) {
	backups, err := s.backups.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}
	return backups, nil
}

// DeleteBackup removes a stored backup.
func (s *TransferService) DeleteBackup(ctx context.Context, id uuid.UUID) error {
	if err := s.backups.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete backup: %w", err)
	}
	s.logger.Infow("Backup deleted", "backup_id", id)
	return nil
}

// PruneBackups deletes all but the newest keep backups.
func (s *TransferService) PruneBackups(ctx context.Context, keep int) (int, error) {
	if keep < 1 {
		return 0, fmt.Errorf("keep must be at least 1")
	}
	removed, err := s.backups.Prune(ctx, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune backups: %w", err)
	}
	if removed > 0 {
		s.logger.Infow("Backups pruned", "removed", removed, "kept", keep)
	}
	return removed, nil
}
