package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/lifehub/core/internal/domain/entities"
	"github.com/lifehub/core/internal/ports"
)

// BackupRepositoryImpl implements the BackupRepository interface.
// Payloads are sealed with the configured passphrase when one is set.
type BackupRepositoryImpl struct {
	db         *sqlx.DB
	passphrase string
}

// NewBackupRepository creates a new backup repository. An empty
// passphrase stores payloads in the clear.
func NewBackupRepository(db *sqlx.DB, passphrase string) ports.BackupRepository {
	return &BackupRepositoryImpl{db: db, passphrase: passphrase}
}

func (r *BackupRepositoryImpl) Save(ctx context.Context, meta *entities.BackupMetadata, payload []byte) error {
	if meta.ID == uuid.Nil {
		meta.ID = uuid.New()
	}
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now().UTC()
	}
	meta.SizeBytes = int64(len(payload))

	stored := payload
	meta.Encrypted = false
	if r.passphrase != "" {
		sealed, err := seal(payload, r.passphrase)
		if err != nil {
			return fmt.Errorf("seal backup payload: %w", err)
		}
		stored = sealed
		meta.Encrypted = true
	}

	query := `
		INSERT INTO backups (id, format, size_bytes, encrypted, note, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		meta.ID.String(), meta.Format, meta.SizeBytes, meta.Encrypted,
		meta.Note, stored, meta.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save backup: %w", err)
	}
	return nil
}

func (r *BackupRepositoryImpl) List(ctx context.Context) ([]entities.BackupMetadata, error) {
	rows := []backupRow{}
	query := `
		SELECT id, format, size_bytes, encrypted, note, created_at
		FROM backups
		ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}

	out := make([]entities.BackupMetadata, 0, len(rows))
	for _, row := range rows {
		meta, err := row.toMetadata()
		if err != nil {
			return nil, err
		}
		out = append(out, meta)
	}
	return out, nil
}

func (r *BackupRepositoryImpl) Payload(ctx context.Context, id uuid.UUID) (*entities.BackupMetadata, []byte, error) {
	var row struct {
		backupRow
		Payload []byte `db:"payload"`
	}

	query := `
		SELECT id, format, size_bytes, encrypted, note, payload, created_at
		FROM backups
		WHERE id = ?`

	err := r.db.GetContext(ctx, &row, query, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, entities.ErrBackupNotFound
		}
		return nil, nil, fmt.Errorf("get backup: %w", err)
	}

	meta, err := row.toMetadata()
	if err != nil {
		return nil, nil, err
	}

	payload := row.Payload
	if meta.Encrypted {
		opened, err := open(payload, r.passphrase)
		if err != nil {
			return nil, nil, err
		}
		payload = opened
	}
	return &meta, payload, nil
}

func (r *BackupRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM backups WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete backup: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entities.ErrBackupNotFound
	}
	return nil
}

// Prune deletes all but the newest keep backups and returns how many
// rows were removed.
func (r *BackupRepositoryImpl) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}

	query := `
		DELETE FROM backups
		WHERE id NOT IN (
			SELECT id FROM backups ORDER BY created_at DESC LIMIT ?
		)`

	res, err := r.db.ExecContext(ctx, query, keep)
	if err != nil {
		return 0, fmt.Errorf("prune backups: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune backups: %w", err)
	}
	return int(n), nil
}

type backupRow struct {
	ID        string    `db:"id"`
	Format    string    `db:"format"`
	SizeBytes int64     `db:"size_bytes"`
	Encrypted bool      `db:"encrypted"`
	Note      *string   `db:"note"`
	CreatedAt time.Time `db:"created_at"`
}

func (row backupRow) toMetadata() (entities.BackupMetadata, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return entities.BackupMetadata{}, fmt.Errorf("parse backup id: %w", err)
	}
	return entities.BackupMetadata{
		ID:        id,
		Format:    entities.ExportFormat(row.Format),
		SizeBytes: row.SizeBytes,
		Encrypted: row.Encrypted,
		Note:      row.Note,
		CreatedAt: row.CreatedAt,
	}, nil
}
