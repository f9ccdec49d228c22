package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifehub/core/internal/domain/entities"
	"github.com/lifehub/core/internal/infrastructure/config"
	"github.com/lifehub/core/internal/infrastructure/database"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.New(config.StoreConfig{
		Path: filepath.Join(t.TempDir(), "lifehub-test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPreferenceSetGetDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewPreferenceRepository(db.DB)
	ctx := context.Background()

	_, err := repo.Get(ctx, PrefTheme)
	assert.ErrorIs(t, err, ErrPreferenceNotFound)

	require.NoError(t, repo.Set(ctx, PrefTheme, "dark"))
	v, err := repo.Get(ctx, PrefTheme)
	require.NoError(t, err)
	assert.Equal(t, "dark", v)

	// Upsert overwrites.
	require.NoError(t, repo.Set(ctx, PrefTheme, "light"))
	v, err = repo.Get(ctx, PrefTheme)
	require.NoError(t, err)
	assert.Equal(t, "light", v)

	require.NoError(t, repo.Set(ctx, PrefSidebarOpen, "true"))
	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{PrefTheme: "light", PrefSidebarOpen: "true"}, all)

	require.NoError(t, repo.Delete(ctx, PrefTheme))
	_, err = repo.Get(ctx, PrefTheme)
	assert.ErrorIs(t, err, ErrPreferenceNotFound)
}

func TestBackupSaveAndReadBack(t *testing.T) {
	db := newTestDB(t)
	repo := NewBackupRepository(db.DB, "")
	ctx := context.Background()

	payload := []byte(`{"tasks":[]}`)
	meta := &entities.BackupMetadata{Format: entities.FormatJSON}
	require.NoError(t, repo.Save(ctx, meta, payload))
	require.NotEqual(t, uuid.Nil, meta.ID)
	assert.False(t, meta.Encrypted)
	assert.Equal(t, int64(len(payload)), meta.SizeBytes)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, meta.ID, list[0].ID)

	got, body, err := repo.Payload(ctx, meta.ID)
	require.NoError(t, err)
	assert.Equal(t, payload, body)
	assert.Equal(t, entities.FormatJSON, got.Format)
}

func TestBackupEncryptionRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewBackupRepository(db.DB, "correct horse")
	ctx := context.Background()

	payload := []byte("id,title\n1,meditate\n")
	meta := &entities.BackupMetadata{Format: entities.FormatCSV}
	require.NoError(t, repo.Save(ctx, meta, payload))
	assert.True(t, meta.Encrypted)

	_, body, err := repo.Payload(ctx, meta.ID)
	require.NoError(t, err)
	assert.Equal(t, payload, body)

	// A repository with the wrong passphrase cannot open it.
	wrong := NewBackupRepository(db.DB, "battery staple")
	_, _, err = wrong.Payload(ctx, meta.ID)
	assert.ErrorIs(t, err, entities.ErrWrongPassphrase)
}

func TestBackupNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewBackupRepository(db.DB, "")
	ctx := context.Background()

	_, _, err := repo.Payload(ctx, uuid.New())
	assert.ErrorIs(t, err, entities.ErrBackupNotFound)

	err = repo.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, entities.ErrBackupNotFound)
}

func TestBackupPruneKeepsNewest(t *testing.T) {
	db := newTestDB(t)
	repo := NewBackupRepository(db.DB, "")
	ctx := context.Background()

	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		meta := &entities.BackupMetadata{Format: entities.FormatJSON}
		// Distinct timestamps so ordering is deterministic.
		meta.CreatedAt = baseTime(i)
		require.NoError(t, repo.Save(ctx, meta, []byte("{}")))
		ids = append(ids, meta.ID)
	}

	removed, err := repo.Prune(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ids[4], list[0].ID)
	assert.Equal(t, ids[3], list[1].ID)
}

func baseTime(i int) time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Hour)
}

func TestSealOpenRejectsTamperedPayload(t *testing.T) {
	sealed, err := seal([]byte("secret"), "pass")
	require.NoError(t, err)

	sealed[len(sealed)-1] ^= 0xff
	_, err = open(sealed, "pass")
	assert.ErrorIs(t, err, entities.ErrWrongPassphrase)
}
