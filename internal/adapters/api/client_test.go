package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifehub/core/internal/domain/entities"
	"github.com/lifehub/core/internal/infrastructure/config"
	"github.com/lifehub/core/internal/infrastructure/logger"
	"github.com/lifehub/core/internal/ports"
)

func newTestClient(t *testing.T, handler http.Handler, token string) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(config.APIConfig{
		BaseURL:      srv.URL,
		Token:        token,
		Timeout:      5 * time.Second,
		RateLimitRPS: 1000,
		RateBurst:    1000,
	}, logger.Nop())
	require.NoError(t, err)
	return client, srv
}

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestTaskListSendsFilterAndAuth(t *testing.T) {
	var gotAuth, gotStatus, gotLimit string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotStatus = r.URL.Query().Get("status")
		gotLimit = r.URL.Query().Get("limit")
		json.NewEncoder(w).Encode([]entities.Task{{ID: uuid.New(), Title: "write report"}})
	})

	token := signedToken(t, time.Now().Add(time.Hour))
	client, _ := newTestClient(t, handler, token)
	tasks := NewTaskClient(client)

	status := entities.TaskStatusTodo
	got, err := tasks.List(context.Background(), ports.TaskFilter{Status: &status, Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "write report", got[0].Title)
	assert.Equal(t, "Bearer "+token, gotAuth)
	assert.Equal(t, "todo", gotStatus)
	assert.Equal(t, "10", gotLimit)
}

func TestExpiredSessionFailsBeforeRequest(t *testing.T) {
	called := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	client, _ := newTestClient(t, handler, signedToken(t, time.Now().Add(-time.Hour)))
	tasks := NewTaskClient(client)

	_, err := tasks.List(context.Background(), ports.TaskFilter{})
	require.ErrorIs(t, err, entities.ErrSessionExpired)
	assert.False(t, called, "request must not reach the server with an expired token")
}

func TestOpaqueTokenSkipsExpiryCheck(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]entities.Task{})
	})

	client, _ := newTestClient(t, handler, "plain-api-key")
	tasks := NewTaskClient(client)

	_, err := tasks.List(context.Background(), ports.TaskFilter{})
	require.NoError(t, err)
}

func TestNotFoundMapsToSentinel(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "no such task"})
	})

	client, _ := newTestClient(t, handler, "")
	tasks := NewTaskClient(client)

	_, err := tasks.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)

	err = tasks.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)
}

func TestAPIErrorCarriesServerMessage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"message": "title too long"})
	})

	client, _ := newTestClient(t, handler, "")
	tasks := NewTaskClient(client)

	_, err := tasks.Create(context.Background(), ports.CreateTaskRequest{Title: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title too long")
}

func TestMoodCreateRoundTrip(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/mood", r.URL.Path)

		var req ports.CreateMoodEntryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		entry := entities.MoodEntry{
			ID:         uuid.New(),
			Score:      req.Score,
			Energy:     req.Energy,
			Stress:     req.Stress,
			RecordedAt: req.RecordedAt,
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(entry)
	})

	client, _ := newTestClient(t, handler, "")
	mood := NewMoodClient(client)

	entry, err := mood.CreateEntry(context.Background(), ports.CreateMoodEntryRequest{
		Score:      4,
		Energy:     3,
		Stress:     2,
		RecordedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, entry.Score)
}

func TestExportReturnsRawPayload(t *testing.T) {
	const csv = "id,title\n1,write report\n"
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/export", r.URL.Path)
		require.Equal(t, "csv", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(csv))
	})

	client, _ := newTestClient(t, handler, "")
	transfer := NewTransferClient(client)

	payload, err := transfer.Export(context.Background(), ports.ExportRequest{Format: entities.FormatCSV})
	require.NoError(t, err)
	assert.Equal(t, csv, string(payload))
}

func TestImportSendsPayloadVerbatim(t *testing.T) {
	payload := []byte(`{"tasks":[{"title":"restored"}]}`)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/import", r.URL.Path)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, payload, body)
		json.NewEncoder(w).Encode(ports.ImportSummary{Tasks: 1})
	})

	client, _ := newTestClient(t, handler, "")
	transfer := NewTransferClient(client)

	summary, err := transfer.Import(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Tasks)
}
