package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifehub/core/internal/domain/entities"
)

func TestAverageByHour(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	entries := []entities.MoodEntry{
		entryAt(2, 3, 3, day.Add(9*time.Hour)),
		entryAt(4, 3, 3, day.Add(9*time.Hour+30*time.Minute)),
		entryAt(5, 3, 3, day.Add(21*time.Hour)),
	}

	groups := AverageByHour(entries)
	require.Len(t, groups, 2)
	assert.Equal(t, "09", groups[0].Key)
	assert.InDelta(t, 3.0, groups[0].Average, 1e-9)
	assert.Equal(t, 2, groups[0].Count)
	assert.Equal(t, "21", groups[1].Key)
	assert.InDelta(t, 5.0, groups[1].Average, 1e-9)
	assert.Equal(t, 1, groups[1].Count)
}

func TestAverageByWeekday(t *testing.T) {
	monday := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	entries := []entities.MoodEntry{
		entryAt(1, 3, 3, monday),
		entryAt(3, 3, 3, monday.AddDate(0, 0, 7)),
		entryAt(5, 3, 3, monday.AddDate(0, 0, 1)),
	}

	groups := AverageByWeekday(entries)
	require.Len(t, groups, 2)

	byKey := map[string]GroupAverage{}
	for _, g := range groups {
		byKey[g.Key] = g
	}
	assert.InDelta(t, 2.0, byKey["Monday"].Average, 1e-9)
	assert.Equal(t, 2, byKey["Monday"].Count)
	assert.InDelta(t, 5.0, byKey["Tuesday"].Average, 1e-9)
}

func TestAverageByWeatherSkipsMissing(t *testing.T) {
	now := time.Now()
	sunny := "sunny"
	rainy := "rainy"

	entries := []entities.MoodEntry{
		{Score: 5, RecordedAt: now, Weather: &sunny},
		{Score: 3, RecordedAt: now, Weather: &sunny},
		{Score: 2, RecordedAt: now, Weather: &rainy},
		{Score: 1, RecordedAt: now}, // no weather recorded
	}

	groups := AverageByWeather(entries)
	require.Len(t, groups, 2)
	assert.Equal(t, "rainy", groups[0].Key)
	assert.Equal(t, 1, groups[0].Count)
	assert.Equal(t, "sunny", groups[1].Key)
	assert.InDelta(t, 4.0, groups[1].Average, 1e-9)
}

func TestAverageByWeatherEmpty(t *testing.T) {
	assert.Empty(t, AverageByWeather(nil))
}

func TestTriggerImpacts(t *testing.T) {
	work := entities.MoodTrigger{ID: uuid.New(), Name: "work", Category: "stress"}
	exercise := entities.MoodTrigger{ID: uuid.New(), Name: "exercise", Category: "health"}
	unused := entities.MoodTrigger{ID: uuid.New(), Name: "travel"}
	triggers := []entities.MoodTrigger{work, exercise, unused}

	now := time.Now()
	entries := []entities.MoodEntry{
		{Score: 1, RecordedAt: now, TriggerIDs: []uuid.UUID{work.ID}},
		{Score: 2, RecordedAt: now, TriggerIDs: []uuid.UUID{work.ID}},
		{Score: 5, RecordedAt: now, TriggerIDs: []uuid.UUID{exercise.ID}},
		{Score: 4, RecordedAt: now},
	}

	impacts := TriggerImpacts(entries, triggers)
	require.Len(t, impacts, 2) // unused trigger omitted

	// Sorted by delta ascending: work first.
	assert.Equal(t, "work", impacts[0].TriggerName)
	assert.InDelta(t, 1.5, impacts[0].Average, 1e-9)
	assert.InDelta(t, 1.5-3.0, impacts[0].Delta, 1e-9)
	assert.Equal(t, 2, impacts[0].Count)

	assert.Equal(t, "exercise", impacts[1].TriggerName)
	assert.InDelta(t, 2.0, impacts[1].Delta, 1e-9)
}

func TestTriggerImpactsNoEntries(t *testing.T) {
	assert.Nil(t, TriggerImpacts(nil, []entities.MoodTrigger{{ID: uuid.New(), Name: "x"}}))
}
