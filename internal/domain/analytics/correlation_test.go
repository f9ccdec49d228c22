package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifehub/core/internal/domain/entities"
)

func TestPearsonDegenerateInput(t *testing.T) {
	assert.Equal(t, 0.0, Pearson(nil, nil))
	assert.Equal(t, 0.0, Pearson([]float64{1}, []float64{2}))
	assert.Equal(t, 0.0, Pearson([]float64{1, 2, 3}, []float64{1, 2}))
	// Zero variance in one series.
	assert.Equal(t, 0.0, Pearson([]float64{2, 2, 2}, []float64{1, 2, 3}))
}

func TestPearsonPerfectCorrelation(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	ys := []float64{2, 4, 6, 8, 10}
	assert.InDelta(t, 1.0, Pearson(xs, ys), 1e-9)

	inverse := []float64{10, 8, 6, 4, 2}
	assert.InDelta(t, -1.0, Pearson(xs, inverse), 1e-9)
}

func TestPearsonWithinBounds(t *testing.T) {
	xs := []float64{3, 1, 4, 1, 5, 9, 2, 6}
	ys := []float64{2, 7, 1, 8, 2, 8, 1, 8}
	r := Pearson(xs, ys)
	assert.GreaterOrEqual(t, r, -1.0)
	assert.LessOrEqual(t, r, 1.0)
}

func entryAt(score, energy, stress int, at time.Time) entities.MoodEntry {
	return entities.MoodEntry{
		Score:      score,
		Energy:     energy,
		Stress:     stress,
		RecordedAt: at,
	}
}

func TestMoodCorrelations(t *testing.T) {
	now := time.Now()
	entries := []entities.MoodEntry{
		entryAt(1, 1, 5, now),
		entryAt(2, 2, 4, now),
		entryAt(3, 3, 3, now),
		entryAt(4, 4, 2, now),
		entryAt(5, 5, 1, now),
	}

	m := MoodCorrelations(entries)
	require.Equal(t, 5, m.SampleSize)
	assert.InDelta(t, 1.0, m.MoodEnergy, 1e-9)
	assert.InDelta(t, -1.0, m.MoodStress, 1e-9)
	assert.InDelta(t, -1.0, m.EnergyStress, 1e-9)
}

func TestMoodTrend(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	var improving []entities.MoodEntry
	for i := 0; i < 10; i++ {
		improving = append(improving, entryAt(1+i/2, 3, 3, base.AddDate(0, 0, i)))
	}
	assert.Equal(t, TrendImproving, MoodTrend(improving))

	var declining []entities.MoodEntry
	for i := 0; i < 10; i++ {
		declining = append(declining, entryAt(5-i/2, 3, 3, base.AddDate(0, 0, i)))
	}
	assert.Equal(t, TrendDeclining, MoodTrend(declining))

	flat := []entities.MoodEntry{
		entryAt(3, 3, 3, base),
		entryAt(3, 3, 3, base.AddDate(0, 0, 1)),
		entryAt(3, 3, 3, base.AddDate(0, 0, 2)),
	}
	assert.Equal(t, TrendStable, MoodTrend(flat))

	assert.Equal(t, TrendStable, MoodTrend(nil))
	assert.Equal(t, TrendStable, MoodTrend(flat[:1]))
}

func TestMoodTrendUnsortedInput(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	// Same improving series, shuffled: trend must not depend on input order.
	entries := []entities.MoodEntry{
		entryAt(5, 3, 3, base.AddDate(0, 0, 8)),
		entryAt(1, 3, 3, base),
		entryAt(4, 3, 3, base.AddDate(0, 0, 6)),
		entryAt(2, 3, 3, base.AddDate(0, 0, 2)),
		entryAt(3, 3, 3, base.AddDate(0, 0, 4)),
	}
	assert.Equal(t, TrendImproving, MoodTrend(entries))
}

func TestAverageScore(t *testing.T) {
	assert.Equal(t, 0.0, AverageScore(nil))

	now := time.Now()
	entries := []entities.MoodEntry{
		entryAt(2, 3, 3, now),
		entryAt(4, 3, 3, now),
	}
	assert.InDelta(t, 3.0, AverageScore(entries), 1e-9)
}
