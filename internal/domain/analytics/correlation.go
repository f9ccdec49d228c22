// Package analytics computes derived metrics from fetched collections.
// All functions are pure: they take slices, return values, and never
// hit the network or the cache.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/lifehub/core/internal/domain/entities"
)

// Pearson returns the Pearson correlation coefficient between xs and ys.
// Degenerate input (length mismatch, fewer than two points, or zero
// variance in either series) yields 0. The result is clamped to [-1, 1]
// to absorb floating point drift.
func Pearson(xs, ys []float64) float64 {
	n := len(xs)
	if n != len(ys) || n < 2 {
		return 0
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return 0
	}

	r := cov / math.Sqrt(varX*varY)
	return math.Max(-1, math.Min(1, r))
}

// CorrelationMatrix holds pairwise correlations between the three mood
// series of a set of entries.
type CorrelationMatrix struct {
	MoodEnergy   float64 `json:"mood_energy"`
	MoodStress   float64 `json:"mood_stress"`
	EnergyStress float64 `json:"energy_stress"`
	SampleSize   int     `json:"sample_size"`
}

// MoodCorrelations computes the pairwise correlations of mood, energy
// and stress over the given entries.
func MoodCorrelations(entries []entities.MoodEntry) CorrelationMatrix {
	mood := make([]float64, len(entries))
	energy := make([]float64, len(entries))
	stress := make([]float64, len(entries))
	for i, e := range entries {
		mood[i] = float64(e.Score)
		energy[i] = float64(e.Energy)
		stress[i] = float64(e.Stress)
	}

	return CorrelationMatrix{
		MoodEnergy:   Pearson(mood, energy),
		MoodStress:   Pearson(mood, stress),
		EnergyStress: Pearson(energy, stress),
		SampleSize:   len(entries),
	}
}

// Trend classifies the direction of a mood series.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// slopeThreshold separates stable from moving trends. A slope of 0.05
// means roughly one mood point gained or lost over twenty entries.
const slopeThreshold = 0.05

// MoodTrend fits a least-squares line through the entries ordered by
// RecordedAt and buckets the slope. Fewer than two entries is stable.
func MoodTrend(entries []entities.MoodEntry) Trend {
	if len(entries) < 2 {
		return TrendStable
	}

	ordered := make([]entities.MoodEntry, len(entries))
	copy(ordered, entries)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].RecordedAt.Before(ordered[j].RecordedAt)
	})

	// Index as x keeps the fit scale-free; spacing between entries is
	// irregular anyway.
	n := float64(len(ordered))
	var sumX, sumY, sumXY, sumXX float64
	for i, e := range ordered {
		x := float64(i)
		y := float64(e.Score)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return TrendStable
	}
	slope := (n*sumXY - sumX*sumY) / denom

	switch {
	case slope > slopeThreshold:
		return TrendImproving
	case slope < -slopeThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// AverageScore returns the mean mood score, or 0 for an empty slice.
func AverageScore(entries []entities.MoodEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	var sum float64
	for _, e := range entries {
		sum += float64(e.Score)
	}
	return sum / float64(len(entries))
}

// EntriesSince filters entries recorded at or after the cutoff.
func EntriesSince(entries []entities.MoodEntry, cutoff time.Time) []entities.MoodEntry {
	out := make([]entities.MoodEntry, 0, len(entries))
	for _, e := range entries {
		if !e.RecordedAt.Before(cutoff) {
			out = append(out, e)
		}
	}
	return out
}
