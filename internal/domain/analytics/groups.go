package analytics

import (
	"sort"

	"github.com/google/uuid"

	"github.com/lifehub/core/internal/domain/entities"
)

// GroupAverage is the mean score and sample count for one group key.
type GroupAverage struct {
	Key     string  `json:"key"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// groupBy buckets entries by the key function and averages their mood
// score. One result per observed key, sorted by key for stable output.
func groupBy(entries []entities.MoodEntry, keyFn func(entities.MoodEntry) string) []GroupAverage {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, e := range entries {
		k := keyFn(e)
		sums[k] += float64(e.Score)
		counts[k]++
	}

	out := make([]GroupAverage, 0, len(sums))
	for k, sum := range sums {
		out = append(out, GroupAverage{
			Key:     k,
			Average: sum / float64(counts[k]),
			Count:   counts[k],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// AverageByHour groups mood scores by hour of day ("00".."23").
func AverageByHour(entries []entities.MoodEntry) []GroupAverage {
	return groupBy(entries, func(e entities.MoodEntry) string {
		return e.RecordedAt.Format("15")
	})
}

// AverageByWeekday groups mood scores by weekday name.
func AverageByWeekday(entries []entities.MoodEntry) []GroupAverage {
	return groupBy(entries, func(e entities.MoodEntry) string {
		return e.RecordedAt.Weekday().String()
	})
}

// AverageByWeather groups mood scores by recorded weather. Entries
// without weather are skipped.
func AverageByWeather(entries []entities.MoodEntry) []GroupAverage {
	withWeather := make([]entities.MoodEntry, 0, len(entries))
	for _, e := range entries {
		if e.Weather != nil && *e.Weather != "" {
			withWeather = append(withWeather, e)
		}
	}
	return groupBy(withWeather, func(e entities.MoodEntry) string {
		return *e.Weather
	})
}

// TriggerImpact is the shift in average mood when a trigger is present.
type TriggerImpact struct {
	TriggerID   uuid.UUID `json:"trigger_id"`
	TriggerName string    `json:"trigger_name"`
	Average     float64   `json:"average"`
	Delta       float64   `json:"delta"` // average minus overall mean
	Count       int       `json:"count"`
}

// TriggerImpacts computes, per trigger, the average mood of entries
// carrying it and the delta against the overall mean. Triggers never
// observed on an entry are omitted. Results are sorted by delta
// ascending so the most negative trigger comes first.
func TriggerImpacts(entries []entities.MoodEntry, triggers []entities.MoodTrigger) []TriggerImpact {
	if len(entries) == 0 {
		return nil
	}

	overall := AverageScore(entries)
	names := make(map[uuid.UUID]string, len(triggers))
	for _, t := range triggers {
		names[t.ID] = t.Name
	}

	sums := make(map[uuid.UUID]float64)
	counts := make(map[uuid.UUID]int)
	for _, e := range entries {
		for _, id := range e.TriggerIDs {
			sums[id] += float64(e.Score)
			counts[id]++
		}
	}

	out := make([]TriggerImpact, 0, len(sums))
	for id, sum := range sums {
		avg := sum / float64(counts[id])
		out = append(out, TriggerImpact{
			TriggerID:   id,
			TriggerName: names[id],
			Average:     avg,
			Delta:       avg - overall,
			Count:       counts[id],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Delta < out[j].Delta })
	return out
}
