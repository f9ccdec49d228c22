// Package services composes the API clients, the query cache and the
// local store into the operations the CLI consumes. Reads go through
// the cache; every mutation invalidates its domain namespace before
// returning.
package services

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Cache namespaces, one per domain collection.
const (
	nsTasks       = "tasks"
	nsHabits      = "habits"
	nsMood        = "mood"
	nsJournal     = "journal"
	nsCalendar    = "calendar"
	nsPreferences = "preferences"
)

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// filterKey folds a filter struct into a cache key suffix so distinct
// queries get distinct entries.
func filterKey(filter interface{}) string {
	buf, err := json.Marshal(filter)
	if err != nil {
		return fmt.Sprintf("%+v", filter)
	}
	return string(buf)
}
