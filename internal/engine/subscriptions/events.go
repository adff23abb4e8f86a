package subscriptions

import (
	"errors"

	"github.com/samber/lo"
	"hookdesk/internal/platform/models"
)

var knownEventTypes = []interface{}{
	models.EventGeneralReport,
	models.EventSpecialReport,
	models.EventBoth,
}

// ToggleEventType applies one click on an event-type option and returns the
// new selection. Both is exclusive: selecting it replaces any partial
// selection, and selecting a specific type drops Both.
func ToggleEventType(selected []models.EventType, value models.EventType) []models.EventType {
	if value == models.EventBoth {
		if lo.Contains(selected, models.EventBoth) {
			return []models.EventType{}
		}
		return []models.EventType{models.EventBoth}
	}

	next := lo.Without(selected, models.EventBoth)
	if lo.Contains(next, value) {
		return lo.Without(next, value)
	}
	return append(next, value)
}

var errBothNotExclusive = errors.New("Both cannot be combined with other event types")

func exclusiveBoth(value interface{}) error {
	events, _ := value.([]models.EventType)
	if lo.Contains(events, models.EventBoth) && len(events) > 1 {
		return errBothNotExclusive
	}
	return nil
}

func KnownEventType(value models.EventType) bool {
	return lo.Contains(knownEventTypes, interface{}(value))
}
