package subscriptions

import (
	"time"

	"hookdesk/internal/platform/models"
)

// SampleSubscription is the demo record the store is seeded with.
func SampleSubscription() models.Subscription {
	created := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC).Unix()
	return models.Subscription{
		ID:              "1",
		ClientName:      "Sample Client",
		WebhookURL:      "https://client.com/webhook",
		AuthType:        models.AuthTypeBasic,
		AuthCredentials: models.BasicAuthCredentials{Username: "user123", Password: "pass123"},
		EventTypes:      []models.EventType{models.EventGeneralReport},
		PrivateKey:      "9384756102837461",
		CreatedAt:       created,
		UpdatedAt:       created,
	}
}
