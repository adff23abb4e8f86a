package handlers

import (
	stdErrors "errors"
	"net/http"

	"github.com/goccy/go-json"
	"hookdesk/internal/engine/subscriptions"
	"hookdesk/internal/platform/models"
	"hookdesk/internal/pkg/errors"
)

// FormHandler exposes the form rules without storing anything.
type FormHandler struct{}

func NewFormHandler() *FormHandler {
	return &FormHandler{}
}

type validateResponse struct {
	Valid          bool              `json:"valid"`
	Errors         map[string]string `json:"errors,omitempty"`
	RequiredFields []string          `json:"required_fields"`
}

func (h *FormHandler) Validate(w http.ResponseWriter, r *http.Request) {
	form, ok := decodeForm(w, r)
	if !ok {
		return
	}

	resp := validateResponse{Valid: true, RequiredFields: form.RequiredFields()}
	if err := form.Validate(); err != nil {
		var verr *subscriptions.ValidationError
		if !stdErrors.As(err, &verr) {
			writeServiceError(w, err)
			return
		}
		resp.Valid = false
		resp.Errors = verr.FieldMessages()
	}

	errors.WriteJSON(w, http.StatusOK, resp)
}

func (h *FormHandler) ToggleEventType(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EventTypes []models.EventType `json:"event_types"`
		Value      models.EventType   `json:"value"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	if !subscriptions.KnownEventType(req.Value) {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Unknown event type", map[string]string{
			"value": string(req.Value),
		})
		return
	}

	errors.WriteJSON(w, http.StatusOK, map[string][]models.EventType{
		"event_types": subscriptions.ToggleEventType(req.EventTypes, req.Value),
	})
}
