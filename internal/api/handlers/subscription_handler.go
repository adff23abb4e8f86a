package handlers

import (
	stdErrors "errors"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	apiContext "hookdesk/internal/api/context"
	"hookdesk/internal/engine/keys"
	"hookdesk/internal/engine/subscriptions"
	"hookdesk/internal/engine/toasts"
	"hookdesk/internal/platform/models"
	"hookdesk/internal/pkg/errors"
)

type SubscriptionHandler struct {
	svc    *subscriptions.Service
	toasts *toasts.Queue
	copier *keys.Copier
}

func NewSubscriptionHandler(svc *subscriptions.Service, queue *toasts.Queue, copier *keys.Copier) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc, toasts: queue, copier: copier}
}

// masked hides all but the last four digits of the private key.
func masked(sub models.Subscription) models.Subscription {
	sub.PrivateKey = keys.Mask(sub.PrivateKey)
	return sub
}

func maskedAll(subs []models.Subscription) []models.Subscription {
	out := make([]models.Subscription, len(subs))
	for i, sub := range subs {
		out[i] = masked(sub)
	}
	return out
}

func (h *SubscriptionHandler) List(w http.ResponseWriter, r *http.Request) {
	subs := h.svc.Search(r.URL.Query().Get("q"))

	errors.WriteJSON(w, http.StatusOK, struct {
		Subscriptions []models.Subscription `json:"subscriptions"`
		Count         int                   `json:"count"`
	}{
		Subscriptions: maskedAll(subs),
		Count:         len(subs),
	})
}

func (h *SubscriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := apiContext.ParamsFrom(r).ByName("subscription_id")

	sub, err := h.svc.Get(id)
	if err != nil {
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Subscription not found", nil)
		return
	}

	errors.WriteJSON(w, http.StatusOK, masked(sub))
}

// Create responds with the full private key. It is the only response that
// carries it unmasked.
func (h *SubscriptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, ok := decodeForm(w, r)
	if !ok {
		return
	}

	sub, err := h.svc.Create(form)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	errors.WriteJSON(w, http.StatusCreated, sub)
}

func (h *SubscriptionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := apiContext.ParamsFrom(r).ByName("subscription_id")

	form, ok := decodeForm(w, r)
	if !ok {
		return
	}

	sub, err := h.svc.Update(id, form)
	if err != nil {
		if stdErrors.Is(err, subscriptions.ErrSubscriptionNotFound) {
			h.toasts.Error("Subscription not found")
		}
		writeServiceError(w, err)
		return
	}

	h.toasts.Success("Subscription updated successfully")
	errors.WriteJSON(w, http.StatusOK, masked(sub))
}

func (h *SubscriptionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := apiContext.ParamsFrom(r).ByName("subscription_id")

	if !h.svc.Delete(id) {
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Subscription not found", nil)
		return
	}

	h.toasts.Success("Subscription deleted successfully")
	w.WriteHeader(http.StatusNoContent)
}

func (h *SubscriptionHandler) CopyKey(w http.ResponseWriter, r *http.Request) {
	id := apiContext.ParamsFrom(r).ByName("subscription_id")

	sub, err := h.svc.Get(id)
	if err != nil {
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Subscription not found", nil)
		return
	}

	toastID, err := h.copier.Copy(sub.PrivateKey)
	if err != nil {
		errors.WriteError(w, http.StatusBadGateway, errors.ErrCodeExternalFailure, "Failed to copy private key", map[string]string{
			"toast_id": toastID,
		})
		return
	}

	errors.WriteJSON(w, http.StatusOK, map[string]string{"toast_id": toastID})
}

func (h *SubscriptionHandler) KeyQRCode(w http.ResponseWriter, r *http.Request) {
	id := apiContext.ParamsFrom(r).ByName("subscription_id")

	size := 0
	if s := r.URL.Query().Get("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid size", nil)
			return
		}
		size = n
	}

	sub, err := h.svc.Get(id)
	if err != nil {
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Subscription not found", nil)
		return
	}

	png, err := keys.QRCode(sub.PrivateKey, size)
	if err != nil {
		if stdErrors.Is(err, keys.ErrInvalidQRSize) {
			errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
			return
		}
		log.Error().Err(err).Str("subscription_id", id).Msg("failed to render key QR code")
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to render QR code", nil)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func decodeForm(w http.ResponseWriter, r *http.Request) (*subscriptions.Form, bool) {
	form := subscriptions.NewForm()
	if err := json.NewDecoder(r.Body).Decode(form); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return nil, false
	}
	return form, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	var verr *subscriptions.ValidationError
	switch {
	case stdErrors.As(err, &verr):
		errors.WriteError(w, http.StatusUnprocessableEntity, errors.ErrCodeValidationFailed, "Validation failed", verr.FieldMessages())
	case stdErrors.Is(err, subscriptions.ErrSubscriptionNotFound):
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Subscription not found", nil)
	default:
		log.Error().Err(err).Msg("subscription request failed")
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Internal server error", nil)
	}
}
