package handlers

import (
	"net/http"

	apiContext "hookdesk/internal/api/context"
	"hookdesk/internal/engine/toasts"
	"hookdesk/internal/pkg/errors"
)

type ToastHandler struct {
	queue *toasts.Queue
	board *toasts.Board
}

func NewToastHandler(queue *toasts.Queue, board *toasts.Board) *ToastHandler {
	return &ToastHandler{queue: queue, board: board}
}

func (h *ToastHandler) List(w http.ResponseWriter, r *http.Request) {
	errors.WriteJSON(w, http.StatusOK, map[string][]toasts.Toast{
		"toasts": h.board.Active(),
	})
}

// Dismiss removes a toast. Dismissing an unknown or expired id succeeds.
func (h *ToastHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	h.queue.Remove(apiContext.ParamsFrom(r).ByName("toast_id"))
	w.WriteHeader(http.StatusNoContent)
}
