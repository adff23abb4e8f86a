package handlers

import (
	"net/http"
	"strconv"
	"time"

	"hookdesk/internal/engine/subscriptions"
	"hookdesk/internal/engine/toasts"
	"hookdesk/internal/pkg/errors"
)

type HealthHandler struct {
	svc   *subscriptions.Service
	board *toasts.Board
}

func NewHealthHandler(svc *subscriptions.Service, board *toasts.Board) *HealthHandler {
	return &HealthHandler{svc: svc, board: board}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)

	if h.svc.Ready() {
		checks["store"] = "healthy"
	} else {
		checks["store"] = "loading"
	}
	checks["toasts"] = strconv.Itoa(h.board.Len()) + " active"

	status := "healthy"
	statusCode := http.StatusOK
	if checks["store"] != "healthy" {
		status = "starting"
		statusCode = http.StatusServiceUnavailable
	}

	errors.WriteJSON(w, statusCode, struct {
		Status    string            `json:"status"`
		Timestamp int64             `json:"timestamp"`
		Checks    map[string]string `json:"checks"`
	}{
		Status:    status,
		Timestamp: time.Now().Unix(),
		Checks:    checks,
	})
}
