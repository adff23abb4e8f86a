package handlers

import (
	"fmt"
	"net/http"

	"hookdesk/internal/engine/subscriptions"
	"hookdesk/internal/engine/toasts"
)

// MetricsHandler exports gauges in the Prometheus text format.
type MetricsHandler struct {
	svc   *subscriptions.Service
	queue *toasts.Queue
	board *toasts.Board
}

func NewMetricsHandler(svc *subscriptions.Service, queue *toasts.Queue, board *toasts.Board) *MetricsHandler {
	return &MetricsHandler{svc: svc, queue: queue, board: board}
}

func (h *MetricsHandler) Export(w http.ResponseWriter, r *http.Request) {
	ready := 0
	if h.svc.Ready() {
		ready = 1
	}

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	gauge(w, "hookdesk_up", "Is the server up", 1)
	gauge(w, "hookdesk_ready", "Whether the initial subscription load finished", ready)
	gauge(w, "hookdesk_subscriptions", "Number of stored subscriptions", h.svc.Store().Len())
	gauge(w, "hookdesk_toasts_active", "Toasts currently displayed", h.board.Len())
	gauge(w, "hookdesk_toast_timers_pending", "Scheduled automatic toast removals", h.queue.Pending())
}

func gauge(w http.ResponseWriter, name, help string, v int) {
	fmt.Fprintf(w, "# HELP %s %s\n", name, help)
	fmt.Fprintf(w, "# TYPE %s gauge\n", name)
	fmt.Fprintf(w, "%s %d\n", name, v)
}
