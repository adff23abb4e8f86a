package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"hookdesk/internal/engine/subscriptions"
	"hookdesk/internal/engine/toasts"
	"hookdesk/internal/platform/models"
)

const (
	MessageSubscriptions = "subscriptions"
	MessageToast         = "toast"
)

// StreamMessage is one frame pushed to websocket clients. Subscriptions
// carry the whole collection with masked keys.
type StreamMessage struct {
	Type          string                `json:"type"`
	Subscriptions []models.Subscription `json:"subscriptions,omitempty"`
	Toast         *toasts.Event         `json:"toast,omitempty"`
}

type StreamHandler struct {
	store        *subscriptions.Store
	queue        *toasts.Queue
	upgrader     websocket.Upgrader
	writeTimeout time.Duration
	bufferSize   int
}

func NewStreamHandler(store *subscriptions.Store, queue *toasts.Queue, writeTimeout time.Duration, bufferSize int) *StreamHandler {
	if bufferSize <= 0 {
		bufferSize = 16
	}
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}
	return &StreamHandler{
		store:        store,
		queue:        queue,
		upgrader:     websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},
		writeTimeout: writeTimeout,
		bufferSize:   bufferSize,
	}
}

// Stream upgrades the connection and pushes the current collection, then
// every later collection and toast event. Clients that fall behind by more
// than the buffer are disconnected.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	// Deadlines set by http.Server survive the hijack.
	conn.SetReadDeadline(time.Time{})

	out := make(chan StreamMessage, h.bufferSize)
	done := make(chan struct{})
	var stopOnce sync.Once
	stop := func() { stopOnce.Do(func() { close(done) }) }

	send := func(m StreamMessage) {
		select {
		case <-done:
		case out <- m:
		default:
			log.Warn().Str("remote_addr", r.RemoteAddr).Msg("stream client too slow, disconnecting")
			stop()
		}
	}

	unsubscribeStore := h.store.Subscribe(func(subs []models.Subscription) {
		send(StreamMessage{Type: MessageSubscriptions, Subscriptions: maskedAll(subs)})
	})
	defer unsubscribeStore()

	unsubscribeToasts := h.queue.Subscribe(func(e toasts.Event) {
		send(StreamMessage{Type: MessageToast, Toast: &e})
	})
	defer unsubscribeToasts()

	go func() {
		defer stop()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	log.Debug().Str("remote_addr", r.RemoteAddr).Msg("stream client connected")

	for {
		select {
		case <-done:
			return
		case m := <-out:
			data, err := json.Marshal(m)
			if err != nil {
				log.Error().Err(err).Msg("failed to encode stream message")
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Debug().Err(err).Msg("stream write failed")
				return
			}
		}
	}
}
