package toasts

import (
	"strconv"
	"sync"
	"time"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

type Toast struct {
	ID         string   `json:"id"`
	Message    string   `json:"message"`
	Severity   Severity `json:"severity"`
	DurationMs int64    `json:"duration_ms"`
}

type EventKind string

const (
	EventInsert EventKind = "insert"
	EventRemove EventKind = "remove"
)

// Event is either an insert carrying a Toast or a removal of ID.
type Event struct {
	Kind  EventKind `json:"kind"`
	ID    string    `json:"id"`
	Toast *Toast    `json:"toast,omitempty"`
}

// Queue hands out toast ids, publishes insert and remove events, and
// removes toasts automatically once their duration elapses.
type Queue struct {
	defaultDuration time.Duration

	mu     sync.Mutex
	nextID uint64
	timers map[string]*time.Timer
	closed bool

	pubMu sync.Mutex

	lmu          sync.Mutex
	listeners    map[int]func(Event)
	nextListener int
}

func NewQueue(defaultDuration time.Duration) *Queue {
	return &Queue{
		defaultDuration: defaultDuration,
		timers:          make(map[string]*time.Timer),
		listeners:       make(map[int]func(Event)),
	}
}

// Show publishes a toast and returns its id. A positive duration schedules
// its removal.
func (q *Queue) Show(message string, severity Severity, duration time.Duration) string {
	q.mu.Lock()
	id := strconv.FormatUint(q.nextID, 10)
	q.nextID++
	q.mu.Unlock()

	t := Toast{
		ID:         id,
		Message:    message,
		Severity:   severity,
		DurationMs: duration.Milliseconds(),
	}
	q.publish(Event{Kind: EventInsert, ID: id, Toast: &t})

	if duration > 0 {
		q.schedule(id, duration)
	}
	return id
}

func (q *Queue) Success(message string) string {
	return q.Show(message, SeveritySuccess, q.defaultDuration)
}

func (q *Queue) Error(message string) string {
	return q.Show(message, SeverityError, q.defaultDuration)
}

func (q *Queue) Info(message string) string {
	return q.Show(message, SeverityInfo, q.defaultDuration)
}

// SuccessFor, ErrorFor and InfoFor take an explicit duration. Zero keeps the
// toast until it is removed.
func (q *Queue) SuccessFor(message string, duration time.Duration) string {
	return q.Show(message, SeveritySuccess, duration)
}

func (q *Queue) ErrorFor(message string, duration time.Duration) string {
	return q.Show(message, SeverityError, duration)
}

func (q *Queue) InfoFor(message string, duration time.Duration) string {
	return q.Show(message, SeverityInfo, duration)
}

// Remove publishes a removal for id. A pending automatic removal still
// fires later; subscribers treat the repeat as a no-op.
func (q *Queue) Remove(id string) {
	q.publish(Event{Kind: EventRemove, ID: id})
}

// Subscribe registers fn for every later event.
func (q *Queue) Subscribe(fn func(Event)) (unsubscribe func()) {
	q.lmu.Lock()
	id := q.nextListener
	q.nextListener++
	q.listeners[id] = fn
	q.lmu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			q.lmu.Lock()
			delete(q.listeners, id)
			q.lmu.Unlock()
		})
	}
}

// Pending reports how many automatic removals are scheduled.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.timers)
}

// Close stops every pending automatic removal. Shows after Close are still
// published but never expire.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
}

func (q *Queue) schedule(id string, d time.Duration) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.timers[id] = time.AfterFunc(d, func() {
		q.mu.Lock()
		delete(q.timers, id)
		q.mu.Unlock()
		q.Remove(id)
	})
}

func (q *Queue) publish(e Event) {
	q.pubMu.Lock()
	defer q.pubMu.Unlock()

	q.lmu.Lock()
	listeners := make([]func(Event), 0, len(q.listeners))
	for _, l := range q.listeners {
		listeners = append(listeners, l)
	}
	q.lmu.Unlock()

	for _, l := range listeners {
		l(e)
	}
}
