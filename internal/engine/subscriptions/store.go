package subscriptions

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"hookdesk/internal/engine/keys"
	"hookdesk/internal/platform/models"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

// Listener receives the complete collection after every mutation.
type Listener func([]models.Subscription)

// Store is an in-memory, insertion-ordered subscription collection. Every
// mutation publishes the full collection to all listeners, in mutation
// order. Listeners run with no store lock held and may call back into the
// store. Deliveries are made by whichever goroutine is already delivering,
// so under concurrent writes a mutation can return before its listeners ran.
type Store struct {
	mu           sync.RWMutex
	items        []models.Subscription
	listeners    map[int]Listener
	nextListener int

	keys  keys.Generator
	now   func() time.Time
	newID func() string

	dmu      sync.Mutex
	pending  []delivery
	draining bool
}

// delivery is one snapshot queued for the listeners registered when it was
// taken.
type delivery struct {
	snapshot []models.Subscription
	targets  []int
}

type StoreOption func(*Store)

func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

func WithIDFunc(newID func() string) StoreOption {
	return func(s *Store) { s.newID = newID }
}

// WithSeed preloads records without publishing.
func WithSeed(subs ...models.Subscription) StoreOption {
	return func(s *Store) {
		for _, sub := range subs {
			s.items = append(s.items, sub.Clone())
		}
	}
}

func NewStore(gen keys.Generator, opts ...StoreOption) *Store {
	s := &Store{
		keys:      gen,
		now:       time.Now,
		newID:     func() string { return "sub_" + uuid.New().String() },
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetAll returns a snapshot in insertion order.
func (s *Store) GetAll() []models.Subscription {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) GetByID(id string) (models.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexLocked(id)
	if i == -1 {
		return models.Subscription{}, ErrSubscriptionNotFound
	}
	return s.items[i].Clone(), nil
}

// Create assigns an id and a private key and stamps both timestamps.
func (s *Store) Create(data models.SubscriptionFormData) models.Subscription {
	s.mu.Lock()

	now := s.now().Unix()
	sub := models.Subscription{
		ID:              s.newID(),
		ClientName:      data.ClientName,
		WebhookURL:      data.WebhookURL,
		AuthType:        data.AuthType,
		AuthCredentials: data.AuthCredentials,
		EventTypes:      append([]models.EventType(nil), data.EventTypes...),
		PrivateKey:      s.keys.Generate(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.items = append(s.items, sub)

	s.publishAndUnlock()
	return sub.Clone()
}

// Update replaces every field except id, private key and creation time.
func (s *Store) Update(id string, data models.SubscriptionFormData) (models.Subscription, error) {
	s.mu.Lock()

	i := s.indexLocked(id)
	if i == -1 {
		s.mu.Unlock()
		return models.Subscription{}, ErrSubscriptionNotFound
	}

	existing := s.items[i]
	updated := models.Subscription{
		ID:              existing.ID,
		ClientName:      data.ClientName,
		WebhookURL:      data.WebhookURL,
		AuthType:        data.AuthType,
		AuthCredentials: data.AuthCredentials,
		EventTypes:      append([]models.EventType(nil), data.EventTypes...),
		PrivateKey:      existing.PrivateKey,
		CreatedAt:       existing.CreatedAt,
		UpdatedAt:       s.now().Unix(),
	}
	s.items[i] = updated

	s.publishAndUnlock()
	return updated.Clone(), nil
}

// Delete reports false when id is absent; the collection is then unchanged
// and nothing is published.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()

	i := s.indexLocked(id)
	if i == -1 {
		s.mu.Unlock()
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)

	s.publishAndUnlock()
	return true
}

// Subscribe registers fn and delivers the current collection to it before
// any later mutation. The returned func removes the listener.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	s.enqueueLocked(delivery{snapshot: s.snapshotLocked(), targets: []int{id}})
	s.mu.Unlock()

	s.drain()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// publishAndUnlock must be called with mu held for writing. The snapshot is
// queued before mu is released so deliveries keep mutation order.
func (s *Store) publishAndUnlock() {
	targets := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		targets = append(targets, id)
	}
	s.enqueueLocked(delivery{snapshot: s.snapshotLocked(), targets: targets})
	s.mu.Unlock()

	s.drain()
}

func (s *Store) enqueueLocked(d delivery) {
	s.dmu.Lock()
	s.pending = append(s.pending, d)
	s.dmu.Unlock()
}

// drain delivers queued snapshots until none are left. Only one goroutine
// drains at a time; the others return at once.
func (s *Store) drain() {
	s.dmu.Lock()
	if s.draining {
		s.dmu.Unlock()
		return
	}
	s.draining = true

	finished := false
	defer func() {
		if !finished {
			s.dmu.Lock()
			s.draining = false
			s.dmu.Unlock()
		}
	}()

	for len(s.pending) > 0 {
		d := s.pending[0]
		s.pending[0] = delivery{}
		s.pending = s.pending[1:]
		s.dmu.Unlock()

		s.deliver(d)

		s.dmu.Lock()
	}
	s.draining = false
	finished = true
	s.dmu.Unlock()
}

// deliver calls each target still subscribed. The first gets the queued
// snapshot, the rest get copies.
func (s *Store) deliver(d delivery) {
	first := true
	for _, id := range d.targets {
		s.mu.RLock()
		fn, ok := s.listeners[id]
		s.mu.RUnlock()
		if !ok {
			continue
		}

		if first {
			fn(d.snapshot)
			first = false
			continue
		}
		fn(cloneAll(d.snapshot))
	}
}

func (s *Store) snapshotLocked() []models.Subscription {
	return cloneAll(s.items)
}

func (s *Store) indexLocked(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneAll(items []models.Subscription) []models.Subscription {
	out := make([]models.Subscription, len(items))
	for i := range items {
		out[i] = items[i].Clone()
	}
	return out
}
