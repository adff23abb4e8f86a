package toasts

import (
	"sort"
	"strconv"
	"sync"
)

// Board is the subscriber side of a Queue: an id-keyed map of the toasts
// currently on screen.
type Board struct {
	mu      sync.RWMutex
	entries map[string]Toast
}

func NewBoard() *Board {
	return &Board{entries: make(map[string]Toast)}
}

// Attach subscribes the board to q.
func (b *Board) Attach(q *Queue) (detach func()) {
	return q.Subscribe(b.Apply)
}

func (b *Board) Apply(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch e.Kind {
	case EventInsert:
		if e.Toast != nil {
			b.entries[e.ID] = *e.Toast
		}
	case EventRemove:
		delete(b.entries, e.ID)
	}
}

// Active lists the toasts on the board, oldest first.
func (b *Board) Active() []Toast {
	b.mu.RLock()
	out := make([]Toast, 0, len(b.entries))
	for _, t := range b.entries {
		out = append(out, t)
	}
	b.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return idOrder(out[i].ID) < idOrder(out[j].ID)
	})
	return out
}

func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

func idOrder(id string) uint64 {
	n, _ := strconv.ParseUint(id, 10, 64)
	return n
}
