package subscriptions

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"hookdesk/internal/platform/models"
)

type Service struct {
	store *Store
	ready chan struct{}
}

// NewService wraps store. The collection is reported as loading until
// loadDelay has elapsed.
func NewService(store *Store, loadDelay time.Duration) *Service {
	s := &Service{
		store: store,
		ready: make(chan struct{}),
	}

	if loadDelay <= 0 {
		close(s.ready)
	} else {
		time.AfterFunc(loadDelay, func() { close(s.ready) })
	}
	return s
}

func (s *Service) Store() *Store {
	return s.store
}

func (s *Service) Ready() bool {
	select {
	case <-s.ready:
		return true
	default:
		return false
	}
}

// WaitReady blocks until the initial load finished or ctx is done.
func (s *Service) WaitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Search matches query case-insensitively against client name and webhook
// URL. A blank query returns everything.
func (s *Service) Search(query string) []models.Subscription {
	all := s.store.GetAll()
	if strings.TrimSpace(query) == "" {
		return all
	}

	q := strings.ToLower(query)
	return lo.Filter(all, func(sub models.Subscription, _ int) bool {
		return strings.Contains(strings.ToLower(sub.ClientName), q) ||
			strings.Contains(strings.ToLower(sub.WebhookURL), q)
	})
}

func (s *Service) Get(id string) (models.Subscription, error) {
	return s.store.GetByID(id)
}

// Create submits form. Invalid forms return a *ValidationError and nothing
// is stored.
func (s *Service) Create(form *Form) (models.Subscription, error) {
	data, err := form.Data()
	if err != nil {
		return models.Subscription{}, err
	}

	sub := s.store.Create(data)
	log.Info().Str("subscription_id", sub.ID).Str("auth_type", string(sub.AuthType)).Msg("subscription created")
	return sub, nil
}

func (s *Service) Update(id string, form *Form) (models.Subscription, error) {
	if _, err := s.store.GetByID(id); err != nil {
		return models.Subscription{}, err
	}

	data, err := form.Data()
	if err != nil {
		return models.Subscription{}, err
	}

	sub, err := s.store.Update(id, data)
	if err != nil {
		return models.Subscription{}, err
	}
	log.Info().Str("subscription_id", sub.ID).Msg("subscription updated")
	return sub, nil
}

func (s *Service) Delete(id string) bool {
	ok := s.store.Delete(id)
	if ok {
		log.Info().Str("subscription_id", id).Msg("subscription deleted")
	}
	return ok
}
