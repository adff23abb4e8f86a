package subscriptions

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hookdesk/internal/platform/models"
)

type sequenceKeys struct {
	n int
}

func (k *sequenceKeys) Generate() string {
	k.n++
	return fmt.Sprintf("%016d", k.n)
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(opts ...StoreOption) (*Store, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	ids := 0
	base := []StoreOption{
		WithClock(clock.Now),
		WithIDFunc(func() string {
			ids++
			return fmt.Sprintf("sub_%d", ids)
		}),
	}
	return NewStore(&sequenceKeys{}, append(base, opts...)...), clock
}

func basicData(name string) models.SubscriptionFormData {
	return models.SubscriptionFormData{
		ClientName:      name,
		WebhookURL:      "https://" + name + ".example.com/hook",
		AuthType:        models.AuthTypeBasic,
		AuthCredentials: models.BasicAuthCredentials{Username: "u", Password: "p"},
		EventTypes:      []models.EventType{models.EventGeneralReport},
	}
}

func ids(subs []models.Subscription) []string {
	out := make([]string, len(subs))
	for i, s := range subs {
		out[i] = s.ID
	}
	return out
}

func TestStore_CreateAssignsIdentityAndTimestamps(t *testing.T) {
	store, clock := newTestStore()

	sub := store.Create(basicData("acme"))

	assert.Equal(t, "sub_1", sub.ID)
	assert.Equal(t, "0000000000000001", sub.PrivateKey)
	assert.Equal(t, clock.t.Unix(), sub.CreatedAt)
	assert.Equal(t, sub.CreatedAt, sub.UpdatedAt)

	fetched, err := store.GetByID("sub_1")
	require.NoError(t, err)
	assert.Equal(t, sub, fetched)
}

func TestStore_GetByIDMissing(t *testing.T) {
	store, _ := newTestStore()

	_, err := store.GetByID("nope")
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestStore_UpdatePreservesIdentity(t *testing.T) {
	store, clock := newTestStore()
	created := store.Create(basicData("acme"))

	clock.Advance(time.Minute)
	data := models.SubscriptionFormData{
		ClientName:      "Acme Corp",
		WebhookURL:      "https://acme.io/v2",
		AuthType:        models.AuthTypeOAuth,
		AuthCredentials: models.OAuthCredentials{ClientID: "c", ClientSecret: "s", TokenEndpoint: "https://acme.io/token"},
		EventTypes:      []models.EventType{models.EventBoth},
	}

	updated, err := store.Update(created.ID, data)
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.PrivateKey, updated.PrivateKey)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, clock.t.Unix(), updated.UpdatedAt)
	assert.Equal(t, "Acme Corp", updated.ClientName)
	assert.Equal(t, models.AuthTypeOAuth, updated.AuthType)
	assert.IsType(t, models.OAuthCredentials{}, updated.AuthCredentials)
	assert.Equal(t, []models.EventType{models.EventBoth}, updated.EventTypes)
}

func TestStore_UpdateMissing(t *testing.T) {
	store, _ := newTestStore()

	_, err := store.Update("nope", basicData("acme"))
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestStore_DeleteMissingLeavesCollection(t *testing.T) {
	store, _ := newTestStore()
	store.Create(basicData("a"))

	var published int
	unsubscribe := store.Subscribe(func([]models.Subscription) { published++ })
	defer unsubscribe()

	assert.False(t, store.Delete("nope"))
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 1, published, "only the initial delivery expected")
}

func TestStore_PublishesSurvivorsInInsertionOrder(t *testing.T) {
	store, _ := newTestStore()

	var last []models.Subscription
	unsubscribe := store.Subscribe(func(subs []models.Subscription) { last = subs })
	defer unsubscribe()

	a := store.Create(basicData("a"))
	b := store.Create(basicData("b"))
	c := store.Create(basicData("c"))
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, ids(last))

	_, err := store.Update(b.ID, basicData("b2"))
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, ids(last))

	require.True(t, store.Delete(a.ID))
	assert.Equal(t, []string{b.ID, c.ID}, ids(last))

	d := store.Create(basicData("d"))
	assert.Equal(t, []string{b.ID, c.ID, d.ID}, ids(last))
	assert.Equal(t, ids(store.GetAll()), ids(last))
}

func TestStore_SubscribeDeliversCurrentCollection(t *testing.T) {
	store, _ := newTestStore(WithSeed(SampleSubscription()))

	var got []models.Subscription
	unsubscribe := store.Subscribe(func(subs []models.Subscription) { got = subs })
	defer unsubscribe()

	require.Len(t, got, 1)
	assert.Equal(t, "Sample Client", got[0].ClientName)
}

func TestStore_UnsubscribeStopsDelivery(t *testing.T) {
	store, _ := newTestStore()

	var calls int
	unsubscribe := store.Subscribe(func([]models.Subscription) { calls++ })
	unsubscribe()
	unsubscribe()

	store.Create(basicData("a"))
	assert.Equal(t, 1, calls)
}

func TestStore_SnapshotsAreIsolated(t *testing.T) {
	store, _ := newTestStore()
	store.Create(basicData("a"))

	snapshot := store.GetAll()
	snapshot[0].ClientName = "mutated"
	snapshot[0].EventTypes[0] = models.EventBoth

	fresh := store.GetAll()
	assert.Equal(t, "a", fresh[0].ClientName)
	assert.Equal(t, models.EventGeneralReport, fresh[0].EventTypes[0])
}

func TestStore_ListenerMayReadStore(t *testing.T) {
	store, _ := newTestStore()

	var lens []int
	unsubscribe := store.Subscribe(func([]models.Subscription) { lens = append(lens, store.Len()) })
	defer unsubscribe()

	store.Create(basicData("a"))
	assert.Equal(t, []int{0, 1}, lens)
}

func TestStore_ListenerReadsDuringConcurrentWrite(t *testing.T) {
	store, _ := newTestStore()

	var mu sync.Mutex
	var sizes []int
	entered := make(chan struct{})
	unsubscribe := store.Subscribe(func(subs []models.Subscription) {
		mu.Lock()
		sizes = append(sizes, len(subs))
		mu.Unlock()

		if len(subs) == 1 {
			close(entered)
			time.Sleep(50 * time.Millisecond)
			store.GetAll()
			store.Len()
		}
	})
	defer unsubscribe()

	first := make(chan struct{})
	go func() {
		defer close(first)
		store.Create(basicData("first"))
	}()
	<-entered

	second := make(chan struct{})
	go func() {
		defer close(second)
		store.Create(basicData("second"))
	}()

	for _, done := range []chan struct{}{first, second} {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("store blocked while a listener was reading it")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{0, 1, 2}, sizes)
	assert.Equal(t, 2, store.Len())
}

func TestStore_ListenerMayMutateStore(t *testing.T) {
	store, _ := newTestStore()

	var sizes []int
	unsubscribe := store.Subscribe(func(subs []models.Subscription) {
		sizes = append(sizes, len(subs))
		if len(subs) == 1 {
			store.Create(basicData("follow-up"))
		}
	})
	defer unsubscribe()

	store.Create(basicData("a"))
	assert.Equal(t, []int{0, 1, 2}, sizes)
}

func TestStore_ConcurrentWritersDeliverInMutationOrder(t *testing.T) {
	store, _ := newTestStore()

	var sizes []int
	unsubscribe := store.Subscribe(func(subs []models.Subscription) {
		sizes = append(sizes, len(subs))
	})
	defer unsubscribe()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			store.Create(basicData(fmt.Sprintf("c%d", i)))
		}(i)
	}
	wg.Wait()

	require.Len(t, sizes, 21)
	for i, n := range sizes {
		assert.Equal(t, i, n)
	}
}
