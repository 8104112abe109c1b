package live

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mustafashaheen1/ai-support-dashboard/internal/domain"
	"github.com/mustafashaheen1/ai-support-dashboard/internal/events"
)

// staticTicketRepo serves a fixed slice, newest first by construction.
type staticTicketRepo struct {
	mu      sync.Mutex
	tickets []domain.Ticket
}

func (r *staticTicketRepo) set(tickets []domain.Ticket) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tickets = tickets
}

func (r *staticTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error { return nil }

func (r *staticTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	return nil, nil
}

func (r *staticTicketRepo) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	return nil
}

func (r *staticTicketRepo) ListByStatus(ctx context.Context, status *domain.TicketStatus) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if status == nil {
		return append([]domain.Ticket{}, r.tickets...), nil
	}
	var out []domain.Ticket
	for _, t := range r.tickets {
		if t.Status == *status {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *staticTicketRepo) FetchAll(ctx context.Context) ([]domain.Ticket, error) {
	return r.ListByStatus(ctx, nil)
}

func TestSubscribeDeliversInitialSnapshot(t *testing.T) {
	repo := &staticTicketRepo{}
	repo.set([]domain.Ticket{{ID: "a"}, {ID: "b"}})
	hub := NewHub(repo, nil, zap.NewNop())

	sub, err := hub.Subscribe(context.Background(), nil)
	require.NoError(t, err)
	defer hub.Unsubscribe(sub.ID)

	snapshot := <-sub.C
	require.Len(t, snapshot, 2)
	assert.Equal(t, "a", snapshot[0].ID)
}

func TestBroadcastRespectsFilter(t *testing.T) {
	repo := &staticTicketRepo{}
	repo.set([]domain.Ticket{
		{ID: "a", Status: domain.TicketStatusNew},
		{ID: "b", Status: domain.TicketStatusResolved},
	})
	hub := NewHub(repo, nil, zap.NewNop())

	resolved := domain.TicketStatusResolved
	all, err := hub.Subscribe(context.Background(), nil)
	require.NoError(t, err)
	filtered, err := hub.Subscribe(context.Background(), &resolved)
	require.NoError(t, err)
	defer hub.Unsubscribe(all.ID)
	defer hub.Unsubscribe(filtered.ID)

	<-all.C
	<-filtered.C

	repo.set([]domain.Ticket{
		{ID: "a", Status: domain.TicketStatusResolved},
		{ID: "b", Status: domain.TicketStatusResolved},
	})
	hub.Broadcast(context.Background())

	assert.Len(t, <-all.C, 2)
	assert.Len(t, <-filtered.C, 2)
}

func TestHandleEventWithoutRedisBroadcastsLocally(t *testing.T) {
	repo := &staticTicketRepo{}
	repo.set([]domain.Ticket{{ID: "a"}})
	hub := NewHub(repo, nil, zap.NewNop())

	sub, err := hub.Subscribe(context.Background(), nil)
	require.NoError(t, err)
	defer hub.Unsubscribe(sub.ID)
	<-sub.C

	require.NoError(t, hub.HandleEvent(context.Background(), events.Event{Type: events.EventTicketCreated, TicketID: "a"}))

	snapshot := <-sub.C
	assert.Len(t, snapshot, 1)
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	repo := &staticTicketRepo{}
	hub := NewHub(repo, nil, zap.NewNop())

	sub, err := hub.Subscribe(context.Background(), nil)
	require.NoError(t, err)
	<-sub.C

	hub.Unsubscribe(sub.ID)
	_, open := <-sub.C
	assert.False(t, open)

	// A second Unsubscribe is a no-op.
	hub.Unsubscribe(sub.ID)
}

func TestSlowSubscriberKeepsNewestSnapshots(t *testing.T) {
	repo := &staticTicketRepo{}
	hub := NewHub(repo, nil, zap.NewNop())

	sub, err := hub.Subscribe(context.Background(), nil)
	require.NoError(t, err)
	defer hub.Unsubscribe(sub.ID)
	<-sub.C

	// Fill the buffer well past capacity without draining.
	for i := 0; i < 10; i++ {
		repo.set(make([]domain.Ticket, i+1))
		hub.Broadcast(context.Background())
	}

	var last []domain.Ticket
	for {
		select {
		case snapshot := <-sub.C:
			last = snapshot
			continue
		default:
		}
		break
	}
	// The most recent snapshot is never dropped.
	require.NotNil(t, last)
	assert.Len(t, last, 10)
}
