package live

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mustafashaheen1/ai-support-dashboard/internal/domain"
	"github.com/mustafashaheen1/ai-support-dashboard/internal/events"
	"github.com/mustafashaheen1/ai-support-dashboard/internal/repository"
)

// invalidationChannel is the Redis pub/sub channel used to fan ticket
// changes out across instances. The message body is irrelevant; any
// message triggers a requery.
const invalidationChannel = "support:ticket-changed"

// Subscription is one dashboard client listening for ticket snapshots.
// Every matching change pushes the entire current result set, the way the
// original document-store listener did. A subscription is bound to one
// status filter; changing the filter means a new subscription.
type Subscription struct {
	ID     string
	Filter *domain.TicketStatus
	C      chan []domain.Ticket
}

// Hub fans ticket-change notifications out to live subscriptions.
type Hub struct {
	mu      sync.Mutex
	subs    map[string]*Subscription
	tickets repository.TicketRepository
	redis   *redis.Client
	logger  *zap.Logger
}

// NewHub builds a hub. redisClient may be nil, in which case change
// notifications stay in-process.
func NewHub(tickets repository.TicketRepository, redisClient *redis.Client, logger *zap.Logger) *Hub {
	return &Hub{
		subs:    make(map[string]*Subscription),
		tickets: tickets,
		redis:   redisClient,
		logger:  logger,
	}
}

// Subscribe registers a listener for the given status filter (nil means
// all tickets) and immediately delivers the current snapshot.
func (h *Hub) Subscribe(ctx context.Context, filter *domain.TicketStatus) (*Subscription, error) {
	snapshot, err := h.tickets.ListByStatus(ctx, filter)
	if err != nil {
		return nil, err
	}

	sub := &Subscription{
		ID:     uuid.NewString(),
		Filter: filter,
		C:      make(chan []domain.Ticket, 4),
	}
	sub.C <- snapshot

	h.mu.Lock()
	h.subs[sub.ID] = sub
	h.mu.Unlock()
	return sub, nil
}

// Unsubscribe tears a listener down and closes its channel.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if sub, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(sub.C)
	}
}

// HandleEvent is the dispatcher hook. It forwards the change through
// Redis so every instance (this one included) requeries; without Redis it
// broadcasts locally.
func (h *Hub) HandleEvent(ctx context.Context, event events.Event) error {
	if h.redis != nil {
		if err := h.redis.Publish(ctx, invalidationChannel, string(event.Type)).Err(); err == nil {
			return nil
		} else {
			h.logger.Warn("redis publish failed, broadcasting locally", zap.Error(err))
		}
	}
	h.Broadcast(ctx)
	return nil
}

// Run consumes the Redis invalidation channel until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	if h.redis == nil {
		return
	}
	pubsub := h.redis.Subscribe(ctx, invalidationChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			h.Broadcast(ctx)
		}
	}
}

// Broadcast requeries the store once per distinct filter and pushes the
// full ordered result set to every subscriber.
func (h *Hub) Broadcast(ctx context.Context) {
	h.mu.Lock()
	filters := make(map[string]*domain.TicketStatus)
	for _, sub := range h.subs {
		filters[filterKey(sub.Filter)] = sub.Filter
	}
	h.mu.Unlock()

	snapshots := make(map[string][]domain.Ticket, len(filters))
	for key, filter := range filters {
		snapshot, err := h.tickets.ListByStatus(ctx, filter)
		if err != nil {
			h.logger.Error("live requery failed", zap.String("filter", key), zap.Error(err))
			continue
		}
		snapshots[key] = snapshot
	}

	// deliver under the lock so an Unsubscribe cannot close a channel
	// mid-push
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.subs {
		if snapshot, ok := snapshots[filterKey(sub.Filter)]; ok {
			push(sub, snapshot)
		}
	}
}

// push delivers without blocking; a stalled client loses intermediate
// snapshots, keeping only the most recent ones.
func push(sub *Subscription, snapshot []domain.Ticket) {
	select {
	case sub.C <- snapshot:
	default:
		select {
		case <-sub.C:
		default:
		}
		select {
		case sub.C <- snapshot:
		default:
		}
	}
}

func filterKey(filter *domain.TicketStatus) string {
	if filter == nil {
		return "all"
	}
	return string(*filter)
}
