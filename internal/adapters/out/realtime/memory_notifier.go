// Package realtime fans RouteProcess views out to live subscribers, either inside one
// process or across processes through Redis pub/sub.
package realtime

import (
	"context"
	"log/slog"
	"sync"

	"wastetrack/internal/core/application/views"
	"wastetrack/internal/core/domain/model/kernel"
)

const subscriberBuffer = 16

type subscriber struct {
	ch   chan views.RouteProcessView
	once sync.Once
}

func (s *subscriber) close() {
	s.once.Do(func() { close(s.ch) })
}

// hub keeps the subscribers of each route. A subscriber that does not keep up loses
// views rather than blocking the publisher.
type hub struct {
	mu     sync.RWMutex
	subs   map[kernel.UUID]map[*subscriber]struct{}
	logger *slog.Logger
}

func newHub(logger *slog.Logger) *hub {
	return &hub{
		subs:   make(map[kernel.UUID]map[*subscriber]struct{}),
		logger: logger,
	}
}

func (h *hub) add(routeProcessID kernel.UUID) *subscriber {
	s := &subscriber{ch: make(chan views.RouteProcessView, subscriberBuffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[routeProcessID]
	if !ok {
		set = make(map[*subscriber]struct{})
		h.subs[routeProcessID] = set
	}
	set[s] = struct{}{}
	return s
}

func (h *hub) remove(routeProcessID kernel.UUID, s *subscriber) {
	h.mu.Lock()
	if set, ok := h.subs[routeProcessID]; ok {
		delete(set, s)
		if len(set) == 0 {
			delete(h.subs, routeProcessID)
		}
	}
	h.mu.Unlock()
	s.close()
}

func (h *hub) broadcast(view views.RouteProcessView) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs[view.ID] {
		select {
		case s.ch <- view:
		default:
			h.logger.Warn("Dropping route view; subscriber buffer full", "route_process_id", view.ID.String())
		}
	}
}

func (h *hub) count(routeProcessID kernel.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[routeProcessID])
}

// subscribe registers a subscriber and ends it when ctx is done or stop is called.
func (h *hub) subscribe(ctx context.Context, routeProcessID kernel.UUID) (<-chan views.RouteProcessView, func()) {
	s := h.add(routeProcessID)
	done := make(chan struct{})
	var once sync.Once
	stop := func() {
		once.Do(func() {
			close(done)
			h.remove(routeProcessID, s)
		})
	}

	go func() {
		select {
		case <-ctx.Done():
			stop()
		case <-done:
		}
	}()

	return s.ch, stop
}

// MemoryNotifier delivers views to subscribers of the same process.
type MemoryNotifier struct {
	hub *hub
}

func NewMemoryNotifier(logger *slog.Logger) *MemoryNotifier {
	return &MemoryNotifier{hub: newHub(logger.With("component", "memory_notifier"))}
}

func (n *MemoryNotifier) Notify(_ context.Context, view views.RouteProcessView) error {
	n.hub.broadcast(view)
	return nil
}

func (n *MemoryNotifier) Subscribe(
	ctx context.Context,
	routeProcessID kernel.UUID,
) (<-chan views.RouteProcessView, func(), error) {
	ch, stop := n.hub.subscribe(ctx, routeProcessID)
	return ch, stop, nil
}

// Subscribers reports how many live subscriptions a route has.
func (n *MemoryNotifier) Subscribers(routeProcessID kernel.UUID) int {
	return n.hub.count(routeProcessID)
}
