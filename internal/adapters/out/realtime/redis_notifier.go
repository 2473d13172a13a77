package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"wastetrack/internal/core/application/views"
	"wastetrack/internal/core/domain/model/kernel"

	goredis "github.com/redis/go-redis/v9"
)

// DefaultChannelPrefix is used when no prefix is configured.
const DefaultChannelPrefix = "wastetrack:route-process:"

// RedisNotifier publishes views on one Redis channel per route, so every instance of
// the service can serve subscribers of any route.
type RedisNotifier struct {
	rdb    goredis.UniversalClient
	prefix string
	logger *slog.Logger
}

func NewRedisNotifier(rdb goredis.UniversalClient, prefix string, logger *slog.Logger) *RedisNotifier {
	if prefix == "" {
		prefix = DefaultChannelPrefix
	}
	return &RedisNotifier{
		rdb:    rdb,
		prefix: prefix,
		logger: logger.With("component", "redis_notifier"),
	}
}

func (n *RedisNotifier) channel(routeProcessID kernel.UUID) string {
	return n.prefix + routeProcessID.String()
}

func (n *RedisNotifier) Notify(ctx context.Context, view views.RouteProcessView) error {
	raw, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return n.rdb.Publish(ctx, n.channel(view.ID), raw).Err()
}

// Subscribe returns once Redis has confirmed the subscription, so a view published
// after Subscribe returns is not missed.
func (n *RedisNotifier) Subscribe(
	ctx context.Context,
	routeProcessID kernel.UUID,
) (<-chan views.RouteProcessView, func(), error) {
	sub := n.rdb.Subscribe(ctx, n.channel(routeProcessID))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("redis subscribe: %w", err)
	}

	out := make(chan views.RouteProcessView, subscriberBuffer)
	done := make(chan struct{})
	var once sync.Once
	stop := func() {
		once.Do(func() { close(done) })
	}

	go func() {
		defer close(out)
		defer func() { _ = sub.Close() }()

		in := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case msg, ok := <-in:
				if !ok || msg == nil {
					return
				}
				var view views.RouteProcessView
				if err := json.Unmarshal([]byte(msg.Payload), &view); err != nil {
					n.logger.Warn("Bad route view payload", "channel", msg.Channel, "error", err)
					continue
				}
				select {
				case out <- view:
				default:
					n.logger.Warn("Dropping route view; subscriber buffer full", "route_process_id", view.ID.String())
				}
			}
		}
	}()

	return out, stop, nil
}
