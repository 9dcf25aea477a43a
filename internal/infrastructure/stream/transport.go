package stream

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// transport abstracts the pub/sub broker so the reconnect loop can be
// exercised without a live broker
type transport interface {
	// Subscribe opens one confirmed subscription covering the given
	// channels
	Subscribe(ctx context.Context, channels ...string) (subscription, error)
	Publish(ctx context.Context, channel string, payload []byte) error
	Close() error
}

// subscription is one live broker subscription; its channel set can be
// widened and narrowed while it is open
type subscription interface {
	Subscribe(ctx context.Context, channels ...string) error
	Unsubscribe(ctx context.Context, channels ...string) error
	ReceiveMessage(ctx context.Context) ([]byte, error)
	Close() error
}

type redisTransport struct {
	rdb *redis.Client
}

func newRedisTransport(opts Options) *redisTransport {
	return &redisTransport{
		rdb: redis.NewClient(&redis.Options{
			Addr:        opts.Addr,
			Password:    opts.Password,
			DB:          opts.DB,
			DialTimeout: opts.ConnectTimeout,
		}),
	}
}

func (t *redisTransport) Subscribe(ctx context.Context, channels ...string) (subscription, error) {
	pubsub := t.rdb.Subscribe(ctx, channels...)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}
	return &redisSubscription{pubsub: pubsub}, nil
}

func (t *redisTransport) Publish(ctx context.Context, channel string, payload []byte) error {
	return t.rdb.Publish(ctx, channel, payload).Err()
}

func (t *redisTransport) Close() error {
	return t.rdb.Close()
}

type redisSubscription struct {
	pubsub *redis.PubSub
}

func (s *redisSubscription) Subscribe(ctx context.Context, channels ...string) error {
	return s.pubsub.Subscribe(ctx, channels...)
}

func (s *redisSubscription) Unsubscribe(ctx context.Context, channels ...string) error {
	return s.pubsub.Unsubscribe(ctx, channels...)
}

func (s *redisSubscription) ReceiveMessage(ctx context.Context) ([]byte, error) {
	msg, err := s.pubsub.ReceiveMessage(ctx)
	if err != nil {
		return nil, err
	}
	return []byte(msg.Payload), nil
}

func (s *redisSubscription) Close() error {
	return s.pubsub.Close()
}
