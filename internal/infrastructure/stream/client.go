package stream

import (
	"context"
	"errors"
	"net"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RoomCatalog is the broadcast room every client joins: it carries all
// product, category and variant mutation events.
const RoomCatalog = "catalog"

// Options configures the event stream transport
type Options struct {
	Addr           string
	Password       string
	DB             int
	ChannelPrefix  string
	ConnectTimeout time.Duration
	BackoffInitial time.Duration
	BackoffMax     time.Duration
}

// Client owns the single long-lived subscription to the server's push
// channel. Rooms are pub/sub channels scoped by a common prefix; the
// client tracks its room set locally and re-issues every subscription
// (including the identity room) after each reconnect, so membership is
// never silently lost.
//
// Transport failures are retried forever with bounded exponential
// backoff and never propagate to calling code.
type Client struct {
	opts       Options
	transport  transport
	codec      *Codec
	dispatcher *Dispatcher
	logger     *zap.Logger

	mu           sync.Mutex
	rooms        map[string]struct{}
	subscriberID *uuid.UUID
	sub          subscription

	started   atomic.Bool
	connected atomic.Bool
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewClient creates a stream client; it does not connect yet
func NewClient(opts Options, logger *zap.Logger) *Client {
	return newClient(opts, newRedisTransport(opts), logger)
}

func newClient(opts Options, tr transport, logger *zap.Logger) *Client {
	return &Client{
		opts:       opts,
		transport:  tr,
		codec:      NewCodec(),
		dispatcher: NewDispatcher(logger),
		logger:     logger,
		rooms:      map[string]struct{}{RoomCatalog: {}},
	}
}

// Connect opens the transport and starts the receive loop. When a
// subscriber identity is supplied the client also joins the
// identity-scoped room, so mutation events for that identity's owned
// resources are delivered. Connect returns immediately; there is no
// "connected" guarantee at call time.
func (c *Client) Connect(ctx context.Context, subscriberID *uuid.UUID) {
	if !c.started.CompareAndSwap(false, true) {
		return
	}

	c.mu.Lock()
	c.subscriberID = subscriberID
	c.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})

	go c.run(runCtx)
}

// On registers a handler for a wire event name and returns its
// disposer. Multiple independent subscribers each receive every event;
// disposing one leaves the others untouched.
func (c *Client) On(eventName string, fn Handler) func() {
	return c.dispatcher.On(eventName, fn)
}

// JoinRoom subscribes the client to a scoped room (e.g. "order:<id>").
// Joining a room twice is a no-op.
func (c *Client) JoinRoom(room string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.rooms[room]; ok {
		return
	}
	c.rooms[room] = struct{}{}

	if c.sub != nil {
		if err := c.sub.Subscribe(context.Background(), c.channelFor(room)); err != nil {
			c.logTransport("join room failed", room, err)
		}
	}
}

// LeaveRoom unsubscribes from a room; leaving a non-joined room is a
// no-op.
func (c *Client) LeaveRoom(room string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.rooms[room]; !ok {
		return
	}
	delete(c.rooms, room)

	if c.sub != nil {
		if err := c.sub.Unsubscribe(context.Background(), c.channelFor(room)); err != nil {
			c.logTransport("leave room failed", room, err)
		}
	}
}

// Emit publishes an event frame to a room. Emitting while disconnected
// is dropped silently; callers must never block on delivery.
func (c *Client) Emit(ctx context.Context, room string, frame []byte) {
	if err := c.transport.Publish(ctx, c.channelFor(room), frame); err != nil {
		c.logTransport("emit dropped", room, err)
	}
}

// Connected reports whether the receive loop currently holds a live
// subscription
func (c *Client) Connected() bool {
	return c.connected.Load()
}

// Rooms returns the current room set in sorted order
func (c *Client) Rooms() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	rooms := make([]string, 0, len(c.rooms))
	for room := range c.rooms {
		rooms = append(rooms, room)
	}
	sort.Strings(rooms)
	return rooms
}

// Close stops the receive loop and releases the transport
func (c *Client) Close() error {
	if c.cancel != nil {
		c.cancel()
		<-c.done
	}
	return c.transport.Close()
}

// run retries the subscription forever with bounded exponential
// backoff; the attempt count is uncapped by design.
func (c *Client) run(ctx context.Context) {
	defer close(c.done)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.opts.BackoffInitial
	bo.MaxInterval = c.opts.BackoffMax
	bo.MaxElapsedTime = 0

	for {
		err := c.consume(ctx, bo)
		if ctx.Err() != nil {
			return
		}
		c.logTransport("event stream disconnected", "", err)

		select {
		case <-time.After(bo.NextBackOff()):
		case <-ctx.Done():
			return
		}
	}
}

// consume opens one subscription covering the whole room set and
// receives until the transport fails
func (c *Client) consume(ctx context.Context, bo *backoff.ExponentialBackOff) error {
	channels := c.channels()

	sub, err := c.transport.Subscribe(ctx, channels...)
	if err != nil {
		return err
	}

	// Publish the handle and reconcile the channel set in one critical
	// section. Rooms joined while the subscription was being
	// established are in the room set but not in the snapshot, and
	// JoinRoom saw a nil handle, so they must be attached here.
	c.mu.Lock()
	c.sub = sub
	missing := missingFrom(channels, c.channelsLocked())
	c.mu.Unlock()

	defer func() {
		c.connected.Store(false)
		c.mu.Lock()
		c.sub = nil
		c.mu.Unlock()
		_ = sub.Close()
	}()

	if len(missing) > 0 {
		if err := sub.Subscribe(ctx, missing...); err != nil {
			return err
		}
	}

	c.connected.Store(true)
	bo.Reset()
	c.logger.Info("event stream connected", zap.Strings("channels", channels))

	for {
		raw, err := sub.ReceiveMessage(ctx)
		if err != nil {
			return err
		}
		c.handleMessage(ctx, raw)
	}
}

func (c *Client) handleMessage(ctx context.Context, raw []byte) {
	event, err := c.codec.Decode(raw)
	if err != nil {
		c.logger.Warn("dropping undecodable event", zap.Error(err))
		return
	}
	c.dispatcher.Dispatch(ctx, event)
}

// channels snapshots the room set (plus the identity room) as fully
// prefixed channel names
func (c *Client) channels() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.channelsLocked()
}

func (c *Client) channelsLocked() []string {
	channels := make([]string, 0, len(c.rooms)+1)
	for room := range c.rooms {
		channels = append(channels, c.channelFor(room))
	}
	if c.subscriberID != nil {
		channels = append(channels, c.channelFor("user:"+c.subscriberID.String()))
	}
	sort.Strings(channels)
	return channels
}

func (c *Client) channelFor(room string) string {
	return c.opts.ChannelPrefix + ":" + room
}

// missingFrom returns the members of want absent from have
func missingFrom(have, want []string) []string {
	known := make(map[string]struct{}, len(have))
	for _, ch := range have {
		known[ch] = struct{}{}
	}
	var missing []string
	for _, ch := range want {
		if _, ok := known[ch]; !ok {
			missing = append(missing, ch)
		}
	}
	return missing
}

// logTransport logs a transport error at warn unless it belongs to the
// expected transient class seen during shutdown and reconnect churn
func (c *Client) logTransport(msg, room string, err error) {
	fields := []zap.Field{zap.Error(err)}
	if room != "" {
		fields = append(fields, zap.String("room", room))
	}
	if isTransient(err) {
		c.logger.Debug(msg, fields...)
		return
	}
	c.logger.Warn(msg, fields...)
}

func isTransient(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, redis.ErrClosed) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
