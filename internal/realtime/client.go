package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/multierr"

	"github.com/angelmondragon/storehub-console/pkg/config"
	"github.com/angelmondragon/storehub-console/pkg/logger"
	"github.com/angelmondragon/storehub-console/pkg/metrics"
)

// Handler receives the payload of one inbound notification event.
type Handler func(data json.RawMessage)

// link is one connection epoch. stop is closed exactly once, either by a
// deliberate teardown or by the reader giving up on reconnecting.
type link struct {
	conn *websocket.Conn
	stop chan struct{}
	once sync.Once
}

func (l *link) close() {
	l.once.Do(func() { close(l.stop) })
}

// Client manages the push-notification channel for one customer. It is an
// explicitly owned object: construct it once per authenticated session and
// tear it down on logout. At most one connection is live at a time;
// connecting with a different customer id replaces the previous connection.
type Client struct {
	endpoint string
	cfg      config.RealtimeConfig
	logg     *logger.Logger
	metrics  *metrics.ClientMetrics
	dialer   *websocket.Dialer

	// connectMu serializes whole connect/disconnect sequences, since the
	// dial happens outside mu. Lock order: connectMu before mu.
	connectMu sync.Mutex

	mu         sync.Mutex
	active     *link
	live       bool
	customerID string
	handlers   map[int]Handler
	nextID     int
}

// NewClient builds a disconnected client against the derived realtime
// endpoint (API base URL with the versioned path stripped).
func NewClient(endpoint string, cfg config.RealtimeConfig, logg *logger.Logger, m *metrics.ClientMetrics) *Client {
	handshake := cfg.HandshakeTimeout
	if handshake <= 0 {
		handshake = 10 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		cfg:      cfg,
		logg:     logg,
		metrics:  m,
		dialer:   &websocket.Dialer{HandshakeTimeout: handshake},
		handlers: map[int]Handler{},
	}
}

// Connect establishes the channel scoped to customerID. Reconnecting with
// the same id while live is a no-op; a different id tears down the prior
// connection first. The room join is emitted only after the transport
// reports a live connection.
func (c *Client) Connect(ctx context.Context, customerID string) error {
	if customerID == "" {
		return fmt.Errorf("customer id is required")
	}

	c.connectMu.Lock()
	defer c.connectMu.Unlock()

	c.mu.Lock()
	if c.active != nil && c.live && c.customerID == customerID {
		c.mu.Unlock()
		return nil
	}
	if c.active != nil {
		c.teardownLocked()
	}
	c.mu.Unlock()

	conn, err := c.dial(ctx)
	if err != nil {
		return fmt.Errorf("connecting realtime channel: %w", err)
	}
	if err := join(conn, customerID); err != nil {
		conn.Close()
		return fmt.Errorf("joining customer room: %w", err)
	}

	l := &link{conn: conn, stop: make(chan struct{})}
	c.mu.Lock()
	c.active = l
	c.live = true
	c.customerID = customerID
	c.mu.Unlock()
	c.metrics.SetConnected(true)
	if c.logg != nil {
		c.logg.Info(c.logg.WithCustomerID(ctx, customerID), "realtime channel connected")
	}

	go c.readLoop(l, customerID)
	return nil
}

// Disconnect tears down the active connection and clears the bound
// customer id. Safe to call repeatedly or without a prior Connect.
func (c *Client) Disconnect() error {
	c.connectMu.Lock()
	defer c.connectMu.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return nil
	}
	return c.teardownLocked()
}

// OnNotification registers a handler for inbound notification events and
// returns its subscription id. With no live connection this is a no-op
// returning 0; it neither queues nor auto-connects.
func (c *Client) OnNotification(h Handler) int {
	if h == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		if c.logg != nil {
			c.logg.Warn(context.Background(), "notification handler registered without a live connection, ignoring")
		}
		return 0
	}
	c.nextID++
	c.handlers[c.nextID] = h
	return c.nextID
}

// OffNotification removes the subscription with the given id; id 0 removes
// every subscriber.
func (c *Client) OffNotification(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id == 0 {
		c.handlers = map[int]Handler{}
		return
	}
	delete(c.handlers, id)
}

// IsConnected reports whether the transport is currently live.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active != nil && c.live
}

// CurrentCustomerID returns the customer the channel is bound to, empty
// when disconnected.
func (c *Client) CurrentCustomerID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.customerID
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	conn, resp, err := c.dialer.DialContext(ctx, c.endpoint, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	return conn, err
}

func join(conn *websocket.Conn, customerID string) error {
	payload, err := json.Marshal(joinPayload{CustomerID: customerID})
	if err != nil {
		return err
	}
	return conn.WriteJSON(Envelope{Event: EventJoinCustomer, Data: payload})
}

// teardownLocked closes the active link; callers hold c.mu.
func (c *Client) teardownLocked() error {
	l := c.active
	l.close()
	err := multierr.Append(
		l.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second)),
		l.conn.Close(),
	)
	c.active = nil
	c.live = false
	c.customerID = ""
	c.handlers = map[int]Handler{}
	c.metrics.SetConnected(false)
	return err
}

// readLoop pumps inbound frames for one link, reconnecting on unplanned
// drops until the configured attempts are exhausted.
func (c *Client) readLoop(l *link, customerID string) {
	for {
		var env Envelope
		err := l.conn.ReadJSON(&env)
		if err == nil {
			if env.Event == EventNotificationNew {
				c.dispatch(env.Data)
			}
			continue
		}

		select {
		case <-l.stop:
			return
		default:
		}

		c.mu.Lock()
		c.live = false
		c.mu.Unlock()
		c.metrics.SetConnected(false)
		if c.logg != nil {
			c.logg.Warn(context.Background(), fmt.Sprintf("realtime channel dropped: %v", err))
		}

		if !c.reconnect(l, customerID) {
			c.clear(l)
			return
		}
	}
}

// reconnect re-dials with a fixed delay and bounded attempts, rejoining the
// customer room on success. Messages in flight during the outage are lost;
// the channel promises at-most-once delivery per connection epoch.
func (c *Client) reconnect(l *link, customerID string) bool {
	attempts := c.cfg.ReconnectAttempts
	if attempts <= 0 {
		attempts = 5
	}
	delay := c.cfg.ReconnectDelay
	if delay <= 0 {
		delay = time.Second
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		select {
		case <-l.stop:
			return false
		case <-time.After(delay):
		}

		c.metrics.IncReconnect()
		conn, err := c.dial(context.Background())
		if err != nil {
			if c.logg != nil {
				c.logg.Warn(context.Background(), fmt.Sprintf("reconnect attempt %d/%d failed: %v", attempt, attempts, err))
			}
			continue
		}
		if err := join(conn, customerID); err != nil {
			conn.Close()
			continue
		}

		c.mu.Lock()
		if c.active != l {
			// Replaced or torn down while we were away.
			c.mu.Unlock()
			conn.Close()
			return false
		}
		l.conn.Close()
		l.conn = conn
		c.live = true
		c.mu.Unlock()
		c.metrics.SetConnected(true)
		if c.logg != nil {
			c.logg.Info(context.Background(), "realtime channel reconnected")
		}
		return true
	}

	if c.logg != nil {
		c.logg.Warn(context.Background(), "realtime reconnect attempts exhausted")
	}
	return false
}

func (c *Client) dispatch(data json.RawMessage) {
	c.mu.Lock()
	snapshot := make([]Handler, 0, len(c.handlers))
	for _, h := range c.handlers {
		snapshot = append(snapshot, h)
	}
	c.mu.Unlock()
	for _, h := range snapshot {
		h(data)
	}
}

// clear forgets the link after a failed reconnect; a later Connect starts a
// fresh epoch.
func (c *Client) clear(l *link) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != l {
		return
	}
	l.close()
	l.conn.Close()
	c.active = nil
	c.live = false
	c.customerID = ""
	c.handlers = map[int]Handler{}
}
