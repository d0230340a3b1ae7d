// Package feed maintains WebSocket subscriptions to the poker VM's
// game-state stream. Each message is a full replacement snapshot, so there
// is no merge or ordering logic: snapshots are handed to callbacks one at a
// time in arrival order.
package feed

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/block52/holdem-client/holdem"
)

// StateCallback receives each table snapshot as it arrives.
type StateCallback func(*holdem.TableState)

// ErrorCallback receives connection-level failures.
type ErrorCallback func(error)

// envelope is the wire frame around each snapshot.
type envelope struct {
	Type         string          `json:"type"`
	TableAddress string          `json:"tableAddress"`
	GameState    json.RawMessage `json:"gameState"`
}

// Registry owns one connection per table+player pair and fans snapshots out
// to every subscriber of that pair. It replaces the module-level singleton
// the browser client used: its lifetime is explicit, and tests construct
// their own.
type Registry struct {
	baseURL           string
	logger            *log.Logger
	dialer            *websocket.Dialer
	reconnectAttempts int
	reconnectDelay    time.Duration

	mu   sync.Mutex
	subs map[string]*subscription
}

type subscription struct {
	key       string
	conn      *websocket.Conn
	callbacks map[int]StateCallback
	onErrors  map[int]ErrorCallback
	nextID    int
	closed    bool
}

// NewRegistry creates a subscription registry for the given node WebSocket
// URL.
func NewRegistry(baseURL string, logger *log.Logger) *Registry {
	return &Registry{
		baseURL:           baseURL,
		logger:            logger.WithPrefix("feed"),
		dialer:            websocket.DefaultDialer,
		reconnectAttempts: 3,
		reconnectDelay:    5 * time.Second,
		subs:              make(map[string]*subscription),
	}
}

// SetReconnect overrides the reconnect policy applied when a connection
// drops mid-subscription.
func (r *Registry) SetReconnect(attempts int, delay time.Duration) {
	r.reconnectAttempts = attempts
	r.reconnectDelay = delay
}

// Subscribe attaches a callback to the snapshot stream for one table and
// player. Subscriptions for the same pair share a single connection. The
// returned function detaches the callback; the connection closes when the
// last callback detaches.
func (r *Registry) Subscribe(tableAddress, playerID string, cb StateCallback, onError ErrorCallback) (func(), error) {
	key := tableAddress + "-" + playerID

	r.mu.Lock()
	if sub, ok := r.subs[key]; ok && !sub.closed {
		id := sub.nextID
		sub.nextID++
		sub.callbacks[id] = cb
		if onError != nil {
			sub.onErrors[id] = onError
		}
		r.mu.Unlock()
		r.logger.Debug("Reusing connection", "table", tableAddress)
		return func() { r.detach(key, id) }, nil
	}
	r.mu.Unlock()

	conn, err := r.dial(tableAddress, playerID)
	if err != nil {
		return nil, err
	}

	sub := &subscription{
		key:       key,
		conn:      conn,
		callbacks: map[int]StateCallback{0: cb},
		onErrors:  map[int]ErrorCallback{},
		nextID:    1,
	}
	if onError != nil {
		sub.onErrors[0] = onError
	}

	r.mu.Lock()
	r.subs[key] = sub
	r.mu.Unlock()

	go r.readLoop(sub, tableAddress, playerID)

	return func() { r.detach(key, 0) }, nil
}

func (r *Registry) dial(tableAddress, playerID string) (*websocket.Conn, error) {
	u, err := url.Parse(r.baseURL)
	if err != nil {
		return nil, fmt.Errorf("feed: invalid node URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}

	q := u.Query()
	q.Set("tableAddress", tableAddress)
	q.Set("playerId", playerID)
	u.RawQuery = q.Encode()

	r.logger.Info("Connecting to node", "url", u.String())

	conn, _, err := r.dialer.Dial(u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("feed: connect failed: %w", err)
	}
	return conn, nil
}

// readLoop decodes snapshots and dispatches them synchronously so callbacks
// observe states in arrival order. On connection loss it retries per the
// reconnect policy before reporting the failure.
func (r *Registry) readLoop(sub *subscription, tableAddress, playerID string) {
	attempts := 0
	for {
		var env envelope
		if err := sub.conn.ReadJSON(&env); err != nil {
			if r.subscriptionClosed(sub) {
				return
			}
			if attempts >= r.reconnectAttempts {
				r.logger.Error("Connection lost", "table", tableAddress, "error", err)
				r.fail(sub, err)
				return
			}
			attempts++
			r.logger.Warn("Reconnecting", "table", tableAddress, "attempt", attempts)
			time.Sleep(r.reconnectDelay)

			conn, dialErr := r.dial(tableAddress, playerID)
			if dialErr != nil {
				continue
			}
			r.mu.Lock()
			sub.conn = conn
			r.mu.Unlock()
			continue
		}
		attempts = 0

		if env.Type != "gameStateUpdate" || env.TableAddress != tableAddress {
			continue
		}

		var state holdem.TableState
		if err := json.Unmarshal(env.GameState, &state); err != nil {
			r.logger.Error("Malformed snapshot", "table", tableAddress, "error", err)
			continue
		}

		for _, cb := range r.snapshotCallbacks(sub) {
			cb(&state)
		}
	}
}

func (r *Registry) snapshotCallbacks(sub *subscription) []StateCallback {
	r.mu.Lock()
	defer r.mu.Unlock()
	cbs := make([]StateCallback, 0, len(sub.callbacks))
	for _, cb := range sub.callbacks {
		cbs = append(cbs, cb)
	}
	return cbs
}

func (r *Registry) subscriptionClosed(sub *subscription) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sub.closed
}

func (r *Registry) fail(sub *subscription, err error) {
	r.mu.Lock()
	handlers := make([]ErrorCallback, 0, len(sub.onErrors))
	for _, h := range sub.onErrors {
		handlers = append(handlers, h)
	}
	sub.closed = true
	delete(r.subs, sub.key)
	r.mu.Unlock()

	for _, h := range handlers {
		h(err)
	}
}

func (r *Registry) detach(key string, id int) {
	r.mu.Lock()
	sub, ok := r.subs[key]
	if !ok {
		r.mu.Unlock()
		return
	}
	delete(sub.callbacks, id)
	delete(sub.onErrors, id)
	last := len(sub.callbacks) == 0
	if last {
		sub.closed = true
		delete(r.subs, key)
	}
	conn := sub.conn
	r.mu.Unlock()

	if last && conn != nil {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = conn.Close()
	}
}

// Close tears down every subscription. Conns are captured while locked
// because the reconnect path swaps sub.conn under the same lock.
func (r *Registry) Close() {
	r.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(r.subs))
	for _, sub := range r.subs {
		sub.closed = true
		if sub.conn != nil {
			conns = append(conns, sub.conn)
		}
	}
	r.subs = make(map[string]*subscription)
	r.mu.Unlock()

	for _, conn := range conns {
		_ = conn.Close()
	}
}
