package feed

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/block52/holdem-client/holdem"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// fakeNode runs a WebSocket endpoint that records subscription query
// parameters and pushes snapshots to connected clients.
type fakeNode struct {
	server *httptest.Server
	conns  chan *websocket.Conn
	params chan map[string]string
}

func newFakeNode(t *testing.T) *fakeNode {
	t.Helper()
	node := &fakeNode{
		conns:  make(chan *websocket.Conn, 4),
		params: make(chan map[string]string, 4),
	}
	node.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		node.params <- map[string]string{
			"tableAddress": r.URL.Query().Get("tableAddress"),
			"playerId":     r.URL.Query().Get("playerId"),
		}
		node.conns <- conn
	}))
	t.Cleanup(node.server.Close)
	return node
}

func (n *fakeNode) url() string {
	return "ws" + strings.TrimPrefix(n.server.URL, "http")
}

func (n *fakeNode) push(t *testing.T, conn *websocket.Conn, tableAddress string, state *holdem.TableState) {
	t.Helper()
	raw, err := json.Marshal(state)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(map[string]any{
		"type":         "gameStateUpdate",
		"tableAddress": tableAddress,
		"gameState":    json.RawMessage(raw),
	}))
}

func waitConn(t *testing.T, node *fakeNode) *websocket.Conn {
	t.Helper()
	select {
	case conn := <-node.conns:
		return conn
	case <-time.After(2 * time.Second):
		t.Fatal("no connection within deadline")
		return nil
	}
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	node := newFakeNode(t)
	registry := NewRegistry(node.url(), log.New(io.Discard))
	defer registry.Close()

	states := make(chan *holdem.TableState, 4)
	unsub, err := registry.Subscribe("0xtable", "0xplayer", func(s *holdem.TableState) {
		states <- s
	}, nil)
	require.NoError(t, err)
	defer unsub()

	params := <-node.params
	assert.Equal(t, "0xtable", params["tableAddress"])
	assert.Equal(t, "0xplayer", params["playerId"])

	conn := waitConn(t, node)
	node.push(t, conn, "0xtable", &holdem.TableState{Address: "0xtable", HandNumber: 7})

	select {
	case got := <-states:
		assert.Equal(t, "0xtable", got.Address)
		assert.Equal(t, 7, got.HandNumber)
	case <-time.After(2 * time.Second):
		t.Fatal("snapshot not delivered")
	}
}

func TestSnapshotsForOtherTablesIgnored(t *testing.T) {
	node := newFakeNode(t)
	registry := NewRegistry(node.url(), log.New(io.Discard))
	defer registry.Close()

	states := make(chan *holdem.TableState, 4)
	_, err := registry.Subscribe("0xtable", "0xplayer", func(s *holdem.TableState) {
		states <- s
	}, nil)
	require.NoError(t, err)
	<-node.params

	conn := waitConn(t, node)
	node.push(t, conn, "0xother", &holdem.TableState{Address: "0xother"})
	node.push(t, conn, "0xtable", &holdem.TableState{Address: "0xtable"})

	select {
	case got := <-states:
		assert.Equal(t, "0xtable", got.Address, "snapshot for another table must be dropped")
	case <-time.After(2 * time.Second):
		t.Fatal("snapshot not delivered")
	}
}

func TestDuplicateSubscriptionSharesConnection(t *testing.T) {
	node := newFakeNode(t)
	registry := NewRegistry(node.url(), log.New(io.Discard))
	defer registry.Close()

	first := make(chan *holdem.TableState, 4)
	second := make(chan *holdem.TableState, 4)

	unsub1, err := registry.Subscribe("0xtable", "0xplayer", func(s *holdem.TableState) {
		first <- s
	}, nil)
	require.NoError(t, err)
	defer unsub1()
	<-node.params

	unsub2, err := registry.Subscribe("0xtable", "0xplayer", func(s *holdem.TableState) {
		second <- s
	}, nil)
	require.NoError(t, err)
	defer unsub2()

	conn := waitConn(t, node)
	node.push(t, conn, "0xtable", &holdem.TableState{Address: "0xtable"})

	for _, ch := range []chan *holdem.TableState{first, second} {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatal("shared connection must fan out to every callback")
		}
	}

	// Only one upgrade happened.
	select {
	case <-node.params:
		t.Fatal("second subscription must not open a new connection")
	default:
	}
}

func TestErrorCallbackOnConnectionLoss(t *testing.T) {
	node := newFakeNode(t)
	registry := NewRegistry(node.url(), log.New(io.Discard))
	registry.SetReconnect(0, time.Millisecond)
	defer registry.Close()

	errs := make(chan error, 1)
	_, err := registry.Subscribe("0xtable", "0xplayer", func(*holdem.TableState) {}, func(err error) {
		errs <- err
	})
	require.NoError(t, err)
	<-node.params

	conn := waitConn(t, node)
	require.NoError(t, conn.Close())

	select {
	case err := <-errs:
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("connection loss not reported")
	}
}

func TestSubscribeFailsOnBadURL(t *testing.T) {
	registry := NewRegistry("ws://127.0.0.1:1", log.New(io.Discard))
	_, err := registry.Subscribe("0xtable", "0xplayer", func(*holdem.TableState) {}, nil)
	assert.Error(t, err)
}

// Closing the registry while readLoop is mid-reconnect must not touch
// sub.conn outside the lock; run with -race.
func TestCloseDuringReconnect(t *testing.T) {
	node := newFakeNode(t)
	registry := NewRegistry(node.url(), log.New(io.Discard))
	registry.SetReconnect(3, time.Millisecond)

	errs := make(chan error, 1)
	_, err := registry.Subscribe("0xtable", "0xplayer", func(*holdem.TableState) {}, func(err error) {
		errs <- err
	})
	require.NoError(t, err)
	<-node.params

	// Drop the server side so readLoop starts reconnecting, then close the
	// registry concurrently.
	conn := waitConn(t, node)
	require.NoError(t, conn.Close())
	registry.Close()

	// The subscription was closed, not failed.
	select {
	case err := <-errs:
		t.Fatalf("closed registry reported error: %v", err)
	case <-time.After(50 * time.Millisecond):
	}
}
