// Package session tracks per-table turn timing and the auto-action policy
// applied when the acting player runs out their clock. It replaces the
// browser client's module-level maps with an explicit store: the caller
// owns the store's lifetime and injects the clock, so the policy is
// testable without waiting on wall time.
package session

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/block52/holdem-client/holdem"
)

// DefaultTimeout applies when the table's game options omit one.
const DefaultTimeout = 30 * time.Second

// MaxTimeoutsBeforeSitOut is how many consecutive timeouts a player gets
// before the policy sits them out instead of folding for them again.
const MaxTimeoutsBeforeSitOut = 3

// AutoAction is a directive the policy wants submitted on a player's
// behalf: check when legal, otherwise fold, or sit-out after repeated
// timeouts.
type AutoAction struct {
	PlayerID string
	Kind     holdem.ActionKind
}

// Store holds the session-scoped timeout state for any number of tables.
type Store struct {
	clock  quartz.Clock
	logger *log.Logger

	mu     sync.Mutex
	tables map[string]*tableSession
}

type tableSession struct {
	lastActionTS int64           // ms, latest previousActions timestamp
	turnSeenAt   time.Time       // when this store first saw the current turn
	timeouts     map[string]int  // consecutive timeouts per player address
	processed    map[string]bool // players already auto-acted this turn
}

// NewStore creates a session store. A nil clock selects the real one.
func NewStore(clock quartz.Clock, logger *log.Logger) *Store {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Store{
		clock:  clock,
		logger: logger.WithPrefix("session"),
		tables: make(map[string]*tableSession),
	}
}

// Observe folds a fresh snapshot into the store and returns any auto-action
// the timeout policy wants submitted. The snapshot is read-only input; all
// mutation happens inside the store.
func (s *Store) Observe(state *holdem.TableState) []AutoAction {
	if state == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.table(state.Address)
	now := s.clock.Now()

	latest := latestActionTimestamp(state)
	if latest != ts.lastActionTS {
		// New turn: the previous acting player got their action in, so
		// their consecutive-timeout count resets.
		if actor := actorOf(state, ts.lastActionTS, latest); actor != "" {
			delete(ts.timeouts, actor)
		}
		ts.lastActionTS = latest
		ts.turnSeenAt = now
		ts.processed = make(map[string]bool)
	}

	acting := actingPlayer(state)
	if acting == nil || ts.processed[acting.Address] {
		return nil
	}

	timeout := timeoutDuration(state)
	if now.Sub(ts.turnSeenAt) <= timeout {
		return nil
	}

	ts.processed[acting.Address] = true
	ts.timeouts[acting.Address]++
	count := ts.timeouts[acting.Address]

	kind := holdem.KindFold
	if holdem.HasAction(acting.LegalActions, holdem.KindCheck) {
		kind = holdem.KindCheck
	}
	if count >= MaxTimeoutsBeforeSitOut {
		kind = holdem.KindSitOut
		delete(ts.timeouts, acting.Address)
	}

	s.logger.Info("Player timed out", "table", state.Address,
		"player", acting.Address, "count", count, "action", kind.String())

	return []AutoAction{{PlayerID: acting.Address, Kind: kind}}
}

// TimeoutCount reports the consecutive timeouts recorded for a player.
func (s *Store) TimeoutCount(tableAddress, playerID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ts, ok := s.tables[tableAddress]; ok {
		return ts.timeouts[playerID]
	}
	return 0
}

// Reset drops all state for a table, e.g. after leaving it.
func (s *Store) Reset(tableAddress string) {
	s.mu.Lock()
	delete(s.tables, tableAddress)
	s.mu.Unlock()
}

func (s *Store) table(address string) *tableSession {
	ts, ok := s.tables[address]
	if !ok {
		ts = &tableSession{
			turnSeenAt: s.clock.Now(),
			timeouts:   make(map[string]int),
			processed:  make(map[string]bool),
		}
		s.tables[address] = ts
	}
	return ts
}

func latestActionTimestamp(state *holdem.TableState) int64 {
	var latest int64
	for _, a := range state.PreviousActions {
		if a.Timestamp > latest {
			latest = a.Timestamp
		}
	}
	return latest
}

// actorOf finds who produced the action that advanced the clock from prev
// to next, so their timeout streak can be cleared.
func actorOf(state *holdem.TableState, prev, next int64) string {
	if next == 0 || next == prev {
		return ""
	}
	for _, a := range state.PreviousActions {
		if a.Timestamp == next && a.Kind.IsPlayerAction() {
			return a.PlayerID
		}
	}
	return ""
}

func actingPlayer(state *holdem.TableState) *holdem.Player {
	for i := range state.Players {
		if state.Players[i].Seat == state.NextToAct && state.Players[i].Status == holdem.StatusActive {
			return &state.Players[i]
		}
	}
	return nil
}

func timeoutDuration(state *holdem.TableState) time.Duration {
	if state.GameOptions.Timeout > 0 {
		return time.Duration(state.GameOptions.Timeout) * time.Millisecond
	}
	return DefaultTimeout
}
