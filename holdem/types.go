package holdem

import (
	"math/big"

	"github.com/block52/holdem-client/holdem/chips"
)

// Action is one committed decision in the hand history. The list delivered
// with each snapshot is append-only for the lifetime of a hand and is
// replaced wholesale when the next hand starts; nothing in this package
// mutates it.
type Action struct {
	PlayerID  string     `json:"playerId"`
	Seat      int        `json:"seat,omitempty"`
	Kind      ActionKind `json:"action"`
	Amount    string     `json:"amount,omitempty"`
	Round     Round      `json:"round"`
	Index     int        `json:"index"`
	Timestamp int64      `json:"timestamp"`
}

// AmountMicro returns the action's amount in micro-units. Non-monetary
// kinds contribute zero regardless of what the amount field holds.
func (a Action) AmountMicro() *big.Int {
	if !a.Kind.IsMonetary() {
		return new(big.Int)
	}
	return chips.Parse(a.Amount)
}

// LegalAction is a server-declared permission for the current player to
// perform one action kind, with micro-unit bounds for the monetary kinds.
// All entries for one player-turn share the same index.
type LegalAction struct {
	Kind  ActionKind `json:"action"`
	Min   string     `json:"min,omitempty"`
	Max   string     `json:"max,omitempty"`
	Index int        `json:"index"`
}

// MinMicro returns the lower bound in micro-units, zero when absent.
func (la LegalAction) MinMicro() *big.Int { return chips.Parse(la.Min) }

// MaxMicro returns the upper bound in micro-units, zero when absent.
func (la LegalAction) MaxMicro() *big.Int { return chips.Parse(la.Max) }

// BettingContext bundles the snapshot inputs the pot sizer needs. It is
// built fresh from a snapshot per computation and never persisted.
type BettingContext struct {
	CurrentRound    Round
	PreviousActions []Action
	PotTotal        *big.Int
	CallAmount      *big.Int
	ActingPlayerID  string
}
