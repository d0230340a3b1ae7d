package holdem

import (
	"encoding/json"
	"strings"
)

// ActionKind identifies one kind of table action. Wire payloads carry it as
// a string, and the node's SDK has shipped two generations of spellings for
// several kinds, so all parsing goes through ActionKindFromString and raw
// upstream values are never compared directly.
type ActionKind int

const (
	KindUnknown ActionKind = iota

	// Player actions
	KindSmallBlind
	KindBigBlind
	KindFold
	KindCheck
	KindCall
	KindBet
	KindRaise
	KindAllIn
	KindMuck
	KindShow
	KindSitOut
	KindSitIn

	// Non-player actions, never carry a monetary amount
	KindDeal
	KindJoin
	KindLeave
	KindNewHand
)

// String returns the canonical wire spelling of the action kind.
func (k ActionKind) String() string {
	switch k {
	case KindSmallBlind:
		return "post-small-blind"
	case KindBigBlind:
		return "post-big-blind"
	case KindFold:
		return "fold"
	case KindCheck:
		return "check"
	case KindCall:
		return "call"
	case KindBet:
		return "bet"
	case KindRaise:
		return "raise"
	case KindAllIn:
		return "all-in"
	case KindMuck:
		return "muck"
	case KindShow:
		return "show"
	case KindSitOut:
		return "sit-out"
	case KindSitIn:
		return "sit-in"
	case KindDeal:
		return "deal"
	case KindJoin:
		return "join"
	case KindLeave:
		return "leave"
	case KindNewHand:
		return "new-hand"
	default:
		return "unknown"
	}
}

// ActionKindFromString normalizes an upstream action-kind value into the
// closed internal enumeration. It accepts the spellings of both SDK
// generations; anything unrecognized maps to KindUnknown rather than
// erroring, so lookups on it report "not found".
func ActionKindFromString(s string) ActionKind {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	switch norm {
	case "post-small-blind", "small-blind":
		return KindSmallBlind
	case "post-big-blind", "big-blind":
		return KindBigBlind
	case "fold":
		return KindFold
	case "check":
		return KindCheck
	case "call":
		return KindCall
	case "bet":
		return KindBet
	case "raise":
		return KindRaise
	case "all-in", "allin":
		return KindAllIn
	case "muck":
		return KindMuck
	case "show":
		return KindShow
	case "sit-out", "sitout":
		return KindSitOut
	case "sit-in", "sitin":
		return KindSitIn
	case "deal":
		return KindDeal
	case "join":
		return KindJoin
	case "leave":
		return KindLeave
	case "new-hand", "newhand":
		return KindNewHand
	default:
		return KindUnknown
	}
}

// IsMonetary reports whether the kind commits chips to the pot. Fold, Check
// and the non-player kinds contribute nothing to any aggregation even when
// a stray amount field is present on the record.
func (k ActionKind) IsMonetary() bool {
	switch k {
	case KindBet, KindRaise, KindCall, KindSmallBlind, KindBigBlind:
		return true
	default:
		return false
	}
}

// SetsPrice reports whether the kind establishes the current bet to match.
// Calls and blinds merely meet a price, they never set one.
func (k ActionKind) SetsPrice() bool {
	return k == KindBet || k == KindRaise
}

// IsPlayerAction reports whether the kind is initiated by a seated player.
func (k ActionKind) IsPlayerAction() bool {
	return k >= KindSmallBlind && k <= KindSitIn
}

func (k ActionKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *ActionKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*k = ActionKindFromString(s)
	return nil
}

// Round is one betting phase of a hand. Blinds are posted in the ante round
// which precedes preflop; the preceding hand's records are replaced once the
// round reaches end.
type Round int

const (
	RoundAnte Round = iota
	RoundPreflop
	RoundFlop
	RoundTurn
	RoundRiver
	RoundShowdown
	RoundEnd
)

// String returns the canonical wire spelling of the round.
func (r Round) String() string {
	switch r {
	case RoundAnte:
		return "ante"
	case RoundPreflop:
		return "preflop"
	case RoundFlop:
		return "flop"
	case RoundTurn:
		return "turn"
	case RoundRiver:
		return "river"
	case RoundShowdown:
		return "showdown"
	case RoundEnd:
		return "end"
	default:
		return "unknown"
	}
}

// RoundFromString normalizes an upstream round value. Unrecognized values
// map to the ante round.
func RoundFromString(s string) Round {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-") {
	case "preflop", "pre-flop":
		return RoundPreflop
	case "flop":
		return RoundFlop
	case "turn":
		return RoundTurn
	case "river":
		return RoundRiver
	case "showdown":
		return RoundShowdown
	case "end":
		return RoundEnd
	default:
		return RoundAnte
	}
}

func (r Round) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Round) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = RoundFromString(s)
	return nil
}

// Player status values as reported in table snapshots.
const (
	StatusActive     = "active"
	StatusFolded     = "folded"
	StatusAllIn      = "all-in"
	StatusSittingOut = "sitting-out"
	StatusNotActed   = "not-acted"
	StatusShowing    = "showing"
)
