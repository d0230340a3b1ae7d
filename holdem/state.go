package holdem

import (
	"math/big"
	"strings"

	"github.com/block52/holdem-client/holdem/chips"
)

// GameOptions is the table configuration carried in every snapshot.
// Monetary values are micro-unit decimal strings; Timeout is milliseconds.
type GameOptions struct {
	MinBuyIn   string `json:"minBuyIn"`
	MaxBuyIn   string `json:"maxBuyIn"`
	MaxPlayers int    `json:"maxPlayers"`
	MinPlayers int    `json:"minPlayers"`
	SmallBlind string `json:"smallBlind"`
	BigBlind   string `json:"bigBlind"`
	Timeout    int    `json:"timeout"`
}

// Player is one seat's state within a snapshot.
type Player struct {
	Address      string        `json:"address"`
	Seat         int           `json:"seat"`
	Stack        string        `json:"stack"`
	IsSmallBlind bool          `json:"isSmallBlind"`
	IsBigBlind   bool          `json:"isBigBlind"`
	IsDealer     bool          `json:"isDealer"`
	HoleCards    []string      `json:"holeCards,omitempty"`
	Status       string        `json:"status"`
	LastAction   *Action       `json:"lastAction,omitempty"`
	LegalActions []LegalAction `json:"legalActions"`
	SumOfBets    string        `json:"sumOfBets"`
	Timeout      int           `json:"timeout"`
}

// StackMicro returns the player's stack in micro-units.
func (p Player) StackMicro() *big.Int { return chips.Parse(p.Stack) }

// Winner is one pot award reported at hand end.
type Winner struct {
	Address     string   `json:"address"`
	Amount      string   `json:"amount"`
	Cards       []string `json:"cards,omitempty"`
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
}

// TableState is the full-replacement snapshot the node publishes on every
// update. Consumers treat it as read-only; there is no delta or merge
// protocol, each message supersedes the last.
type TableState struct {
	Address            string      `json:"address"`
	GameOptions        GameOptions `json:"gameOptions"`
	SmallBlindPosition int         `json:"smallBlindPosition"`
	BigBlindPosition   int         `json:"bigBlindPosition"`
	Dealer             int         `json:"dealer"`
	Players            []Player    `json:"players"`
	CommunityCards     []string    `json:"communityCards"`
	Pots               []string    `json:"pots"`
	LastActedSeat      int         `json:"lastActedSeat"`
	ActionCount        int         `json:"actionCount"`
	HandNumber         int         `json:"handNumber"`
	NextToAct          int         `json:"nextToAct"`
	PreviousActions    []Action    `json:"previousActions"`
	Round              Round       `json:"round"`
	Winners            []Winner    `json:"winners"`
}

// PlayerByAddress finds the seat for an account address. Addresses are
// free-form strings from two key schemes, so the match is case-insensitive.
func (s *TableState) PlayerByAddress(addr string) *Player {
	for i := range s.Players {
		if strings.EqualFold(s.Players[i].Address, addr) {
			return &s.Players[i]
		}
	}
	return nil
}

// TotalPot sums all side pots, in micro-units.
func (s *TableState) TotalPot() *big.Int {
	total := new(big.Int)
	for _, pot := range s.Pots {
		total.Add(total, chips.Parse(pot))
	}
	return total
}

// LegalActionsFor returns the server-declared permissions for the given
// address, or nil when the address is not seated.
func (s *TableState) LegalActionsFor(addr string) []LegalAction {
	p := s.PlayerByAddress(addr)
	if p == nil {
		return nil
	}
	return p.LegalActions
}

// IsPlayerTurn reports whether the given address holds the acting seat.
func (s *TableState) IsPlayerTurn(addr string) bool {
	p := s.PlayerByAddress(addr)
	return p != nil && p.Seat == s.NextToAct
}

// CallAmountFor returns the micro-unit cost for the given address to call,
// or zero when calling is not among their legal actions.
func (s *TableState) CallAmountFor(addr string) *big.Int {
	if la, ok := GetAction(s.LegalActionsFor(addr), KindCall); ok {
		return la.MinMicro()
	}
	return new(big.Int)
}

// Context assembles the pot sizer's input bundle for the given address.
func (s *TableState) Context(addr string) BettingContext {
	return BettingContext{
		CurrentRound:    s.Round,
		PreviousActions: s.PreviousActions,
		PotTotal:        s.TotalPot(),
		CallAmount:      s.CallAmountFor(addr),
		ActingPlayerID:  addr,
	}
}
