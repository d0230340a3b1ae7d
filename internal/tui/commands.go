package tui

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/block52/holdem-client/holdem"
	"github.com/block52/holdem-client/holdem/chips"
)

// Command is a parsed user instruction ready for submission.
type Command struct {
	Kind   holdem.ActionKind
	Amount *big.Int
	Desc   string
}

// parseCommand turns a line of input into a submission command, resolving
// bet sizes against the current snapshot. Commands for actions the server
// has not declared legal are rejected here so nothing unsubmittable leaves
// the input box.
func parseCommand(input string, state *holdem.TableState, address string) (Command, error) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(input)))
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty command")
	}

	if state == nil {
		return Command{}, fmt.Errorf("no table state yet")
	}

	legal := state.LegalActionsFor(address)
	avail := holdem.AvailabilityFrom(legal)

	verb := fields[0]
	if len(fields) >= 2 && fields[0] == "sit" {
		verb = "sit-" + fields[1]
	}

	switch verb {
	case "fold", "check", "call", "muck", "show", "deal", "sit-out", "sit-in":
		kind := holdem.ActionKindFromString(verb)
		if !avail.Allows(kind) {
			return Command{}, fmt.Errorf("%s is not available", verb)
		}
		cmd := Command{Kind: kind, Desc: verb}
		if kind == holdem.KindCall {
			if la, ok := holdem.GetAction(legal, holdem.KindCall); ok {
				cmd.Amount = la.MinMicro()
				cmd.Desc = "call " + chips.Format(cmd.Amount)
			}
		}
		return cmd, nil

	case "bet", "raise":
		kind := holdem.ActionKindFromString(verb)
		if !avail.Allows(kind) {
			return Command{}, fmt.Errorf("%s is not available", verb)
		}
		if len(fields) < 2 {
			return Command{}, fmt.Errorf("usage: %s <amount>", verb)
		}
		display, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return Command{}, fmt.Errorf("invalid amount %q", fields[1])
		}
		if kind == holdem.KindRaise {
			// The server expects the raise-to total, not the increment.
			display = holdem.RaiseTo(display, state.PreviousActions, state.Round, address)
		}
		amount, err := chips.FromDisplay(display)
		if err != nil {
			return Command{}, err
		}
		if err := checkBounds(legal, kind, amount); err != nil {
			return Command{}, err
		}
		return Command{Kind: kind, Amount: amount,
			Desc: fmt.Sprintf("%s to %s", verb, chips.Format(amount))}, nil

	case "quarter", "half", "threequarter", "pot":
		return potCommand(verb, state, address, legal, avail)

	case "allin", "all-in":
		if !avail.Allows(holdem.KindAllIn) {
			return Command{}, fmt.Errorf("all-in is not available")
		}
		amount := maxCommit(legal)
		return Command{Kind: holdem.KindAllIn, Amount: amount,
			Desc: "all-in " + chips.Format(amount)}, nil

	case "join":
		// An unseated player has no legal-action list at all; joining is
		// the node's call to reject in that case.
		if state.PlayerByAddress(address) != nil && !avail.Allows(holdem.KindJoin) {
			return Command{}, fmt.Errorf("join is not available")
		}
		amount := chips.Parse(state.GameOptions.MinBuyIn)
		if len(fields) >= 2 {
			display, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return Command{}, fmt.Errorf("invalid buy-in %q", fields[1])
			}
			if amount, err = chips.FromDisplay(display); err != nil {
				return Command{}, err
			}
		}
		return Command{Kind: holdem.KindJoin, Amount: amount,
			Desc: "join with " + chips.Format(amount)}, nil

	case "leave":
		if !avail.Allows(holdem.KindLeave) {
			return Command{}, fmt.Errorf("leave is not available")
		}
		var stack *big.Int
		if p := state.PlayerByAddress(address); p != nil {
			stack = p.StackMicro()
		}
		return Command{Kind: holdem.KindLeave, Amount: stack, Desc: "leave"}, nil

	default:
		return Command{}, fmt.Errorf("unknown command %q", fields[0])
	}
}

// potCommand sizes a bet from the pot. The quarter/half/threequarter
// shortcuts use the raw pot total floored at the legal minimum; only the
// full pot applies the call-inclusive pot-raise formula.
func potCommand(verb string, state *holdem.TableState, address string, legal []holdem.LegalAction, avail holdem.Availability) (Command, error) {
	kind := holdem.KindBet
	if !avail.CanBet {
		kind = holdem.KindRaise
	}
	if !avail.Allows(kind) {
		return Command{}, fmt.Errorf("no bet or raise available")
	}

	fraction := map[string]float64{
		"quarter":      0.25,
		"half":         0.5,
		"threequarter": 0.75,
		"pot":          1,
	}[verb]

	minLegal := minCommit(legal)
	amount, err := holdem.PotBet(fraction, state.Context(address), minLegal)
	if err != nil {
		return Command{}, err
	}
	amount = clampBounds(legal, kind, amount)

	return Command{Kind: kind, Amount: amount,
		Desc: fmt.Sprintf("%s %s", verb, chips.Format(amount))}, nil
}

// minCommit returns the smaller of the legal min-bet and min-raise, the
// floor for fractional pot sizing.
func minCommit(legal []holdem.LegalAction) *big.Int {
	var low *big.Int
	for _, kind := range []holdem.ActionKind{holdem.KindBet, holdem.KindRaise} {
		if la, ok := holdem.GetAction(legal, kind); ok {
			if m := la.MinMicro(); low == nil || m.Cmp(low) < 0 {
				low = m
			}
		}
	}
	if low == nil {
		return new(big.Int)
	}
	return low
}

func maxCommit(legal []holdem.LegalAction) *big.Int {
	var high *big.Int
	for _, kind := range []holdem.ActionKind{holdem.KindAllIn, holdem.KindRaise, holdem.KindBet, holdem.KindCall} {
		if la, ok := holdem.GetAction(legal, kind); ok {
			if m := la.MaxMicro(); high == nil || m.Cmp(high) > 0 {
				high = m
			}
		}
	}
	if high == nil {
		return new(big.Int)
	}
	return high
}

// checkBounds rejects explicit amounts outside the server-declared bounds.
func checkBounds(legal []holdem.LegalAction, kind holdem.ActionKind, amount *big.Int) error {
	la, ok := holdem.GetAction(legal, kind)
	if !ok {
		return nil
	}
	if min := la.MinMicro(); min.Sign() > 0 && amount.Cmp(min) < 0 {
		return fmt.Errorf("amount %s below minimum %s", chips.Format(amount), chips.Format(min))
	}
	if max := la.MaxMicro(); max.Sign() > 0 && amount.Cmp(max) > 0 {
		return fmt.Errorf("amount %s above maximum %s", chips.Format(amount), chips.Format(max))
	}
	return nil
}

// clampBounds pins a computed size inside the server-declared bounds
// before submission.
func clampBounds(legal []holdem.LegalAction, kind holdem.ActionKind, amount *big.Int) *big.Int {
	la, ok := holdem.GetAction(legal, kind)
	if !ok {
		return amount
	}
	if min := la.MinMicro(); min.Sign() > 0 && amount.Cmp(min) < 0 {
		return min
	}
	if max := la.MaxMicro(); max.Sign() > 0 && amount.Cmp(max) > 0 {
		return max
	}
	return amount
}
