package holdem

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/block52/holdem-client/holdem/chips"
)

// RaiseTo converts the incremental amount a player wants to add on top of
// their existing commitment into the total the raise puts into the pot.
// Both the input and the result are display dollars; the player's prior
// contributions are summed in micro-unit integers before converting.
//
// Only the acting player's actions in the current round count, with one
// carve-out: when the current round is preflop, a blind the player posted
// in the ante round still counts toward the raise-to total. Fold and check
// records contribute nothing even if they carry a stray amount.
func RaiseTo(incremental float64, actions []Action, round Round, playerID string) float64 {
	if len(actions) == 0 {
		return incremental
	}

	var mine []Action
	for _, a := range actions {
		if strings.EqualFold(a.PlayerID, playerID) {
			mine = append(mine, a)
		}
	}
	if len(mine) == 0 {
		return incremental
	}

	var qualifying []Action
	for _, a := range mine {
		if a.Round == round {
			qualifying = append(qualifying, a)
		}
	}

	if round == RoundPreflop {
		for _, a := range mine {
			if a.Round == RoundAnte && (a.Kind == KindSmallBlind || a.Kind == KindBigBlind) {
				qualifying = append(qualifying, a)
				break
			}
		}
	}

	prior := new(big.Int)
	for _, a := range qualifying {
		if a.Kind.IsMonetary() {
			prior.Add(prior, a.AmountMicro())
		}
	}

	total := incremental + chips.ToDisplay(prior)
	return math.Round(total*100) / 100
}

// PotBet computes the micro-unit amount for a fractional or full pot-sized
// bet. The full pot (fraction == 1) follows standard pot-raise sizing: the
// caller first matches the highest bet or raise of the current round, and a
// pot-sized raise then equals the resulting pot, so
//
//	bet = callAmount + highestBet + potTotal
//
// Fractional sizes use the raw pot total, floored at minLegal, matching the
// table's quarter/half/three-quarter buttons. The result is not clamped
// against the server's legal min/max bounds; that is the caller's job
// before submission.
func PotBet(fraction float64, ctx BettingContext, minLegal *big.Int) (*big.Int, error) {
	if math.IsNaN(fraction) || math.IsInf(fraction, 0) {
		return nil, fmt.Errorf("holdem: pot fraction must be finite, got %v", fraction)
	}
	if fraction < 0 || fraction > 1 {
		return nil, fmt.Errorf("holdem: pot fraction must be in [0, 1], got %v", fraction)
	}
	if ctx.PotTotal == nil || ctx.PotTotal.Sign() < 0 {
		return nil, fmt.Errorf("holdem: pot total must be non-negative")
	}
	if ctx.CallAmount != nil && ctx.CallAmount.Sign() < 0 {
		return nil, fmt.Errorf("holdem: call amount must be non-negative")
	}
	if minLegal != nil && minLegal.Sign() < 0 {
		return nil, fmt.Errorf("holdem: minimum legal amount must be non-negative")
	}

	if fraction == 1 {
		bet := new(big.Int).Set(ctx.PotTotal)
		if ctx.CallAmount != nil {
			bet.Add(bet, ctx.CallAmount)
		}
		bet.Add(bet, HighestBet(ctx.PreviousActions, ctx.CurrentRound))
		return bet, nil
	}

	frac, _ := new(big.Float).Mul(
		big.NewFloat(fraction),
		new(big.Float).SetInt(ctx.PotTotal),
	).Int(nil)
	if minLegal != nil && frac.Cmp(minLegal) < 0 {
		return new(big.Int).Set(minLegal), nil
	}
	return frac, nil
}

// HighestBet returns the largest bet or raise of the given round, in
// micro-units, or zero when the round is unopened. Calls and blinds meet
// the current price without setting it, so they are excluded.
func HighestBet(actions []Action, round Round) *big.Int {
	highest := new(big.Int)
	for _, a := range actions {
		if a.Round != round || !a.Kind.SetsPrice() {
			continue
		}
		if amt := a.AmountMicro(); amt.Cmp(highest) > 0 {
			highest = amt
		}
	}
	return highest
}
