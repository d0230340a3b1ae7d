package holdem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionKindFromString(t *testing.T) {
	tests := []struct {
		in   string
		want ActionKind
	}{
		// Current SDK spellings
		{"post-small-blind", KindSmallBlind},
		{"post-big-blind", KindBigBlind},
		{"fold", KindFold},
		{"check", KindCheck},
		{"call", KindCall},
		{"bet", KindBet},
		{"raise", KindRaise},
		{"all-in", KindAllIn},
		{"muck", KindMuck},
		{"show", KindShow},
		{"sit-out", KindSitOut},
		{"deal", KindDeal},
		{"join", KindJoin},
		{"leave", KindLeave},
		{"new-hand", KindNewHand},

		// Spellings from the previous SDK generation
		{"small-blind", KindSmallBlind},
		{"big-blind", KindBigBlind},
		{"allin", KindAllIn},
		{"sitout", KindSitOut},
		{"sit_out", KindSitOut},
		{"new_hand", KindNewHand},

		// Case and whitespace variance
		{"FOLD", KindFold},
		{" Raise ", KindRaise},
		{"All-In", KindAllIn},

		// Unrecognized values signal not-found, they never panic
		{"teleport", KindUnknown},
		{"", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ActionKindFromString(tt.in))
		})
	}
}

func TestActionKindRoundTrip(t *testing.T) {
	kinds := []ActionKind{
		KindSmallBlind, KindBigBlind, KindFold, KindCheck, KindCall,
		KindBet, KindRaise, KindAllIn, KindMuck, KindShow, KindSitOut,
		KindSitIn, KindDeal, KindJoin, KindLeave, KindNewHand,
	}
	for _, k := range kinds {
		assert.Equal(t, k, ActionKindFromString(k.String()))
	}
}

func TestActionKindClassification(t *testing.T) {
	monetary := []ActionKind{KindBet, KindRaise, KindCall, KindSmallBlind, KindBigBlind}
	for _, k := range monetary {
		assert.True(t, k.IsMonetary(), "%s commits chips", k)
	}

	nonMonetary := []ActionKind{KindFold, KindCheck, KindAllIn, KindMuck,
		KindShow, KindDeal, KindJoin, KindLeave, KindNewHand}
	for _, k := range nonMonetary {
		assert.False(t, k.IsMonetary(), "%s must not be summed", k)
	}

	assert.True(t, KindBet.SetsPrice())
	assert.True(t, KindRaise.SetsPrice())
	assert.False(t, KindCall.SetsPrice())
	assert.False(t, KindBigBlind.SetsPrice())

	assert.True(t, KindFold.IsPlayerAction())
	assert.False(t, KindDeal.IsPlayerAction())
	assert.False(t, KindUnknown.IsPlayerAction())
}

func TestRoundFromString(t *testing.T) {
	tests := []struct {
		in   string
		want Round
	}{
		{"ante", RoundAnte},
		{"preflop", RoundPreflop},
		{"pre-flop", RoundPreflop},
		{"PREFLOP", RoundPreflop},
		{"flop", RoundFlop},
		{"turn", RoundTurn},
		{"river", RoundRiver},
		{"showdown", RoundShowdown},
		{"end", RoundEnd},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundFromString(tt.in), tt.in)
	}
}

func TestRoundRoundTrip(t *testing.T) {
	rounds := []Round{RoundAnte, RoundPreflop, RoundFlop, RoundTurn,
		RoundRiver, RoundShowdown, RoundEnd}
	for _, r := range rounds {
		assert.Equal(t, r, RoundFromString(r.String()))
	}
}
