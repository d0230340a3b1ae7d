package holdem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasAction(t *testing.T) {
	legal := []LegalAction{
		{Kind: KindFold, Index: 3},
		{Kind: KindCall, Min: "100", Max: "100", Index: 3},
		{Kind: KindRaise, Min: "200", Max: "1000", Index: 3},
	}

	assert.True(t, HasAction(legal, KindFold))
	assert.True(t, HasAction(legal, KindCall))
	assert.True(t, HasAction(legal, KindRaise))
	assert.False(t, HasAction(legal, KindBet))
	assert.False(t, HasAction(legal, KindCheck))
	assert.False(t, HasAction(nil, KindFold))
	assert.False(t, HasAction(legal, KindUnknown))
}

func TestGetAction(t *testing.T) {
	legal := []LegalAction{
		{Kind: KindFold, Index: 3},
		{Kind: KindRaise, Min: "200", Max: "1000", Index: 3},
	}

	raise, ok := GetAction(legal, KindRaise)
	require.True(t, ok)
	assert.Equal(t, "200", raise.Min)
	assert.Equal(t, "1000", raise.Max)

	_, ok = GetAction(legal, KindBet)
	assert.False(t, ok)

	_, ok = GetAction(nil, KindFold)
	assert.False(t, ok)
}

func TestGetActionFirstMatchWins(t *testing.T) {
	legal := []LegalAction{
		{Kind: KindCall, Min: "100", Index: 3},
		{Kind: KindCall, Min: "200", Index: 3},
	}

	call, ok := GetAction(legal, KindCall)
	require.True(t, ok)
	assert.Equal(t, "100", call.Min)
}

func TestTurnIndex(t *testing.T) {
	idx, consistent := TurnIndex(nil)
	assert.Zero(t, idx)
	assert.True(t, consistent)

	idx, consistent = TurnIndex([]LegalAction{
		{Kind: KindFold, Index: 7},
		{Kind: KindCall, Index: 7},
	})
	assert.Equal(t, 7, idx)
	assert.True(t, consistent)

	idx, consistent = TurnIndex([]LegalAction{
		{Kind: KindFold, Index: 7},
		{Kind: KindCall, Index: 8},
	})
	assert.Equal(t, 7, idx)
	assert.False(t, consistent)
}

func TestAvailabilityFrom(t *testing.T) {
	legal := []LegalAction{
		{Kind: KindFold, Index: 5},
		{Kind: KindCall, Min: "100", Index: 5},
		{Kind: KindRaise, Min: "200", Max: "1000", Index: 5},
	}

	av := AvailabilityFrom(legal)
	assert.True(t, av.CanFold)
	assert.True(t, av.CanCall)
	assert.True(t, av.CanRaise)
	assert.False(t, av.CanCheck)
	assert.False(t, av.CanBet)
	assert.False(t, av.CanDeal)
	assert.Equal(t, 5, av.TurnIndex)
	assert.False(t, av.IndexMismatch)

	assert.True(t, av.Allows(KindFold))
	assert.False(t, av.Allows(KindCheck))
	assert.False(t, av.Allows(KindUnknown))
}

func TestAvailabilityEmpty(t *testing.T) {
	av := AvailabilityFrom(nil)
	for _, kind := range []ActionKind{
		KindFold, KindCheck, KindCall, KindBet, KindRaise,
		KindSmallBlind, KindBigBlind, KindAllIn, KindDeal, KindJoin, KindLeave,
	} {
		assert.False(t, av.Allows(kind), "empty list allows nothing, got %s", kind)
	}
}
