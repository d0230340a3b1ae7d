package tui

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"github.com/block52/holdem-client/holdem"
)

func TestDescribeNewActions(t *testing.T) {
	next := testState()

	t.Run("first snapshot reports full history", func(t *testing.T) {
		lines := describeNewActions(nil, next)
		assert.Equal(t, []string{"0xBBBB bet 10.00"}, lines)
	})

	t.Run("only the delta is reported", func(t *testing.T) {
		prev := testState()
		next := testState()
		next.PreviousActions = append(next.PreviousActions, holdem.Action{
			PlayerID: hero, Kind: holdem.KindFold,
			Round: holdem.RoundFlop, Index: 7, Timestamp: 1100,
		})

		lines := describeNewActions(prev, next)
		assert.Equal(t, []string{shortAddr(hero) + " fold"}, lines)
	})

	t.Run("all-in shows the wire amount", func(t *testing.T) {
		prev := testState()
		next := testState()
		next.PreviousActions = append(next.PreviousActions, holdem.Action{
			PlayerID: "0xBBBB", Kind: holdem.KindAllIn, Amount: "300000000",
			Round: holdem.RoundFlop, Index: 7, Timestamp: 1100,
		})

		lines := describeNewActions(prev, next)
		assert.Equal(t, []string{"0xBBBB all-in 300.00"}, lines)
	})

	t.Run("shrunk history means a new hand", func(t *testing.T) {
		prev := testState()
		prev.PreviousActions = append(prev.PreviousActions, holdem.Action{
			PlayerID: hero, Kind: holdem.KindCall, Amount: "10000000",
			Round: holdem.RoundFlop, Index: 7, Timestamp: 1100,
		})
		next := testState()

		lines := describeNewActions(prev, next)
		assert.Equal(t, []string{"0xBBBB bet 10.00"}, lines)
	})
}

func TestApplyStateWarnsOnIndexMismatch(t *testing.T) {
	var buf bytes.Buffer
	m := NewModel(log.New(&buf), hero, "", nil)

	state := testState()
	state.Players[0].LegalActions[1].Index = 9

	m.applyState(state)
	assert.Contains(t, buf.String(), "legal actions disagree on turn index")

	buf.Reset()
	m.applyState(testState())
	assert.NotContains(t, buf.String(), "turn index")
}

func TestAvailableSummary(t *testing.T) {
	state := testState()
	av := holdem.AvailabilityFrom(state.LegalActionsFor(hero))
	assert.Equal(t, "fold / call / raise / allin", availableSummary(av))
}

func TestPrettyCard(t *testing.T) {
	assert.Equal(t, "A♠", prettyCard("AS"))
	assert.Equal(t, "T♦", prettyCard("TD"))
	assert.Equal(t, "10♥", prettyCard("10H"))
	assert.Equal(t, "??", prettyCard("??"))
	assert.Equal(t, "X", prettyCard("X"))
}

func TestShortAddr(t *testing.T) {
	assert.Equal(t, "0xBBBB", shortAddr("0xBBBB"))
	assert.Equal(t, "0xAAAA00…0001", shortAddr(hero))
}
