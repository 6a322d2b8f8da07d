package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardroom/holdem/poker"
)

// stackDeck builds a deck that yields the given cards in draw order:
// hole cards two per seat in seat order, then flop, turn, river.
func stackDeck(draws ...poker.Card) *poker.Deck {
	reversed := make([]poker.Card, len(draws))
	for i, c := range draws {
		reversed[len(draws)-1-i] = c
	}
	return poker.NewStackedDeck(reversed...)
}

func c(s poker.Suit, r poker.Rank) poker.Card { return poker.NewCard(s, r) }

func totalChips(h *HandState) int {
	total := 0
	for _, p := range h.Players {
		total += p.Chips
	}
	return total
}

func TestHeadsUpShowdown(t *testing.T) {
	deck := stackDeck(
		c(poker.Spades, poker.Ace), c(poker.Hearts, poker.Ace), // a
		c(poker.Spades, poker.King), c(poker.Hearts, poker.King), // b
		c(poker.Clubs, poker.Two), c(poker.Diamonds, poker.Seven), c(poker.Spades, poker.Nine), // flop
		c(poker.Hearts, poker.Three), // turn
		c(poker.Diamonds, poker.Four), // river
	)

	seats := []Seat{
		{ID: "a", Name: "A", Chips: 1000},
		{ID: "b", Name: "B", Chips: 1000},
	}
	h, err := NewHand(rand.New(rand.NewSource(0)), seats, 0, 10, 20, WithDeck(deck))
	require.NoError(t, err)

	require.NoError(t, h.ApplyAction("a", Call, 0)) // dealer completes the small blind
	require.NoError(t, h.ApplyAction("b", Check, 0))

	for _, stage := range []Stage{Flop, Turn, River} {
		require.Equal(t, stage, h.Stage)
		require.NoError(t, h.ApplyAction("b", Check, 0))
		require.NoError(t, h.ApplyAction("a", Check, 0))
	}

	require.True(t, h.Complete())
	result := h.Results
	require.NotNil(t, result)

	assert.Equal(t, 40, result.TotalPot)
	require.Len(t, result.Awards, 1)
	assert.Equal(t, "a", result.Awards[0].PlayerID)
	assert.Equal(t, 40, result.Awards[0].Amount)

	assert.Equal(t, 1020, h.Players[0].Chips)
	assert.Equal(t, 980, h.Players[1].Chips)

	require.Len(t, result.Revealed, 2)
	assert.Equal(t, poker.OnePair, result.Revealed[0].Rank.Category)
}

func TestHeadsUpShortSmallBlindRunsOutImmediately(t *testing.T) {
	deck := stackDeck(
		c(poker.Spades, poker.Ace), c(poker.Hearts, poker.Ace), // a
		c(poker.Spades, poker.King), c(poker.Hearts, poker.King), // b
		c(poker.Clubs, poker.Two), c(poker.Diamonds, poker.Seven), c(poker.Spades, poker.Nine), // flop
		c(poker.Hearts, poker.Three), // turn
		c(poker.Diamonds, poker.Four), // river
	)

	// The dealer's whole stack goes in on the small blind, leaving the
	// big blind as the only seat that could act with their bet already
	// matched. No action may be solicited; the board runs out.
	seats := []Seat{
		{ID: "a", Name: "A", Chips: 5},
		{ID: "b", Name: "B", Chips: 1000},
	}
	h, err := NewHand(rand.New(rand.NewSource(0)), seats, 0, 10, 20, WithDeck(deck))
	require.NoError(t, err)

	require.True(t, h.Complete())
	assert.Equal(t, Showdown, h.Stage)
	assert.Equal(t, -1, h.ToAct)
	assert.Len(t, h.Community, 5)

	// a's aces take the 10-chip main pot; b's 15 uncovered chips come
	// straight back through the side pot.
	require.NotNil(t, h.Results)
	assert.Equal(t, 25, h.Results.TotalPot)
	assert.Equal(t, 10, h.Players[0].Chips)
	assert.Equal(t, 995, h.Players[1].Chips)
	assert.Equal(t, 1005, totalChips(h))
}

func TestPostflopActionOrderStartsLeftOfDealer(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	seats := []Seat{
		{ID: "a", Name: "A", Chips: 1000},
		{ID: "b", Name: "B", Chips: 1000},
		{ID: "c", Name: "C", Chips: 1000},
	}
	h, err := NewHand(rng, seats, 0, 10, 20)
	require.NoError(t, err)

	require.NoError(t, h.ApplyAction("a", Call, 0))
	require.NoError(t, h.ApplyAction("b", Call, 0))
	require.NoError(t, h.ApplyAction("c", Check, 0))

	require.Equal(t, Flop, h.Stage)
	assert.Equal(t, 1, h.ToAct, "small blind acts first after the flop")
	assert.Equal(t, 0, h.Betting.CurrentBet)
	assert.Equal(t, 20, h.Betting.MinRaise, "minimum raise resets to the big blind")
	for _, p := range h.Players {
		assert.Equal(t, 0, p.Bet, "round bets reset on a new street")
		assert.Equal(t, 20, p.TotalBet, "total contributions never reset mid-hand")
	}
}

func TestFoldDownAwardsPotWithoutShowdown(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	seats := []Seat{
		{ID: "a", Name: "A", Chips: 1000},
		{ID: "b", Name: "B", Chips: 1000},
		{ID: "c", Name: "C", Chips: 1000},
	}
	h, err := NewHand(rng, seats, 0, 10, 20)
	require.NoError(t, err)

	before := totalChips(h) + h.Pot()

	require.NoError(t, h.ApplyAction("a", Raise, 60))
	require.NoError(t, h.ApplyAction("b", Fold, 0))
	require.NoError(t, h.ApplyAction("c", Fold, 0))

	require.True(t, h.Complete())
	result := h.Results
	assert.Empty(t, result.Revealed, "a fold-down reveals no cards")
	require.Len(t, result.Awards, 1)
	assert.Equal(t, "a", result.Awards[0].PlayerID)
	assert.Equal(t, 110, result.Awards[0].Amount) // 80 raise-to + blinds 10+20

	assert.Equal(t, before, totalChips(h), "chips are conserved")
}

func TestThreeWayAllInSidePots(t *testing.T) {
	deck := stackDeck(
		c(poker.Spades, poker.Ace), c(poker.Hearts, poker.Ace), // a: best
		c(poker.Spades, poker.King), c(poker.Diamonds, poker.King), // b: second
		c(poker.Spades, poker.Queen), c(poker.Diamonds, poker.Queen), // c: third
		c(poker.Clubs, poker.Two), c(poker.Diamonds, poker.Seven), c(poker.Hearts, poker.Nine),
		c(poker.Diamonds, poker.Three),
		c(poker.Spades, poker.Eight),
	)

	seats := []Seat{
		{ID: "a", Name: "A", Chips: 100},
		{ID: "b", Name: "B", Chips: 200},
		{ID: "c", Name: "C", Chips: 300},
	}
	h, err := NewHand(rand.New(rand.NewSource(0)), seats, 0, 10, 20, WithDeck(deck))
	require.NoError(t, err)

	require.NoError(t, h.ApplyAction("a", Raise, 100)) // all-in 100
	require.NoError(t, h.ApplyAction("b", Raise, 150)) // all-in 200
	require.NoError(t, h.ApplyAction("c", Raise, 500)) // all-in 300

	// No one can act: the board runs out and the hand resolves.
	require.True(t, h.Complete())
	result := h.Results

	require.Len(t, result.Tiers, 3)
	assert.Equal(t, 300, result.Tiers[0].Amount)
	assert.Equal(t, 200, result.Tiers[1].Amount)
	assert.Equal(t, 100, result.Tiers[2].Amount)
	assert.Equal(t, 600, result.TotalPot)

	// Best hand wins the main pot; the capped stacks win back their
	// uncovered side pots.
	assert.Equal(t, 300, h.Players[0].Chips)
	assert.Equal(t, 200, h.Players[1].Chips)
	assert.Equal(t, 100, h.Players[2].Chips)
	assert.Equal(t, 600, totalChips(h))
}

func TestSplitPotRemainderClockwiseFromDealer(t *testing.T) {
	// The folded small blind leaves an odd pot of 75. Both survivors
	// play the board; the odd chip goes to the seat closest clockwise
	// of the dealer.
	deck := stackDeck(
		c(poker.Clubs, poker.Two), c(poker.Diamonds, poker.Three), // a
		c(poker.Hearts, poker.Two), c(poker.Hearts, poker.Three), // b
		c(poker.Diamonds, poker.Two), c(poker.Clubs, poker.Four), // c
		c(poker.Spades, poker.Ten), c(poker.Spades, poker.Jack), c(poker.Spades, poker.Queen),
		c(poker.Spades, poker.King),
		c(poker.Spades, poker.Ace),
	)

	seats := []Seat{
		{ID: "a", Name: "A", Chips: 1000},
		{ID: "b", Name: "B", Chips: 1000},
		{ID: "c", Name: "C", Chips: 1000},
	}
	h, err := NewHand(rand.New(rand.NewSource(0)), seats, 0, 15, 30, WithDeck(deck))
	require.NoError(t, err)

	require.NoError(t, h.ApplyAction("a", Call, 0))
	require.NoError(t, h.ApplyAction("b", Fold, 0))
	require.NoError(t, h.ApplyAction("c", Check, 0))
	for !h.Complete() {
		id := h.Players[h.ToAct].ID
		require.NoError(t, h.ApplyAction(id, Check, 0))
	}

	require.Len(t, h.Results.Awards, 2)
	assert.Equal(t, 75, h.Results.TotalPot)
	assert.Equal(t, poker.RoyalFlush, h.Results.Revealed[0].Rank.Category)

	// Seat 2 sits closer clockwise of dealer seat 0 than seat 0
	// itself does, so it receives the extra chip.
	assert.Equal(t, 1007, h.Players[0].Chips)
	assert.Equal(t, 985, h.Players[1].Chips)
	assert.Equal(t, 1008, h.Players[2].Chips)
}

func TestRunoutWhenAllButOneAllIn(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	seats := []Seat{
		{ID: "a", Name: "A", Chips: 50},
		{ID: "b", Name: "B", Chips: 1000},
		{ID: "c", Name: "C", Chips: 50},
	}
	h, err := NewHand(rng, seats, 0, 10, 20)
	require.NoError(t, err)

	require.NoError(t, h.ApplyAction("a", Raise, 30)) // all-in for the full 50
	require.NoError(t, h.ApplyAction("b", Call, 0))
	require.NoError(t, h.ApplyAction("c", Call, 0)) // covers the last 30, all-in

	// b is the only player with chips left: no more betting is
	// possible and the hand runs straight to showdown.
	require.True(t, h.Complete())
	assert.Equal(t, Showdown, h.Stage)
	assert.Len(t, h.Community, 5)
	assert.Equal(t, 1100, totalChips(h))
}

func TestChipConservationRandomHands(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		seats := []Seat{
			{ID: "a", Name: "A", Chips: 300},
			{ID: "b", Name: "B", Chips: 500},
			{ID: "c", Name: "C", Chips: 700},
			{ID: "d", Name: "D", Chips: 900},
		}
		h, err := NewHand(rng, seats, int(seed)%4, 10, 20)
		require.NoError(t, err)

		// Calling station strategy: always call or check.
		for i := 0; i < 200 && !h.Complete(); i++ {
			p := h.Players[h.ToAct]
			if h.Betting.CurrentBet > p.Bet {
				require.NoError(t, h.ApplyAction(p.ID, Call, 0))
			} else {
				require.NoError(t, h.ApplyAction(p.ID, Check, 0))
			}
		}

		require.True(t, h.Complete(), "seed %d did not finish", seed)
		assert.Equal(t, 2400, totalChips(h), "seed %d leaked chips", seed)

		awarded := 0
		for _, a := range h.Results.Awards {
			awarded += a.Amount
		}
		assert.Equal(t, h.Results.TotalPot, awarded, "seed %d pot mismatch", seed)
	}
}

func TestStageNeverMovesBackward(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	seats := []Seat{
		{ID: "a", Name: "A", Chips: 1000},
		{ID: "b", Name: "B", Chips: 1000},
	}
	h, err := NewHand(rng, seats, 0, 10, 20)
	require.NoError(t, err)

	last := h.Stage
	for i := 0; i < 100 && !h.Complete(); i++ {
		p := h.Players[h.ToAct]
		if h.Betting.CurrentBet > p.Bet {
			require.NoError(t, h.ApplyAction(p.ID, Call, 0))
		} else {
			require.NoError(t, h.ApplyAction(p.ID, Check, 0))
		}
		require.GreaterOrEqual(t, h.Stage, last)
		last = h.Stage
	}
}

func TestForceFoldOutOfTurn(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	seats := []Seat{
		{ID: "a", Name: "A", Chips: 1000},
		{ID: "b", Name: "B", Chips: 1000},
		{ID: "c", Name: "C", Chips: 1000},
	}
	h, err := NewHand(rng, seats, 0, 10, 20)
	require.NoError(t, err)

	// c is not to act but disconnects; their hand folds immediately.
	require.Equal(t, 0, h.ToAct)
	require.NoError(t, h.ForceFold("c"))
	assert.True(t, h.Players[2].Folded)
	assert.Equal(t, 0, h.ToAct, "turn order is unaffected by an out-of-turn fold")

	// Folding twice is a no-op.
	seq := h.Seq
	require.NoError(t, h.ForceFold("c"))
	assert.Equal(t, seq, h.Seq)
}
