package poker

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func card(s Suit, r Rank) Card { return NewCard(s, r) }

func TestEvaluateRoyalFlush(t *testing.T) {
	hole := []Card{card(Spades, Ace), card(Spades, King)}
	community := []Card{
		card(Spades, Queen), card(Spades, Jack), card(Spades, Ten),
		card(Hearts, Two), card(Diamonds, Seven),
	}

	rank := Evaluate(hole, community)
	assert.Equal(t, RoyalFlush, rank.Category)
	assert.Equal(t, "Royal Flush", rank.String())
}

func TestEvaluateFullHouseTiebreaks(t *testing.T) {
	rank := rank5([5]Card{
		card(Clubs, Two), card(Diamonds, Two), card(Hearts, Two),
		card(Spades, Five), card(Clubs, Five),
	})

	assert.Equal(t, FullHouse, rank.Category)
	assert.Equal(t, []int{2, 5}, rank.Tiebreaks)
}

func TestEvaluateWheelStraight(t *testing.T) {
	hole := []Card{card(Clubs, Ace), card(Diamonds, Two)}
	community := []Card{
		card(Spades, Three), card(Hearts, Four), card(Clubs, Five),
		card(Diamonds, Nine), card(Spades, King),
	}

	rank := Evaluate(hole, community)
	require.Equal(t, Straight, rank.Category)
	assert.Equal(t, []int{5}, rank.Tiebreaks, "wheel scores with high card 5, not ace")

	// The wheel still beats any pair.
	pair := rank5([5]Card{
		card(Clubs, Ace), card(Diamonds, Ace), card(Spades, King),
		card(Hearts, Queen), card(Clubs, Jack),
	})
	assert.Equal(t, 1, Compare(rank, pair))
}

func TestEvaluateOrderInvariance(t *testing.T) {
	cards := []Card{
		card(Spades, Ace), card(Hearts, Ace), card(Diamonds, King),
		card(Clubs, King), card(Spades, Nine), card(Hearts, Four),
		card(Diamonds, Two),
	}

	want := Evaluate(cards[:2], cards[2:])

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		shuffled := make([]Card, len(cards))
		copy(shuffled, cards)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got := Evaluate(shuffled[:2], shuffled[2:])
		assert.Equal(t, 0, Compare(got, want))
		assert.Equal(t, want, got)
	}
}

func TestCategoryOrdering(t *testing.T) {
	hands := []HandRank{
		rank5([5]Card{card(Spades, Two), card(Hearts, Five), card(Diamonds, Nine), card(Clubs, Jack), card(Spades, King)}),   // high card
		rank5([5]Card{card(Spades, Two), card(Hearts, Two), card(Diamonds, Nine), card(Clubs, Jack), card(Spades, King)}),    // pair
		rank5([5]Card{card(Spades, Two), card(Hearts, Two), card(Diamonds, Nine), card(Clubs, Nine), card(Spades, King)}),    // two pair
		rank5([5]Card{card(Spades, Two), card(Hearts, Two), card(Diamonds, Two), card(Clubs, Nine), card(Spades, King)}),     // trips
		rank5([5]Card{card(Spades, Five), card(Hearts, Six), card(Diamonds, Seven), card(Clubs, Eight), card(Spades, Nine)}), // straight
		rank5([5]Card{card(Spades, Two), card(Spades, Five), card(Spades, Nine), card(Spades, Jack), card(Spades, King)}),    // flush
		rank5([5]Card{card(Spades, Two), card(Hearts, Two), card(Diamonds, Two), card(Clubs, Nine), card(Spades, Nine)}),     // full house
		rank5([5]Card{card(Spades, Two), card(Hearts, Two), card(Diamonds, Two), card(Clubs, Two), card(Spades, Nine)}),      // quads
		rank5([5]Card{card(Spades, Five), card(Spades, Six), card(Spades, Seven), card(Spades, Eight), card(Spades, Nine)}),  // straight flush
	}

	for i := 1; i < len(hands); i++ {
		assert.Equal(t, 1, Compare(hands[i], hands[i-1]),
			"%s should beat %s", hands[i], hands[i-1])
	}
}

func TestKickerTiebreaks(t *testing.T) {
	tests := []struct {
		name   string
		a, b   [5]Card
		expect int
	}{
		{
			name: "higher kicker wins with equal pair",
			a: [5]Card{card(Spades, Ten), card(Hearts, Ten), card(Diamonds, Ace),
				card(Clubs, Seven), card(Spades, Three)},
			b: [5]Card{card(Clubs, Ten), card(Diamonds, Ten), card(Hearts, King),
				card(Spades, Seven), card(Hearts, Three)},
			expect: 1,
		},
		{
			name: "exact tie in different suits",
			a: [5]Card{card(Spades, Ten), card(Hearts, Ten), card(Diamonds, Ace),
				card(Clubs, Seven), card(Spades, Three)},
			b: [5]Card{card(Clubs, Ten), card(Diamonds, Ten), card(Spades, Ace),
				card(Hearts, Seven), card(Diamonds, Three)},
			expect: 0,
		},
		{
			name: "two pair compares high pair first",
			a: [5]Card{card(Spades, King), card(Hearts, King), card(Diamonds, Two),
				card(Clubs, Two), card(Spades, Five)},
			b: [5]Card{card(Clubs, Queen), card(Diamonds, Queen), card(Hearts, Jack),
				card(Spades, Jack), card(Hearts, Ace)},
			expect: 1,
		},
		{
			name: "straight uses high card only",
			a: [5]Card{card(Spades, Five), card(Hearts, Six), card(Diamonds, Seven),
				card(Clubs, Eight), card(Spades, Nine)},
			b: [5]Card{card(Clubs, Six), card(Diamonds, Seven), card(Hearts, Eight),
				card(Spades, Nine), card(Hearts, Ten)},
			expect: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, Compare(rank5(tt.a), rank5(tt.b)))
		})
	}
}

func TestEvaluatePicksBestSubset(t *testing.T) {
	// Board pairs the hole cards twice over: best hand is the board
	// flush, not the hole pair.
	hole := []Card{card(Hearts, Nine), card(Diamonds, Nine)}
	community := []Card{
		card(Spades, Two), card(Spades, Six), card(Spades, Ten),
		card(Spades, Queen), card(Spades, Ace),
	}

	rank := Evaluate(hole, community)
	assert.Equal(t, Flush, rank.Category)
	assert.Equal(t, []int{14, 12, 10, 6, 2}, rank.Tiebreaks)
}
