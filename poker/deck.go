package poker

import (
	"errors"
	"math/rand"
)

// ErrEmptyDeck is returned by Draw when no cards remain. With table
// sizes capped at ten seats a 52-card deck cannot run out mid-hand, so
// callers treat this as an unrecoverable invariant violation.
var ErrEmptyDeck = errors.New("poker: draw from empty deck")

// Deck represents a standard 52-card deck. Cards are drawn from the
// end of the sequence.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck creates a new shuffled deck with explicit RNG
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}

	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}

	d.Shuffle()
	return d
}

// NewStackedDeck creates a deck containing exactly the given cards, in
// order, with no shuffling. Draw returns the last card first. Used by
// tests that need deterministic deals.
func NewStackedDeck(cards ...Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d
}

// Shuffle applies a uniform Fisher-Yates permutation, swapping from
// the last index down to 1.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.Intn(i + 1)
		} else {
			j = rand.Intn(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns one card from the end of the deck.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, nil
}

// DrawN draws n cards from the deck.
func (d *Deck) DrawN(n int) ([]Card, error) {
	cards := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		card, err := d.Draw()
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}
