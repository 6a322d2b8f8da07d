package poker

import "sort"

// Category enumerates hand categories ordered from weakest to strongest.
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns a human-readable category description.
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// HandRank is the score of a 5-card hand: a category plus a tiebreak
// sequence compared lexicographically, highest first, within equal
// categories.
type HandRank struct {
	Category  Category
	Tiebreaks []int
}

// String returns a human-readable hand description.
func (hr HandRank) String() string {
	return hr.Category.String()
}

// Compare returns -1 if a is weaker than b, 1 if stronger, 0 on an
// exact tie. A royal flush carries no extra weight over the top
// straight flush beyond its category; it is simply the top one.
func Compare(a, b HandRank) int {
	if a.Category != b.Category {
		if a.Category < b.Category {
			return -1
		}
		return 1
	}
	for i := 0; i < len(a.Tiebreaks) && i < len(b.Tiebreaks); i++ {
		if a.Tiebreaks[i] != b.Tiebreaks[i] {
			if a.Tiebreaks[i] < b.Tiebreaks[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Evaluate returns the best achievable 5-card ranking from the given
// hole and community cards. It forms every 5-card subset and keeps the
// maximum. The engine only calls this with exactly 7 cards at
// showdown; fewer than 5 total cards is a programming error.
func Evaluate(hole, community []Card) HandRank {
	cards := make([]Card, 0, len(hole)+len(community))
	cards = append(cards, hole...)
	cards = append(cards, community...)

	if len(cards) < 5 {
		panic("poker: evaluate requires at least 5 cards")
	}

	var best HandRank
	first := true
	n := len(cards)
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						rank := rank5([5]Card{cards[a], cards[b], cards[c], cards[d], cards[e]})
						if first || Compare(rank, best) > 0 {
							best = rank
							first = false
						}
					}
				}
			}
		}
	}
	return best
}

// rank5 scores a single 5-card hand.
func rank5(cards [5]Card) HandRank {
	values := make([]int, 5)
	counts := make(map[int]int, 5)
	flush := true
	for i, c := range cards {
		values[i] = c.Rank.Value()
		counts[values[i]]++
		if c.Suit != cards[0].Suit {
			flush = false
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))

	straightHigh := straightHighCard(values, counts)

	if flush && straightHigh > 0 {
		if straightHigh == Ace.Value() {
			return HandRank{Category: RoyalFlush, Tiebreaks: []int{straightHigh}}
		}
		return HandRank{Category: StraightFlush, Tiebreaks: []int{straightHigh}}
	}

	// Group ranks by multiplicity, higher counts first, then higher
	// ranks. This yields the tiebreak order for paired hands directly.
	type group struct {
		value int
		count int
	}
	groups := make([]group, 0, len(counts))
	for v, n := range counts {
		groups = append(groups, group{value: v, count: n})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].value > groups[j].value
	})

	tiebreaks := make([]int, 0, len(groups))
	for _, g := range groups {
		tiebreaks = append(tiebreaks, g.value)
	}

	switch {
	case groups[0].count == 4:
		return HandRank{Category: FourOfAKind, Tiebreaks: tiebreaks}
	case groups[0].count == 3 && groups[1].count == 2:
		return HandRank{Category: FullHouse, Tiebreaks: tiebreaks}
	case flush:
		return HandRank{Category: Flush, Tiebreaks: values}
	case straightHigh > 0:
		return HandRank{Category: Straight, Tiebreaks: []int{straightHigh}}
	case groups[0].count == 3:
		return HandRank{Category: ThreeOfAKind, Tiebreaks: tiebreaks}
	case groups[0].count == 2 && groups[1].count == 2:
		return HandRank{Category: TwoPair, Tiebreaks: tiebreaks}
	case groups[0].count == 2:
		return HandRank{Category: OnePair, Tiebreaks: tiebreaks}
	default:
		return HandRank{Category: HighCard, Tiebreaks: values}
	}
}

// straightHighCard returns the high card of a straight formed by the
// given descending values, or 0 if they do not form one. The wheel
// (A-5-4-3-2) scores with high card 5, not 14.
func straightHighCard(values []int, counts map[int]int) int {
	if len(counts) != 5 {
		return 0
	}
	if values[0]-values[4] == 4 {
		return values[0]
	}
	// Wheel: ace plays low.
	if values[0] == Ace.Value() && values[1] == 5 && values[4] == 2 {
		return 5
	}
	return 0
}
