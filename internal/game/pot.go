package game

import (
	"fmt"
	"sort"
)

// PotTier is one slice of the pot with its own eligible-winner set.
// The first tier is the main pot; each higher contribution level adds
// a side pot restricted to the players who covered it.
type PotTier struct {
	Label    string
	Amount   int
	Eligible []string // player ids in seat order
}

// potTiers partitions the players' total contributions into ordered
// tiers. Folded players' chips count toward tier amounts but folded
// players are never eligible winners. The tier amounts always sum to
// the total pot.
func potTiers(players []*Player) []PotTier {
	total := 0
	var contenders []*Player
	for _, p := range players {
		total += p.TotalBet
		if !p.Folded {
			contenders = append(contenders, p)
		}
	}

	if total == 0 {
		return nil
	}

	// A lone contender takes everything as one tier.
	if len(contenders) == 1 {
		return []PotTier{{
			Label:    "main pot",
			Amount:   total,
			Eligible: []string{contenders[0].ID},
		}}
	}

	// Distinct contribution levels among contenders, ascending.
	levelSet := make(map[int]bool)
	for _, p := range contenders {
		if p.TotalBet > 0 {
			levelSet[p.TotalBet] = true
		}
	}
	levels := make([]int, 0, len(levelSet))
	for level := range levelSet {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	var tiers []PotTier
	prev := 0
	allocated := 0
	for _, level := range levels {
		tier := PotTier{}
		// Every player contributes the slice of their total between
		// the previous level and this one, folded or not.
		for _, p := range players {
			tier.Amount += clamp(p.TotalBet, level) - clamp(p.TotalBet, prev)
		}
		for _, p := range contenders {
			if p.TotalBet >= level {
				tier.Eligible = append(tier.Eligible, p.ID)
			}
		}
		if tier.Amount > 0 {
			tiers = append(tiers, tier)
			allocated += tier.Amount
		}
		prev = level
	}

	// Chips from folded players above the top contender level have no
	// tier of their own; they sweeten the last pot.
	if residue := total - allocated; residue > 0 && len(tiers) > 0 {
		tiers[len(tiers)-1].Amount += residue
	}

	for i := range tiers {
		if i == 0 {
			tiers[i].Label = "main pot"
		} else {
			tiers[i].Label = fmt.Sprintf("side pot %d", i)
		}
	}
	return tiers
}

func clamp(v, max int) int {
	if v > max {
		return max
	}
	return v
}

// distributeTier splits a tier among its winners: equal floor shares,
// then the remainder one chip at a time in seat order clockwise from
// the dealer. Returns the award per winner, aligned with winners.
func distributeTier(amount int, winners []*Player, dealer, numSeats int) []int {
	share := amount / len(winners)
	remainder := amount % len(winners)

	// Seat order relative to the dealer: the winner immediately
	// clockwise of the dealer receives the first extra chip.
	order := make([]int, len(winners))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return seatDistance(winners[order[a]].Seat, dealer, numSeats) <
			seatDistance(winners[order[b]].Seat, dealer, numSeats)
	})

	awards := make([]int, len(winners))
	for i := range awards {
		awards[i] = share
	}
	for i := 0; i < remainder; i++ {
		awards[order[i]]++
	}
	return awards
}

func seatDistance(seat, dealer, numSeats int) int {
	return ((seat - dealer - 1) + numSeats) % numSeats
}
