package game

import "github.com/cardroom/holdem/poker"

// Player represents a seat in a single hand. Bet is the contribution
// to the current betting round and resets each street; TotalBet is the
// cumulative contribution for the whole hand and feeds side-pot math.
type Player struct {
	ID        string
	Name      string
	Seat      int
	Chips     int
	HoleCards []poker.Card
	Folded    bool
	AllIn     bool
	Bet       int
	TotalBet  int

	// Acted is the round-completion flag, cleared when a raise reopens
	// the action. ActedThisRound tracks voluntary actions only: posting
	// a blind does not set it, which is what gives the big blind its
	// preflop option.
	Acted          bool
	ActedThisRound bool
}

// CanAct returns true if the player is still obliged to act in a
// betting round.
func (p *Player) CanAct() bool {
	return !p.Folded && !p.AllIn && p.Chips > 0
}

// pay moves up to amount chips into the player's bet, marking them
// all-in if it consumes the stack. Returns the amount actually paid.
func (p *Player) pay(amount int) int {
	if amount > p.Chips {
		amount = p.Chips
	}
	p.Chips -= amount
	p.Bet += amount
	p.TotalBet += amount
	if p.Chips == 0 {
		p.AllIn = true
	}
	return amount
}

// markActed sets both acted flags after a voluntary action.
func (p *Player) markActed() {
	p.Acted = true
	p.ActedThisRound = true
}
