package game

import (
	"encoding/json"
	"fmt"
)

// Stage represents the phase of community-card revelation. It only
// advances forward within one hand.
type Stage int

const (
	Preflop Stage = iota
	Flop
	Turn
	River
	Showdown
)

func (s Stage) String() string {
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[s]
}

// ActionType represents a player action
type ActionType int

const (
	Fold ActionType = iota
	Check
	Call
	Raise
)

func (a ActionType) String() string {
	return [...]string{"fold", "check", "call", "raise"}[a]
}

// MarshalJSON encodes actions by name, matching what ParseAction
// accepts on the way in.
func (a ActionType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON decodes actions by name, the inverse of MarshalJSON.
func (a *ActionType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, ok := ParseAction(s)
	if !ok {
		return fmt.Errorf("unknown action %q", s)
	}
	*a = parsed
	return nil
}

// ParseAction converts a wire action name to an ActionType.
func ParseAction(s string) (ActionType, bool) {
	switch s {
	case "fold":
		return Fold, true
	case "check":
		return Check, true
	case "call":
		return Call, true
	case "raise":
		return Raise, true
	default:
		return 0, false
	}
}

// raiseCeiling caps raise increments before any other validation; it
// is a sanity bound against absurd client input, not a game rule.
const raiseCeiling = 1_000_000_000

// BettingRound holds the per-street betting state. CurrentBet is the
// highest Bet among all players this street; MinRaise is the minimum
// legal raise increment, reset to the big blind on every new street.
type BettingRound struct {
	CurrentBet int
	MinRaise   int
	BigBlind   int
}

// NewBettingRound creates betting state for a fresh hand.
func NewBettingRound(bigBlind int) *BettingRound {
	return &BettingRound{
		MinRaise: bigBlind,
		BigBlind: bigBlind,
	}
}

// reset prepares the betting state for a new street.
func (br *BettingRound) reset() {
	br.CurrentBet = 0
	br.MinRaise = br.BigBlind
}

// ValidAction describes one legal action for the player to act,
// advertised to clients so they can render controls without
// re-deriving betting rules.
type ValidAction struct {
	Action    ActionType `json:"action"`
	CallCost  int        `json:"callCost,omitempty"`
	MinRaise  int        `json:"minRaise,omitempty"`
	AllInOnly bool       `json:"allInOnly,omitempty"`
}

// ValidActions returns the legal action set for a player facing the
// current betting state.
func (br *BettingRound) ValidActions(p *Player) []ValidAction {
	if !p.CanAct() {
		return nil
	}

	actions := []ValidAction{{Action: Fold}}
	toCall := br.CurrentBet - p.Bet

	if toCall == 0 {
		actions = append(actions, ValidAction{Action: Check})
	} else {
		call := ValidAction{Action: Call, CallCost: toCall}
		if toCall >= p.Chips {
			call.CallCost = p.Chips
			call.AllInOnly = true
		}
		actions = append(actions, call)
	}

	// A raise is possible whenever chips remain beyond the call; a
	// short stack raises all-in below the minimum increment.
	if p.Chips > toCall {
		raise := ValidAction{Action: Raise, MinRaise: br.MinRaise}
		if p.Chips < toCall+br.MinRaise {
			raise.MinRaise = p.Chips - toCall
			raise.AllInOnly = true
		}
		actions = append(actions, raise)
	}

	return actions
}
