package game

import (
	"math/rand"

	"github.com/charmbracelet/log"
)

// TablePlayer is a seated player whose chip stack carries across
// hands.
type TablePlayer struct {
	ID    string
	Name  string
	Chips int
}

// Table owns the hand lifecycle for one room: the roster of seated
// players, the dealer button, the live HandState and the post-hand
// confirmation barrier. All methods must be called from a single
// serialized event sequence; the table performs no locking of its own.
type Table struct {
	logger     *log.Logger
	rng        *rand.Rand
	smallBlind int
	bigBlind   int
	maxSeats   int

	players []*TablePlayer
	dealer  int
	hand    *HandState
	handNum int

	awaitingConfirm bool
	confirmed       map[string]bool
}

// NewTable creates an empty table.
func NewTable(logger *log.Logger, rng *rand.Rand, smallBlind, bigBlind, maxSeats int) *Table {
	return &Table{
		logger:     logger.WithPrefix("table"),
		rng:        rng,
		smallBlind: smallBlind,
		bigBlind:   bigBlind,
		maxSeats:   maxSeats,
	}
}

// AddPlayer seats a player. Players joining mid-hand are dealt in from
// the next hand.
func (t *Table) AddPlayer(id, name string, chips int) error {
	if len(t.players) >= t.maxSeats {
		return ErrTableFull
	}
	for _, p := range t.players {
		if p.ID == id {
			return ErrSeatTaken
		}
	}
	t.players = append(t.players, &TablePlayer{ID: id, Name: name, Chips: chips})
	return nil
}

// Players returns the seated players in seat order.
func (t *Table) Players() []*TablePlayer {
	return t.players
}

// Hand returns the live hand, or nil between hands.
func (t *Table) Hand() *HandState {
	return t.hand
}

// HandNum returns the number of hands started at this table.
func (t *Table) HandNum() int {
	return t.handNum
}

// StartHand deals a new hand for every solvent seated player.
func (t *Table) StartHand() error {
	if t.hand != nil || t.awaitingConfirm {
		return ErrHandInProgress
	}

	seats := make([]Seat, 0, len(t.players))
	for _, p := range t.players {
		if p.Chips > 0 {
			seats = append(seats, Seat{ID: p.ID, Name: p.Name, Chips: p.Chips})
		}
	}
	if len(seats) < 2 {
		return ErrNotEnoughPlayers
	}

	hand, err := NewHand(t.rng, seats, t.dealer, t.smallBlind, t.bigBlind)
	if err != nil {
		return err
	}

	t.hand = hand
	t.handNum++
	t.logger.Info("hand started",
		"hand", t.handNum,
		"players", len(seats),
		"dealer", hand.Dealer,
		"smallBlind", t.smallBlind,
		"bigBlind", t.bigBlind)

	// Blinds alone can run the hand straight to showdown.
	if hand.Complete() {
		t.finishHand()
	}
	return nil
}

// ApplyAction routes a player action to the live hand. seq must match
// the hand's current action sequence; submissions against an outdated
// broadcast are rejected without mutating state.
func (t *Table) ApplyAction(playerID string, action ActionType, amount int, seq uint64) error {
	if t.hand == nil || t.awaitingConfirm {
		return ErrNoHandInProgress
	}
	if seq != t.hand.Seq {
		return ErrStaleAction
	}

	if err := t.hand.ApplyAction(playerID, action, amount); err != nil {
		return err
	}

	if t.hand.Complete() {
		t.finishHand()
	}
	return nil
}

// TimeoutFold force-folds the seat to act if the armed sequence still
// matches the hand. A stale fire, racing an action that already
// landed, is a no-op. Returns whether a fold was applied.
func (t *Table) TimeoutFold(seq uint64) bool {
	if t.hand == nil || t.awaitingConfirm || t.hand.Complete() {
		return false
	}
	if seq != t.hand.Seq || t.hand.ToAct < 0 {
		return false
	}

	playerID := t.hand.Players[t.hand.ToAct].ID
	t.logger.Info("action timeout, folding", "player", playerID, "seq", seq)
	if err := t.hand.ForceFold(playerID); err != nil {
		t.logger.Error("timeout fold failed", "player", playerID, "error", err)
		return false
	}

	if t.hand.Complete() {
		t.finishHand()
	}
	return true
}

// OnDisconnect folds the player's live hand, releases their seat and,
// if the table is waiting on confirmations, drops them from the
// barrier.
func (t *Table) OnDisconnect(playerID string) {
	if t.hand != nil && !t.hand.Complete() {
		if err := t.hand.ForceFold(playerID); err == nil {
			t.logger.Info("disconnected player folded", "player", playerID)
			if t.hand.Complete() {
				t.finishHand()
			}
		}
	}

	for i, p := range t.players {
		if p.ID == playerID {
			t.players = append(t.players[:i], t.players[i+1:]...)
			break
		}
	}

	if t.awaitingConfirm {
		delete(t.confirmed, playerID)
		t.checkConfirmations()
	}
}

// finishHand copies final stacks back to the roster and arms the
// confirmation barrier.
func (t *Table) finishHand() {
	result := t.hand.Results
	for _, hp := range t.hand.Players {
		for _, tp := range t.players {
			if tp.ID == hp.ID {
				tp.Chips = hp.Chips
				break
			}
		}
	}

	t.logger.Info("hand complete",
		"hand", t.handNum,
		"pot", result.TotalPot,
		"tiers", len(result.Tiers),
		"showdown", len(result.Revealed) > 0)

	t.awaitingConfirm = true
	t.confirmed = make(map[string]bool)
}
