package game

import (
	"math/rand"

	"github.com/cardroom/holdem/poker"
)

// Seat describes a player entering a hand with their carried-over
// chip stack.
type Seat struct {
	ID    string
	Name  string
	Chips int
}

// HandState is the state of a single hand from dealing through
// showdown. It is mutated only through ApplyAction and ForceFold and
// owned by exactly one table's event sequence.
type HandState struct {
	Players    []*Player
	Dealer     int
	Stage      Stage
	Deck       *poker.Deck
	Community  []poker.Card
	SmallBlind int
	BigBlind   int
	Betting    *BettingRound

	// ToAct is the seat obliged to act, or -1 when no further action
	// is possible (all remaining contenders are all-in).
	ToAct int

	// Seq increments on every accepted mutation. Stale client
	// submissions and late timer fires are rejected against it.
	Seq uint64

	// Results is set once, when the hand concludes.
	Results *HandResult
}

// HandResult records the outcome of a concluded hand.
type HandResult struct {
	TotalPot int
	Tiers    []PotTier
	Awards   []Award
	Revealed []ShowdownHand // empty when the hand ended by fold-down
}

// Award is one winner's share of one pot tier.
type Award struct {
	PlayerID string
	Tier     string
	Amount   int
}

// ShowdownHand is a revealed hand at showdown.
type ShowdownHand struct {
	PlayerID string
	Cards    []poker.Card
	Rank     poker.HandRank
}

// HandOption configures a HandState during creation.
type HandOption func(*handConfig)

type handConfig struct {
	deck *poker.Deck
}

// WithDeck sets a specific pre-stacked deck for deterministic tests.
func WithDeck(deck *poker.Deck) HandOption {
	return func(c *handConfig) {
		c.deck = deck
	}
}

// NewHand deals a new hand: builds and shuffles the deck, posts
// blinds, deals hole cards and determines the first seat to act.
// Heads-up the dealer posts the small blind and opens preflop; with
// three or more players the two seats after the dealer post the
// blinds and the seat after the big blind opens.
func NewHand(rng *rand.Rand, seats []Seat, dealer, smallBlind, bigBlind int, opts ...HandOption) (*HandState, error) {
	if len(seats) < 2 {
		return nil, ErrNotEnoughPlayers
	}

	cfg := &handConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	players := make([]*Player, len(seats))
	for i, s := range seats {
		players[i] = &Player{
			ID:    s.ID,
			Name:  s.Name,
			Seat:  i,
			Chips: s.Chips,
		}
	}

	deck := cfg.deck
	if deck == nil {
		deck = poker.NewDeck(rng)
	}

	h := &HandState{
		Players:    players,
		Dealer:     dealer % len(players),
		Stage:      Preflop,
		Deck:       deck,
		SmallBlind: smallBlind,
		BigBlind:   bigBlind,
		Betting:    NewBettingRound(bigBlind),
		ToAct:      -1,
	}

	h.postBlinds()
	if err := h.dealHoleCards(); err != nil {
		return nil, err
	}

	var opener int
	if len(players) == 2 {
		opener = h.Dealer
	} else {
		opener = (h.Dealer + 3) % len(players)
	}
	h.ToAct = h.nextEligible(opener)

	// Blinds can settle the round before any action: every stack
	// all-in, or a lone bettable player whose blind already covers the
	// big blind. Run the board out immediately.
	if h.ToAct == -1 || h.isRoundComplete() {
		if err := h.advanceStage(); err != nil {
			return nil, err
		}
	}

	return h, nil
}

func (h *HandState) postBlinds() {
	n := len(h.Players)

	var sbPos, bbPos int
	if n == 2 {
		// Heads-up: the dealer posts the small blind.
		sbPos = h.Dealer
		bbPos = (h.Dealer + 1) % n
	} else {
		sbPos = (h.Dealer + 1) % n
		bbPos = (h.Dealer + 2) % n
	}

	// A short stack posts what it can and is all-in.
	h.Players[sbPos].pay(h.SmallBlind)
	h.Players[bbPos].pay(h.BigBlind)

	h.Betting.CurrentBet = h.BigBlind
}

func (h *HandState) dealHoleCards() error {
	for _, p := range h.Players {
		cards, err := h.Deck.DrawN(2)
		if err != nil {
			return err
		}
		p.HoleCards = cards
	}
	return nil
}

// Pot returns the cumulative pot, always the sum of the players'
// total contributions.
func (h *HandState) Pot() int {
	pot := 0
	for _, p := range h.Players {
		pot += p.TotalBet
	}
	return pot
}

// PotTiers returns the current per-tier pot breakdown.
func (h *HandState) PotTiers() []PotTier {
	return potTiers(h.Players)
}

// Complete returns true once the hand has concluded.
func (h *HandState) Complete() bool {
	return h.Results != nil
}

// ValidActions returns the legal action set for the seat to act.
func (h *HandState) ValidActions() []ValidAction {
	if h.ToAct < 0 || h.Complete() {
		return nil
	}
	return h.Betting.ValidActions(h.Players[h.ToAct])
}

// ApplyAction validates and applies a single player action. For a
// raise, amount is the increment above the current call amount.
// Rejections leave the state untouched.
func (h *HandState) ApplyAction(playerID string, action ActionType, amount int) error {
	idx := h.playerIndex(playerID)
	if idx < 0 {
		return ErrUnknownPlayer
	}
	if h.Complete() || idx != h.ToAct {
		return ErrNotYourTurn
	}

	p := h.Players[idx]
	if p.Folded {
		return ErrAlreadyFolded
	}
	if p.AllIn || p.Chips == 0 {
		return ErrAlreadyAllIn
	}

	switch action {
	case Fold:
		p.Folded = true
		p.markActed()

	case Check:
		if p.Bet != h.Betting.CurrentBet {
			return ErrIllegalCheck
		}
		p.markActed()

	case Call:
		if h.Betting.CurrentBet <= p.Bet {
			return ErrNothingToCall
		}
		p.pay(h.Betting.CurrentBet - p.Bet)
		p.markActed()

	case Raise:
		if amount <= 0 || amount > raiseCeiling {
			return ErrInvalidRaiseAmount
		}
		callNeeded := h.Betting.CurrentBet - p.Bet
		if p.Chips <= callNeeded {
			return ErrInsufficientChipsToRaise
		}
		if p.Chips < callNeeded+amount {
			// All-in raise of the full remaining stack. Only a full
			// minimum increment reopens the action for players who
			// already acted; a short all-in does not.
			increment := p.Chips - callNeeded
			p.pay(p.Chips)
			h.Betting.CurrentBet = p.Bet
			if increment >= h.Betting.MinRaise {
				h.Betting.MinRaise = increment
				h.reopenAction(idx)
			}
		} else {
			if amount < h.Betting.MinRaise {
				return ErrRaiseTooSmall
			}
			p.pay(callNeeded + amount)
			h.Betting.CurrentBet = p.Bet
			h.Betting.MinRaise = amount
			h.reopenAction(idx)
		}
		p.markActed()
	}

	h.Seq++
	return h.advanceTurn()
}

// ForceFold folds a seat immediately, regardless of turn order. Used
// for action timeouts and disconnects; the round-completion logic
// runs exactly as for a submitted fold.
func (h *HandState) ForceFold(playerID string) error {
	idx := h.playerIndex(playerID)
	if idx < 0 {
		return ErrUnknownPlayer
	}

	p := h.Players[idx]
	if p.Folded || h.Complete() {
		return nil
	}

	p.Folded = true
	p.markActed()
	h.Seq++

	if idx == h.ToAct {
		return h.advanceTurn()
	}
	if h.isRoundComplete() {
		return h.advanceStage()
	}
	return nil
}

// reopenAction clears the acted flags of every other player still
// able to act, obliging them to respond to a raise.
func (h *HandState) reopenAction(raiser int) {
	for i, p := range h.Players {
		if i == raiser || !p.CanAct() {
			continue
		}
		p.Acted = false
		p.ActedThisRound = false
	}
}

// advanceTurn moves the action to the next eligible seat, then
// advances the stage if the betting round is over.
func (h *HandState) advanceTurn() error {
	h.ToAct = h.nextEligible(h.ToAct + 1)
	if h.ToAct == -1 || h.isRoundComplete() {
		return h.advanceStage()
	}
	return nil
}

// nextEligible scans forward from the given seat, wrapping, and
// returns the first player able to act, or -1 if none remain.
func (h *HandState) nextEligible(from int) int {
	n := len(h.Players)
	for i := 0; i < n; i++ {
		pos := (from + i) % n
		if h.Players[pos].CanAct() {
			return pos
		}
	}
	return -1
}

// isRoundComplete reports whether the current betting round is over.
// Preflop the voluntary-action flag is consulted instead of the
// carried acted flag: blinds are posted without counting as an
// action, which is what gives the big blind its option.
func (h *HandState) isRoundComplete() bool {
	contenders := 0
	for _, p := range h.Players {
		if !p.Folded {
			contenders++
		}
	}
	if contenders <= 1 {
		return true
	}

	var active []*Player
	for _, p := range h.Players {
		if p.CanAct() {
			active = append(active, p)
		}
	}

	if len(active) == 0 {
		return true
	}
	if len(active) == 1 {
		// The last player with chips only owes action while their bet
		// trails the current bet.
		return active[0].Bet == h.Betting.CurrentBet
	}

	for _, p := range active {
		if p.Bet != h.Betting.CurrentBet {
			return false
		}
		if h.Stage == Preflop {
			if !p.ActedThisRound {
				return false
			}
		} else if !p.Acted {
			return false
		}
	}
	return true
}

// advanceStage moves the hand to the next street, dealing community
// cards and resetting the betting round. When no further betting is
// possible it keeps dealing straight through to showdown.
func (h *HandState) advanceStage() error {
	for {
		if h.Complete() {
			return nil
		}

		contenders := 0
		for _, p := range h.Players {
			if !p.Folded {
				contenders++
			}
		}
		if contenders <= 1 {
			h.finishFoldWin()
			return nil
		}

		if h.Stage == River {
			h.Stage = Showdown
			h.ToAct = -1
			return h.showdown()
		}

		for _, p := range h.Players {
			p.Bet = 0
			p.Acted = false
			p.ActedThisRound = false
		}
		h.Betting.reset()

		var deal int
		switch h.Stage {
		case Preflop:
			h.Stage = Flop
			deal = 3
		case Flop:
			h.Stage = Turn
			deal = 1
		case Turn:
			h.Stage = River
			deal = 1
		}
		cards, err := h.Deck.DrawN(deal)
		if err != nil {
			return err
		}
		h.Community = append(h.Community, cards...)

		// With at most one contender still holding chips there is no
		// betting to solicit on this street.
		canAct := 0
		for _, p := range h.Players {
			if p.CanAct() {
				canAct++
			}
		}
		if canAct <= 1 {
			h.ToAct = -1
			continue
		}

		h.ToAct = h.nextEligible(h.Dealer + 1)
		if h.ToAct == -1 {
			continue
		}
		return nil
	}
}

// finishFoldWin awards the entire pot to the lone remaining player
// without evaluating hands or revealing cards.
func (h *HandState) finishFoldWin() {
	var survivor *Player
	for _, p := range h.Players {
		if !p.Folded {
			survivor = p
			break
		}
	}

	pot := h.Pot()
	survivor.Chips += pot
	h.ToAct = -1
	h.Results = &HandResult{
		TotalPot: pot,
		Tiers: []PotTier{{
			Label:    "main pot",
			Amount:   pot,
			Eligible: []string{survivor.ID},
		}},
		Awards: []Award{{PlayerID: survivor.ID, Tier: "main pot", Amount: pot}},
	}
}

// showdown evaluates every contender, allocates the pot tiers and
// credits each tier's winners.
func (h *HandState) showdown() error {
	ranks := make(map[string]poker.HandRank)
	for _, p := range h.Players {
		if !p.Folded {
			ranks[p.ID] = poker.Evaluate(p.HoleCards, h.Community)
		}
	}

	tiers := potTiers(h.Players)
	result := &HandResult{
		TotalPot: h.Pot(),
		Tiers:    tiers,
	}

	for _, tier := range tiers {
		var winners []*Player
		var best poker.HandRank
		for _, id := range tier.Eligible {
			p := h.Players[h.playerIndex(id)]
			rank := ranks[id]
			if len(winners) == 0 {
				winners = []*Player{p}
				best = rank
				continue
			}
			switch poker.Compare(rank, best) {
			case 1:
				winners = []*Player{p}
				best = rank
			case 0:
				winners = append(winners, p)
			}
		}

		awards := distributeTier(tier.Amount, winners, h.Dealer, len(h.Players))
		for i, w := range winners {
			w.Chips += awards[i]
			result.Awards = append(result.Awards, Award{
				PlayerID: w.ID,
				Tier:     tier.Label,
				Amount:   awards[i],
			})
		}
	}

	for _, p := range h.Players {
		if !p.Folded {
			result.Revealed = append(result.Revealed, ShowdownHand{
				PlayerID: p.ID,
				Cards:    p.HoleCards,
				Rank:     ranks[p.ID],
			})
		}
	}

	h.Results = result
	return nil
}

func (h *HandState) playerIndex(playerID string) int {
	for i, p := range h.Players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}
