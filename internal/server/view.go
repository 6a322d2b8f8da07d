package server

import (
	"github.com/cardroom/holdem/internal/game"
	"github.com/cardroom/holdem/poker"
)

// CardView is the wire representation of a card.
type CardView struct {
	Suit string `json:"suit"`
	Rank string `json:"rank"`
}

func cardViews(cards []poker.Card) []CardView {
	if len(cards) == 0 {
		return nil
	}
	views := make([]CardView, len(cards))
	for i, c := range cards {
		views[i] = CardView{Suit: c.Suit.Name(), Rank: c.Rank.String()}
	}
	return views
}

// PlayerView is one seat as a given recipient sees it. HoleCards is
// populated only for the recipient's own seat, or for every revealed
// hand once a showdown result is out.
type PlayerView struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Chips     int        `json:"chips"`
	Bet       int        `json:"bet"`
	TotalBet  int        `json:"totalBet"`
	Folded    bool       `json:"folded"`
	AllIn     bool       `json:"allIn"`
	HasCards  bool       `json:"hasCards"`
	HoleCards []CardView `json:"holeCards,omitempty"`
}

// PotTierView is one pot tier on the wire.
type PotTierView struct {
	Label    string   `json:"label"`
	Amount   int      `json:"amount"`
	Eligible []string `json:"eligible"`
}

// AwardView is one pot payout.
type AwardView struct {
	PlayerID string `json:"playerId"`
	Tier     string `json:"tier"`
	Amount   int    `json:"amount"`
}

// RevealedHandView is a hand shown at showdown.
type RevealedHandView struct {
	PlayerID  string     `json:"playerId"`
	Cards     []CardView `json:"cards"`
	Category  string     `json:"category"`
	Tiebreaks []int      `json:"tiebreaks"`
}

// HandResultView is the outcome of a concluded hand.
type HandResultView struct {
	TotalPot int                `json:"totalPot"`
	Tiers    []PotTierView      `json:"tiers"`
	Awards   []AwardView        `json:"awards"`
	Revealed []RevealedHandView `json:"revealed,omitempty"`
}

// GameView is the full game state as projected for one recipient.
type GameView struct {
	RoomCode        string             `json:"roomCode"`
	HandNum         int                `json:"handNum"`
	Stage           string             `json:"stage"`
	Community       []CardView         `json:"community"`
	Pot             int                `json:"pot"`
	Tiers           []PotTierView      `json:"tiers"`
	Players         []PlayerView       `json:"players"`
	ToAct           string             `json:"toAct,omitempty"`
	Seq             uint64             `json:"seq"`
	ValidActions    []game.ValidAction `json:"validActions,omitempty"`
	AwaitingConfirm bool               `json:"awaitingConfirm"`
	PendingConfirm  []string           `json:"pendingConfirm,omitempty"`
	Result          *HandResultView    `json:"result,omitempty"`
}

func potTierViews(tiers []game.PotTier) []PotTierView {
	views := make([]PotTierView, len(tiers))
	for i, tier := range tiers {
		views[i] = PotTierView{Label: tier.Label, Amount: tier.Amount, Eligible: tier.Eligible}
	}
	return views
}

func resultView(result *game.HandResult) *HandResultView {
	if result == nil {
		return nil
	}

	awards := make([]AwardView, len(result.Awards))
	for i, a := range result.Awards {
		awards[i] = AwardView{PlayerID: a.PlayerID, Tier: a.Tier, Amount: a.Amount}
	}

	var revealed []RevealedHandView
	for _, sh := range result.Revealed {
		revealed = append(revealed, RevealedHandView{
			PlayerID:  sh.PlayerID,
			Cards:     cardViews(sh.Cards),
			Category:  sh.Rank.Category.String(),
			Tiebreaks: sh.Rank.Tiebreaks,
		})
	}

	return &HandResultView{
		TotalPot: result.TotalPot,
		Tiers:    potTierViews(result.Tiers),
		Awards:   awards,
		Revealed: revealed,
	}
}

// ProjectGame builds the game view for one recipient. Hole cards other
// than the recipient's own stay hidden until the result reveals them.
func ProjectGame(roomCode string, table *game.Table, recipientID string) *GameView {
	hand := table.Hand()
	if hand == nil {
		return nil
	}

	revealed := make(map[string]bool)
	if hand.Results != nil {
		for _, sh := range hand.Results.Revealed {
			revealed[sh.PlayerID] = true
		}
	}

	players := make([]PlayerView, len(hand.Players))
	for i, p := range hand.Players {
		pv := PlayerView{
			ID:       p.ID,
			Name:     p.Name,
			Chips:    p.Chips,
			Bet:      p.Bet,
			TotalBet: p.TotalBet,
			Folded:   p.Folded,
			AllIn:    p.AllIn,
			HasCards: !p.Folded,
		}
		if p.ID == recipientID || revealed[p.ID] {
			pv.HoleCards = cardViews(p.HoleCards)
		}
		players[i] = pv
	}

	view := &GameView{
		RoomCode:        roomCode,
		HandNum:         table.HandNum(),
		Stage:           hand.Stage.String(),
		Community:       cardViews(hand.Community),
		Pot:             hand.Pot(),
		Tiers:           potTierViews(hand.PotTiers()),
		Players:         players,
		Seq:             hand.Seq,
		AwaitingConfirm: table.AwaitingConfirmation(),
		PendingConfirm:  table.PendingConfirmations(),
		Result:          resultView(hand.Results),
	}

	if !hand.Complete() && hand.ToAct >= 0 {
		actor := hand.Players[hand.ToAct]
		view.ToAct = actor.ID
		if actor.ID == recipientID {
			view.ValidActions = hand.ValidActions()
		}
	}

	return view
}
