package game

// Confirmation barrier: after a hand concludes the next one is held
// back until every player with a positive stack has acknowledged the
// result. There is deliberately no timeout here; an unresponsive
// player stalls the table until they disconnect, which releases their
// slot in the barrier.

// AwaitingConfirmation reports whether the table is holding for
// result confirmations.
func (t *Table) AwaitingConfirmation() bool {
	return t.awaitingConfirm
}

// LastResult returns the most recent hand result while the table is
// awaiting confirmation.
func (t *Table) LastResult() *HandResult {
	if t.hand == nil {
		return nil
	}
	return t.hand.Results
}

// PendingConfirmations lists the solvent players whose acknowledgement
// the barrier is still waiting on.
func (t *Table) PendingConfirmations() []string {
	if !t.awaitingConfirm {
		return nil
	}
	var pending []string
	for _, p := range t.players {
		if p.Chips > 0 && !t.confirmed[p.ID] {
			pending = append(pending, p.ID)
		}
	}
	return pending
}

// ConfirmResult records a player's acknowledgement of the hand result.
// Confirmations are idempotent per player. Once every solvent player
// has confirmed, the dealer button rotates, busted players are dropped
// and the next hand starts; the returned bool reports whether it did.
// With fewer than two solvent players left the table goes idle.
func (t *Table) ConfirmResult(playerID string) (bool, error) {
	if !t.awaitingConfirm {
		return false, ErrNotAwaitingConfirmation
	}

	found := false
	for _, p := range t.players {
		if p.ID == playerID {
			found = true
			break
		}
	}
	if !found {
		return false, ErrUnknownPlayer
	}

	t.confirmed[playerID] = true
	return t.checkConfirmations(), nil
}

// checkConfirmations tests the barrier and, when satisfied, retires
// the hand and starts the next one.
func (t *Table) checkConfirmations() bool {
	if !t.awaitingConfirm {
		return false
	}

	for _, p := range t.players {
		if p.Chips > 0 && !t.confirmed[p.ID] {
			return false
		}
	}

	t.awaitingConfirm = false
	t.confirmed = nil
	t.hand = nil

	// Busted players leave the table; the button moves one seat.
	solvent := t.players[:0]
	for _, p := range t.players {
		if p.Chips > 0 {
			solvent = append(solvent, p)
		} else {
			t.logger.Info("player busted", "player", p.ID)
		}
	}
	t.players = solvent

	if len(t.players) < 2 {
		t.logger.Info("not enough solvent players, table idle")
		return false
	}

	t.dealer = (t.dealer + 1) % len(t.players)
	if err := t.StartHand(); err != nil {
		t.logger.Error("failed to start next hand", "error", err)
		return false
	}
	return true
}
