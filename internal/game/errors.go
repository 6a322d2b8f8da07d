package game

import "errors"

// Validation rejections. Each leaves the hand state untouched and is
// reported only to the acting player, never broadcast.
var (
	ErrUnknownPlayer            = errors.New("unknown player")
	ErrNotYourTurn              = errors.New("not your turn")
	ErrAlreadyFolded            = errors.New("player has already folded")
	ErrAlreadyAllIn             = errors.New("player is all-in and cannot act")
	ErrIllegalCheck             = errors.New("cannot check facing a bet")
	ErrNothingToCall            = errors.New("nothing to call, check instead")
	ErrInvalidRaiseAmount       = errors.New("raise amount must be a positive integer")
	ErrRaiseTooSmall            = errors.New("raise below minimum increment")
	ErrInsufficientChipsToRaise = errors.New("not enough chips to raise, call or go all-in instead")
	ErrNotAwaitingConfirmation  = errors.New("no hand result awaiting confirmation")
	ErrStaleAction              = errors.New("stale action sequence")
	ErrHandInProgress           = errors.New("hand already in progress")
	ErrNoHandInProgress         = errors.New("no hand in progress")
	ErrNotEnoughPlayers         = errors.New("need at least two players with chips")
	ErrTableFull                = errors.New("table is full")
	ErrSeatTaken                = errors.New("player already seated")
)
