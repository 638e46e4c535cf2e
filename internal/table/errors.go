package table

import (
	"errors"
	"fmt"
)

// ErrIllegalAction is the base for every synchronously rejected player
// action. Transports match on it with errors.Is and surface the message to
// the acting session only; no engine state changes when it is returned.
var ErrIllegalAction = errors.New("illegal action")

var (
	ErrNotYourTurn       = fmt.Errorf("%w: not this player's turn", ErrIllegalAction)
	ErrInsufficientFunds = fmt.Errorf("%w: insufficient funds", ErrIllegalAction)
	ErrRaiseTooSmall     = fmt.Errorf("%w: raise below minimum", ErrIllegalAction)
	ErrRaiseLimitReached = fmt.Errorf("%w: raise limit reached for this round", ErrIllegalAction)
	ErrSeatOccupied      = fmt.Errorf("%w: seat already occupied", ErrIllegalAction)
	ErrNotSpectator      = fmt.Errorf("%w: player is not spectating", ErrIllegalAction)
	ErrNoSuchSeat        = fmt.Errorf("%w: no such seat", ErrIllegalAction)
	ErrUnknownPlayer     = fmt.Errorf("%w: unknown player", ErrIllegalAction)
	ErrAlreadyJoined     = fmt.Errorf("%w: player already at table", ErrIllegalAction)
	ErrBuyInOutOfRange   = fmt.Errorf("%w: buy-in outside table bounds", ErrIllegalAction)
	ErrCannotCheck       = fmt.Errorf("%w: cannot check facing a bet", ErrIllegalAction)
	ErrNoHandInProgress  = fmt.Errorf("%w: no hand in progress", ErrIllegalAction)
)

// ErrInvariant marks violations of the engine's internal invariants (bad pot
// math, evaluator misuse). The current hand is aborted rather than risking a
// misdistribution; the ledger is never updated from a violating settlement.
var ErrInvariant = errors.New("invariant violation")
