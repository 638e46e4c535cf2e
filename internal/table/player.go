package table

import "github.com/lox/pokerroom/internal/deck"

// State is a player's lifecycle state at the table
type State int

const (
	// StateNone is the zero value, used for "no deferred state pending".
	StateNone State = iota
	StateWatching
	StateWaitingForBigBlind
	StateWaitingForTurn
	StateCurrentTurn
	StateChecked
	StateFolded
	StateAllIn
	StateSittingOut
	StatePostingBigBlind
	StateWaitingForHand
	StateBusted
)

// String returns the wire name of a state
func (s State) String() string {
	switch s {
	case StateWatching:
		return "WATCHING"
	case StateWaitingForBigBlind:
		return "WAITING_FOR_BIG_BLIND"
	case StateWaitingForTurn:
		return "WAITING_FOR_TURN"
	case StateCurrentTurn:
		return "CURRENT_TURN"
	case StateChecked:
		return "CHECKED"
	case StateFolded:
		return "FOLDED"
	case StateAllIn:
		return "ALL_IN"
	case StateSittingOut:
		return "SITTING_OUT"
	case StatePostingBigBlind:
		return "POSTING_BIG_BLIND"
	case StateWaitingForHand:
		return "WAITING_FOR_HAND"
	case StateBusted:
		return "BUSTED"
	default:
		return "NONE"
	}
}

// Settings holds per-player preferences
type Settings struct {
	AutoMuck bool `json:"autoMuck"`
}

// Player is one participant, seated or spectating. Balance persists across
// hands; HandBalance is the portion still committable this hand and is reset
// from Balance when a hand begins. RoundBet accumulates within one betting
// round, HandBet across the whole hand (side-pot math keys off HandBet).
type Player struct {
	ID          string
	Slot        int // -1 while not seated
	Balance     int
	HandBalance int
	RoundBet    int
	HandBet     int
	Cards       []deck.Card
	Settings    Settings

	state     State
	prevState State

	// nextHandState is a deferred transition applied in bulk when the next
	// hand begins, never mid-hand.
	nextHandState State

	// missedBlind forces a player who skipped a blind while sitting out to
	// post before resuming play.
	missedBlind bool
}

// NewPlayer creates a spectating player
func NewPlayer(id string) *Player {
	return &Player{ID: id, Slot: -1, state: StateWatching}
}

// State returns the player's current lifecycle state
func (p *Player) State() State { return p.state }

// PrevState returns the state the player was in before the last transition
func (p *Player) PrevState() State { return p.prevState }

// SetState transitions the player, recording the prior state
func (p *Player) SetState(s State) {
	if s == p.state {
		return
	}
	p.prevState = p.state
	p.state = s
}

// DeferState schedules a transition that startHand applies before dealing
func (p *Player) DeferState(s State) { p.nextHandState = s }

// PendingState returns the deferred transition, StateNone if there is none
func (p *Player) PendingState() State { return p.nextHandState }

// ApplyPendingState applies the deferred transition, if any. Called exactly
// once per player at the start of each hand.
func (p *Player) ApplyPendingState() {
	if p.nextHandState != StateNone {
		p.SetState(p.nextHandState)
		p.nextHandState = StateNone
	}
}

// Bet commits amount from the player's stack. It fails without mutating
// anything if the amount exceeds the player's hand balance; the caller must
// never ask a player for more than they can commit.
func (p *Player) Bet(amount int) error {
	if amount < 0 || amount > p.HandBalance {
		return ErrInsufficientFunds
	}

	p.Balance -= amount
	p.HandBalance -= amount
	p.RoundBet += amount
	p.HandBet += amount
	return nil
}

// GoAllIn commits the player's entire remaining hand balance, moves them to
// ALL_IN with a deferred return to WAITING_FOR_TURN next hand, and returns
// the amount committed so the caller can update the round's high-water mark.
func (p *Player) GoAllIn() int {
	amount := p.HandBalance
	_ = p.Bet(amount) // cannot fail: amount == HandBalance
	p.SetState(StateAllIn)
	p.DeferState(StateWaitingForTurn)
	return amount
}

// ResetForNewHand rearms the player for a fresh hand: the full balance
// becomes committable again and the previous hand's cards and bets are gone.
func (p *Player) ResetForNewHand() {
	p.HandBalance = p.Balance
	p.RoundBet = 0
	p.HandBet = 0
	p.Cards = nil
}

// ResetForNewRound clears the per-street bet
func (p *Player) ResetForNewRound() {
	p.RoundBet = 0
	if p.state == StateChecked || p.state == StateCurrentTurn {
		p.SetState(StateWaitingForTurn)
	}
}

// InHand reports whether the player was dealt in and has not folded
func (p *Player) InHand() bool {
	switch p.state {
	case StateWaitingForTurn, StateCurrentTurn, StateChecked, StateAllIn:
		return len(p.Cards) > 0
	default:
		return false
	}
}

// CanActThisRound reports whether the player still takes turns this round
func (p *Player) CanActThisRound() bool {
	return p.InHand() && p.state != StateAllIn
}

// Folded reports whether the player folded this hand
func (p *Player) Folded() bool { return p.state == StateFolded }

// MissedBlind reports whether the player owes a blind before resuming play
func (p *Player) MissedBlind() bool { return p.missedBlind }
