package table

import (
	"fmt"
	"strings"
	"time"

	"github.com/lox/pokerroom/internal/deck"
)

// PlayerSnapshot is the serialized form of a player. Cards use compact
// notation ("AsKd"); state names match the wire names.
type PlayerSnapshot struct {
	ID            string   `json:"id"`
	Slot          int      `json:"slot"`
	Balance       int      `json:"balance"`
	HandBalance   int      `json:"handBalance"`
	RoundBet      int      `json:"roundBet"`
	HandBet       int      `json:"handBet"`
	Cards         string   `json:"cards,omitempty"`
	State         string   `json:"state"`
	PrevState     string   `json:"prevState,omitempty"`
	NextHandState string   `json:"nextHandState,omitempty"`
	MissedBlind   bool     `json:"missedBlind,omitempty"`
	Settings      Settings `json:"settings"`
}

// ActionRecord is the serialized form of one accepted action. Timer-generated
// timeouts appear alongside player input so the history reads as the full
// sequence of state transitions.
type ActionRecord struct {
	Type     ActionType `json:"type"`
	PlayerID string     `json:"playerId,omitempty"`
	Slot     int        `json:"slot,omitempty"`
	Value    int        `json:"value,omitempty"`
	Enabled  bool       `json:"enabled,omitempty"`
}

// Snapshot is a complete, serializable copy of a table, including the deck
// order, sufficient to resume a hand mid-turn after a restart.
type Snapshot struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Creator      string        `json:"creator"`
	Variant      Variant       `json:"variant"`
	SmallBlind   int           `json:"smallBlind"`
	BigBlind     int           `json:"bigBlind"`
	MinBuyIn     int           `json:"minBuyIn"`
	MaxBuyIn     int           `json:"maxBuyIn"`
	SeatCount    int           `json:"seatCount"`
	TurnDuration time.Duration `json:"turnDuration"`

	Players []PlayerSnapshot `json:"players"`

	DealerSeat     int  `json:"dealerSeat"`
	SmallBlindSeat int  `json:"smallBlindSeat"`
	BigBlindSeat   int  `json:"bigBlindSeat"`
	HandsPlayed    int  `json:"handsPlayed"`
	HandInProgress bool `json:"handInProgress"`
	Round          int  `json:"round"`
	Raises         int  `json:"raises"`

	Board     string `json:"board,omitempty"`
	DeckOrder string `json:"deckOrder"`
	DeckDealt int    `json:"deckDealt"`

	RoundBet  int            `json:"roundBet"`
	LastRaise int            `json:"lastRaise"`
	TotalPot  int            `json:"totalPot"`
	Ledger    map[string]int `json:"ledger"`

	HandPlayers   []string `json:"handPlayers,omitempty"`
	Current       string   `json:"current,omitempty"`
	LastAggressor string   `json:"lastAggressor,omitempty"`
	PendingShow   []string `json:"pendingShow,omitempty"`

	History []ActionRecord `json:"history,omitempty"`

	TakenAt time.Time `json:"takenAt"`
}

func cardCodes(cards []deck.Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.Code())
	}
	return b.String()
}

func snapshotPlayer(p *Player) PlayerSnapshot {
	return PlayerSnapshot{
		ID:            p.ID,
		Slot:          p.Slot,
		Balance:       p.Balance,
		HandBalance:   p.HandBalance,
		RoundBet:      p.RoundBet,
		HandBet:       p.HandBet,
		Cards:         cardCodes(p.Cards),
		State:         p.state.String(),
		PrevState:     p.prevState.String(),
		NextHandState: p.nextHandState.String(),
		MissedBlind:   p.missedBlind,
		Settings:      p.Settings,
	}
}

// Snapshot captures the whole table under the lock
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		ID:           e.cfg.ID,
		Name:         e.cfg.Name,
		Creator:      e.cfg.Creator,
		Variant:      e.cfg.Variant,
		SmallBlind:   e.cfg.SmallBlind,
		BigBlind:     e.cfg.BigBlind,
		MinBuyIn:     e.cfg.MinBuyIn,
		MaxBuyIn:     e.cfg.MaxBuyIn,
		SeatCount:    e.group.Capacity(),
		TurnDuration: e.cfg.TurnDuration,

		DealerSeat:     e.group.dealer,
		SmallBlindSeat: e.group.smallBlind,
		BigBlindSeat:   e.group.bigBlind,
		HandsPlayed:    e.group.handsPlayed,
		HandInProgress: e.handInProgress,
		Round:          e.round,
		Raises:         e.raises,

		Board:     cardCodes(e.board),
		DeckOrder: cardCodes(e.deck.Order()),
		DeckDealt: e.deck.CardsDealt(),

		RoundBet:  e.bets.roundBet,
		LastRaise: e.bets.lastRaise,
		TotalPot:  e.bets.totalPot,
		Ledger:    e.bets.Ledger(),

		TakenAt: e.clock.Now(),
	}

	for _, p := range e.group.Seated() {
		snap.Players = append(snap.Players, snapshotPlayer(p))
	}
	for _, p := range e.group.Spectators() {
		snap.Players = append(snap.Players, snapshotPlayer(p))
	}

	for _, p := range e.handPlayers {
		snap.HandPlayers = append(snap.HandPlayers, p.ID)
	}
	if e.current != nil {
		snap.Current = e.current.ID
	}
	if e.lastAggressor != nil {
		snap.LastAggressor = e.lastAggressor.ID
	}
	for id := range e.pendingShow {
		snap.PendingShow = append(snap.PendingShow, id)
	}

	for _, a := range e.history {
		snap.History = append(snap.History, ActionRecord{
			Type:     a.Type,
			PlayerID: a.PlayerID,
			Slot:     a.Slot,
			Value:    a.Value,
			Enabled:  a.Enabled,
		})
	}

	return snap
}

func stateFromName(name string) (State, error) {
	switch name {
	case "", "NONE":
		return StateNone, nil
	case "WATCHING":
		return StateWatching, nil
	case "WAITING_FOR_BIG_BLIND":
		return StateWaitingForBigBlind, nil
	case "WAITING_FOR_TURN":
		return StateWaitingForTurn, nil
	case "CURRENT_TURN":
		return StateCurrentTurn, nil
	case "CHECKED":
		return StateChecked, nil
	case "FOLDED":
		return StateFolded, nil
	case "ALL_IN":
		return StateAllIn, nil
	case "SITTING_OUT":
		return StateSittingOut, nil
	case "POSTING_BIG_BLIND":
		return StatePostingBigBlind, nil
	case "WAITING_FOR_HAND":
		return StateWaitingForHand, nil
	case "BUSTED":
		return StateBusted, nil
	default:
		return StateNone, fmt.Errorf("unknown player state %q", name)
	}
}

func restorePlayer(ps PlayerSnapshot) (*Player, error) {
	state, err := stateFromName(ps.State)
	if err != nil {
		return nil, err
	}
	prev, err := stateFromName(ps.PrevState)
	if err != nil {
		return nil, err
	}
	next, err := stateFromName(ps.NextHandState)
	if err != nil {
		return nil, err
	}

	var cards []deck.Card
	if ps.Cards != "" {
		if cards, err = deck.ParseCards(ps.Cards); err != nil {
			return nil, fmt.Errorf("player %s cards: %w", ps.ID, err)
		}
	}

	return &Player{
		ID:            ps.ID,
		Slot:          ps.Slot,
		Balance:       ps.Balance,
		HandBalance:   ps.HandBalance,
		RoundBet:      ps.RoundBet,
		HandBet:       ps.HandBet,
		Cards:         cards,
		Settings:      ps.Settings,
		state:         state,
		prevState:     prev,
		nextHandState: next,
		missedBlind:   ps.MissedBlind,
	}, nil
}

// RestoreEngine rebuilds a table from a snapshot. A hand that was mid-turn
// resumes with a fresh full turn timer for the current player.
func RestoreEngine(snap Snapshot, opts ...Option) (*Engine, error) {
	cfg := Config{
		ID:           snap.ID,
		Name:         snap.Name,
		Creator:      snap.Creator,
		SmallBlind:   snap.SmallBlind,
		BigBlind:     snap.BigBlind,
		MinBuyIn:     snap.MinBuyIn,
		MaxBuyIn:     snap.MaxBuyIn,
		Seats:        snap.SeatCount,
		TurnDuration: snap.TurnDuration,
		Variant:      snap.Variant,
	}
	e := NewEngine(cfg, opts...)

	byID := make(map[string]*Player, len(snap.Players))
	for _, ps := range snap.Players {
		p, err := restorePlayer(ps)
		if err != nil {
			return nil, err
		}
		byID[p.ID] = p

		if p.Slot >= 0 {
			if p.Slot >= e.group.Capacity() || e.group.seats[p.Slot] != nil {
				return nil, fmt.Errorf("snapshot seats player %s at invalid slot %d", p.ID, p.Slot)
			}
			e.group.seats[p.Slot] = p
		} else {
			e.group.spectators = append(e.group.spectators, p)
		}
	}

	e.group.dealer = snap.DealerSeat
	e.group.smallBlind = snap.SmallBlindSeat
	e.group.bigBlind = snap.BigBlindSeat
	e.group.handsPlayed = snap.HandsPlayed

	e.handInProgress = snap.HandInProgress
	e.round = snap.Round
	e.raises = snap.Raises

	var err error
	if snap.Board != "" {
		if e.board, err = deck.ParseCards(snap.Board); err != nil {
			return nil, fmt.Errorf("board: %w", err)
		}
	}

	order, err := deck.ParseCards(snap.DeckOrder)
	if err != nil {
		return nil, fmt.Errorf("deck order: %w", err)
	}
	if e.deck, err = deck.Restore(order, snap.DeckDealt, e.rng); err != nil {
		return nil, err
	}

	e.bets.roundBet = snap.RoundBet
	e.bets.lastRaise = snap.LastRaise
	e.bets.totalPot = snap.TotalPot
	for id, net := range snap.Ledger {
		e.bets.ledger[id] = net
	}

	lookup := func(id string) (*Player, error) {
		if id == "" {
			return nil, nil
		}
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("snapshot references unknown player %s", id)
		}
		return p, nil
	}

	for _, id := range snap.HandPlayers {
		p, err := lookup(id)
		if err != nil {
			return nil, err
		}
		e.handPlayers = append(e.handPlayers, p)
	}
	if e.current, err = lookup(snap.Current); err != nil {
		return nil, err
	}
	if e.lastAggressor, err = lookup(snap.LastAggressor); err != nil {
		return nil, err
	}
	for _, id := range snap.PendingShow {
		p, err := lookup(id)
		if err != nil {
			return nil, err
		}
		e.pendingShow[id] = p
	}

	for _, rec := range snap.History {
		e.history = append(e.history, Action{
			Type:     rec.Type,
			PlayerID: rec.PlayerID,
			Slot:     rec.Slot,
			Value:    rec.Value,
			Enabled:  rec.Enabled,
		})
	}

	if e.handInProgress && e.current != nil {
		e.turnCounter++
		turnID := e.turnCounter
		playerID := e.current.ID
		e.turnTimer = e.clock.AfterFunc(e.cfg.TurnDuration, func() {
			_ = e.PerformAction(Action{Type: actionTurnTimeout, PlayerID: playerID, turnID: turnID})
		})
	}

	return e, nil
}
