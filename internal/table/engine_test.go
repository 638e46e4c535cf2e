package table

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *eventRecorder) Emit(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *eventRecorder) ofType(t EventType) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, ev := range r.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

func (r *eventRecorder) lastOf(t EventType) (Event, bool) {
	evs := r.ofType(t)
	if len(evs) == 0 {
		return Event{}, false
	}
	return evs[len(evs)-1], true
}

func (r *eventRecorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

func newTestEngine(t *testing.T, cfg Config) (*Engine, *eventRecorder, *quartz.Mock) {
	t.Helper()

	if cfg.ID == "" {
		cfg.ID = "t1"
	}
	if cfg.SmallBlind == 0 {
		cfg.SmallBlind = 1
	}
	if cfg.BigBlind == 0 {
		cfg.BigBlind = 2
	}
	if cfg.MinBuyIn == 0 {
		cfg.MinBuyIn = 10
	}
	if cfg.MaxBuyIn == 0 {
		cfg.MaxBuyIn = 1000
	}
	if cfg.TurnDuration == 0 {
		cfg.TurnDuration = 10 * time.Second
	}

	clock := quartz.NewMock(t)
	rec := &eventRecorder{}
	e := NewEngine(cfg,
		WithClock(clock),
		WithRNG(rand.New(rand.NewSource(42))),
		WithSink(rec),
	)
	return e, rec, clock
}

func seatPlayers(t *testing.T, e *Engine, buyIns ...int) []string {
	t.Helper()

	ids := make([]string, len(buyIns))
	for i, buyIn := range buyIns {
		id := fmt.Sprintf("p%d", i+1)
		ids[i] = id
		require.NoError(t, e.PerformAction(Action{Type: ActionJoin, PlayerID: id, Value: buyIn}))
		require.NoError(t, e.PerformAction(Action{Type: ActionSit, PlayerID: id, Slot: i}))
	}
	return ids
}

func advance(t *testing.T, clock *quartz.Mock, d time.Duration) {
	t.Helper()
	clock.Advance(d).MustWait(context.Background())
}

func act(t *testing.T, e *Engine, a Action) {
	t.Helper()
	require.NoError(t, e.PerformAction(a))
}

func TestEngineJoinValidation(t *testing.T) {
	e, rec, _ := newTestEngine(t, Config{MinBuyIn: 50, MaxBuyIn: 200})

	require.ErrorIs(t, e.PerformAction(Action{Type: ActionJoin, PlayerID: "a", Value: 10}), ErrBuyInOutOfRange)
	require.ErrorIs(t, e.PerformAction(Action{Type: ActionJoin, PlayerID: "a", Value: 500}), ErrBuyInOutOfRange)

	act(t, e, Action{Type: ActionJoin, PlayerID: "a", Value: 100})
	require.ErrorIs(t, e.PerformAction(Action{Type: ActionJoin, PlayerID: "a", Value: 100}), ErrAlreadyJoined)

	ev, ok := rec.lastOf(EventPlayerJoined)
	require.True(t, ok)
	assert.Equal(t, "a", ev.PlayerID)
	assert.Equal(t, 100, ev.Value)

	assert.Equal(t, map[string]int{"a": -100}, e.Ledger())
}

func TestEngineSitValidation(t *testing.T) {
	e, _, _ := newTestEngine(t, Config{Seats: 2})

	act(t, e, Action{Type: ActionJoin, PlayerID: "a", Value: 100})
	act(t, e, Action{Type: ActionJoin, PlayerID: "b", Value: 100})

	require.ErrorIs(t, e.PerformAction(Action{Type: ActionSit, PlayerID: "nobody", Slot: 0}), ErrUnknownPlayer)
	require.ErrorIs(t, e.PerformAction(Action{Type: ActionSit, PlayerID: "a", Slot: 5}), ErrNoSuchSeat)

	act(t, e, Action{Type: ActionSit, PlayerID: "a", Slot: 0})
	require.ErrorIs(t, e.PerformAction(Action{Type: ActionSit, PlayerID: "b", Slot: 0}), ErrSeatOccupied)
	require.ErrorIs(t, e.PerformAction(Action{Type: ActionSit, PlayerID: "a", Slot: 1}), ErrNotSpectator)
}

func TestEngineHeadsUpUncontested(t *testing.T) {
	e, rec, clock := newTestEngine(t, Config{Seats: 3})
	seatPlayers(t, e, 100, 100)
	advance(t, clock, nextHandDelay)

	require.True(t, e.handInProgress)

	sbEv, ok := rec.lastOf(EventSmallBlind)
	require.True(t, ok)
	bbEv, ok := rec.lastOf(EventBigBlind)
	require.True(t, ok)
	assert.Equal(t, 1, sbEv.Value)
	assert.Equal(t, 2, bbEv.Value)

	// Heads-up the small blind is the dealer and acts first preflop.
	turnEv, ok := rec.lastOf(EventNewTurn)
	require.True(t, ok)
	assert.Equal(t, sbEv.PlayerID, turnEv.PlayerID)

	act(t, e, Action{Type: ActionFold, PlayerID: sbEv.PlayerID})

	won, ok := rec.lastOf(EventPotWon)
	require.True(t, ok)
	assert.Equal(t, bbEv.PlayerID, won.PlayerID)
	assert.Equal(t, 3, won.Value)

	winner := e.group.Find(bbEv.PlayerID)
	loser := e.group.Find(sbEv.PlayerID)
	assert.Equal(t, 101, winner.Balance)
	assert.Equal(t, 99, loser.Balance)
	assert.False(t, e.handInProgress)
}

// Three players buy in for 100 at 1/2. UTG raises to 6, the small blind
// folds, the big blind calls 4 more. The pot is 1 + 6 + 6 = 13 and the hand
// checks down to showdown; whoever wins, the table still holds 300 chips.
func TestEngineThreeHandedScenario(t *testing.T) {
	e, rec, clock := newTestEngine(t, Config{Seats: 3})
	ids := seatPlayers(t, e, 100, 100, 100)
	advance(t, clock, nextHandDelay)

	require.True(t, e.handInProgress)
	require.Len(t, e.handPlayers, 3)

	sbEv, _ := rec.lastOf(EventSmallBlind)
	bbEv, _ := rec.lastOf(EventBigBlind)
	turnEv, _ := rec.lastOf(EventNewTurn)
	utg := turnEv.PlayerID
	assert.NotEqual(t, utg, sbEv.PlayerID)
	assert.NotEqual(t, utg, bbEv.PlayerID)

	act(t, e, Action{Type: ActionRaise, PlayerID: utg, Value: 6})
	assert.Equal(t, 6, e.bets.RoundBet())

	act(t, e, Action{Type: ActionFold, PlayerID: sbEv.PlayerID})

	callEvsBefore := len(rec.ofType(EventCall))
	act(t, e, Action{Type: ActionCall, PlayerID: bbEv.PlayerID})
	callEvs := rec.ofType(EventCall)
	require.Len(t, callEvs, callEvsBefore+1)
	assert.Equal(t, 4, callEvs[len(callEvs)-1].Value)

	roundOver, ok := rec.lastOf(EventBettingRoundOver)
	require.True(t, ok)
	assert.Equal(t, 13, roundOver.Value)

	// Check the flop, turn and river down.
	for street := 0; street < 3; street++ {
		for i := 0; i < 2; i++ {
			turnEv, ok := rec.lastOf(EventNewTurn)
			require.True(t, ok)
			act(t, e, Action{Type: ActionCheck, PlayerID: turnEv.PlayerID})
		}
	}

	won, ok := rec.lastOf(EventPotWon)
	require.True(t, ok)
	assert.Equal(t, 13, won.Value)
	require.NotEmpty(t, won.PlayerIDs)
	assert.NotContains(t, won.PlayerIDs, sbEv.PlayerID)

	total := 0
	balances := map[string]int{}
	for _, id := range ids {
		p := e.group.Find(id)
		total += p.Balance
		balances[id] = p.Balance
	}
	assert.Equal(t, 300, total)
	assert.Equal(t, 99, balances[sbEv.PlayerID])
	if len(won.PlayerIDs) == 1 {
		assert.Equal(t, 107, balances[won.PlayerIDs[0]])
	}

	// The folded small blind lost their chip without ever winning a pot.
	assert.Equal(t, -100, e.Ledger()[sbEv.PlayerID])
}

// Heads-up all-in confrontation: the short stack shoves 20, the caller only
// matches 20, and the excess goes back uncontested via a sole-claim side pot.
func TestEngineHeadsUpAllIn(t *testing.T) {
	e, rec, clock := newTestEngine(t, Config{Seats: 2})
	seatPlayers(t, e, 20, 100)
	advance(t, clock, nextHandDelay)

	// Seat 0 is the big blind (short stack), seat 1 the small-blind dealer.
	bbEv, _ := rec.lastOf(EventBigBlind)
	sbEv, _ := rec.lastOf(EventSmallBlind)
	short := e.group.Find("p1")
	big := e.group.Find("p2")
	require.Equal(t, short.ID, bbEv.PlayerID)
	require.Equal(t, big.ID, sbEv.PlayerID)

	act(t, e, Action{Type: ActionAllIn, PlayerID: big.ID})
	assert.Equal(t, 100, big.RoundBet)

	act(t, e, Action{Type: ActionAllIn, PlayerID: short.ID})
	assert.Equal(t, 20, short.HandBet)
	assert.Equal(t, 0, short.HandBalance)

	// Both all-in: the board runs out to showdown with no further turns.
	require.False(t, e.handInProgress)

	potEvs := rec.ofType(EventPotWon)
	require.Len(t, potEvs, 2)
	assert.Equal(t, 40, potEvs[0].Value)
	assert.Equal(t, 80, potEvs[1].Value)
	assert.Equal(t, []string{big.ID}, potEvs[1].PlayerIDs)

	assert.Equal(t, 120, short.Balance+big.Balance)
	assert.GreaterOrEqual(t, big.Balance, 80)
}

func TestEngineTurnTimeout(t *testing.T) {
	t.Run("folds when facing a bet", func(t *testing.T) {
		e, rec, clock := newTestEngine(t, Config{Seats: 2, TurnDuration: 10 * time.Second})
		seatPlayers(t, e, 100, 100)
		advance(t, clock, nextHandDelay)

		sbEv, _ := rec.lastOf(EventSmallBlind)
		bbEv, _ := rec.lastOf(EventBigBlind)

		// Small blind owes 1 more and times out.
		advance(t, clock, 10*time.Second)

		_, expired := rec.lastOf(EventTurnExpired)
		assert.True(t, expired)
		folds := rec.ofType(EventFold)
		require.Len(t, folds, 1)
		assert.Equal(t, sbEv.PlayerID, folds[0].PlayerID)

		won, ok := rec.lastOf(EventPotWon)
		require.True(t, ok)
		assert.Equal(t, bbEv.PlayerID, won.PlayerID)
	})

	t.Run("checks when nothing to call", func(t *testing.T) {
		e, rec, clock := newTestEngine(t, Config{Seats: 2, TurnDuration: 10 * time.Second})
		seatPlayers(t, e, 100, 100)
		advance(t, clock, nextHandDelay)

		sbEv, _ := rec.lastOf(EventSmallBlind)
		bbEv, _ := rec.lastOf(EventBigBlind)
		act(t, e, Action{Type: ActionCall, PlayerID: sbEv.PlayerID})

		// Big blind has the option and times out: checked, not folded.
		advance(t, clock, 10*time.Second)

		assert.Empty(t, rec.ofType(EventFold))
		checks := rec.ofType(EventCheck)
		require.NotEmpty(t, checks)
		assert.Equal(t, bbEv.PlayerID, checks[0].PlayerID)

		// Preflop finished, flop dealt.
		assert.True(t, e.handInProgress)
		assert.Len(t, e.board, 3)
	})
}

// A timeout for a superseded turn must never act on the new current player.
func TestEngineStaleTimeoutIsNoOp(t *testing.T) {
	e, rec, clock := newTestEngine(t, Config{Seats: 2, TurnDuration: 10 * time.Second})
	seatPlayers(t, e, 100, 100)
	advance(t, clock, nextHandDelay)

	sbEv, _ := rec.lastOf(EventSmallBlind)
	staleID := e.turnCounter

	act(t, e, Action{Type: ActionCall, PlayerID: sbEv.PlayerID})
	require.NotNil(t, e.current)
	next := e.current

	// The stale timer fires just after the turn advanced.
	require.NoError(t, e.PerformAction(Action{Type: actionTurnTimeout, PlayerID: sbEv.PlayerID, turnID: staleID}))

	assert.Empty(t, rec.ofType(EventTurnExpired))
	assert.Empty(t, rec.ofType(EventFold))
	assert.Same(t, next, e.current)
	assert.Equal(t, StateCurrentTurn, next.State())
}

func TestEngineRejectsOutOfTurnActions(t *testing.T) {
	e, rec, clock := newTestEngine(t, Config{Seats: 3})
	seatPlayers(t, e, 100, 100, 100)
	advance(t, clock, nextHandDelay)

	turnEv, _ := rec.lastOf(EventNewTurn)
	bbEv, _ := rec.lastOf(EventBigBlind)
	require.NotEqual(t, turnEv.PlayerID, bbEv.PlayerID)

	require.ErrorIs(t, e.PerformAction(Action{Type: ActionFold, PlayerID: bbEv.PlayerID}), ErrNotYourTurn)
	require.ErrorIs(t, e.PerformAction(Action{Type: ActionCheck, PlayerID: turnEv.PlayerID}), ErrCannotCheck)
	require.ErrorIs(t, e.PerformAction(Action{Type: ActionRaise, PlayerID: turnEv.PlayerID, Value: 3}), ErrRaiseTooSmall)
}

func TestEngineRaiseLimit(t *testing.T) {
	variant := Holdem
	variant.MaxRaises = 2
	e, rec, clock := newTestEngine(t, Config{Seats: 2, Variant: variant})
	seatPlayers(t, e, 1000, 1000)
	advance(t, clock, nextHandDelay)

	sbEv, _ := rec.lastOf(EventSmallBlind)
	bbEv, _ := rec.lastOf(EventBigBlind)

	act(t, e, Action{Type: ActionRaise, PlayerID: sbEv.PlayerID, Value: 4})
	act(t, e, Action{Type: ActionRaise, PlayerID: bbEv.PlayerID, Value: 8})
	require.ErrorIs(t,
		e.PerformAction(Action{Type: ActionRaise, PlayerID: sbEv.PlayerID, Value: 16}),
		ErrRaiseLimitReached)

	// Calling is still allowed once the cap is hit.
	act(t, e, Action{Type: ActionCall, PlayerID: sbEv.PlayerID})
}

func TestEngineSitOutAndReturn(t *testing.T) {
	e, rec, clock := newTestEngine(t, Config{Seats: 3})
	seatPlayers(t, e, 100, 100, 100)
	advance(t, clock, nextHandDelay)

	bbEv, _ := rec.lastOf(EventBigBlind)
	sitter := e.group.Find(bbEv.PlayerID)

	// Sitting out mid-hand defers until the hand ends.
	act(t, e, Action{Type: ActionSitOut, PlayerID: sitter.ID})
	assert.NotEqual(t, StateSittingOut, sitter.State())
	assert.Equal(t, StateSittingOut, sitter.PendingState())

	// Fold the hand out.
	for e.handInProgress {
		turnEv, ok := rec.lastOf(EventNewTurn)
		require.True(t, ok)
		act(t, e, Action{Type: ActionFold, PlayerID: turnEv.PlayerID})
	}

	rec.reset()
	advance(t, clock, nextHandDelay)
	require.True(t, e.handInProgress)
	assert.Equal(t, StateSittingOut, sitter.State())
	assert.NotContains(t, e.handPlayers, sitter)

	// The big blind passes them by while away, so they owe one on return.
	for !sitter.MissedBlind() {
		for e.handInProgress {
			turnEv, ok := rec.lastOf(EventNewTurn)
			require.True(t, ok)
			act(t, e, Action{Type: ActionFold, PlayerID: turnEv.PlayerID})
		}
		rec.reset()
		advance(t, clock, nextHandDelay)
	}

	act(t, e, Action{Type: ActionSitIn, PlayerID: sitter.ID})
	assert.Equal(t, StateWaitingForBigBlind, sitter.State())
}

func TestEngineLeaveMidHandFoldsAndContinues(t *testing.T) {
	e, rec, clock := newTestEngine(t, Config{Seats: 3})
	seatPlayers(t, e, 100, 100, 100)
	advance(t, clock, nextHandDelay)

	turnEv, _ := rec.lastOf(EventNewTurn)
	leaver := turnEv.PlayerID

	act(t, e, Action{Type: ActionLeave, PlayerID: leaver})
	assert.Nil(t, e.group.Find(leaver))
	require.True(t, e.handInProgress)

	// Their blind-free fold leaves two players contesting the pot.
	nextEv, ok := rec.lastOf(EventNewTurn)
	require.True(t, ok)
	assert.NotEqual(t, leaver, nextEv.PlayerID)

	act(t, e, Action{Type: ActionFold, PlayerID: nextEv.PlayerID})
	won, ok := rec.lastOf(EventPotWon)
	require.True(t, ok)
	assert.Equal(t, 3, won.Value)
}

// The street's biggest bettor leaves, then the short stacks shove for less.
// The leaver's excess has no claimant slice of its own; the hand must still
// settle, with the excess riding along in the last pot.
func TestEngineLeaverExcessSettlesShortShowdown(t *testing.T) {
	e, rec, clock := newTestEngine(t, Config{Seats: 3})
	seatPlayers(t, e, 20, 100, 30)
	advance(t, clock, nextHandDelay)

	// First hand at three seats: seat 0 big blind, seat 1 dealer and first
	// to act, seat 2 small blind.
	sbEv, _ := rec.lastOf(EventSmallBlind)
	bbEv, _ := rec.lastOf(EventBigBlind)
	turnEv, _ := rec.lastOf(EventNewTurn)
	require.Equal(t, "p3", sbEv.PlayerID)
	require.Equal(t, "p1", bbEv.PlayerID)
	require.Equal(t, "p2", turnEv.PlayerID)

	act(t, e, Action{Type: ActionRaise, PlayerID: "p2", Value: 50})
	act(t, e, Action{Type: ActionLeave, PlayerID: "p2"})
	require.True(t, e.handInProgress)

	act(t, e, Action{Type: ActionAllIn, PlayerID: "p3"})
	act(t, e, Action{Type: ActionAllIn, PlayerID: "p1"})

	// Both remaining players all-in: the board runs out and the hand
	// settles rather than aborting.
	require.False(t, e.handInProgress)

	potEvs := rec.ofType(EventPotWon)
	require.Len(t, potEvs, 2)
	assert.Equal(t, 60, potEvs[0].Value)
	assert.Equal(t, 40, potEvs[1].Value)
	assert.Equal(t, []string{"p3"}, potEvs[1].PlayerIDs)

	// Every chip the three players committed is back on the table.
	p1 := e.group.Find("p1")
	p3 := e.group.Find("p3")
	assert.Equal(t, 100, p1.Balance+p3.Balance)
}

func TestEngineBustedPlayerSkipsRotation(t *testing.T) {
	e, rec, clock := newTestEngine(t, Config{Seats: 2, MinBuyIn: 2})
	seatPlayers(t, e, 3, 100)
	advance(t, clock, nextHandDelay)

	// Short stack is the big blind; shove and lose or win. Either way the
	// table ends up with one player unable to post and goes idle.
	sbEv, _ := rec.lastOf(EventSmallBlind)
	act(t, e, Action{Type: ActionAllIn, PlayerID: sbEv.PlayerID})
	bbEv, _ := rec.lastOf(EventBigBlind)
	if e.handInProgress {
		act(t, e, Action{Type: ActionAllIn, PlayerID: bbEv.PlayerID})
	}
	require.False(t, e.handInProgress)

	busts := rec.ofType(EventPlayerBusted)
	if len(busts) > 0 {
		rec.reset()
		advance(t, clock, nextHandDelay)
		_, idle := rec.lastOf(EventTableIdle)
		assert.True(t, idle)
		assert.False(t, e.handInProgress)
	}
}

func TestEngineHoleCardsAreTargeted(t *testing.T) {
	e, rec, clock := newTestEngine(t, Config{Seats: 2})
	seatPlayers(t, e, 100, 100)
	advance(t, clock, nextHandDelay)

	deals := rec.ofType(EventPlayerDeal)
	require.Len(t, deals, 2)
	for _, ev := range deals {
		assert.Equal(t, []string{ev.PlayerID}, ev.Targets)
		assert.Len(t, ev.Cards, 2)
	}
}

func TestEngineAutoMuckAndShowOption(t *testing.T) {
	e, rec, clock := newTestEngine(t, Config{Seats: 2})
	seatPlayers(t, e, 100, 100)
	act(t, e, Action{Type: ActionSetAutoMuck, PlayerID: "p1", Enabled: false})
	act(t, e, Action{Type: ActionSetAutoMuck, PlayerID: "p2", Enabled: false})
	advance(t, clock, nextHandDelay)

	sbEv, _ := rec.lastOf(EventSmallBlind)

	// Check the whole hand down.
	act(t, e, Action{Type: ActionCall, PlayerID: sbEv.PlayerID})
	for e.handInProgress {
		turnEv, ok := rec.lastOf(EventNewTurn)
		require.True(t, ok)
		act(t, e, Action{Type: ActionCheck, PlayerID: turnEv.PlayerID})
	}

	// One player is obliged to show, the other gets the option.
	shows := rec.ofType(EventShowCards)
	require.Len(t, shows, 1)
	options := rec.ofType(EventOptionToShowCards)

	if len(options) == 1 {
		optID := options[0].PlayerID
		act(t, e, Action{Type: ActionShowCards, PlayerID: optID})
		shows = rec.ofType(EventShowCards)
		require.Len(t, shows, 2)
		assert.Equal(t, optID, shows[1].PlayerID)

		// The option is single-use.
		require.Error(t, e.PerformAction(Action{Type: ActionShowCards, PlayerID: optID}))
	}
}

func TestEngineSnapshotRoundTrip(t *testing.T) {
	e, rec, clock := newTestEngine(t, Config{Seats: 3})
	seatPlayers(t, e, 100, 100, 100)
	advance(t, clock, nextHandDelay)

	turnEv, _ := rec.lastOf(EventNewTurn)
	act(t, e, Action{Type: ActionRaise, PlayerID: turnEv.PlayerID, Value: 6})

	snap := e.Snapshot()
	require.True(t, snap.HandInProgress)
	require.NotEmpty(t, snap.Current)
	require.Equal(t, 52, len(snap.DeckOrder)/2)

	clock2 := quartz.NewMock(t)
	rec2 := &eventRecorder{}
	restored, err := RestoreEngine(snap, WithClock(clock2), WithSink(rec2))
	require.NoError(t, err)

	assert.Equal(t, e.bets.RoundBet(), restored.bets.RoundBet())
	assert.Equal(t, e.bets.TotalPot(), restored.bets.TotalPot())
	assert.Equal(t, e.Ledger(), restored.Ledger())
	assert.Equal(t, snap.Current, restored.current.ID)
	assert.Equal(t, len(e.handPlayers), len(restored.handPlayers))

	// Every accepted action is in the snapshot: three joins, three sits and
	// the raise, ending with the raise we just made.
	require.NotEmpty(t, snap.History)
	last := snap.History[len(snap.History)-1]
	assert.Equal(t, ActionRaise, last.Type)
	assert.Equal(t, turnEv.PlayerID, last.PlayerID)
	assert.Equal(t, 6, last.Value)
	assert.Equal(t, e.history, restored.history)

	for _, id := range []string{"p1", "p2", "p3"} {
		orig := e.group.Find(id)
		back := restored.group.Find(id)
		require.NotNil(t, back)
		assert.Equal(t, orig.Balance, back.Balance)
		assert.Equal(t, orig.State(), back.State())
		assert.Equal(t, orig.Cards, back.Cards)
	}

	// The restored hand still plays: the current player can act.
	act(t, restored, Action{Type: ActionFold, PlayerID: snap.Current})
}

func TestEngineIdleTracking(t *testing.T) {
	e, _, clock := newTestEngine(t, Config{Seats: 2})

	assert.False(t, e.Idle(time.Minute))
	clock.Advance(2 * time.Minute).MustWait(context.Background())
	assert.True(t, e.Idle(time.Minute))

	act(t, e, Action{Type: ActionJoin, PlayerID: "a", Value: 100})
	assert.False(t, e.Idle(time.Minute))
}
