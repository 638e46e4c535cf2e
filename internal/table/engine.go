package table

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/thoas/go-funk"

	"github.com/lox/pokerroom/internal/deck"
)

// nextHandDelay is the pause between a hand finishing and the next one
// starting, during which winners may exercise their option to show.
const nextHandDelay = 2 * time.Second

// Config describes a table. Zero values fall back to defaults in NewEngine.
type Config struct {
	ID           string
	Name         string
	Creator      string
	SmallBlind   int
	BigBlind     int
	MinBuyIn     int
	MaxBuyIn     int
	Seats        int
	TurnDuration time.Duration
	Variant      Variant
}

// Metadata is the read-only description of a table for listings
type Metadata struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Creator        string `json:"creator"`
	Variant        string `json:"variant"`
	SmallBlind     int    `json:"smallBlind"`
	BigBlind       int    `json:"bigBlind"`
	MinBuyIn       int    `json:"minBuyIn"`
	MaxBuyIn       int    `json:"maxBuyIn"`
	Seats          int    `json:"seats"`
	SeatsTaken     int    `json:"seatsTaken"`
	HandsPlayed    int    `json:"handsPlayed"`
	HandInProgress bool   `json:"handInProgress"`
}

// Engine is one poker table: the authoritative state machine for seating,
// blinds, betting rounds and settlement. All access is serialized by a single
// mutex; PerformAction is the only entry point for player input, and the turn
// timer feeds back through it as well.
type Engine struct {
	mu sync.Mutex

	cfg   Config
	group *Group
	bets  *BetController

	deck  *deck.Deck
	board []deck.Card

	handInProgress bool
	round          int
	raises         int
	current        *Player

	// handPlayers is the hand's participant list, fixed at deal time in
	// clockwise order from the seat after the dealer. Turn cycling and
	// side-pot generation run over this list, so a player leaving mid-hand
	// cannot disturb pot math.
	handPlayers []*Player

	lastAggressor *Player
	pendingShow   map[string]*Player

	// turnCounter tags each turn; a timer firing for a stale counter value
	// is ignored, which settles the race between a timeout and an action
	// arriving together.
	turnCounter     uint64
	turnTimer       *quartz.Timer
	nextHandPending bool

	history      []Action
	lastActivity time.Time

	clock  quartz.Clock
	rng    *rand.Rand
	logger *log.Logger
	sink   Sink
}

// Option configures an Engine
type Option func(*Engine)

// WithClock substitutes the wall clock, for tests
func WithClock(c quartz.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithRNG substitutes the shuffle source, for deterministic deals
func WithRNG(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithSink sets the event sink
func WithSink(sink Sink) Option {
	return func(e *Engine) { e.sink = sink }
}

// NewEngine creates a table from cfg
func NewEngine(cfg Config, opts ...Option) *Engine {
	if cfg.Seats == 0 {
		cfg.Seats = 9
	}
	if cfg.TurnDuration == 0 {
		cfg.TurnDuration = 30 * time.Second
	}
	if cfg.Variant.HoleCards == 0 {
		cfg.Variant = Holdem
	}
	if cfg.MaxBuyIn == 0 {
		cfg.MaxBuyIn = 100 * cfg.BigBlind
	}

	e := &Engine{
		cfg:         cfg,
		group:       NewGroup(cfg.Seats),
		clock:       quartz.NewReal(),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:      log.Default(),
		sink:        nopSink{},
		pendingShow: make(map[string]*Player),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.logger = e.logger.WithPrefix("table").With("table", cfg.ID)
	e.bets = NewBetController(cfg.SmallBlind, cfg.BigBlind, e.logger)
	e.deck = deck.New(e.rng)
	e.lastActivity = e.clock.Now()
	return e
}

// ID returns the table id
func (e *Engine) ID() string { return e.cfg.ID }

// Metadata returns a point-in-time description of the table
func (e *Engine) Metadata() Metadata {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Metadata{
		ID:             e.cfg.ID,
		Name:           e.cfg.Name,
		Creator:        e.cfg.Creator,
		Variant:        e.cfg.Variant.Name,
		SmallBlind:     e.cfg.SmallBlind,
		BigBlind:       e.cfg.BigBlind,
		MinBuyIn:       e.cfg.MinBuyIn,
		MaxBuyIn:       e.cfg.MaxBuyIn,
		Seats:          e.group.Capacity(),
		SeatsTaken:     len(e.group.Seated()),
		HandsPlayed:    e.group.handsPlayed,
		HandInProgress: e.handInProgress,
	}
}

// Ledger returns each player's cumulative net winnings
func (e *Engine) Ledger() map[string]int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bets.Ledger()
}

// LastActivity returns when the table last processed an action
func (e *Engine) LastActivity() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastActivity
}

// Idle reports whether the table can be evicted: no hand running and no
// action seen within the grace period.
func (e *Engine) Idle(grace time.Duration) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.handInProgress && e.clock.Now().Sub(e.lastActivity) > grace
}

func (e *Engine) emit(ev Event) { e.sink.Emit(ev) }

// PerformAction applies one player action. It is the sole entry point for
// all table input, including internally generated turn timeouts. An error
// return means the action was rejected and no state changed.
func (e *Engine) PerformAction(a Action) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if a.Type != actionTurnTimeout {
		e.lastActivity = e.clock.Now()
	}

	err := e.dispatch(a)
	if err == nil {
		e.history = append(e.history, a)
	}
	return err
}

func (e *Engine) dispatch(a Action) error {
	switch a.Type {
	case ActionJoin:
		return e.handleJoin(a)
	case ActionSit:
		return e.handleSit(a)
	case ActionLeave, ActionDisconnect:
		return e.handleLeave(a)
	case ActionFold, ActionCheck, ActionCall, ActionRaise, ActionAllIn:
		return e.handleBettingAction(a)
	case ActionShowCards:
		return e.handleShowCards(a)
	case ActionSetAutoMuck:
		return e.handleSetAutoMuck(a)
	case ActionSitOut:
		return e.handleSitOut(a)
	case ActionSitIn:
		return e.handleSitIn(a)
	case actionTurnTimeout:
		return e.handleTurnTimeout(a)
	default:
		return fmt.Errorf("%w: unknown action %q", ErrIllegalAction, a.Type)
	}
}

func (e *Engine) handleJoin(a Action) error {
	if a.Value < e.cfg.MinBuyIn || a.Value > e.cfg.MaxBuyIn {
		return ErrBuyInOutOfRange
	}

	p, err := e.group.SeatSpectator(a.PlayerID)
	if err != nil {
		return err
	}
	p.Balance = a.Value
	e.bets.RecordBuyIn(p.ID, a.Value)

	e.logger.Info("player joined", "player", p.ID, "buyIn", a.Value)
	e.emit(Event{Type: EventPlayerJoined, PlayerID: p.ID, Value: a.Value})
	return nil
}

func (e *Engine) handleSit(a Action) error {
	p := e.group.Find(a.PlayerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	if err := e.group.TakeSeat(p, a.Slot); err != nil {
		return err
	}

	e.logger.Info("player seated", "player", p.ID, "slot", p.Slot)
	e.emit(Event{Type: EventPlayerSeated, PlayerID: p.ID, Slot: p.Slot})
	e.scheduleHandStart()
	return nil
}

func (e *Engine) handleLeave(a Action) error {
	p := e.group.Find(a.PlayerID)
	if p == nil {
		return ErrUnknownPlayer
	}

	wasCurrent := p == e.current
	if e.handInProgress && p.InHand() && p.State() != StateAllIn {
		// Chips already committed stay in the pot; the hand plays on
		// without them.
		p.SetState(StateFolded)
		e.emit(Event{Type: EventFold, PlayerID: p.ID, Slot: p.Slot})
	}

	e.group.Remove(p)
	delete(e.pendingShow, p.ID)

	e.logger.Info("player left", "player", p.ID)
	e.emit(Event{Type: EventPlayerLeft, PlayerID: p.ID})

	if e.handInProgress {
		if e.countInHand() <= 1 {
			e.stopTurnTimer()
			e.winByFold()
		} else if wasCurrent {
			e.stopTurnTimer()
			e.advanceAfterAction(p)
		}
	}
	return nil
}

func (e *Engine) handleBettingAction(a Action) error {
	if !e.handInProgress {
		return ErrNoHandInProgress
	}
	p := e.group.Find(a.PlayerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	if p != e.current || p.State() != StateCurrentTurn {
		return ErrNotYourTurn
	}

	if err := e.applyBettingAction(p, a); err != nil {
		return err
	}

	e.stopTurnTimer()
	e.current = nil
	e.advanceAfterAction(p)
	return nil
}

func (e *Engine) applyBettingAction(p *Player, a Action) error {
	switch a.Type {
	case ActionFold:
		p.SetState(StateFolded)
		e.emit(Event{Type: EventFold, PlayerID: p.ID, Slot: p.Slot})

	case ActionCheck:
		if p.RoundBet != e.bets.RoundBet() {
			return ErrCannotCheck
		}
		p.SetState(StateChecked)
		e.emit(Event{Type: EventCheck, PlayerID: p.ID, Slot: p.Slot})

	case ActionCall:
		amount, err := e.bets.Call(p)
		if err != nil {
			return err
		}
		e.markActed(p)
		e.emit(Event{Type: EventCall, PlayerID: p.ID, Slot: p.Slot, Value: amount})

	case ActionRaise:
		if e.raises >= e.cfg.Variant.MaxRaises {
			return ErrRaiseLimitReached
		}
		if err := e.bets.Raise(p, a.Value); err != nil {
			return err
		}
		e.markActed(p)
		e.reopenBetting(p)
		e.emit(Event{Type: EventRaise, PlayerID: p.ID, Slot: p.Slot, Value: p.RoundBet})

	case ActionAllIn:
		if p.HandBalance == 0 {
			return ErrInsufficientFunds
		}
		_, raised := e.bets.AllIn(p)
		if raised {
			e.reopenBetting(p)
		}
		e.emit(Event{Type: EventAllIn, PlayerID: p.ID, Slot: p.Slot, Value: p.RoundBet})
	}
	return nil
}

// markActed moves an actor to CHECKED, or ALL_IN when a call consumed the
// whole stack.
func (e *Engine) markActed(p *Player) {
	if p.HandBalance == 0 {
		p.SetState(StateAllIn)
		p.DeferState(StateWaitingForTurn)
	} else {
		p.SetState(StateChecked)
	}
}

// reopenBetting records a raise: players who had already acted this round
// get another turn, and the raiser becomes the presumptive showdown revealer.
func (e *Engine) reopenBetting(raiser *Player) {
	e.raises++
	e.lastAggressor = raiser
	for _, q := range e.handPlayers {
		if q != raiser && q.State() == StateChecked {
			q.SetState(StateWaitingForTurn)
		}
	}
}

func (e *Engine) handleShowCards(a Action) error {
	p, ok := e.pendingShow[a.PlayerID]
	if !ok {
		return fmt.Errorf("%w: no show option pending", ErrIllegalAction)
	}
	delete(e.pendingShow, a.PlayerID)
	e.emit(Event{Type: EventShowCards, PlayerID: p.ID, Slot: p.Slot, Cards: p.Cards})
	return nil
}

func (e *Engine) handleSetAutoMuck(a Action) error {
	p := e.group.Find(a.PlayerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	p.Settings.AutoMuck = a.Enabled
	return nil
}

func (e *Engine) handleSitOut(a Action) error {
	p := e.group.Find(a.PlayerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	if e.handInProgress && p.InHand() {
		// Mid-hand the player keeps their cards and obligations; the
		// transition waits for the next hand.
		p.DeferState(StateSittingOut)
		return nil
	}
	if p.Slot >= 0 {
		p.SetState(StateSittingOut)
	}
	return nil
}

func (e *Engine) handleSitIn(a Action) error {
	p := e.group.Find(a.PlayerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	if p.Slot < 0 || p.State() != StateSittingOut {
		return fmt.Errorf("%w: player is not sitting out", ErrIllegalAction)
	}

	if p.MissedBlind() {
		// Skipped a blind while away, so the blind must reach them (or be
		// posted) before they play again.
		p.SetState(StateWaitingForBigBlind)
	} else {
		p.SetState(StateWaitingForHand)
	}
	e.scheduleHandStart()
	return nil
}

func (e *Engine) handleTurnTimeout(a Action) error {
	// Stale timers lose the race against a concurrent action.
	if !e.handInProgress || e.current == nil || a.turnID != e.turnCounter {
		return nil
	}

	p := e.current
	e.logger.Info("turn expired", "player", p.ID, "slot", p.Slot)
	e.emit(Event{Type: EventTurnExpired, PlayerID: p.ID, Slot: p.Slot})

	// Check when it's free, fold when facing a bet.
	if p.RoundBet == e.bets.RoundBet() {
		p.SetState(StateChecked)
		e.emit(Event{Type: EventCheck, PlayerID: p.ID, Slot: p.Slot})
	} else {
		p.SetState(StateFolded)
		e.emit(Event{Type: EventFold, PlayerID: p.ID, Slot: p.Slot})
	}

	e.current = nil
	e.advanceAfterAction(p)
	return nil
}

// advanceAfterAction moves the hand forward once p's turn has resolved
func (e *Engine) advanceAfterAction(p *Player) {
	if e.countInHand() <= 1 {
		e.winByFold()
		return
	}
	if e.isRoundOver() {
		e.endBettingRound()
		return
	}
	if next := e.nextToAct(p); next != nil {
		e.startTurn(next)
		return
	}
	// Nobody left with chips to act: run the remaining streets out.
	e.endBettingRound()
}

func (e *Engine) countInHand() int {
	count := 0
	for _, p := range e.handPlayers {
		if p.InHand() {
			count++
		}
	}
	return count
}

// isRoundOver reports whether the betting round is settled: every player who
// can still act has acted (CHECKED) and matches the high-water mark. A big
// blind who has not yet taken their preflop option is WAITING_FOR_TURN and
// keeps the round open even with nothing to call.
func (e *Engine) isRoundOver() bool {
	for _, p := range e.handPlayers {
		if !p.CanActThisRound() {
			continue
		}
		if p.State() != StateChecked || p.RoundBet != e.bets.RoundBet() {
			return false
		}
	}
	return true
}

// nextToAct returns the next player clockwise from p still owed a turn
func (e *Engine) nextToAct(p *Player) *Player {
	n := len(e.handPlayers)
	start := e.handIndex(p)
	for i := 1; i <= n; i++ {
		q := e.handPlayers[(start+i+n)%n]
		if q.State() == StateWaitingForTurn && q.CanActThisRound() {
			return q
		}
	}
	return nil
}

func (e *Engine) startTurn(p *Player) {
	p.SetState(StateCurrentTurn)
	e.current = p
	e.turnCounter++

	turnID := e.turnCounter
	e.turnTimer = e.clock.AfterFunc(e.cfg.TurnDuration, func() {
		_ = e.PerformAction(Action{Type: actionTurnTimeout, PlayerID: p.ID, turnID: turnID})
	})

	e.emit(Event{Type: EventNewTurn, PlayerID: p.ID, Slot: p.Slot, Value: e.bets.RoundBet()})
}

func (e *Engine) stopTurnTimer() {
	if e.turnTimer != nil {
		e.turnTimer.Stop()
		e.turnTimer = nil
	}
	e.turnCounter++
}

// maybeStartHand begins a hand if none is running and enough players are
// ready. Safe to call opportunistically.
func (e *Engine) maybeStartHand() {
	if e.handInProgress || e.nextHandPending {
		return
	}
	e.startHand()
}

// scheduleHandStart arms the inter-hand timer. The pause lets a filling table
// collect more seats before the first deal and keeps show options open
// between hands.
func (e *Engine) scheduleHandStart() {
	if e.handInProgress || e.nextHandPending {
		return
	}
	e.nextHandPending = true
	e.clock.AfterFunc(nextHandDelay, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.nextHandPending = false
		e.maybeStartHand()
	})
}

func (e *Engine) startHand() {
	e.pendingShow = make(map[string]*Player)

	for _, p := range e.group.Seated() {
		p.ApplyPendingState()
		switch p.State() {
		case StateFolded, StateChecked, StateCurrentTurn, StateWaitingForHand:
			p.SetState(StateWaitingForTurn)
		}
		p.ResetForNewHand()
	}

	firstHand := e.group.handsPlayed == 0

	if len(e.group.EligibleForBlind()) < 2 || !e.group.RotateDealerAndBlinds() {
		e.handInProgress = false
		e.logger.Info("table idle", "seated", len(e.group.Seated()))
		e.emit(Event{Type: EventTableIdle})
		return
	}

	// Waiting players come in when the big blind reaches their seat; on the
	// table's first hand there is no blind history, so everybody is in.
	for _, p := range e.group.Seated() {
		if p.State() == StateWaitingForBigBlind && (firstHand || p.Slot == e.group.BigBlind()) {
			p.missedBlind = false
			p.SetState(StateWaitingForTurn)
		}
	}

	e.handPlayers = funk.Filter(e.group.PlayersClockwiseFrom(e.group.Dealer()+1), func(p *Player) bool {
		return p.State() == StateWaitingForTurn
	}).([]*Player)

	if len(e.handPlayers) < 2 {
		e.handInProgress = false
		e.logger.Info("table idle", "seated", len(e.group.Seated()))
		e.emit(Event{Type: EventTableIdle})
		return
	}

	e.handInProgress = true
	e.round = 0
	e.raises = 0
	e.board = nil
	e.lastAggressor = nil
	e.bets.ResetForNewHand()
	e.deck.Shuffle()

	e.logger.Info("new hand",
		"hand", e.group.handsPlayed,
		"dealer", e.group.Dealer(),
		"smallBlind", e.group.SmallBlind(),
		"bigBlind", e.group.BigBlind(),
		"players", len(e.handPlayers))
	e.emit(Event{Type: EventNewHand, Value: e.group.handsPlayed, Slot: e.group.Dealer()})

	e.postBlinds()
	e.dealHoleCards()

	// First to act preflop is the seat after the big blind.
	bb := e.group.Seat(e.group.BigBlind())
	if next := e.nextToAct(bb); next != nil {
		e.startTurn(next)
	} else {
		// Blinds put everyone all-in; run the board out.
		e.endBettingRound()
	}
}

func (e *Engine) postBlinds() {
	if sb := e.group.Seat(e.group.SmallBlind()); sb != nil {
		amount, _ := e.bets.PostSmallBlind(sb)
		if sb.HandBalance == 0 {
			sb.SetState(StateAllIn)
			sb.DeferState(StateWaitingForTurn)
		}
		e.emit(Event{Type: EventSmallBlind, PlayerID: sb.ID, Slot: sb.Slot, Value: amount})
	}

	bb := e.group.Seat(e.group.BigBlind())
	amount, _ := e.bets.PostBigBlind(bb)
	if bb.HandBalance == 0 {
		bb.SetState(StateAllIn)
		bb.DeferState(StateWaitingForTurn)
	}
	e.emit(Event{Type: EventBigBlind, PlayerID: bb.ID, Slot: bb.Slot, Value: amount})
}

func (e *Engine) dealHoleCards() {
	for _, p := range e.handPlayers {
		p.Cards = e.deck.DealN(e.cfg.Variant.HoleCards)
		e.emit(Event{
			Type:     EventPlayerDeal,
			PlayerID: p.ID,
			Slot:     p.Slot,
			Cards:    p.Cards,
			Targets:  []string{p.ID},
		})
	}
}

// endBettingRound closes the street and either deals the next one or goes to
// showdown. Streets with fewer than two players able to act are dealt through
// without betting.
func (e *Engine) endBettingRound() {
	for {
		e.emit(Event{Type: EventBettingRoundOver, Value: e.bets.TotalPot()})
		for _, p := range e.handPlayers {
			p.ResetForNewRound()
		}
		e.bets.ResetForNewBettingRound()
		e.raises = 0

		e.round++
		if e.round >= e.cfg.Variant.BettingRounds() {
			e.showdown()
			return
		}

		if n := e.cfg.Variant.DealsPerRound[e.round]; n > 0 {
			cards := e.deck.DealN(n)
			e.board = append(e.board, cards...)
			e.emit(Event{Type: EventCenterDeal, Cards: cards})
		}

		canAct := 0
		for _, p := range e.handPlayers {
			if p.CanActThisRound() {
				canAct++
			}
		}
		if canAct >= 2 {
			// Postflop action starts with the first live seat after the
			// dealer, which is the head of the participant list.
			for _, p := range e.handPlayers {
				if p.CanActThisRound() {
					e.startTurn(p)
					return
				}
			}
		}
	}
}

func (e *Engine) winByFold() {
	var winner *Player
	for _, p := range e.handPlayers {
		if p.InHand() {
			winner = p
			break
		}
	}
	if winner == nil {
		e.abortHand(fmt.Errorf("%w: no player left in hand", ErrInvariant))
		return
	}

	won := e.bets.AwardUncontested(winner)
	e.logger.Info("pot won uncontested", "player", winner.ID, "amount", won)
	e.emit(Event{Type: EventPotWon, PlayerID: winner.ID, Slot: winner.Slot, Value: won,
		PlayerIDs: []string{winner.ID}})
	e.finishHand()
}

func (e *Engine) showdown() {
	pots, err := e.bets.GeneratePots(e.handPlayers)
	if err != nil {
		e.abortHand(err)
		return
	}

	result, err := e.bets.DistributePots(pots, e.board, e.revealOrder())
	if err != nil {
		e.abortHand(err)
		return
	}

	if w := result.ForcedShow; w != nil {
		e.emit(Event{Type: EventShowCards, PlayerID: w.ID, Slot: w.Slot, Cards: w.Cards})
	}

	for _, r := range result.Results {
		e.logger.Info("pot won", "amount", r.Pot.Size, "winners", playerIDs(r.Winners))
		e.emit(Event{
			Type:      EventPotWon,
			Value:     r.Pot.Size,
			PlayerIDs: playerIDs(r.Winners),
			Pots:      potViews([]*Pot{r.Pot}),
		})
	}

	for _, p := range result.AutoMucked {
		e.emit(Event{Type: EventMuckCards, PlayerID: p.ID, Slot: p.Slot})
	}
	for _, p := range result.OptionToShow {
		e.pendingShow[p.ID] = p
		e.emit(Event{Type: EventOptionToShowCards, PlayerID: p.ID, Targets: []string{p.ID}})
	}

	e.finishHand()
}

// revealOrder is the showdown precedence: the last aggressor first, then
// clockwise; with no aggression, clockwise from the seat after the dealer.
func (e *Engine) revealOrder() []*Player {
	order := e.handPlayers
	if e.lastAggressor != nil {
		if i := e.handIndex(e.lastAggressor); i > 0 {
			order = append(append([]*Player{}, e.handPlayers[i:]...), e.handPlayers[:i]...)
		}
	}
	return order
}

func (e *Engine) handIndex(p *Player) int {
	for i, q := range e.handPlayers {
		if q == p {
			return i
		}
	}
	return 0
}

// finishHand closes out the hand: busts short stacks, then schedules the next
// hand after a short window in which show options stay open.
func (e *Engine) finishHand() {
	e.handInProgress = false
	e.current = nil
	e.stopTurnTimer()

	for _, p := range e.group.Seated() {
		if p.Balance < e.cfg.BigBlind && p.State() != StateBusted {
			p.SetState(StateBusted)
			e.logger.Info("player busted", "player", p.ID, "slot", p.Slot)
			e.emit(Event{Type: EventPlayerBusted, PlayerID: p.ID, Slot: p.Slot})
		}
	}

	e.scheduleHandStart()
}

// abortHand handles an internal invariant violation: every participant gets
// their committed chips back, the ledger is untouched, and the hand is void.
func (e *Engine) abortHand(err error) {
	e.logger.Error("hand aborted", "error", err)

	for _, p := range e.handPlayers {
		p.Balance += p.HandBet
		p.HandBet = 0
		p.RoundBet = 0
	}
	e.finishHand()
}

func playerIDs(players []*Player) []string {
	ids := make([]string, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	return ids
}
