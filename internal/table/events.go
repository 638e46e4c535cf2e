package table

import "github.com/lox/pokerroom/internal/deck"

// EventType identifies an outbound engine event
type EventType string

const (
	EventNewHand            EventType = "NEW_HAND"
	EventNewTurn            EventType = "NEW_TURN"
	EventPlayerDeal         EventType = "PLAYER_DEAL"
	EventCenterDeal         EventType = "CENTER_DEAL"
	EventSmallBlind         EventType = "SMALL_BLIND"
	EventBigBlind           EventType = "BIG_BLIND"
	EventFold               EventType = "FOLD"
	EventCheck              EventType = "CHECK"
	EventCall               EventType = "CALL"
	EventRaise              EventType = "RAISE"
	EventAllIn              EventType = "ALL_IN"
	EventBettingRoundOver   EventType = "BETTING_ROUND_OVER"
	EventPotWon             EventType = "POT_WON"
	EventShowCards          EventType = "SHOW_CARDS"
	EventMuckCards          EventType = "MUCK_CARDS"
	EventOptionToShowCards  EventType = "OPTION_TO_SHOW_CARDS"
	EventTurnExpired        EventType = "TURN_EXPIRED"
	EventPlayerJoined       EventType = "PLAYER_JOINED"
	EventPlayerSeated       EventType = "PLAYER_SEATED"
	EventPlayerLeft         EventType = "PLAYER_LEFT"
	EventPlayerBusted       EventType = "PLAYER_BUSTED"
	EventTableIdle          EventType = "TABLE_IDLE"
)

// PotView is the wire-friendly description of a pot
type PotView struct {
	Size     int      `json:"size"`
	Eligible []string `json:"eligible"`
}

// Event is a single outbound engine event. Targets lists the player ids the
// event is addressed to; nil means broadcast to the whole table. The engine
// never blocks on delivery; fan-out is the transport's problem.
type Event struct {
	Type      EventType
	Value     int
	Slot      int
	PlayerID  string
	PlayerIDs []string
	Cards     []deck.Card
	Pots      []PotView
	Targets   []string
}

// Sink receives every event the engine emits, synchronously, while the table
// lock is held. Implementations must not call back into the engine and must
// not block.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to the Sink interface
type SinkFunc func(Event)

// Emit implements Sink
func (f SinkFunc) Emit(ev Event) { f(ev) }

type nopSink struct{}

func (nopSink) Emit(Event) {}
