package server

import (
	"github.com/lox/pokerroom/internal/deck"
	"github.com/lox/pokerroom/internal/table"
)

// Client message types that are not table actions
const (
	MessageTypeAuth       = "AUTH"
	MessageTypeListTables = "LIST_TABLES"
)

// Server message types wrapping non-event responses
const (
	MessageTypeAuthOK    = "AUTH_OK"
	MessageTypeTableList = "TABLE_LIST"
	MessageTypeError     = "ERROR"
)

// ClientMessage is one inbound websocket frame. Type is either AUTH,
// LIST_TABLES, or a table action name; action frames carry the table id and
// whichever of slot/value/enabled the action uses.
type ClientMessage struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId,omitempty"`
	TableID  string `json:"tableId,omitempty"`
	Slot     int    `json:"slot,omitempty"`
	Value    int    `json:"value,omitempty"`
	Enabled  bool   `json:"enabled,omitempty"`
}

// ServerMessage is one outbound websocket frame: either a table event or a
// direct response to the client.
type ServerMessage struct {
	Type    string `json:"type"`
	TableID string `json:"tableId,omitempty"`

	// Event payload fields, present as the event type requires.
	Value     int             `json:"value,omitempty"`
	Slot      *int            `json:"slot,omitempty"`
	PlayerID  string          `json:"playerId,omitempty"`
	PlayerIDs []string        `json:"playerIds,omitempty"`
	Cards     []string        `json:"cards,omitempty"`
	Pots      []table.PotView `json:"pots,omitempty"`

	// Response payload fields.
	Tables  []table.Metadata `json:"tables,omitempty"`
	Code    string           `json:"code,omitempty"`
	Message string           `json:"message,omitempty"`
}

func cardCodes(cards []deck.Card) []string {
	if len(cards) == 0 {
		return nil
	}
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Code()
	}
	return out
}

// eventMessage converts an engine event to its wire form
func eventMessage(tableID string, ev table.Event) ServerMessage {
	msg := ServerMessage{
		Type:      string(ev.Type),
		TableID:   tableID,
		Value:     ev.Value,
		PlayerID:  ev.PlayerID,
		PlayerIDs: ev.PlayerIDs,
		Cards:     cardCodes(ev.Cards),
		Pots:      ev.Pots,
	}
	if ev.PlayerID != "" {
		slot := ev.Slot
		msg.Slot = &slot
	}
	return msg
}

// actionTypes maps inbound frame types to engine actions. Anything not here
// and not AUTH/LIST_TABLES is rejected.
var actionTypes = map[string]table.ActionType{
	string(table.ActionJoin):        table.ActionJoin,
	string(table.ActionSit):         table.ActionSit,
	string(table.ActionLeave):       table.ActionLeave,
	string(table.ActionFold):        table.ActionFold,
	string(table.ActionCheck):       table.ActionCheck,
	string(table.ActionCall):        table.ActionCall,
	string(table.ActionRaise):       table.ActionRaise,
	string(table.ActionAllIn):       table.ActionAllIn,
	string(table.ActionShowCards):   table.ActionShowCards,
	string(table.ActionSetAutoMuck): table.ActionSetAutoMuck,
	string(table.ActionSitOut):      table.ActionSitOut,
	string(table.ActionSitIn):       table.ActionSitIn,
}
