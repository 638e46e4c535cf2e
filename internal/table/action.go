package table

// ActionType identifies an inbound player action
type ActionType string

const (
	ActionJoin        ActionType = "JOIN"
	ActionSit         ActionType = "SIT"
	ActionLeave       ActionType = "LEAVE"
	ActionDisconnect  ActionType = "DISCONNECT"
	ActionFold        ActionType = "FOLD"
	ActionCheck       ActionType = "CHECK"
	ActionCall        ActionType = "CALL"
	ActionRaise       ActionType = "RAISE"
	ActionAllIn       ActionType = "ALL_IN"
	ActionShowCards   ActionType = "SHOW_CARDS"
	ActionSetAutoMuck ActionType = "SET_AUTO_MUCK"
	ActionSitOut      ActionType = "SIT_OUT"
	ActionSitIn       ActionType = "SIT_IN"

	// actionTurnTimeout is generated internally by the turn timer and never
	// accepted from a transport.
	actionTurnTimeout ActionType = "TURN_TIMEOUT"
)

// Action is an already-parsed inbound action tuple. Slot, Value and Enabled
// are meaningful only for the action types that use them.
type Action struct {
	Type     ActionType
	PlayerID string
	Slot     int
	Value    int
	Enabled  bool

	// turnID tags timeout actions with the turn counter captured when the
	// timer was armed, so a timeout for a superseded turn is a no-op.
	turnID uint64
}
