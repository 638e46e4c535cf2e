package server

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerroom/internal/table"
)

// testConnection builds a connection without a live websocket; frames land in
// the send buffer where the test can read them.
func testConnection(t *testing.T, playerID string) *Connection {
	t.Helper()
	c := NewConnection(nil, nil, log.New(io.Discard))
	c.setPlayerID(playerID)
	return c
}

func receivedTypes(t *testing.T, c *Connection) []string {
	t.Helper()
	var types []string
	for {
		select {
		case data := <-c.send:
			var msg ServerMessage
			require.NoError(t, json.Unmarshal(data, &msg))
			types = append(types, msg.Type)
		default:
			return types
		}
	}
}

func TestHubBroadcastsToAllSubscribers(t *testing.T) {
	h := NewHub("t1", log.New(io.Discard))
	a := testConnection(t, "a")
	b := testConnection(t, "b")
	h.subscribe(a)
	h.subscribe(b)

	h.Emit(table.Event{Type: table.EventNewHand, Value: 7})

	assert.Equal(t, []string{"NEW_HAND"}, receivedTypes(t, a))
	assert.Equal(t, []string{"NEW_HAND"}, receivedTypes(t, b))
}

func TestHubTargetedEventsReachOnlyTheTarget(t *testing.T) {
	h := NewHub("t1", log.New(io.Discard))
	a := testConnection(t, "a")
	b := testConnection(t, "b")
	h.subscribe(a)
	h.subscribe(b)

	h.Emit(table.Event{Type: table.EventPlayerDeal, PlayerID: "a", Targets: []string{"a"}})

	assert.Equal(t, []string{"PLAYER_DEAL"}, receivedTypes(t, a))
	assert.Empty(t, receivedTypes(t, b))
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	h := NewHub("t1", log.New(io.Discard))
	a := testConnection(t, "a")
	h.subscribe(a)
	h.unsubscribe(a)

	h.Emit(table.Event{Type: table.EventNewHand})

	assert.Empty(t, receivedTypes(t, a))
	assert.Zero(t, h.subscriberCount())
}

func TestHubEventWireFormat(t *testing.T) {
	h := NewHub("t1", log.New(io.Discard))
	a := testConnection(t, "a")
	h.subscribe(a)

	h.Emit(table.Event{
		Type:     table.EventPotWon,
		Value:    30,
		PlayerID: "a",
		Slot:     2,
		Pots:     []table.PotView{{Size: 30, Eligible: []string{"a", "b"}}},
	})

	data := <-a.send
	var msg ServerMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "POT_WON", msg.Type)
	assert.Equal(t, "t1", msg.TableID)
	assert.Equal(t, 30, msg.Value)
	assert.Equal(t, "a", msg.PlayerID)
	require.NotNil(t, msg.Slot)
	assert.Equal(t, 2, *msg.Slot)
	require.Len(t, msg.Pots, 1)
	assert.Equal(t, []string{"a", "b"}, msg.Pots[0].Eligible)
}
