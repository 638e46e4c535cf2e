package table

import (
	"github.com/thoas/go-funk"
)

// Group is the table's seating: a fixed-size array of seats, the spectator
// list, and the three rotating indices. Indices reference a seated eligible
// player or are -1. All mutating methods run under the engine's table lock.
type Group struct {
	seats      []*Player
	spectators []*Player

	dealer     int
	smallBlind int
	bigBlind   int

	handsPlayed int
}

// NewGroup creates an empty group with the given seat capacity
func NewGroup(capacity int) *Group {
	return &Group{
		seats:      make([]*Player, capacity),
		dealer:     -1,
		smallBlind: -1,
		bigBlind:   -1,
	}
}

// Capacity returns the number of seats at the table
func (g *Group) Capacity() int { return len(g.seats) }

// Dealer returns the dealer seat index, -1 before the first hand
func (g *Group) Dealer() int { return g.dealer }

// SmallBlind returns the small blind seat index, -1 when suppressed
func (g *Group) SmallBlind() int { return g.smallBlind }

// BigBlind returns the big blind seat index
func (g *Group) BigBlind() int { return g.bigBlind }

// Seat returns the player at slot, nil if vacant
func (g *Group) Seat(slot int) *Player {
	if slot < 0 || slot >= len(g.seats) {
		return nil
	}
	return g.seats[slot]
}

// SeatSpectator adds a new spectating player. No seat is assigned.
func (g *Group) SeatSpectator(playerID string) (*Player, error) {
	if g.Find(playerID) != nil {
		return nil, ErrAlreadyJoined
	}

	p := NewPlayer(playerID)
	g.spectators = append(g.spectators, p)
	return p, nil
}

// TakeSeat moves a spectator into a seat. The player enters
// WAITING_FOR_BIG_BLIND: they cannot play until the blind reaches them, so
// buying in mid-hand never dodges a blind.
func (g *Group) TakeSeat(p *Player, slot int) error {
	if slot < 0 || slot >= len(g.seats) {
		return ErrNoSuchSeat
	}
	if g.seats[slot] != nil {
		return ErrSeatOccupied
	}
	if p.State() != StateWatching {
		return ErrNotSpectator
	}

	g.spectators = funk.Filter(g.spectators, func(s *Player) bool { return s != p }).([]*Player)
	g.seats[slot] = p
	p.Slot = slot
	p.SetState(StateWaitingForBigBlind)
	return nil
}

// VacateSeat removes the player from their seat and returns them to the
// spectator list.
func (g *Group) VacateSeat(p *Player) {
	if p.Slot >= 0 && p.Slot < len(g.seats) && g.seats[p.Slot] == p {
		g.seats[p.Slot] = nil
	}
	p.Slot = -1
	p.SetState(StateWatching)
	g.spectators = append(g.spectators, p)
}

// Remove deletes the player from the table entirely, seated or not
func (g *Group) Remove(p *Player) {
	if p.Slot >= 0 && p.Slot < len(g.seats) && g.seats[p.Slot] == p {
		g.seats[p.Slot] = nil
		p.Slot = -1
	}
	g.spectators = funk.Filter(g.spectators, func(s *Player) bool { return s != p }).([]*Player)
}

// Find returns the player with the given id, seated or spectating
func (g *Group) Find(playerID string) *Player {
	for _, p := range g.seats {
		if p != nil && p.ID == playerID {
			return p
		}
	}
	for _, p := range g.spectators {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

// Seated returns all seated players in seat order
func (g *Group) Seated() []*Player {
	players := make([]*Player, 0, len(g.seats))
	for _, p := range g.seats {
		if p != nil {
			players = append(players, p)
		}
	}
	return players
}

// Spectators returns the spectator list
func (g *Group) Spectators() []*Player { return g.spectators }

// PlayersClockwiseFrom returns all seated players starting at slot and
// walking clockwise. Used for stable showdown reveal sequencing.
func (g *Group) PlayersClockwiseFrom(slot int) []*Player {
	if slot < 0 {
		slot = 0
	}
	players := make([]*Player, 0, len(g.seats))
	for i := 0; i < len(g.seats); i++ {
		if p := g.seats[(slot+i)%len(g.seats)]; p != nil {
			players = append(players, p)
		}
	}
	return players
}

// ActiveInHand returns players dealt in and not folded, clockwise from the
// seat after the dealer.
func (g *Group) ActiveInHand() []*Player {
	return funk.Filter(g.PlayersClockwiseFrom(g.dealer+1), func(p *Player) bool {
		return p.InHand()
	}).([]*Player)
}

// ActiveInRound returns players who still take turns this betting round
func (g *Group) ActiveInRound() []*Player {
	return funk.Filter(g.PlayersClockwiseFrom(g.dealer+1), func(p *Player) bool {
		return p.CanActThisRound()
	}).([]*Player)
}

// FoldedPlayers returns players who folded this hand
func (g *Group) FoldedPlayers() []*Player {
	return funk.Filter(g.Seated(), func(p *Player) bool { return p.Folded() }).([]*Player)
}

// DealtIn returns every player who contributed chips to the current hand,
// folded or not. Side-pot math runs over this set.
func (g *Group) DealtIn() []*Player {
	return funk.Filter(g.Seated(), func(p *Player) bool {
		return p.HandBet > 0 || len(p.Cards) > 0
	}).([]*Player)
}

// eligibleForBigBlind reports whether the blinds may land on this player.
// Busted and sitting-out players are passed over; players waiting for the
// big blind (including missed-blind returners) are exactly who it should
// reach next.
func (g *Group) eligibleForBigBlind(p *Player) bool {
	switch p.State() {
	case StateBusted, StateSittingOut, StateWatching:
		return false
	default:
		return true
	}
}

// eligibleForButton reports whether the player can hold the dealer button or
// small blind. Before their first blind a player has no business on the
// button; on a fresh table nobody has played yet, so the restriction lifts.
func (g *Group) eligibleForButton(p *Player) bool {
	if !g.eligibleForBigBlind(p) {
		return false
	}
	if g.handsPlayed == 0 {
		return true
	}
	return p.State() != StateWaitingForBigBlind && !p.missedBlind
}

// EligibleForBlind returns the seated players the blind rotation considers
func (g *Group) EligibleForBlind() []*Player {
	return funk.Filter(g.Seated(), func(p *Player) bool {
		return g.eligibleForBigBlind(p)
	}).([]*Player)
}

// RotateDealerAndBlinds advances the blinds for the next hand, called once
// per completed hand (and once to seed the first). The big blind moves
// clockwise to the next eligible seat; sitting-out players passed over are
// flagged missedBlind so they must post before resuming. The small blind is
// the next button-eligible seat counter-clockwise of the new big blind,
// suppressed (-1) when it would land on the prior small blind again
// (heads-up edge case). It reports false when no eligible big blind exists.
func (g *Group) RotateDealerAndBlinds() bool {
	n := len(g.seats)
	prevSB := g.smallBlind

	newBB := -1
	start := g.bigBlind
	for i := 1; i <= n; i++ {
		idx := ((start + i) % n + n) % n
		p := g.seats[idx]
		if p == nil {
			continue
		}
		if p.State() == StateSittingOut {
			// Skipped a blind: must post before playing again.
			p.missedBlind = true
			continue
		}
		if !g.eligibleForBigBlind(p) {
			continue
		}
		newBB = idx
		break
	}
	if newBB == -1 {
		return false
	}
	g.bigBlind = newBB

	newSB := -1
	for i := 1; i < n; i++ {
		idx := ((newBB-i)%n + n) % n
		p := g.seats[idx]
		if p != nil && g.eligibleForButton(p) {
			newSB = idx
			break
		}
	}

	// The incoming big blind joins the hand even when not yet
	// button-eligible, so they count toward the heads-up determination.
	inHand := g.countButtonEligible()
	if !g.eligibleForButton(g.seats[newBB]) {
		inHand++
	}

	if newSB != -1 && newSB == prevSB && inHand <= 2 {
		g.smallBlind = -1
	} else {
		g.smallBlind = newSB
	}

	if inHand <= 2 {
		// Heads-up: the dealer is the small-blind seat.
		g.dealer = newSB
	} else {
		g.dealer = -1
		for i := 1; i < n; i++ {
			idx := ((newSB-i)%n + n) % n
			p := g.seats[idx]
			if p != nil && g.eligibleForButton(p) && idx != g.bigBlind {
				g.dealer = idx
				break
			}
		}
	}

	g.handsPlayed++
	return true
}

func (g *Group) countButtonEligible() int {
	count := 0
	for _, p := range g.seats {
		if p != nil && g.eligibleForButton(p) {
			count++
		}
	}
	return count
}
