package table

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerroom/internal/deck"
	"github.com/lox/pokerroom/internal/evaluator"
)

// BetController enforces bet and raise legality, accumulates the pot,
// generates side pots at the end of a hand and distributes winnings. It owns
// the table's ledger. Every method is invoked by the engine while holding
// the table lock.
type BetController struct {
	smallBlind int
	bigBlind   int

	// roundBet is the high-water mark of per-player round bets this street;
	// lastRaise the size of the most recent raise.
	roundBet  int
	lastRaise int

	totalPot int
	ledger   map[string]int

	logger *log.Logger
}

// NewBetController creates a bet controller for the given blinds
func NewBetController(smallBlind, bigBlind int, logger *log.Logger) *BetController {
	return &BetController{
		smallBlind: smallBlind,
		bigBlind:   bigBlind,
		ledger:     make(map[string]int),
		logger:     logger.WithPrefix("bets"),
	}
}

// RoundBet returns the current round-bet high-water mark
func (bc *BetController) RoundBet() int { return bc.roundBet }

// TotalPot returns the chips committed to the hand so far
func (bc *BetController) TotalPot() int { return bc.totalPot }

// MinRaiseTo returns the lowest legal raise-to total for the current street
func (bc *BetController) MinRaiseTo() int {
	raise := bc.lastRaise
	if raise == 0 {
		raise = bc.bigBlind
	}
	return bc.roundBet + raise
}

// Ledger returns a copy of the cumulative net winnings per player id
func (bc *BetController) Ledger() map[string]int {
	out := make(map[string]int, len(bc.ledger))
	for id, net := range bc.ledger {
		out[id] = net
	}
	return out
}

// RecordBuyIn debits a buy-in against the player's ledger entry
func (bc *BetController) RecordBuyIn(playerID string, amount int) {
	bc.ledger[playerID] -= amount
}

func (bc *BetController) commit(p *Player, amount int) error {
	if err := p.Bet(amount); err != nil {
		return err
	}
	bc.totalPot += amount
	return nil
}

// Call commits chips to match the current high-water mark, capped at the
// player's hand balance, and returns the amount committed.
func (bc *BetController) Call(p *Player) (int, error) {
	owed := bc.roundBet - p.RoundBet
	if owed <= 0 {
		return 0, nil
	}
	if owed > p.HandBalance {
		owed = p.HandBalance
	}
	if err := bc.commit(p, owed); err != nil {
		return 0, err
	}
	return owed, nil
}

// Raise raises the player's round bet to raiseTo. The new total must exceed
// the high-water mark by at least the previous raise (or the big blind for
// the first raise of the round); otherwise nothing changes.
func (bc *BetController) Raise(p *Player, raiseTo int) error {
	if raiseTo < bc.MinRaiseTo() {
		return ErrRaiseTooSmall
	}

	owed := raiseTo - p.RoundBet
	if owed > p.HandBalance {
		return ErrInsufficientFunds
	}
	if err := bc.commit(p, owed); err != nil {
		return err
	}

	bc.lastRaise = raiseTo - bc.roundBet
	bc.roundBet = raiseTo
	return nil
}

// AllIn commits the player's entire hand balance. It returns the amount
// committed and whether the commitment raised the high-water mark (which
// reopens betting for players who already acted).
func (bc *BetController) AllIn(p *Player) (int, bool) {
	amount := p.GoAllIn()
	bc.totalPot += amount

	raised := false
	if p.RoundBet > bc.roundBet {
		bc.lastRaise = p.RoundBet - bc.roundBet
		bc.roundBet = p.RoundBet
		raised = true
	}
	return amount, raised
}

// PostSmallBlind posts the forced small blind, short if the stack is short
func (bc *BetController) PostSmallBlind(p *Player) (int, error) {
	amount := bc.smallBlind
	if amount > p.HandBalance {
		amount = p.HandBalance
	}
	if err := bc.commit(p, amount); err != nil {
		return 0, err
	}
	return amount, nil
}

// PostBigBlind posts the forced big blind and establishes the opening
// high-water mark and raise size for the preflop round.
func (bc *BetController) PostBigBlind(p *Player) (int, error) {
	amount := bc.bigBlind
	if amount > p.HandBalance {
		amount = p.HandBalance
	}
	if err := bc.commit(p, amount); err != nil {
		return 0, err
	}

	bc.roundBet = bc.bigBlind
	bc.lastRaise = bc.bigBlind
	return amount, nil
}

// ResetForNewBettingRound clears the per-street raise state
func (bc *BetController) ResetForNewBettingRound() {
	bc.roundBet = 0
	bc.lastRaise = 0
}

// ResetForNewHand additionally zeroes the pot
func (bc *BetController) ResetForNewHand() {
	bc.ResetForNewBettingRound()
	bc.totalPot = 0
}

// GeneratePots builds the main and side pots at the end of the final betting
// round. players must be every player who contributed to the hand (folded
// players included; their chips fund the pots but they hold no claim), in
// clockwise order from the dealer. Pots are ordered smallest stakes first,
// which is also the award order.
//
// The algorithm peels contribution levels ascending: each distinct hand-bet
// total among non-folded players caps one pot; everyone who bet at least
// that level funds the slice between the previous level and this one, and
// players exactly at the level are covered and drop out of later pots.
// Chips a folded player committed above the highest surviving level have no
// claimant slice of their own and ride along with the last pot.
func (bc *BetController) GeneratePots(players []*Player) ([]*Pot, error) {
	levels := make([]int, 0, len(players))
	for _, p := range players {
		if p.InHand() && p.HandBet > 0 {
			levels = append(levels, p.HandBet)
		}
	}
	sort.Ints(levels)

	var pots []*Pot
	offset := 0
	for _, level := range levels {
		if level <= offset {
			continue // duplicate level, already peeled
		}

		pot := &Pot{}
		for _, p := range players {
			contribution := min(p.HandBet, level) - min(p.HandBet, offset)
			if contribution > 0 {
				pot.Size += contribution
			}
			if p.InHand() && p.HandBet >= level {
				pot.Eligible = append(pot.Eligible, p)
			}
		}

		if pot.Size < 0 || len(pot.Eligible) == 0 {
			return nil, fmt.Errorf("%w: pot of size %d with %d eligible players", ErrInvariant, pot.Size, len(pot.Eligible))
		}
		pots = append(pots, pot)
		offset = level
	}

	total := 0
	for _, pot := range pots {
		total += pot.Size
	}
	committed := 0
	for _, p := range players {
		committed += p.HandBet
	}

	// A folded player can be the hand's biggest contributor, for example the
	// street's largest bettor leaving before shorter stacks shove. Their
	// forfeited excess goes to whoever wins the last pot.
	if residual := committed - total; residual > 0 && len(pots) > 0 {
		pots[len(pots)-1].Size += residual
		total += residual
	}

	if total != committed {
		return nil, fmt.Errorf("%w: pots sum to %d but players committed %d", ErrInvariant, total, committed)
	}

	return pots, nil
}

// PotResult records the outcome of one pot at showdown
type PotResult struct {
	Pot     *Pot
	Winners []*Player
	Share   int
	// Remainder is the odd-chip leftover when the pot does not divide
	// evenly; it goes to the first winner clockwise from the dealer.
	Remainder int
}

// ShowdownResult aggregates pot outcomes and reveal obligations
type ShowdownResult struct {
	Results []PotResult

	// ForcedShow holds the single best hand across all pots' winners and
	// must reveal. Everyone else dealt to showdown may muck.
	ForcedShow   *Player
	OptionToShow []*Player
	AutoMucked   []*Player
}

// DistributePots evaluates each pot's eligible hands against the board,
// splits pots among the maximal-rank winners and credits balances and the
// ledger. revealOrder fixes showdown precedence: last aggressor first, or
// clockwise from the small blind when the final round saw no bet.
func (bc *BetController) DistributePots(pots []*Pot, board []deck.Card, revealOrder []*Player) (*ShowdownResult, error) {
	ranks := make(map[*Player]evaluator.HandRank)
	rankOf := func(p *Player) (evaluator.HandRank, error) {
		if rank, ok := ranks[p]; ok {
			return rank, nil
		}
		rank, err := evaluator.Evaluate(board, p.Cards)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvariant, err)
		}
		ranks[p] = rank
		return rank, nil
	}

	result := &ShowdownResult{}

	// Rank every pot before touching balances: an InvariantViolation must
	// not leave the ledger half-updated.
	type award struct {
		pot     *Pot
		winners []*Player
	}
	awards := make([]award, 0, len(pots))
	for _, pot := range pots {
		var best evaluator.HandRank
		var winners []*Player
		for _, p := range pot.Eligible {
			rank, err := rankOf(p)
			if err != nil {
				return nil, err
			}
			switch {
			case len(winners) == 0 || rank.Compare(best) > 0:
				best = rank
				winners = []*Player{p}
			case rank.Compare(best) == 0:
				winners = append(winners, p)
			}
		}
		if len(winners) == 0 {
			return nil, fmt.Errorf("%w: pot with no winners", ErrInvariant)
		}
		awards = append(awards, award{pot: pot, winners: winners})
	}

	for _, a := range awards {
		share := a.pot.Size / len(a.winners)
		remainder := a.pot.Size % len(a.winners)

		for i, w := range a.winners {
			won := share
			if i == 0 {
				// Odd chip to the first winner clockwise from the dealer.
				won += remainder
			}
			w.Balance += won
			bc.ledger[w.ID] += won
		}

		result.Results = append(result.Results, PotResult{
			Pot:       a.pot,
			Winners:   a.winners,
			Share:     share,
			Remainder: remainder,
		})
	}

	// The single best hand among all winners is obliged to show, first by
	// reveal-order precedence on ties.
	var best evaluator.HandRank
	haveBest := false
	for _, a := range awards {
		for _, w := range a.winners {
			if rank := ranks[w]; !haveBest || rank.Compare(best) > 0 {
				best = rank
				haveBest = true
			}
		}
	}
	for _, p := range revealOrder {
		if !p.InHand() {
			continue
		}
		if rank, ok := ranks[p]; ok && rank.Compare(best) == 0 {
			result.ForcedShow = p
			break
		}
	}

	for _, p := range revealOrder {
		if !p.InHand() || p == result.ForcedShow {
			continue
		}
		if p.Settings.AutoMuck {
			result.AutoMucked = append(result.AutoMucked, p)
		} else {
			result.OptionToShow = append(result.OptionToShow, p)
		}
	}

	return result, nil
}

// AwardUncontested pays the whole pot to the sole remaining player without a
// showdown and returns the amount.
func (bc *BetController) AwardUncontested(p *Player) int {
	won := bc.totalPot
	p.Balance += won
	bc.ledger[p.ID] += won
	return won
}
