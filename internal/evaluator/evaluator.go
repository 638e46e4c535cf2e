package evaluator

// 7-card hand evaluator. Cards are folded into per-suit rank bitmasks and the
// final rank is assembled from precomputed lookup tables built once at package
// init. The tables are read-only afterwards, so Evaluate is safe for
// unsynchronized concurrent use.

import (
	"fmt"
	"math/bits"

	"github.com/lox/pokerroom/internal/deck"
)

// straightHighTable maps a 13-bit rank mask to the high-card rank offset of
// the best straight it contains (0 if none). The wheel (A-2-3-4-5) reports a
// high card of 5, i.e. offset 3.
var straightHighTable [1 << 13]uint8

// top5Table maps a 13-bit rank mask to its five highest rank offsets packed
// base-13, highest first. Masks with fewer than five bits pack what they have.
var top5Table [1 << 13]uint32

func init() {
	for mask := 1; mask < 1<<13; mask++ {
		straightHighTable[mask] = straightHigh(uint16(mask))
		top5Table[mask] = packTop(uint16(mask), 5)
	}
}

func straightHigh(mask uint16) uint8 {
	seq := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4)
	if seq != 0 {
		return uint8(bits.Len16(seq)-1) + 4
	}

	const wheel = 0x100F // A,2,3,4,5
	if mask&wheel == wheel {
		return 3
	}

	return 0
}

func packTop(mask uint16, n int) uint32 {
	var packed uint32
	for i := 0; i < n; i++ {
		packed *= 13
		if mask != 0 {
			top := bits.Len16(mask) - 1
			packed += uint32(top)
			mask &^= 1 << top
		}
	}
	return packed
}

// Evaluate returns the rank of the best 5-card hand from 5 board cards and
// 2 hole cards. It is pure and deterministic. The 7 cards must be distinct;
// anything else is an InvariantViolation and returns an error.
func Evaluate(board, hole []deck.Card) (HandRank, error) {
	if len(board) != 5 || len(hole) != 2 {
		return 0, fmt.Errorf("evaluate requires 5 board and 2 hole cards, got %d and %d", len(board), len(hole))
	}

	var seen uint64
	var suitMasks [4]uint16
	fold := func(c deck.Card) error {
		bit := uint64(1) << c.Index() // rank-major, suit-minor, 1..52
		if seen&bit != 0 {
			return fmt.Errorf("duplicate card %s in evaluation", c)
		}
		seen |= bit
		suitMasks[c.Suit] |= 1 << uint(c.Rank-deck.Two)
		return nil
	}

	for _, c := range board {
		if err := fold(c); err != nil {
			return 0, err
		}
	}
	for _, c := range hole {
		if err := fold(c); err != nil {
			return 0, err
		}
	}

	return rankFromMasks(suitMasks), nil
}

// MustEvaluate is Evaluate for callers that have already validated the cards
// (the engine deals from a single deck, so duplicates cannot occur). It
// panics on invalid input rather than misranking a hand.
func MustEvaluate(board, hole []deck.Card) HandRank {
	rank, err := Evaluate(board, hole)
	if err != nil {
		panic(err)
	}
	return rank
}

func rankFromMasks(suitMasks [4]uint16) HandRank {
	rankMask := suitMasks[0] | suitMasks[1] | suitMasks[2] | suitMasks[3]

	// Flush check first; at most one suit can hold five of seven cards.
	for _, suitMask := range suitMasks {
		if bits.OnesCount16(suitMask) >= 5 {
			if high := straightHighTable[suitMask]; high > 0 {
				return makeRank(StraightFlush, uint32(high))
			}
			return makeRank(Flush, top5Table[suitMask])
		}
	}

	s0, s1, s2, s3 := suitMasks[0], suitMasks[1], suitMasks[2], suitMasks[3]
	quadsMask := s0 & s1 & s2 & s3
	tripCandidates := (s0 & s1 & s2) | (s0 & s1 & s3) | (s0 & s2 & s3) | (s1 & s2 & s3)
	tripsMask := tripCandidates &^ quadsMask
	pairsMask := ((s0 & s1) | (s0 & s2) | (s0 & s3) | (s1 & s2) | (s1 & s3) | (s2 & s3)) &^ tripCandidates

	if quadsMask != 0 {
		quad := uint32(bits.Len16(quadsMask) - 1)
		kicker := packTop(rankMask&^quadsMask, 1)
		return makeRank(FourOfAKind, quad*13+kicker)
	}

	if tripsMask != 0 {
		trip := uint16(bits.Len16(tripsMask) - 1)
		// A second set of trips doubles as the pair of a full house.
		pairCandidates := pairsMask | (tripsMask &^ (1 << trip))
		if pairCandidates != 0 {
			pair := uint32(bits.Len16(pairCandidates) - 1)
			return makeRank(FullHouse, uint32(trip)*13+pair)
		}
	}

	if high := straightHighTable[rankMask]; high > 0 {
		return makeRank(Straight, uint32(high))
	}

	if tripsMask != 0 {
		trip := uint16(bits.Len16(tripsMask) - 1)
		kickers := packTop(rankMask&^(1<<trip), 2)
		return makeRank(ThreeOfAKind, uint32(trip)*169+kickers)
	}

	if bits.OnesCount16(pairsMask) >= 2 {
		hi := uint16(bits.Len16(pairsMask) - 1)
		lo := uint16(bits.Len16(pairsMask&^(1<<hi)) - 1)
		kicker := packTop(rankMask&^(1<<hi)&^(1<<lo), 1)
		return makeRank(TwoPair, uint32(hi)*169+uint32(lo)*13+kicker)
	}

	if pairsMask != 0 {
		pair := uint16(bits.Len16(pairsMask) - 1)
		kickers := packTop(rankMask&^(1<<pair), 3)
		return makeRank(Pair, uint32(pair)*2197+kickers)
	}

	return makeRank(HighCard, top5Table[rankMask])
}
