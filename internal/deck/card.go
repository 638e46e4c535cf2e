package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// rankLetters and suitLetters define the compact wire notation. A card code
// is one rank letter followed by one suit letter, "As" for the ace of spades.
// Both tables are ordered by their type's constant values.
const (
	rankLetters = "23456789TJQKA"
	suitLetters = "shdc"
)

// String returns the display glyph for a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Letter returns the single-letter suit code used in wire payloads
func (s Suit) Letter() string {
	if s < Spades || s > Clubs {
		return "?"
	}
	return string(suitLetters[s])
}

// SuitFromLetter is the inverse of Letter. It accepts either case.
func SuitFromLetter(b byte) (Suit, bool) {
	if 'A' <= b && b <= 'Z' {
		b += 'a' - 'A'
	}
	i := strings.IndexByte(suitLetters, b)
	if i < 0 {
		return 0, false
	}
	return Suit(i), true
}

// Rank represents a card rank
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the rank letter ("2" through "9", "T", "J", "Q", "K", "A")
func (r Rank) String() string {
	if r < Two || r > Ace {
		return "?"
	}
	return string(rankLetters[r-Two])
}

// RankFromLetter is the inverse of String. It accepts either case.
func RankFromLetter(b byte) (Rank, bool) {
	if 'a' <= b && b <= 'z' {
		b -= 'a' - 'A'
	}
	i := strings.IndexByte(rankLetters, b)
	if i < 0 {
		return 0, false
	}
	return Two + Rank(i), true
}

// Card represents a playing card. Cards are immutable value types: two cards
// with the same suit and rank compare equal.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the display representation of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Code returns the two-letter wire representation of a card (e.g., "As")
func (c Card) Code() string {
	return c.Rank.String() + c.Suit.Letter()
}

// Index returns a fixed integer index for the card, rank-major and
// suit-minor, in the range 1..52. The evaluator's lookup tables are keyed by
// this index.
func (c Card) Index() int {
	return int(c.Rank-Two)*4 + int(c.Suit) + 1
}

// ParseCard parses a single two-letter card code. It is the inverse of Code.
func ParseCard(code string) (Card, error) {
	if len(code) != 2 {
		return Card{}, fmt.Errorf("card code %q must be two characters", code)
	}
	rank, ok := RankFromLetter(code[0])
	if !ok {
		return Card{}, fmt.Errorf("card code %q has no rank %q", code, code[0])
	}
	suit, ok := SuitFromLetter(code[1])
	if !ok {
		return Card{}, fmt.Errorf("card code %q has no suit %q", code, code[1])
	}
	return Card{Suit: suit, Rank: rank}, nil
}

// ParseCards parses concatenated card codes, with optional spaces between
// them ("AsKd" or "As Kd").
func ParseCards(s string) ([]Card, error) {
	s = strings.ReplaceAll(s, " ", "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("card string %q has an odd length", s)
	}

	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		card, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// MustParseCards is ParseCards for hard-coded notation; it panics on error
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}
