package deck

import (
	"fmt"
	"math/rand"
)

// Deck represents a deck of 52 unique playing cards. A cursor tracks how many
// cards have been dealt; Shuffle resets the cursor and produces a uniformly
// random permutation from the deck's RNG.
type Deck struct {
	cards [52]Card
	dealt int
	rng   *rand.Rand
}

// New creates a standard 52-card deck using the provided RNG. The caller owns
// seeding; the engine injects its RNG so shuffles are reproducible in tests.
func New(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}

	i := 0
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards[i] = NewCard(suit, rank)
			i++
		}
	}

	return d
}

// Restore rebuilds a deck from a previously recorded order and deal cursor.
// The order must be a permutation of all 52 cards.
func Restore(order []Card, dealt int, rng *rand.Rand) (*Deck, error) {
	if len(order) != 52 {
		return nil, fmt.Errorf("deck order has %d cards, want 52", len(order))
	}
	if dealt < 0 || dealt > 52 {
		return nil, fmt.Errorf("deal cursor %d out of range", dealt)
	}

	d := &Deck{dealt: dealt, rng: rng}
	var seen [53]bool
	for i, c := range order {
		idx := c.Index()
		if idx < 1 || idx > 52 || seen[idx] {
			return nil, fmt.Errorf("deck order is not a permutation: bad card %v at %d", c, i)
		}
		seen[idx] = true
		d.cards[i] = c
	}
	return d, nil
}

// Shuffle randomizes the order of cards and resets the deal cursor
func (d *Deck) Shuffle() {
	d.dealt = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the next card. The second return is false once all
// 52 cards have been dealt.
func (d *Deck) Deal() (Card, bool) {
	if d.dealt >= len(d.cards) {
		return Card{}, false
	}

	card := d.cards[d.dealt]
	d.dealt++
	return card, true
}

// DealN deals n cards from the deck, returning fewer if the deck runs out
func (d *Deck) DealN(n int) []Card {
	if remaining := len(d.cards) - d.dealt; n > remaining {
		n = remaining
	}

	cards := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		if card, ok := d.Deal(); ok {
			cards = append(cards, card)
		}
	}

	return cards
}

// Order returns a copy of the deck's current card order, dealt cards first.
// Together with CardsDealt it captures the deck for a snapshot.
func (d *Deck) Order() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards[:])
	return out
}

// CardsDealt returns the number of cards dealt since the last shuffle
func (d *Deck) CardsDealt() int {
	return d.dealt
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards) - d.dealt
}
