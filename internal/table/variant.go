package table

// Variant describes a community-card poker variant as plain data: how many
// hole cards each player receives, how many community cards are revealed at
// the start of each betting round, and the raise cap per round. The engine is
// parameterized by a Variant rather than subclassed per game.
type Variant struct {
	Name          string `json:"name"`
	HoleCards     int    `json:"holeCards"`
	DealsPerRound []int  `json:"dealsPerRound"`
	MaxRaises     int    `json:"maxRaises"`
}

// BettingRounds returns the number of betting rounds in a hand
func (v Variant) BettingRounds() int {
	return len(v.DealsPerRound)
}

// Holdem is Texas hold'em: two hole cards, streets of 0/3/1/1 community
// cards, and a conventional cap of one bet plus three raises per round.
var Holdem = Variant{
	Name:          "holdem",
	HoleCards:     2,
	DealsPerRound: []int{0, 3, 1, 1},
	MaxRaises:     4,
}
