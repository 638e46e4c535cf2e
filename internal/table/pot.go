package table

// Pot is one pot being contested: the main pot or a side pot. Eligible holds
// the players with a claim on it, in clockwise order from the dealer.
type Pot struct {
	Size     int
	Eligible []*Player
}

// PlayerIDs returns the ids of the eligible players
func (p *Pot) PlayerIDs() []string {
	ids := make([]string, len(p.Eligible))
	for i, pl := range p.Eligible {
		ids[i] = pl.ID
	}
	return ids
}

// View returns the wire representation of the pot
func (p *Pot) View() PotView {
	return PotView{Size: p.Size, Eligible: p.PlayerIDs()}
}

func potViews(pots []*Pot) []PotView {
	views := make([]PotView, len(pots))
	for i, pot := range pots {
		views[i] = pot.View()
	}
	return views
}
