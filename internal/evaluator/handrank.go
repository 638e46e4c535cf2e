package evaluator

// HandRank is an opaque, totally ordered hand strength. Higher values are
// stronger. The upper bits carry the hand category, the lower bits a detail
// index, so ranks from different categories compare correctly and
// equal-strength hands (same ranks, different suits) compare equal.
type HandRank uint32

const detailBits = 20

// Category enumerates hand classifications from weakest to strongest.
type Category uint8

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns a human-readable category name
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

func makeRank(c Category, detail uint32) HandRank {
	return HandRank(uint32(c)<<detailBits | detail)
}

// Category returns the hand classification encoded in the rank's upper bits
func (hr HandRank) Category() Category {
	return Category(hr >> detailBits)
}

// String returns the category name for the rank
func (hr HandRank) String() string {
	return hr.Category().String()
}

// Compare returns 1 if hr is stronger than other, -1 if weaker, 0 if equal
func (hr HandRank) Compare(other HandRank) int {
	if hr > other {
		return 1
	} else if hr < other {
		return -1
	}
	return 0
}
