package poker

import "fmt"

// Category is the strength class of a five-card hand.
// Higher values are stronger.
type Category uint8

const (
	HighCard Category = iota + 1
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// Categories lists every category from weakest to strongest.
var Categories = []Category{
	HighCard, OnePair, TwoPair, ThreeOfAKind, Straight,
	Flush, FullHouse, FourOfAKind, StraightFlush, RoyalFlush,
}

var categoryNames = map[Category]string{
	HighCard:      "HIGH_CARD",
	OnePair:       "ONE_PAIR",
	TwoPair:       "TWO_PAIR",
	ThreeOfAKind:  "THREE_OF_A_KIND",
	Straight:      "STRAIGHT",
	Flush:         "FLUSH",
	FullHouse:     "FULL_HOUSE",
	FourOfAKind:   "FOUR_OF_A_KIND",
	StraightFlush: "STRAIGHT_FLUSH",
	RoyalFlush:    "ROYAL_FLUSH",
}

var categoryLabels = map[Category]string{
	HighCard:      "High Card",
	OnePair:       "One Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
	RoyalFlush:    "Royal Flush",
}

func (c Category) Valid() bool {
	return c >= HighCard && c <= RoyalFlush
}

func (c Category) String() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// MarshalText encodes the category by name; the zero Category is empty.
func (c Category) MarshalText() ([]byte, error) {
	if c == 0 {
		return []byte{}, nil
	}
	name, ok := categoryNames[c]
	if !ok {
		return nil, fmt.Errorf("unknown category %d", uint8(c))
	}
	return []byte(name), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*c = 0
		return nil
	}
	for cat, name := range categoryNames {
		if name == string(text) {
			*c = cat
			return nil
		}
	}
	return fmt.Errorf("unknown category %q", text)
}
