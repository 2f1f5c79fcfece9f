package poker

import "fmt"

// Classification is the category of a hand together with the value used to
// break ties against another hand of the same category.
type Classification struct {
	Category Category `json:"category"`
	Tiebreak int      `json:"tiebreak"`
}

func (c Classification) String() string {
	return fmt.Sprintf("%s(%d)", c.Category, c.Tiebreak)
}

// features are computed once per hand and shared by every rule.
type features struct {
	hand       Hand
	rankCounts map[uint8]int
	suitCounts map[rune]int
}

func newFeatures(h Hand) features {
	f := features{
		hand:       h,
		rankCounts: make(map[uint8]int, HandSize),
		suitCounts: make(map[rune]int, HandSize),
	}
	for _, c := range h {
		f.rankCounts[c.rank]++
		f.suitCounts[c.suit]++
	}
	return f
}

func (f features) high() int {
	return int(f.hand.Highest().rank)
}

func (f features) isFlush() bool {
	return len(f.suitCounts) == 1
}

// isConsecutive reports whether each card is exactly one rank above the
// previous one. Ace is always 14, so A-2-3-4-5 is not consecutive.
func (f features) isConsecutive() bool {
	for i := 1; i < HandSize; i++ {
		if f.hand[i].rank != f.hand[i-1].rank+1 {
			return false
		}
	}
	return true
}

// rankWithCount returns the rank appearing exactly n times, if any.
func (f features) rankWithCount(n int) (uint8, bool) {
	for rank, count := range f.rankCounts {
		if count == n {
			return rank, true
		}
	}
	return 0, false
}

func (f features) pairs() []uint8 {
	var pairs []uint8
	for rank, count := range f.rankCounts {
		if count == 2 {
			pairs = append(pairs, rank)
		}
	}
	return pairs
}

// A rule returns the classification of the hand and true when it matches.
type rule func(f features) (Classification, bool)

// rules are checked strongest first; the first match wins.
var rules = []rule{
	royalFlush,
	straightFlush,
	fourOfAKind,
	fullHouse,
	flush,
	straight,
	threeOfAKind,
	twoPair,
	onePair,
	highCard,
}

// Classify returns the best category of the hand and its tiebreak value.
func Classify(h Hand) Classification {
	f := newFeatures(h)
	for _, r := range rules {
		if c, ok := r(f); ok {
			return c
		}
	}
	// highCard always matches
	panic("poker: no rule matched hand " + h.String())
}

func royalFlush(f features) (Classification, bool) {
	if f.isFlush() && f.isConsecutive() && f.high() == Ace {
		return Classification{RoyalFlush, Ace}, true
	}
	return Classification{}, false
}

func straightFlush(f features) (Classification, bool) {
	if f.isFlush() && f.isConsecutive() {
		return Classification{StraightFlush, f.high()}, true
	}
	return Classification{}, false
}

func fourOfAKind(f features) (Classification, bool) {
	if rank, ok := f.rankWithCount(4); ok {
		return Classification{FourOfAKind, int(rank)}, true
	}
	return Classification{}, false
}

func fullHouse(f features) (Classification, bool) {
	three, ok := f.rankWithCount(3)
	if !ok {
		return Classification{}, false
	}
	if _, ok := f.rankWithCount(2); !ok {
		return Classification{}, false
	}
	return Classification{FullHouse, int(three)}, true
}

func flush(f features) (Classification, bool) {
	if f.isFlush() {
		return Classification{Flush, f.high()}, true
	}
	return Classification{}, false
}

func straight(f features) (Classification, bool) {
	if f.isConsecutive() {
		return Classification{Straight, f.high()}, true
	}
	return Classification{}, false
}

func threeOfAKind(f features) (Classification, bool) {
	if rank, ok := f.rankWithCount(3); ok {
		return Classification{ThreeOfAKind, int(rank)}, true
	}
	return Classification{}, false
}

func twoPair(f features) (Classification, bool) {
	pairs := f.pairs()
	if len(pairs) != 2 {
		return Classification{}, false
	}
	return Classification{TwoPair, int(max(pairs[0], pairs[1]))}, true
}

func onePair(f features) (Classification, bool) {
	pairs := f.pairs()
	if len(pairs) != 1 {
		return Classification{}, false
	}
	return Classification{OnePair, int(pairs[0])}, true
}

func highCard(f features) (Classification, bool) {
	return Classification{HighCard, f.high()}, true
}
