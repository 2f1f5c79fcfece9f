package poker

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/paulhankin/poker"
)

var ErrTooManySuits = errors.New("hand uses more than four distinct suits")

// conventional suit letters, in the library's suit order
var conventionalSuits = map[rune]uint8{
	'C': 0, // clubs
	'D': 1, // diamonds
	'H': 2, // hearts
	'S': 3, // spades
	'♣': 0,
	'♦': 1,
	'♥': 2,
	'♠': 3,
}

// Describe returns the evaluator library's short description of the hand,
// for example "55-K-7-6" for a pair of fives with king, seven and six.
// The library plays the ace low in A-2-3-4-5 and calls it "5 straight",
// which Classify rates as a high card. The description is informational
// only: classification and comparison never depend on it.
func Describe(h Hand) (string, error) {
	cards, err := toLibraryCards(h)
	if err != nil {
		return "", err
	}
	return poker.Describe(cards[:])
}

// toLibraryCards maps the hand onto the four suits the evaluator knows.
// Conventional suit letters keep their usual suit; any other symbol takes
// the first library suit not used yet in this hand.
func toLibraryCards(h Hand) ([HandSize]poker.Card, error) {
	var out [HandSize]poker.Card
	assigned := make(map[rune]uint8, 4)
	used := [4]bool{}

	for _, c := range h {
		if s, ok := conventionalSuits[unicode.ToUpper(c.suit)]; ok && !used[s] {
			if _, seen := assigned[c.suit]; !seen {
				assigned[c.suit] = s
				used[s] = true
			}
		}
	}
	for _, c := range h {
		if _, ok := assigned[c.suit]; ok {
			continue
		}
		free := -1
		for i, u := range used {
			if !u {
				free = i
				break
			}
		}
		if free < 0 {
			return out, ErrTooManySuits
		}
		assigned[c.suit] = uint8(free)
		used[free] = true
	}

	for i, c := range h {
		rank := c.rank
		if rank == Ace {
			rank = 1
		}
		lc, err := poker.MakeCard(poker.Suit(assigned[c.suit]), poker.Rank(rank))
		if err != nil {
			return out, fmt.Errorf("invalid card %s: %w", c, err)
		}
		out[i] = lc
	}
	return out, nil
}
