package poker

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// HandSize is the number of cards in an evaluated hand.
const HandSize = 5

var ErrHandSize = errors.New("a hand must contain exactly 5 cards")

// Hand is five cards kept in ascending rank order.
// Cards of equal rank keep the order they were given in.
type Hand [HandSize]Card

// NewHand sorts the given cards by rank and returns them as a Hand.
func NewHand(cards ...Card) (Hand, error) {
	if len(cards) != HandSize {
		return Hand{}, fmt.Errorf("%w, got %d", ErrHandSize, len(cards))
	}
	var h Hand
	for i, c := range cards {
		if c.rank < minRank || c.rank > maxRank {
			return Hand{}, fmt.Errorf("card %d: %w: rank %d", i, ErrInvalidCard, c.rank)
		}
		h[i] = c
	}
	slices.SortStableFunc(h[:], func(a, b Card) int {
		return cmp.Compare(a.rank, b.rank)
	})
	return h, nil
}

// ParseHand parses five card tokens into a Hand.
func ParseHand(tokens []string) (Hand, error) {
	if len(tokens) != HandSize {
		return Hand{}, fmt.Errorf("%w, got %d tokens", ErrHandSize, len(tokens))
	}
	cards := make([]Card, 0, HandSize)
	for _, tok := range tokens {
		c, err := ParseCard(tok)
		if err != nil {
			return Hand{}, err
		}
		cards = append(cards, c)
	}
	return NewHand(cards...)
}

// Highest returns the highest ranked card of the hand.
func (h Hand) Highest() Card {
	return h[HandSize-1]
}

func (h Hand) String() string {
	parts := make([]string, HandSize)
	for i, c := range h {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
