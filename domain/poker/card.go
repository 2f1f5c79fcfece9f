package poker

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Rank constants for face cards and ace
const (
	Ten   = 10 // T
	Jack  = 11 // J
	Queen = 12 // Q
	King  = 13 // K
	Ace   = 14 // A (always high, never low in straights)
)

const (
	minRank = 2
	maxRank = Ace
)

var (
	ErrInvalidToken = errors.New("invalid card token")
	ErrInvalidCard  = errors.New("invalid card")
)

// rankTable maps every accepted rank character to its rank value.
var rankTable = map[rune]uint8{
	'2': 2, '3': 3, '4': 4, '5': 5, '6': 6, '7': 7, '8': 8, '9': 9,
	'T': Ten, 'J': Jack, 'Q': Queen, 'K': King, 'A': Ace,
}

// rankSymbols is the inverse of rankTable, indexed by rank value.
var rankSymbols = [...]rune{
	2: '2', 3: '3', 4: '4', 5: '5', 6: '6', 7: '7', 8: '8', 9: '9',
	Ten: 'T', Jack: 'J', Queen: 'Q', King: 'K', Ace: 'A',
}

// Card represents a playing card with rank and suit.
// The suit is an opaque symbol only ever compared for equality.
type Card struct {
	rank uint8 // 2-14: two through ace
	suit rune
}

// NewCard creates a new Card with validation.
//
// Parameters:
//   - rank: 2-14 (2-10=face value, Jack=11, Queen=12, King=13, Ace=14)
//   - suit: any non-whitespace rune
//
// Returns the Card or an error if rank or suit is invalid.
func NewCard(rank uint8, suit rune) (Card, error) {
	if rank < minRank || rank > maxRank {
		return Card{}, fmt.Errorf("%w: rank %d", ErrInvalidCard, rank)
	}
	if !validSuit(suit) {
		return Card{}, fmt.Errorf("%w: suit %q", ErrInvalidCard, suit)
	}
	return Card{rank: rank, suit: suit}, nil
}

// ParseCard converts a two-character token such as "TD" or "5♥" into a Card.
// The first character is the rank, the second the suit.
func ParseCard(token string) (Card, error) {
	if utf8.RuneCountInString(token) != 2 {
		return Card{}, fmt.Errorf("%w %q: expected 2 characters", ErrInvalidToken, token)
	}
	r, size := utf8.DecodeRuneInString(token)
	s, _ := utf8.DecodeRuneInString(token[size:])

	rank, ok := rankTable[r]
	if !ok {
		return Card{}, fmt.Errorf("%w %q: unknown rank %q", ErrInvalidToken, token, r)
	}
	if !validSuit(s) {
		return Card{}, fmt.Errorf("%w %q: invalid suit %q", ErrInvalidToken, token, s)
	}
	return Card{rank: rank, suit: s}, nil
}

// validSuit accepts any decoded character that is not whitespace.
func validSuit(s rune) bool {
	return s != utf8.RuneError && !unicode.IsSpace(s)
}

// Rank returns the rank value of the Card (2-14: two through ace).
func (c Card) Rank() uint8 {
	return c.rank
}

// Suit returns the suit symbol of the Card.
func (c Card) Suit() rune {
	return c.suit
}

// String returns the two-character token the card was parsed from.
func (c Card) String() string {
	if c.rank < minRank || c.rank > maxRank {
		return "??"
	}
	return string([]rune{rankSymbols[c.rank], c.suit})
}

// MarshalText encodes the card as its token. The zero Card encodes as an
// empty string.
func (c Card) MarshalText() ([]byte, error) {
	if c == (Card{}) {
		return []byte{}, nil
	}
	if c.rank < minRank || c.rank > maxRank {
		return nil, fmt.Errorf("%w: rank %d", ErrInvalidCard, c.rank)
	}
	return []byte(c.String()), nil
}

func (c *Card) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*c = Card{}
		return nil
	}
	parsed, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
