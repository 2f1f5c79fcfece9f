package deck

import (
	"crypto/cipher"
	"errors"
	"fmt"

	"go.dedis.ch/kyber/v4/suites"

	"github.com/luca-patrignani/poker-tally/domain/poker"
)

// DeckSize is the number of cards in a standard deck.
const DeckSize = 52

// Suits used when dealing, in deck order.
var Suits = []rune{'C', 'D', 'H', 'S'}

var ErrDeckExhausted = errors.New("not enough cards left in the deck")

var suite suites.Suite = suites.MustFind("Ed25519")

// Deck is a standard 52-card deck dealt from the top.
type Deck struct {
	cards  []poker.Card
	next   int
	stream cipher.Stream
}

type option func(*Deck)

// WithStream draws shuffle randomness from the given stream instead of the
// Ed25519 suite's random stream.
func WithStream(s cipher.Stream) option {
	return func(d *Deck) {
		d.stream = s
	}
}

// New returns an ordered deck: every suit from two to ace.
func New(opts ...option) (*Deck, error) {
	d := &Deck{
		cards: make([]poker.Card, 0, DeckSize),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.stream == nil {
		d.stream = suite.RandomStream()
	}
	for _, s := range Suits {
		for r := uint8(2); r <= poker.Ace; r++ {
			c, err := poker.NewCard(r, s)
			if err != nil {
				return nil, fmt.Errorf("failed to build deck: %w", err)
			}
			d.cards = append(d.cards, c)
		}
	}
	return d, nil
}

// Remaining returns how many cards can still be drawn.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}

// Cards returns a copy of the cards not drawn yet, top first.
func (d *Deck) Cards() []poker.Card {
	out := make([]poker.Card, d.Remaining())
	copy(out, d.cards[d.next:])
	return out
}

// Draw deals n cards from the top of the deck.
func (d *Deck) Draw(n int) ([]poker.Card, error) {
	if n < 0 || n > d.Remaining() {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrDeckExhausted, n, d.Remaining())
	}
	out := make([]poker.Card, n)
	copy(out, d.cards[d.next:d.next+n])
	d.next += n
	return out, nil
}
