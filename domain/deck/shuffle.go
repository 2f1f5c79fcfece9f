package deck

import (
	"bufio"
	"crypto/cipher"
	"fmt"
	"io"
	"math/big"
	"strings"

	"go.dedis.ch/kyber/v4/util/random"

	"github.com/luca-patrignani/poker-tally/domain/poker"
)

// Shuffle collects every card back into the deck and reorders it with a
// Fisher-Yates shuffle driven by the deck's random stream.
func (d *Deck) Shuffle() {
	d.next = 0
	perm := permutation(len(d.cards), d.stream)
	shuffled := make([]poker.Card, len(d.cards))
	for i, j := range perm {
		shuffled[i] = d.cards[j]
	}
	d.cards = shuffled
}

// Helper function to generate a random permutation of size permSize
func permutation(permSize int, stream cipher.Stream) []int {
	perm := make([]int, permSize)
	for i := range perm {
		perm[i] = i
	}
	for i := permSize - 1; i > 0; i-- {
		j := int(random.Int(big.NewInt(int64(i+1)), stream).Int64())
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

// GenerateLines writes n hand-history lines to w. Every line is dealt from a
// freshly shuffled deck: five cards for player 1, then five for player 2.
func GenerateLines(w io.Writer, n int, opts ...option) error {
	d, err := New(opts...)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	tokens := make([]string, 0, 2*poker.HandSize)
	for i := 0; i < n; i++ {
		d.Shuffle()
		cards, err := d.Draw(2 * poker.HandSize)
		if err != nil {
			return err
		}
		tokens = tokens[:0]
		for _, c := range cards {
			tokens = append(tokens, c.String())
		}
		if _, err := fmt.Fprintln(bw, strings.Join(tokens, " ")); err != nil {
			return fmt.Errorf("failed to write line %d: %w", i+1, err)
		}
	}
	return bw.Flush()
}
