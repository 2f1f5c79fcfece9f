package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	desc, err := Describe(mustHand(t, "5H 5C 6S 7S KD"))
	require.NoError(t, err)
	assert.Equal(t, "55-K-7-6", desc)
}

func TestDescribeWheelDiffersFromClassify(t *testing.T) {
	h := mustHand(t, "AH 2C 3D 4S 5H")
	desc, err := Describe(h)
	require.NoError(t, err)
	assert.Equal(t, "5 straight", desc)
	assert.Equal(t, Classification{HighCard, Ace}, Classify(h))
}

func TestToLibraryCardsSuitMapping(t *testing.T) {
	// two unconventional symbols share the hand with two conventional ones
	h := mustHand(t, "2H 5x 7S 9y KH")
	cards, err := toLibraryCards(h)
	require.NoError(t, err)
	assert.Len(t, cards, HandSize)
	assert.NotEqual(t, cards[0], cards[4])
}

func TestDescribeTooManySuits(t *testing.T) {
	_, err := Describe(mustHand(t, "2a 5b 7c 9d Ke"))
	assert.ErrorIs(t, err, ErrTooManySuits)
}

func TestDescribeMixedCaseSuits(t *testing.T) {
	// h and H are distinct symbols: five symbols do not fit four suits
	_, err := toLibraryCards(mustHand(t, "2h 5H 7s 9S KC"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooManySuits)
}
