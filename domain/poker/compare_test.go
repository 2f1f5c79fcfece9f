package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareScenarios(t *testing.T) {
	tests := []struct {
		name     string
		player1  string
		player2  string
		expected Winner
	}{
		{name: "pair of fives against pair of eights", player1: "5H 5C 6S 7S KD", player2: "2C 3S 8S 8D TD", expected: Player2},
		{name: "jack high against queen high", player1: "5D 8C 9S JS TC", player2: "2C 5C 7D 8S QH", expected: Player2},
		{name: "full house fours against full house threes", player1: "2H 2D 4C 4D 4S", player2: "3C 3D 3S 9S 9D", expected: Player1},
		{name: "flush beats straight", player1: "2C 5C 7C 9C KC", player2: "4H 5C 6D 7S 8H", expected: Player1},
		{name: "straight flush beats four of a kind", player1: "5S 6S 7S 8S 9S", player2: "AH AD AS AC KH", expected: Player1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p1 := Classify(mustHand(t, tt.player1))
			p2 := Classify(mustHand(t, tt.player2))
			assert.Equal(t, tt.expected, Compare(p1, p2))
		})
	}
}

func TestCompareCategoryDominatesTiebreak(t *testing.T) {
	for i, stronger := range Categories {
		for _, weaker := range Categories[:i] {
			p1 := Classification{Category: stronger, Tiebreak: 2}
			p2 := Classification{Category: weaker, Tiebreak: 14}
			assert.Equal(t, Player1, Compare(p1, p2), "%s vs %s", stronger, weaker)
			assert.Equal(t, Player2, Compare(p2, p1), "%s vs %s", weaker, stronger)
		}
	}
}

func TestCompareExactTieGoesToPlayer2(t *testing.T) {
	p := Classification{Category: OnePair, Tiebreak: 9}
	assert.Equal(t, 0, Cmp(p, p))
	assert.Equal(t, Player2, Compare(p, p))
}

func TestCmp(t *testing.T) {
	assert.Equal(t, 1, Cmp(Classification{Flush, 9}, Classification{Flush, 8}))
	assert.Equal(t, -1, Cmp(Classification{Flush, 8}, Classification{Flush, 9}))
	assert.Equal(t, -1, Cmp(Classification{Straight, 14}, Classification{Flush, 7}))
}

func TestWinnerString(t *testing.T) {
	assert.Equal(t, "player1", Player1.String())
	assert.Equal(t, "player2", Player2.String())
	assert.Equal(t, "none", Winner(0).String())
}
