package poker

// Winner identifies which of the two players takes a hand.
type Winner uint8

const (
	Player1 Winner = iota + 1
	Player2
)

func (w Winner) String() string {
	switch w {
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	}
	return "none"
}

// Cmp orders two classifications: category first, then tiebreak.
// It returns 1 when a is stronger, -1 when b is stronger and 0 on an exact tie.
func Cmp(a, b Classification) int {
	switch {
	case a.Category > b.Category:
		return 1
	case a.Category < b.Category:
		return -1
	case a.Tiebreak > b.Tiebreak:
		return 1
	case a.Tiebreak < b.Tiebreak:
		return -1
	}
	return 0
}

// Compare decides the winner between player 1 and player 2.
// Player 1 only wins when strictly stronger, so exact ties go to player 2.
func Compare(p1, p2 Classification) Winner {
	if Cmp(p1, p2) > 0 {
		return Player1
	}
	return Player2
}
