package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/luca-patrignani/poker-tally/domain/poker"
)

// TokensPerLine is the number of card tokens on a hand-history line:
// five for player 1 followed by five for player 2.
const TokensPerLine = 2 * poker.HandSize

var (
	ErrMalformedLine = errors.New("malformed line")
	ErrMissingInput  = errors.New("missing input")
)

// LineError reports the 1-based line on which processing failed.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Round is the outcome of a single hand-history line.
type Round struct {
	Line          int                  `json:"line"`
	Player1       poker.Hand           `json:"player1"`
	Player2       poker.Hand           `json:"player2"`
	Player1Result poker.Classification `json:"player1_result"`
	Player2Result poker.Classification `json:"player2_result"`
	Winner        poker.Winner         `json:"winner"`
	Tie           bool                 `json:"tie,omitempty"`
}

// ParseLine splits a line into the two hands it contains.
func ParseLine(line string) (poker.Hand, poker.Hand, error) {
	tokens := strings.Fields(line)
	if len(tokens) != TokensPerLine {
		return poker.Hand{}, poker.Hand{}, fmt.Errorf("%w: expected %d tokens, got %d", ErrMalformedLine, TokensPerLine, len(tokens))
	}
	p1, err := poker.ParseHand(tokens[:poker.HandSize])
	if err != nil {
		return poker.Hand{}, poker.Hand{}, fmt.Errorf("player 1: %w", err)
	}
	p2, err := poker.ParseHand(tokens[poker.HandSize:])
	if err != nil {
		return poker.Hand{}, poker.Hand{}, fmt.Errorf("player 2: %w", err)
	}
	return p1, p2, nil
}

// PlayRound parses, classifies and compares the hands on one line.
func PlayRound(lineNo int, line string) (Round, error) {
	p1, p2, err := ParseLine(line)
	if err != nil {
		return Round{}, &LineError{Line: lineNo, Err: err}
	}
	r1 := poker.Classify(p1)
	r2 := poker.Classify(p2)
	return Round{
		Line:          lineNo,
		Player1:       p1,
		Player2:       p2,
		Player1Result: r1,
		Player2Result: r2,
		Winner:        poker.Compare(r1, r2),
		Tie:           poker.Cmp(r1, r2) == 0,
	}, nil
}
