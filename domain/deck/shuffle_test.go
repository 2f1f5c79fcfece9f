package deck

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/luca-patrignani/poker-tally/domain/poker"
	"github.com/luca-patrignani/poker-tally/game"
)

func TestPermutation(t *testing.T) {
	perm := permutation(DeckSize, suite.RandomStream())
	if len(perm) != DeckSize {
		t.Fatalf("expected %d elements, got %d", DeckSize, len(perm))
	}
	seen := make([]bool, DeckSize)
	for _, p := range perm {
		if p < 0 || p >= DeckSize {
			t.Fatalf("index %d out of range", p)
		}
		if seen[p] {
			t.Fatalf("index %d appears twice", p)
		}
		seen[p] = true
	}
}

func TestShuffleKeepsEveryCard(t *testing.T) {
	d, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.Draw(10); err != nil {
		t.Fatal(err)
	}
	d.Shuffle()
	if d.Remaining() != DeckSize {
		t.Fatalf("shuffle should return every card to the deck, got %d", d.Remaining())
	}
	seen := map[poker.Card]bool{}
	for _, c := range d.Cards() {
		seen[c] = true
	}
	if len(seen) != DeckSize {
		t.Fatalf("expected %d distinct cards, got %d", DeckSize, len(seen))
	}
}

func TestGenerateLines(t *testing.T) {
	var buf bytes.Buffer
	if err := GenerateLines(&buf, 25); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 25 {
		t.Fatalf("expected 25 lines, got %d", len(lines))
	}
	for i, line := range lines {
		tokens := strings.Fields(line)
		if len(tokens) != game.TokensPerLine {
			t.Fatalf("line %d: expected %d tokens, got %d", i+1, game.TokensPerLine, len(tokens))
		}
		seen := map[string]bool{}
		for _, tok := range tokens {
			if seen[tok] {
				t.Fatalf("line %d: card %s dealt twice", i+1, tok)
			}
			seen[tok] = true
		}
	}

	tally, err := game.Play(context.Background(), &buf)
	if err != nil {
		t.Fatalf("generated lines should be playable: %v", err)
	}
	if tally.Lines != 25 || tally.Player1+tally.Player2 != 25 {
		t.Fatalf("unexpected tally %+v", tally)
	}
}
