package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"log/slog"
	"testing"

	"github.com/luca-patrignani/poker-tally/game"
	"github.com/luca-patrignani/poker-tally/store"
)

const sampleInput = `5H 5C 6S 7S KD 2C 3S 8S 8D TD
5D 8C 9S JS TC 2C 5C 7D 8S QH
2D 9C AS AH AC 3D 6D 7D TD QD
4D 6S 9H QH QC 3D 6D 7H QD QS
2H 2D 4C 4D 4S 3C 3D 3S 9S 9D
`

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "poker.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTally(t *testing.T) {
	input := writeInput(t, sampleInput)
	for _, args := range [][]string{
		{"tally", input},
		{"tally", "-workers", "3", input},
		{"tally", "-verbose", input},
	} {
		var stdout, stderr bytes.Buffer
		if err := run(context.Background(), args, &stdout, &stderr); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		if stdout.String() != "1\n" {
			t.Fatalf("%v: expected output %q, got %q", args, "1\n", stdout.String())
		}
	}
}

func TestTallyVerboseLongPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "home", "user", "poker", "archive", "2026")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	input := filepath.Join(dir, "hand_history_with_a_rather_long_name.txt")
	if err := os.WriteFile(input, []byte(sampleInput), 0o644); err != nil {
		t.Fatal(err)
	}
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"tally", "-verbose", "-db", dbPath, input}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if stdout.String() != "1\n" {
		t.Fatalf("expected output %q, got %q", "1\n", stdout.String())
	}
	if !strings.Contains(stderr.String(), input) {
		t.Fatal("summary should name the input file")
	}

	db, err := store.NewSQLiteDB(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Source != input {
		t.Fatalf("expected the run to be stored, got %+v", runs)
	}
}

func TestPrintSummary(t *testing.T) {
	tally, err := game.Play(context.Background(), strings.NewReader(sampleInput))
	if err != nil {
		t.Fatal(err)
	}
	for _, input := range []string{
		"poker.txt",
		"/home/user/poker/hand_history_2026.txt",
		strings.Repeat("nested/", 20) + "poker.txt",
	} {
		var buf bytes.Buffer
		if err := printSummary(&buf, input, tally); err != nil {
			t.Fatalf("%s: %v", input, err)
		}
		if !strings.Contains(buf.String(), input) {
			t.Fatalf("%s: summary should contain the input path", input)
		}
	}
}

func TestDescriberLogsClassification(t *testing.T) {
	round, err := game.PlayRound(1, "AH 2C 3D 4S 5H 2D 3C 4D 6S 8H")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	if err := (describer{logger: logger}).Record(round); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"High Card(14)", "5 straight", "player1_result", "player1_library"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in log line %q", want, out)
		}
	}
}

func TestDescriberQuietBelowDebug(t *testing.T) {
	round, err := game.PlayRound(1, sampleInput[:strings.Index(sampleInput, "\n")])
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	if err := (describer{logger: logger}).Record(round); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output at info level, got %q", buf.String())
	}
}

func TestTallyMissingInput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"tally", filepath.Join(t.TempDir(), "absent.txt")}, &stdout, &stderr)
	if !errors.Is(err, game.ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
	if stdout.Len() != 0 {
		t.Fatalf("expected no count on failure, got %q", stdout.String())
	}
}

func TestTallyMalformedInput(t *testing.T) {
	input := writeInput(t, "5H 5C 6S 7S KD 2C 3S 8S 8D\n")
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"tally", input}, &stdout, &stderr)
	if !errors.Is(err, game.ErrMalformedLine) {
		t.Fatalf("expected ErrMalformedLine, got %v", err)
	}
}

func TestTallyStoresRun(t *testing.T) {
	input := writeInput(t, sampleInput)
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"tally", "-db", dbPath, "-workers", "2", input}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}

	db, err := store.NewSQLiteDB(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 stored run, got %d", len(runs))
	}
	r := runs[0]
	if r.Lines != 5 || r.Player1Wins != 1 || r.Player2Wins != 4 || r.Ties != 1 || r.Workers != 2 {
		t.Fatalf("unexpected run %+v", r)
	}
	blocks, err := db.GetBlocks(r.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 6 {
		t.Fatalf("expected genesis plus 5 blocks, got %d", len(blocks))
	}
	if blocks[len(blocks)-1].Hash != r.HeadHash {
		t.Fatal("head hash should match the last stored block")
	}
}

func TestFib(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"fib"}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if stdout.String() != "4613732\n" {
		t.Fatalf("expected 4613732, got %q", stdout.String())
	}

	stdout.Reset()
	if err := run(context.Background(), []string{"fib", "-limit", "100"}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if stdout.String() != "44\n" {
		t.Fatalf("expected 44, got %q", stdout.String())
	}
}

func TestGenThenTally(t *testing.T) {
	out := filepath.Join(t.TempDir(), "generated.txt")
	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"gen", "-n", "40", "-out", out}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 40 {
		t.Fatalf("expected 40 lines, got %d", lines)
	}

	stdout.Reset()
	if err := run(context.Background(), []string{"tally", out}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	wins, err := strconv.Atoi(strings.TrimSpace(stdout.String()))
	if err != nil {
		t.Fatal(err)
	}
	if wins < 0 || wins > 40 {
		t.Fatalf("player 1 wins out of range: %d", wins)
	}
}

func TestRunAll(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, defaultInput), []byte(sampleInput), 0o644); err != nil {
		t.Fatal(err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), nil, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if stdout.String() != "1\n4613732\n" {
		t.Fatalf("unexpected output %q", stdout.String())
	}
}

func TestUsageErrors(t *testing.T) {
	for _, args := range [][]string{
		{"deal"},
		{"tally", "a.txt", "b.txt"},
		{"gen", "-n", "-1"},
	} {
		var stdout, stderr bytes.Buffer
		if err := run(context.Background(), args, &stdout, &stderr); !errors.Is(err, errUsage) {
			t.Fatalf("%v: expected usage error, got %v", args, err)
		}
	}
}
