package game

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/luca-patrignani/poker-tally/domain/poker"
)

// Recorder receives every round, in line order, once it has been decided.
type Recorder interface {
	Record(r Round) error
}

// Tally accumulates the results of a run.
// Ties counts exact ties, which are already included in Player2.
type Tally struct {
	Player1           int                    `json:"player1"`
	Player2           int                    `json:"player2"`
	Ties              int                    `json:"ties"`
	Lines             int                    `json:"lines"`
	Player1Categories map[poker.Category]int `json:"player1_categories"`
	Player2Categories map[poker.Category]int `json:"player2_categories"`
}

func newTally() Tally {
	return Tally{
		Player1Categories: make(map[poker.Category]int),
		Player2Categories: make(map[poker.Category]int),
	}
}

func (t *Tally) add(r Round) {
	t.Lines++
	if r.Winner == poker.Player1 {
		t.Player1++
	} else {
		t.Player2++
	}
	if r.Tie {
		t.Ties++
	}
	t.Player1Categories[r.Player1Result.Category]++
	t.Player2Categories[r.Player2Result.Category]++
}

type config struct {
	workers  int
	recorder Recorder
	logger   *slog.Logger
}

// Option configures a run.
type Option func(config) config

// WithWorkers evaluates lines on n goroutines. Values below 2 keep the run
// sequential. Results are identical either way.
func WithWorkers(n int) Option {
	return func(c config) config {
		c.workers = n
		return c
	}
}

func WithRecorder(r Recorder) Option {
	return func(c config) config {
		c.recorder = r
		return c
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c config) config {
		if l != nil {
			c.logger = l
		}
		return c
	}
}

func newConfig(opts ...Option) config {
	c := config{
		workers: 1,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		c = opt(c)
	}
	return c
}

// PlayFile opens the hand-history file at path and plays every line of it.
func PlayFile(ctx context.Context, path string, opts ...Option) (Tally, error) {
	f, err := os.Open(path)
	if err != nil {
		return Tally{}, fmt.Errorf("%w: %w", ErrMissingInput, err)
	}
	defer f.Close()
	return Play(ctx, f, opts...)
}

// Play reads hand-history lines from r and tallies the winner of each one.
// The first invalid line aborts the run.
func Play(ctx context.Context, r io.Reader, opts ...Option) (Tally, error) {
	cfg := newConfig(opts...)
	scanner := bufio.NewScanner(r)

	if cfg.workers > 1 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return Tally{}, fmt.Errorf("failed to read input: %w", err)
		}
		return playParallel(ctx, lines, cfg)
	}

	t := newTally()
	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return Tally{}, err
		}
		lineNo++
		round, err := PlayRound(lineNo, scanner.Text())
		if err != nil {
			return Tally{}, err
		}
		if err := cfg.apply(&t, round); err != nil {
			return Tally{}, err
		}
	}
	if err := scanner.Err(); err != nil {
		return Tally{}, fmt.Errorf("failed to read input: %w", err)
	}
	cfg.logger.Debug("tally complete", "lines", t.Lines, "player1", t.Player1, "player2", t.Player2, "ties", t.Ties)
	return t, nil
}

// PlayLines tallies lines that are already in memory.
func PlayLines(ctx context.Context, lines []string, opts ...Option) (Tally, error) {
	cfg := newConfig(opts...)
	if cfg.workers < 1 {
		cfg.workers = 1
	}
	return playParallel(ctx, lines, cfg)
}

// apply records the round and adds it to the tally.
func (cfg config) apply(t *Tally, r Round) error {
	if cfg.recorder != nil {
		if err := cfg.recorder.Record(r); err != nil {
			return fmt.Errorf("failed to record line %d: %w", r.Line, err)
		}
	}
	t.add(r)
	cfg.logger.Debug("round",
		"line", r.Line,
		"player1", r.Player1Result.String(),
		"player2", r.Player2Result.String(),
		"winner", r.Winner.String(),
	)
	return nil
}

// playParallel splits the lines into one chunk per worker. Each chunk stops at
// its own first error, so the earliest failing line is always the one reported.
// Rounds are reduced and recorded in line order on the calling goroutine.
func playParallel(ctx context.Context, lines []string, cfg config) (Tally, error) {
	rounds := make([]Round, len(lines))
	errs := make([]error, len(lines))

	chunk := (len(lines) + cfg.workers - 1) / cfg.workers
	if chunk == 0 {
		chunk = 1
	}
	var g errgroup.Group
	g.SetLimit(cfg.workers)
	for start := 0; start < len(lines); start += chunk {
		end := min(start+chunk, len(lines))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				r, err := PlayRound(i+1, lines[i])
				if err != nil {
					errs[i] = err
					return err
				}
				rounds[i] = r
			}
			return nil
		})
	}
	waitErr := g.Wait()
	for _, err := range errs {
		if err != nil {
			return Tally{}, err
		}
	}
	if waitErr != nil {
		return Tally{}, waitErr
	}

	t := newTally()
	for _, r := range rounds {
		if err := cfg.apply(&t, r); err != nil {
			return Tally{}, err
		}
	}
	cfg.logger.Debug("tally complete", "lines", t.Lines, "workers", cfg.workers, "player1", t.Player1, "player2", t.Player2, "ties", t.Ties)
	return t, nil
}
