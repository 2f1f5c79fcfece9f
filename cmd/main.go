package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/poker-tally/domain/deck"
	"github.com/luca-patrignani/poker-tally/fib"
	"github.com/luca-patrignani/poker-tally/game"
	"github.com/luca-patrignani/poker-tally/ledger"
	"github.com/luca-patrignani/poker-tally/store"
)

const defaultInput = "poker.txt"

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// newLogger creates a slog logger backed by the pterm logger, writing to w.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := pterm.LogLevelInfo
	if verbose {
		level = pterm.LogLevelDebug
	}
	handler := pterm.NewSlogHandler(pterm.DefaultLogger.WithWriter(w).WithLevel(level))
	return slog.New(handler)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return runAll(ctx, stdout, newLogger(stderr, false))
	}

	switch args[0] {
	case "tally":
		return runTally(ctx, args[1:], stdout, stderr)
	case "fib":
		return runFib(args[1:], stdout, stderr)
	case "gen":
		return runGen(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stderr)
		return nil
	}
	printUsage(stderr)
	return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `usage: poker-tally [command] [flags]

With no command, tallies %s and sums the even Fibonacci terms below %d.

commands:
  tally [-workers N] [-db PATH] [-verbose] [FILE]   print how many hands player 1 wins
  fib [-limit N]                                     print the even Fibonacci sum
  gen [-n N] [-out FILE]                             write random hand-history lines
`, defaultInput, fib.DefaultLimit)
}

// runAll solves both problems in turn, timing each one.
func runAll(ctx context.Context, stdout io.Writer, logger *slog.Logger) error {
	start := time.Now()
	tally, err := game.PlayFile(ctx, defaultInput, game.WithLogger(logger))
	if err != nil {
		logger.Error("tally failed", "input", defaultInput, "error", err)
		return err
	}
	fmt.Fprintln(stdout, tally.Player1)
	logger.Info("problem solved", "problem", "poker hands", "elapsed", time.Since(start))

	start = time.Now()
	fmt.Fprintln(stdout, fib.EvenSum(fib.DefaultLimit))
	logger.Info("problem solved", "problem", "even fibonacci", "elapsed", time.Since(start))
	return nil
}

func runTally(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("tally", flag.ContinueOnError)
	fs.SetOutput(stderr)
	workers := fs.Int("workers", 1, "number of goroutines classifying hands")
	dbPath := fs.String("db", "", "SQLite database to store the run and its ledger in")
	verbose := fs.Bool("verbose", false, "log every round and print a summary table")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return fmt.Errorf("%w: tally takes at most one file", errUsage)
	}
	input := defaultInput
	if fs.NArg() == 1 {
		input = fs.Arg(0)
	}
	logger := newLogger(stderr, *verbose)

	recorders := multiRecorder{}
	var chain *ledger.Blockchain
	if *dbPath != "" {
		chain = ledger.NewBlockchain(ledger.WithSource(input))
		recorders = append(recorders, chain)
	}
	if *verbose {
		recorders = append(recorders, describer{logger: logger})
	}
	opts := []game.Option{game.WithWorkers(*workers), game.WithLogger(logger)}
	if len(recorders) > 0 {
		opts = append(opts, game.WithRecorder(recorders))
	}

	start := time.Now()
	tally, err := game.PlayFile(ctx, input, opts...)
	if err != nil {
		logger.Error("tally failed", "input", input, "error", err)
		return err
	}
	fmt.Fprintln(stdout, tally.Player1)
	logger.Info("tally complete", "input", input, "lines", tally.Lines, "elapsed", time.Since(start))

	if *verbose {
		if err := printSummary(stderr, input, tally); err != nil {
			logger.Warn("failed to render summary", "error", err)
		}
	}

	if chain != nil {
		if err := saveRun(*dbPath, input, *workers, tally, chain, logger); err != nil {
			logger.Error("failed to store run", "db", *dbPath, "error", err)
			return err
		}
	}
	return nil
}

func saveRun(path, input string, workers int, tally game.Tally, chain *ledger.Blockchain, logger *slog.Logger) error {
	if err := chain.Verify(); err != nil {
		return fmt.Errorf("ledger verification failed: %w", err)
	}
	db, err := store.NewSQLiteDB(path)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		return err
	}
	run := &store.Run{
		Source:      input,
		Lines:       tally.Lines,
		Player1Wins: tally.Player1,
		Player2Wins: tally.Player2,
		Ties:        tally.Ties,
		Workers:     max(workers, 1),
	}
	if err := db.SaveRun(run, chain.Blocks()); err != nil {
		return err
	}
	logger.Info("run stored", "id", run.ID, "db", path, "head", run.HeadHash)
	return nil
}

func runFib(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("fib", flag.ContinueOnError)
	fs.SetOutput(stderr)
	limit := fs.Uint64("limit", fib.DefaultLimit, "exclusive upper bound on Fibonacci terms")
	if err := fs.Parse(args); err != nil {
		return err
	}
	fmt.Fprintln(stdout, fib.EvenSum(*limit))
	return nil
}

func runGen(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	n := fs.Int("n", 1000, "number of lines to generate")
	out := fs.String("out", "", "file to write, standard output when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *n < 0 {
		return fmt.Errorf("%w: -n must be >= 0", errUsage)
	}
	logger := newLogger(stderr, false)

	w := stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			logger.Error("failed to create output", "out", *out, "error", err)
			return err
		}
		defer f.Close()
		w = f
	}
	if err := deck.GenerateLines(w, *n); err != nil {
		logger.Error("failed to generate lines", "error", err)
		return err
	}
	if *out != "" {
		logger.Info("hand history written", "out", *out, "lines", *n)
	}
	return nil
}
