package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/poker-tally/domain/poker"
	"github.com/luca-patrignani/poker-tally/game"
)

// multiRecorder hands every round to each recorder in turn.
type multiRecorder []game.Recorder

func (m multiRecorder) Record(r game.Round) error {
	var errs []error
	for _, rec := range m {
		if err := rec.Record(r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// describer logs both hands of every round with their classification and,
// next to it, the evaluator library's description of the same cards.
type describer struct {
	logger *slog.Logger
}

func (d describer) Record(r game.Round) error {
	if !d.logger.Enabled(context.Background(), slog.LevelDebug) {
		return nil
	}
	d.logger.Debug("hands",
		"line", r.Line,
		"player1", r.Player1.String(),
		"player1_result", r.Player1Result.String(),
		"player1_library", libraryView(r.Player1),
		"player2", r.Player2.String(),
		"player2_result", r.Player2Result.String(),
		"player2_library", libraryView(r.Player2),
		"winner", r.Winner.String(),
	)
	return nil
}

func libraryView(h poker.Hand) string {
	desc, err := poker.Describe(h)
	if err != nil {
		return "unavailable: " + err.Error()
	}
	return desc
}

// summaryTable lays out how often each category was dealt to each player.
func summaryTable(t game.Tally) pterm.TableData {
	data := pterm.TableData{{"Category", "Player 1", "Player 2"}}
	for i := len(poker.Categories) - 1; i >= 0; i-- {
		c := poker.Categories[i]
		data = append(data, []string{
			c.String(),
			strconv.Itoa(t.Player1Categories[c]),
			strconv.Itoa(t.Player2Categories[c]),
		})
	}
	return data
}

// printSummary renders the totals in a box followed by the category table.
// The input path goes in the box body, which grows to fit it.
func printSummary(w io.Writer, input string, t game.Tally) error {
	table, err := pterm.DefaultTable.WithHasHeader().WithData(summaryTable(t)).Srender()
	if err != nil {
		return err
	}
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	result := pterm.Sprintfln("%s\n%s won %d\n%s won %d (%d exact ties)\n%d hands played",
		input,
		pterm.LightCyan("Player 1"), t.Player1,
		pterm.LightCyan("Player 2"), t.Player2, t.Ties,
		t.Lines,
	)
	box := pbox.WithTitle(pterm.LightGreen("|Tally|")).WithTitleTopCenter().Sprint(result)

	_, err = fmt.Fprintln(w, box+"\n"+table)
	return err
}
