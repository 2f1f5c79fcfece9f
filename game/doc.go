// Package game plays two-player hand-history files: each line holds ten card
// tokens, the first five for player 1 and the last five for player 2.
//
// Every line is independent. Play classifies both hands, compares them and
// accumulates a Tally; the first malformed line or invalid token aborts the
// run with a *LineError naming the line. WithWorkers spreads classification
// over several goroutines without changing the result, and WithRecorder hands
// each decided Round, in line order, to a Recorder such as the ledger.
package game
