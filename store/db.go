package store

import (
	"time"

	"github.com/luca-patrignani/poker-tally/ledger"
)

// DB represents the database interface
type DB interface {
	Close() error
	Migrate() error
	SaveRun(run *Run, blocks []ledger.Block) error
	GetRun(id string) (*Run, error)
	GetBlocks(runID string) ([]ledger.Block, error)
	ListRuns(limit int) ([]Run, error)
}

// Run represents one tally of a hand-history file
type Run struct {
	ID          string    `json:"id" db:"id"`
	Source      string    `json:"source" db:"source"`
	Lines       int       `json:"lines" db:"lines"`
	Player1Wins int       `json:"player1_wins" db:"player1_wins"`
	Player2Wins int       `json:"player2_wins" db:"player2_wins"`
	Ties        int       `json:"ties" db:"ties"`
	Workers     int       `json:"workers" db:"workers"`
	HeadHash    string    `json:"head_hash" db:"head_hash"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
