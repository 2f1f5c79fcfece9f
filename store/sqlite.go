package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/luca-patrignani/poker-tally/ledger"
)

var ErrRunNotFound = errors.New("run not found")

// SQLiteDB implements the DB interface using SQLite
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB creates a new SQLite database connection
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Migrate runs database migrations
func (s *SQLiteDB) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			lines INTEGER NOT NULL DEFAULT 0,
			player1_wins INTEGER NOT NULL DEFAULT 0,
			player2_wins INTEGER NOT NULL DEFAULT 0,
			ties INTEGER NOT NULL DEFAULT 0,
			workers INTEGER NOT NULL DEFAULT 1,
			head_hash TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS blocks (
			run_id TEXT NOT NULL,
			idx INTEGER NOT NULL,
			timestamp INTEGER NOT NULL,
			prev_hash TEXT NOT NULL,
			hash TEXT NOT NULL,
			line INTEGER NOT NULL,
			winner TEXT NOT NULL,
			player1_category TEXT NOT NULL,
			player2_category TEXT NOT NULL,
			round_json TEXT NOT NULL,
			metadata_json TEXT NOT NULL,
			PRIMARY KEY (run_id, idx),
			FOREIGN KEY (run_id) REFERENCES runs(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_blocks_winner ON blocks(run_id, winner)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// SaveRun saves a tally run and its ledger in a single transaction.
// An empty run ID is replaced by a new UUID.
func (s *SQLiteDB) SaveRun(run *Run, blocks []ledger.Block) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	if len(blocks) > 0 {
		run.HeadHash = blocks[len(blocks)-1].Hash
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs (
		id, source, lines, player1_wins, player2_wins, ties, workers, head_hash, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.Lines, run.Player1Wins, run.Player2Wins,
		run.Ties, run.Workers, run.HeadHash, run.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO blocks (
		run_id, idx, timestamp, prev_hash, hash, line, winner,
		player1_category, player2_category, round_json, metadata_json
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare block insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range blocks {
		roundJSON, err := json.Marshal(b.Round)
		if err != nil {
			return fmt.Errorf("failed to marshal round of block %d: %w", b.Index, err)
		}
		metaJSON, err := json.Marshal(b.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata of block %d: %w", b.Index, err)
		}
		_, err = stmt.Exec(
			run.ID, b.Index, b.Timestamp, b.PrevHash, b.Hash, b.Round.Line,
			b.Round.Winner.String(),
			b.Round.Player1Result.Category.String(),
			b.Round.Player2Result.Category.String(),
			string(roundJSON), string(metaJSON),
		)
		if err != nil {
			return fmt.Errorf("failed to save block %d: %w", b.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID
func (s *SQLiteDB) GetRun(id string) (*Run, error) {
	row := s.db.QueryRow(`SELECT
		id, source, lines, player1_wins, player2_wins, ties, workers, head_hash, created_at
		FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs first
func (s *SQLiteDB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`SELECT
		id, source, lines, player1_wins, player2_wins, ties, workers, head_hash, created_at
		FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// GetBlocks loads the ledger of a run in chain order
func (s *SQLiteDB) GetBlocks(runID string) ([]ledger.Block, error) {
	rows, err := s.db.Query(`SELECT idx, timestamp, prev_hash, hash, round_json, metadata_json
		FROM blocks WHERE run_id = ? ORDER BY idx`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get blocks: %w", err)
	}
	defer rows.Close()

	var blocks []ledger.Block
	for rows.Next() {
		var b ledger.Block
		var roundJSON, metaJSON string
		if err := rows.Scan(&b.Index, &b.Timestamp, &b.PrevHash, &b.Hash, &roundJSON, &metaJSON); err != nil {
			return nil, fmt.Errorf("failed to scan block: %w", err)
		}
		if err := json.Unmarshal([]byte(roundJSON), &b.Round); err != nil {
			return nil, fmt.Errorf("failed to decode round of block %d: %w", b.Index, err)
		}
		if err := json.Unmarshal([]byte(metaJSON), &b.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode metadata of block %d: %w", b.Index, err)
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var run Run
	var createdAt int64
	err := row.Scan(
		&run.ID, &run.Source, &run.Lines, &run.Player1Wins, &run.Player2Wins,
		&run.Ties, &run.Workers, &run.HeadHash, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	run.CreatedAt = time.Unix(createdAt, 0)
	return &run, nil
}
