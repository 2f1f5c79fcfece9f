package ledger

import "github.com/luca-patrignani/poker-tally/game"

// Block is one compared hand-history line in the chain
type Block struct {
	Index     int        `json:"index"`
	Timestamp int64      `json:"timestamp"`
	PrevHash  string     `json:"prev_hash"`
	Hash      string     `json:"hash"`
	Round     game.Round `json:"round"`
	Metadata  Metadata   `json:"metadata"`
}

// Metadata names the hand-history input a block was read from.
type Metadata struct {
	Source string `json:"source,omitempty"`
}
