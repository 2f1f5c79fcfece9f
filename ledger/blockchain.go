package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/luca-patrignani/poker-tally/game"
)

const genesisPrevHash = "0"

type Blockchain struct {
	mu     sync.RWMutex
	blocks []Block
	source string
	now    func() time.Time
}

type option func(*Blockchain)

// WithSource tags every appended block with the name of the input it came from.
func WithSource(source string) option {
	return func(bc *Blockchain) {
		bc.source = source
	}
}

func withClock(now func() time.Time) option {
	return func(bc *Blockchain) {
		bc.now = now
	}
}

// NewBlockchain creates a new blockchain with an initialized genesis block.
// The genesis block has index 0, previous hash "0" and an empty round.
func NewBlockchain(opts ...option) *Blockchain {
	bc := &Blockchain{
		blocks: make([]Block, 0),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(bc)
	}

	genesis := Block{
		Index:     0,
		Timestamp: bc.now().Unix(),
		PrevHash:  genesisPrevHash,
		Metadata:  Metadata{Source: bc.source},
	}
	genesis.Hash = calculateHash(genesis)
	bc.blocks = append(bc.blocks, genesis)

	return bc
}

// Record appends the round as a new block. It satisfies game.Recorder.
func (bc *Blockchain) Record(r game.Round) error {
	return bc.append(r)
}

// append adds a new validated block to the blockchain. It calculates the block hash,
// validates the block against the previous block, and appends it.
func (bc *Blockchain) append(r game.Round) error {
	bc.mu.Lock()
	defer bc.mu.Unlock()

	latest := bc.blocks[len(bc.blocks)-1]

	newBlock := Block{
		Index:     latest.Index + 1,
		Timestamp: bc.now().Unix(),
		PrevHash:  latest.Hash,
		Round:     r,
		Metadata:  Metadata{Source: bc.source},
	}

	newBlock.Hash = calculateHash(newBlock)

	if err := validateBlock(newBlock, latest); err != nil {
		return fmt.Errorf("invalid block: %w", err)
	}

	bc.blocks = append(bc.blocks, newBlock)

	return nil
}

// GetLatest returns the most recently added block in the blockchain.
// Returns an error if the blockchain is empty.
func (bc *Blockchain) GetLatest() (Block, error) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	if len(bc.blocks) == 0 {
		return Block{}, fmt.Errorf("blockchain is empty")
	}

	return bc.blocks[len(bc.blocks)-1], nil
}

// GetByIndex retrieves a block by its index in the chain. Returns an error if the index
// is out of range.
func (bc *Blockchain) GetByIndex(index int) (Block, error) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	if index < 0 || index >= len(bc.blocks) {
		return Block{}, fmt.Errorf("index %d out of range", index)
	}

	return bc.blocks[index], nil
}

// Blocks returns a copy of the chain, genesis included.
func (bc *Blockchain) Blocks() []Block {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	out := make([]Block, len(bc.blocks))
	copy(out, bc.blocks)
	return out
}

// Len returns the number of blocks, genesis included.
func (bc *Blockchain) Len() int {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return len(bc.blocks)
}

// Verify validates the integrity of the entire blockchain by checking the genesis block
// and verifying each subsequent block's hash, index continuity, and previous hash linkage.
func (bc *Blockchain) Verify() error {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	return VerifyBlocks(bc.blocks)
}

// VerifyBlocks checks a chain that was exported or loaded from storage.
func VerifyBlocks(blocks []Block) error {
	if len(blocks) == 0 {
		return fmt.Errorf("empty blockchain")
	}

	genesis := blocks[0]
	if genesis.Index != 0 || genesis.PrevHash != genesisPrevHash {
		return fmt.Errorf("invalid genesis block")
	}
	if genesis.Hash != calculateHash(genesis) {
		return fmt.Errorf("invalid genesis hash")
	}

	for i := 1; i < len(blocks); i++ {
		if err := validateBlock(blocks[i], blocks[i-1]); err != nil {
			return fmt.Errorf("block %d invalid: %w", i, err)
		}
	}

	return nil
}

// validateBlock verifies that a block is valid relative to the previous block. It checks
// index continuity, previous hash linkage and current hash validity.
func validateBlock(current, previous Block) error {
	if current.Index != previous.Index+1 {
		return fmt.Errorf("invalid index: expected %d, got %d", previous.Index+1, current.Index)
	}

	if current.PrevHash != previous.Hash {
		return fmt.Errorf("invalid prev hash: expected %s, got %s", previous.Hash, current.PrevHash)
	}

	expectedHash := calculateHash(current)
	if current.Hash != expectedHash {
		return fmt.Errorf("invalid hash: expected %s, got %s", expectedHash, current.Hash)
	}

	return nil
}

// calculateHash computes the SHA256 hash of a block based on its index, timestamp,
// previous hash, round and source. The round is JSON marshaled before hashing.
func calculateHash(block Block) string {
	roundBytes, _ := json.Marshal(block.Round)

	data := fmt.Sprintf("%d%d%s%s%s",
		block.Index,
		block.Timestamp,
		block.PrevHash,
		string(roundBytes),
		block.Metadata.Source,
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
