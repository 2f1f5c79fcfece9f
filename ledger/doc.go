// Package ledger implements an append-only blockchain ledger recording every
// hand-history line compared during a tally run.
//
// # Core Components
//
// Blockchain: An append-only log of rounds with cryptographic hash chaining
// for tamper detection. It implements game.Recorder, so it can be handed to
// game.Play directly.
//
// Block: A single round containing both hands, both classifications, the
// winner, and the cryptographic link to the previous block.
//
// # Security Properties
//
// The blockchain provides:
//   - Immutability: Once recorded, blocks cannot be modified
//   - Verifiability: Anyone can verify the integrity of the entire chain
//   - Tamper detection: Any modification breaks the hash chain
//
// # Usage
//
// Create a blockchain, pass it to game.Play with game.WithRecorder, then call
// Verify, or VerifyBlocks on a chain loaded back from storage.
package ledger
