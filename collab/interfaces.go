// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package collab defines the narrow interfaces the chain core consumes and
// exposes at its edges. The peer-to-peer networking layer, the mining work
// distribution server, the wallet/keystore, and the transaction mempool and
// script evaluator all live outside this module; everything the core needs
// from them is declared here.
package collab

import (
	"time"

	"github.com/vantachain/vantad/chainhash"
	"github.com/vantachain/vantad/wire"
)

// Result reports the outcome of a transaction-level check performed by a
// TxSource collaborator, without the chain core needing to know anything
// about scripts or the UTXO representation behind it.
type Result struct {
	Err error
}

// OK reports whether the result carries no error.
func (r Result) OK() bool {
	return r.Err == nil
}

// TxSource is the transaction/script collaborator (called "Tx" in the
// original design): it owns the UTXO set and script evaluator, and is
// consulted by the validator and chain manager for every transaction that
// enters or leaves the active chain.
type TxSource interface {
	// CheckTransaction performs stateless transaction-shape checks: no
	// chain state is consulted.
	CheckTransaction(tx *wire.Tx) Result

	// ConnectInputs marks tx's inputs spent and its outputs unspent,
	// enforcing coinbase maturity at the given height.
	ConnectInputs(tx *wire.Tx, height uint32, coinbaseMaturity uint32) Result

	// DisconnectInputs reverses ConnectInputs: tx's inputs are re-marked
	// unspent and its outputs removed from the unspent set.
	DisconnectInputs(tx *wire.Tx) Result

	// StakeCoinAge returns the coin-age (amount x seconds held) a
	// proof-of-stake block's coinbase accumulates from its inputs, the
	// input blockchain.TrustOf needs to score a stake block. Meaningless
	// for a proof-of-work coinbase; callers only invoke it on the stake
	// channel.
	StakeCoinAge(tx *wire.Tx) uint64
}

// Wallet is the keystore collaborator that signs candidate block headers on
// behalf of a reserve key the core never sees directly.
type Wallet interface {
	// Sign returns the signature over headerBytes produced under
	// reserveKey, for a proof-of-stake candidate's BlockSig field.
	Sign(headerBytes []byte, reserveKey string) ([]byte, error)
}

// NetRequester is the narrow slice of the peer-to-peer layer the chain core
// calls into: asking a specific peer to send a block it is missing.
type NetRequester interface {
	// AskForBlock requests hash from peer, used by the orphan pool to chase
	// down the root of an orphan chain.
	AskForBlock(peer string, hash chainhash.Hash1024)
}

// Mempool is the transaction pool collaborator consulted by the block
// builder when assembling a new candidate.
type Mempool interface {
	// Select returns an ordered list of transactions whose combined
	// serialized size does not exceed budget bytes.
	Select(budget int) []*wire.Tx
}

// Chain is the set of operations the chain core exposes to its own
// collaborators (miners, sync managers, RPC-style callers).
type Chain interface {
	// ProcessBlock accepts a fully decoded block, validating and
	// integrating it into the chain (or the orphan pool) as appropriate.
	ProcessBlock(block *wire.MsgBlock) error

	// GetLocator returns a BlockLocator describing the view from hash, or
	// from the current tip if hash is the zero hash.
	GetLocator(hash chainhash.Hash1024) (*wire.BlockLocator, error)

	// Tip returns the hash and height of the current best block.
	Tip() (chainhash.Hash1024, uint32)

	// Lookup returns the block index entry for hash, if known.
	Lookup(hash chainhash.Hash1024) (*BlockIndexView, bool)

	// IsInitialDownload reports whether the chain believes it is still
	// catching up to the rest of the network, based on the tip's age.
	IsInitialDownload() bool

	// CreateCandidate builds an unsealed candidate block extending the
	// current tip on the given channel.
	CreateCandidate(channel wire.Channel, payoutScript []byte) (*wire.MsgBlock, error)
}

// BlockIndexView is the read-only projection of a block index entry handed
// back across the Chain interface, avoiding a direct dependency from collab
// on the blockchain package's internal representation.
type BlockIndexView struct {
	Hash       chainhash.Hash1024
	PrevHash   chainhash.Hash1024
	Height     uint32
	Channel    wire.Channel
	Bits       uint32
	ChainTrust uint64
	Time       time.Time
}
