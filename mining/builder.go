// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mining assembles and submits new candidate blocks, the "LOCAL"
// side of process_block per spec.md §4.8: everything from snapshotting the
// tip through handing a sealed block back to the chain core.
package mining

import (
	"fmt"

	"github.com/vantachain/vantad/blockchain"
	"github.com/vantachain/vantad/collab"
	"github.com/vantachain/vantad/wire"
)

// defaultBlockBudget bounds the serialized size of transactions pulled from
// the mempool into a candidate, leaving headroom for the coinbase and
// header.
const defaultBlockBudget = 1 << 20

// Config wires a Builder to its collaborators, per spec.md §6's external
// interface list.
type Config struct {
	Chain        collab.Chain
	Mempool      collab.Mempool
	Wallet       collab.Wallet
	PayoutScript []byte
	ReserveKey   string
	BlockBudget  int
}

// Builder assembles candidate blocks for a single channel and reserve key,
// per spec.md §4.8.
type Builder struct {
	cfg Config
}

// New returns a Builder over cfg. BlockBudget defaults to defaultBlockBudget
// when zero.
func New(cfg Config) *Builder {
	if cfg.BlockBudget == 0 {
		cfg.BlockBudget = defaultBlockBudget
	}
	return &Builder{cfg: cfg}
}

// NewCandidate builds an unsealed candidate block on channel, per spec.md
// §4.8 steps 1-5: the chain core snapshots the tip, starts the coinbase,
// and computes the expected difficulty and timestamp (step 1, 2, 4); the
// builder then pulls mempool transactions (step 3) and recomputes the
// Merkle root over the full transaction set (step 5).
func (b *Builder) NewCandidate(channel wire.Channel) (*wire.MsgBlock, error) {
	candidate, err := b.cfg.Chain.CreateCandidate(channel, b.cfg.PayoutScript)
	if err != nil {
		return nil, fmt.Errorf("create candidate: %w", err)
	}

	budget := b.cfg.BlockBudget
	for _, tx := range b.cfg.Mempool.Select(budget) {
		candidate.Transactions = append(candidate.Transactions, tx)
	}
	candidate.Header.MerkleRoot = blockchain.CalcMerkleRoot(candidate.Transactions)

	return candidate, nil
}

// Submit runs step 6-7 of spec.md §4.8 on a block the mining collaborator
// has already discovered a nonce (PoW) or stake modifier (PoS) for: on the
// stake channel it signs the header via the Wallet collaborator, then hands
// the sealed block to the chain core's stateless-then-contextual pipeline.
func (b *Builder) Submit(sealed *wire.MsgBlock) error {
	channel := wire.Channel(sealed.Header.Channel)
	if channel.IsProofOfStake() {
		sigHash := sealed.SignatureHash()
		sig, err := b.cfg.Wallet.Sign(sigHash[:], b.cfg.ReserveKey)
		if err != nil {
			return fmt.Errorf("sign candidate: %w", err)
		}
		sealed.BlockSig = sig
	}

	return b.cfg.Chain.ProcessBlock(sealed)
}
