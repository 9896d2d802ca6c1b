// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"
	"math/big"
	"time"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/vantachain/vantad/collab"
	"github.com/vantachain/vantad/wire"
)

const (
	// MaxBlockBodySize bounds a block's serialized transaction body,
	// excluding the header and signature, per spec.md §4.6 item 2.
	MaxBlockBodySize = 4 * 1024 * 1024

	// maxTimeOffset is the maximum a block's timestamp is allowed to be
	// ahead of the validator's clock, per spec.md §4.6 item 3.
	maxTimeOffset = 7200 * time.Second
)

// CheckBlock performs the seven stateless checks of spec.md §4.6 against
// block. These checks depend on nothing but the block's own bytes (plus the
// payoutKey and txSource collaborators checks 6 and 7 need, since the opaque
// transaction model can't resolve a payout key or a script result on its
// own) and so may run before the block's parent is known. A nil payoutKey
// skips check 6, for callers (such as template validation) that don't yet
// have a signature to verify against.
func CheckBlock(block *wire.MsgBlock, payoutKey *secp256k1.PublicKey, txSource collab.TxSource) error {
	if err := checkCoinbasePlacement(block); err != nil {
		return err
	}

	if err := checkBlockSize(block); err != nil {
		return err
	}

	if err := checkBlockTime(block); err != nil {
		return err
	}

	calcRoot := CalcMerkleRoot(block.Transactions)
	if calcRoot != block.Header.MerkleRoot {
		return ruleError(ErrInvalidHeader, fmt.Sprintf(
			"block merkle root is invalid - header has %v, calculated %v",
			block.Header.MerkleRoot, calcRoot))
	}

	channel := wire.Channel(block.Header.Channel)
	if !channel.IsValid() {
		return ruleError(ErrInvalidHeader, fmt.Sprintf(
			"block channel %d is not one of the three known channels", channel))
	}
	if !channel.IsProofOfStake() {
		blockHash := block.BlockHash()
		if err := CheckProofOfWork(&blockHash, block.Header.Bits, powChannelLimit); err != nil {
			return err
		}
	}

	if payoutKey != nil {
		if err := CheckBlockSignature(block, payoutKey); err != nil {
			return err
		}
	}

	for _, tx := range block.Transactions {
		if result := txSource.CheckTransaction(tx); !result.OK() {
			return ruleError(ErrInvalidHeader, fmt.Sprintf(
				"transaction %v failed collaborator check: %v", tx.Hash(), result.Err))
		}
	}

	return nil
}

// powChannelLimit is the shared proof-of-work ceiling target CheckBlock
// checks stateless blocks against, before the block's parent (and thus its
// channel's live ChannelParams.PowLimit) is known. A network that wants
// distinct per-channel limits enforces the tighter one contextually in
// AcceptBlock, where the real ChannelParams are in scope.
var powChannelLimit = new(big.Int).Sub(oneLsh256, bigOne)

// checkCoinbasePlacement enforces spec.md §4.6 item 1: exactly one coinbase
// transaction, and it is first.
func checkCoinbasePlacement(block *wire.MsgBlock) error {
	if len(block.Transactions) == 0 {
		return ruleError(ErrMalformed, "block has no transactions")
	}

	if !block.Transactions[0].IsCoinBase() {
		return ruleError(ErrInvalidHeader, "first transaction in block is not a coinbase")
	}

	for i, tx := range block.Transactions[1:] {
		if tx.IsCoinBase() {
			return ruleError(ErrInvalidHeader, fmt.Sprintf("block contains second coinbase at index %d", i+1))
		}
	}

	return nil
}

// sizeCountingWriter discards bytes written to it while counting them, so
// checkBlockSize can measure a transaction's serialized size without
// allocating a buffer to hold it.
type sizeCountingWriter struct{ n int }

func (w *sizeCountingWriter) Write(p []byte) (int, error) {
	w.n += len(p)
	return len(p), nil
}

// checkBlockSize enforces spec.md §4.6 item 2: the serialized transaction
// body must not exceed the hard cap.
func checkBlockSize(block *wire.MsgBlock) error {
	var counter sizeCountingWriter
	for _, tx := range block.Transactions {
		if err := tx.Serialize(&counter); err != nil {
			return ruleError(ErrMalformed, "transaction does not serialize: "+err.Error())
		}
	}
	if counter.n > MaxBlockBodySize {
		return ruleError(ErrInvalidHeader, fmt.Sprintf(
			"serialized block body is too big - got %d, max %d", counter.n, MaxBlockBodySize))
	}
	return nil
}

// checkBlockTime enforces spec.md §4.6 item 3.
func checkBlockTime(block *wire.MsgBlock) error {
	maxTime := time.Now().Add(maxTimeOffset)
	if block.Header.Time.After(maxTime) {
		return ruleError(ErrInvalidHeader, fmt.Sprintf(
			"block timestamp of %v is too far in the future (max %v)",
			block.Header.Time, maxTime))
	}
	return nil
}
