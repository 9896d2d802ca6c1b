// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/vantachain/vantad/wire"
)

// CheckBlockSignature verifies block's BlockSig against payoutKey, the
// coinbase's payout key for a PoW block or the stake key for a PoS block,
// per spec.md §4.6 item 6. The signed message is the block's signature
// hash: header plus transactions, per wire.MsgBlock.SignatureHash.
func CheckBlockSignature(block *wire.MsgBlock, payoutKey *secp256k1.PublicKey) error {
	sig, err := ecdsa.ParseDERSignature(block.BlockSig)
	if err != nil {
		return ruleError(ErrInvalidHeader, "block signature does not parse: "+err.Error())
	}

	// ECDSA over secp256k1 signs a 256-bit digest; per the standard
	// leftmost-bits rule for an oversized hash, only the first 32 bytes of
	// the 1024-bit signature hash enter the signature.
	sigHash := block.SignatureHash()
	if !sig.Verify(sigHash[:32], payoutKey) {
		return ruleError(ErrInvalidHeader, "block signature does not verify against the payout key")
	}
	return nil
}
