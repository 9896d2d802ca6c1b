// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"

	"github.com/vantachain/vantad/chainhash"
	"github.com/vantachain/vantad/wire"
)

// Checkpoints maps a hardened checkpoint's height to the hash it pins, per
// spec.md §4.6 item 5.
type Checkpoints map[uint32]chainhash.Hash1024

// PendingCheckpoint is a soft checkpoint proposal a block may carry forward
// from its parent or supersede, per block.h's pendingCheckpoint field
// (see blockindex.go's BlockIndex.PendingCheckpointHeight/Hash).
type PendingCheckpoint struct {
	Height uint32
	Hash   chainhash.Hash1024
}

// AcceptBlock performs the six contextual checks of spec.md §4.6 for header
// extending parent within tree. proposed is the PendingCheckpoint the
// incoming block carries (supplied by whatever produced it — a miner
// proposing a new one, or the parent's own unchanged value); params is the
// live difficulty configuration for header's channel; checkpoints holds the
// network's hardened checkpoints.
//
// AcceptBlock does not mutate tree; on success the caller still owes the
// tree an InsertChild call to actually link the new node in.
func AcceptBlock(tree *IndexTree, header *wire.BlockHeader, parent *BlockIndex,
	proposed PendingCheckpoint, params ChannelParams, checkpoints Checkpoints) error {

	if parent == nil {
		return ruleError(ErrMissingParent, "parent index is unknown")
	}
	if parent.IsInvalid() {
		return ruleError(ErrInvalidContext, "parent is on a black-listed fork")
	}

	if header.Height != parent.Height+1 {
		return ruleError(ErrInvalidContext, fmt.Sprintf(
			"block height %d does not follow parent height %d", header.Height, parent.Height))
	}

	medianTime := tree.MedianTimePast(parent)
	if !header.Time.After(medianTime) {
		return ruleError(ErrInvalidContext, fmt.Sprintf(
			"block timestamp %v is not after median time past %v", header.Time, medianTime))
	}

	channel := wire.Channel(header.Channel)
	expectedBits := CalcNextRequiredDifficulty(tree, parent, channel, params)
	if header.Bits != expectedBits {
		return ruleError(ErrInvalidContext, fmt.Sprintf(
			"block bits %08x does not match expected difficulty %08x", header.Bits, expectedBits))
	}

	if err := checkHardenedCheckpoint(tree, header, parent, checkpoints); err != nil {
		return err
	}

	if err := checkPendingCheckpoint(parent, proposed); err != nil {
		return err
	}

	return nil
}

// checkHardenedCheckpoint enforces spec.md §4.6 item 5: once the new
// block's height passes a hardened checkpoint, its ancestor at that height
// must be the pinned hash.
func checkHardenedCheckpoint(tree *IndexTree, header *wire.BlockHeader, parent *BlockIndex, checkpoints Checkpoints) error {
	newHeight := parent.Height + 1
	for height, want := range checkpoints {
		if newHeight <= height {
			continue
		}

		var got chainhash.Hash1024
		if height == parent.Height {
			got = parent.Hash()
		} else {
			ancestor := tree.AncestorAt(parent, height)
			if ancestor == nil {
				return ruleError(ErrInvalidContext, fmt.Sprintf(
					"no ancestor at checkpoint height %d", height))
			}
			got = ancestor.Hash()
		}

		if got != want {
			return ruleError(ErrInvalidContext, fmt.Sprintf(
				"chain forks before hardened checkpoint at height %d", height))
		}
	}
	return nil
}

// checkPendingCheckpoint enforces spec.md §4.6 item 6: proposed must either
// match parent's own pending checkpoint exactly, or supersede it at a
// strictly greater height. The hash a superseding proposal commits to is
// only verifiable once a later block's hardened checkpoint confirms it;
// here we only enforce the monotonic-height half of "supersede".
func checkPendingCheckpoint(parent *BlockIndex, proposed PendingCheckpoint) error {
	if proposed.Height == parent.PendingCheckpointHeight && proposed.Hash == parent.PendingCheckpointHash {
		return nil
	}
	if proposed.Height > parent.PendingCheckpointHeight {
		return nil
	}
	return ruleError(ErrInvalidContext, fmt.Sprintf(
		"pending checkpoint at height %d does not match or supersede parent's at height %d",
		proposed.Height, parent.PendingCheckpointHeight))
}
