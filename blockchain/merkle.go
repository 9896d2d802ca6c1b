// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"github.com/vantachain/vantad/chainhash"
	"github.com/vantachain/vantad/wire"
)

// nextPowerOfTwo returns the next highest power of two that is greater than
// or equal to n.
func nextPowerOfTwo(n int) int {
	if n&(n-1) == 0 {
		return n
	}
	exponent := 0
	for n > 0 {
		n >>= 1
		exponent++
	}
	return 1 << exponent
}

// hashMerkleBranches returns the hash of the concatenation of left and
// right, the 512-bit merkle node hash from spec.md §4.5.
func hashMerkleBranches(left, right *chainhash.Hash512) chainhash.Hash512 {
	var buf [2 * chainhash.Hash512Size]byte
	copy(buf[:chainhash.Hash512Size], left[:])
	copy(buf[chainhash.Hash512Size:], right[:])
	return chainhash.HashH(buf[:])
}

// BuildMerkleTreeStore builds a full Merkle tree for txs and returns it as a
// slice: leaves first, then each successive level, with the final single
// element being the root. Nodes with no sibling are duplicated (the last
// node of an odd-length level is paired with itself), per spec.md §4.5.
func BuildMerkleTreeStore(txs []*wire.Tx) []*chainhash.Hash512 {
	if len(txs) == 0 {
		return []*chainhash.Hash512{{}}
	}

	nextPoT := nextPowerOfTwo(len(txs))
	arraySize := nextPoT*2 - 1
	merkles := make([]*chainhash.Hash512, arraySize)

	for i, tx := range txs {
		h := tx.Hash()
		merkles[i] = &h
	}

	offset := nextPoT
	for i := 0; i < arraySize-1; i += 2 {
		switch {
		case merkles[i] == nil:
			merkles[offset] = nil
		case merkles[i+1] == nil:
			newHash := hashMerkleBranches(merkles[i], merkles[i])
			merkles[offset] = &newHash
		default:
			newHash := hashMerkleBranches(merkles[i], merkles[i+1])
			merkles[offset] = &newHash
		}
		offset++
	}

	return merkles
}

// CalcMerkleRoot returns the Merkle root computed over the hashes of txs,
// without retaining the intermediate tree levels. Matches spec.md §4.5's
// "empty input produces the zero hash" rule.
func CalcMerkleRoot(txs []*wire.Tx) chainhash.Hash512 {
	if len(txs) == 0 {
		return chainhash.Hash512{}
	}

	merkles := BuildMerkleTreeStore(txs)
	root := merkles[len(merkles)-1]
	if root == nil {
		return chainhash.Hash512{}
	}
	return *root
}

// CheckMerkleBranch folds branch into leaf following index's low bits (0 =
// sibling goes on the right, 1 = sibling goes on the left) and returns the
// resulting root, per spec.md §4.5.
func CheckMerkleBranch(leaf chainhash.Hash512, branch []chainhash.Hash512, index uint32) chainhash.Hash512 {
	current := leaf
	for _, sibling := range branch {
		if index&1 == 1 {
			current = hashMerkleBranches(&sibling, &current)
		} else {
			current = hashMerkleBranches(&current, &sibling)
		}
		index >>= 1
	}
	return current
}
