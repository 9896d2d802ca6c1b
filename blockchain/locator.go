// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"github.com/vantachain/vantad/chainhash"
	"github.com/vantachain/vantad/wire"
)

// Locator is a sparse, newest-first list of block hashes used to find a
// fork point between two views of the chain without walking the whole
// history, per spec.md §4.9. It is the in-memory counterpart of
// wire.BlockLocator, built and resolved against an IndexTree.
type Locator struct {
	hashes []chainhash.Hash1024
}

// NewLocator builds a locator starting at node: push node's hash, then step
// back one block and push, repeating; after 10 pushes the step doubles each
// time, and genesis is always pushed last regardless of where the
// exponential steps land.
func NewLocator(tree *IndexTree, node *BlockIndex) *Locator {
	l := &Locator{}
	if node == nil {
		return l
	}

	step := 1
	n := node
	for {
		l.hashes = append(l.hashes, n.Hash())
		if n.IsGenesis() {
			return l
		}

		for i := 0; i < step && n != nil; i++ {
			n = tree.Parent(n)
		}
		if n == nil {
			break
		}
		if len(l.hashes) >= 10 {
			step *= 2
		}
	}

	// Stepped past genesis without landing on it exactly; push it last.
	genesis := node
	for !genesis.IsGenesis() {
		genesis = tree.Parent(genesis)
	}
	l.hashes = append(l.hashes, genesis.Hash())
	return l
}

// DistanceBack returns the number of hashes in the locator.
func (l *Locator) DistanceBack() int {
	return len(l.hashes)
}

// Resolve walks the locator newest-first and returns the first hash known
// to tree, falling back to genesis (the locator's last entry) if none of
// the earlier hashes are known.
func (l *Locator) Resolve(tree *IndexTree) (*BlockIndex, bool) {
	for _, hash := range l.hashes {
		if node, ok := tree.Lookup(hash); ok {
			return node, true
		}
	}
	return nil, false
}

// Height returns the height of the locator's resolved node, or 0 if nothing
// in the locator is known to tree.
func (l *Locator) Height(tree *IndexTree) uint32 {
	node, ok := l.Resolve(tree)
	if !ok {
		return 0
	}
	return node.Height
}

// ToWire converts l to its wire representation.
func (l *Locator) ToWire() *wire.BlockLocator {
	return &wire.BlockLocator{Hashes: append([]chainhash.Hash1024(nil), l.hashes...)}
}

// LocatorFromWire wraps a wire.BlockLocator for local resolution.
func LocatorFromWire(w *wire.BlockLocator) *Locator {
	return &Locator{hashes: append([]chainhash.Hash1024(nil), w.Hashes...)}
}
