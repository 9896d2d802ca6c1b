// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"

	"github.com/vantachain/vantad/chainhash"
)

// MaxLocatorHashes bounds a locator's length-prefixed hash list against a
// hostile or corrupt peer, well above the longest locator New ever builds
// (logarithmic in chain height).
const MaxLocatorHashes = 2000

// BlockLocator is a sparse, newest-first list of block hashes used to find a
// fork point between two views of the chain without walking the whole
// history, per spec.md §4.9.
type BlockLocator struct {
	Hashes []chainhash.Hash1024
}

// Serialize writes the locator as a varint count followed by that many
// 1024-bit hashes.
func (l *BlockLocator) Serialize(w io.Writer) error {
	if err := writeVarInt(w, uint64(len(l.Hashes))); err != nil {
		return err
	}
	for _, h := range l.Hashes {
		if _, err := w.Write(h[:]); err != nil {
			return err
		}
	}
	return nil
}

// Deserialize reads a locator previously written by Serialize.
func (l *BlockLocator) Deserialize(r io.Reader) error {
	count, err := readVarInt(r)
	if err != nil {
		return err
	}
	if count > MaxLocatorHashes {
		return errTooMany("locator hashes", count, MaxLocatorHashes)
	}
	l.Hashes = make([]chainhash.Hash1024, count)
	for i := range l.Hashes {
		if _, err := io.ReadFull(r, l.Hashes[i][:]); err != nil {
			return err
		}
	}
	return nil
}
