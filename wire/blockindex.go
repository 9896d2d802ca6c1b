// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"

	"github.com/vantachain/vantad/chainhash"
)

// DiskBlockIndex is the serialized shadow of blockchain.BlockIndex (see the
// blockindex.go entry under blockchain/ in DESIGN.md): it carries parent
// and main-chain child as hashes, as BlockIndex does, per spec.md §3.
//
// Two wire variants exist, selected by the Long flag, mirroring the
// original's CDiskBlockIndex SER_LLD split (see original_source block.h):
// the short form is what ships with network payloads, the long form is what
// the index store actually persists, since it needs the rollups to avoid
// re-walking the whole tree on load.
type DiskBlockIndex struct {
	Long bool

	PrevHash chainhash.Hash1024
	NextHash chainhash.Hash1024

	FileID int32
	Offset int32

	Mint   int64
	Supply int64

	Flags         uint32
	StakeModifier uint64

	// Header fields, duplicated here so a DiskBlockIndex round-trips to an
	// equal value without needing the block file.
	Version    uint32
	MerkleRoot chainhash.Hash512
	Channel    uint32
	Height     uint32
	Bits       uint32
	Nonce      uint64
	Time       uint32

	// Long-form-only fields.
	ChannelHeight   int64
	ChainTrust      uint64
	CoinbaseRewards [3]int64
	ReleasedReserve [3]int64

	// PendingCheckpoint mirrors block.h's std::pair<height, hash>.
	PendingCheckpointHeight uint32
	PendingCheckpointHash   chainhash.Hash1024
}

// Serialize writes the DiskBlockIndex using the short or long wire variant
// according to d.Long, per spec.md §6's wire layout table.
func (d *DiskBlockIndex) Serialize(w io.Writer) error {
	if err := binarySerializerPutUint32(w, boolToUint32(d.Long)); err != nil {
		return err
	}
	if _, err := w.Write(d.NextHash[:]); err != nil {
		return err
	}
	if err := binarySerializerPutUint32(w, uint32(d.FileID)); err != nil {
		return err
	}
	if err := binarySerializerPutUint32(w, uint32(d.Offset)); err != nil {
		return err
	}
	if err := binarySerializerPutUint64(w, uint64(d.Mint)); err != nil {
		return err
	}
	if err := binarySerializerPutUint64(w, uint64(d.Supply)); err != nil {
		return err
	}
	if err := binarySerializerPutUint32(w, d.Flags); err != nil {
		return err
	}
	if err := binarySerializerPutUint64(w, d.StakeModifier); err != nil {
		return err
	}

	if d.Long {
		if err := binarySerializerPutUint64(w, uint64(d.ChannelHeight)); err != nil {
			return err
		}
		if err := binarySerializerPutUint64(w, d.ChainTrust); err != nil {
			return err
		}
		for _, v := range d.CoinbaseRewards {
			if err := binarySerializerPutUint64(w, uint64(v)); err != nil {
				return err
			}
		}
		for _, v := range d.ReleasedReserve {
			if err := binarySerializerPutUint64(w, uint64(v)); err != nil {
				return err
			}
		}
		if err := binarySerializerPutUint32(w, d.PendingCheckpointHeight); err != nil {
			return err
		}
		if _, err := w.Write(d.PendingCheckpointHash[:]); err != nil {
			return err
		}
	}

	if err := binarySerializerPutUint32(w, d.Version); err != nil {
		return err
	}
	if _, err := w.Write(d.PrevHash[:]); err != nil {
		return err
	}
	if _, err := w.Write(d.MerkleRoot[:]); err != nil {
		return err
	}
	if err := binarySerializerPutUint32(w, d.Channel); err != nil {
		return err
	}
	if err := binarySerializerPutUint32(w, d.Height); err != nil {
		return err
	}
	if err := binarySerializerPutUint32(w, d.Bits); err != nil {
		return err
	}
	if err := binarySerializerPutUint64(w, d.Nonce); err != nil {
		return err
	}
	return binarySerializerPutUint32(w, d.Time)
}

// Deserialize reads a DiskBlockIndex from r, detecting the short/long
// variant from the leading flag written by Serialize.
func (d *DiskBlockIndex) Deserialize(r io.Reader) error {
	longFlag, err := binarySerializerUint32(r)
	if err != nil {
		return err
	}
	d.Long = longFlag != 0

	if _, err := io.ReadFull(r, d.NextHash[:]); err != nil {
		return err
	}
	fileID, err := binarySerializerUint32(r)
	if err != nil {
		return err
	}
	d.FileID = int32(fileID)
	offset, err := binarySerializerUint32(r)
	if err != nil {
		return err
	}
	d.Offset = int32(offset)
	mint, err := binarySerializerUint64(r)
	if err != nil {
		return err
	}
	d.Mint = int64(mint)
	supply, err := binarySerializerUint64(r)
	if err != nil {
		return err
	}
	d.Supply = int64(supply)
	if d.Flags, err = binarySerializerUint32(r); err != nil {
		return err
	}
	if d.StakeModifier, err = binarySerializerUint64(r); err != nil {
		return err
	}

	if d.Long {
		ch, err := binarySerializerUint64(r)
		if err != nil {
			return err
		}
		d.ChannelHeight = int64(ch)
		if d.ChainTrust, err = binarySerializerUint64(r); err != nil {
			return err
		}
		for i := range d.CoinbaseRewards {
			v, err := binarySerializerUint64(r)
			if err != nil {
				return err
			}
			d.CoinbaseRewards[i] = int64(v)
		}
		for i := range d.ReleasedReserve {
			v, err := binarySerializerUint64(r)
			if err != nil {
				return err
			}
			d.ReleasedReserve[i] = int64(v)
		}
		if d.PendingCheckpointHeight, err = binarySerializerUint32(r); err != nil {
			return err
		}
		if _, err := io.ReadFull(r, d.PendingCheckpointHash[:]); err != nil {
			return err
		}
	}

	if d.Version, err = binarySerializerUint32(r); err != nil {
		return err
	}
	if _, err := io.ReadFull(r, d.PrevHash[:]); err != nil {
		return err
	}
	if _, err := io.ReadFull(r, d.MerkleRoot[:]); err != nil {
		return err
	}
	if d.Channel, err = binarySerializerUint32(r); err != nil {
		return err
	}
	if d.Height, err = binarySerializerUint32(r); err != nil {
		return err
	}
	if d.Bits, err = binarySerializerUint32(r); err != nil {
		return err
	}
	if d.Nonce, err = binarySerializerUint64(r); err != nil {
		return err
	}
	d.Time, err = binarySerializerUint32(r)
	return err
}

func boolToUint32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
