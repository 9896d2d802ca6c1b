// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"
	"time"

	"github.com/vantachain/vantad/chainhash"
)

// BlockHeaderLen is the number of bytes a serialized BlockHeader occupies:
// version(4) + prevBlock(128) + merkleRoot(64) + channel(4) + height(4) +
// bits(4) + nonce(8) + time(4).
const BlockHeaderLen = 4 + chainhash.Hash1024Size + chainhash.Hash512Size + 4 + 4 + 4 + 8 + 4

// BlockHeader defines the eight consensus-critical fields of a block, as
// described in spec.md §3.
type BlockHeader struct {
	// Version of the block. This is not the same as the protocol version.
	Version uint32

	// Hash of the previous block header in the block chain.
	PrevBlock chainhash.Hash1024

	// Merkle tree reference to hash of all transactions for the block.
	MerkleRoot chainhash.Hash512

	// Channel this block was produced on: 0 (stake), 1 or 2 (PoW).
	Channel uint32

	// Height of this block above genesis.
	Height uint32

	// Difficulty target for the block, in compact form.
	Bits uint32

	// Nonce used to generate the block.
	Nonce uint64

	// Time the block was created. Encoded on the wire as a uint32 unix
	// timestamp, per the codec.
	Time time.Time
}

// NewBlockHeader returns a new BlockHeader using the provided fields, with
// the timestamp defaulting to now truncated to one second precision (the
// wire format has no sub-second resolution).
func NewBlockHeader(version uint32, prevHash *chainhash.Hash1024, merkleRoot *chainhash.Hash512,
	channel, height, bits uint32, nonce uint64) *BlockHeader {

	return &BlockHeader{
		Version:    version,
		PrevBlock:  *prevHash,
		MerkleRoot: *merkleRoot,
		Channel:    channel,
		Height:     height,
		Bits:       bits,
		Nonce:      nonce,
		Time:       time.Unix(time.Now().Unix(), 0),
	}
}

// BlockHash computes the 1024-bit block identity hash over the header's
// hash-mode serialization.
func (h *BlockHeader) BlockHash() chainhash.Hash1024 {
	hash, _ := chainhash.Hash1024FromWriter(func(w io.Writer) error {
		return writeBlockHeader(w, h)
	})
	return hash
}

// SerializeHeader writes the 8 header fields to w. Header serialization is
// mode-independent: MsgBlock's three serializer entry points (SerializeFull,
// SerializeHeaderOnly, SerializeForHash) differ only in whether a transaction
// list and signature follow the header, not in how the header itself is
// written.
func (h *BlockHeader) SerializeHeader(w io.Writer) error {
	return writeBlockHeader(w, h)
}

// DeserializeHeader reads the 8 header fields from r.
func (h *BlockHeader) DeserializeHeader(r io.Reader) error {
	return readBlockHeader(r, h)
}

// Bytes serializes the header alone and returns the resulting bytes.
func (h *BlockHeader) Bytes() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, BlockHeaderLen))
	if err := h.SerializeHeader(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeBlockHeader(w io.Writer, h *BlockHeader) error {
	if err := binarySerializerPutUint32(w, h.Version); err != nil {
		return err
	}
	if _, err := w.Write(h.PrevBlock[:]); err != nil {
		return err
	}
	if _, err := w.Write(h.MerkleRoot[:]); err != nil {
		return err
	}
	if err := binarySerializerPutUint32(w, h.Channel); err != nil {
		return err
	}
	if err := binarySerializerPutUint32(w, h.Height); err != nil {
		return err
	}
	if err := binarySerializerPutUint32(w, h.Bits); err != nil {
		return err
	}
	if err := binarySerializerPutUint64(w, h.Nonce); err != nil {
		return err
	}
	return binarySerializerPutUint32(w, uint32(h.Time.Unix()))
}

func readBlockHeader(r io.Reader, h *BlockHeader) error {
	var err error
	if h.Version, err = binarySerializerUint32(r); err != nil {
		return err
	}
	if _, err = io.ReadFull(r, h.PrevBlock[:]); err != nil {
		return err
	}
	if _, err = io.ReadFull(r, h.MerkleRoot[:]); err != nil {
		return err
	}
	if h.Channel, err = binarySerializerUint32(r); err != nil {
		return err
	}
	if h.Height, err = binarySerializerUint32(r); err != nil {
		return err
	}
	if h.Bits, err = binarySerializerUint32(r); err != nil {
		return err
	}
	if h.Nonce, err = binarySerializerUint64(r); err != nil {
		return err
	}
	ts, err := binarySerializerUint32(r)
	if err != nil {
		return err
	}
	h.Time = time.Unix(int64(ts), 0)
	return nil
}
