// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"

	"github.com/vantachain/vantad/chainhash"
)

// MaxTxPerBlock and MaxBlockSigSize bound the block body's length-prefixed
// fields against hostile/corrupt streams.
const (
	MaxTxPerBlock   = 1 << 20
	MaxBlockSigSize = 4096
)

// MsgBlock is a full block: header, ordered transactions, and a
// variable-length block signature, per spec.md §3.
type MsgBlock struct {
	Header       BlockHeader
	Transactions []*Tx
	BlockSig     []byte
}

// BlockHash returns the block's 1024-bit identity hash, which covers only
// the header (see SerializeForHash).
func (m *MsgBlock) BlockHash() chainhash.Hash1024 {
	return m.Header.BlockHash()
}

// SignatureHash returns the 1024-bit hash that Wallet.Sign signs and
// CheckBlockSignature verifies against: header plus transactions, but not
// the (not yet known, or being verified) signature itself.
func (m *MsgBlock) SignatureHash() chainhash.Hash1024 {
	hash, _ := chainhash.Hash1024FromWriter(func(w io.Writer) error {
		return m.encode(w, true, false)
	})
	return hash
}

// SerializeFull writes the complete block (header, transactions, signature).
func (m *MsgBlock) SerializeFull(w io.Writer) error {
	return m.encode(w, true, true)
}

// SerializeHeaderOnly writes only the header, omitting transactions and the
// block signature, per spec.md §4.1 mode (b).
func (m *MsgBlock) SerializeHeaderOnly(w io.Writer) error {
	return m.Header.SerializeHeader(w)
}

// SerializeForHash writes the bytes that feed BlockHash: the header alone,
// since transactions and the signature are not covered by the block
// identity hash (spec.md §4.1 mode (c)).
func (m *MsgBlock) SerializeForHash(w io.Writer) error {
	return m.Header.SerializeHeader(w)
}

func (m *MsgBlock) encode(w io.Writer, withTx, withSig bool) error {
	if err := m.Header.SerializeHeader(w); err != nil {
		return err
	}
	if !withTx {
		return nil
	}
	if err := writeVarInt(w, uint64(len(m.Transactions))); err != nil {
		return err
	}
	for _, tx := range m.Transactions {
		if err := tx.Serialize(w); err != nil {
			return err
		}
	}
	if !withSig {
		return nil
	}
	return writeVarBytes(w, m.BlockSig)
}

// Deserialize reads a full block (header, transactions, signature) from r.
func (m *MsgBlock) Deserialize(r io.Reader) error {
	if err := m.Header.DeserializeHeader(r); err != nil {
		return err
	}

	numTx, err := readVarInt(r)
	if err != nil {
		return err
	}
	if numTx > MaxTxPerBlock {
		return errTooMany("block transactions", numTx, MaxTxPerBlock)
	}
	m.Transactions = make([]*Tx, numTx)
	for i := range m.Transactions {
		tx := &Tx{}
		if err := tx.Deserialize(r); err != nil {
			return err
		}
		m.Transactions[i] = tx
	}

	m.BlockSig, err = readVarBytes(r, MaxBlockSigSize, "block signature")
	return err
}

// DeserializeHeaderOnly reads only the header portion from r, leaving
// Transactions and BlockSig nil. This is the counterpart to
// SerializeHeaderOnly and is what the block file store uses for a
// with_tx=false read (spec.md §4.2).
func (m *MsgBlock) DeserializeHeaderOnly(r io.Reader) error {
	return m.Header.DeserializeHeader(r)
}

// Bytes serializes the full block and returns the resulting bytes.
func (m *MsgBlock) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := m.SerializeFull(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FromBytes decodes a full block from b.
func (m *MsgBlock) FromBytes(b []byte) error {
	return m.Deserialize(bytes.NewReader(b))
}

// TxHashes returns the 512-bit hash of every transaction in order, the
// input the Merkle engine builds a tree over.
func (m *MsgBlock) TxHashes() []chainhash.Hash512 {
	hashes := make([]chainhash.Hash512, len(m.Transactions))
	for i, tx := range m.Transactions {
		hashes[i] = tx.Hash()
	}
	return hashes
}
