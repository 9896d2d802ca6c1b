// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"
	"math"

	"github.com/vantachain/vantad/chainhash"
)

// Per spec.md §1 Non-goals, the transaction model and script language are
// not defined here. Tx is an opaque, serializable record carrying just
// enough structure (a hash, input/output references, a coinbase marker) for
// the chain core to move it through the codec, the Merkle engine, and the
// TxSource collaborator interface in collab/.

const (
	// MaxTxInPerTx and MaxTxOutPerTx bound the length-prefixed arrays below
	// so a corrupt or hostile stream can't force a huge allocation.
	MaxTxInPerTx  = 1 << 20
	MaxTxOutPerTx = 1 << 20

	// MaxScriptSize bounds an individual input/output script blob.
	MaxScriptSize = 1 << 20
)

// OutPoint is a reference to a specific output of a specific transaction,
// opaque beyond its identity.
type OutPoint struct {
	Hash  chainhash.Hash512
	Index uint32
}

// IsNull reports whether the outpoint is the null outpoint used by a
// coinbase's single input.
func (o OutPoint) IsNull() bool {
	var zero chainhash.Hash512
	return o.Index == math.MaxUint32 && o.Hash == zero
}

// TxIn references a previous output plus an opaque unlocking script.
type TxIn struct {
	PreviousOutPoint OutPoint
	SignatureScript  []byte
	Sequence         uint32
}

// TxOut is an opaque amount/locking-script pair.
type TxOut struct {
	Value    int64
	PkScript []byte
}

// Tx is the opaque transaction record the chain core moves around. Everything
// about what a script means, or how inputs are selected and signed, belongs
// to the Tx/script collaborator excluded by spec.md §1.
type Tx struct {
	Version  uint32
	TxIn     []*TxIn
	TxOut    []*TxOut
	LockTime uint32

	cachedHash *chainhash.Hash512
}

// NewCoinbaseTx builds the single coinbase input/output pair a candidate
// block starts from (spec.md §4.8 step 2).
func NewCoinbaseTx(payoutScript []byte, reward int64, extraNonce []byte) *Tx {
	return &Tx{
		Version: 1,
		TxIn: []*TxIn{{
			PreviousOutPoint: OutPoint{Index: math.MaxUint32},
			SignatureScript:  extraNonce,
			Sequence:         math.MaxUint32,
		}},
		TxOut: []*TxOut{{
			Value:    reward,
			PkScript: payoutScript,
		}},
	}
}

// IsCoinBase determines whether a transaction is a coinbase: a single input
// whose previous outpoint is null.
func (t *Tx) IsCoinBase() bool {
	return len(t.TxIn) == 1 && t.TxIn[0].PreviousOutPoint.IsNull()
}

// Hash returns the transaction's 512-bit id, computed over the full
// serialization and cached after the first call.
func (t *Tx) Hash() chainhash.Hash512 {
	if t.cachedHash != nil {
		return *t.cachedHash
	}
	h, _ := chainhash.Hash512FromWriter(func(w io.Writer) error {
		return t.Serialize(w)
	})
	t.cachedHash = &h
	return h
}

// Serialize writes the full transaction encoding to w.
func (t *Tx) Serialize(w io.Writer) error {
	if err := binarySerializerPutUint32(w, t.Version); err != nil {
		return err
	}
	if err := writeVarInt(w, uint64(len(t.TxIn))); err != nil {
		return err
	}
	for _, in := range t.TxIn {
		if _, err := w.Write(in.PreviousOutPoint.Hash[:]); err != nil {
			return err
		}
		if err := binarySerializerPutUint32(w, in.PreviousOutPoint.Index); err != nil {
			return err
		}
		if err := writeVarBytes(w, in.SignatureScript); err != nil {
			return err
		}
		if err := binarySerializerPutUint32(w, in.Sequence); err != nil {
			return err
		}
	}
	if err := writeVarInt(w, uint64(len(t.TxOut))); err != nil {
		return err
	}
	for _, out := range t.TxOut {
		if err := binarySerializerPutUint64(w, uint64(out.Value)); err != nil {
			return err
		}
		if err := writeVarBytes(w, out.PkScript); err != nil {
			return err
		}
	}
	return binarySerializerPutUint32(w, t.LockTime)
}

// Deserialize reads the full transaction encoding from r.
func (t *Tx) Deserialize(r io.Reader) error {
	var err error
	if t.Version, err = binarySerializerUint32(r); err != nil {
		return err
	}

	numIn, err := readVarInt(r)
	if err != nil {
		return err
	}
	if numIn > MaxTxInPerTx {
		return errTooMany("tx inputs", numIn, MaxTxInPerTx)
	}
	t.TxIn = make([]*TxIn, numIn)
	for i := range t.TxIn {
		in := &TxIn{}
		if _, err := io.ReadFull(r, in.PreviousOutPoint.Hash[:]); err != nil {
			return err
		}
		if in.PreviousOutPoint.Index, err = binarySerializerUint32(r); err != nil {
			return err
		}
		if in.SignatureScript, err = readVarBytes(r, MaxScriptSize, "signature script"); err != nil {
			return err
		}
		if in.Sequence, err = binarySerializerUint32(r); err != nil {
			return err
		}
		t.TxIn[i] = in
	}

	numOut, err := readVarInt(r)
	if err != nil {
		return err
	}
	if numOut > MaxTxOutPerTx {
		return errTooMany("tx outputs", numOut, MaxTxOutPerTx)
	}
	t.TxOut = make([]*TxOut, numOut)
	for i := range t.TxOut {
		out := &TxOut{}
		val, err := binarySerializerUint64(r)
		if err != nil {
			return err
		}
		out.Value = int64(val)
		if out.PkScript, err = readVarBytes(r, MaxScriptSize, "pk script"); err != nil {
			return err
		}
		t.TxOut[i] = out
	}

	t.LockTime, err = binarySerializerUint32(r)
	t.cachedHash = nil
	return err
}
