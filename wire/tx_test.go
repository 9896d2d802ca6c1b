// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTxRoundTrip(t *testing.T) {
	tx := &Tx{
		Version: 1,
		TxIn: []*TxIn{
			{SignatureScript: []byte{0x01, 0x02}, Sequence: 5},
		},
		TxOut: []*TxOut{
			{Value: 5000, PkScript: []byte{0x76, 0xa9}},
			{Value: 10, PkScript: nil},
		},
		LockTime: 7,
	}

	var buf bytes.Buffer
	require.NoError(t, tx.Serialize(&buf))

	var got Tx
	require.NoError(t, got.Deserialize(&buf))
	require.Equal(t, tx.Version, got.Version)
	require.Equal(t, tx.TxIn, got.TxIn)
	require.Equal(t, tx.TxOut, got.TxOut)
	require.Equal(t, tx.LockTime, got.LockTime)
}

func TestCoinbaseTxIsCoinBase(t *testing.T) {
	tx := NewCoinbaseTx([]byte{0x01}, 5000, []byte{0xde, 0xad})
	require.True(t, tx.IsCoinBase())
	require.Equal(t, uint32(math.MaxUint32), tx.TxIn[0].PreviousOutPoint.Index)

	ordinary := &Tx{
		TxIn: []*TxIn{{PreviousOutPoint: OutPoint{Index: 0}}},
	}
	require.False(t, ordinary.IsCoinBase())
}

func TestTxHashCachedAndStable(t *testing.T) {
	tx := NewCoinbaseTx([]byte{0x01}, 5000, []byte{0xde, 0xad})
	h1 := tx.Hash()
	h2 := tx.Hash()
	require.Equal(t, h1, h2)

	other := NewCoinbaseTx([]byte{0x02}, 5000, []byte{0xde, 0xad})
	require.NotEqual(t, h1, other.Hash())
}

func TestTxDeserializeTooManyInputsRejected(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binarySerializerPutUint32(&buf, 1))
	require.NoError(t, writeVarInt(&buf, MaxTxInPerTx+1))

	var tx Tx
	require.Error(t, tx.Deserialize(&buf))
}
