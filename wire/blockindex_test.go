// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vantachain/vantad/chainhash"
)

func sampleDiskBlockIndex(long bool) *DiskBlockIndex {
	var prev, next, pendingHash chainhash.Hash1024
	var root chainhash.Hash512
	prev[0], next[0], pendingHash[0], root[0] = 1, 2, 3, 4

	d := &DiskBlockIndex{
		Long:          long,
		PrevHash:      prev,
		NextHash:      next,
		FileID:        3,
		Offset:        1024,
		Mint:          500,
		Supply:        1_000_000,
		Flags:         0x1,
		StakeModifier: 0xdeadbeef,
		Version:       1,
		MerkleRoot:    root,
		Channel:       2,
		Height:        100,
		Bits:          0x1d00ffff,
		Nonce:         55,
		Time:          1_700_000_000,
	}
	if long {
		d.ChannelHeight = 40
		d.ChainTrust = 999
		d.CoinbaseRewards = [3]int64{1, 2, 3}
		d.ReleasedReserve = [3]int64{4, 5, 6}
		d.PendingCheckpointHeight = 90
		d.PendingCheckpointHash = pendingHash
	}
	return d
}

func TestDiskBlockIndexRoundTripShort(t *testing.T) {
	d := sampleDiskBlockIndex(false)

	var buf bytes.Buffer
	require.NoError(t, d.Serialize(&buf))

	var got DiskBlockIndex
	require.NoError(t, got.Deserialize(&buf))
	require.Equal(t, *d, got)
	require.False(t, got.Long)
}

func TestDiskBlockIndexRoundTripLong(t *testing.T) {
	d := sampleDiskBlockIndex(true)

	var buf bytes.Buffer
	require.NoError(t, d.Serialize(&buf))

	var got DiskBlockIndex
	require.NoError(t, got.Deserialize(&buf))
	require.Equal(t, *d, got)
	require.True(t, got.Long)
}

func TestDiskBlockIndexShortOmitsLongFields(t *testing.T) {
	short := sampleDiskBlockIndex(false)
	long := sampleDiskBlockIndex(true)

	var shortBuf, longBuf bytes.Buffer
	require.NoError(t, short.Serialize(&shortBuf))
	require.NoError(t, long.Serialize(&longBuf))
	require.Less(t, shortBuf.Len(), longBuf.Len())
}
