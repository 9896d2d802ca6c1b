// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vantachain/vantad/chainhash"
)

func sampleHeader() *BlockHeader {
	var prev chainhash.Hash1024
	var root chainhash.Hash512
	prev[0] = 0xaa
	root[0] = 0xbb
	return &BlockHeader{
		Version:    1,
		PrevBlock:  prev,
		MerkleRoot: root,
		Channel:    1,
		Height:     42,
		Bits:       0x1d00ffff,
		Nonce:      123456789,
		Time:       time.Unix(1_700_000_000, 0),
	}
}

func TestBlockHeaderRoundTrip(t *testing.T) {
	h := sampleHeader()

	var buf bytes.Buffer
	require.NoError(t, h.SerializeHeader(&buf))
	require.Equal(t, BlockHeaderLen, buf.Len())

	var got BlockHeader
	require.NoError(t, got.DeserializeHeader(&buf))
	require.Equal(t, *h, got)
}

func TestBlockHeaderBlockHashDeterministic(t *testing.T) {
	h := sampleHeader()
	require.Equal(t, h.BlockHash(), h.BlockHash())

	other := sampleHeader()
	other.Nonce++
	require.NotEqual(t, h.BlockHash(), other.BlockHash())
}

func TestBlockHeaderBytes(t *testing.T) {
	h := sampleHeader()
	b, err := h.Bytes()
	require.NoError(t, err)
	require.Len(t, b, BlockHeaderLen)

	var got BlockHeader
	require.NoError(t, got.DeserializeHeader(bytes.NewReader(b)))
	require.Equal(t, *h, got)
}
