// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockstore

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vantachain/vantad/chainhash"
	"github.com/vantachain/vantad/wire"
)

func testBlock(nonce uint64) *wire.MsgBlock {
	var prev chainhash.Hash1024
	var root chainhash.Hash512
	return &wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:    1,
			PrevBlock:  prev,
			MerkleRoot: root,
			Channel:    1,
			Height:     1,
			Bits:       0x1f00ffff,
			Nonce:      nonce,
		},
		Transactions: []*wire.Tx{wire.NewCoinbaseTx([]byte{0x01}, 5000, []byte{0x00})},
	}
}

func TestAppendReadRoundTrip(t *testing.T) {
	s, err := New(t.TempDir(), wire.RegTest)
	require.NoError(t, err)
	defer s.Close()

	b := testBlock(1)
	fileID, offset, err := s.Append(b)
	require.NoError(t, err)
	require.Equal(t, int32(1), fileID)

	got, err := s.Read(fileID, offset, true)
	require.NoError(t, err)
	require.Equal(t, b.BlockHash(), got.BlockHash())
	require.Len(t, got.Transactions, 1)
}

func TestAppendMultipleBlocksDistinctOffsets(t *testing.T) {
	s, err := New(t.TempDir(), wire.RegTest)
	require.NoError(t, err)
	defer s.Close()

	_, off1, err := s.Append(testBlock(1))
	require.NoError(t, err)
	_, off2, err := s.Append(testBlock(2))
	require.NoError(t, err)
	require.NotEqual(t, off1, off2)
}

func TestReadHeaderOnly(t *testing.T) {
	s, err := New(t.TempDir(), wire.RegTest)
	require.NoError(t, err)
	defer s.Close()

	b := testBlock(1)
	fileID, offset, err := s.Append(b)
	require.NoError(t, err)

	got, err := s.Read(fileID, offset, false)
	require.NoError(t, err)
	require.Equal(t, b.Header, got.Header)
	require.Nil(t, got.Transactions)
}

func TestRolloverToNextFile(t *testing.T) {
	s, err := New(t.TempDir(), wire.RegTest)
	require.NoError(t, err)
	defer s.Close()
	s.SetMaxFileSize(1)

	fileID1, _, err := s.Append(testBlock(1))
	require.NoError(t, err)
	fileID2, _, err := s.Append(testBlock(2))
	require.NoError(t, err)
	require.Equal(t, fileID1+1, fileID2)
}

func TestReadUnknownFileNotFound(t *testing.T) {
	s, err := New(t.TempDir(), wire.RegTest)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Read(99, 8, true)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestReopenResumesAtLastFile(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir, wire.RegTest)
	require.NoError(t, err)
	fileID, _, err := s.Append(testBlock(1))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2, err := New(dir, wire.RegTest)
	require.NoError(t, err)
	defer s2.Close()

	fileID2, _, err := s2.Append(testBlock(2))
	require.NoError(t, err)
	require.Equal(t, fileID, fileID2)
}
