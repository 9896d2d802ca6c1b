// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package indexstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vantachain/vantad/chainhash"
	"github.com/vantachain/vantad/wire"
)

func TestPutAndGetBlockIndex(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "idx"))
	require.NoError(t, err)
	defer s.Close()

	var hash chainhash.Hash1024
	hash[0] = 0x42
	idx := &wire.DiskBlockIndex{Height: 5, Bits: 0x1f00ffff, Mint: 100}

	b := s.NewBatch()
	require.NoError(t, b.PutBlockIndex(hash, idx))
	require.NoError(t, s.Commit(b))

	got, err := s.BlockIndex(hash)
	require.NoError(t, err)
	require.Equal(t, idx.Height, got.Height)
	require.Equal(t, idx.Bits, got.Bits)
	require.Equal(t, idx.Mint, got.Mint)
}

func TestSingletonsRoundTrip(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "idx"))
	require.NoError(t, err)
	defer s.Close()

	var best, genesis chainhash.Hash1024
	best[0] = 1
	genesis[0] = 2

	b := s.NewBatch()
	b.SetBestHash(best)
	b.SetGenesisHash(genesis)
	b.SetCheckpoint(10, best)
	require.NoError(t, s.Commit(b))

	gotBest, err := s.BestHash()
	require.NoError(t, err)
	require.Equal(t, best, gotBest)

	gotGenesis, err := s.GenesisHash()
	require.NoError(t, err)
	require.Equal(t, genesis, gotGenesis)

	gotCheckpoint, err := s.Checkpoint(10)
	require.NoError(t, err)
	require.Equal(t, best, gotCheckpoint)
}

func TestMissingKeyReturnsNotFound(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "idx"))
	require.NoError(t, err)
	defer s.Close()

	_, err = s.BestHash()
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBatchAtomicityNotVisibleUntilCommit(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "idx"))
	require.NoError(t, err)
	defer s.Close()

	var hash chainhash.Hash1024
	hash[0] = 9

	b := s.NewBatch()
	b.SetBestHash(hash)
	// Not committed yet.
	_, err = s.BestHash()
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Commit(b))
	got, err := s.BestHash()
	require.NoError(t, err)
	require.Equal(t, hash, got)
}
