// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package indexstore

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/vantachain/vantad/chainhash"
	"github.com/vantachain/vantad/wire"
)

// Tagged key prefixes, per spec.md §6's index store key table.
const (
	prefixBlockIndex  byte = 'b'
	prefixBestHash    byte = 'h'
	prefixGenesisHash byte = 'g'
	prefixCheckpoint  byte = 'c'
)

var (
	bestHashKey    = []byte{prefixBestHash}
	genesisHashKey = []byte{prefixGenesisHash}
)

// Store is the durable key/value index over block hashes and chain
// singletons.
type Store struct {
	db *database
}

// Open opens (creating if necessary) the index store at path.
func Open(path string) (*Store, error) {
	db, err := openDatabase(path)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.close()
}

// Batch accumulates writes for one atomic Commit, matching the "a partial
// batch MUST NOT be observed after crash" requirement of spec.md §4.3.
type Batch struct {
	b *batch
}

// NewBatch starts a new empty batch.
func (s *Store) NewBatch() *Batch {
	return &Batch{b: s.db.newBatch()}
}

// Commit writes every operation accumulated in b atomically.
func (s *Store) Commit(b *Batch) error {
	return s.db.write(b.b)
}

func blockIndexKey(hash chainhash.Hash1024) []byte {
	key := make([]byte, 1+chainhash.Hash1024Size)
	key[0] = prefixBlockIndex
	copy(key[1:], hash[:])
	return key
}

func checkpointKey(height uint32) []byte {
	key := make([]byte, 1+4)
	key[0] = prefixCheckpoint
	binary.BigEndian.PutUint32(key[1:], height)
	return key
}

// PutBlockIndex stages a DiskBlockIndex write for hash under b.
func (b *Batch) PutBlockIndex(hash chainhash.Hash1024, idx *wire.DiskBlockIndex) error {
	var buf bytes.Buffer
	if err := idx.Serialize(&buf); err != nil {
		return fmt.Errorf("indexstore: encode block index: %w", err)
	}
	b.b.put(blockIndexKey(hash), buf.Bytes())
	return nil
}

// SetBestHash stages the best-hash singleton write under b.
func (b *Batch) SetBestHash(hash chainhash.Hash1024) {
	b.b.put(bestHashKey, hash[:])
}

// SetGenesisHash stages the genesis-hash singleton write under b.
func (b *Batch) SetGenesisHash(hash chainhash.Hash1024) {
	b.b.put(genesisHashKey, hash[:])
}

// SetCheckpoint stages a hardened checkpoint write under b.
func (b *Batch) SetCheckpoint(height uint32, hash chainhash.Hash1024) {
	b.b.put(checkpointKey(height), hash[:])
}

// BlockIndex returns the DiskBlockIndex stored for hash.
func (s *Store) BlockIndex(hash chainhash.Hash1024) (*wire.DiskBlockIndex, error) {
	val, err := s.db.get(blockIndexKey(hash))
	if err != nil {
		return nil, err
	}
	idx := &wire.DiskBlockIndex{}
	if err := idx.Deserialize(bytes.NewReader(val)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexCorrupt, err)
	}
	return idx, nil
}

// ForEachBlockIndex calls fn with the hash and decoded record of every block
// index entry in the store, in key order. Used to replay the store into a
// fresh blockchain.IndexTree on startup.
func (s *Store) ForEachBlockIndex(fn func(hash chainhash.Hash1024, idx *wire.DiskBlockIndex) error) error {
	return s.db.iteratePrefix(prefixBlockIndex, func(suffix, val []byte) error {
		var hash chainhash.Hash1024
		if err := hash.SetBytes(suffix); err != nil {
			return fmt.Errorf("%w: %v", ErrIndexCorrupt, err)
		}
		idx := &wire.DiskBlockIndex{}
		if err := idx.Deserialize(bytes.NewReader(val)); err != nil {
			return fmt.Errorf("%w: %v", ErrIndexCorrupt, err)
		}
		return fn(hash, idx)
	})
}

// BestHash returns the current best-chain tip hash.
func (s *Store) BestHash() (chainhash.Hash1024, error) {
	return s.readHash(bestHashKey)
}

// GenesisHash returns the genesis block hash.
func (s *Store) GenesisHash() (chainhash.Hash1024, error) {
	return s.readHash(genesisHashKey)
}

// Checkpoint returns the hardened checkpoint hash recorded at height.
func (s *Store) Checkpoint(height uint32) (chainhash.Hash1024, error) {
	return s.readHash(checkpointKey(height))
}

func (s *Store) readHash(key []byte) (chainhash.Hash1024, error) {
	var hash chainhash.Hash1024
	val, err := s.db.get(key)
	if err != nil {
		return hash, err
	}
	if err := hash.SetBytes(val); err != nil {
		return hash, fmt.Errorf("%w: %v", ErrIndexCorrupt, err)
	}
	return hash, nil
}
