// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package indexstore implements the durable key/value index: block hashes
// to block-index records, plus the best-hash, genesis-hash, and hardened
// checkpoint singletons, per spec.md §4.3 and the key layout in §6.
package indexstore

import (
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// database wraps a leveldb handle with the small vocabulary the index store
// needs: point reads/writes and atomic batches. Kept separate from Store so
// the tagged-key schema below has nothing to do with the storage engine.
type database struct {
	db *leveldb.DB
}

func openDatabase(path string) (*database, error) {
	opts := &opt.Options{Compression: opt.SnappyCompression}
	db, err := leveldb.OpenFile(path, opts)
	if err != nil {
		return nil, fmt.Errorf("indexstore: open %s: %w", path, err)
	}
	return &database{db: db}, nil
}

func (d *database) get(key []byte) ([]byte, error) {
	val, err := d.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (d *database) newBatch() *batch {
	return &batch{b: new(leveldb.Batch)}
}

func (d *database) write(b *batch) error {
	return d.db.Write(b.b, nil)
}

func (d *database) close() error {
	return d.db.Close()
}

// iteratePrefix calls fn with the key suffix (prefix stripped) and value of
// every record whose key starts with prefix, in key order, stopping at the
// first error fn returns.
func (d *database) iteratePrefix(prefix byte, fn func(suffix, val []byte) error) error {
	it := d.db.NewIterator(util.BytesPrefix([]byte{prefix}), nil)
	defer it.Release()
	for it.Next() {
		if err := fn(it.Key()[1:], it.Value()); err != nil {
			return err
		}
	}
	return it.Error()
}

// batch accumulates put/delete operations for one atomic Write: the index
// store requires that a partial batch is never observed after a crash, and
// leveldb's WriteBatch gives that directly.
type batch struct {
	b *leveldb.Batch
}

func (b *batch) put(key, val []byte) {
	b.b.Put(key, val)
}

func (b *batch) delete(key []byte) {
	b.b.Delete(key)
}
