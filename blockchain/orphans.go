// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"container/list"
	"sync"

	"github.com/decred/dcrd/lru"

	"github.com/vantachain/vantad/chainhash"
	"github.com/vantachain/vantad/wire"
)

// defaultMaxOrphans and defaultMaxOrphanBytes are the orphan pool's default
// count and byte bounds, per spec.md §4.7.3.
const (
	defaultMaxOrphans     = 2000
	defaultMaxOrphanBytes = 64 * 1024 * 1024

	// recentlyEvictedLimit bounds the set of hashes the pool remembers
	// having just dropped, so a flood resending the same evicted orphan
	// doesn't trigger a fresh missing-parent request each time.
	recentlyEvictedLimit = 4000
)

// orphanEntry is one block sitting in the orphan pool, waiting on an
// unknown parent.
type orphanEntry struct {
	hash  chainhash.Hash1024
	block *wire.MsgBlock
	size  int
	elem  *list.Element
}

// OrphanPool holds blocks whose parent hasn't arrived yet, bounded by count
// and by total bytes with oldest-first eviction, per spec.md §4.7.3.
//
// Admission order is an explicit FIFO (container/list) so eviction is
// exactly oldest-first under both bounds at once. recentlyEvicted is a
// github.com/decred/dcrd/lru set remembering which hashes were just
// dropped, so a sender repeatedly resending an orphan the pool already
// gave up on doesn't force it back through the missing-parent request
// cycle on every retry.
type OrphanPool struct {
	mu sync.Mutex

	maxCount int
	maxBytes int
	curBytes int

	order   *list.List
	byHash  map[chainhash.Hash1024]*orphanEntry
	byPrev  map[chainhash.Hash1024][]*orphanEntry
	evicted *lru.Cache
}

// NewOrphanPool returns an empty orphan pool using the default bounds.
func NewOrphanPool() *OrphanPool {
	return NewOrphanPoolWithLimits(defaultMaxOrphans, defaultMaxOrphanBytes)
}

// NewOrphanPoolWithLimits returns an empty orphan pool bounded by maxCount
// entries and maxBytes total serialized size.
func NewOrphanPoolWithLimits(maxCount, maxBytes int) *OrphanPool {
	return &OrphanPool{
		maxCount: maxCount,
		maxBytes: maxBytes,
		order:    list.New(),
		byHash:   make(map[chainhash.Hash1024]*orphanEntry),
		byPrev:   make(map[chainhash.Hash1024][]*orphanEntry),
		evicted:  lru.NewCache(recentlyEvictedLimit),
	}
}

// RecentlyEvicted reports whether hash was dropped from the pool recently,
// so a caller can skip re-requesting its parent on a duplicate arrival.
func (p *OrphanPool) RecentlyEvicted(hash chainhash.Hash1024) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.evicted.Contains(hash)
}

// Add inserts block (whose prev hash is not yet known to the tree) into the
// pool, evicting the oldest entries as needed to respect both bounds.
func (p *OrphanPool) Add(block *wire.MsgBlock) {
	hash := block.BlockHash()

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.byHash[hash]; exists {
		return
	}

	raw, err := block.Bytes()
	size := len(raw)
	if err != nil {
		size = 0
	}

	entry := &orphanEntry{hash: hash, block: block, size: size}
	entry.elem = p.order.PushBack(entry)
	p.byHash[hash] = entry
	prev := block.Header.PrevBlock
	p.byPrev[prev] = append(p.byPrev[prev], entry)
	p.curBytes += size

	for p.order.Len() > p.maxCount || p.curBytes > p.maxBytes {
		p.evictOldestLocked()
	}
}

// evictOldestLocked drops the pool's oldest entry. Caller holds p.mu.
func (p *OrphanPool) evictOldestLocked() {
	front := p.order.Front()
	if front == nil {
		return
	}
	entry := front.Value.(*orphanEntry)
	p.removeLocked(entry)
	p.evicted.Add(entry.hash)
}

// removeLocked detaches entry from every index. Caller holds p.mu.
func (p *OrphanPool) removeLocked(entry *orphanEntry) {
	p.order.Remove(entry.elem)
	delete(p.byHash, entry.hash)
	p.curBytes -= entry.size

	prev := entry.block.Header.PrevBlock
	siblings := p.byPrev[prev]
	for i, sib := range siblings {
		if sib == entry {
			siblings = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	if len(siblings) == 0 {
		delete(p.byPrev, prev)
	} else {
		p.byPrev[prev] = siblings
	}
}

// Remove drops hash from the pool without marking it as recently evicted
// (the normal path when the orphan is about to be reprocessed because its
// parent just arrived).
func (p *OrphanPool) Remove(hash chainhash.Hash1024) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if entry, ok := p.byHash[hash]; ok {
		p.removeLocked(entry)
	}
}

// Get returns the orphan block for hash, if present.
func (p *OrphanPool) Get(hash chainhash.Hash1024) (*wire.MsgBlock, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	entry, ok := p.byHash[hash]
	if !ok {
		return nil, false
	}
	return entry.block, true
}

// Children returns the orphans waiting on parentHash, so the chain manager
// can attempt them once parentHash is accepted.
func (p *OrphanPool) Children(parentHash chainhash.Hash1024) []*wire.MsgBlock {
	p.mu.Lock()
	defer p.mu.Unlock()
	entries := p.byPrev[parentHash]
	out := make([]*wire.MsgBlock, len(entries))
	for i, e := range entries {
		out[i] = e.block
	}
	return out
}

// Len returns the number of orphans currently held.
func (p *OrphanPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.order.Len()
}

// Bytes returns the total serialized size of orphans currently held.
func (p *OrphanPool) Bytes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.curBytes
}

// GetOrphanRoot walks back through the pool from hash to the earliest
// ancestor that is still itself an orphan, per spec.md §4.7.3. The returned
// hash is the one worth requesting from a peer.
func (p *OrphanPool) GetOrphanRoot(hash chainhash.Hash1024) chainhash.Hash1024 {
	p.mu.Lock()
	defer p.mu.Unlock()

	root := hash
	for {
		entry, ok := p.byHash[root]
		if !ok {
			return root
		}
		prev := entry.block.Header.PrevBlock
		if _, prevIsOrphan := p.byHash[prev]; !prevIsOrphan {
			return root
		}
		root = prev
	}
}

// WantedByOrphan returns the hash orphan is waiting on: its prev hash, the
// piece not yet known to the index, per spec.md §4.7.3.
func WantedByOrphan(orphan *wire.MsgBlock) chainhash.Hash1024 {
	return orphan.Header.PrevBlock
}
