// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"time"

	"github.com/vantachain/vantad/chainhash"
	"github.com/vantachain/vantad/wire"
)

// BlockIndex is the in-memory node of the block index tree (spec.md §3,
// §4.4). Per Design Note "Cyclic parent/child pointers", it never stores a
// pointer to its parent or main-chain child: only their hashes, resolved
// through the owning IndexTree's map. This eliminates the ref-counted
// pprev/pnext cycle the original design carries.
type BlockIndex struct {
	hash chainhash.Hash1024

	parentHash chainhash.Hash1024
	hasParent  bool

	nextHash chainhash.Hash1024
	hasNext  bool

	// Location of the stored block payload.
	FileID int32
	Offset int64

	// Header fields, copied so most queries never need a disk read.
	Version    uint32
	MerkleRoot chainhash.Hash512
	Channel    wire.Channel
	Height     uint32
	Bits       uint32
	Nonce      uint64
	Time       time.Time

	// Rollups accumulated from genesis to this node.
	ChainTrust    uint64
	Mint          int64
	Supply        int64
	ChannelHeight int64

	// CoinbaseRewards and ReleasedReserve mirror block.h's reward/reserve
	// rollups (spec.md §3). ReleasedReserve carries a fourth, currently
	// unused slot that the DiskBlockIndex wire form never serializes; see
	// DESIGN.md "Channel/reserve array sizing".
	CoinbaseRewards [3]int64
	ReleasedReserve [4]int64

	Flags         uint32
	StakeModifier uint64

	// PendingCheckpoint supplements the spec from block.h: a soft
	// checkpoint propagated block-to-block, validated contextually in
	// AcceptBlock step 6.
	PendingCheckpointHeight uint32
	PendingCheckpointHash   chainhash.Hash1024
}

// blockIndexFlagInvalid marks a node whose subtree failed a contextual or
// stateless check deeply enough that the chain manager refuses to ever
// again consider it, or any descendant of it, as a candidate tip — the
// "black-listed fork" of spec.md §4.6 item 1.
const blockIndexFlagInvalid uint32 = 1 << 0

// Hash returns the node's identity hash.
func (bi *BlockIndex) Hash() chainhash.Hash1024 {
	return bi.hash
}

// IsInvalid reports whether this node (or an ancestor) has been
// black-listed.
func (bi *BlockIndex) IsInvalid() bool {
	return bi.Flags&blockIndexFlagInvalid != 0
}

// MarkInvalid black-lists node, per spec.md §4.6 item 1.
func (bi *BlockIndex) MarkInvalid() {
	bi.Flags |= blockIndexFlagInvalid
}

// IsGenesis reports whether this node has no parent.
func (bi *BlockIndex) IsGenesis() bool {
	return !bi.hasParent
}

// HasNext reports whether this node is on the main chain and not the tip.
func (bi *BlockIndex) HasNext() bool {
	return bi.hasNext
}

// IsProofOfStake reports whether this node was produced on the stake
// channel.
func (bi *BlockIndex) IsProofOfStake() bool {
	return bi.Channel.IsProofOfStake()
}

// IndexTree owns the hash → BlockIndex mapping, spec.md §4.4. It is not
// thread-safe by itself; the chain manager's mutex (spec.md §5) serializes
// all access.
type IndexTree struct {
	nodes map[chainhash.Hash1024]*BlockIndex
}

// NewIndexTree returns an empty index tree.
func NewIndexTree() *IndexTree {
	return &IndexTree{nodes: make(map[chainhash.Hash1024]*BlockIndex)}
}

// Lookup returns the node for hash, average O(1).
func (t *IndexTree) Lookup(hash chainhash.Hash1024) (*BlockIndex, bool) {
	node, ok := t.nodes[hash]
	return node, ok
}

// Len returns the number of nodes in the tree.
func (t *IndexTree) Len() int {
	return len(t.nodes)
}

// InsertGenesis creates the root node of the tree. It must be called at
// most once, before any InsertChild call.
func (t *IndexTree) InsertGenesis(header *wire.BlockHeader, fileID int32, offset int64, trust uint64) *BlockIndex {
	node := &BlockIndex{
		hash:       header.BlockHash(),
		FileID:     fileID,
		Offset:     offset,
		Version:    header.Version,
		MerkleRoot: header.MerkleRoot,
		Channel:    wire.Channel(header.Channel),
		Height:     header.Height,
		Bits:       header.Bits,
		Nonce:      header.Nonce,
		Time:       header.Time,
		ChainTrust: trust,
	}
	t.nodes[node.hash] = node
	return node
}

// InsertChild creates a node for header under parent, accumulating chain
// trust and per-channel height, per spec.md §4.4's insert operation.
func (t *IndexTree) InsertChild(header *wire.BlockHeader, fileID int32, offset int64, parent *BlockIndex, trust uint64) *BlockIndex {
	node := &BlockIndex{
		hash:       header.BlockHash(),
		parentHash: parent.hash,
		hasParent:  true,
		FileID:     fileID,
		Offset:     offset,
		Version:    header.Version,
		MerkleRoot: header.MerkleRoot,
		Channel:    wire.Channel(header.Channel),
		Height:     header.Height,
		Bits:       header.Bits,
		Nonce:      header.Nonce,
		Time:       header.Time,
		ChainTrust: parent.ChainTrust + trust,
	}
	node.ChannelHeight = parent.channelHeightFor(t, node.Channel) + 1
	t.nodes[node.hash] = node
	return node
}

// channelHeightFor returns the receiver's ChannelHeight if it was produced
// on channel, or the channel height of its most recent ancestor on that
// channel otherwise (0 if there is none).
func (bi *BlockIndex) channelHeightFor(t *IndexTree, channel wire.Channel) int64 {
	if last := t.LastOfChannel(bi, channel); last != nil {
		return last.ChannelHeight
	}
	return 0
}

// Parent returns the node's parent, or nil for genesis.
func (t *IndexTree) Parent(node *BlockIndex) *BlockIndex {
	if !node.hasParent {
		return nil
	}
	return t.nodes[node.parentHash]
}

// Next returns the node's main-chain child, or nil if node is the tip or
// off the main chain.
func (t *IndexTree) Next(node *BlockIndex) *BlockIndex {
	if !node.hasNext {
		return nil
	}
	return t.nodes[node.nextHash]
}

// SetNext marks child as parent's main-chain child.
func (t *IndexTree) SetNext(parent, child *BlockIndex) {
	parent.nextHash = child.hash
	parent.hasNext = true
}

// ClearNext removes node's main-chain child pointer, used when
// disconnecting node from the main chain during a reorg.
func (t *IndexTree) ClearNext(node *BlockIndex) {
	node.hasNext = false
	node.nextHash = chainhash.Hash1024{}
}

// LastOfKind walks back via parent from node to the most recent ancestor
// (inclusive) whose channel is the stake channel if proofOfStake is true, or
// a PoW channel otherwise, per spec.md §4.4.
func (t *IndexTree) LastOfKind(node *BlockIndex, proofOfStake bool) *BlockIndex {
	for n := node; n != nil; n = t.Parent(n) {
		if n.IsProofOfStake() == proofOfStake {
			return n
		}
	}
	return nil
}

// LastOfChannel walks back via parent from node to the most recent ancestor
// (inclusive) produced on channel.
func (t *IndexTree) LastOfChannel(node *BlockIndex, channel wire.Channel) *BlockIndex {
	for n := node; n != nil; n = t.Parent(n) {
		if n.Channel == channel {
			return n
		}
	}
	return nil
}

// AncestorAt walks back via parent from node to the ancestor at height, or
// nil if node's own height is already below it.
func (t *IndexTree) AncestorAt(node *BlockIndex, height uint32) *BlockIndex {
	n := node
	for n != nil && n.Height > height {
		n = t.Parent(n)
	}
	if n == nil || n.Height != height {
		return nil
	}
	return n
}

// MedianTimePast returns the median timestamp of node and up to its 10
// preceding ancestors, per spec.md §4.6 item 3's median_time_past rule.
func (t *IndexTree) MedianTimePast(node *BlockIndex) time.Time {
	const maxEntries = 11
	times := make([]time.Time, 0, maxEntries)
	for n := node; n != nil && len(times) < maxEntries; n = t.Parent(n) {
		times = append(times, n.Time)
	}
	// Insertion sort: maxEntries is always small.
	for i := 1; i < len(times); i++ {
		for j := i; j > 0 && times[j].Before(times[j-1]); j-- {
			times[j], times[j-1] = times[j-1], times[j]
		}
	}
	return times[len(times)/2]
}

// ToDisk projects node into its serialized shadow, per Design Note
// "Disk/memory duality".
func (bi *BlockIndex) ToDisk(long bool) *wire.DiskBlockIndex {
	d := &wire.DiskBlockIndex{
		Long:          long,
		PrevHash:      bi.parentHash,
		FileID:        bi.FileID,
		Offset:        int32(bi.Offset),
		Mint:          bi.Mint,
		Supply:        bi.Supply,
		Flags:         bi.Flags,
		StakeModifier: bi.StakeModifier,
		Version:       bi.Version,
		MerkleRoot:    bi.MerkleRoot,
		Channel:       uint32(bi.Channel),
		Height:        bi.Height,
		Bits:          bi.Bits,
		Nonce:         bi.Nonce,
		Time:          uint32(bi.Time.Unix()),
	}
	if bi.hasNext {
		d.NextHash = bi.nextHash
	}
	if long {
		d.ChannelHeight = bi.ChannelHeight
		d.ChainTrust = bi.ChainTrust
		d.CoinbaseRewards = bi.CoinbaseRewards
		d.ReleasedReserve = [3]int64{bi.ReleasedReserve[0], bi.ReleasedReserve[1], bi.ReleasedReserve[2]}
		d.PendingCheckpointHeight = bi.PendingCheckpointHeight
		d.PendingCheckpointHash = bi.PendingCheckpointHash
	}
	return d
}

// FromDisk reconstructs a BlockIndex node for hash from its serialized
// shadow. Parent and main-chain child are carried over as hashes and
// resolve through the tree once their nodes are inserted, in any order.
func FromDisk(hash chainhash.Hash1024, d *wire.DiskBlockIndex) *BlockIndex {
	bi := &BlockIndex{
		hash:          hash,
		FileID:        d.FileID,
		Offset:        int64(d.Offset),
		Mint:          d.Mint,
		Supply:        d.Supply,
		Flags:         d.Flags,
		StakeModifier: d.StakeModifier,
		Version:       d.Version,
		parentHash:    d.PrevHash,
		MerkleRoot:    d.MerkleRoot,
		Channel:       wire.Channel(d.Channel),
		Height:        d.Height,
		Bits:          d.Bits,
		Nonce:         d.Nonce,
		Time:          time.Unix(int64(d.Time), 0),
	}
	var zero chainhash.Hash1024
	bi.hasParent = d.PrevHash != zero
	if d.NextHash != zero {
		bi.hasNext = true
		bi.nextHash = d.NextHash
	}
	if d.Long {
		bi.ChannelHeight = d.ChannelHeight
		bi.ChainTrust = d.ChainTrust
		bi.CoinbaseRewards = d.CoinbaseRewards
		bi.ReleasedReserve = [4]int64{d.ReleasedReserve[0], d.ReleasedReserve[1], d.ReleasedReserve[2], 0}
		bi.PendingCheckpointHeight = d.PendingCheckpointHeight
		bi.PendingCheckpointHash = d.PendingCheckpointHash
	}
	return bi
}

// Insert registers a fully-formed BlockIndex node built by FromDisk. Used
// when replaying the index store on startup.
func (t *IndexTree) Insert(node *BlockIndex) {
	t.nodes[node.hash] = node
}
