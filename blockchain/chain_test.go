// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vantachain/vantad/chainhash"
	"github.com/vantachain/vantad/collab"
	"github.com/vantachain/vantad/store/blockstore"
	"github.com/vantachain/vantad/store/indexstore"
	"github.com/vantachain/vantad/wire"
)

type recordingTxSource struct {
	rejectConnect map[string]bool
	connected     []string
	disconnected  []string
}

func newRecordingTxSource() *recordingTxSource {
	return &recordingTxSource{rejectConnect: make(map[string]bool)}
}

func (s *recordingTxSource) CheckTransaction(tx *wire.Tx) collab.Result {
	return collab.Result{}
}

func (s *recordingTxSource) ConnectInputs(tx *wire.Tx, height uint32, maturity uint32) collab.Result {
	hash := tx.Hash().String()
	if s.rejectConnect[hash] {
		return collab.Result{Err: errFakeRejected}
	}
	s.connected = append(s.connected, hash)
	return collab.Result{}
}

func (s *recordingTxSource) DisconnectInputs(tx *wire.Tx) collab.Result {
	s.disconnected = append(s.disconnected, tx.Hash().String())
	return collab.Result{}
}

func (s *recordingTxSource) StakeCoinAge(tx *wire.Tx) uint64 {
	return 1 << 40
}

func testChainParams() map[wire.Channel]ChannelParams {
	p := ChannelParams{
		TargetSpacing:      10 * time.Minute,
		RetargetAdjustment: 4,
		PowLimit:           new(big.Int).Sub(oneLsh256, bigOne),
		PowLimitBits:       0x1d00ffff,
	}
	return map[wire.Channel]ChannelParams{
		wire.ChannelPrime: p,
		wire.ChannelHash:  p,
		wire.ChannelStake: p,
	}
}

// newTestChain wires a ChainCore over a temp-dir block store and a fresh
// leveldb index store, ready to accept a genesis block.
func newTestChain(t *testing.T) (*ChainCore, *recordingTxSource) {
	t.Helper()
	dir := t.TempDir()

	blocks, err := blockstore.New(dir+"/blocks", wire.RegTest)
	require.NoError(t, err)
	t.Cleanup(func() { blocks.Close() })

	idx, err := indexstore.Open(dir + "/index")
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })

	txSource := newRecordingTxSource()
	chain, err := New(Config{
		Tree:     NewIndexTree(),
		Blocks:   blocks,
		Index:    idx,
		TxSource: txSource,
		Params:   testChainParams(),
	})
	require.NoError(t, err)
	return chain, txSource
}

const genesisBits = 0x1d00ffff

func genesisBlock(channel wire.Channel, when time.Time) *wire.MsgBlock {
	cb := wire.NewCoinbaseTx([]byte{0x01}, 50, []byte{0x00})
	txs := []*wire.Tx{cb}
	return &wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:    1,
			MerkleRoot: CalcMerkleRoot(txs),
			Channel:    uint32(channel),
			Height:     0,
			Bits:       genesisBits,
			Time:       when,
		},
		Transactions: txs,
	}
}

func childBlock(t *testing.T, chain *ChainCore, channel wire.Channel, parent *wire.MsgBlock, parentHash chainhash.Hash1024, when time.Time, extra byte) *wire.MsgBlock {
	t.Helper()
	params := testChainParams()[channel]
	bits := CalcNextRequiredDifficulty(chain.tree, mustLookup(t, chain, parentHash), channel, params)
	cb := wire.NewCoinbaseTx([]byte{0xAB}, 50, []byte{extra})
	txs := []*wire.Tx{cb}
	return &wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:    1,
			PrevBlock:  parentHash,
			MerkleRoot: CalcMerkleRoot(txs),
			Channel:    uint32(channel),
			Height:     parent.Header.Height + 1,
			Bits:       bits,
			Time:       when,
		},
		Transactions: txs,
	}
}

func mustLookup(t *testing.T, chain *ChainCore, hash chainhash.Hash1024) *BlockIndex {
	t.Helper()
	node, ok := chain.tree.Lookup(hash)
	require.True(t, ok)
	return node
}

// scenario 1: genesis only.
func TestProcessBlockGenesisOnly(t *testing.T) {
	chain, _ := newTestChain(t)
	genesis := genesisBlock(wire.ChannelPrime, time.Unix(1700000000, 0))

	require.NoError(t, chain.ProcessBlock(genesis))

	tip, height := chain.Tip()
	require.Equal(t, genesis.BlockHash(), tip)
	require.Equal(t, uint32(0), height)
}

// scenario 2: linear growth on a single channel.
func TestProcessBlockLinearGrowth(t *testing.T) {
	chain, _ := newTestChain(t)
	genesis := genesisBlock(wire.ChannelPrime, time.Unix(1700000000, 0))
	require.NoError(t, chain.ProcessBlock(genesis))

	prev := genesis
	prevHash := genesis.BlockHash()
	for i := 1; i <= 5; i++ {
		next := childBlock(t, chain, wire.ChannelPrime, prev, prevHash, prev.Header.Time.Add(time.Hour), byte(i))
		require.NoError(t, chain.ProcessBlock(next))
		prev = next
		prevHash = next.BlockHash()
	}

	_, height := chain.Tip()
	require.Equal(t, uint32(5), height)
}

// scenario 3: a block arrives before its parent, is orphaned, then attaches
// once the parent arrives.
func TestProcessBlockOutOfOrderAttachesOrphan(t *testing.T) {
	chain, _ := newTestChain(t)

	genesis := genesisBlock(wire.ChannelPrime, time.Unix(1700000000, 0))
	require.NoError(t, chain.ProcessBlock(genesis))
	genesisHash := genesis.BlockHash()

	child1 := childBlock(t, chain, wire.ChannelPrime, genesis, genesisHash, genesis.Header.Time.Add(time.Hour), 1)
	child2 := childBlock(t, chain, wire.ChannelPrime, child1, child1.BlockHash(), child1.Header.Time.Add(time.Hour), 2)

	// child2's parent (child1) is unknown: it should orphan, not error out
	// the whole pipeline, and not yet advance the tip.
	err := chain.ProcessBlock(child2)
	requireRuleError(t, err, ErrMissingParent)
	require.Equal(t, 1, chain.orphans.Len())

	_, height := chain.Tip()
	require.Equal(t, uint32(0), height)

	// Now child1 arrives; child2 should attach automatically.
	require.NoError(t, chain.ProcessBlock(child1))

	tip, height := chain.Tip()
	require.Equal(t, child2.BlockHash(), tip)
	require.Equal(t, uint32(2), height)
	require.Equal(t, 0, chain.orphans.Len())
}

// scenario 4: a reorg to a higher-trust side branch disconnects the old
// chain and connects the new one, calling the TxSource collaborator in the
// right order both ways.
func TestProcessBlockReorgSwitchesTip(t *testing.T) {
	chain, txSource := newTestChain(t)

	genesis := genesisBlock(wire.ChannelPrime, time.Unix(1700000000, 0))
	require.NoError(t, chain.ProcessBlock(genesis))
	genesisHash := genesis.BlockHash()

	branchA1 := childBlock(t, chain, wire.ChannelPrime, genesis, genesisHash, genesis.Header.Time.Add(time.Hour), 0xA1)
	require.NoError(t, chain.ProcessBlock(branchA1))

	tip, _ := chain.Tip()
	require.Equal(t, branchA1.BlockHash(), tip)

	// A competing sibling at the same height carries equal trust, so it
	// forks without moving the tip...
	branchB1 := childBlock(t, chain, wire.ChannelPrime, genesis, genesisHash, genesis.Header.Time.Add(time.Hour), 0xB1)
	require.NoError(t, chain.ProcessBlock(branchB1))
	tip, _ = chain.Tip()
	require.Equal(t, branchA1.BlockHash(), tip)

	// ...but extending it one block further accumulates strictly more trust
	// than the single-block branch A, and the tip reorgs to follow it.
	before := len(txSource.connected)
	branchB2 := childBlock(t, chain, wire.ChannelPrime, branchB1, branchB1.BlockHash(), branchB1.Header.Time.Add(time.Hour), 0xB2)
	require.NoError(t, chain.ProcessBlock(branchB2))

	tip, _ = chain.Tip()
	require.Equal(t, branchB2.BlockHash(), tip)
	require.Len(t, txSource.disconnected, 1)
	require.Greater(t, len(txSource.connected), before)
}

// scenario 5: blocks on different channels accumulate independent
// difficulty trajectories and heights without interfering with each other.
func TestProcessBlockMixedChannels(t *testing.T) {
	chain, _ := newTestChain(t)

	genesis := genesisBlock(wire.ChannelPrime, time.Unix(1700000000, 0))
	require.NoError(t, chain.ProcessBlock(genesis))
	genesisHash := genesis.BlockHash()

	prime1 := childBlock(t, chain, wire.ChannelPrime, genesis, genesisHash, genesis.Header.Time.Add(time.Hour), 1)
	require.NoError(t, chain.ProcessBlock(prime1))

	hashChannel1 := childBlock(t, chain, wire.ChannelHash, prime1, prime1.BlockHash(), prime1.Header.Time.Add(time.Hour), 2)
	require.NoError(t, chain.ProcessBlock(hashChannel1))

	node, ok := chain.Lookup(hashChannel1.BlockHash())
	require.True(t, ok)
	require.Equal(t, wire.ChannelHash, node.Channel)
	require.Equal(t, uint32(2), node.Height)
}

// scenario 6: once a hardened checkpoint pins a height, a block that tries
// to build past a conflicting ancestor at that height is rejected. The
// sibling at the checkpoint height itself is still accepted as a fork (the
// checkpoint only binds blocks whose height exceeds it); it's extending
// that fork one block further that a checkpoint catches.
func TestProcessBlockRejectsCheckpointFork(t *testing.T) {
	chain, _ := newTestChain(t)

	genesis := genesisBlock(wire.ChannelPrime, time.Unix(1700000000, 0))
	require.NoError(t, chain.ProcessBlock(genesis))
	genesisHash := genesis.BlockHash()

	c1 := childBlock(t, chain, wire.ChannelPrime, genesis, genesisHash, genesis.Header.Time.Add(time.Hour), 1)
	require.NoError(t, chain.ProcessBlock(c1))
	c1Hash := c1.BlockHash()

	chain.checkpoints = Checkpoints{1: c1Hash}

	rivalAtCheckpointHeight := childBlock(t, chain, wire.ChannelPrime, genesis, genesisHash, genesis.Header.Time.Add(time.Hour), 0xFF)
	require.NoError(t, chain.ProcessBlock(rivalAtCheckpointHeight))
	rivalHash := rivalAtCheckpointHeight.BlockHash()

	rivalChild := childBlock(t, chain, wire.ChannelPrime, rivalAtCheckpointHeight, rivalHash, rivalAtCheckpointHeight.Header.Time.Add(time.Hour), 2)
	err := chain.ProcessBlock(rivalChild)
	requireRuleError(t, err, ErrInvalidContext)
}

func TestProcessBlockRejectsDuplicate(t *testing.T) {
	chain, _ := newTestChain(t)
	genesis := genesisBlock(wire.ChannelPrime, time.Unix(1700000000, 0))
	require.NoError(t, chain.ProcessBlock(genesis))

	err := chain.ProcessBlock(genesis)
	requireRuleError(t, err, ErrDuplicateBlock)
}

func TestProcessBlockRefusesAfterShutdown(t *testing.T) {
	chain, _ := newTestChain(t)
	chain.Shutdown()

	genesis := genesisBlock(wire.ChannelPrime, time.Unix(1700000000, 0))
	err := chain.ProcessBlock(genesis)
	requireRuleError(t, err, ErrShutdown)
}

func TestCreateCandidateExtendsTip(t *testing.T) {
	chain, _ := newTestChain(t)
	genesis := genesisBlock(wire.ChannelPrime, time.Unix(1700000000, 0))
	require.NoError(t, chain.ProcessBlock(genesis))

	candidate, err := chain.CreateCandidate(wire.ChannelPrime, []byte{0x02})
	require.NoError(t, err)
	require.Equal(t, genesis.BlockHash(), candidate.Header.PrevBlock)
	require.Equal(t, uint32(1), candidate.Header.Height)
}
