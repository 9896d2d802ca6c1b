// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vantachain/vantad/chainhash"
	"github.com/vantachain/vantad/collab"
	"github.com/vantachain/vantad/metrics"
	"github.com/vantachain/vantad/store/blockstore"
	"github.com/vantachain/vantad/store/indexstore"
	"github.com/vantachain/vantad/wire"
)

// maxInitialDownloadAge is how stale the tip's timestamp can be before
// IsInitialDownload reports true, per spec.md §4.7.
const maxInitialDownloadAge = 24 * time.Hour

// coinbaseMaturity is the number of confirmations a coinbase output needs
// before TxSource.ConnectInputs will let it be spent.
const coinbaseMaturity = 100

// Config bundles everything the Chain Manager needs at construction: its
// durable stores and every collaborator it calls out to, per spec.md §4.7.
type Config struct {
	Tree        *IndexTree
	Blocks      *blockstore.Store
	Index       *indexstore.Store
	TxSource    collab.TxSource
	Net         collab.NetRequester
	Orphans     *OrphanPool
	Checkpoints Checkpoints
	Params      map[wire.Channel]ChannelParams
}

// ChainCore is the chain manager: the single writer of the index tree and
// the two durable stores, serializing every mutation behind chainLock per
// spec.md §5's concurrency model.
type ChainCore struct {
	chainLock sync.RWMutex

	tree     *IndexTree
	blocks   *blockstore.Store
	index    *indexstore.Store
	txSource collab.TxSource
	net      collab.NetRequester
	orphans  *OrphanPool

	checkpoints Checkpoints
	params      map[wire.Channel]ChannelParams

	tip *BlockIndex

	shuttingDown atomic.Bool
}

// New constructs a Chain Manager bound to an already-populated index tree
// (the caller is responsible for replaying the index store into cfg.Tree on
// startup, per spec.md §4.3) and sets tip to the node whose hash the index
// store records as the best block.
func New(cfg Config) (*ChainCore, error) {
	c := &ChainCore{
		tree:        cfg.Tree,
		blocks:      cfg.Blocks,
		index:       cfg.Index,
		txSource:    cfg.TxSource,
		net:         cfg.Net,
		orphans:     cfg.Orphans,
		checkpoints: cfg.Checkpoints,
		params:      cfg.Params,
	}
	if c.orphans == nil {
		c.orphans = NewOrphanPool()
	}

	bestHash, err := c.index.BestHash()
	switch err {
	case nil:
		tip, ok := c.tree.Lookup(bestHash)
		if !ok {
			return nil, AssertError(fmt.Sprintf("index store best hash %v not found in tree", bestHash))
		}
		c.tip = tip
	case indexstore.ErrNotFound:
		// Fresh store, no genesis recorded yet; the caller passes genesis
		// to ProcessBlock, and that first accepted block establishes the tip.
	default:
		return nil, err
	}
	return c, nil
}

// Shutdown marks the chain manager as shutting down: ProcessBlock refuses
// any further work once set, per spec.md §7's ErrShutdown policy.
func (c *ChainCore) Shutdown() {
	c.shuttingDown.Store(true)
}

// Tip returns the current best block's hash and height.
func (c *ChainCore) Tip() (chainhash.Hash1024, uint32) {
	c.chainLock.RLock()
	defer c.chainLock.RUnlock()
	if c.tip == nil {
		return chainhash.Hash1024{}, 0
	}
	return c.tip.Hash(), c.tip.Height
}

// Lookup returns the public view of the index entry for hash, if known.
func (c *ChainCore) Lookup(hash chainhash.Hash1024) (*collab.BlockIndexView, bool) {
	c.chainLock.RLock()
	defer c.chainLock.RUnlock()
	node, ok := c.tree.Lookup(hash)
	if !ok {
		return nil, false
	}
	return indexView(c.tree, node), true
}

func indexView(tree *IndexTree, node *BlockIndex) *collab.BlockIndexView {
	view := &collab.BlockIndexView{
		Hash:       node.Hash(),
		Height:     node.Height,
		Channel:    node.Channel,
		Bits:       node.Bits,
		ChainTrust: node.ChainTrust,
		Time:       node.Time,
	}
	if parent := tree.Parent(node); parent != nil {
		view.PrevHash = parent.Hash()
	}
	return view
}

// IsInitialDownload reports whether the tip is old enough that the chain
// manager believes it is still catching up to the network.
func (c *ChainCore) IsInitialDownload() bool {
	c.chainLock.RLock()
	defer c.chainLock.RUnlock()
	if c.tip == nil {
		return true
	}
	return time.Since(c.tip.Time) > maxInitialDownloadAge
}

// GetLocator returns a BlockLocator describing the view from hash, or from
// the current tip if hash is the zero hash.
func (c *ChainCore) GetLocator(hash chainhash.Hash1024) (*wire.BlockLocator, error) {
	c.chainLock.RLock()
	defer c.chainLock.RUnlock()

	node := c.tip
	var zero chainhash.Hash1024
	if hash != zero {
		var ok bool
		node, ok = c.tree.Lookup(hash)
		if !ok {
			return nil, ruleError(ErrInvalidContext, fmt.Sprintf("locator request for unknown hash %v", hash))
		}
	}
	return NewLocator(c.tree, node).ToWire(), nil
}

// ProcessBlock satisfies collab.Chain: a block arriving with no particular
// peer to blame for a missing parent (the local miner's own candidate, or a
// caller that doesn't track peer identity).
func (c *ChainCore) ProcessBlock(block *wire.MsgBlock) error {
	return c.ProcessBlockFrom("", block)
}

// ProcessBlockFrom is the chain core's entry point for a block arriving
// from a specific peer, per spec.md §4.7. sourcePeer identifies who to ask
// for a missing parent, via the NetRequester collaborator; it may be empty
// if there's nobody to ask (the local miner, or disk replay).
func (c *ChainCore) ProcessBlockFrom(sourcePeer string, block *wire.MsgBlock) error {
	if c.shuttingDown.Load() {
		return ruleError(ErrShutdown, "chain manager is shutting down")
	}

	if err := CheckBlock(block, nil, c.txSource); err != nil {
		return err
	}

	c.chainLock.Lock()
	defer c.chainLock.Unlock()

	return c.processLocked(sourcePeer, block)
}

func (c *ChainCore) processLocked(sourcePeer string, block *wire.MsgBlock) error {
	hash := block.BlockHash()
	if _, ok := c.tree.Lookup(hash); ok {
		return ruleError(ErrDuplicateBlock, fmt.Sprintf("block %v already accepted", hash))
	}

	parentHash := block.Header.PrevBlock
	parent, haveParent := c.tree.Lookup(parentHash)
	if !haveParent && c.tip != nil {
		// While there is no tip yet, a block with no known parent is
		// accepted as genesis below; every later block must chain to
		// something known.
		c.orphans.Add(block)
		metrics.OrphanPoolBlocks.Set(float64(c.orphans.Len()))
		metrics.OrphanPoolBytes.Set(float64(c.orphans.Bytes()))
		if c.net != nil && sourcePeer != "" && !c.orphans.RecentlyEvicted(hash) {
			c.net.AskForBlock(sourcePeer, c.orphans.GetOrphanRoot(hash))
		}
		return ruleError(ErrMissingParent, fmt.Sprintf("parent %v not yet known, orphaned", parentHash))
	}

	if haveParent {
		channel := wire.Channel(block.Header.Channel)
		params, ok := c.params[channel]
		if !ok {
			return ruleError(ErrInvalidContext, fmt.Sprintf("no difficulty parameters configured for channel %v", channel))
		}
		proposed := PendingCheckpoint{Height: parent.PendingCheckpointHeight, Hash: parent.PendingCheckpointHash}
		if err := AcceptBlock(c.tree, &block.Header, parent, proposed, params, c.checkpoints); err != nil {
			metrics.BlocksRejected.WithLabelValues(errorCodeLabel(err)).Inc()
			return err
		}
	}

	if err := c.accept(block, parent); err != nil {
		return err
	}

	channelName := wire.Channel(block.Header.Channel).String()
	metrics.BlocksAccepted.WithLabelValues(channelName).Inc()

	c.attachOrphans(sourcePeer, hash)
	return nil
}

// attachOrphans repeatedly tries every orphan waiting on parentHash until no
// more progress can be made, walking the chain forward to a fixed point per
// spec.md §4.7's "attach waiting orphans" step.
func (c *ChainCore) attachOrphans(sourcePeer string, parentHash chainhash.Hash1024) {
	queue := []chainhash.Hash1024{parentHash}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		children := c.orphans.Children(next)
		for _, child := range children {
			childHash := child.BlockHash()
			c.orphans.Remove(childHash)
			metrics.OrphanPoolBlocks.Set(float64(c.orphans.Len()))
			metrics.OrphanPoolBytes.Set(float64(c.orphans.Bytes()))
			if err := c.processLocked(sourcePeer, child); err != nil {
				continue
			}
			queue = append(queue, childHash)
		}
	}
}

// errorCodeLabel extracts a stable metric label from err: its RuleError
// code if it has one, "internal" otherwise.
func errorCodeLabel(err error) string {
	if ruleErr, ok := err.(RuleError); ok {
		return ruleErr.ErrorCode.String()
	}
	return "internal"
}

// accept implements spec.md §4.7's accept(block, parent_index) step: append
// to the block file store, insert into the tree, stage the index batch, and
// promote to tip if the new node outweighs the current one.
func (c *ChainCore) accept(block *wire.MsgBlock, parent *BlockIndex) error {
	fileID, offset, err := c.blocks.Append(block)
	if err != nil {
		return fmt.Errorf("blockchain: append block to store: %w", err)
	}

	var newIndex *BlockIndex
	if parent == nil {
		newIndex = c.tree.InsertGenesis(&block.Header, fileID, offset, c.trustFor(block))
	} else {
		newIndex = c.tree.InsertChild(&block.Header, fileID, offset, parent, c.trustFor(block))
	}

	batch := c.index.NewBatch()
	batch.PutBlockIndex(newIndex.Hash(), newIndex.ToDisk(true))
	if parent == nil {
		batch.SetGenesisHash(newIndex.Hash())
	}

	if c.tip == nil || newIndex.ChainTrust > c.tip.ChainTrust {
		if err := c.setBest(batch, newIndex); err != nil {
			return err
		}
	}

	if err := c.index.Commit(batch); err != nil {
		return fmt.Errorf("blockchain: commit index batch: %w", err)
	}
	return nil
}

// trustFor computes the work/stake trust delta a block contributes;
// IndexTree.InsertChild/InsertGenesis add it onto the parent's own
// ChainTrust. Supplies TrustOf with the coin-age its proof-of-stake
// coinbase (if any) carries.
func (c *ChainCore) trustFor(block *wire.MsgBlock) uint64 {
	var coinAge uint64
	channel := wire.Channel(block.Header.Channel)
	if channel.IsProofOfStake() && len(block.Transactions) > 0 {
		coinAge = c.txSource.StakeCoinAge(block.Transactions[0])
	}
	return TrustOf(&block.Header, coinAge)
}

// setBest implements spec.md §4.7's set_best(new_tip): find the fork point
// with the current tip, disconnect main-chain blocks back to it, connect
// the new branch's blocks forward, and update the tip pointer. batch
// accumulates every index mutation so a failure midway never leaves a
// partially-applied reorg visible to a later Commit.
func (c *ChainCore) setBest(batch *indexstore.Batch, newTip *BlockIndex) error {
	oldTip := c.tip
	if oldTip == nil {
		c.applyNextPointers(newTip)
		batch.SetBestHash(newTip.Hash())
		c.tip = newTip
		c.reportTip(newTip)
		return nil
	}

	fork := c.lowestCommonAncestor(oldTip, newTip)

	disconnect := ancestryTo(c.tree, oldTip, fork)
	connect := ancestryTo(c.tree, newTip, fork)
	reverse(connect)

	if len(disconnect) > 0 {
		metrics.Reorgs.Inc()
		metrics.ReorgDepth.Observe(float64(len(disconnect)))
	}

	for _, node := range disconnect {
		if err := c.disconnectBlock(node); err != nil {
			return fmt.Errorf("blockchain: disconnect %v during reorg: %w", node.Hash(), err)
		}
		parent := c.tree.Parent(node)
		if parent != nil {
			c.tree.ClearNext(parent)
		}
	}

	connected := make([]*BlockIndex, 0, len(connect))
	for _, node := range connect {
		if err := c.connectBlock(node); err != nil {
			// Undo everything connected so far in this attempt, and
			// re-connect what we disconnected above, restoring the
			// chain manager's in-memory state to the old tip.
			for i := len(connected) - 1; i >= 0; i-- {
				_ = c.disconnectBlock(connected[i])
			}
			for i := len(disconnect) - 1; i >= 0; i-- {
				_ = c.connectBlock(disconnect[i])
			}
			for _, n := range connected {
				if p := c.tree.Parent(n); p != nil {
					c.tree.ClearNext(p)
				}
			}
			c.applyNextPointers(oldTip)
			return fmt.Errorf("blockchain: connect %v during reorg: %w", node.Hash(), err)
		}
		connected = append(connected, node)
		parent := c.tree.Parent(node)
		if parent != nil {
			c.tree.SetNext(parent, node)
		}
	}

	batch.SetBestHash(newTip.Hash())
	c.tip = newTip
	c.reportTip(newTip)
	return nil
}

// reportTip publishes the new tip's height and accumulated trust to the
// channel-scoped gauges.
func (c *ChainCore) reportTip(tip *BlockIndex) {
	metrics.TipHeight.WithLabelValues(tip.Channel.String()).Set(float64(tip.Height))
	metrics.ChainTrust.Set(float64(tip.ChainTrust))
}

// applyNextPointers links parent -> child next pointers along node's
// entire ancestry back to genesis, used the first time a tip is set.
func (c *ChainCore) applyNextPointers(node *BlockIndex) {
	for n := node; n != nil; n = c.tree.Parent(n) {
		parent := c.tree.Parent(n)
		if parent != nil {
			c.tree.SetNext(parent, n)
		}
	}
}

// lowestCommonAncestor walks both chains back to equal height, then in
// lockstep, per spec.md §4.7's set_best fork-finding step.
func (c *ChainCore) lowestCommonAncestor(a, b *BlockIndex) *BlockIndex {
	for a.Height > b.Height {
		a = c.tree.Parent(a)
	}
	for b.Height > a.Height {
		b = c.tree.Parent(b)
	}
	for a.Hash() != b.Hash() {
		a = c.tree.Parent(a)
		b = c.tree.Parent(b)
	}
	return a
}

// ancestryTo returns the chain of nodes strictly between stop (exclusive)
// and tip (inclusive), ordered from tip back down to stop's child.
func ancestryTo(tree *IndexTree, tip, stop *BlockIndex) []*BlockIndex {
	var out []*BlockIndex
	for n := tip; n != nil && n.Hash() != stop.Hash(); n = tree.Parent(n) {
		out = append(out, n)
	}
	return out
}

func reverse(nodes []*BlockIndex) {
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
}

// disconnectBlock reverses a main-chain block's effect on the UTXO set, per
// spec.md §4.7.1: it hands each transaction, last to first, to
// TxSource.DisconnectInputs, which re-marks spent inputs unspent and removes
// the block's own outputs. It does not change the Mint, Supply, reserve or
// reward rollups of any BlockIndex.
func (c *ChainCore) disconnectBlock(node *BlockIndex) error {
	block, err := c.loadBlock(node)
	if err != nil {
		return err
	}
	for i := len(block.Transactions) - 1; i >= 0; i-- {
		tx := block.Transactions[i]
		if result := c.txSource.DisconnectInputs(tx); !result.OK() {
			return fmt.Errorf("disconnect tx %v: %w", tx.Hash(), result.Err)
		}
	}
	return nil
}

// connectBlock applies a block's effect on the UTXO set, per spec.md
// §4.7.2: it hands each transaction to TxSource.ConnectInputs, which
// verifies and marks every input spent and adds every output, enforcing
// coinbase maturity. It does not credit a coinbase reward or change the
// Mint, Supply, reserve or reward rollups of any BlockIndex.
func (c *ChainCore) connectBlock(node *BlockIndex) error {
	block, err := c.loadBlock(node)
	if err != nil {
		return err
	}
	for _, tx := range block.Transactions {
		if result := c.txSource.ConnectInputs(tx, node.Height, coinbaseMaturity); !result.OK() {
			return fmt.Errorf("connect tx %v: %w", tx.Hash(), result.Err)
		}
	}
	return nil
}

func (c *ChainCore) loadBlock(node *BlockIndex) (*wire.MsgBlock, error) {
	block, err := c.blocks.Read(node.FileID, node.Offset, true)
	if err != nil {
		return nil, fmt.Errorf("blockchain: read block %v: %w", node.Hash(), err)
	}
	return block, nil
}

// CreateCandidate builds an unsealed candidate block extending the current
// tip on channel; mining/builder.go owns the detailed assembly rules of
// spec.md §4.8, so this only snapshots the state a builder needs.
func (c *ChainCore) CreateCandidate(channel wire.Channel, payoutScript []byte) (*wire.MsgBlock, error) {
	c.chainLock.RLock()
	defer c.chainLock.RUnlock()

	if c.tip == nil {
		return nil, ruleError(ErrInvalidContext, "no tip to build from yet")
	}
	params, ok := c.params[channel]
	if !ok {
		return nil, ruleError(ErrInvalidContext, fmt.Sprintf("no difficulty parameters configured for channel %v", channel))
	}

	bits := CalcNextRequiredDifficulty(c.tree, c.tip, channel, params)
	medianTime := c.tree.MedianTimePast(c.tip)
	blockTime := medianTime.Add(time.Second)
	if now := time.Now(); now.After(blockTime) {
		blockTime = now
	}

	coinbase := wire.NewCoinbaseTx(payoutScript, 0, nil)
	txs := []*wire.Tx{coinbase}
	root := CalcMerkleRoot(txs)

	return &wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:    1,
			PrevBlock:  c.tip.Hash(),
			MerkleRoot: root,
			Channel:    uint32(channel),
			Height:     c.tip.Height + 1,
			Bits:       bits,
			Time:       blockTime,
		},
		Transactions: txs,
	}, nil
}

var _ collab.Chain = (*ChainCore)(nil)
