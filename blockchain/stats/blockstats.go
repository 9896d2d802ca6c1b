// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package stats aggregates size and reward rollups for a block, the kind of
// summary an RPC-style caller or a monitoring dashboard wants without
// re-walking the index tree itself.
package stats

import (
	"bytes"
	"sort"

	"github.com/vantachain/vantad/blockchain"
	"github.com/vantachain/vantad/wire"
)

// BlockStats aggregates commonly used statistics for a single block, plus
// the channel-scoped rollups its BlockIndex entry carries forward from
// genesis.
type BlockStats struct {
	Channel       wire.Channel
	Height        uint32
	ChannelHeight int64
	ChainTrust    uint64

	TxCount      int64
	TotalSize    int64
	MinTxSize    int64
	MaxTxSize    int64
	TxSizes      []int64
	CoinbaseSize int64

	CoinbaseReward   int64
	CoinbaseRewards  [3]int64
	ReleasedReserve  [4]int64
	Mint             int64
	Supply           int64
	TotalInputs      int64
	TotalOutputs     int64
	NonCoinbaseCount int64
}

// ComputeBlockStats returns aggregated statistics for block, using node for
// the channel-scoped rollups (trust, mint, supply, reward history) the chain
// manager already carries on its index entry.
func ComputeBlockStats(block *wire.MsgBlock, node *blockchain.BlockIndex) (*BlockStats, error) {
	bs := &BlockStats{
		Channel:       wire.Channel(block.Header.Channel),
		Height:        block.Header.Height,
		ChannelHeight: node.ChannelHeight,
		ChainTrust:    node.ChainTrust,
		TxCount:       int64(len(block.Transactions)),

		CoinbaseRewards: node.CoinbaseRewards,
		ReleasedReserve: node.ReleasedReserve,
		Mint:            node.Mint,
		Supply:          node.Supply,
	}

	for _, tx := range block.Transactions {
		size, err := serializedSize(tx)
		if err != nil {
			return nil, err
		}

		bs.TotalSize += size
		bs.TxSizes = append(bs.TxSizes, size)
		if bs.MinTxSize == 0 || size < bs.MinTxSize {
			bs.MinTxSize = size
		}
		if size > bs.MaxTxSize {
			bs.MaxTxSize = size
		}

		bs.TotalInputs += int64(len(tx.TxIn))
		bs.TotalOutputs += int64(len(tx.TxOut))

		if tx.IsCoinBase() {
			bs.CoinbaseSize = size
			for _, out := range tx.TxOut {
				bs.CoinbaseReward += out.Value
			}
			continue
		}
		bs.NonCoinbaseCount++
	}

	return bs, nil
}

// AverageTxSize returns the average serialized transaction size in bytes.
func (bs *BlockStats) AverageTxSize() int64 {
	if bs.TxCount == 0 {
		return 0
	}
	return bs.TotalSize / bs.TxCount
}

// MedianTxSize returns the median transaction size.
func (bs *BlockStats) MedianTxSize() int64 {
	return medianInt64(bs.TxSizes)
}

// RewardForChannel returns the cumulative coinbase reward rolled up for
// channel across the chain ending at this block, or 0 if channel is out of
// range.
func (bs *BlockStats) RewardForChannel(channel wire.Channel) int64 {
	if int(channel) < 0 || int(channel) >= len(bs.CoinbaseRewards) {
		return 0
	}
	return bs.CoinbaseRewards[channel]
}

func serializedSize(tx *wire.Tx) (int64, error) {
	var buf bytes.Buffer
	if err := tx.Serialize(&buf); err != nil {
		return 0, err
	}
	return int64(buf.Len()), nil
}

func medianInt64(values []int64) int64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]int64(nil), values...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}
