// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vantachain/vantad/blockchain"
	"github.com/vantachain/vantad/wire"
)

func sampleBlock() *wire.MsgBlock {
	cb := wire.NewCoinbaseTx([]byte{0x01}, 500, []byte{0x02})
	regular := &wire.Tx{
		Version: 1,
		TxIn:    []*wire.TxIn{{PreviousOutPoint: wire.OutPoint{Index: 0}}},
		TxOut:   []*wire.TxOut{{Value: 100}, {Value: 50}},
	}
	txs := []*wire.Tx{cb, regular}
	return &wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:    1,
			Channel:    uint32(wire.ChannelPrime),
			Height:     1,
			MerkleRoot: blockchain.CalcMerkleRoot(txs),
			Time:       time.Unix(1700000000, 0),
		},
		Transactions: txs,
	}
}

func TestComputeBlockStatsCountsTransactions(t *testing.T) {
	tree := blockchain.NewIndexTree()
	genesis := tree.InsertGenesis(&wire.BlockHeader{Channel: uint32(wire.ChannelPrime)}, 1, 0, 1)
	node := tree.InsertChild(&sampleBlock().Header, 1, 128, genesis, 1)

	bs, err := ComputeBlockStats(sampleBlock(), node)
	require.NoError(t, err)

	require.Equal(t, int64(2), bs.TxCount)
	require.Equal(t, int64(1), bs.NonCoinbaseCount)
	require.Equal(t, int64(500), bs.CoinbaseReward)
	require.Equal(t, int64(2), bs.TotalInputs)
	require.Equal(t, int64(3), bs.TotalOutputs)
	require.Greater(t, bs.TotalSize, int64(0))
	require.Greater(t, bs.AverageTxSize(), int64(0))
}

func TestComputeBlockStatsCarriesChannelRollups(t *testing.T) {
	tree := blockchain.NewIndexTree()
	genesis := tree.InsertGenesis(&wire.BlockHeader{Channel: uint32(wire.ChannelPrime)}, 1, 0, 1)
	genesis.CoinbaseRewards[wire.ChannelPrime] = 500
	genesis.Supply = 500
	genesis.Mint = 500

	node := tree.InsertChild(&sampleBlock().Header, 1, 128, genesis, 3)
	node.CoinbaseRewards = genesis.CoinbaseRewards
	node.CoinbaseRewards[wire.ChannelPrime] += 500
	node.Supply = genesis.Supply + 500
	node.Mint = genesis.Mint + 500

	bs, err := ComputeBlockStats(sampleBlock(), node)
	require.NoError(t, err)

	require.Equal(t, int64(1000), bs.RewardForChannel(wire.ChannelPrime))
	require.Equal(t, int64(1000), bs.Supply)
	require.Equal(t, node.ChainTrust, bs.ChainTrust)
}

func TestMedianTxSizeOddAndEven(t *testing.T) {
	bs := &BlockStats{TxSizes: []int64{10, 30, 20}}
	require.Equal(t, int64(20), bs.MedianTxSize())

	bs.TxSizes = append(bs.TxSizes, 40)
	require.Equal(t, int64(25), bs.MedianTxSize())
}
