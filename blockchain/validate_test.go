// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vantachain/vantad/collab"
	"github.com/vantachain/vantad/wire"
)

type fakeTxSource struct{ reject map[string]bool }

func (f fakeTxSource) CheckTransaction(tx *wire.Tx) collab.Result {
	hash := tx.Hash()
	if f.reject[hash.String()] {
		return collab.Result{Err: errFakeRejected}
	}
	return collab.Result{}
}

func (f fakeTxSource) ConnectInputs(tx *wire.Tx, height uint32, coinbaseMaturity uint32) collab.Result {
	return collab.Result{}
}

func (f fakeTxSource) DisconnectInputs(tx *wire.Tx) collab.Result {
	return collab.Result{}
}

func (f fakeTxSource) StakeCoinAge(tx *wire.Tx) uint64 {
	return 0
}

var errFakeRejected = ruleError(ErrInvalidContext, "rejected by fake tx source")

func sampleValidBlock(channel wire.Channel, txs ...*wire.Tx) *wire.MsgBlock {
	if len(txs) == 0 {
		txs = []*wire.Tx{wire.NewCoinbaseTx([]byte{0x01}, 50, []byte{0x02})}
	}
	root := CalcMerkleRoot(txs)
	return &wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:    1,
			MerkleRoot: root,
			Channel:    uint32(channel),
			Height:     1,
			Bits:       0x1d00ffff,
			Time:       time.Unix(time.Now().Unix(), 0),
		},
		Transactions: txs,
	}
}

func TestCheckBlockAcceptsWellFormedBlock(t *testing.T) {
	block := sampleValidBlock(wire.ChannelStake)
	err := CheckBlock(block, nil, fakeTxSource{})
	require.NoError(t, err)
}

func TestCheckBlockRejectsMissingCoinbase(t *testing.T) {
	tx := &wire.Tx{
		TxIn:  []*wire.TxIn{{PreviousOutPoint: wire.OutPoint{Index: 0}}},
		TxOut: []*wire.TxOut{{Value: 1}},
	}
	block := sampleValidBlock(wire.ChannelStake, tx)
	err := CheckBlock(block, nil, fakeTxSource{})
	requireRuleError(t, err, ErrInvalidHeader)
}

func TestCheckBlockRejectsSecondCoinbase(t *testing.T) {
	cb1 := wire.NewCoinbaseTx([]byte{0x01}, 50, []byte{0x02})
	cb2 := wire.NewCoinbaseTx([]byte{0x03}, 50, []byte{0x04})
	block := sampleValidBlock(wire.ChannelStake, cb1, cb2)
	err := CheckBlock(block, nil, fakeTxSource{})
	requireRuleError(t, err, ErrInvalidHeader)
}

func TestCheckBlockRejectsBadMerkleRoot(t *testing.T) {
	block := sampleValidBlock(wire.ChannelStake)
	block.Header.MerkleRoot[0] ^= 0xff
	err := CheckBlock(block, nil, fakeTxSource{})
	requireRuleError(t, err, ErrInvalidHeader)
}

func TestCheckBlockRejectsFutureTimestamp(t *testing.T) {
	block := sampleValidBlock(wire.ChannelStake)
	block.Header.Time = time.Now().Add(3 * time.Hour)
	err := CheckBlock(block, nil, fakeTxSource{})
	requireRuleError(t, err, ErrInvalidHeader)
}

func TestCheckBlockRejectsUnknownChannel(t *testing.T) {
	block := sampleValidBlock(wire.Channel(7))
	err := CheckBlock(block, nil, fakeTxSource{})
	requireRuleError(t, err, ErrInvalidHeader)
}

func TestCheckBlockDelegatesToTxSource(t *testing.T) {
	cb := wire.NewCoinbaseTx([]byte{0x01}, 50, []byte{0x02})
	block := sampleValidBlock(wire.ChannelStake, cb)
	hash := cb.Hash()
	err := CheckBlock(block, nil, fakeTxSource{reject: map[string]bool{hash.String(): true}})
	requireRuleError(t, err, ErrInvalidHeader)
}

func requireRuleError(t *testing.T, err error, code ErrorCode) {
	t.Helper()
	require.Error(t, err)
	ruleErr, ok := err.(RuleError)
	require.True(t, ok, "expected a RuleError, got %T", err)
	require.Equal(t, code, ruleErr.ErrorCode)
}
