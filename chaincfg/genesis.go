// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"time"

	"github.com/vantachain/vantad/wire"
)

// genesisCoinbase builds the single coinbase transaction every network's
// genesis block carries: no previous outputs to spend, one output paying
// the network's founding reward to an unspendable marker script.
func genesisCoinbase(reward int64, timestamp string) *wire.Tx {
	return wire.NewCoinbaseTx([]byte(timestamp), reward, []byte(timestamp))
}

// mainGenesisBlock defines the genesis block of the chain which serves as
// the public ledger for the main network. It is always minted on the
// proof-of-work prime channel; the stake and hash channels graft onto it at
// their first block rather than each carrying their own genesis.
var mainGenesisBlock = buildGenesisBlock(
	"Vantachain genesis 2026-01-01 a new ledger begins",
	mainGenesisReward,
	time.Unix(1767225600, 0),
	mainPowLimitBits,
)

// regTestGenesisBlock defines the genesis block used by the regression test
// network, mined trivially against the maximally permissive bits value.
var regTestGenesisBlock = buildGenesisBlock(
	"Vantachain regtest genesis",
	mainGenesisReward,
	time.Unix(1767225600, 0),
	regTestPowLimitBits,
)

// testNet3GenesisBlock defines the genesis block used by the public test
// network.
var testNet3GenesisBlock = buildGenesisBlock(
	"Vantachain testnet genesis",
	mainGenesisReward,
	time.Unix(1767225600, 0),
	testNetPowLimitBits,
)

func buildGenesisBlock(timestamp string, reward int64, when time.Time, bits uint32) wire.MsgBlock {
	txs := []*wire.Tx{genesisCoinbase(reward, timestamp)}
	return wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:    1,
			Channel:    uint32(wire.ChannelPrime),
			Height:     0,
			MerkleRoot: chainMerkleRoot(txs),
			Bits:       bits,
			Time:       when,
		},
		Transactions: txs,
	}
}
