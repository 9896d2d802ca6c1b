// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg defines the parameters a running node needs to tell one
// chain apart from another: the genesis block, the magic network marker,
// per-channel difficulty configuration, and the hardened checkpoints the
// chain core must agree with.
package chaincfg

import (
	"math/big"
	"time"

	"github.com/vantachain/vantad/blockchain"
	"github.com/vantachain/vantad/chainhash"
	"github.com/vantachain/vantad/chainutil"
	"github.com/vantachain/vantad/wire"
)

const (
	mainGenesisReward = 1000 * chainutil.QuarkPerVantachain

	mainPowLimitBits    = 0x1d00ffff
	testNetPowLimitBits = 0x1d0fffff
	regTestPowLimitBits = 0x207fffff
)

var (
	mainPowLimit    = compactLimit(mainPowLimitBits)
	testNetPowLimit = compactLimit(testNetPowLimitBits)
	regTestPowLimit = compactLimit(regTestPowLimitBits)
)

func compactLimit(bits uint32) *big.Int {
	return blockchain.CompactToBig(bits)
}

func chainMerkleRoot(txs []*wire.Tx) chainhash.Hash512 {
	return blockchain.CalcMerkleRoot(txs)
}

// Params groups everything that distinguishes one network from another:
// the genesis block it starts from, the magic byte sequence stamped on
// every block file record, the difficulty configuration of its three
// channels, and the hardened checkpoints new blocks must agree with.
type Params struct {
	Name          string
	Magic         wire.ChainMagic
	GenesisBlock  *wire.MsgBlock
	GenesisHash   chainhash.Hash1024
	ChannelParams map[wire.Channel]blockchain.ChannelParams
	Checkpoints   blockchain.Checkpoints
}

func mainChannelParams(limit *big.Int, limitBits uint32) map[wire.Channel]blockchain.ChannelParams {
	pow := blockchain.ChannelParams{
		TargetSpacing:      10 * time.Minute,
		RetargetAdjustment: 4,
		PowLimit:           limit,
		PowLimitBits:       limitBits,
	}
	stake := pow
	stake.TargetSpacing = 5 * time.Minute

	return map[wire.Channel]blockchain.ChannelParams{
		wire.ChannelPrime: pow,
		wire.ChannelHash:  pow,
		wire.ChannelStake: stake,
	}
}

// MainNetParams defines the network parameters for the main vantachain
// network.
var MainNetParams = Params{
	Name:          "mainnet",
	Magic:         wire.MainNet,
	GenesisBlock:  &mainGenesisBlock,
	GenesisHash:   mainGenesisBlock.BlockHash(),
	ChannelParams: mainChannelParams(mainPowLimit, mainPowLimitBits),
	Checkpoints:   blockchain.Checkpoints{},
}

// TestNet3Params defines the network parameters for the public test
// network.
var TestNet3Params = Params{
	Name:          "testnet",
	Magic:         wire.TestNet,
	GenesisBlock:  &testNet3GenesisBlock,
	GenesisHash:   testNet3GenesisBlock.BlockHash(),
	ChannelParams: mainChannelParams(testNetPowLimit, testNetPowLimitBits),
	Checkpoints:   blockchain.Checkpoints{},
}

// RegressionNetParams defines the network parameters for the regression
// test network, whose proof-of-work limit is permissive enough that a
// single-threaded test can mine a block in microseconds.
var RegressionNetParams = Params{
	Name:          "regtest",
	Magic:         wire.RegTest,
	GenesisBlock:  &regTestGenesisBlock,
	GenesisHash:   regTestGenesisBlock.BlockHash(),
	ChannelParams: mainChannelParams(regTestPowLimit, regTestPowLimitBits),
	Checkpoints:   blockchain.Checkpoints{},
}

// ParamsForMagic returns the registered Params for magic, or false if magic
// is not one of the three built-in networks.
func ParamsForMagic(magic wire.ChainMagic) (Params, bool) {
	switch magic {
	case wire.MainNet:
		return MainNetParams, true
	case wire.TestNet:
		return TestNet3Params, true
	case wire.RegTest:
		return RegressionNetParams, true
	default:
		return Params{}, false
	}
}
