// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vantachain/vantad/wire"
)

func TestGenesisBlockHashIsStable(t *testing.T) {
	require.Equal(t, mainGenesisBlock.BlockHash(), MainNetParams.GenesisHash)
}

func TestGenesisBlockHasSingleCoinbase(t *testing.T) {
	for _, p := range []Params{MainNetParams, TestNet3Params, RegressionNetParams} {
		require.Len(t, p.GenesisBlock.Transactions, 1)
		require.True(t, p.GenesisBlock.Transactions[0].IsCoinBase())
		require.Equal(t, uint32(0), p.GenesisBlock.Header.Height)
	}
}

func TestParamsForMagicKnowsAllThreeNetworks(t *testing.T) {
	p, ok := ParamsForMagic(wire.MainNet)
	require.True(t, ok)
	require.Equal(t, "mainnet", p.Name)

	p, ok = ParamsForMagic(wire.TestNet)
	require.True(t, ok)
	require.Equal(t, "testnet", p.Name)

	p, ok = ParamsForMagic(wire.RegTest)
	require.True(t, ok)
	require.Equal(t, "regtest", p.Name)

	_, ok = ParamsForMagic(wire.ChainMagic(0xdeadbeef))
	require.False(t, ok)
}

func TestChannelParamsCoverAllThreeChannels(t *testing.T) {
	for _, ch := range []wire.Channel{wire.ChannelStake, wire.ChannelPrime, wire.ChannelHash} {
		p, ok := MainNetParams.ChannelParams[ch]
		require.True(t, ok)
		require.NotNil(t, p.PowLimit)
		require.NotZero(t, p.PowLimitBits)
	}
}
