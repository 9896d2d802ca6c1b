// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNetworkSubDirPicksDistinctDirectories(t *testing.T) {
	main := &config{}
	require.Equal(t, "mainnet", main.networkSubDir())

	testnet := &config{TestNet3: true}
	require.Equal(t, "testnet", testnet.networkSubDir())

	regtest := &config{RegressionTest: true}
	require.Equal(t, "regtest", regtest.networkSubDir())
}

func TestSelectParamsMatchesNetworkFlags(t *testing.T) {
	require.Equal(t, "mainnet", selectParams(&config{}).Name)
	require.Equal(t, "testnet", selectParams(&config{TestNet3: true}).Name)
	require.Equal(t, "regtest", selectParams(&config{RegressionTest: true}).Name)
}

func TestParseSubsystemLevelsRejectsMalformedPairs(t *testing.T) {
	_, err := parseSubsystemLevels("CHAN")
	require.Error(t, err)

	levels, err := parseSubsystemLevels("CHAN=debug,MINR=warn")
	require.NoError(t, err)
	require.Len(t, levels, 2)
}
