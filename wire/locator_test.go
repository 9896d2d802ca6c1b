// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vantachain/vantad/chainhash"
)

func TestBlockLocatorRoundTrip(t *testing.T) {
	var a, b chainhash.Hash1024
	a[0] = 1
	b[0] = 2
	loc := &BlockLocator{Hashes: []chainhash.Hash1024{a, b}}

	var buf bytes.Buffer
	require.NoError(t, loc.Serialize(&buf))

	var got BlockLocator
	require.NoError(t, got.Deserialize(&buf))
	require.Equal(t, loc.Hashes, got.Hashes)
}

func TestBlockLocatorEmpty(t *testing.T) {
	loc := &BlockLocator{}

	var buf bytes.Buffer
	require.NoError(t, loc.Serialize(&buf))

	var got BlockLocator
	require.NoError(t, got.Deserialize(&buf))
	require.Empty(t, got.Hashes)
}

func TestBlockLocatorDeserializeTooManyRejected(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeVarInt(&buf, MaxLocatorHashes+1))

	var got BlockLocator
	require.Error(t, got.Deserialize(&buf))
}
