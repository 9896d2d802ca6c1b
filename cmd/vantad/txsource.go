// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/vantachain/vantad/collab"
	"github.com/vantachain/vantad/wire"
)

// placeholderTxSource stands in for the transaction mempool and script
// evaluator, which live outside this module entirely. It accepts every
// transaction unconditionally so the chain core can run standalone; a real
// deployment wires blockchain.Config.TxSource to an actual UTXO engine
// instead of constructing this type.
type placeholderTxSource struct{}

func (placeholderTxSource) CheckTransaction(tx *wire.Tx) collab.Result {
	return collab.Result{}
}

func (placeholderTxSource) ConnectInputs(tx *wire.Tx, height uint32, coinbaseMaturity uint32) collab.Result {
	return collab.Result{}
}

func (placeholderTxSource) DisconnectInputs(tx *wire.Tx) collab.Result {
	return collab.Result{}
}

func (placeholderTxSource) StakeCoinAge(tx *wire.Tx) uint64 {
	return 0
}
