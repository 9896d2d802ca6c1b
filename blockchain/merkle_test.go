// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vantachain/vantad/chainhash"
	"github.com/vantachain/vantad/wire"
)

func makeTxs(size int) []*wire.Tx {
	txs := make([]*wire.Tx, size)
	for i := range txs {
		txs[i] = wire.NewCoinbaseTx([]byte{byte(i)}, int64(i), []byte{byte(i)})
	}
	return txs
}

func TestBuildMerkleTreeStoreMatchesCalcMerkleRoot(t *testing.T) {
	txs := makeTxs(7)
	tree := BuildMerkleTreeStore(txs)
	root := CalcMerkleRoot(txs)
	require.Equal(t, *tree[len(tree)-1], root)
}

func TestCalcMerkleRootEmptyIsZero(t *testing.T) {
	require.Zero(t, CalcMerkleRoot(nil))
}

func TestCalcMerkleRootSingleTx(t *testing.T) {
	txs := makeTxs(1)
	root := CalcMerkleRoot(txs)
	require.Equal(t, txs[0].Hash(), root)
}

func TestCalcMerkleRootOddCountDuplicatesLast(t *testing.T) {
	odd := makeTxs(3)
	explicitDup := append(makeTxs(3), odd[2])
	require.Equal(t, CalcMerkleRoot(odd), CalcMerkleRoot(explicitDup))
}

func TestCheckMerkleBranchRoundTripTwoLeaves(t *testing.T) {
	txs := makeTxs(2)
	root := CalcMerkleRoot(txs)

	leaf0, leaf1 := txs[0].Hash(), txs[1].Hash()

	gotFrom0 := CheckMerkleBranch(leaf0, []chainhash.Hash512{leaf1}, 0)
	require.Equal(t, root, gotFrom0)

	gotFrom1 := CheckMerkleBranch(leaf1, []chainhash.Hash512{leaf0}, 1)
	require.Equal(t, root, gotFrom1)
}

func BenchmarkBuildMerkleTreeStore(b *testing.B) {
	sizes := []int{1000, 2000, 4000}
	for _, size := range sizes {
		txs := makeTxs(size)
		b.Run(fmt.Sprintf("%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				BuildMerkleTreeStore(txs)
			}
		})
	}
}
