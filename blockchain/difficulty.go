// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math/big"
	"time"

	"github.com/vantachain/vantad/chainhash"
	"github.com/vantachain/vantad/wire"
)

var (
	bigOne    = big.NewInt(1)
	oneLsh256 = new(big.Int).Lsh(bigOne, 256)
)

// HashToBig converts hash into a big.Int usable for proof-of-work
// comparisons, interpreting the bytes in reverse order (the convention a
// hash is displayed in) so numerically smaller hashes compare as smaller
// big.Ints.
func HashToBig(hash *chainhash.Hash1024) *big.Int {
	buf := *hash
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return new(big.Int).SetBytes(buf[:])
}

// CompactToBig converts a compact representation of a whole number N to a
// big.Int, per the IEEE754-like exponent/sign/mantissa split btcd-family
// nodes use to encode difficulty targets.
func CompactToBig(compact uint32) *big.Int {
	mantissa := compact & 0x007fffff
	isNegative := compact&0x00800000 != 0
	exponent := uint(compact >> 24)

	var n *big.Int
	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
		n = big.NewInt(int64(mantissa))
	} else {
		n = big.NewInt(int64(mantissa))
		n.Lsh(n, 8*(exponent-3))
	}

	if isNegative {
		n = n.Neg(n)
	}
	return n
}

// BigToCompact converts n to its compact representation, the inverse of
// CompactToBig. Values larger than 2^23-1 only keep their most significant
// digits.
func BigToCompact(n *big.Int) uint32 {
	if n.Sign() == 0 {
		return 0
	}

	var mantissa uint32
	exponent := uint(len(n.Bytes()))
	if exponent <= 3 {
		mantissa = uint32(n.Bits()[0])
		mantissa <<= 8 * (3 - exponent)
	} else {
		tn := new(big.Int).Set(n)
		mantissa = uint32(tn.Rsh(tn, 8*(exponent-3)).Bits()[0])
	}

	if mantissa&0x00800000 != 0 {
		mantissa >>= 8
		exponent++
	}

	compact := uint32(exponent<<24) | mantissa
	if n.Sign() < 0 {
		compact |= 0x00800000
	}
	return compact
}

// CalcWork calculates the work value implied by bits: the inverse of the
// difficulty target, scaled so accumulated work is an additive, monotonic
// measure of effort spent. Matches the original design's
// 2^256/(target+1) convention.
func CalcWork(bits uint32) *big.Int {
	target := CompactToBig(bits)
	if target.Sign() <= 0 {
		return big.NewInt(0)
	}
	denominator := new(big.Int).Add(target, bigOne)
	return new(big.Int).Div(oneLsh256, denominator)
}

// ChannelParams bundles the per-channel difficulty-retargeting knobs
// consulted by CalcNextRequiredDifficulty; each of the three channels in
// spec.md §3 retargets independently against its own trajectory.
type ChannelParams struct {
	TargetSpacing      time.Duration
	RetargetAdjustment int64 // bound on the adjustment factor per block
	PowLimit           *big.Int
	PowLimitBits       uint32
}

// clip bounds actual inside [target/factor, target*factor].
func clip(actual, target time.Duration, factor int64) time.Duration {
	if actual < target/time.Duration(factor) {
		return target / time.Duration(factor)
	}
	if actual > target*time.Duration(factor) {
		return target * time.Duration(factor)
	}
	return actual
}

// CalcNextRequiredDifficulty computes the expected difficulty bits for a
// block on channel extending prev, per spec.md §4.6 item 4's difficulty
// rule: each block's target adjusts by comparing the time since the last
// block on the same channel to a channel-specific spacing, clipped to a
// bounded factor.
func CalcNextRequiredDifficulty(tree *IndexTree, prev *BlockIndex, channel wire.Channel, params ChannelParams) uint32 {
	lastOnChannel := tree.LastOfChannel(prev, channel)
	if lastOnChannel == nil {
		return params.PowLimitBits
	}
	priorOnChannel := tree.LastOfChannel(tree.Parent(lastOnChannel), channel)
	if priorOnChannel == nil {
		return params.PowLimitBits
	}

	actualSpacing := lastOnChannel.Time.Sub(priorOnChannel.Time)
	adjusted := clip(actualSpacing, params.TargetSpacing, params.RetargetAdjustment)

	oldTarget := CompactToBig(lastOnChannel.Bits)
	newTarget := new(big.Int).Mul(oldTarget, big.NewInt(int64(adjusted)))
	newTarget.Div(newTarget, big.NewInt(int64(params.TargetSpacing)))

	if newTarget.Cmp(params.PowLimit) > 0 {
		newTarget.Set(params.PowLimit)
	}
	if newTarget.Sign() <= 0 {
		newTarget.Set(params.PowLimit)
	}

	return BigToCompact(newTarget)
}

// CheckProofOfWork verifies hash satisfies the difficulty target encoded by
// bits, per spec.md §4.6 item 5 — evaluated only for PoW channels.
func CheckProofOfWork(hash *chainhash.Hash1024, bits uint32, limit *big.Int) error {
	target := CompactToBig(bits)
	if target.Sign() <= 0 {
		return ruleError(ErrInvalidHeader, "block target difficulty is too low")
	}
	if target.Cmp(limit) > 0 {
		return ruleError(ErrInvalidHeader, "block target difficulty exceeds the channel's proof-of-work limit")
	}
	hashNum := HashToBig(hash)
	if hashNum.Cmp(target) > 0 {
		return ruleError(ErrInvalidHeader, "block hash does not satisfy the required proof of work")
	}
	return nil
}
