// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math/big"

	"github.com/vantachain/vantad/wire"
)

// channelTrustMultiplier scales a PoW channel's work contribution relative
// to the other channel, so neither proof-of-work channel can out-accumulate
// the other purely by having an easier target; supplements the spec from
// block.h's channel-weighted trust model.
var channelTrustMultiplier = map[wire.Channel]uint64{
	wire.ChannelPrime: 1,
	wire.ChannelHash:  1,
}

// coinAgeUnit is the divisor coin-age (amount × seconds held) is reduced by
// before being added to stake trust, keeping stake trust on a comparable
// scale to PoW trust for a typical reserve-key balance.
const coinAgeUnit = 1 << 32

// TrustOf computes the chain-trust contribution of a single block, a pure
// function of its header fields, per spec.md §4.6's trust-contribution
// rule: proportional to 1/target (scaled by a channel multiplier) for PoW,
// and proportional to coin-age × stake-modifier weight for PoS.
//
// coinAge is supplied by the caller (the chain manager, which has the Tx
// collaborator in scope) since it does not belong on a bare header.
func TrustOf(header *wire.BlockHeader, coinAge uint64) uint64 {
	channel := wire.Channel(header.Channel)
	if channel.IsProofOfStake() {
		// The header has a single u64 nonce-shaped field (spec.md §3); on
		// the stake channel the mining collaborator fills it with the
		// stake modifier rather than a PoW nonce (spec.md §4.8 step 6).
		return (coinAge * header.Nonce) / coinAgeUnit
	}

	work := CalcWork(header.Bits)
	mult := channelTrustMultiplier[channel]
	if mult == 0 {
		mult = 1
	}
	scaled := new(big.Int).Mul(work, new(big.Int).SetUint64(mult))

	// Chain trust is accumulated as a uint64 rollup (spec.md §3); clip a
	// work value that would overflow it rather than wrap silently.
	if !scaled.IsUint64() {
		return ^uint64(0)
	}
	return scaled.Uint64()
}
