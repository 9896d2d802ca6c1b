// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package metrics registers the chain core's prometheus collectors. Serving
// them over HTTP is a composition-root decision; this package only owns the
// collectors and the update calls the chain manager makes at the points it
// already touches the tip and the orphan pool.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	TipHeight = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "vantad",
		Name:      "chain_tip_height",
		Help:      "Height of the current best block, by channel.",
	}, []string{"channel"})

	ChainTrust = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "vantad",
		Name:      "chain_trust",
		Help:      "Accumulated trust of the current best block.",
	})

	OrphanPoolBlocks = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "vantad",
		Name:      "orphan_pool_blocks",
		Help:      "Number of blocks currently held in the orphan pool.",
	})

	OrphanPoolBytes = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "vantad",
		Name:      "orphan_pool_bytes",
		Help:      "Total serialized size of blocks held in the orphan pool.",
	})

	BlocksAccepted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vantad",
		Name:      "blocks_accepted_total",
		Help:      "Blocks accepted into the index tree, by channel.",
	}, []string{"channel"})

	BlocksRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vantad",
		Name:      "blocks_rejected_total",
		Help:      "Blocks rejected by the validator or chain manager, by error code.",
	}, []string{"reason"})

	Reorgs = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "vantad",
		Name:      "reorgs_total",
		Help:      "Number of times the best chain tip was reorganized onto a side branch.",
	})

	ReorgDepth = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "vantad",
		Name:      "reorg_depth_blocks",
		Help:      "Number of blocks disconnected from the old chain during a reorg.",
		Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 34},
	})
)

func init() {
	prometheus.MustRegister(
		TipHeight,
		ChainTrust,
		OrphanPoolBlocks,
		OrphanPoolBytes,
		BlocksAccepted,
		BlocksRejected,
		Reorgs,
		ReorgDepth,
	)
}
