// Copyright (c) 2013-2015 The btcsuite developers
// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command vantad is the thin composition root that wires the block and
// chain-state core together into a runnable process: it owns config
// loading, log rotation, and the optional Prometheus listener, none of
// which belong in the core packages themselves.
package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vantachain/vantad/blockchain"
	"github.com/vantachain/vantad/chaincfg"
	"github.com/vantachain/vantad/chainhash"
	"github.com/vantachain/vantad/store/blockstore"
	"github.com/vantachain/vantad/store/indexstore"
	"github.com/vantachain/vantad/wire"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	netDir := cfg.networkSubDir()
	logFile := filepath.Join(cfg.LogDir, netDir, defaultLogFilename)
	if err := initLogRotator(logFile); err != nil {
		return err
	}
	defer logRotator.Close()
	if err := setLogLevels(cfg.DebugLevel); err != nil {
		return err
	}

	params := selectParams(cfg)

	dataDir := filepath.Join(cfg.DataDir, netDir)
	chain, closeStores, err := buildChainCore(dataDir, params)
	if err != nil {
		return err
	}
	defer closeStores()

	if cfg.MetricsAddr != "" {
		server := startMetricsServer(cfg.MetricsAddr)
		defer server.Close()
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt

	chain.Shutdown()
	return nil
}

// selectParams resolves the network Params cfg asked for.
func selectParams(cfg *config) chaincfg.Params {
	switch {
	case cfg.RegressionTest:
		return chaincfg.RegressionNetParams
	case cfg.TestNet3:
		return chaincfg.TestNet3Params
	default:
		return chaincfg.MainNetParams
	}
}

// buildChainCore opens the two durable stores under dataDir, replays the
// index store into a fresh IndexTree, constructs the ChainCore, and passes
// the network's genesis block to ProcessBlock if the chain has no tip yet. The returned func
// closes both stores; callers must call it on every return path.
func buildChainCore(dataDir string, params chaincfg.Params) (*blockchain.ChainCore, func(), error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, nil, fmt.Errorf("create data directory: %w", err)
	}

	blocks, err := blockstore.New(filepath.Join(dataDir, "blocks"), params.Magic)
	if err != nil {
		return nil, nil, fmt.Errorf("open block store: %w", err)
	}

	index, err := indexstore.Open(filepath.Join(dataDir, "index"))
	if err != nil {
		blocks.Close()
		return nil, nil, fmt.Errorf("open index store: %w", err)
	}

	closeStores := func() {
		index.Close()
		blocks.Close()
	}

	tree := blockchain.NewIndexTree()
	if err := replayIndex(index, tree); err != nil {
		closeStores()
		return nil, nil, fmt.Errorf("replay index store: %w", err)
	}

	chain, err := blockchain.New(blockchain.Config{
		Tree:        tree,
		Blocks:      blocks,
		Index:       index,
		TxSource:    placeholderTxSource{},
		Orphans:     blockchain.NewOrphanPool(),
		Checkpoints: params.Checkpoints,
		Params:      params.ChannelParams,
	})
	if err != nil {
		closeStores()
		return nil, nil, fmt.Errorf("construct chain core: %w", err)
	}

	if tip, _ := chain.Tip(); tip == (chainhash.Hash1024{}) {
		if err := chain.ProcessBlock(params.GenesisBlock); err != nil {
			closeStores()
			return nil, nil, fmt.Errorf("mine in genesis block: %w", err)
		}
	}

	return chain, closeStores, nil
}

// replayIndex rebuilds tree from every record already durable in index, the
// "caller replays the index store on startup" contract blockchain.New
// depends on. IndexTree.Parent/Next resolve lazily by hash, so insertion
// order doesn't matter.
func replayIndex(index *indexstore.Store, tree *blockchain.IndexTree) error {
	return index.ForEachBlockIndex(func(hash chainhash.Hash1024, idx *wire.DiskBlockIndex) error {
		tree.Insert(blockchain.FromDisk(hash, idx))
		return nil
	})
}

// startMetricsServer serves the registered Prometheus collectors at addr.
// Non-goals exclude a full RPC/metrics server; this is the minimum needed
// for an operator to point a scraper at the process.
func startMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux}
	go server.ListenAndServe()
	return server
}
