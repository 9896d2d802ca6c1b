// Copyright (c) 2013-2015 The btcsuite developers
// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	flags "github.com/jessevdk/go-flags"

	"github.com/vantachain/vantad/chainutil"
)

const (
	defaultLogLevel    = "info"
	defaultLogFilename = "vantad.log"
	defaultDataDirname = "data"
	defaultMetricsAddr = "127.0.0.1:9332"
)

var (
	vantadHomeDir     = chainutil.AppDataDir("vantad", false)
	defaultConfigFile = filepath.Join(vantadHomeDir, "vantad.conf")
	defaultDataDir    = filepath.Join(vantadHomeDir, defaultDataDirname)
	defaultLogDir     = filepath.Join(vantadHomeDir, "logs")
)

// config defines the configuration options for vantad.
//
// See loadConfig for details on the configuration load process.
type config struct {
	ConfigFile     string `short:"C" long:"configfile" description:"Path to configuration file"`
	DataDir        string `short:"b" long:"datadir" description:"Directory to store block and index data"`
	LogDir         string `long:"logdir" description:"Directory to log output"`
	DebugLevel     string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- Specify per-subsystem with subsystem=level,subsystem2=level2"`
	TestNet3       bool   `long:"testnet" description:"Use the test network"`
	RegressionTest bool   `long:"regtest" description:"Use the regression test network"`
	MetricsAddr    string `long:"metricsaddr" description:"Address to serve Prometheus metrics on (empty disables)"`
	NoMetrics      bool   `long:"nometrics" description:"Disable the Prometheus metrics listener entirely"`
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	if path == "" {
		return path
	}
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + path[1:]
		}
	}
	return filepath.Clean(os.ExpandEnv(path))
}

// loadConfig initializes and parses the config from defaults and command
// line options. The ConfigFile path is recorded, but no config file is read.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Parse CLI options, overwriting defaults with any specified options
//
// Command line options always take precedence.
func loadConfig() (*config, error) {
	cfg := config{
		ConfigFile:  defaultConfigFile,
		DataDir:     defaultDataDir,
		LogDir:      defaultLogDir,
		DebugLevel:  defaultLogLevel,
		MetricsAddr: defaultMetricsAddr,
	}

	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, err
	}

	if cfg.TestNet3 && cfg.RegressionTest {
		return nil, fmt.Errorf("the testnet and regtest flags cannot be specified together")
	}

	cfg.DataDir = cleanAndExpandPath(cfg.DataDir)
	cfg.LogDir = cleanAndExpandPath(cfg.LogDir)

	if cfg.NoMetrics {
		cfg.MetricsAddr = ""
	}

	return &cfg, nil
}

// networkSubDir returns the data/log subdirectory name for the selected
// network, so mainnet/testnet/regtest data never collide on disk.
func (c *config) networkSubDir() string {
	switch {
	case c.RegressionTest:
		return "regtest"
	case c.TestNet3:
		return "testnet"
	default:
		return "mainnet"
	}
}
