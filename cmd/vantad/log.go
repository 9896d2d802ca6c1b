// Copyright (c) 2013-2015 The btcsuite developers
// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jrick/logrotate/rotator"

	"github.com/vantachain/vantad/blockchain"
	flog "github.com/vantachain/vantad/log"
	"github.com/vantachain/vantad/mining"
)

// logRotator is the writer every subsystem logger fans into; it periodically
// rolls vantad.log the way the teacher's daemon rolls its own log file.
var logRotator *rotator.Rotator

// subsystemLoggers maps each logging subsystem tag to the package-level
// UseLogger hook it feeds.
var subsystemLoggers = map[string]func(flog.Logger){
	"CHAN": blockchain.UseLogger,
	"MINR": mining.UseLogger,
}

// initLogRotator opens (creating if necessary) the rotating log file at
// logFile. Subsystem loggers write to it alone; nothing is copied to stdout.
func initLogRotator(logFile string) error {
	if err := os.MkdirAll(filepath.Dir(logFile), 0o700); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		return fmt.Errorf("create log rotator: %w", err)
	}
	logRotator = r
	return nil
}

// setLogLevels parses debugLevel (either a single level applied everywhere,
// or a comma-separated subsystem=level list) and wires each subsystem's
// package-level logger up to logRotator at that level.
func setLogLevels(debugLevel string) error {
	if logRotator == nil {
		return nil
	}
	var w io.Writer = logRotator
	if level, ok := flog.LevelFromString(debugLevel); ok {
		for tag, use := range subsystemLoggers {
			use(flog.New(w, tag, level))
		}
		return nil
	}

	levels, err := parseSubsystemLevels(debugLevel)
	if err != nil {
		return err
	}
	for tag, use := range subsystemLoggers {
		level, ok := levels[tag]
		if !ok {
			level = flog.LevelInfo
		}
		use(flog.New(w, tag, level))
	}
	return nil
}

// parseSubsystemLevels parses a "subsystem=level,subsystem2=level2" string.
func parseSubsystemLevels(s string) (map[string]flog.Level, error) {
	out := make(map[string]flog.Level)
	for _, pair := range strings.Split(s, ",") {
		if pair == "" {
			continue
		}
		tag, levelStr, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid debuglevel pair %q", pair)
		}
		level, ok := flog.LevelFromString(levelStr)
		if !ok {
			return nil, fmt.Errorf("invalid log level %q for subsystem %q", levelStr, tag)
		}
		out[tag] = level
	}
	return out, nil
}
