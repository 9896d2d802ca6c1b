// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package log defines the logging interface used across vantad's packages.
// Each package that wants logging keeps a package-level Logger variable that
// defaults to Disabled and is wired up by the composition root via UseLogger,
// mirroring the pattern the teacher repo uses in mining/log.go and
// netsync/log.go.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level is a logging priority. Lower values are more verbose.
type Level int8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
	LevelOff
)

// String returns the short human string for the level.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRC"
	case LevelDebug:
		return "DBG"
	case LevelInfo:
		return "INF"
	case LevelWarn:
		return "WRN"
	case LevelError:
		return "ERR"
	case LevelCritical:
		return "CRT"
	default:
		return "OFF"
	}
}

// LevelFromString returns a level based on the input string s. If the input
// can't be interpreted as a valid log level, the info level and false is
// returned.
func LevelFromString(s string) (l Level, ok bool) {
	switch strings.ToLower(s) {
	case "trace", "trc":
		return LevelTrace, true
	case "debug", "dbg":
		return LevelDebug, true
	case "info", "inf":
		return LevelInfo, true
	case "warn", "wrn":
		return LevelWarn, true
	case "error", "err":
		return LevelError, true
	case "critical", "crt":
		return LevelCritical, true
	case "off":
		return LevelOff, true
	default:
		return LevelInfo, false
	}
}

// Logger is the interface packages in this module log through. It is
// satisfied by Disabled (the zero-cost default) and by the *slog backend
// returned by New.
type Logger interface {
	Tracef(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Criticalf(format string, args ...interface{})

	Level() Level
	SetLevel(level Level)
}

// disabledLog discards everything. It is the default Logger for every
// package until the composition root calls UseLogger with a real one.
type disabledLog struct{}

func (disabledLog) Tracef(string, ...interface{})    {}
func (disabledLog) Debugf(string, ...interface{})    {}
func (disabledLog) Infof(string, ...interface{})     {}
func (disabledLog) Warnf(string, ...interface{})     {}
func (disabledLog) Errorf(string, ...interface{})    {}
func (disabledLog) Criticalf(string, ...interface{}) {}
func (disabledLog) Level() Level                     { return LevelOff }
func (disabledLog) SetLevel(Level)                   {}

// Disabled is a shared Logger that throws away all log messages.
var Disabled Logger = disabledLog{}

// slogLogger adapts log/slog to the Logger interface and adds a Level knob,
// since slog has no notion of "disabled below this level" built into the
// handler chosen at construction time.
type slogLogger struct {
	subsystem string
	logger    *slog.Logger
	level     *Level
}

// New returns a Logger that writes tagged, leveled lines to w (for example a
// *logrotate.Rotator) for the given subsystem tag, e.g. "CHAN", "STOR".
func New(w io.Writer, subsystem string, level Level) Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	lvl := level
	return &slogLogger{
		subsystem: subsystem,
		logger:    slog.New(h),
		level:     &lvl,
	}
}

func (s *slogLogger) log(lvl Level, format string, args ...interface{}) {
	if lvl < *s.level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	s.logger.Info(msg, "subsystem", s.subsystem, "level", lvl.String())
}

func (s *slogLogger) Tracef(format string, args ...interface{})    { s.log(LevelTrace, format, args...) }
func (s *slogLogger) Debugf(format string, args ...interface{})    { s.log(LevelDebug, format, args...) }
func (s *slogLogger) Infof(format string, args ...interface{})     { s.log(LevelInfo, format, args...) }
func (s *slogLogger) Warnf(format string, args ...interface{})     { s.log(LevelWarn, format, args...) }
func (s *slogLogger) Errorf(format string, args ...interface{})    { s.log(LevelError, format, args...) }
func (s *slogLogger) Criticalf(format string, args ...interface{}) { s.log(LevelCritical, format, args...) }
func (s *slogLogger) Level() Level                                 { return *s.level }
func (s *slogLogger) SetLevel(level Level)                         { *s.level = level }

// NewStdout is a convenience constructor for development use.
func NewStdout(subsystem string, level Level) Logger {
	return New(os.Stdout, subsystem, level)
}
