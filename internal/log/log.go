// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

const (
	envLevel    = "GAMESQ_LOG"
	tracePrefix = "TRACE: "
	stampLayout = "2006-01-02 15:04:05"
)

// levels maps GAMESQ_LOG values to apex levels. Anything else means errors
// only. Trace is debug plus the Tracef lines.
var levels = map[string]log.Level{
	"trace": log.DebugLevel,
	"debug": log.DebugLevel,
	"info":  log.InfoLevel,
	"warn":  log.WarnLevel,
	"fatal": log.FatalLevel,
}

var letters = map[log.Level]string{
	log.DebugLevel: "D",
	log.InfoLevel:  "I",
	log.WarnLevel:  "W",
	log.ErrorLevel: "E",
	log.FatalLevel: "F",
}

var traceEnabled bool

// InitLogger installs CustomHandler on stderr and sets the level from
// GAMESQ_LOG, keeping stdout for results.
func InitLogger() {
	name := strings.ToLower(os.Getenv(envLevel))
	traceEnabled = name == "trace"

	level, ok := levels[name]
	if !ok {
		level = log.ErrorLevel
	}
	log.SetHandler(&CustomHandler{Writer: os.Stderr})
	log.SetLevel(level)
}

// CustomHandler writes one "<timestamp> <level letter> <message>" line per
// entry.
type CustomHandler struct {
	Writer io.Writer
}

// HandleLog implements log.Handler.
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	letter, msg := "?", e.Message
	if rest, ok := strings.CutPrefix(msg, tracePrefix); ok {
		letter, msg = "T", rest
	} else if l, ok := letters[e.Level]; ok {
		letter = l
	}

	w := h.Writer
	if w == nil {
		w = os.Stderr
	}
	_, err := fmt.Fprintf(w, "%s %s %s\n", ts.Format(stampLayout), letter, msg)
	return err
}

// Tracef logs below debug, and only when GAMESQ_LOG=trace.
func Tracef(format string, args ...interface{}) {
	if traceEnabled {
		log.Debug(tracePrefix + fmt.Sprintf(format, args...))
	}
}

func Debugf(format string, args ...interface{}) { log.Debugf(format, args...) }

func Infof(format string, args ...interface{}) { log.Infof(format, args...) }

func Warnf(format string, args ...interface{}) { log.Warnf(format, args...) }

func Errorf(format string, args ...interface{}) { log.Errorf(format, args...) }

func Debug(msg string) { log.Debug(msg) }

// WithError starts an entry carrying err.
func WithError(err error) *log.Entry {
	return log.WithError(err)
}
