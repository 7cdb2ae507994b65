// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log gives every package a named logger bound to the process root handler.
package log

import (
	"io"
	"log/slog"
	"os"

	ethlog "github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
)

// Legacy verbosity levels accepted by Init.
const (
	LvlCrit = iota
	LvlError
	LvlWarn
	LvlInfo
	LvlDebug
	LvlTrace
)

// Logger writes leveled, key/value structured records.
type Logger interface {
	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	Crit(msg string, ctx ...any)
}

// WithContext returns a logger carrying ctx. The root handler is looked up on
// every record, so package level loggers follow a later Init.
func WithContext(ctx ...any) Logger {
	return &lazyLogger{ctx}
}

type lazyLogger struct {
	ctx []any
}

func (l *lazyLogger) root() ethlog.Logger { return ethlog.Root().With(l.ctx...) }

func (l *lazyLogger) Trace(msg string, ctx ...any) { l.root().Trace(msg, ctx...) }
func (l *lazyLogger) Debug(msg string, ctx ...any) { l.root().Debug(msg, ctx...) }
func (l *lazyLogger) Info(msg string, ctx ...any)  { l.root().Info(msg, ctx...) }
func (l *lazyLogger) Warn(msg string, ctx ...any)  { l.root().Warn(msg, ctx...) }
func (l *lazyLogger) Error(msg string, ctx ...any) { l.root().Error(msg, ctx...) }
func (l *lazyLogger) Crit(msg string, ctx ...any)  { l.root().Crit(msg, ctx...) }

// Init installs the root handler. verbosity follows the legacy 0 (crit) to 5
// (trace) scale.
func Init(w io.Writer, verbosity int, json bool) {
	ethlog.SetDefault(ethlog.NewLogger(NewHandler(w, verbosity, json)))
}

// NewHandler builds a terminal handler, colored when w is a tty, or a JSON handler.
func NewHandler(w io.Writer, verbosity int, json bool) slog.Handler {
	lvl := ethlog.FromLegacyLevel(verbosity)
	if json {
		return ethlog.JSONHandlerWithLevel(w, lvl)
	}
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return ethlog.NewTerminalHandlerWithLevel(w, lvl, useColor)
}
