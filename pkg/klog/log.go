// SPDX-License-Identifier: BSD-3-Clause

package klog

import (
	"log/slog"
	"sync"

	"github.com/rs/zerolog"
	slogmulti "github.com/samber/slog-multi"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

var (
	globalMu     sync.Mutex
	globalLogger *slog.Logger
	globalTail   *TailHandler
)

// NewDefaultLogger creates a new structured logger that fans out to a
// human-readable console writer and an in-memory tail buffer, which
// TailLines reads back; every service in the supervision tree is handed a
// logger built this way.
func NewDefaultLogger() *slog.Logger {
	zeroLogger := zerolog.
		New(zerolog.NewConsoleWriter()).
		With().
		Timestamp().
		Logger()

	tail := NewTailHandler(256)
	globalMu.Lock()
	globalTail = tail
	globalMu.Unlock()

	return slog.New(slogmulti.Fanout(
		slogzerolog.Option{Level: slog.LevelDebug, Logger: &zeroLogger}.NewZerologHandler(),
		tail,
	))
}

// GetGlobalLogger returns the process-wide logger, creating it on first use.
// Services obtain their base logger from here and attach a "service" attribute.
func GetGlobalLogger() *slog.Logger {
	globalMu.Lock()
	l := globalLogger
	globalMu.Unlock()

	if l != nil {
		return l
	}

	l = NewDefaultLogger()

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger == nil {
		globalLogger = l
	}
	return globalLogger
}

// SetGlobalLogger overrides the process-wide logger. Intended for tests and
// for boards that need a non-console sink (e.g. a UART debug console).
func SetGlobalLogger(l *slog.Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()

	globalLogger = l
}

// TailLines returns the most recent log lines captured by the global
// logger's tail buffer, oldest first. Returns nil if the global logger has
// not been created yet.
func TailLines() []string {
	globalMu.Lock()
	t := globalTail
	globalMu.Unlock()

	if t == nil {
		return nil
	}
	return t.Lines()
}
