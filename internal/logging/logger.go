// Package logging is a thin structured logger over zerolog. Output goes to a
// rotated file because the terminal belongs to the TUI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu     sync.RWMutex
	logger = zerolog.New(io.Discard)
)

// Options configures the rotated log file
type Options struct {
	File       string
	Level      string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Init points the package logger at a lumberjack-rotated file. An empty File
// keeps logging disabled.
func Init(opts Options) error {
	if opts.File == "" {
		SetLoggerForTest(zerolog.New(io.Discard))
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	out := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
	}

	l := zerolog.New(out).With().Timestamp().Logger().Level(parseLevel(opts.Level))

	mu.Lock()
	logger = l
	mu.Unlock()
	return nil
}

// SetLoggerForTest swaps the package logger
func SetLoggerForTest(l zerolog.Logger) {
	mu.Lock()
	logger = l
	mu.Unlock()
}

// SetLogLevel changes the level; unknown names fall back to info
func SetLogLevel(level string) {
	mu.Lock()
	logger = logger.Level(parseLevel(level))
	mu.Unlock()
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

func Debug(msg string, kv ...any) { write(zerolog.DebugLevel, msg, kv) }
func Info(msg string, kv ...any)  { write(zerolog.InfoLevel, msg, kv) }
func Warn(msg string, kv ...any)  { write(zerolog.WarnLevel, msg, kv) }
func Error(msg string, kv ...any) { write(zerolog.ErrorLevel, msg, kv) }

func write(level zerolog.Level, msg string, kv []any) {
	mu.RLock()
	l := logger
	mu.RUnlock()

	ev := l.WithLevel(level)
	if ev == nil {
		return
	}
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		if err, isErr := kv[i+1].(error); isErr {
			ev = ev.AnErr(key, err)
			continue
		}
		ev = ev.Interface(key, kv[i+1])
	}
	// dangling key without a value
	if len(kv)%2 == 1 {
		ev = ev.Interface("extra", kv[len(kv)-1])
	}
	ev.Msg(msg)
}
