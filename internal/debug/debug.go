// Package debug is the --debug log: zap JSON lines written to
// ~/.topicflow/debug.log. The file is truncated on every launch and nothing
// is written unless Init(true) succeeded.
package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	LogFileName = "debug.log"
	LogDirName  = ".topicflow"
)

// sink is an open log file and the logger writing into it. closed is guarded
// by mu; loggers derived from a closed sink drop their entries.
type sink struct {
	file   *os.File
	log    *zap.SugaredLogger
	closed bool
}

var (
	mu     sync.RWMutex
	active *sink
	nop    = zap.NewNop().Sugar()

	// swapped out by tests
	getLogPath = defaultGetLogPath
)

// sinkCore writes through to the file core while its sink is open.
type sinkCore struct {
	zapcore.Core
	s *sink
}

func (c sinkCore) With(fields []zapcore.Field) zapcore.Core {
	return sinkCore{Core: c.Core.With(fields), s: c.s}
}

func (c sinkCore) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(e.Level) {
		return ce.AddCore(e, c)
	}
	return ce
}

func (c sinkCore) Write(e zapcore.Entry, fields []zapcore.Field) error {
	mu.RLock()
	defer mu.RUnlock()
	if c.s.closed {
		return nil
	}
	return c.Core.Write(e, fields)
}

func (c sinkCore) Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	if c.s.closed {
		return nil
	}
	return c.Core.Sync()
}

func openSink(path string) (*sink, error) {
	//nolint:gosec // G301: lives next to the user's config
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	//nolint:gosec // G304: path derives from the home directory
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "ts"
	enc.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	s := &sink{file: f}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.Lock(f), zap.NewAtomicLevelAt(zapcore.DebugLevel))
	s.log = zap.New(sinkCore{Core: core, s: s}).Sugar()
	return s, nil
}

// close expects mu to be held for writing.
func (s *sink) close() {
	if s == nil || s.closed {
		return
	}
	s.closed = true
	_ = s.file.Sync()
	_ = s.file.Close()
}

// Init replaces any open log. With enable false every call in this package
// is a no-op until the next Init.
func Init(enable bool) error {
	mu.Lock()
	active.close()
	active = nil
	if !enable {
		mu.Unlock()
		return nil
	}

	path, err := getLogPath()
	if err != nil {
		mu.Unlock()
		return fmt.Errorf("determine log path: %w", err)
	}
	s, err := openSink(path)
	if err != nil {
		mu.Unlock()
		return err
	}
	active = s
	mu.Unlock()

	s.log.Infof("=== topicflow debug log started at %s ===", time.Now().Format(time.RFC3339))
	return nil
}

// Close flushes the log and disables logging, including loggers handed out
// by With. Calling it again is harmless.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	active.close()
	active = nil
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	if active == nil {
		return nop
	}
	return active.log
}

func Log(v ...any) {
	current().Info(fmt.Sprint(v...))
}

func Logf(format string, v ...any) {
	current().Infof(format, v...)
}

// With returns a child logger carrying keysAndValues, or a no-op logger when
// debugging is off. The child goes quiet once Close runs.
func With(keysAndValues ...any) *zap.SugaredLogger {
	return current().With(keysAndValues...)
}

func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return active != nil
}

func defaultGetLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine user home: %w", err)
	}
	return filepath.Join(home, LogDirName, LogFileName), nil
}

// GetLogPath is where Init(true) writes.
func GetLogPath() (string, error) {
	return getLogPath()
}
