package logging

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

// Config selects where log records go and how much is written.
type Config struct {
	Writer io.Writer
	Debug  bool
	JSON   bool // JSON records instead of key=value text
}

var (
	mu     sync.RWMutex
	global = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// Setup installs a process-wide logger built from cfg and returns it.
// A nil Writer discards everything.
func Setup(cfg Config) *slog.Logger {
	w := cfg.Writer
	if w == nil {
		w = io.Discard
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				t := a.Value.Time().UTC()
				a.Value = slog.StringValue(t.Format(time.RFC3339))
			}
			return a
		},
	}

	var h slog.Handler
	if cfg.JSON {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	l := slog.New(h)

	mu.Lock()
	global = l
	mu.Unlock()

	return l
}

// L returns the process-wide logger.
func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// EngineLogger adapts a slog.Logger to the printf-style logger the
// projection engine and solvers write to.
type EngineLogger struct {
	Logger *slog.Logger
}

// NewEngineLogger wraps l; nil uses the process-wide logger.
func NewEngineLogger(l *slog.Logger) *EngineLogger {
	return &EngineLogger{Logger: l}
}

func (e *EngineLogger) logger() *slog.Logger {
	if e == nil || e.Logger == nil {
		return L()
	}
	return e.Logger
}

func (e *EngineLogger) Debugf(format string, args ...interface{}) {
	e.logger().Debug(fmt.Sprintf(format, args...))
}

func (e *EngineLogger) Infof(format string, args ...interface{}) {
	e.logger().Info(fmt.Sprintf(format, args...))
}

func (e *EngineLogger) Warnf(format string, args ...interface{}) {
	e.logger().Warn(fmt.Sprintf(format, args...))
}

func (e *EngineLogger) Errorf(format string, args ...interface{}) {
	e.logger().Error(fmt.Sprintf(format, args...))
}
