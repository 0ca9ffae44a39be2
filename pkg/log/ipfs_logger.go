package log

import (
	ipfslog "github.com/ipfs/go-log/v2"
	"go.uber.org/zap"
)

var _ Logger = &IPFSLogger{}

// IPFSLogger is a logger implementation backed by an ipfs/go-log subsystem,
// for embedders that already manage log levels and outputs through go-log's
// GOLOG environment switches.
type IPFSLogger struct {
	lg            *zap.SugaredLogger
	keysAndValues []any
}

// NewIPFSLogger registers name as an ipfs/go-log subsystem and returns a
// logger writing through it. Levels are controlled per subsystem via go-log,
// or globally via SetupIPFSLogging.
func NewIPFSLogger(name string) Logger {
	lg := ipfslog.Logger(name).SugaredLogger.Desugar().WithOptions(zap.AddCallerSkip(1)).Sugar()
	return &IPFSLogger{
		lg:            lg,
		keysAndValues: []any{},
	}
}

// SetupIPFSLogging points the shared go-log backend at stderr with the given
// minimum level. Levels go-log does not know fall back to info.
func SetupIPFSLogging(level Level) {
	ipfsLevel, err := ipfslog.Parse(string(level))
	if err != nil {
		ipfsLevel = ipfslog.LevelInfo
	}
	ipfslog.SetupLogging(ipfslog.Config{
		Level:  ipfsLevel,
		Stderr: true,
	})
}

// Debug logs a message at debug level.
func (l *IPFSLogger) Debug(msg string, keysAndValues ...any) {
	l.lg.Debugw(msg, keysAndValues...)
}

// Info logs a message at info level.
func (l *IPFSLogger) Info(msg string, keysAndValues ...any) {
	l.lg.Infow(msg, keysAndValues...)
}

// Warn logs a message at warn level.
func (l *IPFSLogger) Warn(msg string, keysAndValues ...any) {
	l.lg.Warnw(msg, keysAndValues...)
}

// Error logs a message at error level.
func (l *IPFSLogger) Error(msg string, keysAndValues ...any) {
	l.lg.Errorw(msg, keysAndValues...)
}

// Fatal logs a message at fatal level and terminates the process.
func (l *IPFSLogger) Fatal(msg string, keysAndValues ...any) {
	l.lg.Fatalw(msg, keysAndValues...)
}

// WithKV returns a new IPFSLogger with the key-value pair added to all
// future log messages.
func (l *IPFSLogger) WithKV(key string, value any) Logger {
	kv := make([]any, 0, len(l.keysAndValues)+2)
	kv = append(kv, l.keysAndValues...)
	kv = append(kv, key, value)
	return &IPFSLogger{
		lg:            l.lg.With(key, value),
		keysAndValues: kv,
	}
}

// GetAllKV returns all key-value pairs that have been added to this logger
// instance.
func (l *IPFSLogger) GetAllKV() []any {
	return l.keysAndValues
}

// WithName registers a fresh subsystem under the dotted child name, since
// go-log manages levels by subsystem. Accumulated pairs carry over.
func (l *IPFSLogger) WithName(name string) Logger {
	fullName := name
	if current := l.Name(); current != "" {
		fullName = current + "." + name
	}
	lg := ipfslog.Logger(fullName).SugaredLogger.Desugar().WithOptions(zap.AddCallerSkip(1)).Sugar()
	return &IPFSLogger{
		lg:            lg.With(l.keysAndValues...),
		keysAndValues: l.keysAndValues,
	}
}

// Name returns the current name of the logger.
func (l *IPFSLogger) Name() string {
	return l.lg.Desugar().Name()
}

// AddCallerSkip returns a new IPFSLogger that skips additional stack frames
// when determining the caller.
func (l *IPFSLogger) AddCallerSkip(skip int) Logger {
	return &IPFSLogger{
		lg:            l.lg.WithOptions(zap.AddCallerSkip(skip)),
		keysAndValues: l.keysAndValues,
	}
}
