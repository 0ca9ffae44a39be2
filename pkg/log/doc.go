// Package log provides a structured, context-aware logging system with
// distributed tracing support.
//
// The package is designed around explicit dependency injection and context
// propagation, avoiding global state and encouraging clean, testable code.
//
// # Core Types
//
// The package centers around the Logger interface, which provides structured
// logging methods:
//
//	type Logger interface {
//	    Debug(msg string, keysAndValues ...any)
//	    Info(msg string, keysAndValues ...any)
//	    Warn(msg string, keysAndValues ...any)
//	    Error(msg string, keysAndValues ...any)
//	    Fatal(msg string, keysAndValues ...any)
//	    WithKV(key string, value any) Logger
//	    GetAllKV() []any
//	    WithName(name string) Logger
//	    Name() string
//	    AddCallerSkip(skip int) Logger
//	}
//
// Four implementations are provided:
//
//   - ZapLogger: a production-ready logger based on Uber's zap library
//   - IPFSLogger: a logger registered as an ipfs/go-log subsystem, for
//     embedders managing levels through the GOLOG environment switches
//   - NoopLogger: a logger that discards all messages (useful for testing)
//   - SpanLogger: a decorator that records logs to both a wrapped logger
//     and a trace span
//
// # Basic Usage
//
// Create a logger and use it directly:
//
//	conf := log.Config{
//	    Format: "logfmt",
//	    Level:  log.LevelInfo,
//	    Output: "stderr",
//	}
//	logger := log.NewZapLogger(conf)
//	logger.Info("verification started", "engine", "native")
//
// # Context Integration
//
// The package provides context-aware logging with automatic span integration:
//
//	// Store logger in context
//	ctx = log.SetContextLogger(ctx, logger)
//
//	// Retrieve logger from context
//	logger := log.FromContext(ctx)
//
// When SetContextLogger is called with a context containing a valid
// OpenTelemetry span, the logger is automatically wrapped with a SpanLogger
// that records events to both the logger output and the trace span. Error
// and Fatal level logs are recorded as span errors.
//
// # Logger Enrichment
//
// Create derived loggers with additional context:
//
//	// Add a name hierarchy
//	batchLogger := logger.WithName("batch")
//
//	// Add persistent key-value pairs
//	jobLogger := batchLogger.WithKV("job", jobID)
//
// # Using AddCallerSkip for Helper Functions
//
// When you wrap logging calls in helper functions, use AddCallerSkip(1) so
// the log output reports the correct source line from your application code,
// not the helper itself.
//
// # Environment Configuration
//
// The Config struct supports environment variables:
//
//   - LOG_FORMAT: output format (console, logfmt, json)
//   - LOG_LEVEL: minimum log level (debug, info, warn, error, fatal)
//   - LOG_OUTPUT: output destination (stderr, stdout, or file path)
package log
