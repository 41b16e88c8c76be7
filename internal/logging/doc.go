// Package logging provides structured logging for crmdesk.
//
// This package wraps Go's log/slog with a JSON handler. Logs go to
// {dir}/crmdesk.log when a directory is configured, otherwise to stderr.
// The terminal UI owns the screen while it runs, so interactive commands
// should always log to a file.
//
// # Usage
//
//	logger, err := logging.NewLogger("/path/to/logs", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	dirLogger := logger.WithComponent("directory")
//	dirLogger.Info("contacts loaded", "count", 42, "source", path)
//
// Output:
//
//	{"time":"...","level":"INFO","msg":"contacts loaded","component":"directory","count":42,"source":"..."}
//
// # Testing
//
// Use [NopLogger] wherever a logger is required but output is irrelevant.
//
// # Thread Safety
//
// A [Logger] and its children share one handler and are safe for
// concurrent use; the directory watcher logs from its own goroutine.
package logging
