// Package logging provides structured logging for vncpick.
//
// This package wraps zap with convenience functions for the logging
// patterns used throughout the tool. Because vncpick drives an external
// full-screen renderer, stray writes to the terminal would corrupt the
// interactive surface; logging is therefore silent by default and only
// enabled when VNCPICK_LOG_LEVEL is set, in which case output goes to
// stderr.
//
// # Log Levels
//
//   - Debug: renderer round-trips, scanner command lines, parsed events
//   - Info: discovery results, session start/end, history updates
//   - Warn: degraded discovery, missing optional collaborators
//   - Error: protocol violations, startup failures
//
// # Structured Logging
//
// All log functions use structured fields:
//
//	logging.Info("viewer session starting",
//	    zap.String("host", "10.11.99.1"),
//	    zap.String("port", "5900"),
//	)
//
// # Configuration
//
// Initialize logging at startup and flush on exit:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
