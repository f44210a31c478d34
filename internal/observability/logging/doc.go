// Package logging provides structured logging utilities with context propagation.
//
// Key features:
//   - JSON and text output formats (LOG_FORMAT)
//   - Configurable log levels (LOG_LEVEL)
//   - Request ID propagation
//
// Example usage:
//
//	logger := logging.New(os.Stdout, "info", logging.FormatJSON)
//	slog.SetDefault(logger)
//
//	func handle(ctx context.Context) {
//	    logging.FromContext(ctx).Info("processing request")
//	}
package logging
