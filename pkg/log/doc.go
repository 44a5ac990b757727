// Package log captures protocol-level events of a polling stream client.
//
// It is separate from operational logging (slog): the capture is a complete,
// machine-readable trace of connection state changes, data deliveries,
// flow-control steps (flushes, acknowledgments, stalls) and errors, useful
// for reconstructing why a stream stalled or was torn down.
//
// # Basic Usage
//
//	// Development: events go to the console via slog
//	cfg.ProtocolLogger = log.NewSlogAdapter(slog.Default())
//
//	// Production: CBOR capture file
//	cfg.ProtocolLogger, _ = log.NewFileLogger("/var/log/pollstream/client.plog")
//
//	// Both
//	cfg.ProtocolLogger = log.NewMultiLogger(console, file)
//
// # File Format
//
// Capture files are a plain sequence of CBOR-encoded Event values with
// integer keys (.plog). The pollstream-log tool views and summarizes them.
package log
