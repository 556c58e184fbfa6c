// Package logging provides concrete implementations of the roomview.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes formatted messages to stderr with thread-safe output
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
