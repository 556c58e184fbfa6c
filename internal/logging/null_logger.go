package logging

import "github.com/roomview-sql/roomview/pkg/roomview"

// NullLogger discards every message. It satisfies roomview.Logger for
// services under test and for callers that want no output at all.
type NullLogger struct{}

var _ roomview.Logger = (*NullLogger)(nil)

// NewNullLogger returns a logger that discards everything.
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

// Verbose discards the message.
func (l *NullLogger) Verbose(format string, args ...interface{}) {}

// Info discards the message.
func (l *NullLogger) Info(format string, args ...interface{}) {}

// Error discards the message.
func (l *NullLogger) Error(format string, args ...interface{}) {}
