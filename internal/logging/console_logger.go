package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// ConsoleLogger writes log messages to stderr.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	verbose bool
	out     io.Writer
	mu      sync.Mutex
}

// NewConsoleLogger creates a new ConsoleLogger writing to stderr.
// If verbose is true, Verbose() calls will produce output.
// If verbose is false, Verbose() calls are no-ops.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return NewConsoleLoggerWithWriter(verbose, os.Stderr)
}

// NewConsoleLoggerWithWriter creates a ConsoleLogger writing to out.
func NewConsoleLoggerWithWriter(verbose bool, out io.Writer) *ConsoleLogger {
	if out == nil {
		panic("out cannot be nil")
	}
	return &ConsoleLogger{
		verbose: verbose,
		out:     out,
	}
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write("[VERBOSE] "+format, args...)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.write(format, args...)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write("[ERROR] "+format, args...)
}

func (l *ConsoleLogger) write(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(args) > 0 {
		fmt.Fprintf(l.out, format+"\n", args...)
	} else {
		fmt.Fprint(l.out, format+"\n")
	}
}
