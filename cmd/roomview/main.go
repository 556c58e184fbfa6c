package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/roomview-sql/roomview/internal/cli"
	"github.com/roomview-sql/roomview/pkg/roomview"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(roomview.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(roomview.ExitCodeForError(err))
	}
}
