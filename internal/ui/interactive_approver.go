// Package ui provides console confirmation for destructive bulk operations.
package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/roomview-sql/roomview/pkg/roomview"
)

// InteractiveApprover implements the Approver interface for console-based
// interactive confirmation. It prompts the user with a y/N question before
// destructive bulk operations.
type InteractiveApprover struct {
	in  io.Reader
	out io.Writer
}

// NewInteractiveApprover creates an InteractiveApprover reading from stdin
// and prompting on stderr.
func NewInteractiveApprover() *InteractiveApprover {
	return &InteractiveApprover{in: os.Stdin, out: os.Stderr}
}

// RequestApproval prompts the user and returns true only for an explicit
// yes answer.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, description string) (bool, error) {
	fmt.Fprintf(a.out, "About to %s. Continue? [y/N]: ", description)

	// Read user input with context cancellation support
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.in)
		input, err := reader.ReadString('\n')
		if err != nil {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		switch strings.ToLower(input) {
		case "y", "yes":
			return true, nil
		default:
			fmt.Fprintln(a.out, "Operation cancelled.")
			return false, nil
		}
	}
}

// Verify InteractiveApprover implements the Approver interface at compile time
var _ roomview.Approver = (*InteractiveApprover)(nil)
