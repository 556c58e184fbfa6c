package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/roomview-sql/roomview/pkg/roomview"
)

// ForcedApprover implements the Approver interface for non-interactive
// approval, used when the --force flag is provided. It logs what would
// have been asked and approves immediately.
type ForcedApprover struct {
	out io.Writer
}

// NewForcedApprover creates a new ForcedApprover writing to stderr.
func NewForcedApprover() *ForcedApprover {
	return &ForcedApprover{out: os.Stderr}
}

// RequestApproval approves without prompting.
func (a *ForcedApprover) RequestApproval(_ context.Context, description string) (bool, error) {
	fmt.Fprintf(a.out, "--force given, proceeding to %s without confirmation\n", description)
	return true, nil
}

// Verify ForcedApprover implements the Approver interface at compile time
var _ roomview.Approver = (*ForcedApprover)(nil)
