package roomview

import "context"

// Approver decides whether a destructive bulk operation may proceed.
// description names the operation being confirmed, e.g.
// "drop all 12 managed statements".
type Approver interface {
	RequestApproval(ctx context.Context, description string) (bool, error)
}
