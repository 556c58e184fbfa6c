package roomview

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := syncer.Sync(ctx, graph, names)
//	if errors.Is(err, roomview.ErrUnknownStatement) {
//	    // Handle a selector that names nothing in the corpus
//	}
var (
	// ErrInvalidStatement indicates a statement record failed construction
	// validation (missing name, bad kind, arg list mismatch).
	ErrInvalidStatement = errors.New("invalid statement")

	// ErrUnknownStatement indicates a requested name does not exist in the
	// dependency graph built from the source files.
	ErrUnknownStatement = errors.New("unknown statement")

	// ErrMissingSelector indicates an operation requiring a target set was
	// invoked with neither names nor files.
	ErrMissingSelector = errors.New("no statement names or files given")

	// ErrDuplicateStatement indicates two source chunks declared the same
	// object name.
	ErrDuplicateStatement = errors.New("duplicate statement name")

	// ErrCycleDetected indicates dependency-ordered traversal could not
	// reach every intended statement because the references form a cycle.
	ErrCycleDetected = errors.New("dependency cycle detected")

	// ErrExecutionFailed indicates the warehouse rejected a SQL statement.
	ErrExecutionFailed = errors.New("execution failed")

	// ErrConnectionFailed indicates the warehouse connection could not be
	// established.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrInvalidConfig indicates the settings file is missing, malformed,
	// or names an unknown connection or directory entry.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrApprovalDenied indicates the user declined a destructive bulk
	// operation at the confirmation prompt.
	ErrApprovalDenied = errors.New("approval denied")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrMissingSelector), errors.Is(err, ErrInvalidStatement):
		return ExitUsageError
	case errors.Is(err, ErrUnknownStatement):
		return ExitUnknownStatement
	case errors.Is(err, ErrDuplicateStatement), errors.Is(err, ErrCycleDetected):
		return ExitGraphError
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	case errors.Is(err, ErrExecutionFailed):
		return ExitExecutionFailed
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	}

	// Connection failures surface from several layers; classify by message
	// when no sentinel is wrapped.
	errStr := err.Error()
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
