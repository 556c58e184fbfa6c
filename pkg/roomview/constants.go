package roomview

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess          = 0  // Operation completed successfully
	ExitGeneralError     = 1  // Unknown or unclassified error
	ExitUsageError       = 2  // CLI usage error (missing selectors, invalid flags)
	ExitPanic            = 3  // Internal panic (unexpected crash)
	ExitConfigError      = 10 // settings.yaml missing or invalid
	ExitConnectionError  = 11 // Failed to connect to the warehouse
	ExitApprovalDenied   = 12 // User declined a destructive bulk operation
	ExitExecutionFailed  = 13 // SQL execution failed
	ExitUnknownStatement = 14 // Requested name absent from the source corpus
	ExitGraphError       = 15 // Duplicate names or a dependency cycle
)
