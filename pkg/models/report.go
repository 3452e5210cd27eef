package models

import (
	"time"
)

// RunStatus represents the overall result of a sync run
type RunStatus string

const (
	// StatusSuccess indicates the run completed successfully
	StatusSuccess RunStatus = "success"
	// StatusConflicts indicates conflicts blocked the transfer
	StatusConflicts RunStatus = "conflicts"
	// StatusFailed indicates the scan or transfer failed
	StatusFailed RunStatus = "failed"
	// StatusCancelled indicates the run was cancelled
	StatusCancelled RunStatus = "cancelled"
)

// ExitCode returns the process exit code for the run status
func (s RunStatus) ExitCode() int {
	switch s {
	case StatusSuccess:
		return 0
	case StatusConflicts:
		return 1
	case StatusFailed:
		return 2
	case StatusCancelled:
		return 3
	default:
		return 2
	}
}

// RunReport summarizes one sync run: what the comparison decided and
// what the transfer did with it.
type RunReport struct {
	// RunID correlates log events belonging to this run
	RunID string

	SourcePath string
	DestPath   string
	DryRun     bool
	Overwrite  bool

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Reconciliation is the classification the transfer was gated on
	Reconciliation *ReconciliationResult

	// TransferRan reports whether the external transfer was invoked
	TransferRan bool

	// TransferError holds the transfer primitive's failure message,
	// reported verbatim
	TransferError string

	Status RunStatus
}

// ValidationError represents a configuration or flag validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
