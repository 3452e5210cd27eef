// Package sync orchestrates one run: scan both trees, reconcile, gate
// on conflicts, and hand the result to the transfer primitive.
package sync

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/baesync/baesync/pkg/compare"
	"github.com/baesync/baesync/pkg/logging"
	"github.com/baesync/baesync/pkg/models"
	"github.com/baesync/baesync/pkg/output"
	"github.com/baesync/baesync/pkg/transfer"
)

// Operation configures one sync run
type Operation struct {
	// ID correlates log events for this run; assigned when empty
	ID string

	SourcePath string
	DestPath   string

	// Overwrite authorizes the transfer despite conflicts. Without it,
	// any conflict aborts the run before the transfer primitive is
	// invoked.
	Overwrite bool

	// DryRun reconciles and reports without transferring
	DryRun bool

	// SkipCompare bypasses reconciliation and hands both paths straight
	// to the transfer primitive. Set when a side is a remote URI: the
	// primitive does its own remote reconciliation, and a local tree
	// walk over a URI is meaningless.
	SkipCompare bool

	// Transfer options are passed through to the executor unchanged
	Transfer transfer.Options
}

// Engine runs the compare-then-transfer workflow
type Engine struct {
	reconciler *compare.Reconciler
	executor   transfer.Executor
	formatter  output.Formatter
	logger     logging.Logger
}

// NewEngine creates a new sync engine
func NewEngine(
	reconciler *compare.Reconciler,
	executor transfer.Executor,
	formatter output.Formatter,
	logger logging.Logger,
) *Engine {
	return &Engine{
		reconciler: reconciler,
		executor:   executor,
		formatter:  formatter,
		logger:     logger,
	}
}

// Run executes one sync operation. Scan-level failures are returned as
// errors; conflicts and transfer failures are normal, reported outcomes
// recorded on the report with a non-success status.
func (e *Engine) Run(ctx context.Context, op *Operation) (*models.RunReport, error) {
	if op.ID == "" {
		op.ID = uuid.New().String()
	}

	report := &models.RunReport{
		RunID:      op.ID,
		SourcePath: op.SourcePath,
		DestPath:   op.DestPath,
		DryRun:     op.DryRun,
		Overwrite:  op.Overwrite,
		StartTime:  time.Now(),
		Status:     models.StatusSuccess,
	}
	defer func() {
		report.EndTime = time.Now()
		report.Duration = report.EndTime.Sub(report.StartTime)
	}()

	logger := e.logger.WithFields(logging.Fields{"run_id": op.ID})
	logger.Info(ctx, "Starting transfer run", logging.Fields{
		"source":  op.SourcePath,
		"dest":    op.DestPath,
		"dry_run": op.DryRun,
	})

	if op.SkipCompare {
		return e.transferOnly(ctx, op, report, logger)
	}

	result, err := e.reconciler.CompareDirectories(ctx, op.SourcePath, op.DestPath)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			report.Status = models.StatusCancelled
		} else {
			report.Status = models.StatusFailed
		}
		e.formatter.Error(err)
		return report, err
	}
	report.Reconciliation = result

	e.formatter.Reconciliation(result)

	// The one gating decision the core makes: conflicts without an
	// explicit overwrite abort before any transfer is attempted.
	if result.HasConflicts() && !op.Overwrite {
		report.Status = models.StatusConflicts
		logger.Warn(ctx, "Conflicts detected, transfer aborted", logging.Fields{
			"conflicts": len(result.Conflicts),
		})
		e.formatter.Complete(report)
		return report, nil
	}

	if op.DryRun {
		logger.Info(ctx, "Dry run, skipping transfer", logging.Fields{
			"to_copy": len(result.ToCopy),
		})
		e.formatter.Complete(report)
		return report, nil
	}

	report.TransferRan = true
	if err := e.executor.Sync(ctx, op.SourcePath, op.DestPath, op.Transfer); err != nil {
		report.Status = models.StatusFailed
		report.TransferError = err.Error()
		logger.Error(ctx, "Transfer failed", err, nil)
		e.formatter.Complete(report)
		return report, nil
	}

	logger.Info(ctx, "Transfer completed successfully", logging.Fields{
		"to_copy": len(result.ToCopy),
		"to_skip": len(result.ToSkip),
	})
	e.formatter.Complete(report)
	return report, nil
}

// transferOnly runs the transfer without a prior reconciliation
func (e *Engine) transferOnly(ctx context.Context, op *Operation, report *models.RunReport, logger logging.Logger) (*models.RunReport, error) {
	if op.DryRun {
		logger.Info(ctx, "Dry run, skipping transfer", nil)
		e.formatter.Complete(report)
		return report, nil
	}

	report.TransferRan = true
	if err := e.executor.Sync(ctx, op.SourcePath, op.DestPath, op.Transfer); err != nil {
		report.Status = models.StatusFailed
		report.TransferError = err.Error()
		logger.Error(ctx, "Transfer failed", err, nil)
		e.formatter.Complete(report)
		return report, nil
	}

	logger.Info(ctx, "Transfer completed successfully", nil)
	e.formatter.Complete(report)
	return report, nil
}
