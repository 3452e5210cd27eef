package output

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/baesync/baesync/pkg/models"
)

// HumanFormatter formats output in human-readable format
type HumanFormatter struct {
	writer       io.Writer
	quiet        bool
	scannedFiles atomic.Int64
	scannedBytes atomic.Int64
}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter(quiet bool) *HumanFormatter {
	return &HumanFormatter{quiet: quiet}
}

// Start initializes the formatter
func (f *HumanFormatter) Start(writer io.Writer) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	return nil
}

// FileScanned counts scanned files; no per-file output in human mode
func (f *HumanFormatter) FileScanned(info *models.FileInfo) error {
	f.scannedFiles.Add(1)
	f.scannedBytes.Add(info.Size)
	return nil
}

// Reconciliation prints the classification summary and any conflicts
func (f *HumanFormatter) Reconciliation(result *models.ReconciliationResult) error {
	if f.quiet {
		return nil
	}

	fmt.Fprintf(f.writer, "Scanned %d files (%s)\n",
		f.scannedFiles.Load(), formatBytes(f.scannedBytes.Load()))
	fmt.Fprintf(f.writer, "\n")
	fmt.Fprintf(f.writer, "Comparison:\n")
	fmt.Fprintf(f.writer, "  To copy:   %d\n", len(result.ToCopy))
	fmt.Fprintf(f.writer, "  To skip:   %d\n", len(result.ToSkip))
	fmt.Fprintf(f.writer, "  Conflicts: %d\n", len(result.Conflicts))

	if result.HasConflicts() {
		fmt.Fprintf(f.writer, "\nConflicting files:\n")
		for _, path := range result.Conflicts.Sorted() {
			detail := result.Details[path]
			if detail == nil {
				fmt.Fprintf(f.writer, "  %s\n", path)
				continue
			}
			fmt.Fprintf(f.writer, "  %s (", path)
			for i, d := range detail.Discriminators {
				if i > 0 {
					fmt.Fprintf(f.writer, ", ")
				}
				fmt.Fprintf(f.writer, "%s", d)
			}
			fmt.Fprintf(f.writer, ")\n")
		}
	}

	return nil
}

// Complete finalizes output and displays the run summary
func (f *HumanFormatter) Complete(report *models.RunReport) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	fmt.Fprintf(f.writer, "\n")
	switch report.Status {
	case models.StatusSuccess:
		if report.DryRun {
			fmt.Fprintf(f.writer, "Dry run completed in %s, no transfer performed\n",
				report.Duration.Round(time.Millisecond))
		} else if report.TransferRan {
			fmt.Fprintf(f.writer, "Transfer completed successfully in %s\n",
				report.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(f.writer, "Nothing to transfer, completed in %s\n",
				report.Duration.Round(time.Millisecond))
		}
	case models.StatusConflicts:
		fmt.Fprintf(f.writer, "Conflicts detected. Use --overwrite to proceed.\n")
	case models.StatusFailed:
		fmt.Fprintf(f.writer, "Transfer failed: %s\n", report.TransferError)
	case models.StatusCancelled:
		fmt.Fprintf(f.writer, "Run cancelled\n")
	}

	return nil
}

// Error reports a fatal error
func (f *HumanFormatter) Error(err error) error {
	w := f.writer
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}
