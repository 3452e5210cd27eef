package output

import (
	"fmt"
	"io"

	"github.com/baesync/baesync/pkg/models"
)

// Formatter renders scan progress and run results.
// Implementations include human-readable, JSON, and progress-bar output.
type Formatter interface {
	// Start initializes the formatter for a new run
	Start(writer io.Writer) error

	// FileScanned reports one scanned file. Called from scanner worker
	// goroutines; implementations must be safe for concurrent use.
	FileScanned(info *models.FileInfo) error

	// Reconciliation reports the classification of the source tree
	Reconciliation(result *models.ReconciliationResult) error

	// Complete finalizes output and displays the run summary
	Complete(report *models.RunReport) error

	// Error reports a fatal error
	Error(err error) error

	// Name returns the formatter name
	Name() string
}

// formatBytes renders a byte count in human-readable units
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
