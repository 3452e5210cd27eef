package output

import (
	"encoding/json"
	"io"
	"os"
	"sync"

	"github.com/baesync/baesync/pkg/models"
)

// JSONFormatter emits one JSON document per run, for automation and
// scripting.
type JSONFormatter struct {
	writer io.Writer

	mu           sync.Mutex
	scannedFiles int64
	scannedBytes int64
	result       *models.ReconciliationResult
}

// JSONConflict represents one conflicting path in the report
type JSONConflict struct {
	Path           string   `json:"path"`
	Discriminators []string `json:"discriminators"`
	SourceSize     int64    `json:"source_size"`
	DestSize       int64    `json:"dest_size"`
	SourceDate     string   `json:"source_date"`
	DestDate       string   `json:"dest_date"`
}

// JSONReport is the document emitted at the end of a run
type JSONReport struct {
	RunID         string         `json:"run_id"`
	Source        string         `json:"source"`
	Dest          string         `json:"dest"`
	DryRun        bool           `json:"dry_run"`
	Status        string         `json:"status"`
	Duration      string         `json:"duration"`
	DurationMs    int64          `json:"duration_ms"`
	ScannedFiles  int64          `json:"scanned_files"`
	ScannedBytes  int64          `json:"scanned_bytes"`
	ToCopy        []string       `json:"to_copy"`
	ToSkip        []string       `json:"to_skip"`
	Conflicts     []JSONConflict `json:"conflicts"`
	TransferRan   bool           `json:"transfer_ran"`
	TransferError string         `json:"transfer_error,omitempty"`
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Start initializes the formatter
func (f *JSONFormatter) Start(writer io.Writer) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	return nil
}

// FileScanned accumulates scan counters
func (f *JSONFormatter) FileScanned(info *models.FileInfo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scannedFiles++
	f.scannedBytes += info.Size
	return nil
}

// Reconciliation stores the classification for the final document
func (f *JSONFormatter) Reconciliation(result *models.ReconciliationResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.result = result
	return nil
}

// Complete emits the run document
func (f *JSONFormatter) Complete(report *models.RunReport) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc := JSONReport{
		RunID:         report.RunID,
		Source:        report.SourcePath,
		Dest:          report.DestPath,
		DryRun:        report.DryRun,
		Status:        string(report.Status),
		Duration:      report.Duration.String(),
		DurationMs:    report.Duration.Milliseconds(),
		ScannedFiles:  f.scannedFiles,
		ScannedBytes:  f.scannedBytes,
		TransferRan:   report.TransferRan,
		TransferError: report.TransferError,
	}

	result := f.result
	if result == nil {
		result = report.Reconciliation
	}
	if result != nil {
		doc.ToCopy = result.ToCopy.Sorted()
		doc.ToSkip = result.ToSkip.Sorted()
		doc.Conflicts = make([]JSONConflict, 0, len(result.Conflicts))
		for _, path := range result.Conflicts.Sorted() {
			detail := result.Details[path]
			if detail == nil {
				doc.Conflicts = append(doc.Conflicts, JSONConflict{Path: path})
				continue
			}
			conflict := JSONConflict{
				Path:           path,
				Discriminators: make([]string, len(detail.Discriminators)),
				SourceSize:     detail.Source.Size,
				DestSize:       detail.Dest.Size,
				SourceDate:     detail.Source.ModifiedDate.String(),
				DestDate:       detail.Dest.ModifiedDate.String(),
			}
			for i, d := range detail.Discriminators {
				conflict.Discriminators[i] = string(d)
			}
			doc.Conflicts = append(doc.Conflicts, conflict)
		}
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

// Error is folded into the final document's status; nothing is emitted
// mid-stream to keep the output a single valid JSON value
func (f *JSONFormatter) Error(err error) error {
	return nil
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
