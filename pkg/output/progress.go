package output

import (
	"io"
	"os"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/term"

	"github.com/baesync/baesync/pkg/models"
)

// scanTemplate renders the live scan line: byte counter, throughput,
// and the file currently being hashed.
const scanTemplate = `Scanning {{counters . }} {{speed . }} {{string . "path"}}`

// ProgressFormatter renders a live progress bar during the scan phase
// and falls back to human-readable output for the summary.
type ProgressFormatter struct {
	human *HumanFormatter

	mu  sync.Mutex
	bar *pb.ProgressBar
}

// NewProgressFormatter creates a formatter with a live scan bar
func NewProgressFormatter() *ProgressFormatter {
	return &ProgressFormatter{
		human: NewHumanFormatter(false),
	}
}

// Start initializes the formatter and the scan bar
func (f *ProgressFormatter) Start(writer io.Writer) error {
	if writer == nil {
		writer = os.Stdout
	}
	if err := f.human.Start(writer); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	bar := pb.New64(0)
	bar.Set(pb.Bytes, true)
	bar.SetTemplateString(scanTemplate)
	bar.SetWriter(writer)

	// Cap the bar width to the terminal so long paths don't wrap
	if file, ok := writer.(*os.File); ok {
		if width, _, err := term.GetSize(int(file.Fd())); err == nil && width > 0 {
			bar.SetWidth(width)
		}
	}

	f.bar = bar.Start()
	return nil
}

// FileScanned advances the bar by the scanned file's size
func (f *ProgressFormatter) FileScanned(info *models.FileInfo) error {
	f.mu.Lock()
	if f.bar != nil {
		f.bar.Set("path", info.RelativePath)
		f.bar.Add64(info.Size)
	}
	f.mu.Unlock()

	return f.human.FileScanned(info)
}

// Reconciliation stops the bar and prints the classification summary
func (f *ProgressFormatter) Reconciliation(result *models.ReconciliationResult) error {
	f.finishBar()
	return f.human.Reconciliation(result)
}

// Complete finalizes output and displays the run summary
func (f *ProgressFormatter) Complete(report *models.RunReport) error {
	f.finishBar()
	return f.human.Complete(report)
}

// Error stops the bar and reports the error
func (f *ProgressFormatter) Error(err error) error {
	f.finishBar()
	return f.human.Error(err)
}

func (f *ProgressFormatter) finishBar() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.bar != nil {
		f.bar.Finish()
		f.bar = nil
	}
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}
