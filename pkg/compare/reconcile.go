package compare

import (
	"context"
	"fmt"

	"github.com/baesync/baesync/pkg/logging"
	"github.com/baesync/baesync/pkg/models"
	"github.com/baesync/baesync/pkg/scanner"
)

// Reconciler performs tree-level reconciliation: it scans both sides
// and classifies every source path into copy, skip, or conflict.
type Reconciler struct {
	scanner *scanner.Scanner
	files   *FileComparator
	logger  logging.Logger
}

// NewReconciler creates a reconciler using the given scanner for both
// sides and the given file-level comparator.
func NewReconciler(sc *scanner.Scanner, files *FileComparator, logger logging.Logger) *Reconciler {
	return &Reconciler{
		scanner: sc,
		files:   files,
		logger:  logger,
	}
}

// CompareDirectories scans source and destination and reconciles them.
// A source scan failure is fatal; an absent destination root compares
// as empty, so every source path lands in ToCopy.
func (r *Reconciler) CompareDirectories(ctx context.Context, source, dest string) (*models.ReconciliationResult, error) {
	r.logger.Info(ctx, "Starting directory comparison", logging.Fields{
		"source": source,
		"dest":   dest,
	})

	sourceScan, err := r.scanner.Scan(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("source scan failed: %w", err)
	}

	destScan, err := r.scanner.Scan(ctx, dest)
	if err != nil {
		return nil, fmt.Errorf("destination scan failed: %w", err)
	}

	result := r.Reconcile(ctx, sourceScan, destScan)

	r.logger.Info(ctx, "Comparison complete", logging.Fields{
		"to_copy":   len(result.ToCopy),
		"to_skip":   len(result.ToSkip),
		"conflicts": len(result.Conflicts),
	})

	return result, nil
}

// Reconcile classifies every source path against the destination scan.
// Each path lands in exactly one bucket, so the three sets are disjoint
// by construction and together cover the source path set.
func (r *Reconciler) Reconcile(ctx context.Context, source, dest models.ScanResult) *models.ReconciliationResult {
	result := models.NewReconciliationResult()

	for relPath, srcInfo := range source {
		destInfo, exists := dest[relPath]
		if !exists {
			result.ToCopy.Add(relPath)
			continue
		}

		identical, discriminators := r.files.Equal(ctx, srcInfo, destInfo)
		if identical {
			result.ToSkip.Add(relPath)
			continue
		}

		result.AddConflict(srcInfo, destInfo, discriminators)
		r.logger.Warn(ctx, "File mismatch", logging.Fields{
			"path":           relPath,
			"discriminators": discriminatorNames(discriminators),
			"source_size":    srcInfo.Size,
			"dest_size":      destInfo.Size,
			"source_date":    srcInfo.ModifiedDate.String(),
			"dest_date":      destInfo.ModifiedDate.String(),
		})
	}

	return result
}

func discriminatorNames(discriminators []models.Discriminator) []string {
	names := make([]string, len(discriminators))
	for i, d := range discriminators {
		names[i] = string(d)
	}
	return names
}
