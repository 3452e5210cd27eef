// Package compare decides file-level equality and tree-level
// reconciliation: the classification of every source path into
// copy, skip, or conflict.
package compare

import (
	"context"

	"github.com/baesync/baesync/pkg/logging"
	"github.com/baesync/baesync/pkg/models"
)

// Options configures file-level equality
type Options struct {
	// StrictChecksum treats a missing checksum on either side as a
	// mismatch. The default (false) degrades to size+date equality when
	// a checksum is unavailable, which is blind to same-size same-date
	// corruption.
	StrictChecksum bool
}

// FileComparator decides whether two FileInfo records for the same
// relative path describe identical content.
type FileComparator struct {
	logger logging.Logger
	opts   Options
}

// NewFileComparator creates a file-level comparator
func NewFileComparator(logger logging.Logger, opts Options) *FileComparator {
	return &FileComparator{
		logger: logger,
		opts:   opts,
	}
}

// Equal compares source and destination metadata, short-circuiting on
// the cheapest discriminator first: size, then modification date, then
// checksum when both sides carry one. It returns the attributes that
// mismatched; an empty slice means identical.
func (c *FileComparator) Equal(ctx context.Context, src, dest *models.FileInfo) (bool, []models.Discriminator) {
	if src.Size != dest.Size {
		c.logger.Debug(ctx, "Size mismatch", logging.Fields{
			"path":        src.RelativePath,
			"source_size": src.Size,
			"dest_size":   dest.Size,
		})
		return false, []models.Discriminator{models.DiscriminatorSize}
	}

	if src.ModifiedDate != dest.ModifiedDate {
		c.logger.Debug(ctx, "Date mismatch", logging.Fields{
			"path":        src.RelativePath,
			"source_date": src.ModifiedDate.String(),
			"dest_date":   dest.ModifiedDate.String(),
		})
		return false, []models.Discriminator{models.DiscriminatorDate}
	}

	if src.HasChecksum() && dest.HasChecksum() {
		if src.Checksum != dest.Checksum {
			c.logger.Debug(ctx, "Checksum mismatch", logging.Fields{
				"path": src.RelativePath,
			})
			return false, []models.Discriminator{models.DiscriminatorChecksum}
		}
		return true, nil
	}

	if c.opts.StrictChecksum {
		c.logger.Debug(ctx, "Checksum unavailable in strict mode", logging.Fields{
			"path": src.RelativePath,
		})
		return false, []models.Discriminator{models.DiscriminatorChecksum}
	}

	// Size and date match and at least one checksum is missing: degrade
	// to size+date equality.
	return true, nil
}
