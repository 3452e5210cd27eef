package models

import (
	"fmt"
	"time"
)

// Date is a calendar day (year/month/day). Modification timestamps are
// reduced to a Date before comparison: many transfer tools and network
// filesystems preserve mtime at second granularity or normalize timezones,
// so comparing full timestamps produces false mismatches for files that
// are in fact identical.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf reduces a timestamp to its calendar day.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// String returns the date in ISO 8601 form (2006-01-02).
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// FileInfo is an immutable snapshot of one file's identity for comparison
// purposes. It is constructed fresh on every scan and discarded after the
// reconciliation decision that consumed it; nothing is cached across runs.
type FileInfo struct {
	// AbsolutePath is the fully resolved location: a filesystem path for
	// local files, a URI for remote ones.
	AbsolutePath string

	// RelativePath is the path relative to the scan root, always
	// slash-separated so keys compare equal across platforms. It is the
	// reconciliation key: unique within one scan result.
	RelativePath string

	// Name is the final path component.
	Name string

	// Size in bytes.
	Size int64

	// ModifiedDate is the file's modification day.
	ModifiedDate Date

	// Checksum is the SHA-256 hex digest of the content, or "" when it
	// could not be computed (read failure, or a remote listing that does
	// not supply one).
	Checksum string

	// IsRemote marks metadata obtained from a remote listing.
	IsRemote bool
}

// HasChecksum reports whether a content checksum is available.
func (fi *FileInfo) HasChecksum() bool {
	return fi.Checksum != ""
}

// ScanResult maps relative path keys to file metadata. A scan produces
// exactly one entry per distinct relative path.
type ScanResult map[string]*FileInfo

// TotalBytes returns the sum of all file sizes in the result.
func (r ScanResult) TotalBytes() int64 {
	var total int64
	for _, fi := range r {
		total += fi.Size
	}
	return total
}
