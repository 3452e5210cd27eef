// Package metadata turns concrete paths and URIs into the comparable
// FileInfo records the scanner and comparator operate on. The scanner
// depends only on the Provider interface, never on a concrete variant.
package metadata

import (
	"context"

	"github.com/baesync/baesync/pkg/models"
)

// Provider produces comparable metadata for one file. A failed lookup
// returns a nil FileInfo and an error describing why; the caller decides
// whether that omission is fatal (the scan root) or recoverable (a
// single file inside a scan).
type Provider interface {
	// FileInfo builds a FileInfo for path, with its relative key
	// computed against basePath. path must be a regular file.
	FileInfo(ctx context.Context, path, basePath string) (*models.FileInfo, error)
}

// RemoteProvider resolves metadata for remote URIs
type RemoteProvider interface {
	// RemoteFileInfo builds a FileInfo from a remote listing. Any
	// failure (unsupported scheme, network error, malformed reply)
	// yields a nil FileInfo and an error.
	RemoteFileInfo(ctx context.Context, uri string) (*models.FileInfo, error)
}

// Lister obtains a raw listing for a remote URI without transferring
// file content. The concrete mechanism (subprocess, library, HTTP) is
// pluggable behind this interface.
type Lister interface {
	List(ctx context.Context, uri string) ([]byte, error)
}
