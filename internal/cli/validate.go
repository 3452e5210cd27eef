package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/baesync/baesync/internal/platform"
	"github.com/baesync/baesync/pkg/metadata"
)

// validateSyncPaths checks the source/destination arguments before any
// scan starts. Remote URIs skip the local filesystem checks; their
// validation happens at listing time.
func validateSyncPaths(source, dest string) error {
	sourceRemote := metadata.IsRemoteURI(source)
	destRemote := metadata.IsRemoteURI(dest)

	if !sourceRemote {
		if _, err := os.Stat(source); os.IsNotExist(err) {
			return fmt.Errorf("source path does not exist: %s", source)
		} else if err != nil {
			return fmt.Errorf("failed to access source path: %w", err)
		}
	}

	// The destination may be absent: comparing against a fresh
	// destination is the normal "copy everything" case.
	if !destRemote {
		if info, err := os.Stat(dest); err == nil && !info.IsDir() {
			return fmt.Errorf("destination path exists but is not a directory: %s", dest)
		}
	}

	if sourceRemote || destRemote {
		return nil
	}

	sourceAbs, err := filepath.Abs(source)
	if err != nil {
		return fmt.Errorf("failed to resolve source path: %w", err)
	}
	destAbs, err := filepath.Abs(dest)
	if err != nil {
		return fmt.Errorf("failed to resolve destination path: %w", err)
	}

	if sourceAbs == destAbs {
		return fmt.Errorf("source and destination cannot be the same: %s", sourceAbs)
	}
	if platform.IsSubpath(sourceAbs, destAbs) {
		return fmt.Errorf("destination cannot be inside source directory")
	}
	if platform.IsSubpath(destAbs, sourceAbs) {
		return fmt.Errorf("source cannot be inside destination directory")
	}

	return nil
}
