package transfer

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/baesync/baesync/pkg/logging"
)

// RsyncLister obtains remote file listings via rsync's list-only mode,
// without transferring content. It satisfies metadata.Lister.
type RsyncLister struct {
	logger logging.Logger
	binary string
}

// NewRsyncLister creates a lister using the rsync binary from PATH
func NewRsyncLister(logger logging.Logger) *RsyncLister {
	return &RsyncLister{
		logger: logger,
		binary: DefaultBinary,
	}
}

// SetBinary overrides the lister binary path
func (l *RsyncLister) SetBinary(binary string) {
	if binary != "" {
		l.binary = binary
	}
}

// List runs a list-only invocation against the URI and returns its raw
// stdout for the metadata layer to parse.
func (l *RsyncLister) List(ctx context.Context, uri string) ([]byte, error) {
	l.logger.Debug(ctx, "Listing remote path", logging.Fields{
		"binary": l.binary,
		"uri":    uri,
	})

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, l.binary, "--list-only", uri)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("listing failed: %w", err)
		}
		return nil, fmt.Errorf("listing failed: %w: %s", err, msg)
	}

	return stdout.Bytes(), nil
}
