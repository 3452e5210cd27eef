package transfer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/baesync/baesync/pkg/logging"
)

// DefaultBinary is the transfer binary resolved from PATH
const DefaultBinary = "rsync"

// RsyncExecutor shells out to rsync for the byte-level transfer.
type RsyncExecutor struct {
	logger logging.Logger
	binary string
	stdout io.Writer
}

// NewRsyncExecutor creates an executor using the rsync binary from PATH
func NewRsyncExecutor(logger logging.Logger) *RsyncExecutor {
	return &RsyncExecutor{
		logger: logger,
		binary: DefaultBinary,
		stdout: os.Stdout,
	}
}

// SetBinary overrides the transfer binary path
func (e *RsyncExecutor) SetBinary(binary string) {
	if binary != "" {
		e.binary = binary
	}
}

// SetOutput redirects the primitive's progress output
func (e *RsyncExecutor) SetOutput(w io.Writer) {
	e.stdout = w
}

// Sync runs rsync with flags mapped from opts. Stderr is captured and
// folded into the returned error so failures surface verbatim.
func (e *RsyncExecutor) Sync(ctx context.Context, source, dest string, opts Options) error {
	args := buildArgs(source, dest, opts)

	e.logger.Debug(ctx, "Invoking transfer primitive", logging.Fields{
		"binary": e.binary,
		"args":   strings.Join(args, " "),
	})

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.binary, args...)
	cmd.Stdout = e.stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return fmt.Errorf("transfer failed: %w", err)
		}
		return fmt.Errorf("transfer failed: %w: %s", err, msg)
	}

	return nil
}

// buildArgs maps Options onto rsync's flag surface
func buildArgs(source, dest string, opts Options) []string {
	args := []string{"--verbose"}

	if opts.Recursive {
		args = append(args, "--recursive")
	}
	if opts.Delete {
		args = append(args, "--delete")
	}
	if opts.PreservePermissions {
		args = append(args, "--perms")
	}
	if opts.PreserveTimes {
		args = append(args, "--times")
	}
	if opts.PreserveOwner {
		args = append(args, "--owner")
	}
	if opts.PreserveGroup {
		args = append(args, "--group")
	}
	if opts.Progress {
		args = append(args, "--progress")
	}

	return append(args, source, dest)
}
