package metadata

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/baesync/baesync/internal/platform"
	"github.com/baesync/baesync/pkg/logging"
	"github.com/baesync/baesync/pkg/models"
	"github.com/baesync/baesync/pkg/ratelimit"
)

// DefaultChunkSize is the read size used when streaming file content
// through the hash. It bounds memory use regardless of file size.
const DefaultChunkSize = 8192

// LocalProvider builds FileInfo records from filesystem metadata,
// including a streamed SHA-256 content checksum.
type LocalProvider struct {
	logger    logging.Logger
	chunkSize int
	limiter   *ratelimit.Limiter
}

// NewLocalProvider creates a provider for local files
func NewLocalProvider(logger logging.Logger) *LocalProvider {
	return &LocalProvider{
		logger:    logger,
		chunkSize: DefaultChunkSize,
	}
}

// SetChunkSize overrides the streaming read size
func (p *LocalProvider) SetChunkSize(size int) {
	if size >= 1024 {
		p.chunkSize = size
	}
}

// SetBandwidthLimit throttles checksum reads through the given limiter.
// A nil limiter disables throttling.
func (p *LocalProvider) SetBandwidthLimit(limiter *ratelimit.Limiter) {
	p.limiter = limiter
}

// FileInfo builds metadata for one regular file. A stat failure or a
// non-regular file is an error; a checksum failure is not. The record
// is returned without a checksum and equality degrades to size+date.
func (p *LocalProvider) FileInfo(ctx context.Context, path, basePath string) (*models.FileInfo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("not a regular file: %s", abs)
	}

	absBase, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base path: %w", err)
	}

	relKey, err := platform.RelativeKey(absBase, abs)
	if err != nil {
		return nil, err
	}

	checksum, err := p.checksum(ctx, abs)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		p.logger.Error(ctx, "Failed to compute checksum", err, logging.Fields{
			"path": abs,
		})
		checksum = ""
	}

	return &models.FileInfo{
		AbsolutePath: abs,
		RelativePath: relKey,
		Name:         info.Name(),
		Size:         info.Size(),
		ModifiedDate: models.DateOf(info.ModTime()),
		Checksum:     checksum,
	}, nil
}

// checksum streams the file through SHA-256 in fixed-size chunks,
// stopping at the next chunk boundary if the context is cancelled.
func (p *LocalProvider) checksum(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := ratelimit.NewReader(ctx, file, p.limiter)
	hasher := sha256.New()
	buffer := make([]byte, p.chunkSize)

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		n, err := reader.Read(buffer)
		if n > 0 {
			hasher.Write(buffer[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
	}

	return fmt.Sprintf("%x", hasher.Sum(nil)), nil
}
