// Package scanner walks a directory tree and produces the ScanResult
// the comparator reconciles. One scan owns its result mapping; nothing
// is shared or cached across scans.
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/baesync/baesync/pkg/logging"
	"github.com/baesync/baesync/pkg/metadata"
	"github.com/baesync/baesync/pkg/models"
)

// Scanner recursively enumerates the regular files under a root and
// resolves each through a metadata provider.
type Scanner struct {
	provider metadata.Provider
	logger   logging.Logger
	workers  int

	// onFile, when set, observes every successfully resolved entry.
	// Used by progress display; ordering is not guaranteed when the
	// worker pool is active.
	onFile func(info *models.FileInfo)
}

// New creates a scanner. workers sets the size of the checksum worker
// pool; values below 2 keep the scan sequential.
func New(provider metadata.Provider, logger logging.Logger, workers int) *Scanner {
	if workers < 1 {
		workers = 1
	}
	return &Scanner{
		provider: provider,
		logger:   logger,
		workers:  workers,
	}
}

// SetFileObserver registers a callback invoked for each scanned entry.
// The callback must be safe for concurrent use when workers > 1.
func (s *Scanner) SetFileObserver(fn func(info *models.FileInfo)) {
	s.onFile = fn
}

// Scan enumerates every regular file under root exactly once and
// returns their metadata keyed by relative path.
//
// Error policy follows the comparison contract: a root that does not
// exist yields an empty result (comparing against a fresh destination
// is the normal "copy everything" case); a root that exists but cannot
// be traversed is a hard failure; a single unreadable file inside the
// tree is logged as a warning and omitted.
func (s *Scanner) Scan(ctx context.Context, root string) (models.ScanResult, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve scan root: %w", err)
	}

	if _, err := os.Stat(absRoot); os.IsNotExist(err) {
		s.logger.Info(ctx, "Scan root does not exist, treating as empty", logging.Fields{
			"root": absRoot,
		})
		return models.ScanResult{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to access scan root %s: %w", absRoot, err)
	}

	paths, err := s.collect(ctx, absRoot)
	if err != nil {
		return nil, err
	}

	if s.workers > 1 {
		return s.resolveParallel(ctx, absRoot, paths)
	}
	return s.resolveSequential(ctx, absRoot, paths)
}

// collect walks the tree and gathers the paths of all regular files.
// Traversal failures at the root abort the scan; failures deeper in the
// tree skip the unreadable branch.
func (s *Scanner) collect(ctx context.Context, root string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if p == root {
				return fmt.Errorf("failed to read scan root: %w", walkErr)
			}
			s.logger.Warn(ctx, "Skipping unreadable tree entry", logging.Fields{
				"path":  p,
				"error": walkErr.Error(),
			})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.Type().IsRegular() {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return paths, nil
}

func (s *Scanner) resolveSequential(ctx context.Context, root string, paths []string) (models.ScanResult, error) {
	result := make(models.ScanResult, len(paths))
	for _, p := range paths {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		info := s.resolve(ctx, p, root)
		if info == nil {
			continue
		}
		result[info.RelativePath] = info
		if s.onFile != nil {
			s.onFile(info)
		}
	}
	return result, nil
}

// resolveParallel fans the checksum work out over a fixed-size pool.
// Entries are independent and land in disjoint map slots, so completion
// order does not affect the result.
func (s *Scanner) resolveParallel(ctx context.Context, root string, paths []string) (models.ScanResult, error) {
	result := make(models.ScanResult, len(paths))
	jobs := make(chan string)

	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				info := s.resolve(ctx, p, root)
				if info == nil {
					continue
				}
				mu.Lock()
				result[info.RelativePath] = info
				mu.Unlock()
				if s.onFile != nil {
					s.onFile(info)
				}
			}
		}()
	}

	var cancelled error
feed:
	for _, p := range paths {
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		case jobs <- p:
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled != nil {
		return nil, cancelled
	}
	return result, nil
}

// resolve obtains metadata for one file, swallowing per-file failures.
// A cancelled context is the one error that is not swallowed here; the
// callers surface it.
func (s *Scanner) resolve(ctx context.Context, path, root string) *models.FileInfo {
	info, err := s.provider.FileInfo(ctx, path, root)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn(ctx, "Skipping file, metadata unavailable", logging.Fields{
				"path":  path,
				"error": err.Error(),
			})
		}
		return nil
	}
	return info
}
