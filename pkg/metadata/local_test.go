package metadata

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/baesync/baesync/pkg/logging"
)

func setupFile(t *testing.T, name string, content []byte) (string, string) {
	t.Helper()

	root, err := os.MkdirTemp("", "baesync-metadata-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(root) })

	path := filepath.Join(root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create parent dir: %v", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	return root, path
}

func TestLocalProviderFileInfo(t *testing.T) {
	ctx := context.Background()
	provider := NewLocalProvider(logging.NewNullLogger())

	t.Run("BasicMetadata", func(t *testing.T) {
		content := []byte("hello metadata")
		root, path := setupFile(t, "file.txt", content)

		info, err := provider.FileInfo(ctx, path, root)
		if err != nil {
			t.Fatalf("FileInfo() error = %v", err)
		}

		if info.Name != "file.txt" {
			t.Errorf("Name = %s, want file.txt", info.Name)
		}
		if info.Size != int64(len(content)) {
			t.Errorf("Size = %d, want %d", info.Size, len(content))
		}
		if info.ModifiedDate.IsZero() {
			t.Error("ModifiedDate should be set")
		}
		if info.IsRemote {
			t.Error("local metadata should not be marked remote")
		}
	})

	t.Run("ChecksumMatchesContent", func(t *testing.T) {
		content := []byte("checksum me")
		root, path := setupFile(t, "file.txt", content)

		info, err := provider.FileInfo(ctx, path, root)
		if err != nil {
			t.Fatalf("FileInfo() error = %v", err)
		}

		expected := fmt.Sprintf("%x", sha256.Sum256(content))
		if info.Checksum != expected {
			t.Errorf("Checksum = %s, want %s", info.Checksum, expected)
		}
	})

	t.Run("ChecksumDeterministic", func(t *testing.T) {
		root, path := setupFile(t, "file.txt", []byte("stable content"))

		first, err := provider.FileInfo(ctx, path, root)
		if err != nil {
			t.Fatalf("FileInfo() error = %v", err)
		}
		second, err := provider.FileInfo(ctx, path, root)
		if err != nil {
			t.Fatalf("FileInfo() error = %v", err)
		}

		if first.Checksum != second.Checksum {
			t.Error("checksum should be deterministic for unchanged content")
		}
	})

	t.Run("RelativeKeyIsSlashSeparated", func(t *testing.T) {
		root, path := setupFile(t, "dir/sub/file.txt", []byte("nested"))

		info, err := provider.FileInfo(ctx, path, root)
		if err != nil {
			t.Fatalf("FileInfo() error = %v", err)
		}

		if info.RelativePath != "dir/sub/file.txt" {
			t.Errorf("RelativePath = %s, want dir/sub/file.txt", info.RelativePath)
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		root, _ := setupFile(t, "exists.txt", []byte("x"))

		_, err := provider.FileInfo(ctx, filepath.Join(root, "missing.txt"), root)
		if err == nil {
			t.Error("FileInfo() should fail for a missing file")
		}
	})

	t.Run("DirectoryIsError", func(t *testing.T) {
		root, _ := setupFile(t, "dir/file.txt", []byte("x"))

		_, err := provider.FileInfo(ctx, filepath.Join(root, "dir"), root)
		if err == nil {
			t.Error("FileInfo() should fail for a directory")
		}
	})

	t.Run("EmptyFile", func(t *testing.T) {
		root, path := setupFile(t, "empty.txt", nil)

		info, err := provider.FileInfo(ctx, path, root)
		if err != nil {
			t.Fatalf("FileInfo() error = %v", err)
		}

		if info.Size != 0 {
			t.Errorf("Size = %d, want 0", info.Size)
		}
		// The empty input still hashes to a well-defined digest.
		expected := fmt.Sprintf("%x", sha256.Sum256(nil))
		if info.Checksum != expected {
			t.Errorf("Checksum = %s, want %s", info.Checksum, expected)
		}
	})

	t.Run("ContextCancellation", func(t *testing.T) {
		root, path := setupFile(t, "file.txt", []byte("content"))

		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := provider.FileInfo(cancelled, path, root); err == nil {
			t.Error("FileInfo() should return error on cancelled context")
		}
	})

	t.Run("LargerThanChunkSize", func(t *testing.T) {
		content := make([]byte, 3*DefaultChunkSize+17)
		for i := range content {
			content[i] = byte(i % 251)
		}
		root, path := setupFile(t, "big.bin", content)

		info, err := provider.FileInfo(ctx, path, root)
		if err != nil {
			t.Fatalf("FileInfo() error = %v", err)
		}

		expected := fmt.Sprintf("%x", sha256.Sum256(content))
		if info.Checksum != expected {
			t.Errorf("multi-chunk checksum = %s, want %s", info.Checksum, expected)
		}
	})
}

func TestLocalProviderSetChunkSize(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewNullLogger()
	content := []byte("chunk size must not change the digest")

	root, path := setupFile(t, "file.txt", content)

	small := NewLocalProvider(logger)
	small.SetChunkSize(1024)
	large := NewLocalProvider(logger)
	large.SetChunkSize(64 * 1024)

	a, err := small.FileInfo(ctx, path, root)
	if err != nil {
		t.Fatalf("FileInfo() error = %v", err)
	}
	b, err := large.FileInfo(ctx, path, root)
	if err != nil {
		t.Fatalf("FileInfo() error = %v", err)
	}

	if a.Checksum != b.Checksum {
		t.Error("chunk size should not affect the checksum")
	}

	// Sub-minimum sizes are ignored rather than applied.
	p := NewLocalProvider(logger)
	p.SetChunkSize(16)
	if p.chunkSize != DefaultChunkSize {
		t.Errorf("chunkSize = %d, want %d", p.chunkSize, DefaultChunkSize)
	}
}

func TestLocalProviderImplementsProvider(t *testing.T) {
	var _ Provider = NewLocalProvider(logging.NewNullLogger())
}
