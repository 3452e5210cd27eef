package ratelimit

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"
)

// TestNewLimiter tests the Limiter constructor
func TestNewLimiter(t *testing.T) {
	t.Run("ValidBytesPerSecond", func(t *testing.T) {
		limiter := NewLimiter(1024 * 1024) // 1 MB/s
		if limiter == nil {
			t.Fatal("NewLimiter() returned nil for valid input")
		}
		if limiter.bytesPerSecond != 1024*1024 {
			t.Errorf("bytesPerSecond = %d, want %d", limiter.bytesPerSecond, 1024*1024)
		}
	})

	t.Run("ZeroBytesPerSecond", func(t *testing.T) {
		limiter := NewLimiter(0)
		if limiter != nil {
			t.Error("NewLimiter(0) should return nil (no limiting)")
		}
	})

	t.Run("NegativeBytesPerSecond", func(t *testing.T) {
		limiter := NewLimiter(-100)
		if limiter != nil {
			t.Error("NewLimiter(-100) should return nil (no limiting)")
		}
	})

	t.Run("SmallBytesPerSecond", func(t *testing.T) {
		limiter := NewLimiter(1000) // 1KB/s
		if limiter == nil {
			t.Fatal("NewLimiter() returned nil")
		}
		// Bucket size should be at least 64KB for smooth reads
		if limiter.bucketSize < 65536 {
			t.Errorf("bucketSize = %d, want at least 65536", limiter.bucketSize)
		}
	})

	t.Run("LargeBytesPerSecond", func(t *testing.T) {
		limiter := NewLimiter(100 * 1024 * 1024) // 100 MB/s
		if limiter == nil {
			t.Fatal("NewLimiter() returned nil")
		}
		// Bucket size should be 1 second worth of data
		if limiter.bucketSize != 100*1024*1024 {
			t.Errorf("bucketSize = %d, want %d", limiter.bucketSize, 100*1024*1024)
		}
	})
}

// TestNewReader tests the Reader constructor
func TestNewReader(t *testing.T) {
	t.Run("WithLimiter", func(t *testing.T) {
		limiter := NewLimiter(1024 * 1024)
		baseReader := strings.NewReader("test content")
		ctx := context.Background()

		reader := NewReader(ctx, baseReader, limiter)
		if reader == nil {
			t.Fatal("NewReader() returned nil")
		}

		// Should be a *Reader, not the original reader
		if _, ok := reader.(*Reader); !ok {
			t.Error("NewReader() should return *Reader when limiter is provided")
		}
	})

	t.Run("NilLimiter", func(t *testing.T) {
		baseReader := strings.NewReader("test content")
		ctx := context.Background()

		reader := NewReader(ctx, baseReader, nil)
		if reader != baseReader {
			t.Error("NewReader() should return original reader when limiter is nil")
		}
	})
}

// TestReaderRead tests the Read method
func TestReaderRead(t *testing.T) {
	t.Run("BasicRead", func(t *testing.T) {
		content := []byte("hello world")
		limiter := NewLimiter(1024 * 1024) // 1 MB/s - fast enough to not delay
		baseReader := bytes.NewReader(content)
		ctx := context.Background()

		reader := NewReader(ctx, baseReader, limiter)

		buf := make([]byte, 100)
		n, err := reader.Read(buf)
		if err != nil && err != io.EOF {
			t.Fatalf("Read() error = %v", err)
		}
		if n != len(content) {
			t.Errorf("Read() n = %d, want %d", n, len(content))
		}
		if !bytes.Equal(buf[:n], content) {
			t.Errorf("Read() content = %s, want %s", string(buf[:n]), string(content))
		}
	})

	t.Run("ContextCancellation", func(t *testing.T) {
		content := make([]byte, 1024)
		limiter := NewLimiter(1024 * 1024)
		baseReader := bytes.NewReader(content)
		ctx, cancel := context.WithCancel(context.Background())
		cancel() // Cancel immediately

		reader := NewReader(ctx, baseReader, limiter)

		buf := make([]byte, 100)
		if _, err := reader.Read(buf); err == nil {
			t.Error("Read() should return error on cancelled context")
		}
	})

	t.Run("MultipleReads", func(t *testing.T) {
		content := []byte("0123456789abcdef")
		limiter := NewLimiter(1024 * 1024)
		baseReader := bytes.NewReader(content)
		ctx := context.Background()

		reader := NewReader(ctx, baseReader, limiter)

		var result []byte
		buf := make([]byte, 4)
		for {
			n, err := reader.Read(buf)
			if n > 0 {
				result = append(result, buf[:n]...)
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
		}

		if !bytes.Equal(result, content) {
			t.Errorf("Read() accumulated = %s, want %s", string(result), string(content))
		}
	})
}

// TestTokenBucket tests the token bucket algorithm
func TestTokenBucket(t *testing.T) {
	t.Run("InitialTokens", func(t *testing.T) {
		limiter := NewLimiter(1024 * 1024) // 1 MB/s
		// Bucket should start full
		if limiter.tokens != limiter.bucketSize {
			t.Errorf("Initial tokens = %d, want %d", limiter.tokens, limiter.bucketSize)
		}
	})

	t.Run("ConsumeTokens", func(t *testing.T) {
		limiter := NewLimiter(1024 * 1024)
		initialTokens := limiter.tokens

		limiter.consume(1000)

		if limiter.tokens != initialTokens-1000 {
			t.Errorf("After consume, tokens = %d, want %d", limiter.tokens, initialTokens-1000)
		}
	})

	t.Run("ConsumeMoreThanAvailable", func(t *testing.T) {
		limiter := NewLimiter(1024)
		limiter.tokens = 100

		limiter.consume(200)

		// Should clamp to 0
		if limiter.tokens != 0 {
			t.Errorf("After over-consume, tokens = %d, want 0", limiter.tokens)
		}
	})

	t.Run("RefillTokens", func(t *testing.T) {
		limiter := NewLimiter(1000) // 1000 bytes/second
		limiter.tokens = 0
		limiter.lastUpdate = time.Now().Add(-100 * time.Millisecond) // 100ms ago

		limiter.refill()

		// Should have refilled ~100 tokens (100ms * 1000 bytes/s)
		if limiter.tokens < 50 || limiter.tokens > 150 {
			t.Errorf("After refill, tokens = %d, expected ~100", limiter.tokens)
		}
	})

	t.Run("RefillCapped", func(t *testing.T) {
		limiter := NewLimiter(1000)
		limiter.tokens = limiter.bucketSize - 10
		limiter.lastUpdate = time.Now().Add(-1 * time.Second) // 1 second ago

		limiter.refill()

		// Should be capped at bucket size
		if limiter.tokens != limiter.bucketSize {
			t.Errorf("After capped refill, tokens = %d, want %d", limiter.tokens, limiter.bucketSize)
		}
	})
}

// BenchmarkRateLimitedRead benchmarks rate-limited reading
func BenchmarkRateLimitedRead(b *testing.B) {
	content := make([]byte, 1024*1024)       // 1 MB
	limiter := NewLimiter(100 * 1024 * 1024) // 100 MB/s - fast for benchmarking
	ctx := context.Background()
	buf := make([]byte, 64*1024) // 64 KB buffer

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		baseReader := bytes.NewReader(content)
		reader := NewReader(ctx, baseReader, limiter)

		for {
			_, err := reader.Read(buf)
			if err == io.EOF {
				break
			}
			if err != nil {
				b.Fatalf("Read() error = %v", err)
			}
		}
	}
}
