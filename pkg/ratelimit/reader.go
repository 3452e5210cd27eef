package ratelimit

import (
	"context"
	"io"
	"sync"
	"time"
)

// Limiter throttles aggregate read bandwidth across the readers that
// share it, using a token bucket. Checksum scans can saturate a network
// share; a shared limiter keeps the scan phase polite.
type Limiter struct {
	bytesPerSecond int64
	bucketSize     int64

	mu         sync.Mutex
	tokens     int64
	lastUpdate time.Time
}

// NewLimiter creates a limiter allowing bytesPerSecond of read traffic.
// A non-positive limit returns nil, which every wrapper treats as
// "no limiting".
func NewLimiter(bytesPerSecond int64) *Limiter {
	if bytesPerSecond <= 0 {
		return nil
	}

	// Allow bursts up to one second of traffic, 64KB minimum so small
	// reads stay smooth.
	bucketSize := bytesPerSecond
	if bucketSize < 65536 {
		bucketSize = 65536
	}

	return &Limiter{
		bytesPerSecond: bytesPerSecond,
		bucketSize:     bucketSize,
		tokens:         bucketSize,
		lastUpdate:     time.Now(),
	}
}

func (l *Limiter) waitForTokens(needed int64) {
	for {
		l.mu.Lock()
		l.refill()
		if l.tokens >= needed {
			l.mu.Unlock()
			return
		}

		deficit := needed - l.tokens
		wait := time.Duration(float64(deficit) / float64(l.bytesPerSecond) * float64(time.Second))
		if wait < time.Millisecond {
			wait = time.Millisecond
		}
		l.mu.Unlock()

		time.Sleep(wait)
	}
}

// refill adds tokens for elapsed time. Called with the mutex held.
func (l *Limiter) refill() {
	now := time.Now()
	elapsed := now.Sub(l.lastUpdate)

	add := int64(float64(elapsed) / float64(time.Second) * float64(l.bytesPerSecond))
	if add > 0 {
		l.tokens += add
		if l.tokens > l.bucketSize {
			l.tokens = l.bucketSize
		}
		l.lastUpdate = now
	}
}

func (l *Limiter) consume(n int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tokens -= n
	if l.tokens < 0 {
		l.tokens = 0
	}
}

// Reader wraps an io.Reader with bandwidth limiting
type Reader struct {
	reader  io.Reader
	limiter *Limiter
	ctx     context.Context
}

// NewReader wraps reader with rate limiting. A nil limiter returns the
// reader unchanged.
func NewReader(ctx context.Context, reader io.Reader, limiter *Limiter) io.Reader {
	if limiter == nil {
		return reader
	}
	return &Reader{reader: reader, limiter: limiter, ctx: ctx}
}

// Read implements io.Reader, blocking until the token bucket permits
// the read
func (r *Reader) Read(p []byte) (int, error) {
	select {
	case <-r.ctx.Done():
		return 0, r.ctx.Err()
	default:
	}

	toRead := len(p)
	if int64(toRead) > r.limiter.bucketSize {
		toRead = int(r.limiter.bucketSize)
	}

	r.limiter.waitForTokens(int64(toRead))

	n, err := r.reader.Read(p[:toRead])
	if n > 0 {
		r.limiter.consume(int64(n))
	}
	return n, err
}
