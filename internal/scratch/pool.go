// Package scratch provides reusable row buffers for the PNG pipelines.
package scratch

import "sync"

// maxBuckets limits how many distinct buffer lengths a Pool retains.
const maxBuckets = 32

// Pool is a thread-safe pool of byte slices grouped by length.
//
// Encoders and decoders need one scanline-sized buffer per call. Pool lets
// repeated calls on images of the same width reuse that buffer instead of
// allocating a new one.
//
// Buckets are keyed by exact length. At most maxBuckets lengths are retained
// at once; buffers of a new length are dropped while the pool is full, and a
// bucket is removed when its last buffer is taken.
type Pool struct {
	mu      sync.Mutex
	buckets map[int][][]byte
	maxSize int // max buffers per bucket, 0 or less is unlimited
}

// NewPool creates a pool that retains at most maxPerBucket buffers of each
// length.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[int][][]byte),
		maxSize: maxPerBucket,
	}
}

// Get returns a zeroed buffer of length n.
func (p *Pool) Get(n int) []byte {
	if n <= 0 {
		return nil
	}
	p.mu.Lock()
	bucket := p.buckets[n]
	if len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		if len(bucket) == 1 {
			delete(p.buckets, n)
		} else {
			p.buckets[n] = bucket[:len(bucket)-1]
		}
		p.mu.Unlock()
		clear(buf)
		return buf
	}
	p.mu.Unlock()
	return make([]byte, n)
}

// Put returns buf to the pool. Empty buffers, buffers beyond the bucket
// limit and buffers of a new length while maxBuckets lengths are held are
// dropped.
func (p *Pool) Put(buf []byte) {
	n := len(buf)
	if n == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	bucket, ok := p.buckets[n]
	if !ok && len(p.buckets) >= maxBuckets {
		return
	}
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[n] = append(bucket, buf[:n:n])
}

// Len reports how many buffers of length n are retained.
func (p *Pool) Len(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buckets[n])
}

var defaultPool = NewPool(8)

// Get retrieves a zeroed buffer of length n from the default pool.
func Get(n int) []byte { return defaultPool.Get(n) }

// Put returns buf to the default pool.
func Put(buf []byte) { defaultPool.Put(buf) }
