// Package bitmap holds the pixel buffers that effects operate on: the
// Drawable abstraction a host hands over, rasterisation of a drawable into
// a bounded RGBA bitmap, and a size-bucketed buffer pool so large buffers
// are released explicitly instead of waiting for the collector.
package bitmap

import (
	"image"
	"sync"
)

// Pool is a thread-safe pool for reusing *image.RGBA buffers.
//
// Buffers are grouped by their dimensions. Get hands out a cleared buffer;
// Put takes ownership of one the caller no longer references.
type Pool struct {
	mu      sync.Mutex
	buckets map[image.Point][]*image.RGBA
	maxSize int
}

// NewPool creates a pool keeping at most maxPerBucket buffers per size.
// A maxPerBucket of 0 means unlimited.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[image.Point][]*image.RGBA),
		maxSize: maxPerBucket,
	}
}

// Get returns a zeroed width×height buffer anchored at the origin.
// Non-positive dimensions yield nil.
func (p *Pool) Get(width, height int) *image.RGBA {
	if width <= 0 || height <= 0 {
		return nil
	}
	key := image.Point{X: width, Y: height}

	p.mu.Lock()
	bucket := p.buckets[key]
	if n := len(bucket); n > 0 {
		buf := bucket[n-1]
		p.buckets[key] = bucket[:n-1]
		p.mu.Unlock()
		clear(buf.Pix)
		return buf
	}
	p.mu.Unlock()

	return image.NewRGBA(image.Rect(0, 0, width, height))
}

// Put returns a buffer to the pool. Nil buffers and buffers not anchored at
// the origin are dropped.
func (p *Pool) Put(buf *image.RGBA) {
	if buf == nil || buf.Rect.Min != (image.Point{}) || buf.Rect.Empty() {
		return
	}
	key := buf.Rect.Size()

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, buf)
}

// Len reports how many buffers are currently pooled.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, b := range p.buckets {
		n += len(b)
	}
	return n
}

var defaultPool = NewPool(4)

// DefaultPool returns the package-level pool shared by managers that are not
// given one explicitly.
func DefaultPool() *Pool {
	return defaultPool
}
