package renderer

import (
	"sync"

	"github.com/df07/go-csg-pathtracer/pkg/core"
)

// Pixel is one unit of render work
type Pixel struct {
	X, Y int
}

// PixelResult is a traced pixel color
type PixelResult struct {
	X, Y  int
	Color core.Color
}

// PixelQueue is the shared pool of pixels still to be rendered.
// Workers take batches from the tail under a lock and trace them unlocked.
type PixelQueue struct {
	mu     sync.Mutex
	pixels []Pixel
}

// NewPixelQueue creates a queue holding every pixel of a width×height image
func NewPixelQueue(width, height int) *PixelQueue {
	pixels := make([]Pixel, 0, max(0, width*height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pixels = append(pixels, Pixel{X: x, Y: y})
		}
	}
	return &PixelQueue{pixels: pixels}
}

// PopBatch removes up to n pixels from the tail of the queue.
// An empty result means the queue is drained.
func (q *PixelQueue) PopBatch(n int) []Pixel {
	q.mu.Lock()
	defer q.mu.Unlock()

	if n <= 0 || len(q.pixels) == 0 {
		return nil
	}

	start := max(0, len(q.pixels)-n)
	batch := make([]Pixel, len(q.pixels)-start)
	copy(batch, q.pixels[start:])
	q.pixels = q.pixels[:start]
	return batch
}

// Len returns the number of pixels not yet handed out
func (q *PixelQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pixels)
}

// Drain discards all remaining pixels and returns how many there were
func (q *PixelQueue) Drain() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.pixels)
	q.pixels = nil
	return n
}
