package renderer

import (
	"fmt"
	"math/rand"
	"runtime"
	"sync"

	"github.com/df07/go-csg-pathtracer/pkg/core"
)

// TraceFunc computes the color of pixel (x, y). It must be safe to call from
// several goroutines, each passing its own random source.
type TraceFunc func(x, y int, random *rand.Rand) core.Color

// PixelBatch is the result of one worker iteration
type PixelBatch struct {
	WorkerID int
	Results  []PixelResult
	Err      error // Set when the worker failed; Results is then empty
}

// WorkerError reports a worker that panicked while tracing
type WorkerError struct {
	WorkerID int
	Value    interface{}
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker %d failed: %v", e.WorkerID, e.Value)
}

// WorkerPool drains a PixelQueue with a fixed number of goroutines
type WorkerPool struct {
	queue       *PixelQueue
	resultQueue chan PixelBatch
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker traces batches of pixels with its own random source
type Worker struct {
	ID          int
	batchSize   int
	trace       TraceFunc
	random      *rand.Rand
	queue       *PixelQueue
	resultQueue chan PixelBatch
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// Worker i is seeded with seed+i so renders with the same seed and worker
// count trace the same pixels with the same random streams.
func NewWorkerPool(queue *PixelQueue, trace TraceFunc, numWorkers, batchSize int, seed int64) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if batchSize <= 0 {
		batchSize = 1
	}

	wp := &WorkerPool{
		queue:       queue,
		resultQueue: make(chan PixelBatch, numWorkers),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			batchSize:   batchSize,
			trace:       trace,
			random:      rand.New(rand.NewSource(seed + int64(i))),
			queue:       queue,
			resultQueue: wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers. The results channel is closed once every worker has exited.
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}

	go func() {
		wp.wg.Wait()
		close(wp.resultQueue)
	}()
}

// Results returns the channel batches arrive on, in no particular order across workers
func (wp *WorkerPool) Results() <-chan PixelBatch {
	return wp.resultQueue
}

// Wait blocks until every worker has exited
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()
	defer func() {
		if r := recover(); r != nil {
			w.resultQueue <- PixelBatch{WorkerID: w.ID, Err: &WorkerError{WorkerID: w.ID, Value: r}}
		}
	}()

	for {
		batch := w.queue.PopBatch(w.batchSize)
		if len(batch) == 0 {
			return
		}

		results := make([]PixelResult, len(batch))
		for i, p := range batch {
			results[i] = PixelResult{X: p.X, Y: p.Y, Color: w.trace(p.X, p.Y, w.random)}
		}

		w.resultQueue <- PixelBatch{WorkerID: w.ID, Results: results}
	}
}
