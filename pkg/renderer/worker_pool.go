package renderer

import (
	"math/rand"
	"runtime"
	"sync"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/df07/go-whitted-raytracer/pkg/tracer"
)

// RowTask asks a worker to trace one buffer row
type RowTask struct {
	Row int
}

// RowResult reports a finished row
type RowResult struct {
	Row     int
	Pixels  int
	Samples int64
	Stats   tracer.Stats
}

// WorkerPool manages parallel row rendering
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker traces rows with its own tracer and medium stack
type Worker struct {
	ID          int
	raytracer   *Raytracer
	tracer      *tracer.Tracer
	taskQueue   chan RowTask
	resultQueue chan RowResult
}

// DefaultWorkers returns the number of logical CPUs
func DefaultWorkers() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// NewWorkerPool creates a worker pool for the raytracer's current scene and buffer
func NewWorkerPool(rt *Raytracer, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = DefaultWorkers()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, numWorkers),
		resultQueue: make(chan RowResult, rt.height),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			raytracer:   rt,
			tracer:      rt.newTracer(),
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop closes the task queue, waits for the workers and closes the result queue
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// GetResult retrieves a completed row
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop. Rows write disjoint parts of the buffer.
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	rt := w.raytracer
	for task := range w.taskQueue {
		w.tracer.ResetStats()

		// Seeding per row keeps jittered output independent of the worker count
		random := rand.New(rand.NewSource(rt.config.Seed + int64(task.Row)))

		result := RowResult{Row: task.Row}
		for x := 0; x < rt.width; x++ {
			result.Samples += int64(rt.tracePixel(w.tracer, random, x, task.Row))
			result.Pixels++
		}
		result.Stats = w.tracer.Stats()

		w.resultQueue <- result
	}
}
