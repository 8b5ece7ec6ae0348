package pipeline

import (
	"runtime"
	"sync"
)

// workerPool bounds the concurrency of batch scans.
type workerPool struct {
	workers  int
	jobQueue chan func()
	once     sync.Once
}

func newWorkerPool(workers int) *workerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &workerPool{
		workers:  workers,
		jobQueue: make(chan func(), workers*2),
	}
}

// Start launches the workers. Safe to call more than once.
func (wp *workerPool) Start() {
	wp.once.Do(func() {
		for i := 0; i < wp.workers; i++ {
			go wp.worker()
		}
	})
}

func (wp *workerPool) worker() {
	for job := range wp.jobQueue {
		job()
	}
}

// Submit queues a job; blocks when the queue is full.
func (wp *workerPool) Submit(job func()) {
	wp.jobQueue <- job
}

// Close shuts the pool down once all queued jobs are drained.
func (wp *workerPool) Close() {
	close(wp.jobQueue)
}
