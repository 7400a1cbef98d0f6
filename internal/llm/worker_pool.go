package llm

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

var (
	// ErrPoolSaturated is returned when the task queue is full. Callers get
	// an immediate failure instead of queueing behind the model indefinitely.
	ErrPoolSaturated = errors.New("inference pool saturated")

	// ErrPoolClosed is returned for submissions after Shutdown.
	ErrPoolClosed = errors.New("inference pool is shut down")
)

// Generator is the blocking completion call executed by the workers.
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type job struct {
	ctx    context.Context
	prompt string
	result chan jobResult
}

type jobResult struct {
	content string
	err     error
}

// WorkerPool runs blocking model inference on a fixed set of goroutines so
// request handlers never execute the model call themselves.
type WorkerPool struct {
	generator   Generator
	workerCount int
	taskQueue   chan job
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	logger      *slog.Logger
	closed      bool
	closeMux    sync.Mutex
}

// NewWorkerPool creates a pool with the specified number of workers and
// queue capacity.
func NewWorkerPool(generator Generator, workerCount, queueSize int, logger *slog.Logger) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerPool{
		generator:   generator,
		workerCount: workerCount,
		taskQueue:   make(chan job, queueSize),
		ctx:         ctx,
		cancel:      cancel,
		logger:      logger,
	}
}

// Start launches worker goroutines
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
	wp.logger.Info("inference pool started", "workers", wp.workerCount, "queue_size", cap(wp.taskQueue))
}

// Generate submits a prompt and waits for the typed result. The caller's
// context bounds both the queue wait and the inference itself.
func (wp *WorkerPool) Generate(ctx context.Context, prompt string) (string, error) {
	j := job{
		ctx:    ctx,
		prompt: prompt,
		result: make(chan jobResult, 1),
	}

	select {
	case wp.taskQueue <- j:
	case <-wp.ctx.Done():
		return "", ErrPoolClosed
	case <-ctx.Done():
		return "", ctx.Err()
	default:
		return "", ErrPoolSaturated
	}

	select {
	case res := <-j.result:
		return res.content, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	case <-wp.ctx.Done():
		return "", ErrPoolClosed
	}
}

// Shutdown cancels all workers and waits for them to exit.
func (wp *WorkerPool) Shutdown() {
	wp.logger.Info("inference pool shutting down")
	wp.closeMux.Lock()
	if !wp.closed {
		wp.cancel()
		wp.closed = true
	}
	wp.closeMux.Unlock()
	wp.wg.Wait()
}

// worker processes jobs from the queue
func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	for {
		select {
		case j := <-wp.taskQueue:
			if j.ctx.Err() != nil {
				// caller already gave up while the job sat in the queue
				j.result <- jobResult{err: j.ctx.Err()}
				continue
			}
			content, err := wp.generator.Complete(j.ctx, j.prompt)
			if err != nil {
				wp.logger.Error("inference failed", "worker", id, "error", err)
			}
			j.result <- jobResult{content: content, err: err}

		case <-wp.ctx.Done():
			return
		}
	}
}
