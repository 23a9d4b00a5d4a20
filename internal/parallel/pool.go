// Package parallel runs independent glyph jobs on a fixed set of goroutines
// and hands results back in submission order.
package parallel

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a set of goroutines with one queue each.
//
// Jobs are dealt round-robin to the worker queues. A worker whose queue runs
// dry steals from its neighbours, which keeps all workers busy when some
// cells take much longer to trace than others.
//
// WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()
	own := p.queues[id]
	for {
		select {
		case <-p.done:
			drain(own)
			return
		case job := <-own:
			run(job)
			continue
		default:
		}

		if job := p.steal(id); job != nil {
			job()
			continue
		}
		select {
		case <-p.done:
			drain(own)
			return
		case job := <-own:
			run(job)
		}
	}
}

func run(job func()) {
	if job != nil {
		job()
	}
}

// drain runs whatever is left in a queue after Close.
func drain(queue chan func()) {
	for {
		select {
		case job := <-queue:
			run(job)
		default:
			return
		}
	}
}

// steal takes one job from another worker's queue, or returns nil.
func (p *WorkerPool) steal(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case job := <-p.queues[i]:
			return job
		default:
		}
	}
	return nil
}

// ExecuteAll runs every job and waits for all of them. Jobs that cannot be
// queued because the pool is closing are skipped. A closed pool does nothing.
func (p *WorkerPool) ExecuteAll(jobs []func()) {
	if len(jobs) == 0 || !p.running.Load() {
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(jobs))
	for i, job := range jobs {
		wrapped := func() {
			defer wg.Done()
			job()
		}
		select {
		case p.queues[i%p.workers] <- wrapped:
		case <-p.done:
			wg.Done()
		}
	}
	wg.Wait()
}

// Close stops accepting jobs, finishes the queued ones and stops the
// workers. Close is safe to call more than once.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers.
func (p *WorkerPool) Workers() int { return p.workers }

// IsRunning reports whether the pool still accepts jobs.
func (p *WorkerPool) IsRunning() bool { return p.running.Load() }

// Map applies fn to every item on the pool and returns the results in item
// order. After the first error, or once ctx is done, remaining items are
// skipped and that error is returned.
func Map[T, R any](ctx context.Context, p *WorkerPool, items []T, fn func(ctx context.Context, i int, item T) (R, error)) ([]R, error) {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results, ctx.Err()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		once     sync.Once
		firstErr error
		finished atomic.Int64
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	jobs := make([]func(), len(items))
	for i, item := range items {
		jobs[i] = func() {
			if ctx.Err() != nil {
				fail(ctx.Err())
				return
			}
			r, err := fn(ctx, i, item)
			if err != nil {
				fail(err)
				return
			}
			results[i] = r
			finished.Add(1)
		}
	}
	p.ExecuteAll(jobs)

	if firstErr != nil {
		return nil, firstErr
	}
	if int(finished.Load()) != len(items) {
		return nil, ErrClosed
	}
	return results, nil
}
