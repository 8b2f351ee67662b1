package worker

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofhir/terminology"
)

// Option configures a Pool.
type Option func(*Pool)

// WithWorkers sets the number of worker goroutines. Non-positive values
// default to runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(p *Pool) {
		p.workers = n
	}
}

// WithMetrics records each completed job into m.
func WithMetrics(m *terminology.Metrics) Option {
	return func(p *Pool) {
		p.metrics = m
	}
}

// Pool checks candidate codes against one provider using a pool of worker
// goroutines.
type Pool struct {
	workers  int
	provider terminology.Provider
	metrics  *terminology.Metrics

	jobs    chan Job
	results chan *JobResult
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	closed  atomic.Bool
}

// NewPool creates a pool over the given provider and starts its workers.
func NewPool(provider terminology.Provider, opts ...Option) *Pool {
	p := &Pool{provider: provider}
	for _, opt := range opts {
		opt(p)
	}
	if p.workers <= 0 {
		p.workers = runtime.NumCPU()
	}

	p.ctx, p.cancel = context.WithCancel(context.Background())
	p.jobs = make(chan Job, p.workers*2)
	p.results = make(chan *JobResult, p.workers*2)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go p.worker()
	}
	return p
}

// Submit queues a job, blocking while the queue is full. It returns false
// once the pool is closed.
func (p *Pool) Submit(job Job) bool {
	if p.closed.Load() {
		return false
	}
	select {
	case <-p.ctx.Done():
		return false
	case p.jobs <- job:
		return true
	}
}

// Results returns the channel job results are delivered on. It is closed
// after Close once every worker has drained.
func (p *Pool) Results() <-chan *JobResult {
	return p.results
}

// Close stops accepting jobs, waits for in-flight work, and closes the
// results channel. Callers must drain Results concurrently or beforehand.
func (p *Pool) Close() {
	if p.closed.Swap(true) {
		return
	}
	close(p.jobs)
	p.wg.Wait()
	p.cancel()
	close(p.results)
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		p.results <- p.check(job)
		p.metrics.RecordBatchJob()
	}
}

func (p *Pool) check(job Job) *JobResult {
	start := time.Now()
	res := &JobResult{ID: job.ID, Code: job.Code}

	var (
		c   terminology.Concept
		msg string
		err error
	)
	if job.Filter != nil {
		c, msg, err = p.provider.FilterLocate(p.ctx, job.Filter, job.Code)
	} else {
		c, msg, err = p.provider.Locate(p.ctx, job.Code)
	}

	res.Concept = c
	res.Message = msg
	res.Err = err
	res.Duration = time.Since(start)
	return res
}

// CheckBatch checks codes against provider and aggregates the outcomes.
// Individually invalid codes do not stop the batch. The context bounds
// submission; already queued jobs run to completion.
func CheckBatch(ctx context.Context, provider terminology.Provider, codes []string, opts ...Option) *BatchResult {
	pool := NewPool(provider, opts...)

	go func() {
		defer pool.Close()
		for _, code := range codes {
			select {
			case <-ctx.Done():
				return
			default:
			}
			if !pool.Submit(Job{Code: code}) {
				return
			}
		}
	}()

	batch := &BatchResult{Total: len(codes)}
	for res := range pool.Results() {
		batch.Results = append(batch.Results, res)
		switch {
		case res.Err != nil:
			batch.Failed++
		case res.Valid():
			batch.Valid++
		default:
			batch.Invalid++
		}
	}
	return batch
}
