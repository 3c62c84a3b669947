// Package shardqueue runs asynchronous document pushes on a sharded work
// queue that keeps FIFO order per key (app/table) while pushes for
// different tables proceed in parallel.
//
// Callers must not invoke Submit concurrently for the same key; FIFO
// ordering relies on that external serialisation.
package shardqueue

import (
	"context"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/findyi/opensearch-go/internal/errors"
	"github.com/rs/zerolog/log"
)

type queuedJob struct {
	ctx context.Context
	job Job
}

// ShardExecutor executes Jobs on worker goroutines partitioned by a stable
// hash of the key.
type ShardExecutor struct {
	cfg    Config
	queues []chan queuedJob // len == cfg.Shards

	done   chan struct{} // closed in Stop()
	closed uint32        // 0 → running, 1 → closed

	wg sync.WaitGroup
}

// NewShardExecutor applies zero-value defaults and starts the shard workers.
func NewShardExecutor(cfg Config) *ShardExecutor {
	cfg = cfg.withDefaults()

	p := &ShardExecutor{
		cfg:    cfg,
		queues: make([]chan queuedJob, cfg.Shards),
		done:   make(chan struct{}),
	}
	for i := 0; i < cfg.Shards; i++ {
		ch := make(chan queuedJob, cfg.QueueSize)
		p.queues[i] = ch
		p.wg.Add(1)
		go p.runWorker(i, ch)
	}
	return p
}

// Submit enqueues job for the shard derived from key.
//
//   - Returns ErrExecutorClosed if the executor is stopped.
//   - Returns a *QueueFullError (errors.Is ErrQueueFull) if the shard is
//     still full after EnqueueTimeout.
//   - Returns ctx.Err() if ctx is cancelled first.
func (p *ShardExecutor) Submit(ctx context.Context, key string, job Job) error {
	if atomic.LoadUint32(&p.closed) == 1 {
		return ErrExecutorClosed
	}
	select {
	case <-p.done:
		return ErrExecutorClosed
	default:
	}

	shard := p.shardFor(key)
	ch := p.queues[shard]

	timer := time.NewTimer(p.cfg.EnqueueTimeout)
	defer timer.Stop()

	select {
	case ch <- queuedJob{ctx: ctx, job: job}:
		submissionsTotal.WithLabelValues(labelFor(shard)).Inc()
		return nil
	case <-p.done:
		return ErrExecutorClosed
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		queueFullTotal.WithLabelValues(labelFor(shard)).Inc()
		return &QueueFullError{Shard: shard, Length: len(ch), Capacity: cap(ch)}
	}
}

// Barrier waits until every job submitted for key before the call has run.
func (p *ShardExecutor) Barrier(ctx context.Context, key string) error {
	done := make(chan struct{})
	j := JobFunc(func(context.Context) error {
		close(done)
		return nil
	})
	if err := p.Submit(ctx, key, j); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Stop drains every queue, waits for the workers and returns. Idempotent.
func (p *ShardExecutor) Stop() {
	if !atomic.CompareAndSwapUint32(&p.closed, 0, 1) {
		return
	}
	log.Debug().Int("shards", p.cfg.Shards).Msg("shardqueue: stopping executor")
	close(p.done)
	p.wg.Wait()
	log.Debug().Msg("shardqueue: executor stopped, all queues drained")
}

// Close lets ShardExecutor satisfy io.Closer.
func (p *ShardExecutor) Close() error {
	p.Stop()
	return nil
}

// ------------------------- internals -------------------------

func (p *ShardExecutor) runWorker(idx int, ch <-chan queuedJob) {
	defer p.wg.Done()

	label := labelFor(idx)
	for {
		select {
		case qj := <-ch:
			queueDepth.WithLabelValues(label).Set(float64(len(ch)))
			if qj.job == nil {
				continue
			}
			if !p.runWithRetry(label, qj) {
				// Stopped mid-backoff: the job gets one last attempt in drain order.
				p.finish(p.attempt(label, qj))
				p.drain(idx, label, ch)
				return
			}
		case <-p.done:
			p.drain(idx, label, ch)
			return
		}
	}
}

// attempt runs the job once. A panic becomes a *PanicError so one bad push
// cannot take its shard down.
func (p *ShardExecutor) attempt(label string, qj queuedJob) (err error) {
	start := time.Now()
	defer func() {
		runDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
		if r := recover(); r != nil {
			log.Error().Str("shard", label).Interface("panic", r).Msg("shardqueue: job panic")
			err = &PanicError{Value: r}
		}
	}()
	return qj.job.Run(qj.ctx)
}

// runWithRetry runs one job, retrying recoverable failures with exponential
// backoff. It returns false when the executor stopped mid-backoff.
func (p *ShardExecutor) runWithRetry(label string, qj queuedJob) bool {
	if err := qj.ctx.Err(); err != nil {
		p.finish(err)
		return true
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = p.cfg.BaseBackoff
	policy.Multiplier = 2
	policy.MaxInterval = p.cfg.MaxInterval
	policy.MaxElapsedTime = 0
	policy.Reset()

	for n := 1; ; n++ {
		err := p.attempt(label, qj)
		switch {
		case err == nil:
			return true
		case errors.IsIrrecoverable(err), isPanic(err), n >= p.cfg.MaxAttempts:
			p.finish(err)
			return true
		}

		wait := policy.NextBackOff()
		log.Debug().Err(err).Str("shard", label).Int("attempt", n).Dur("wait", wait).Msg("shardqueue: retrying job")
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-p.done:
			timer.Stop()
			return false
		case <-qj.ctx.Done():
			timer.Stop()
			p.finish(qj.ctx.Err())
			return true
		}
	}
}

// drain gives every job still queued a single attempt, in FIFO order.
func (p *ShardExecutor) drain(idx int, label string, ch <-chan queuedJob) {
	n := 0
	for {
		select {
		case qj := <-ch:
			if qj.job == nil {
				continue
			}
			p.finish(p.attempt(label, qj))
			n++
		default:
			queueDepth.WithLabelValues(label).Set(0)
			if n > 0 {
				log.Debug().Int("worker", idx).Int("jobs", n).Msg("shardqueue: drained jobs")
			}
			return
		}
	}
}

// finish reports a job's final error to the configured handler, shielding
// the worker from handler panics.
func (p *ShardExecutor) finish(err error) {
	if err == nil || p.cfg.ErrorHandler == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("shardqueue: error handler panic")
		}
	}()
	p.cfg.ErrorHandler(err)
}

func (p *ShardExecutor) shardFor(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(p.cfg.Shards))
}
