package api

import (
	"context"
	"sync"

	"github.com/findyi/opensearch-go/internal/shardqueue"
)

// mockExec is a test helper that records submitted shards and runs jobs inline.
type mockExec struct {
	mu    sync.Mutex
	n     int
	calls []string
}

func (m *mockExec) Submit(ctx context.Context, shard string, job shardqueue.Job) error {
	m.mu.Lock()
	m.n++
	m.calls = append(m.calls, shard)
	m.mu.Unlock()
	return job.Run(ctx)
}

// deferredExec queues jobs with their submit context and runs them on demand.
type deferredExec struct {
	mu   sync.Mutex
	jobs []func() error
}

func (d *deferredExec) Submit(ctx context.Context, _ string, job shardqueue.Job) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.jobs = append(d.jobs, func() error { return job.Run(ctx) })
	return nil
}

func (d *deferredExec) runAll() error {
	d.mu.Lock()
	jobs := d.jobs
	d.jobs = nil
	d.mu.Unlock()
	for _, run := range jobs {
		if err := run(); err != nil {
			return err
		}
	}
	return nil
}
