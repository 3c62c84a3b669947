package opensearch

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/findyi/opensearch-go/internal/job"
)

func TestAwaitConsistency(t *testing.T) {
	c, err := New("http://example.com", "id", "secret")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer func() { _ = c.Close() }()

	var ranFirst int32

	// enqueue a dummy job then barrier
	key := job.Key("app", "main")
	if err := c.exec.Submit(context.Background(), key, job.Push(key, 1, func(ctx context.Context) error {
		time.Sleep(30 * time.Millisecond)
		atomic.StoreInt32(&ranFirst, 1)
		return nil
	})); err != nil {
		t.Fatalf("submit: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	start := time.Now()
	if err := c.AwaitConsistency(ctx, "app", "main"); err != nil {
		t.Fatalf("await consistency: %v", err)
	}
	elapsed := time.Since(start)

	if atomic.LoadInt32(&ranFirst) == 0 {
		t.Fatalf("barrier returned before previous job executed")
	}

	if elapsed < 25*time.Millisecond {
		t.Fatalf("awaitConsistency returned too quickly: %v", elapsed)
	}
}

func TestAwaitConsistency_CanceledContext(t *testing.T) {
	c := &Client{exec: &stubExec{}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.AwaitConsistency(ctx, "app", "main"); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
