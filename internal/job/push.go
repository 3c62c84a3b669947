// Package job builds the units of work the shard executor runs for async
// document pushes.
package job

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

// ErrNilJobFunc is returned when a PushJob has no send function.
var ErrNilJobFunc = errors.New("nil job func")

// PushJob sends one encoded document batch. The executor may run it more
// than once; each run is one attempt.
type PushJob struct {
	Key   string
	Items int

	send     func(context.Context) error
	attempts atomic.Int32
}

// Push returns the job that delivers a batch of items for key via send.
func Push(key string, items int, send func(context.Context) error) *PushJob {
	return &PushJob{Key: key, Items: items, send: send}
}

// Attempts returns how many times the job has run.
func (p *PushJob) Attempts() int { return int(p.attempts.Load()) }

func (p *PushJob) Run(ctx context.Context) error {
	n := p.attempts.Add(1)
	if p.send == nil {
		return ErrNilJobFunc
	}
	if err := p.send(ctx); err != nil {
		log.Debug().Err(err).Str("key", p.Key).Int32("attempt", n).Int("items", p.Items).Msg("push attempt failed")
		return fmt.Errorf("push %s attempt %d: %w", p.Key, n, err)
	}
	log.Debug().Str("key", p.Key).Int32("attempt", n).Int("items", p.Items).Msg("push delivered")
	return nil
}
