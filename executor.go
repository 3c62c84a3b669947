package opensearch

import (
	"context"

	"github.com/findyi/opensearch-go/internal/shardqueue"
	"github.com/rs/zerolog/log"
)

// executor abstracts the internal async job runner used by PushAsync.
type executor interface {
	Submit(context.Context, string, shardqueue.Job) error
	Barrier(context.Context, string) error
	Stop()
}

// newDefaultExecutor constructs the shardqueue executor. A nil cfg reads
// tunables from OPENSEARCH_SQ_*.
func newDefaultExecutor(cfg *ExecutorConfig) (*shardqueue.ShardExecutor, error) {
	var c ExecutorConfig
	if cfg != nil {
		c = *cfg
	} else {
		loaded, err := shardqueue.LoadConfig()
		if err != nil {
			return nil, err
		}
		c = loaded
	}
	c.ErrorHandler = pushFailureHandler(c.ErrorHandler)
	return shardqueue.NewShardExecutor(c), nil
}

// pushFailureHandler records a failed async push before handing the error
// to next.
func pushFailureHandler(next func(error)) func(error) {
	return func(err error) {
		pushesFailedTotal.Inc()
		log.Error().Err(err).Msg("async push failed")
		if next != nil {
			next(err)
		}
	}
}
