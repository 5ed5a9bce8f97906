package redissnapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"clawcolony/internal/domain/colony"
)

const (
	keyPrefix     = "clawcolony:queue:"
	defaultStream = "clawcolony.queue"
	defaultTTL    = 5 * time.Minute
	defaultMaxLen = 1000
)

type Config struct {
	Stream string
	TTL    time.Duration
	MaxLen int64
}

// Publisher mirrors each colony's queue snapshot to a key holding the
// latest entries and appends it to a capped stream for consumers.
type Publisher struct {
	rdb *redis.Client
	cfg Config
}

func NewClient(url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opt), nil
}

func NewPublisher(rdb *redis.Client, cfg Config) Publisher {
	if cfg.Stream == "" {
		cfg.Stream = defaultStream
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if cfg.MaxLen <= 0 {
		cfg.MaxLen = defaultMaxLen
	}
	return Publisher{rdb: rdb, cfg: cfg}
}

type payload struct {
	Colony  string              `json:"colony"`
	Tick    int64               `json:"tick"`
	Entries []colony.QueueEntry `json:"entries"`
}

func QueueKey(colonyName string) string {
	return keyPrefix + colonyName
}

func (p Publisher) Publish(ctx context.Context, colonyName string, tick int64, entries []colony.QueueEntry) error {
	if entries == nil {
		entries = []colony.QueueEntry{}
	}
	b, err := json.Marshal(payload{Colony: colonyName, Tick: tick, Entries: entries})
	if err != nil {
		return fmt.Errorf("encode queue snapshot: %w", err)
	}
	pipe := p.rdb.TxPipeline()
	pipe.Set(ctx, QueueKey(colonyName), b, p.cfg.TTL)
	pipe.XAdd(ctx, &redis.XAddArgs{
		Stream: p.cfg.Stream,
		MaxLen: p.cfg.MaxLen,
		Approx: true,
		Values: map[string]interface{}{
			"colony":  colonyName,
			"tick":    tick,
			"entries": len(entries),
			"payload": string(b),
		},
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish queue snapshot: %w", err)
	}
	return nil
}
