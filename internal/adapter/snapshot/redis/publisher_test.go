package redissnapshot

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"clawcolony/internal/domain/colony"
)

func TestPublisher_RoundTrip(t *testing.T) {
	url := os.Getenv("CLAWCOLONY_REDIS_URL")
	if url == "" {
		t.Skip("CLAWCOLONY_REDIS_URL is required for integration test")
	}
	rdb, err := NewClient(url)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	defer rdb.Close()

	ctx := context.Background()
	stream := "clawcolony.queue.it"
	_ = rdb.Del(ctx, stream, QueueKey("it-colony")).Err()

	p := NewPublisher(rdb, Config{Stream: stream})
	entries := []colony.QueueEntry{
		{Priority: colony.PriorityLocalMiner, Role: colony.RoleMiner, Archetype: colony.ArchetypeMiner, NodeID: "n1"},
		{Priority: colony.PriorityGeneric, Role: colony.RoleForager, Archetype: colony.ArchetypeGeneralist},
	}
	if err := p.Publish(ctx, "it-colony", 77, entries); err != nil {
		t.Fatalf("publish: %v", err)
	}
	b, err := rdb.Get(ctx, QueueKey("it-colony")).Bytes()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var got payload
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Colony != "it-colony" || got.Tick != 77 {
		t.Fatalf("header = %s/%d, want it-colony/77", got.Colony, got.Tick)
	}
	if diff := cmp.Diff(entries, got.Entries); diff != "" {
		t.Fatalf("entries (-want +got):\n%s", diff)
	}
	if n, err := rdb.XLen(ctx, stream).Result(); err != nil || n != 1 {
		t.Fatalf("stream length = %d err=%v", n, err)
	}
}

func TestNewPublisher_Defaults(t *testing.T) {
	p := NewPublisher(nil, Config{})
	if p.cfg.Stream != defaultStream || p.cfg.TTL != defaultTTL || p.cfg.MaxLen != defaultMaxLen {
		t.Fatalf("unexpected defaults %+v", p.cfg)
	}
}
