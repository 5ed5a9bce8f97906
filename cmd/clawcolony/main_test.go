package main

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"clawcolony/internal/config"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Sim.Seed = []config.SeedColony{{
		Name:   "W1N1",
		SpawnX: 25,
		SpawnY: 25,
		Nodes:  []config.SeedNode{{X: 20, Y: 25}, {X: 30, Y: 25}},
	}}
	return cfg
}

func TestBuildApplication_InMemoryRunsTicks(t *testing.T) {
	ctx := context.Background()
	a, err := buildApplication(ctx, testConfig(), zap.NewNop())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer a.Close()

	if got := a.loop.Runner.Colonies; len(got) != 1 || got[0] != "W1N1" {
		t.Fatalf("managed colonies = %v, want seeded W1N1", got)
	}
	for i := 0; i < 5; i++ {
		report := a.loop.Once(ctx, zap.NewNop())
		if report.Colonies[0].Err != nil {
			t.Fatalf("tick %d: %v", i, report.Colonies[0].Err)
		}
	}
	roster, _ := a.host.Roster(ctx)
	if len(roster) == 0 || len(roster) > 5 {
		t.Fatalf("roster = %d after 5 ticks", len(roster))
	}
	if tick, _ := a.host.Tick(ctx); tick != 5 {
		t.Fatalf("host tick = %d, want 5", tick)
	}
}

func TestNewLogger_Levels(t *testing.T) {
	l, err := newLogger(config.LogConfig{Level: "warn"}, false)
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	if l.Core().Enabled(zap.InfoLevel) {
		t.Fatalf("info should be disabled at warn")
	}
	l, _ = newLogger(config.LogConfig{Level: "warn"}, true)
	if !l.Core().Enabled(zap.DebugLevel) {
		t.Fatalf("verbose should enable debug")
	}
	if _, err := newLogger(config.LogConfig{Level: "loud"}, false); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
