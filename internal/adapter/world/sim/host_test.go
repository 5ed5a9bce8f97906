package sim

import (
	"context"
	"errors"
	"testing"

	"clawcolony/internal/adapter/repo/memory"
	"clawcolony/internal/app/commitment"
	"clawcolony/internal/app/ports"
	"clawcolony/internal/domain/colony"
)

func starter() colony.Colony {
	return colony.Colony{
		Name:       "W1N1",
		Controller: &colony.Controller{Level: 1, ProgressTotal: 200, Owned: true},
		Structures: []colony.Structure{
			{ID: "spawn-1", Kind: colony.StructureSpawn, Pos: colony.Position{X: 10, Y: 10}, Hits: 5000, HitsMax: 5000, Energy: 300, EnergyCapacity: 300},
		},
		Nodes: []colony.ResourceNode{
			{ID: "n1", Pos: colony.Position{X: 14, Y: 10}, Energy: 1000, EnergyCapacity: 1000},
		},
	}
}

type memTickStore struct {
	tick  int64
	saved bool
}

func (s *memTickStore) Get(_ context.Context) (int64, bool, error) {
	return s.tick, s.saved, nil
}

func (s *memTickStore) Save(_ context.Context, tick int64) error {
	s.tick, s.saved = tick, true
	return nil
}

func TestHost_OneProductionPerTick(t *testing.T) {
	ctx := context.Background()
	h := NewHost(Config{TicksPerPart: -1})
	h.AddColony(starter())
	loadout := colony.Compose(colony.ArchetypeGeneralist, 300)

	id, err := h.BeginProduction(ctx, ports.ProductionCommand{Colony: "W1N1", Name: "a", Loadout: loadout})
	if err != nil || id == 0 {
		t.Fatalf("first production: %d %v", id, err)
	}
	c, _ := h.Colony(ctx, "W1N1")
	if c.EnergyAvailable != 300-loadout.Cost() {
		t.Fatalf("energy = %d, want %d", c.EnergyAvailable, 300-loadout.Cost())
	}
	if _, err := h.BeginProduction(ctx, ports.ProductionCommand{Colony: "W1N1", Name: "b", Loadout: colony.Loadout{colony.PartMove}}); !errors.Is(err, ports.ErrProductionRejected) {
		t.Fatalf("second production in one tick: %v", err)
	}
	if _, err := h.Advance(ctx); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if _, err := h.BeginProduction(ctx, ports.ProductionCommand{Colony: "W1N1", Name: "c", Loadout: colony.Loadout{colony.PartMove}}); err != nil {
		t.Fatalf("production after advance: %v", err)
	}
	if _, err := h.BeginProduction(ctx, ports.ProductionCommand{Colony: "nowhere", Loadout: colony.Loadout{colony.PartMove}}); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("unknown colony: %v", err)
	}
}

func TestHost_RejectsUnaffordable(t *testing.T) {
	h := NewHost(Config{})
	h.AddColony(starter())
	_, err := h.BeginProduction(context.Background(), ports.ProductionCommand{Colony: "W1N1", Loadout: colony.Compose(colony.ArchetypeMiner, 600)})
	if !errors.Is(err, ports.ErrProductionRejected) {
		t.Fatalf("expected rejection, got %v", err)
	}
}

func TestHost_AdvanceDecaysAndPersistsTick(t *testing.T) {
	ctx := context.Background()
	store := &memTickStore{tick: 41, saved: true}
	h := NewHost(Config{Lifetime: 2, TickStore: store})
	if err := h.Restore(ctx); err != nil {
		t.Fatalf("restore: %v", err)
	}
	h.AddColony(starter())
	h.AddWorker(colony.Worker{Colony: "W1N1"}, colony.Loadout{colony.PartWork, colony.PartCarry, colony.PartMove})

	for i := 0; i < 2; i++ {
		if _, err := h.Advance(ctx); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
	roster, _ := h.Roster(ctx)
	if len(roster) != 0 {
		t.Fatalf("expired worker still listed: %+v", roster)
	}
	if tick, _ := h.Tick(ctx); tick != 43 || store.tick != 43 {
		t.Fatalf("tick = %d stored %d, want 43", tick, store.tick)
	}
}

func TestHost_HarvestNeedsRange(t *testing.T) {
	ctx := context.Background()
	h := NewHost(Config{})
	h.AddColony(starter())
	id := h.AddWorker(colony.Worker{Colony: "W1N1", Pos: colony.Position{X: 10, Y: 10}}, colony.Loadout{colony.PartWork, colony.PartCarry, colony.PartMove})

	if out, _ := h.Harvest(ctx, id, "n1"); out != ports.ActionNotInRange {
		t.Fatalf("expected not in range, got %s", out)
	}
	for i := 0; i < 3; i++ {
		_ = h.MoveTo(ctx, id, colony.Position{X: 14, Y: 10})
	}
	if out, _ := h.Harvest(ctx, id, "n1"); out != ports.ActionOK {
		t.Fatalf("expected harvest, got %s", out)
	}
	roster, _ := h.Roster(ctx)
	if roster[0].Carried != 2 {
		t.Fatalf("carried = %d, want 2", roster[0].Carried)
	}
}

func TestExecutor_ForagerGathersAndDelivers(t *testing.T) {
	ctx := context.Background()
	h := NewHost(Config{})
	c := starter()
	c.Structures[0].Energy = 100
	h.AddColony(c)
	id := h.AddWorker(colony.Worker{Colony: "W1N1", Pos: colony.Position{X: 13, Y: 10}}, colony.Loadout{colony.PartWork, colony.PartCarry, colony.PartMove})

	store := memory.NewStore()
	mems := memory.NewWorkerMemoryRepo(store)
	_ = mems.Save(ctx, id, colony.NewMemory(colony.RoleForager, "W1N1"))
	exec := Executor{
		Host:      h,
		Actions:   h,
		Memories:  mems,
		TxManager: memory.NewTxManager(store),
		Committer: commitment.Committer{Actions: h},
	}

	for i := 0; i < 60; i++ {
		if err := exec.Run(ctx); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	mem, _ := mems.GetByWorkerID(ctx, id)
	if mem.ProviderID != "n1" {
		t.Fatalf("forager not committed to n1: %+v", mem.MemoryBase)
	}
	after, _ := h.Colony(ctx, "W1N1")
	if after.EnergyAvailable <= 100 {
		t.Fatalf("no energy delivered: %d", after.EnergyAvailable)
	}
}

func TestExecutor_HaulerKeepsCommitmentAndDropsVanishedContainer(t *testing.T) {
	ctx := context.Background()
	h := NewHost(Config{})
	c := starter()
	c.Structures = append(c.Structures,
		colony.Structure{ID: "store", Kind: colony.StructureStorage, Pos: colony.Position{X: 20, Y: 20}, Energy: 5000, EnergyCapacity: 10000},
		colony.Structure{ID: "box", Kind: colony.StructureContainer, Pos: colony.Position{X: 14, Y: 11}, Energy: 500, EnergyCapacity: 2000},
	)
	h.AddColony(c)
	loadout := colony.Loadout{colony.PartCarry, colony.PartMove}
	committed := h.AddWorker(colony.Worker{Colony: "W1N1", Pos: colony.Position{X: 19, Y: 20}}, loadout)
	orphaned := h.AddWorker(colony.Worker{Colony: "W1N1", Pos: colony.Position{X: 19, Y: 20}}, loadout)

	store := memory.NewStore()
	mems := memory.NewWorkerMemoryRepo(store)
	withStore := colony.NewMemory(colony.RoleHauler, "W1N1")
	withStore.FixedRole = true
	withStore.Hauler.ContainerID = "box"
	withStore.ProviderID = "store"
	_ = mems.Save(ctx, committed, withStore)
	gone := colony.NewMemory(colony.RoleHauler, "W1N1")
	gone.FixedRole = true
	gone.Hauler.ContainerID = "box-gone"
	_ = mems.Save(ctx, orphaned, gone)

	exec := Executor{
		Host:      h,
		Actions:   h,
		Memories:  mems,
		TxManager: memory.NewTxManager(store),
		Committer: commitment.Committer{Actions: h},
	}
	if err := exec.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}

	got, _ := mems.GetByWorkerID(ctx, committed)
	if got.ProviderID != "store" || got.AssignedContainer() != "box" {
		t.Fatalf("storage commitment overwritten: %+v", got.MemoryBase)
	}
	got, _ = mems.GetByWorkerID(ctx, orphaned)
	if got.AssignedContainer() != "" {
		t.Fatalf("vanished container kept: %q", got.AssignedContainer())
	}
	if got.ProviderID == "box-gone" {
		t.Fatalf("committed to a vanished container")
	}
}
