package production

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"clawcolony/internal/domain/colony"
)

func worker(id uint64, role colony.Role, home string, fixed bool) colony.Worker {
	m := colony.NewMemory(role, home)
	m.FixedRole = fixed
	return colony.Worker{ID: id, Colony: home, Memory: m}
}

func miner(id uint64, home, node string) colony.Worker {
	w := worker(id, colony.RoleMiner, home, true)
	w.Memory.Miner.NodeID = node
	return w
}

func freshColony() colony.Colony {
	return colony.Colony{
		Name:            "W1N1",
		Owner:           "me",
		Tick:            10,
		EnergyAvailable: 300,
		EnergyCapacity:  300,
		Nodes: []colony.ResourceNode{
			{ID: "n1", Pos: colony.Position{X: 5, Y: 5}, Energy: 3000},
			{ID: "n2", Pos: colony.Position{X: 30, Y: 30}, Energy: 3000},
		},
	}
}

func TestBuild_FreshColonyQueuesMinersFirst(t *testing.T) {
	tuning := colony.DefaultTuning()
	c := freshColony()
	estimated := colony.NewDemandEstimator(tuning).Estimate(c, 0)
	if estimated != tuning.MinWorkers {
		t.Fatalf("estimate = %d, want %d", estimated, tuning.MinWorkers)
	}

	queue := NewQueueBuilder(tuning).Build(c, colony.NewColonyState(c.Name), NewRoster(nil), 0, estimated)
	colony.SortQueue(queue, nil)

	miners := 0
	seenGeneric := false
	for _, r := range queue {
		switch r.Role {
		case colony.RoleMiner:
			if seenGeneric {
				t.Fatalf("miner request after a generic one")
			}
			if r.Priority != colony.PriorityLocalMiner || !r.FixedRole {
				t.Fatalf("unexpected miner request %+v", r)
			}
			miners++
		case colony.RoleHauler:
			t.Fatalf("hauler requested before any miner exists")
		default:
			seenGeneric = true
			if r.FixedRole {
				t.Fatalf("generic request must be reassignable")
			}
		}
	}
	if miners != 2 {
		t.Fatalf("miner requests = %d, want 2", miners)
	}
	if got := len(queue) - miners; got != tuning.MinWorkers {
		t.Fatalf("generic requests = %d, want %d", got, tuning.MinWorkers)
	}
	if diff := cmp.Diff([]string{"n1", "n2"}, []string{queue[0].NodeID, queue[1].NodeID}); diff != "" {
		t.Fatalf("node bindings (-want +got):\n%s", diff)
	}
}

func TestBuild_HaulersOnceMinersExistWithContainers(t *testing.T) {
	tuning := colony.DefaultTuning()
	c := freshColony()
	state := colony.NewColonyState(c.Name)
	state.Structures.NodeContainers = map[string]string{"n1": "box-1", "n2": "box-2"}
	roster := NewRoster([]colony.Worker{miner(1, "W1N1", "n1")})

	hauled := worker(2, colony.RoleHauler, "W1N1", true)
	hauled.Memory.Hauler.ContainerID = "box-1"
	roster.Add(hauled)

	queue := NewQueueBuilder(tuning).Build(c, state, roster, 2, 10)
	var haulers []colony.ProductionRequest
	for _, r := range queue {
		if r.Role == colony.RoleHauler {
			haulers = append(haulers, r)
		}
	}
	if len(haulers) != tuning.MinHaulers-1 {
		t.Fatalf("hauler requests = %d, want %d", len(haulers), tuning.MinHaulers-1)
	}
	if haulers[0].ContainerID != "box-2" {
		t.Fatalf("hauler seeded with %q, want free container box-2", haulers[0].ContainerID)
	}
	if got := haulers[0].SeedMemory(10).AssignedContainer(); got != "box-2" {
		t.Fatalf("seed memory container = %q", got)
	}
}

func TestBuild_MinerRequestGoesStaleOnceBound(t *testing.T) {
	c := freshColony()
	roster := NewRoster(nil)
	queue := NewQueueBuilder(colony.DefaultTuning()).Build(c, colony.NewColonyState(c.Name), roster, 0, 0)
	if !queue[0].StillValid() {
		t.Fatalf("fresh request should be valid")
	}
	roster.Add(miner(9, "W1N1", queue[0].NodeID))
	if queue[0].StillValid() {
		t.Fatalf("request should be stale once a miner binds its node")
	}
	if !queue[1].StillValid() {
		t.Fatalf("other node still lacks a miner")
	}
}

func readyRoster(home string) *Roster {
	workers := []colony.Worker{
		miner(1, home, "n1"),
		miner(2, home, "n2"),
		worker(3, colony.RoleHauler, home, true),
		worker(4, colony.RoleHauler, home, true),
	}
	for id := uint64(5); id <= 10; id++ {
		workers = append(workers, worker(id, colony.RoleForager, home, false))
	}
	return NewRoster(workers)
}

func remoteWorker(id uint64, role colony.Role, target string) colony.Worker {
	w := worker(id, role, "W1N1", true)
	w.Memory.TargetColony = target
	return w
}

func TestBuildRemote_NotReadyEmitsNothing(t *testing.T) {
	c := freshColony()
	sites := []RemoteSite{{Target: colony.RemoteTarget{Colony: "W2N1", Home: "W1N1"}}}
	if got := NewQueueBuilder(colony.DefaultTuning()).BuildRemote(c, sites, colony.NewColonyState(c.Name), NewRoster(nil)); len(got) != 0 {
		t.Fatalf("expected no remote requests, got %d", len(got))
	}
}

func TestBuildRemote_SequenceOrder(t *testing.T) {
	tuning := colony.DefaultTuning()
	c := freshColony()
	c.EnergyCapacity = 5000
	visible := colony.Colony{
		Name:           "W2N1",
		Visible:        true,
		HostilePresent: true,
		Controller:     &colony.Controller{Reservation: &colony.Reservation{Owner: "me", TicksToEnd: 3000}},
		Nodes: []colony.ResourceNode{
			{ID: "r1", Pos: colony.Position{X: 10, Y: 10}},
			{ID: "r2", Pos: colony.Position{X: 40, Y: 40}},
		},
		Structures: []colony.Structure{{ID: "rbox", Kind: colony.StructureContainer, Pos: colony.Position{X: 10, Y: 11}}},
		Sites:      []colony.ConstructionSite{{ID: "road", Kind: colony.StructureRoad}},
	}
	sites := []RemoteSite{
		{Target: colony.RemoteTarget{Colony: "W2N1", Home: "W1N1"}, Snapshot: visible},
		{Target: colony.RemoteTarget{Colony: "W3N1", Home: "W1N1"}, Snapshot: colony.Colony{Name: "W3N1"}},
	}
	roster := readyRoster("W1N1")
	b := NewQueueBuilder(tuning)
	queue := b.BuildRemote(c, sites, colony.NewColonyState(c.Name), roster)
	colony.SortQueue(queue, roster.CommittedByTarget())

	type step struct {
		Priority int
		Role     colony.Role
		Target   string
	}
	got := make([]step, 0, len(queue))
	for _, r := range queue {
		got = append(got, step{r.Priority, r.Role, r.TargetColony})
		if !r.FixedRole {
			t.Fatalf("remote request not fixed: %+v", r)
		}
	}
	want := []step{
		{colony.PriorityRemoteReserver, colony.RoleReserver, "W3N1"},
		{colony.PriorityRemoteBuilder, colony.RoleRemoteBuilder, "W2N1"},
		{colony.PriorityRemoteBuilder, colony.RoleRemoteBuilder, "W2N1"},
		{colony.PriorityRemoteMiner, colony.RoleMiner, "W2N1"},
		{colony.PriorityRemoteHauler, colony.RoleRemoteHauler, "W2N1"},
		{colony.PriorityRemoteRepairer, colony.RoleRemoteRepairer, "W2N1"},
		{colony.PriorityRemoteAttacker, colony.RoleAttacker, "W2N1"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("remote sequence (-want +got):\n%s", diff)
	}
	if queue[3].NodeID != "r1" || queue[3].Archetype != colony.ArchetypeMiner {
		t.Fatalf("remote miner binding wrong: %+v", queue[3])
	}
}

func TestBuildRemote_TieBreakFewestCommitted(t *testing.T) {
	c := freshColony()
	roster := readyRoster("W1N1")
	roster.Add(remoteWorker(50, colony.RoleRemoteBuilder, "W2N1"))
	roster.Add(remoteWorker(51, colony.RoleRemoteHauler, "W2N1"))
	sites := []RemoteSite{
		{Target: colony.RemoteTarget{Colony: "W2N1", Home: "W1N1"}, Snapshot: colony.Colony{Name: "W2N1"}},
		{Target: colony.RemoteTarget{Colony: "W3N1", Home: "W1N1"}, Snapshot: colony.Colony{Name: "W3N1"}},
	}
	queue := NewQueueBuilder(colony.DefaultTuning()).BuildRemote(c, sites, colony.NewColonyState(c.Name), roster)
	colony.SortQueue(queue, roster.CommittedByTarget())
	if len(queue) != 2 {
		t.Fatalf("expected two reserver requests, got %d", len(queue))
	}
	if queue[0].TargetColony != "W3N1" {
		t.Fatalf("expected the less committed target first, got %s", queue[0].TargetColony)
	}
}

func TestBuildRemote_BlindTargetWaitsForTimer(t *testing.T) {
	c := freshColony()
	state := colony.NewColonyState(c.Name)
	state.ReserverTimers["W2N1"] = c.Tick + 100
	sites := []RemoteSite{{Target: colony.RemoteTarget{Colony: "W2N1", Home: "W1N1"}, Snapshot: colony.Colony{Name: "W2N1"}}}
	if got := NewQueueBuilder(colony.DefaultTuning()).BuildRemote(c, sites, state, readyRoster("W1N1")); len(got) != 0 {
		t.Fatalf("reserver queued before timer: %+v", got)
	}
}

func TestUpdateTimers(t *testing.T) {
	tuning := colony.DefaultTuning()
	b := NewQueueBuilder(tuning)
	blind := RemoteSite{Target: colony.RemoteTarget{Colony: "W2N1", TravelTime: 100}, Snapshot: colony.Colony{Name: "W2N1"}}
	state := colony.NewColonyState("W1N1")

	b.UpdateTimers(&state, []RemoteSite{blind}, NewRoster(nil), 100)
	if state.ReserverTimers["W2N1"] != 100 {
		t.Fatalf("missing timer should start now, got %d", state.ReserverTimers["W2N1"])
	}

	b.ScheduleReserver(&state, blind.Target, 100)
	if state.ReserverTimers["W2N1"] != 4400 {
		t.Fatalf("scheduled timer = %d, want 4400", state.ReserverTimers["W2N1"])
	}
	alive := NewRoster([]colony.Worker{remoteWorker(7, colony.RoleReserver, "W2N1")})
	b.UpdateTimers(&state, []RemoteSite{blind}, alive, 200)
	if state.ReserverTimers["W2N1"] != 4400 {
		t.Fatalf("timer must hold while the reserver lives")
	}
	b.UpdateTimers(&state, []RemoteSite{blind}, NewRoster(nil), 300)
	if state.ReserverTimers["W2N1"] != 300 {
		t.Fatalf("timer should reset when the reserver is gone, got %d", state.ReserverTimers["W2N1"])
	}

	visible := blind
	visible.Snapshot = colony.Colony{
		Name:       "W2N1",
		Visible:    true,
		Controller: &colony.Controller{Reservation: &colony.Reservation{Owner: "me", TicksToEnd: 1500}},
	}
	b.UpdateTimers(&state, []RemoteSite{visible}, alive, 1000)
	if state.ReserverTimers["W2N1"] != 5300 {
		t.Fatalf("refresh timer = %d, want 5300", state.ReserverTimers["W2N1"])
	}
}

func TestRebindHaulers_ReleasesVanishedContainer(t *testing.T) {
	tuning := colony.DefaultTuning()
	c := freshColony()
	c.Structures = []colony.Structure{{ID: "box-new", Kind: colony.StructureContainer, Pos: colony.Position{X: 5, Y: 6}}}
	state := colony.NewColonyState(c.Name)
	state.Structures.NodeContainers = map[string]string{"n1": "box-new"}

	hauler := worker(2, colony.RoleHauler, "W1N1", true)
	hauler.Memory.Hauler.ContainerID = "box-gone"
	orphan := worker(3, colony.RoleHauler, "W1N1", true)
	orphan.Memory.Hauler.ContainerID = "box-also-gone"
	home := []colony.Worker{miner(1, "W1N1", "n1"), hauler, orphan}

	b := NewQueueBuilder(tuning)
	if n := b.RebindHaulers(c, state, home); n != 3 {
		t.Fatalf("changed = %d, want 3", n)
	}
	if got := home[1].Memory.AssignedContainer(); got != "box-new" {
		t.Fatalf("hauler container = %q, want box-new", got)
	}
	if got := home[2].Memory.AssignedContainer(); got != "" {
		t.Fatalf("second hauler should be left unbound, got %q", got)
	}

	roster := NewRoster(home)
	if diff := cmp.Diff(map[string]uint64{"box-new": 2}, roster.ReservedContainers()); diff != "" {
		t.Fatalf("reserved containers (-want +got):\n%s", diff)
	}
	if n := b.RebindHaulers(c, state, home); n != 0 {
		t.Fatalf("second pass changed %d workers", n)
	}
}

func TestRebindHaulers_LeavesGenericAndRemoteHaulers(t *testing.T) {
	c := freshColony()
	state := colony.NewColonyState(c.Name)
	generic := worker(4, colony.RoleHauler, "W1N1", false)
	generic.Memory.Hauler.ContainerID = "box-gone"
	remote := remoteWorker(5, colony.RoleRemoteHauler, "W2N1")
	home := []colony.Worker{generic, remote}
	before := remote.Memory.AssignedContainer()

	if n := NewQueueBuilder(colony.DefaultTuning()).RebindHaulers(c, state, home); n != 0 {
		t.Fatalf("changed = %d, want 0", n)
	}
	if home[0].Memory.AssignedContainer() != "box-gone" || home[1].Memory.AssignedContainer() != before {
		t.Fatalf("non-dedicated haulers touched: %+v", home)
	}
}
