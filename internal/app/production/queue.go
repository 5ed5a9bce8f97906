package production

import (
	"sort"

	"clawcolony/internal/domain/colony"
)

// RemoteSite pairs a configured remote target with whatever the host could
// see of it this tick.
type RemoteSite struct {
	Target   colony.RemoteTarget
	Snapshot colony.Colony
}

type QueueBuilder struct {
	Tuning colony.Tuning
}

func NewQueueBuilder(t colony.Tuning) QueueBuilder {
	return QueueBuilder{Tuning: t}
}

// Build emits the local requests for one colony: a miner per uncovered node,
// dedicated haulers once miners exist, then generic workers up to the
// estimated headcount.
func (b QueueBuilder) Build(c colony.Colony, state colony.ColonyState, roster *Roster, current, estimated int) []colony.ProductionRequest {
	home := c.Name
	queue := make([]colony.ProductionRequest, 0)

	for _, node := range c.Nodes {
		if roster.LocalMinersOn(home, node.ID) > 0 {
			continue
		}
		nodeID := node.ID
		queue = append(queue, colony.ProductionRequest{
			Priority:    colony.PriorityLocalMiner,
			Role:        colony.RoleMiner,
			Archetype:   colony.ArchetypeMiner,
			HomeColony:  home,
			NodeID:      nodeID,
			ContainerID: state.Structures.NodeContainers[nodeID],
			FixedRole:   true,
			Valid: func() bool {
				return roster.LocalMinersOn(home, nodeID) == 0
			},
		})
	}

	if roster.LocalMiners(home) > 0 {
		minHaulers := b.Tuning.MinHaulers
		free := b.freeContainers(state, roster)
		for i := roster.DedicatedHaulers(home); i < minHaulers; i++ {
			container := ""
			if len(free) > 0 {
				container, free = free[0], free[1:]
			}
			queue = append(queue, colony.ProductionRequest{
				Priority:    colony.PriorityLocalHauler,
				Role:        colony.RoleHauler,
				Archetype:   colony.ArchetypeHauler,
				HomeColony:  home,
				ContainerID: container,
				FixedRole:   true,
				Valid: func() bool {
					return roster.DedicatedHaulers(home) < minHaulers
				},
			})
		}
	}

	target := estimated
	if target < b.Tuning.MinWorkers {
		target = b.Tuning.MinWorkers
	}
	for i := current; i < target; i++ {
		queue = append(queue, colony.ProductionRequest{
			Priority:   colony.PriorityGeneric,
			Role:       colony.DefaultRole,
			Archetype:  colony.ArchetypeGeneralist,
			HomeColony: home,
			Valid: func() bool {
				return roster.Local(home) < target
			},
		})
	}
	return queue
}

func (b QueueBuilder) freeContainers(state colony.ColonyState, roster *Roster) []string {
	reserved := roster.ReservedContainers()
	out := make([]string, 0)
	for _, id := range sortedValues(state.Structures.NodeContainers) {
		if _, taken := reserved[id]; !taken {
			out = append(out, id)
		}
	}
	return out
}

// RebindHaulers repairs the container bindings of the colony's dedicated
// haulers in place: a container missing from the snapshot is released, and
// haulers left without one take the next free node container. It returns
// how many workers changed.
func (b QueueBuilder) RebindHaulers(snap colony.Colony, state colony.ColonyState, workers []colony.Worker) int {
	changed := 0
	dedicated := func(w colony.Worker) bool {
		return local(w, snap.Name) && w.Memory.Role == colony.RoleHauler && w.Memory.FixedRole
	}
	for i := range workers {
		w := &workers[i]
		if !dedicated(*w) {
			continue
		}
		if id := w.Memory.AssignedContainer(); id != "" {
			if _, ok := snap.StructureByID(id); !ok {
				w.Memory.AssignContainer("")
				changed++
			}
		}
	}

	free := make([]string, 0)
	for _, id := range b.freeContainers(state, NewRoster(workers)) {
		if _, ok := snap.StructureByID(id); ok {
			free = append(free, id)
		}
	}
	for i := range workers {
		w := &workers[i]
		if len(free) == 0 {
			break
		}
		if !dedicated(*w) || w.Memory.AssignedContainer() != "" {
			continue
		}
		w.Memory.AssignContainer(free[0])
		free = free[1:]
		changed++
	}
	return changed
}

// Ready gates remote work on the home colony: full minimum population, a
// dedicated miner on every node and the dedicated hauler minimum.
func (b QueueBuilder) Ready(c colony.Colony, roster *Roster) bool {
	if roster.Local(c.Name) < b.Tuning.MinWorkers {
		return false
	}
	for _, node := range c.Nodes {
		if roster.LocalMinersOn(c.Name, node.ID) == 0 {
			return false
		}
	}
	return roster.DedicatedHaulers(c.Name) >= b.Tuning.MinHaulers
}

// BuildRemote emits the off-colony sequence for every target homed at c:
// reserver, builders, miners on containers, haulers, repairers, attackers.
// Targets with fewer committed workers come first.
func (b QueueBuilder) BuildRemote(c colony.Colony, sites []RemoteSite, state colony.ColonyState, roster *Roster) []colony.ProductionRequest {
	if len(sites) == 0 || !b.Ready(c, roster) {
		return nil
	}
	committed := roster.CommittedByTarget()
	ordered := make([]RemoteSite, len(sites))
	copy(ordered, sites)
	sort.SliceStable(ordered, func(i, j int) bool {
		return committed[ordered[i].Target.Colony] < committed[ordered[j].Target.Colony]
	})

	queue := make([]colony.ProductionRequest, 0)
	for _, site := range ordered {
		queue = append(queue, b.remoteFor(c, site, state, roster)...)
	}
	return queue
}

func (b QueueBuilder) remoteFor(home colony.Colony, site RemoteSite, state colony.ColonyState, roster *Roster) []colony.ProductionRequest {
	remote := b.Tuning.Remote
	target := site.Target.Colony
	snap := site.Snapshot
	out := make([]colony.ProductionRequest, 0)
	req := func(priority int, role colony.Role, valid func() bool) colony.ProductionRequest {
		return colony.ProductionRequest{
			Priority:     priority,
			Role:         role,
			Archetype:    role.Spec().Archetype,
			HomeColony:   home.Name,
			TargetColony: target,
			FixedRole:    true,
			Valid:        valid,
		}
	}

	timer, hasTimer := state.ReserverTimers[target]
	if remote.ReserverDue(snap, home.Owner, timer, hasTimer, home.Tick) && roster.ForTarget(target, colony.RoleReserver) == 0 {
		out = append(out, req(colony.PriorityRemoteReserver, colony.RoleReserver, func() bool {
			return roster.ForTarget(target, colony.RoleReserver) == 0
		}))
	}

	if !snap.Visible {
		return out
	}

	if snap.ReservedBy(home.Owner) {
		built := len(snap.NodesWithContainer(false))

		builders := len(snap.Nodes)
		if len(snap.Sites) > 0 || roster.ForTarget(target, colony.RoleRemoteBuilder) == 0 {
			for i := roster.ForTarget(target, colony.RoleRemoteBuilder); i < builders; i++ {
				out = append(out, req(colony.PriorityRemoteBuilder, colony.RoleRemoteBuilder, func() bool {
					return roster.ForTarget(target, colony.RoleRemoteBuilder) < builders
				}))
			}
		}

		for _, node := range snap.NodesWithContainer(true) {
			nodeID := node.ID
			if roster.MinersOnRemote(target, nodeID) > 0 {
				continue
			}
			r := req(colony.PriorityRemoteMiner, colony.RoleMiner, func() bool {
				return roster.MinersOnRemote(target, nodeID) == 0
			})
			r.Archetype = colony.ArchetypeMiner
			r.NodeID = nodeID
			r.ContainerID = snap.ContainerNear(node.Pos)
			out = append(out, r)
		}

		if built > 0 {
			haulers := built
			for i := roster.ForTarget(target, colony.RoleRemoteHauler); i < haulers; i++ {
				out = append(out, req(colony.PriorityRemoteHauler, colony.RoleRemoteHauler, func() bool {
					return roster.ForTarget(target, colony.RoleRemoteHauler) < haulers
				}))
			}
			repairers := remote.RepairersPerTarget
			for i := roster.ForTarget(target, colony.RoleRemoteRepairer); i < repairers; i++ {
				out = append(out, req(colony.PriorityRemoteRepairer, colony.RoleRemoteRepairer, func() bool {
					return roster.ForTarget(target, colony.RoleRemoteRepairer) < repairers
				}))
			}
		}
	}

	if snap.HostilePresent && roster.ForTarget(target, colony.RoleAttacker) == 0 {
		out = append(out, req(colony.PriorityRemoteAttacker, colony.RoleAttacker, func() bool {
			return roster.ForTarget(target, colony.RoleAttacker) == 0
		}))
	}
	return out
}

// UpdateTimers maintains the per-target next-reserver deadlines. A visible
// target whose reservation dips under the refresh window while a reserver is
// alive is pushed out by one refresh interval; a blind target without a
// reserver is made due immediately.
func (b QueueBuilder) UpdateTimers(state *colony.ColonyState, sites []RemoteSite, roster *Roster, tick int64) {
	remote := b.Tuning.Remote
	if state.ReserverTimers == nil {
		state.ReserverTimers = map[string]int64{}
	}
	for _, site := range sites {
		target := site.Target.Colony
		alive := roster.ForTarget(target, colony.RoleReserver) > 0
		if site.Snapshot.Visible {
			if alive && site.Snapshot.Controller != nil && site.Snapshot.Controller.Reservation != nil &&
				site.Snapshot.ReservationTicks() < remote.RefreshWindow {
				state.ReserverTimers[target] = tick + remote.RefreshInterval(site.Target.TravelTime)
			}
			continue
		}
		next, ok := state.ReserverTimers[target]
		if !ok || (!alive && tick < next) {
			state.ReserverTimers[target] = tick
		}
	}
}

// ScheduleReserver records the next reserver deadline after one has been
// commissioned for target.
func (b QueueBuilder) ScheduleReserver(state *colony.ColonyState, target colony.RemoteTarget, tick int64) {
	if state.ReserverTimers == nil {
		state.ReserverTimers = map[string]int64{}
	}
	state.ReserverTimers[target.Colony] = tick + b.Tuning.Remote.RefreshInterval(target.TravelTime)
}
