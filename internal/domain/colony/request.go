package colony

import "sort"

const (
	PriorityLocalMiner  = 1
	PriorityLocalHauler = 2
	PriorityGeneric     = 3

	PriorityRemoteReserver = 11
	PriorityRemoteBuilder  = 12
	PriorityRemoteMiner    = 13
	PriorityRemoteHauler   = 14
	PriorityRemoteRepairer = 15
	PriorityRemoteAttacker = 16
)

// ProductionRequest is rebuilt from scratch every tick. Valid re-checks at
// dispatch time that the need it was queued for still exists.
type ProductionRequest struct {
	Priority     int
	Role         Role
	Archetype    ArchetypeID
	HomeColony   string
	TargetColony string
	NodeID       string
	ContainerID  string
	FixedRole    bool
	Valid        func() bool
	Loadout      func(budget int) Loadout
}

func (r ProductionRequest) StillValid() bool {
	if r.Valid == nil {
		return true
	}
	return r.Valid()
}

func (r ProductionRequest) Compose(budget int) Loadout {
	if r.Loadout != nil {
		return r.Loadout(budget)
	}
	return Compose(r.Archetype, budget)
}

// SeedMemory is the initial memory of the worker this request commissions.
func (r ProductionRequest) SeedMemory(tick int64) Memory {
	m := NewMemory(r.Role, r.HomeColony)
	m.FixedRole = r.FixedRole
	m.TargetColony = r.TargetColony
	m.RoleChangedAt = tick
	if m.Miner != nil {
		m.Miner.NodeID = r.NodeID
	}
	if m.Hauler != nil {
		m.Hauler.ContainerID = r.ContainerID
	}
	if m.Reserver != nil {
		m.Reserver.SpawnTick = tick
	}
	return m
}

type QueueEntry struct {
	Priority     int         `json:"priority"`
	Role         Role        `json:"role"`
	Archetype    ArchetypeID `json:"archetype"`
	TargetColony string      `json:"target_colony,omitempty"`
	NodeID       string      `json:"node_id,omitempty"`
	ContainerID  string      `json:"container_id,omitempty"`
}

func Snapshot(queue []ProductionRequest) []QueueEntry {
	out := make([]QueueEntry, 0, len(queue))
	for _, r := range queue {
		out = append(out, QueueEntry{
			Priority:     r.Priority,
			Role:         r.Role,
			Archetype:    r.Archetype,
			TargetColony: r.TargetColony,
			NodeID:       r.NodeID,
			ContainerID:  r.ContainerID,
		})
	}
	return out
}

// SortQueue orders by priority, breaking ties by the fewest workers already
// committed to the request's target colony. Equal keys keep build order.
func SortQueue(queue []ProductionRequest, committed map[string]int) {
	sort.SliceStable(queue, func(i, j int) bool {
		if queue[i].Priority != queue[j].Priority {
			return queue[i].Priority < queue[j].Priority
		}
		return committed[queue[i].TargetColony] < committed[queue[j].TargetColony]
	})
}
