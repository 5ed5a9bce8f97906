package structcache

import (
	"sort"

	"clawcolony/internal/domain/colony"
)

// Cache keeps per-colony structure id lists inside ColonyState so lookups
// between refreshes do not rescan the full structure inventory.
type Cache struct {
	Interval int
}

func New(interval int) Cache {
	return Cache{Interval: interval}
}

// Due reports whether the refs are older than the refresh interval.
func (c Cache) Due(refs colony.StructureRefs, tick int64) bool {
	if refs.RefreshedAt < 0 {
		return true
	}
	interval := int64(c.Interval)
	if interval <= 0 {
		return true
	}
	return tick-refs.RefreshedAt >= interval
}

// Refresh rebuilds the refs when due and reports whether it did.
func (c Cache) Refresh(state *colony.ColonyState, snap colony.Colony, tick int64) bool {
	if !c.Due(state.Structures, tick) {
		return false
	}
	state.Structures = Scan(snap, tick)
	return true
}

// Sync refreshes the refs when due. Between refreshes it prunes ids that no
// longer resolve and rescans when any were dropped, since a vanished
// structure usually means the layout changed. It reports whether a full
// scan ran.
func (c Cache) Sync(state *colony.ColonyState, snap colony.Colony, tick int64) bool {
	if c.Refresh(state, snap, tick) {
		return true
	}
	if Prune(&state.Structures, snap) == 0 {
		return false
	}
	state.Structures = Scan(snap, tick)
	return true
}

// Current returns refs usable against snap: state's refs when they were
// ever scanned, otherwise a fresh scan.
func Current(refs colony.StructureRefs, snap colony.Colony) colony.StructureRefs {
	if refs.RefreshedAt < 0 {
		return Scan(snap, snap.Tick)
	}
	return refs
}

// FillTargets resolves the cached structures workers deliver energy to:
// spawns, extensions and towers.
func FillTargets(refs colony.StructureRefs, snap colony.Colony) []colony.Structure {
	ids := make([]string, 0, len(refs.Spawns)+len(refs.Extensions)+len(refs.Towers))
	ids = append(ids, refs.Spawns...)
	ids = append(ids, refs.Extensions...)
	ids = append(ids, refs.Towers...)
	return Resolve(snap, ids)
}

func Scan(snap colony.Colony, tick int64) colony.StructureRefs {
	refs := colony.StructureRefs{RefreshedAt: tick, NodeContainers: map[string]string{}}
	for _, s := range snap.Structures {
		switch s.Kind {
		case colony.StructureStorage:
			if refs.Storage == "" {
				refs.Storage = s.ID
			}
		case colony.StructureSpawn:
			refs.Spawns = append(refs.Spawns, s.ID)
		case colony.StructureExtension:
			refs.Extensions = append(refs.Extensions, s.ID)
		case colony.StructureTower:
			refs.Towers = append(refs.Towers, s.ID)
		case colony.StructureContainer:
			refs.Containers = append(refs.Containers, s.ID)
		}
	}
	sort.Strings(refs.Spawns)
	sort.Strings(refs.Extensions)
	sort.Strings(refs.Towers)
	sort.Strings(refs.Containers)
	for _, n := range snap.Nodes {
		if id := snap.ContainerNear(n.Pos); id != "" {
			refs.NodeContainers[n.ID] = id
		}
	}
	return refs
}

// Resolve maps cached ids to live structures, dropping ids whose structure
// is gone from the snapshot.
func Resolve(snap colony.Colony, ids []string) []colony.Structure {
	out := make([]colony.Structure, 0, len(ids))
	for _, id := range ids {
		if s, ok := snap.StructureByID(id); ok {
			out = append(out, s)
		}
	}
	return out
}

// Prune removes ids that no longer resolve so the persisted refs shrink
// without waiting for the next full refresh. It returns how many ids it
// dropped.
func Prune(refs *colony.StructureRefs, snap colony.Colony) int {
	dropped := 0
	keep := func(ids []string) []string {
		out := ids[:0]
		for _, id := range ids {
			if _, ok := snap.StructureByID(id); ok {
				out = append(out, id)
			} else {
				dropped++
			}
		}
		return out
	}
	if refs.Storage != "" {
		if _, ok := snap.StructureByID(refs.Storage); !ok {
			refs.Storage = ""
			dropped++
		}
	}
	refs.Spawns = keep(refs.Spawns)
	refs.Extensions = keep(refs.Extensions)
	refs.Towers = keep(refs.Towers)
	refs.Containers = keep(refs.Containers)
	for node, id := range refs.NodeContainers {
		if _, ok := snap.StructureByID(id); !ok {
			delete(refs.NodeContainers, node)
		}
	}
	return dropped
}
