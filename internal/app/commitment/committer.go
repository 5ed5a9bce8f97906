package commitment

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"clawcolony/internal/app/ports"
	"clawcolony/internal/app/structcache"
	"clawcolony/internal/domain/colony"
)

type ProviderKind string

const (
	ProviderStorage   ProviderKind = "storage"
	ProviderContainer ProviderKind = "container"
	ProviderNode      ProviderKind = "node"
)

type Provider struct {
	ID     string
	Kind   ProviderKind
	Pos    colony.Position
	Energy int
}

// Committer binds a worker to one energy provider and keeps it there until
// the provider is gone or empty.
type Committer struct {
	Actions ports.WorkerActions
	Logger  *zap.Logger
}

// FindProvider returns the worker's committed provider when it still has
// energy, otherwise picks storage, then the nearest container not reserved
// by another dedicated hauler, then the nearest node, and commits to it.
// Storage and containers are looked up through refs, the colony's cached
// structure ids. reserved maps container ids to the hauler that owns them.
func (c Committer) FindProvider(snap colony.Colony, refs colony.StructureRefs, w *colony.Worker, reserved map[string]uint64) (Provider, bool) {
	if id := w.Memory.ProviderID; id != "" {
		if p, ok := lookup(snap, id); ok && p.Energy > 0 {
			return p, true
		}
		c.logger().Debug("commitment released",
			zap.Uint64("worker_id", w.ID),
			zap.String("provider_id", id),
		)
		w.Memory.ClearProvider()
	}

	p, ok := pick(snap, structcache.Current(refs, snap), w, reserved)
	if !ok {
		return Provider{}, false
	}
	w.Memory.ProviderID = p.ID
	return p, true
}

func pick(snap colony.Colony, refs colony.StructureRefs, w *colony.Worker, reserved map[string]uint64) (Provider, bool) {
	if refs.Storage != "" {
		if s, ok := snap.StructureByID(refs.Storage); ok && s.Energy > 0 {
			return fromStructure(s), true
		}
	}

	containers := make([]Provider, 0, len(refs.Containers))
	for _, s := range structcache.Resolve(snap, refs.Containers) {
		if s.Energy <= 0 {
			continue
		}
		if owner, taken := reserved[s.ID]; taken && owner != w.ID {
			continue
		}
		containers = append(containers, fromStructure(s))
	}
	if p, ok := nearest(w.Pos, containers); ok {
		return p, true
	}

	nodes := make([]Provider, 0, len(snap.Nodes))
	for _, n := range snap.Nodes {
		if n.Energy > 0 {
			nodes = append(nodes, Provider{ID: n.ID, Kind: ProviderNode, Pos: n.Pos, Energy: n.Energy})
		}
	}
	return nearest(w.Pos, nodes)
}

func nearest(from colony.Position, candidates []Provider) (Provider, bool) {
	if len(candidates) == 0 {
		return Provider{}, false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := from.Range(candidates[i].Pos), from.Range(candidates[j].Pos)
		if di != dj {
			return di < dj
		}
		return candidates[i].ID < candidates[j].ID
	})
	return candidates[0], true
}

func lookup(snap colony.Colony, id string) (Provider, bool) {
	if s, ok := snap.StructureByID(id); ok {
		if s.Kind != colony.StructureStorage && s.Kind != colony.StructureContainer {
			return Provider{}, false
		}
		return fromStructure(s), true
	}
	if n, ok := snap.NodeByID(id); ok {
		return Provider{ID: n.ID, Kind: ProviderNode, Pos: n.Pos, Energy: n.Energy}, true
	}
	return Provider{}, false
}

func fromStructure(s colony.Structure) Provider {
	kind := ProviderContainer
	if s.Kind == colony.StructureStorage {
		kind = ProviderStorage
	}
	return Provider{ID: s.ID, Kind: kind, Pos: s.Pos, Energy: s.Energy}
}

// Collect takes energy from p, stepping toward it when out of range. It
// reports whether the worker did something this tick. An empty provider
// drops the commitment so the next lookup picks a fresh one.
func (c Committer) Collect(ctx context.Context, w *colony.Worker, p Provider) (bool, error) {
	var (
		outcome ports.ActionOutcome
		err     error
	)
	if p.Kind == ProviderNode {
		outcome, err = c.Actions.Harvest(ctx, w.ID, p.ID)
	} else {
		outcome, err = c.Actions.Withdraw(ctx, w.ID, p.ID)
	}
	if err != nil {
		return false, err
	}

	switch outcome {
	case ports.ActionOK:
		return true, nil
	case ports.ActionNotInRange:
		if err := c.Actions.MoveTo(ctx, w.ID, p.Pos); err != nil {
			return false, err
		}
		return true, nil
	case ports.ActionEmpty:
		if w.Memory.ProviderID == p.ID {
			w.Memory.ClearProvider()
		}
		return false, nil
	default:
		return false, nil
	}
}

func (c Committer) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
