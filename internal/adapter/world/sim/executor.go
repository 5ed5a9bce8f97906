package sim

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"clawcolony/internal/app/commitment"
	"clawcolony/internal/app/ports"
	"clawcolony/internal/app/structcache"
	"clawcolony/internal/domain/colony"
)

// Executor is a minimal task executor for the sim host: gatherers fetch
// energy through the committer and deliver it to whatever accepts it,
// miners sit on their node. Other roles idle. Structure lookups go through
// the refs the scheduler cached in colony state.
type Executor struct {
	Host      ports.ColonyHost
	Actions   ports.WorkerActions
	Memories  ports.WorkerMemoryRepository
	States    ports.ColonyStateRepository
	TxManager ports.TxManager
	Committer commitment.Committer
	Logger    *zap.Logger
}

func (e Executor) Run(ctx context.Context) error {
	roster, err := e.Host.Roster(ctx)
	if err != nil {
		return err
	}
	workers := make([]colony.Worker, 0, len(roster))
	reserved := map[string]uint64{}
	for _, w := range roster {
		mem, err := e.Memories.GetByWorkerID(ctx, w.ID)
		if errors.Is(err, ports.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("load memory %d: %w", w.ID, err)
		}
		w.Memory = mem
		workers = append(workers, w)
		if mem.FixedRole && mem.AssignedContainer() != "" {
			reserved[mem.AssignedContainer()] = w.ID
		}
	}

	sites := map[string]site{}
	changed := make([]colony.Worker, 0)
	for i := range workers {
		w := &workers[i]
		if w.Spawning || w.Memory.IsRemote() {
			continue
		}
		st, ok := sites[w.Colony]
		if !ok {
			st, err = e.site(ctx, w.Colony)
			if err != nil {
				e.logger().Warn("executor colony lookup failed", zap.String("colony", w.Colony), zap.Error(err))
				continue
			}
			sites[w.Colony] = st
		}
		before := w.Memory.MemoryBase
		container := w.Memory.AssignedContainer()
		if err := e.act(ctx, w, st, reserved); err != nil {
			e.logger().Debug("worker action failed", zap.Uint64("worker_id", w.ID), zap.Error(err))
		}
		if w.Memory.ProviderID != before.ProviderID || w.Memory.Gathering != before.Gathering || w.Memory.AssignedContainer() != container {
			changed = append(changed, *w)
		}
	}
	if len(changed) == 0 {
		return nil
	}
	return e.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		for _, w := range changed {
			if err := e.Memories.Save(txCtx, w.ID, w.Memory); err != nil {
				return err
			}
		}
		return nil
	})
}

// site is one colony's snapshot joined with its cached structure refs.
type site struct {
	snap colony.Colony
	refs colony.StructureRefs
}

func (e Executor) site(ctx context.Context, name string) (site, error) {
	snap, err := e.Host.Colony(ctx, name)
	if err != nil {
		return site{}, err
	}
	refs := colony.StructureRefs{RefreshedAt: -1}
	if e.States != nil {
		state, err := e.States.GetByColony(ctx, name)
		switch {
		case err == nil:
			refs = state.Structures
		case !errors.Is(err, ports.ErrNotFound):
			return site{}, fmt.Errorf("load colony state: %w", err)
		}
	}
	return site{snap: snap, refs: structcache.Current(refs, snap)}, nil
}

func (e Executor) act(ctx context.Context, w *colony.Worker, st site, reserved map[string]uint64) error {
	switch {
	case w.Memory.Role == colony.RoleMiner:
		return e.mine(ctx, w, st.snap)
	case w.Memory.Role.Spec().Gatherer:
		w.Memory.UpdateGathering(w.Carried, w.CarryCapacity)
		if w.Memory.Gathering {
			return e.gather(ctx, w, st, reserved)
		}
		return e.deliver(ctx, w, st)
	default:
		return nil
	}
}

func (e Executor) mine(ctx context.Context, w *colony.Worker, snap colony.Colony) error {
	node, ok := snap.NodeByID(w.Memory.AssignedNode())
	if !ok {
		return nil
	}
	if w.CarryCapacity > 0 && w.Carried >= w.CarryCapacity {
		if box := snap.ContainerNear(node.Pos); box != "" {
			_, err := e.Actions.Transfer(ctx, w.ID, box)
			return err
		}
	}
	outcome, err := e.Actions.Harvest(ctx, w.ID, node.ID)
	if err != nil {
		return err
	}
	if outcome == ports.ActionNotInRange {
		return e.Actions.MoveTo(ctx, w.ID, node.Pos)
	}
	return nil
}

// gather prefers a hauler's own container when it is not committed
// elsewhere. An assigned container that no longer exists is released.
func (e Executor) gather(ctx context.Context, w *colony.Worker, st site, reserved map[string]uint64) error {
	if box := w.Memory.AssignedContainer(); box != "" {
		s, ok := st.snap.StructureByID(box)
		switch {
		case !ok:
			w.Memory.AssignContainer("")
			if reserved[box] == w.ID {
				delete(reserved, box)
			}
		case s.Energy > 0 && w.Memory.ProviderID == "":
			w.Memory.ProviderID = box
		}
	}
	p, ok := e.Committer.FindProvider(st.snap, st.refs, w, reserved)
	if !ok {
		return nil
	}
	_, err := e.Committer.Collect(ctx, w, p)
	return err
}

func (e Executor) deliver(ctx context.Context, w *colony.Worker, st site) error {
	var target *colony.Structure
	fill := structcache.FillTargets(st.refs, st.snap)
	for i := range fill {
		if !fill[i].AcceptsEnergy() {
			continue
		}
		if target == nil || w.Pos.Range(fill[i].Pos) < w.Pos.Range(target.Pos) {
			target = &fill[i]
		}
	}
	if target == nil {
		return nil
	}
	outcome, err := e.Actions.Transfer(ctx, w.ID, target.ID)
	if err != nil {
		return err
	}
	if outcome == ports.ActionNotInRange {
		return e.Actions.MoveTo(ctx, w.ID, target.Pos)
	}
	return nil
}

func (e Executor) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}
