package tick

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"clawcolony/internal/app/ports"
	"clawcolony/internal/app/production"
	"clawcolony/internal/app/roles"
	"clawcolony/internal/app/structcache"
	"clawcolony/internal/domain/colony"
)

type Deps struct {
	Host      ports.ColonyHost
	Facility  ports.ProductionFacility
	Memories  ports.WorkerMemoryRepository
	States    ports.ColonyStateRepository
	LogRepo   ports.ProductionLogRepository
	TxManager ports.TxManager
	Publisher ports.QueuePublisher
	Metrics   ports.SchedulerMetrics
	Logger    *zap.Logger
}

// Runner drives one scheduling pass per tick over every configured colony:
// demand, role assignment, queue build, dispatch, persist.
type Runner struct {
	Deps
	Tuning     colony.Tuning
	Colonies   []string
	Remotes    []colony.RemoteTarget
	Estimator  colony.DemandEstimator
	Assigner   roles.Assigner
	Builder    production.QueueBuilder
	Dispatcher production.Dispatcher
	Cache      structcache.Cache
}

func NewRunner(t colony.Tuning, colonies []string, remotes []colony.RemoteTarget, d Deps) Runner {
	t = t.Normalize()
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return Runner{
		Deps:      d,
		Tuning:    t,
		Colonies:  colonies,
		Remotes:   remotes,
		Estimator: colony.NewDemandEstimator(t),
		Assigner:  roles.NewAssigner(t, d.Metrics, d.Logger.Named("roles")),
		Builder:   production.NewQueueBuilder(t),
		Dispatcher: production.Dispatcher{
			Facility: d.Facility,
			LogRepo:  d.LogRepo,
			Metrics:  d.Metrics,
			Logger:   d.Logger.Named("production"),
			Tuning:   t,
		},
		Cache: structcache.New(t.StructureCacheInterval),
	}
}

type ColonyReport struct {
	Colony     string
	Population int
	Demand     colony.Demand
	Switched   int
	Queued     int
	Result     production.Result
	Err        error
}

type Report struct {
	Tick     int64
	Pruned   int
	Colonies []ColonyReport
}

func (r Runner) RunTick(ctx context.Context) (Report, error) {
	tick, err := r.Host.Tick(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("read tick: %w", err)
	}
	report := Report{Tick: tick}

	roster, err := r.Host.Roster(ctx)
	if err != nil {
		return report, fmt.Errorf("read roster: %w", err)
	}
	pruned, err := r.pruneDead(ctx, roster)
	if err != nil {
		return report, err
	}
	report.Pruned = pruned

	workers, err := r.joinMemories(ctx, roster)
	if err != nil {
		return report, err
	}

	for _, name := range r.Colonies {
		cr, err := r.runColony(ctx, tick, name, workers)
		if err != nil {
			cr.Err = err
			r.Logger.Error("colony tick failed", zap.String("colony", name), zap.Int64("tick", tick), zap.Error(err))
		}
		report.Colonies = append(report.Colonies, cr)
	}
	return report, nil
}

// pruneDead drops persisted memory of workers the host no longer reports.
func (r Runner) pruneDead(ctx context.Context, roster []colony.Worker) (int, error) {
	ids, err := r.Memories.ListWorkerIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list memories: %w", err)
	}
	alive := make(map[uint64]struct{}, len(roster))
	for _, w := range roster {
		alive[w.ID] = struct{}{}
	}
	pruned := 0
	for _, id := range ids {
		if _, ok := alive[id]; ok {
			continue
		}
		if err := r.Memories.Delete(ctx, id); err != nil && !errors.Is(err, ports.ErrNotFound) {
			return pruned, fmt.Errorf("prune memory %d: %w", id, err)
		}
		pruned++
		r.Logger.Debug("pruned dead worker memory", zap.Uint64("worker_id", id))
	}
	return pruned, nil
}

func (r Runner) joinMemories(ctx context.Context, roster []colony.Worker) ([]colony.Worker, error) {
	out := make([]colony.Worker, 0, len(roster))
	for _, w := range roster {
		mem, err := r.Memories.GetByWorkerID(ctx, w.ID)
		switch {
		case errors.Is(err, ports.ErrNotFound):
			mem = colony.NewMemory(colony.DefaultRole, w.Colony)
		case err != nil:
			return nil, fmt.Errorf("load memory %d: %w", w.ID, err)
		}
		if mem.HomeColony == "" {
			mem.HomeColony = w.Colony
		}
		w.Memory = mem
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r Runner) runColony(ctx context.Context, tick int64, name string, all []colony.Worker) (ColonyReport, error) {
	cr := ColonyReport{Colony: name}
	snap, err := r.Host.Colony(ctx, name)
	if err != nil {
		return cr, fmt.Errorf("read colony: %w", err)
	}
	snap.Tick = tick

	state, err := r.States.GetByColony(ctx, name)
	if errors.Is(err, ports.ErrNotFound) {
		state = colony.NewColonyState(name)
	} else if err != nil {
		return cr, fmt.Errorf("load colony state: %w", err)
	}
	expectedVersion := state.Version

	home := make([]colony.Worker, 0)
	for _, w := range all {
		if w.Memory.HomeColony == name {
			home = append(home, w)
		}
	}

	census := colony.TakeCensus(name, home)
	cr.Population = census.Total
	cr.Demand = r.Estimator.Breakdown(snap, census.Total)

	scores := r.Assigner.Scorer.Score(snap)
	for i := range home {
		if out := r.Assigner.Evaluate(&home[i], snap, scores, &census); out.Decision == roles.DecisionSwitched {
			cr.Switched++
		}
	}

	r.Cache.Sync(&state, snap, tick)
	if n := r.Builder.RebindHaulers(snap, state, home); n > 0 {
		r.Logger.Debug("hauler containers rebound", zap.String("colony", name), zap.Int("workers", n))
	}

	roster := production.NewRoster(home)
	sites := r.remoteSites(ctx, name)
	r.Builder.UpdateTimers(&state, sites, roster, tick)

	queue := r.Builder.Build(snap, state, roster, census.Total, cr.Demand.Total)
	queue = append(queue, r.Builder.BuildRemote(snap, sites, state, roster)...)
	colony.SortQueue(queue, roster.CommittedByTarget())
	cr.Queued = len(queue)

	cr.Result = r.Dispatcher.Dispatch(ctx, snap, queue, roster, census.Total)
	if cr.Result.Issued && cr.Result.Request.Role == colony.RoleReserver {
		for _, site := range sites {
			if site.Target.Colony == cr.Result.Request.TargetColony {
				r.Builder.ScheduleReserver(&state, site.Target, tick)
			}
		}
	}

	state.Queue = colony.Snapshot(queue)
	state.QueueTick = tick
	state.Version = expectedVersion + 1

	err = r.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		for _, w := range home {
			if err := r.Memories.Save(txCtx, w.ID, w.Memory); err != nil {
				return fmt.Errorf("save memory %d: %w", w.ID, err)
			}
		}
		if cr.Result.Issued {
			if err := r.Memories.Save(txCtx, cr.Result.WorkerID, cr.Result.Memory); err != nil {
				return fmt.Errorf("save seeded memory %d: %w", cr.Result.WorkerID, err)
			}
		}
		return r.States.SaveWithVersion(txCtx, state, expectedVersion)
	})
	if err != nil {
		return cr, err
	}

	if r.Publisher != nil {
		if err := r.Publisher.Publish(ctx, name, tick, state.Queue); err != nil {
			r.Logger.Warn("queue snapshot publish failed", zap.String("colony", name), zap.Error(err))
		}
	}
	return cr, nil
}

// remoteSites snapshots every remote target homed at name. Targets the host
// cannot see come back as blind snapshots.
func (r Runner) remoteSites(ctx context.Context, name string) []production.RemoteSite {
	out := make([]production.RemoteSite, 0)
	for _, target := range r.Remotes {
		if target.Home != name {
			continue
		}
		snap, err := r.Host.Colony(ctx, target.Colony)
		if err != nil {
			if !errors.Is(err, ports.ErrNotFound) {
				r.Logger.Warn("remote snapshot failed", zap.String("target", target.Colony), zap.Error(err))
			}
			snap = colony.Colony{Name: target.Colony}
		}
		out = append(out, production.RemoteSite{Target: target, Snapshot: snap})
	}
	return out
}
