package inspect

import (
	"context"
	"errors"
	"sort"
	"strings"

	"clawcolony/internal/app/ports"
	"clawcolony/internal/domain/colony"
)

var ErrInvalidRequest = errors.New("invalid inspect request")

const (
	defaultProductionLimit = 50
	maxProductionLimit     = 500
)

// UseCase serves read-only views of scheduler state for operators.
type UseCase struct {
	Memories ports.WorkerMemoryRepository
	States   ports.ColonyStateRepository
	LogRepo  ports.ProductionLogRepository
	Host     ports.ColonyHost
	Tuning   colony.Tuning
}

func validate(req Request) (string, error) {
	name := strings.TrimSpace(req.Colony)
	if name == "" {
		return "", ErrInvalidRequest
	}
	return name, nil
}

func (u UseCase) Queue(ctx context.Context, req Request) (QueueResponse, error) {
	name, err := validate(req)
	if err != nil {
		return QueueResponse{}, err
	}
	state, err := u.States.GetByColony(ctx, name)
	if err != nil {
		return QueueResponse{}, err
	}
	entries := state.Queue
	if entries == nil {
		entries = []colony.QueueEntry{}
	}
	return QueueResponse{
		Colony:         name,
		Tick:           state.QueueTick,
		Version:        state.Version,
		Entries:        entries,
		ReserverTimers: state.ReserverTimers,
	}, nil
}

func (u UseCase) Workers(ctx context.Context, req Request) (WorkersResponse, error) {
	name, err := validate(req)
	if err != nil {
		return WorkersResponse{}, err
	}
	mems, err := u.Memories.ListByHome(ctx, name)
	if err != nil {
		return WorkersResponse{}, err
	}
	resp := WorkersResponse{Colony: name, ByRole: map[string]int{}, Workers: make([]WorkerView, 0, len(mems))}
	for id, m := range mems {
		resp.ByRole[string(m.Role)]++
		resp.Workers = append(resp.Workers, WorkerView{
			WorkerID:     id,
			Role:         m.Role,
			FixedRole:    m.FixedRole,
			TargetColony: m.TargetColony,
			NodeID:       m.AssignedNode(),
			ContainerID:  m.AssignedContainer(),
			ProviderID:   m.ProviderID,
			Gathering:    m.Gathering,
		})
	}
	sort.Slice(resp.Workers, func(i, j int) bool { return resp.Workers[i].WorkerID < resp.Workers[j].WorkerID })
	return resp, nil
}

func (u UseCase) Production(ctx context.Context, req Request) (ProductionResponse, error) {
	name, err := validate(req)
	if err != nil {
		return ProductionResponse{}, err
	}
	limit := req.Limit
	if limit < 0 {
		return ProductionResponse{}, ErrInvalidRequest
	}
	if limit == 0 {
		limit = defaultProductionLimit
	}
	if limit > maxProductionLimit {
		limit = maxProductionLimit
	}
	recs, err := u.LogRepo.ListByColony(ctx, name, limit)
	if err != nil {
		return ProductionResponse{}, err
	}
	if recs == nil {
		recs = []ports.ProductionRecord{}
	}
	return ProductionResponse{Colony: name, Records: recs}, nil
}

// Scores recomputes role scores and the workforce estimate against the
// host's current view of the colony.
func (u UseCase) Scores(ctx context.Context, req Request) (ScoresResponse, error) {
	name, err := validate(req)
	if err != nil {
		return ScoresResponse{}, err
	}
	snap, err := u.Host.Colony(ctx, name)
	if err != nil {
		return ScoresResponse{}, err
	}
	tick, err := u.Host.Tick(ctx)
	if err != nil {
		return ScoresResponse{}, err
	}
	snap.Tick = tick
	mems, err := u.Memories.ListByHome(ctx, name)
	if err != nil {
		return ScoresResponse{}, err
	}
	workers := make([]colony.Worker, 0, len(mems))
	for id, m := range mems {
		workers = append(workers, colony.Worker{ID: id, Colony: name, Memory: m})
	}
	census := colony.TakeCensus(name, workers)

	t := u.Tuning.Normalize()
	scores := colony.NewScorer(t).Score(snap)
	out := make(map[string]float64, len(scores))
	for role, v := range scores {
		out[string(role)] = v
	}
	return ScoresResponse{
		Colony:      name,
		Tick:        tick,
		Scores:      out,
		Recommended: scores.Recommend(),
		Population:  census.Total,
		Demand:      colony.NewDemandEstimator(t).Breakdown(snap, census.Total),
	}, nil
}
