package memory

import (
	"context"
	"sort"

	"clawcolony/internal/app/ports"
	"clawcolony/internal/domain/colony"
)

type WorkerMemoryRepo struct {
	store *Store
}

func NewWorkerMemoryRepo(store *Store) WorkerMemoryRepo {
	return WorkerMemoryRepo{store: store}
}

func (r WorkerMemoryRepo) GetByWorkerID(ctx context.Context, workerID uint64) (colony.Memory, error) {
	defer r.store.rlock(ctx)()
	mem, ok := r.store.memories[workerID]
	if !ok {
		return colony.Memory{}, ports.ErrNotFound
	}
	return mem.Clone(), nil
}

func (r WorkerMemoryRepo) ListByHome(ctx context.Context, home string) (map[uint64]colony.Memory, error) {
	defer r.store.rlock(ctx)()
	out := make(map[uint64]colony.Memory)
	for id, mem := range r.store.memories {
		if mem.HomeColony == home {
			out[id] = mem.Clone()
		}
	}
	return out, nil
}

func (r WorkerMemoryRepo) ListWorkerIDs(ctx context.Context) ([]uint64, error) {
	defer r.store.rlock(ctx)()
	out := make([]uint64, 0, len(r.store.memories))
	for id := range r.store.memories {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (r WorkerMemoryRepo) Save(ctx context.Context, workerID uint64, mem colony.Memory) error {
	defer r.store.lock(ctx)()
	r.store.memories[workerID] = mem.Clone()
	return nil
}

func (r WorkerMemoryRepo) Delete(ctx context.Context, workerID uint64) error {
	defer r.store.lock(ctx)()
	if _, ok := r.store.memories[workerID]; !ok {
		return ports.ErrNotFound
	}
	delete(r.store.memories, workerID)
	return nil
}
