package memory

import (
	"context"

	"clawcolony/internal/app/ports"
	"clawcolony/internal/domain/colony"
)

type ColonyStateRepo struct {
	store *Store
}

func NewColonyStateRepo(store *Store) ColonyStateRepo {
	return ColonyStateRepo{store: store}
}

func (r ColonyStateRepo) GetByColony(ctx context.Context, name string) (colony.ColonyState, error) {
	defer r.store.rlock(ctx)()
	state, ok := r.store.colonies[name]
	if !ok {
		return colony.ColonyState{}, ports.ErrNotFound
	}
	return state.Clone(), nil
}

func (r ColonyStateRepo) SaveWithVersion(ctx context.Context, state colony.ColonyState, expectedVersion int64) error {
	defer r.store.lock(ctx)()
	current, ok := r.store.colonies[state.Colony]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.store.colonies[state.Colony] = state.Clone()
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.colonies[state.Colony] = state.Clone()
	return nil
}
