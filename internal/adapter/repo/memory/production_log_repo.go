package memory

import (
	"context"

	"clawcolony/internal/app/ports"
)

type ProductionLogRepo struct {
	store *Store
}

func NewProductionLogRepo(store *Store) ProductionLogRepo {
	return ProductionLogRepo{store: store}
}

func (r ProductionLogRepo) Append(ctx context.Context, rec ports.ProductionRecord) error {
	defer r.store.lock(ctx)()
	r.store.production[rec.Colony] = append(r.store.production[rec.Colony], rec)
	return nil
}

// ListByColony returns the newest records first.
func (r ProductionLogRepo) ListByColony(ctx context.Context, colonyName string, limit int) ([]ports.ProductionRecord, error) {
	defer r.store.rlock(ctx)()
	all := r.store.production[colonyName]
	if limit <= 0 || limit > len(all) {
		limit = len(all)
	}
	out := make([]ports.ProductionRecord, 0, limit)
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}
