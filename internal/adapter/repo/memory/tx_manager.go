package memory

import (
	"context"

	"clawcolony/internal/app/ports"
	"clawcolony/internal/domain/colony"
)

type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) TxManager {
	return TxManager{store: store}
}

// RunInTx serializes fn against every other transaction and restores the
// store to its prior contents when fn fails. Nested calls join the outer
// transaction.
func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	memories := make(map[uint64]colony.Memory, len(t.store.memories))
	for k, v := range t.store.memories {
		memories[k] = v
	}
	colonies := make(map[string]colony.ColonyState, len(t.store.colonies))
	for k, v := range t.store.colonies {
		colonies[k] = v
	}
	production := make(map[string][]ports.ProductionRecord, len(t.store.production))
	for k, v := range t.store.production {
		production[k] = v[:len(v):len(v)]
	}

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		t.store.memories = memories
		t.store.colonies = colonies
		t.store.production = production
		return err
	}
	return nil
}
