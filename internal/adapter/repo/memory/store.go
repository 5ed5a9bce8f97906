package memory

import (
	"context"
	"sync"

	"clawcolony/internal/app/ports"
	"clawcolony/internal/domain/colony"
)

type Store struct {
	mu         sync.RWMutex
	memories   map[uint64]colony.Memory
	colonies   map[string]colony.ColonyState
	production map[string][]ports.ProductionRecord
}

func NewStore() *Store {
	return &Store{
		memories:   make(map[uint64]colony.Memory),
		colonies:   make(map[string]colony.ColonyState),
		production: make(map[string][]ports.ProductionRecord),
	}
}

func (s *Store) SeedMemory(workerID uint64, mem colony.Memory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memories[workerID] = mem.Clone()
}

func (s *Store) SeedColonyState(state colony.ColonyState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.colonies[state.Colony] = state.Clone()
}

type txKey struct{}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

// rlock and lock guard single calls made outside RunInTx. Inside a
// transaction the TxManager already holds the write lock.
func (s *Store) rlock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *Store) lock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}
