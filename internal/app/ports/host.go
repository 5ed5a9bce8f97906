package ports

import (
	"context"

	"clawcolony/internal/domain/colony"
)

// ColonyHost is the read side of the world the scheduler runs in.
type ColonyHost interface {
	Tick(ctx context.Context) (int64, error)
	Colony(ctx context.Context, name string) (colony.Colony, error)
	Roster(ctx context.Context) ([]colony.Worker, error)
}

type ProductionCommand struct {
	ID      string
	Colony  string
	Name    string
	Loadout colony.Loadout
	Memory  colony.Memory
	Tick    int64
}

// ProductionFacility accepts at most one begin-production command per colony
// per tick. Host-side refusals wrap ErrProductionRejected.
type ProductionFacility interface {
	BeginProduction(ctx context.Context, cmd ProductionCommand) (uint64, error)
}

type ActionOutcome string

const (
	ActionOK         ActionOutcome = "ok"
	ActionNotInRange ActionOutcome = "not_in_range"
	ActionEmpty      ActionOutcome = "empty"
	ActionFull       ActionOutcome = "full"
	ActionRejected   ActionOutcome = "rejected"
)

type WorkerActions interface {
	Harvest(ctx context.Context, workerID uint64, nodeID string) (ActionOutcome, error)
	Withdraw(ctx context.Context, workerID uint64, structureID string) (ActionOutcome, error)
	Transfer(ctx context.Context, workerID uint64, structureID string) (ActionOutcome, error)
	MoveTo(ctx context.Context, workerID uint64, to colony.Position) error
}

type QueuePublisher interface {
	Publish(ctx context.Context, colonyName string, tick int64, entries []colony.QueueEntry) error
}
