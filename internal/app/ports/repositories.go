package ports

import (
	"context"
	"time"

	"clawcolony/internal/domain/colony"
)

type WorkerMemoryRepository interface {
	GetByWorkerID(ctx context.Context, workerID uint64) (colony.Memory, error)
	ListByHome(ctx context.Context, home string) (map[uint64]colony.Memory, error)
	ListWorkerIDs(ctx context.Context) ([]uint64, error)
	Save(ctx context.Context, workerID uint64, mem colony.Memory) error
	Delete(ctx context.Context, workerID uint64) error
}

type ColonyStateRepository interface {
	GetByColony(ctx context.Context, name string) (colony.ColonyState, error)
	SaveWithVersion(ctx context.Context, state colony.ColonyState, expectedVersion int64) error
}

type ProductionOutcome string

const (
	ProductionIssued   ProductionOutcome = "issued"
	ProductionRejected ProductionOutcome = "rejected"
)

type ProductionRecord struct {
	CommandID    string             `json:"command_id"`
	Colony       string             `json:"colony"`
	Tick         int64              `json:"tick"`
	WorkerID     uint64             `json:"worker_id"`
	WorkerName   string             `json:"worker_name"`
	Role         colony.Role        `json:"role"`
	Archetype    colony.ArchetypeID `json:"archetype"`
	TargetColony string             `json:"target_colony,omitempty"`
	NodeID       string             `json:"node_id,omitempty"`
	Priority     int                `json:"priority"`
	Cost         int                `json:"cost"`
	Parts        int                `json:"parts"`
	Outcome      ProductionOutcome  `json:"outcome"`
	IssuedAt     time.Time          `json:"issued_at"`
}

type ProductionLogRepository interface {
	Append(ctx context.Context, rec ProductionRecord) error
	ListByColony(ctx context.Context, colony string, limit int) ([]ProductionRecord, error)
}

// TxManager runs fn with every repository call made through its ctx sharing
// one unit of work. A non-nil error from fn discards the writes.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
