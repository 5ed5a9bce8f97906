package inspect

import (
	"clawcolony/internal/app/ports"
	"clawcolony/internal/domain/colony"
)

type Request struct {
	Colony string
	Limit  int
}

type QueueResponse struct {
	Colony         string              `json:"colony"`
	Tick           int64               `json:"tick"`
	Version        int64               `json:"version"`
	Entries        []colony.QueueEntry `json:"entries"`
	ReserverTimers map[string]int64    `json:"reserver_timers"`
}

type WorkerView struct {
	WorkerID     uint64      `json:"worker_id"`
	Role         colony.Role `json:"role"`
	FixedRole    bool        `json:"fixed_role"`
	TargetColony string      `json:"target_colony,omitempty"`
	NodeID       string      `json:"node_id,omitempty"`
	ContainerID  string      `json:"container_id,omitempty"`
	ProviderID   string      `json:"provider_id,omitempty"`
	Gathering    bool        `json:"gathering"`
}

type WorkersResponse struct {
	Colony  string         `json:"colony"`
	ByRole  map[string]int `json:"by_role"`
	Workers []WorkerView   `json:"workers"`
}

type ProductionResponse struct {
	Colony  string                   `json:"colony"`
	Records []ports.ProductionRecord `json:"records"`
}

type ScoresResponse struct {
	Colony      string             `json:"colony"`
	Tick        int64              `json:"tick"`
	Scores      map[string]float64 `json:"scores"`
	Recommended colony.Role        `json:"recommended"`
	Population  int                `json:"population"`
	Demand      colony.Demand      `json:"demand"`
}
