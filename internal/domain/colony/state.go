package colony

// StructureRefs is the cached id list of a colony's structures, refreshed on
// a fixed tick interval. Ids may point at structures that no longer exist;
// readers drop them on resolve.
type StructureRefs struct {
	RefreshedAt    int64             `json:"refreshed_at"`
	Storage        string            `json:"storage,omitempty"`
	Spawns         []string          `json:"spawns,omitempty"`
	Extensions     []string          `json:"extensions,omitempty"`
	Towers         []string          `json:"towers,omitempty"`
	Containers     []string          `json:"containers,omitempty"`
	NodeContainers map[string]string `json:"node_containers,omitempty"`
}

// ColonyState is the persisted cross-tick state owned by one colony.
type ColonyState struct {
	Colony         string           `json:"colony"`
	Structures     StructureRefs    `json:"structures"`
	ReserverTimers map[string]int64 `json:"reserver_timers,omitempty"`
	Queue          []QueueEntry     `json:"queue"`
	QueueTick      int64            `json:"queue_tick"`
	Version        int64            `json:"version"`
}

func NewColonyState(name string) ColonyState {
	return ColonyState{
		Colony:         name,
		ReserverTimers: map[string]int64{},
		Structures:     StructureRefs{RefreshedAt: -1, NodeContainers: map[string]string{}},
	}
}

func (s ColonyState) Clone() ColonyState {
	out := s
	out.Structures.Spawns = append([]string(nil), s.Structures.Spawns...)
	out.Structures.Extensions = append([]string(nil), s.Structures.Extensions...)
	out.Structures.Towers = append([]string(nil), s.Structures.Towers...)
	out.Structures.Containers = append([]string(nil), s.Structures.Containers...)
	out.Structures.NodeContainers = make(map[string]string, len(s.Structures.NodeContainers))
	for k, v := range s.Structures.NodeContainers {
		out.Structures.NodeContainers[k] = v
	}
	out.ReserverTimers = make(map[string]int64, len(s.ReserverTimers))
	for k, v := range s.ReserverTimers {
		out.ReserverTimers[k] = v
	}
	out.Queue = append([]QueueEntry(nil), s.Queue...)
	return out
}
