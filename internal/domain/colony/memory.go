package colony

// MemoryBase holds the fields every worker persists regardless of role.
type MemoryBase struct {
	Role          Role   `json:"role"`
	PreviousRole  Role   `json:"previous_role,omitempty"`
	RoleChangedAt int64  `json:"role_changed_at,omitempty"`
	FixedRole     bool   `json:"fixed_role"`
	HomeColony    string `json:"home_colony"`
	TargetColony  string `json:"target_colony,omitempty"`
	StaggerOffset *int   `json:"stagger_offset,omitempty"`
	ProviderID    string `json:"provider_id,omitempty"`
	Gathering     bool   `json:"gathering"`
}

type MinerMemory struct {
	NodeID string `json:"node_id"`
}

type HaulerMemory struct {
	ContainerID string `json:"container_id,omitempty"`
}

type ReserverMemory struct {
	SpawnTick int64 `json:"spawn_tick"`
}

// Memory is the persisted worker record. Exactly one of the detail pointers
// matching the role's kind is populated; the rest stay nil.
type Memory struct {
	MemoryBase
	Miner    *MinerMemory    `json:"miner,omitempty"`
	Hauler   *HaulerMemory   `json:"hauler,omitempty"`
	Reserver *ReserverMemory `json:"reserver,omitempty"`
}

type MemoryKind string

const (
	MemoryKindGatherer MemoryKind = "gatherer"
	MemoryKindMiner    MemoryKind = "miner"
	MemoryKindHauler   MemoryKind = "hauler"
	MemoryKindReserver MemoryKind = "reserver"
	MemoryKindBase     MemoryKind = "base"
)

func KindOf(role Role) MemoryKind {
	switch role {
	case RoleMiner:
		return MemoryKindMiner
	case RoleHauler, RoleRemoteHauler:
		return MemoryKindHauler
	case RoleReserver:
		return MemoryKindReserver
	case RoleAttacker:
		return MemoryKindBase
	default:
		return MemoryKindGatherer
	}
}

func NewMemory(role Role, home string) Memory {
	m := Memory{MemoryBase: MemoryBase{Role: role, HomeColony: home, Gathering: true}}
	m.resetDetail()
	return m
}

func (m Memory) Kind() MemoryKind {
	return KindOf(m.Role)
}

func (m Memory) IsRemote() bool {
	return m.TargetColony != "" && m.TargetColony != m.HomeColony
}

// AssignedNode returns the resource node a dedicated miner is bound to.
func (m Memory) AssignedNode() string {
	if m.Miner == nil {
		return ""
	}
	return m.Miner.NodeID
}

func (m Memory) AssignedContainer() string {
	if m.Hauler == nil {
		return ""
	}
	return m.Hauler.ContainerID
}

func (m Memory) Offset() (int, bool) {
	if m.StaggerOffset == nil {
		return 0, false
	}
	return *m.StaggerOffset, true
}

func (m *Memory) SetOffset(offset int) {
	m.StaggerOffset = &offset
}

// SwitchRole records the previous role, stamps the tick and replaces the
// role-specific detail with a fresh one for the new role.
func (m *Memory) SwitchRole(role Role, tick int64) {
	if m.Role == role {
		return
	}
	m.PreviousRole = m.Role
	m.Role = role
	m.RoleChangedAt = tick
	m.resetDetail()
}

// UpdateGathering flips between gathering and delivering based on the load a
// worker carries and reports whether the toggle changed.
func (m *Memory) UpdateGathering(carried, capacity int) bool {
	switch {
	case m.Gathering && capacity > 0 && carried >= capacity:
		m.Gathering = false
		return true
	case !m.Gathering && carried == 0:
		m.Gathering = true
		return true
	default:
		return false
	}
}

func (m *Memory) ClearProvider() {
	m.ProviderID = ""
}

// AssignContainer binds a hauler to a container. It is a no-op for roles
// without hauler detail.
func (m *Memory) AssignContainer(id string) {
	if m.Hauler == nil {
		return
	}
	m.Hauler.ContainerID = id
}

func (m Memory) Clone() Memory {
	out := m
	if m.StaggerOffset != nil {
		v := *m.StaggerOffset
		out.StaggerOffset = &v
	}
	if m.Miner != nil {
		v := *m.Miner
		out.Miner = &v
	}
	if m.Hauler != nil {
		v := *m.Hauler
		out.Hauler = &v
	}
	if m.Reserver != nil {
		v := *m.Reserver
		out.Reserver = &v
	}
	return out
}

func (m *Memory) resetDetail() {
	m.Miner = nil
	m.Hauler = nil
	m.Reserver = nil
	switch KindOf(m.Role) {
	case MemoryKindMiner:
		m.Miner = &MinerMemory{}
	case MemoryKindHauler:
		m.Hauler = &HaulerMemory{}
	case MemoryKindReserver:
		m.Reserver = &ReserverMemory{}
	}
}
