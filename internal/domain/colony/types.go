package colony

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Range is the chessboard distance used for "nearest" lookups; the core never
// computes walking paths.
func (p Position) Range(o Position) int {
	dx := p.X - o.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - o.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

type StructureKind string

const (
	StructureSpawn     StructureKind = "spawn"
	StructureExtension StructureKind = "extension"
	StructureTower     StructureKind = "tower"
	StructureStorage   StructureKind = "storage"
	StructureContainer StructureKind = "container"
	StructureRoad      StructureKind = "road"
	StructureWall      StructureKind = "wall"
)

type Structure struct {
	ID             string        `json:"id"`
	Kind           StructureKind `json:"kind"`
	Pos            Position      `json:"pos"`
	Hits           int           `json:"hits"`
	HitsMax        int           `json:"hits_max"`
	Energy         int           `json:"energy"`
	EnergyCapacity int           `json:"energy_capacity"`
}

func (s Structure) Damaged() bool {
	return s.Hits < s.HitsMax
}

func (s Structure) FreeCapacity() int {
	free := s.EnergyCapacity - s.Energy
	if free < 0 {
		return 0
	}
	return free
}

func (s Structure) AcceptsEnergy() bool {
	switch s.Kind {
	case StructureSpawn, StructureExtension, StructureTower, StructureContainer:
		return s.FreeCapacity() > 0
	default:
		return false
	}
}

type ConstructionSite struct {
	ID   string        `json:"id"`
	Kind StructureKind `json:"kind"`
	Pos  Position      `json:"pos"`
}

type ResourceNode struct {
	ID             string   `json:"id"`
	Pos            Position `json:"pos"`
	Energy         int      `json:"energy"`
	EnergyCapacity int      `json:"energy_capacity"`
}

type Reservation struct {
	Owner      string `json:"owner"`
	TicksToEnd int    `json:"ticks_to_end"`
}

type Controller struct {
	Level         int          `json:"level"`
	Progress      int          `json:"progress"`
	ProgressTotal int          `json:"progress_total"`
	Owned         bool         `json:"owned"`
	Reservation   *Reservation `json:"reservation,omitempty"`
}

// Colony is the read-only snapshot the host hands over each tick.
type Colony struct {
	Name            string             `json:"name"`
	Owner           string             `json:"owner"`
	Tick            int64              `json:"tick"`
	EnergyAvailable int                `json:"energy_available"`
	EnergyCapacity  int                `json:"energy_capacity"`
	Controller      *Controller        `json:"controller,omitempty"`
	Structures      []Structure        `json:"structures"`
	Sites           []ConstructionSite `json:"sites"`
	Nodes           []ResourceNode     `json:"nodes"`
	HostilePresent  bool               `json:"hostile_present"`
	Visible         bool               `json:"visible"`
}

func (c Colony) StructuresOf(kind StructureKind) []Structure {
	out := make([]Structure, 0)
	for _, s := range c.Structures {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

func (c Colony) CountOf(kind StructureKind) int {
	n := 0
	for _, s := range c.Structures {
		if s.Kind == kind {
			n++
		}
	}
	return n
}

func (c Colony) Storage() (Structure, bool) {
	for _, s := range c.Structures {
		if s.Kind == StructureStorage {
			return s, true
		}
	}
	return Structure{}, false
}

func (c Colony) StructureByID(id string) (Structure, bool) {
	for _, s := range c.Structures {
		if s.ID == id {
			return s, true
		}
	}
	return Structure{}, false
}

func (c Colony) NodeByID(id string) (ResourceNode, bool) {
	for _, n := range c.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return ResourceNode{}, false
}

// ReservedBy reports whether the controller carries a reservation held by owner.
func (c Colony) ReservedBy(owner string) bool {
	if c.Controller == nil || c.Controller.Reservation == nil || owner == "" {
		return false
	}
	return c.Controller.Reservation.Owner == owner
}

func (c Colony) ReservationTicks() int {
	if c.Controller == nil || c.Controller.Reservation == nil {
		return 0
	}
	return c.Controller.Reservation.TicksToEnd
}

// Worker is a roster entry joined with its persisted memory.
type Worker struct {
	ID            uint64   `json:"id"`
	Name          string   `json:"name"`
	Colony        string   `json:"colony"`
	Pos           Position `json:"pos"`
	TicksToLive   int      `json:"ticks_to_live"`
	Carried       int      `json:"carried"`
	CarryCapacity int      `json:"carry_capacity"`
	Spawning      bool     `json:"spawning"`
	Memory        Memory   `json:"memory"`
}

func (w Worker) Role() Role {
	return w.Memory.Role
}
