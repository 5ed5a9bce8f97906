package sim

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"clawcolony/internal/app/ports"
	"clawcolony/internal/domain/colony"
)

type Config struct {
	Owner          string
	SpawnRegen     int
	NodeRegen      int
	HarvestPerWork int
	Lifetime       int
	TicksPerPart   int
	TickStore      TickStore
}

// TickStore persists the host tick counter so a restarted host resumes
// where it stopped.
type TickStore interface {
	Get(ctx context.Context) (tick int64, ok bool, err error)
	Save(ctx context.Context, tick int64) error
}

func DefaultConfig() Config {
	return Config{
		Owner:          "clawcolony",
		SpawnRegen:     1,
		NodeRegen:      10,
		HarvestPerWork: 2,
		Lifetime:       colony.DefaultLifetime,
		TicksPerPart:   3,
	}
}

type body struct {
	colony.Worker
	work         int
	spawningLeft int
}

// Host is a deterministic in-process world: colonies with structures and
// nodes, workers with lifetimes, one production slot per colony per tick.
// Movement is a straight chessboard step; there is no terrain.
type Host struct {
	cfg Config

	mu       sync.Mutex
	tick     int64
	nextID   uint64
	colonies map[string]*colony.Colony
	bodies   map[uint64]*body
	produced map[string]bool
}

func NewHost(cfg Config) *Host {
	def := DefaultConfig()
	if cfg.Owner == "" {
		cfg.Owner = def.Owner
	}
	if cfg.SpawnRegen <= 0 {
		cfg.SpawnRegen = def.SpawnRegen
	}
	if cfg.NodeRegen <= 0 {
		cfg.NodeRegen = def.NodeRegen
	}
	if cfg.HarvestPerWork <= 0 {
		cfg.HarvestPerWork = def.HarvestPerWork
	}
	if cfg.Lifetime <= 0 {
		cfg.Lifetime = def.Lifetime
	}
	if cfg.TicksPerPart < 0 {
		cfg.TicksPerPart = 0
	}
	return &Host{
		cfg:      cfg,
		colonies: map[string]*colony.Colony{},
		bodies:   map[uint64]*body{},
		produced: map[string]bool{},
	}
}

// Restore loads the persisted tick counter, if any.
func (h *Host) Restore(ctx context.Context) error {
	if h.cfg.TickStore == nil {
		return nil
	}
	tick, ok, err := h.cfg.TickStore.Get(ctx)
	if err != nil {
		return err
	}
	if ok {
		h.mu.Lock()
		h.tick = tick
		h.mu.Unlock()
	}
	return nil
}

func (h *Host) AddColony(c colony.Colony) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c.Owner == "" {
		c.Owner = h.cfg.Owner
	}
	cp := cloneColony(c)
	h.colonies[c.Name] = &cp
}

// AddWorker places an already-living worker; loadout drives its stats.
func (h *Host) AddWorker(w colony.Worker, loadout colony.Loadout) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	w.ID = h.nextID
	if w.TicksToLive <= 0 {
		w.TicksToLive = h.cfg.Lifetime
	}
	w.CarryCapacity = 50 * loadout.Count(colony.PartCarry)
	w.Memory = colony.Memory{}
	h.bodies[w.ID] = &body{Worker: w, work: loadout.Count(colony.PartWork)}
	return w.ID
}

func (h *Host) Tick(_ context.Context) (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.tick, nil
}

func (h *Host) Colony(_ context.Context, name string) (colony.Colony, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.colonies[name]
	if !ok {
		return colony.Colony{}, ports.ErrNotFound
	}
	out := cloneColony(*c)
	out.Tick = h.tick
	out.EnergyAvailable, out.EnergyCapacity = energyOf(out)
	out.Visible = true
	return out, nil
}

func (h *Host) Roster(_ context.Context) ([]colony.Worker, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]colony.Worker, 0, len(h.bodies))
	for _, b := range h.bodies {
		out = append(out, b.Worker)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// BeginProduction drains spawns then extensions for the loadout cost and
// starts the worker at the first spawn.
func (h *Host) BeginProduction(_ context.Context, cmd ports.ProductionCommand) (uint64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.colonies[cmd.Colony]
	if !ok {
		return 0, fmt.Errorf("colony %s: %w", cmd.Colony, ports.ErrNotFound)
	}
	if h.produced[cmd.Colony] {
		return 0, fmt.Errorf("facility busy this tick: %w", ports.ErrProductionRejected)
	}
	spawns := c.StructuresOf(colony.StructureSpawn)
	if len(spawns) == 0 {
		return 0, fmt.Errorf("no production facility: %w", ports.ErrProductionRejected)
	}
	if len(cmd.Loadout) == 0 || len(cmd.Loadout) > colony.MaxLoadoutParts {
		return 0, fmt.Errorf("invalid loadout of %d parts: %w", len(cmd.Loadout), ports.ErrProductionRejected)
	}
	cost := cmd.Loadout.Cost()
	if available, _ := energyOf(*c); available < cost {
		return 0, fmt.Errorf("need %d energy, have %d: %w", cost, available, ports.ErrProductionRejected)
	}
	drain(c, cost)
	h.produced[cmd.Colony] = true

	h.nextID++
	id := h.nextID
	h.bodies[id] = &body{
		Worker: colony.Worker{
			ID:            id,
			Name:          cmd.Name,
			Colony:        cmd.Colony,
			Pos:           spawns[0].Pos,
			TicksToLive:   h.cfg.Lifetime,
			CarryCapacity: 50 * cmd.Loadout.Count(colony.PartCarry),
			Spawning:      h.cfg.TicksPerPart > 0,
		},
		work:         cmd.Loadout.Count(colony.PartWork),
		spawningLeft: h.cfg.TicksPerPart * len(cmd.Loadout),
	}
	return id, nil
}

// Advance moves the world one tick: production slots reopen, spawns and
// nodes regenerate, lifetimes decay and expired workers vanish.
func (h *Host) Advance(ctx context.Context) (int64, error) {
	h.mu.Lock()
	h.tick++
	tick := h.tick
	h.produced = map[string]bool{}
	for _, c := range h.colonies {
		for i := range c.Structures {
			s := &c.Structures[i]
			if s.Kind == colony.StructureSpawn && s.Energy < s.EnergyCapacity {
				s.Energy = minInt(s.EnergyCapacity, s.Energy+h.cfg.SpawnRegen)
			}
		}
		for i := range c.Nodes {
			n := &c.Nodes[i]
			n.Energy = minInt(n.EnergyCapacity, n.Energy+h.cfg.NodeRegen)
		}
	}
	for id, b := range h.bodies {
		if b.Spawning {
			b.spawningLeft--
			if b.spawningLeft <= 0 {
				b.Spawning = false
			}
			continue
		}
		b.TicksToLive--
		if b.TicksToLive <= 0 {
			delete(h.bodies, id)
		}
	}
	h.mu.Unlock()

	if h.cfg.TickStore != nil {
		if err := h.cfg.TickStore.Save(ctx, tick); err != nil {
			return tick, err
		}
	}
	return tick, nil
}

// Damage lowers a structure's hits; used by scenarios and tests.
func (h *Host) Damage(colonyName, structureID string, hits int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.colonies[colonyName]
	if !ok {
		return
	}
	for i := range c.Structures {
		if c.Structures[i].ID == structureID {
			c.Structures[i].Hits = maxInt(0, c.Structures[i].Hits-hits)
		}
	}
}

func (h *Host) SetHostile(colonyName string, hostile bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.colonies[colonyName]; ok {
		c.HostilePresent = hostile
	}
}

func energyOf(c colony.Colony) (available, capacity int) {
	for _, s := range c.Structures {
		if s.Kind == colony.StructureSpawn || s.Kind == colony.StructureExtension {
			available += s.Energy
			capacity += s.EnergyCapacity
		}
	}
	return available, capacity
}

func drain(c *colony.Colony, cost int) {
	for _, kind := range []colony.StructureKind{colony.StructureSpawn, colony.StructureExtension} {
		for i := range c.Structures {
			s := &c.Structures[i]
			if s.Kind != kind || cost == 0 {
				continue
			}
			take := minInt(s.Energy, cost)
			s.Energy -= take
			cost -= take
		}
	}
}

func cloneColony(c colony.Colony) colony.Colony {
	out := c
	out.Structures = append([]colony.Structure(nil), c.Structures...)
	out.Sites = append([]colony.ConstructionSite(nil), c.Sites...)
	out.Nodes = append([]colony.ResourceNode(nil), c.Nodes...)
	if c.Controller != nil {
		ctrl := *c.Controller
		if ctrl.Reservation != nil {
			res := *ctrl.Reservation
			ctrl.Reservation = &res
		}
		out.Controller = &ctrl
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
