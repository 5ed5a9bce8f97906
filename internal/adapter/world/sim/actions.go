package sim

import (
	"context"
	"fmt"

	"clawcolony/internal/app/ports"
	"clawcolony/internal/domain/colony"
)

func (h *Host) locate(workerID uint64) (*body, *colony.Colony, error) {
	b, ok := h.bodies[workerID]
	if !ok {
		return nil, nil, fmt.Errorf("worker %d: %w", workerID, ports.ErrNotFound)
	}
	c, ok := h.colonies[b.Colony]
	if !ok {
		return nil, nil, fmt.Errorf("colony %s: %w", b.Colony, ports.ErrNotFound)
	}
	return b, c, nil
}

func (h *Host) Harvest(_ context.Context, workerID uint64, nodeID string) (ports.ActionOutcome, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	b, c, err := h.locate(workerID)
	if err != nil {
		return ports.ActionRejected, err
	}
	if b.Spawning || b.work == 0 {
		return ports.ActionRejected, nil
	}
	for i := range c.Nodes {
		n := &c.Nodes[i]
		if n.ID != nodeID {
			continue
		}
		if b.Pos.Range(n.Pos) > 1 {
			return ports.ActionNotInRange, nil
		}
		if n.Energy <= 0 {
			return ports.ActionEmpty, nil
		}
		free := b.CarryCapacity - b.Carried
		if free <= 0 {
			return ports.ActionFull, nil
		}
		amount := minInt(minInt(b.work*h.cfg.HarvestPerWork, n.Energy), free)
		n.Energy -= amount
		b.Carried += amount
		return ports.ActionOK, nil
	}
	return ports.ActionRejected, fmt.Errorf("node %s: %w", nodeID, ports.ErrNotFound)
}

func (h *Host) Withdraw(_ context.Context, workerID uint64, structureID string) (ports.ActionOutcome, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	b, c, err := h.locate(workerID)
	if err != nil {
		return ports.ActionRejected, err
	}
	s := structureIn(c, structureID)
	if s == nil {
		return ports.ActionRejected, fmt.Errorf("structure %s: %w", structureID, ports.ErrNotFound)
	}
	if b.Pos.Range(s.Pos) > 1 {
		return ports.ActionNotInRange, nil
	}
	if s.Energy <= 0 {
		return ports.ActionEmpty, nil
	}
	free := b.CarryCapacity - b.Carried
	if free <= 0 {
		return ports.ActionFull, nil
	}
	amount := minInt(s.Energy, free)
	s.Energy -= amount
	b.Carried += amount
	return ports.ActionOK, nil
}

func (h *Host) Transfer(_ context.Context, workerID uint64, structureID string) (ports.ActionOutcome, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	b, c, err := h.locate(workerID)
	if err != nil {
		return ports.ActionRejected, err
	}
	s := structureIn(c, structureID)
	if s == nil {
		return ports.ActionRejected, fmt.Errorf("structure %s: %w", structureID, ports.ErrNotFound)
	}
	if b.Pos.Range(s.Pos) > 1 {
		return ports.ActionNotInRange, nil
	}
	if b.Carried <= 0 {
		return ports.ActionEmpty, nil
	}
	free := s.FreeCapacity()
	if free <= 0 {
		return ports.ActionFull, nil
	}
	amount := minInt(free, b.Carried)
	s.Energy += amount
	b.Carried -= amount
	return ports.ActionOK, nil
}

// MoveTo steps one tile toward the target on each axis.
func (h *Host) MoveTo(_ context.Context, workerID uint64, to colony.Position) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	b, _, err := h.locate(workerID)
	if err != nil {
		return err
	}
	if b.Spawning {
		return nil
	}
	b.Pos.X += step(to.X - b.Pos.X)
	b.Pos.Y += step(to.Y - b.Pos.Y)
	return nil
}

func structureIn(c *colony.Colony, id string) *colony.Structure {
	for i := range c.Structures {
		if c.Structures[i].ID == id {
			return &c.Structures[i]
		}
	}
	return nil
}

func step(d int) int {
	switch {
	case d > 0:
		return 1
	case d < 0:
		return -1
	default:
		return 0
	}
}
