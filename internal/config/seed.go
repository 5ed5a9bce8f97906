package config

import (
	"fmt"

	"clawcolony/internal/domain/colony"
)

const (
	spawnCapacity     = 300
	spawnHits         = 5000
	extensionCapacity = 50
	extensionHits     = 1000
	defaultNodeSize   = 3000
)

// Build turns a seed entry into the initial colony snapshot for the
// in-process host.
func (s SeedColony) Build(owner string) colony.Colony {
	level := s.ControllerLevel
	if level <= 0 {
		level = 1
	}
	energy := s.SpawnEnergy
	if energy <= 0 || energy > spawnCapacity {
		energy = spawnCapacity
	}
	spawn := colony.Position{X: s.SpawnX, Y: s.SpawnY}
	c := colony.Colony{
		Name:       s.Name,
		Owner:      owner,
		Controller: &colony.Controller{Level: level, Owned: true},
		Structures: []colony.Structure{{
			ID:             s.Name + "-spawn",
			Kind:           colony.StructureSpawn,
			Pos:            spawn,
			Hits:           spawnHits,
			HitsMax:        spawnHits,
			Energy:         energy,
			EnergyCapacity: spawnCapacity,
		}},
	}
	for i := 0; i < s.Extensions; i++ {
		c.Structures = append(c.Structures, colony.Structure{
			ID:             fmt.Sprintf("%s-ext-%d", s.Name, i+1),
			Kind:           colony.StructureExtension,
			Pos:            colony.Position{X: spawn.X + 2 + i%5, Y: spawn.Y + 2 + i/5},
			Hits:           extensionHits,
			HitsMax:        extensionHits,
			EnergyCapacity: extensionCapacity,
		})
	}
	for i, n := range s.Nodes {
		id := n.ID
		if id == "" {
			id = fmt.Sprintf("%s-node-%d", s.Name, i+1)
		}
		capacity := n.Capacity
		if capacity <= 0 {
			capacity = defaultNodeSize
		}
		c.Nodes = append(c.Nodes, colony.ResourceNode{
			ID:             id,
			Pos:            colony.Position{X: n.X, Y: n.Y},
			Energy:         capacity,
			EnergyCapacity: capacity,
		})
	}
	return c
}
