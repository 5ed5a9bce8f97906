package colony

import "math"

type Demand struct {
	Supply        float64 `json:"supply"`
	Maintenance   float64 `json:"maintenance"`
	Replacement   float64 `json:"replacement"`
	EstimatedCost int     `json:"estimated_cost"`
	Specialists   int     `json:"specialists"`
	Generalists   int     `json:"generalists"`
	Floor         int     `json:"floor"`
	Total         int     `json:"total"`
}

type DemandEstimator struct {
	Tuning Tuning
	Scorer Scorer
}

func NewDemandEstimator(t Tuning) DemandEstimator {
	return DemandEstimator{Tuning: t, Scorer: NewScorer(t)}
}

func (e DemandEstimator) Estimate(c Colony, population int) int {
	return e.Breakdown(c, population).Total
}

// Breakdown derives the target headcount from the energy balance of the
// colony. Raising demand or lowering supply never lowers the result.
func (e DemandEstimator) Breakdown(c Colony, population int) Demand {
	econ := e.Tuning.Economy
	var d Demand

	d.Supply = float64(len(c.Nodes)) * econ.NodeYieldPerTick

	fill := float64(c.CountOf(StructureExtension)*econ.ExtensionCapacity+c.CountOf(StructureSpawn)*econ.SpawnCapacity) * econ.FillRate
	d.Maintenance = fill + float64(c.CountOf(StructureTower))*econ.TowerDrainPerTick
	if _, ok := c.Storage(); ok {
		d.Maintenance += econ.StorageTricklePerTick
	}

	budget := c.EnergyAvailable
	if half := c.EnergyCapacity / 2; half > budget {
		budget = half
	}
	d.EstimatedCost = Compose(ArchetypeGeneralist, budget).Cost()
	lifetime := econ.WorkerLifetime
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	d.Replacement = float64(d.EstimatedCost) / float64(lifetime) * float64(econ.ReplacementPopulation)

	demand := d.Maintenance + d.Replacement
	capacity := d.Supply * econ.HarvestEfficiency
	switch {
	case demand <= 0:
		d.Specialists = 0
	case capacity <= 0:
		d.Specialists = e.Tuning.MaxWorkers
	default:
		d.Specialists = int(math.Ceil(demand / capacity))
	}

	d.Generalists = e.Scorer.Score(c).NonZero()

	d.Floor = e.Tuning.MinWorkers
	if population < e.Tuning.CriticalWorkers && e.Tuning.EmergencyFloor > d.Floor {
		d.Floor = e.Tuning.EmergencyFloor
	}

	d.Total = d.Specialists + d.Generalists
	if d.Total < d.Floor {
		d.Total = d.Floor
	}
	if e.Tuning.MaxWorkers > 0 && d.Total > e.Tuning.MaxWorkers {
		d.Total = e.Tuning.MaxWorkers
	}
	return d
}
