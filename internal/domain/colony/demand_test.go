package colony

import "testing"

func TestDemand_FreshColonyHitsMinimum(t *testing.T) {
	tuning := DefaultTuning()
	c := Colony{
		Name:            "W1N1",
		EnergyAvailable: 300,
		EnergyCapacity:  300,
		Nodes: []ResourceNode{
			{ID: "n1", Energy: 3000, EnergyCapacity: 3000},
			{ID: "n2", Energy: 3000, EnergyCapacity: 3000},
		},
	}
	d := NewDemandEstimator(tuning).Breakdown(c, 0)
	if d.Total != tuning.MinWorkers {
		t.Fatalf("total = %d, want %d (breakdown %+v)", d.Total, tuning.MinWorkers, d)
	}
	if d.Total > tuning.MaxWorkers {
		t.Fatalf("total above max: %d", d.Total)
	}
}

func TestDemand_EmergencyFloorOnlyBelowCritical(t *testing.T) {
	tuning := DefaultTuning()
	tuning.MinWorkers = 2
	tuning.EmergencyFloor = 6
	tuning.CriticalWorkers = 5
	est := NewDemandEstimator(tuning)
	c := Colony{Nodes: []ResourceNode{{ID: "n1"}}}

	if d := est.Breakdown(c, 3); d.Floor != 6 || d.Total < 6 {
		t.Fatalf("below critical: floor/total = %d/%d, want floor 6", d.Floor, d.Total)
	}
	if d := est.Breakdown(c, 5); d.Floor != 2 {
		t.Fatalf("at critical: floor = %d, want 2", d.Floor)
	}
}

func TestDemand_DefaultEmergencyFloorKeepsWipedColonyAtMinimum(t *testing.T) {
	tuning := DefaultTuning().Normalize()
	if tuning.EmergencyFloor > tuning.MinWorkers {
		t.Fatalf("default emergency floor %d above min workers %d", tuning.EmergencyFloor, tuning.MinWorkers)
	}
	c := Colony{Nodes: []ResourceNode{{ID: "n1"}}}
	for _, pop := range []int{0, tuning.CriticalWorkers - 1} {
		if d := NewDemandEstimator(tuning).Breakdown(c, pop); d.Floor != tuning.MinWorkers {
			t.Fatalf("population %d: floor = %d, want %d", pop, d.Floor, tuning.MinWorkers)
		}
	}
}

func TestDemand_MonotonicInDemandAndSupply(t *testing.T) {
	tuning := DefaultTuning()
	tuning.MinWorkers = 1
	tuning.MaxWorkers = 200
	est := NewDemandEstimator(tuning)

	base := Colony{
		EnergyAvailable: 800,
		EnergyCapacity:  800,
		Nodes:           []ResourceNode{{ID: "n1"}, {ID: "n2"}},
		Structures: []Structure{
			{ID: "sp", Kind: StructureSpawn, Hits: 1, HitsMax: 1},
		},
	}
	prev := est.Estimate(base, 0)
	more := base
	for i := 0; i < 10; i++ {
		more.Structures = append(append([]Structure(nil), more.Structures...), Structure{ID: "t", Kind: StructureTower, Hits: 1, HitsMax: 1})
		got := est.Estimate(more, 0)
		if got < prev {
			t.Fatalf("adding a tower lowered the estimate: %d -> %d", prev, got)
		}
		prev = got
	}

	rich := base
	rich.Nodes = append(append([]ResourceNode(nil), base.Nodes...), ResourceNode{ID: "n3"}, ResourceNode{ID: "n4"})
	if est.Estimate(rich, 0) > est.Estimate(base, 0) {
		t.Fatalf("adding supply raised the estimate")
	}
}

func TestDemand_NoSupplySaturates(t *testing.T) {
	tuning := DefaultTuning()
	c := Colony{
		EnergyAvailable: 300,
		EnergyCapacity:  300,
		Structures:      []Structure{{ID: "sp", Kind: StructureSpawn, Hits: 1, HitsMax: 1}},
	}
	if got := NewDemandEstimator(tuning).Estimate(c, 0); got != tuning.MaxWorkers {
		t.Fatalf("estimate without nodes = %d, want %d", got, tuning.MaxWorkers)
	}
}

func TestDemand_ClampedToMaxWorkers(t *testing.T) {
	tuning := DefaultTuning()
	tuning.MaxWorkers = 12
	c := Colony{EnergyCapacity: 12900, EnergyAvailable: 12900, Nodes: []ResourceNode{{ID: "n1"}}}
	for i := 0; i < 60; i++ {
		c.Structures = append(c.Structures, Structure{ID: "ext", Kind: StructureExtension, Hits: 1, HitsMax: 1})
	}
	if got := NewDemandEstimator(tuning).Estimate(c, 0); got != 12 {
		t.Fatalf("estimate = %d, want 12", got)
	}
}
