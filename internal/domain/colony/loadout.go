package colony

type Part string

const (
	PartWork   Part = "work"
	PartCarry  Part = "carry"
	PartMove   Part = "move"
	PartAttack Part = "attack"
	PartRanged Part = "ranged_attack"
	PartHeal   Part = "heal"
	PartClaim  Part = "claim"
	PartTough  Part = "tough"
)

var PartCosts = map[Part]int{
	PartWork:   100,
	PartCarry:  50,
	PartMove:   50,
	PartAttack: 80,
	PartRanged: 150,
	PartHeal:   250,
	PartClaim:  600,
	PartTough:  10,
}

type Loadout []Part

func (l Loadout) Cost() int {
	total := 0
	for _, p := range l {
		total += PartCosts[p]
	}
	return total
}

func (l Loadout) Count(part Part) int {
	n := 0
	for _, p := range l {
		if p == part {
			n++
		}
	}
	return n
}

func (l Loadout) Strings() []string {
	out := make([]string, 0, len(l))
	for _, p := range l {
		out = append(out, string(p))
	}
	return out
}

type ArchetypeID string

const (
	ArchetypeGeneralist   ArchetypeID = "generalist"
	ArchetypeHauler       ArchetypeID = "hauler"
	ArchetypeMiner        ArchetypeID = "miner"
	ArchetypeReserver     ArchetypeID = "reserver"
	ArchetypeRemoteWorker ArchetypeID = "remote_worker"
	ArchetypeAttacker     ArchetypeID = "attacker"
)

type PartCount struct {
	Part  Part
	Count int
}

// Archetype is a unit ratio plus the rules for spending leftover budget.
// MaxGroups of zero means the part ceiling is the only limit.
type Archetype struct {
	ID        ArchetypeID
	Ratio     []PartCount
	Primary   Part
	MaxGroups int
	Extras    bool
	Parity    bool
}

var Archetypes = map[ArchetypeID]Archetype{
	ArchetypeGeneralist: {
		ID:      ArchetypeGeneralist,
		Ratio:   []PartCount{{PartWork, 1}, {PartCarry, 1}, {PartMove, 2}},
		Primary: PartWork,
		Extras:  true,
		Parity:  true,
	},
	ArchetypeHauler: {
		ID:      ArchetypeHauler,
		Ratio:   []PartCount{{PartCarry, 1}, {PartMove, 1}},
		Primary: PartCarry,
		Extras:  true,
		Parity:  true,
	},
	ArchetypeMiner: {
		ID:        ArchetypeMiner,
		Ratio:     []PartCount{{PartWork, 5}, {PartCarry, 1}, {PartMove, 1}},
		Primary:   PartWork,
		MaxGroups: 1,
	},
	ArchetypeReserver: {
		ID:        ArchetypeReserver,
		Ratio:     []PartCount{{PartClaim, 1}, {PartMove, 1}},
		Primary:   PartClaim,
		MaxGroups: 2,
	},
	ArchetypeRemoteWorker: {
		ID:        ArchetypeRemoteWorker,
		Ratio:     []PartCount{{PartWork, 1}, {PartCarry, 1}, {PartMove, 2}},
		Primary:   PartWork,
		MaxGroups: 3,
	},
	ArchetypeAttacker: {
		ID:        ArchetypeAttacker,
		Ratio:     []PartCount{{PartTough, 2}, {PartAttack, 5}, {PartRanged, 2}, {PartMove, 7}},
		Primary:   PartAttack,
		MaxGroups: 1,
	},
}

func (a Archetype) GroupCost() int {
	total := 0
	for _, pc := range a.Ratio {
		total += PartCosts[pc.Part] * pc.Count
	}
	return total
}

func (a Archetype) GroupSize() int {
	total := 0
	for _, pc := range a.Ratio {
		total += pc.Count
	}
	return total
}

// Compose builds the largest loadout of the archetype that fits in budget and
// the part ceiling. It returns nil when not even one ratio group is
// affordable, never a truncated group.
func Compose(id ArchetypeID, budget int) Loadout {
	a, ok := Archetypes[id]
	if !ok {
		return nil
	}
	return a.Compose(budget)
}

func (a Archetype) Compose(budget int) Loadout {
	groupCost := a.GroupCost()
	groupSize := a.GroupSize()
	if groupCost <= 0 || groupSize <= 0 || groupSize > MaxLoadoutParts || budget < groupCost {
		return nil
	}

	groups := budget / groupCost
	if byParts := MaxLoadoutParts / groupSize; groups > byParts {
		groups = byParts
	}
	if a.MaxGroups > 0 && groups > a.MaxGroups {
		groups = a.MaxGroups
	}

	out := make(Loadout, 0, MaxLoadoutParts)
	moves, others := 0, 0
	for _, pc := range a.Ratio {
		for i := 0; i < pc.Count*groups; i++ {
			out = append(out, pc.Part)
			if pc.Part == PartMove {
				moves++
			} else {
				others++
			}
		}
	}
	remaining := budget - groups*groupCost
	if !a.Extras {
		return out
	}

	primaryCost := PartCosts[a.Primary]
	moveCost := PartCosts[PartMove]
	for {
		needMove := a.Parity && a.Primary != PartMove && moves < others+1
		cost, size := primaryCost, 1
		if needMove {
			cost += moveCost
			size++
		}
		if remaining < cost || len(out)+size > MaxLoadoutParts {
			break
		}
		out = append(out, a.Primary)
		others++
		if needMove {
			out = append(out, PartMove)
			moves++
		}
		remaining -= cost
	}
	return out
}
