package colony

type Scores map[Role]float64

// ScoredRoles is the fixed evaluation order; map iteration never decides a winner.
var ScoredRoles = []Role{RoleHauler, RoleBuilder, RoleUpgrader, RoleRepairer}

type Scorer struct {
	Weights ScoreWeights
}

func NewScorer(t Tuning) Scorer {
	return Scorer{Weights: t.Scores}
}

func (s Scorer) Score(c Colony) Scores {
	return Scores{
		RoleHauler:   s.hauler(c),
		RoleBuilder:  s.builder(c),
		RoleUpgrader: s.upgrader(c),
		RoleRepairer: s.repairer(c),
	}
}

func (s Scorer) builder(c Colony) float64 {
	return float64(len(c.Sites)) * s.Weights.BuilderPerSite
}

func (s Scorer) repairer(c Colony) float64 {
	damaged, critical := 0, 0
	for _, st := range c.Structures {
		if st.Kind == StructureWall || st.Kind == StructureRoad {
			continue
		}
		if st.Damaged() {
			damaged++
		}
		if isCriticalKind(st.Kind) && float64(st.Hits) < float64(st.HitsMax)*s.Weights.CriticalIntegrity {
			critical++
		}
	}
	return float64(damaged)*s.Weights.RepairerPerDamaged + float64(critical)*s.Weights.RepairerPerCritical
}

func (s Scorer) upgrader(c Colony) float64 {
	ctrl := c.Controller
	if ctrl == nil || ctrl.Level >= MaxControllerLevel {
		return 0
	}
	total := ctrl.ProgressTotal
	if total <= 0 {
		total = s.Weights.DefaultProgressTotal
	}
	if total <= 0 {
		return 0
	}
	frac := float64(ctrl.Progress) / float64(total)
	if frac > 1 {
		frac = 1
	}
	if frac < 0 {
		frac = 0
	}
	return (1 - frac) * s.Weights.UpgraderProgress
}

func (s Scorer) hauler(c Colony) float64 {
	if _, ok := c.Storage(); !ok {
		return 0
	}
	need := 0
	for _, st := range c.Structures {
		if st.AcceptsEnergy() {
			need++
		}
	}
	if s.Weights.HaulerNeedCap > 0 && need > s.Weights.HaulerNeedCap {
		need = s.Weights.HaulerNeedCap
	}
	return float64(need) * s.Weights.HaulerPerNeed
}

func isCriticalKind(kind StructureKind) bool {
	return kind == StructureSpawn || kind == StructureTower || kind == StructureExtension
}

// Recommend returns the single highest scoring role. Ties for the top score
// and an all-zero board both resolve to DefaultRole.
func (s Scores) Recommend() Role {
	best := DefaultRole
	bestScore := 0.0
	tied := false
	for _, role := range ScoredRoles {
		v := s[role]
		switch {
		case v > bestScore:
			best, bestScore, tied = role, v, false
		case v == bestScore && v > 0:
			tied = true
		}
	}
	if tied {
		return DefaultRole
	}
	return best
}

// NonZero counts roles with a positive score.
func (s Scores) NonZero() int {
	n := 0
	for _, role := range ScoredRoles {
		if s[role] > 0 {
			n++
		}
	}
	return n
}
