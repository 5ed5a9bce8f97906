package colony

const (
	MaxLoadoutParts    = 50
	MaxControllerLevel = 8
	DefaultLifetime    = 1500
)

type ScoreWeights struct {
	BuilderPerSite       float64 `yaml:"builder_per_site"`
	RepairerPerDamaged   float64 `yaml:"repairer_per_damaged"`
	RepairerPerCritical  float64 `yaml:"repairer_per_critical"`
	CriticalIntegrity    float64 `yaml:"critical_integrity"`
	UpgraderProgress     float64 `yaml:"upgrader_progress"`
	DefaultProgressTotal int     `yaml:"default_progress_total"`
	HaulerPerNeed        float64 `yaml:"hauler_per_need"`
	HaulerNeedCap        int     `yaml:"hauler_need_cap"`
}

type EconomyTuning struct {
	NodeYieldPerTick      float64 `yaml:"node_yield_per_tick"`
	HarvestEfficiency     float64 `yaml:"harvest_efficiency"`
	WorkerLifetime        int     `yaml:"worker_lifetime"`
	ExtensionCapacity     int     `yaml:"extension_capacity"`
	SpawnCapacity         int     `yaml:"spawn_capacity"`
	FillRate              float64 `yaml:"fill_rate"`
	TowerDrainPerTick     float64 `yaml:"tower_drain_per_tick"`
	StorageTricklePerTick float64 `yaml:"storage_trickle_per_tick"`
	ReplacementPopulation int     `yaml:"replacement_population"`
}

type RemoteTuning struct {
	ReserveThreshold   int `yaml:"reserve_threshold"`
	RefreshWindow      int `yaml:"refresh_window"`
	ReservationTicks   int `yaml:"reservation_ticks"`
	DefaultTravelTime  int `yaml:"default_travel_time"`
	TravelBuffer       int `yaml:"travel_buffer"`
	MinRefreshInterval int `yaml:"min_refresh_interval"`
	RepairersPerTarget int `yaml:"repairers_per_target"`
}

// Tuning gathers every weight and threshold of the scheduler. None of the
// numbers are load-tested optima; they are starting points meant to be
// overridden from the tuning file.
type Tuning struct {
	RoleReevaluateInterval int          `yaml:"role_reevaluate_interval"`
	MinWorkers             int          `yaml:"min_workers"`
	CriticalWorkers        int          `yaml:"critical_workers"`
	// EmergencyFloor raises the headcount floor while the population is
	// below CriticalWorkers. It only binds when set above MinWorkers; the
	// default keeps a wiped colony's target at MinWorkers.
	EmergencyFloor         int          `yaml:"emergency_floor"`
	MaxWorkers             int          `yaml:"max_workers"`
	// MinRoleCounts is the switch guard floor per role. Normalize seeds the
	// hauler floor from MinHaulers when the file leaves it out.
	MinRoleCounts          map[Role]int `yaml:"min_role_counts"`
	// MinHaulers is how many fixed haulers the queue keeps commissioned.
	MinHaulers             int          `yaml:"min_haulers"`
	HostileRole            Role         `yaml:"hostile_role"`
	StructureCacheInterval int          `yaml:"structure_cache_interval"`

	Scores  ScoreWeights  `yaml:"scores"`
	Economy EconomyTuning `yaml:"economy"`
	Remote  RemoteTuning  `yaml:"remote"`
}

func DefaultTuning() Tuning {
	return Tuning{
		RoleReevaluateInterval: 30,
		MinWorkers:             10,
		CriticalWorkers:        5,
		EmergencyFloor:         5,
		MaxWorkers:             30,
		MinRoleCounts: map[Role]int{
			RoleForager:  1,
			RoleUpgrader: 1,
			RoleRepairer: 1,
		},
		MinHaulers:             2,
		HostileRole:            RoleHauler,
		StructureCacheInterval: 100,
		Scores: ScoreWeights{
			BuilderPerSite:       10,
			RepairerPerDamaged:   8,
			RepairerPerCritical:  20,
			CriticalIntegrity:    0.5,
			UpgraderProgress:     15,
			DefaultProgressTotal: 200000,
			HaulerPerNeed:        5,
			HaulerNeedCap:        3,
		},
		Economy: EconomyTuning{
			NodeYieldPerTick:      1,
			HarvestEfficiency:     0.6,
			WorkerLifetime:        DefaultLifetime,
			ExtensionCapacity:     50,
			SpawnCapacity:         300,
			FillRate:              0.01,
			TowerDrainPerTick:     5,
			StorageTricklePerTick: 2,
			ReplacementPopulation: 10,
		},
		Remote: RemoteTuning{
			ReserveThreshold:   500,
			RefreshWindow:      2000,
			ReservationTicks:   5000,
			DefaultTravelTime:  100,
			TravelBuffer:       500,
			MinRefreshInterval: 500,
			RepairersPerTarget: 1,
		},
	}
}

// Normalize fills zero values from the defaults so a partial tuning file
// still yields a usable configuration.
func (t Tuning) Normalize() Tuning {
	def := DefaultTuning()
	if t.RoleReevaluateInterval <= 0 {
		t.RoleReevaluateInterval = def.RoleReevaluateInterval
	}
	if t.MinWorkers <= 0 {
		t.MinWorkers = def.MinWorkers
	}
	if t.CriticalWorkers <= 0 {
		t.CriticalWorkers = def.CriticalWorkers
	}
	if t.EmergencyFloor <= 0 {
		t.EmergencyFloor = def.EmergencyFloor
	}
	if t.MaxWorkers <= 0 {
		t.MaxWorkers = def.MaxWorkers
	}
	if t.MaxWorkers < t.MinWorkers {
		t.MaxWorkers = t.MinWorkers
	}
	if t.MinRoleCounts == nil {
		t.MinRoleCounts = def.MinRoleCounts
	}
	if t.MinHaulers < 0 {
		t.MinHaulers = 0
	}
	if _, ok := t.MinRoleCounts[RoleHauler]; !ok && t.MinHaulers > 0 {
		counts := make(map[Role]int, len(t.MinRoleCounts)+1)
		for role, n := range t.MinRoleCounts {
			counts[role] = n
		}
		counts[RoleHauler] = t.MinHaulers
		t.MinRoleCounts = counts
	}
	if !t.HostileRole.Valid() {
		t.HostileRole = def.HostileRole
	}
	if t.StructureCacheInterval <= 0 {
		t.StructureCacheInterval = def.StructureCacheInterval
	}
	if t.Scores == (ScoreWeights{}) {
		t.Scores = def.Scores
	}
	if t.Scores.DefaultProgressTotal <= 0 {
		t.Scores.DefaultProgressTotal = def.Scores.DefaultProgressTotal
	}
	if t.Economy == (EconomyTuning{}) {
		t.Economy = def.Economy
	}
	if t.Economy.WorkerLifetime <= 0 {
		t.Economy.WorkerLifetime = def.Economy.WorkerLifetime
	}
	if t.Economy.HarvestEfficiency <= 0 {
		t.Economy.HarvestEfficiency = def.Economy.HarvestEfficiency
	}
	if t.Remote == (RemoteTuning{}) {
		t.Remote = def.Remote
	}
	return t
}

func (t Tuning) MinFor(role Role) int {
	return t.MinRoleCounts[role]
}
