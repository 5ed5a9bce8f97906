package colony

type Role string

const (
	RoleForager        Role = "forager"
	RoleBuilder        Role = "builder"
	RoleUpgrader       Role = "upgrader"
	RoleRepairer       Role = "repairer"
	RoleHauler         Role = "hauler"
	RoleMiner          Role = "miner"
	RoleReserver       Role = "reserver"
	RoleRemoteBuilder  Role = "remote_builder"
	RoleRemoteHauler   Role = "remote_hauler"
	RoleRemoteRepairer Role = "remote_repairer"
	RoleAttacker       Role = "attacker"
)

// DefaultRole is what the assigner falls back to when scores tie or are all zero.
const DefaultRole = RoleForager

// RoleSpec is the capability record a task executor dispatches on.
type RoleSpec struct {
	Archetype    ArchetypeID
	Remote       bool
	Reassignable bool
	Gatherer     bool
}

var RoleSpecs = map[Role]RoleSpec{
	RoleForager:        {Archetype: ArchetypeGeneralist, Reassignable: true, Gatherer: true},
	RoleBuilder:        {Archetype: ArchetypeGeneralist, Reassignable: true, Gatherer: true},
	RoleUpgrader:       {Archetype: ArchetypeGeneralist, Reassignable: true, Gatherer: true},
	RoleRepairer:       {Archetype: ArchetypeGeneralist, Reassignable: true, Gatherer: true},
	RoleHauler:         {Archetype: ArchetypeHauler, Reassignable: true, Gatherer: true},
	RoleMiner:          {Archetype: ArchetypeMiner},
	RoleReserver:       {Archetype: ArchetypeReserver, Remote: true},
	RoleRemoteBuilder:  {Archetype: ArchetypeRemoteWorker, Remote: true, Gatherer: true},
	RoleRemoteHauler:   {Archetype: ArchetypeHauler, Remote: true},
	RoleRemoteRepairer: {Archetype: ArchetypeRemoteWorker, Remote: true, Gatherer: true},
	RoleAttacker:       {Archetype: ArchetypeAttacker, Remote: true},
}

func AllRoles() []Role {
	return []Role{
		RoleForager,
		RoleBuilder,
		RoleUpgrader,
		RoleRepairer,
		RoleHauler,
		RoleMiner,
		RoleReserver,
		RoleRemoteBuilder,
		RoleRemoteHauler,
		RoleRemoteRepairer,
		RoleAttacker,
	}
}

func (r Role) Valid() bool {
	_, ok := RoleSpecs[r]
	return ok
}

func (r Role) Spec() RoleSpec {
	return RoleSpecs[r]
}
