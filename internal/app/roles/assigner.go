package roles

import (
	"go.uber.org/zap"

	"clawcolony/internal/app/ports"
	"clawcolony/internal/domain/colony"
)

type Decision string

const (
	DecisionFixed    Decision = "fixed"
	DecisionPinned   Decision = "pinned"
	DecisionNotDue   Decision = "not_due"
	DecisionKept     Decision = "kept"
	DecisionVetoed   Decision = "vetoed"
	DecisionSwitched Decision = "switched"
)

type Outcome struct {
	Decision Decision
	From     colony.Role
	To       colony.Role
	Reason   string
}

type Assigner struct {
	Tuning  colony.Tuning
	Scorer  colony.Scorer
	Metrics ports.SchedulerMetrics
	Logger  *zap.Logger
}

func NewAssigner(t colony.Tuning, metrics ports.SchedulerMetrics, logger *zap.Logger) Assigner {
	return Assigner{Tuning: t, Scorer: colony.NewScorer(t), Metrics: metrics, Logger: logger}
}

// Evaluate re-checks one worker's role on its stagger tick. scores may be
// shared across every worker of the same colony in one tick; nil means score
// the snapshot here. census is updated in place when the switch commits.
func (a Assigner) Evaluate(w *colony.Worker, c colony.Colony, scores colony.Scores, census *colony.Census) Outcome {
	mem := &w.Memory
	if mem.FixedRole {
		return Outcome{Decision: DecisionFixed, From: mem.Role, To: mem.Role}
	}
	if mem.IsRemote() || (mem.Role.Valid() && !mem.Role.Spec().Reassignable) {
		return Outcome{Decision: DecisionPinned, From: mem.Role, To: mem.Role}
	}

	interval := a.Tuning.RoleReevaluateInterval
	offset, ok := mem.Offset()
	if !ok {
		offset = colony.StaggerOffset(w.ID, interval)
		mem.SetOffset(offset)
	}
	if !colony.DueForEvaluation(c.Tick, offset, interval) {
		return Outcome{Decision: DecisionNotDue, From: mem.Role, To: mem.Role}
	}

	if scores == nil {
		scores = a.Scorer.Score(c)
	}
	current := mem.Role
	if !current.Valid() {
		current = colony.DefaultRole
	}
	next, reason := a.recommend(c, scores, census)
	if next == current {
		if mem.Role != current {
			census.Move(mem.Role, current)
			mem.SwitchRole(current, c.Tick)
		}
		return Outcome{Decision: DecisionKept, From: current, To: current, Reason: reason}
	}

	if floor := a.Tuning.MinFor(current); floor > 0 && census.Count(current)-1 < floor {
		a.logger().Debug("role switch vetoed",
			zap.Uint64("worker_id", w.ID),
			zap.String("colony", c.Name),
			zap.String("role", string(current)),
			zap.String("wanted", string(next)),
			zap.Int("count", census.Count(current)),
			zap.Int("min", floor),
		)
		if a.Metrics != nil {
			a.Metrics.RecordSkip("role_guard")
		}
		return Outcome{Decision: DecisionVetoed, From: current, To: current, Reason: reason}
	}

	from := mem.Role
	mem.SwitchRole(next, c.Tick)
	census.Move(from, next)
	a.logger().Info("role changed",
		zap.Uint64("worker_id", w.ID),
		zap.String("worker", w.Name),
		zap.String("colony", c.Name),
		zap.String("from", string(from)),
		zap.String("to", string(next)),
		zap.String("reason", reason),
		zap.Int64("tick", c.Tick),
	)
	if a.Metrics != nil {
		a.Metrics.RecordRoleChange(from, next)
	}
	return Outcome{Decision: DecisionSwitched, From: from, To: next, Reason: reason}
}

// recommend applies the escalation overrides in order on top of the scored
// pick; the first one that fires wins.
func (a Assigner) recommend(c colony.Colony, scores colony.Scores, census *colony.Census) (colony.Role, string) {
	switch {
	case c.HostilePresent:
		return a.Tuning.HostileRole, "hostile"
	case census.Total < a.Tuning.CriticalWorkers:
		return colony.RoleForager, "critical_population"
	case census.Count(colony.RoleUpgrader) < a.Tuning.MinFor(colony.RoleUpgrader):
		return colony.RoleUpgrader, "min_upgraders"
	case census.Count(colony.RoleRepairer) < a.Tuning.MinFor(colony.RoleRepairer):
		return colony.RoleRepairer, "min_repairers"
	default:
		return scores.Recommend(), "score"
	}
}

func (a Assigner) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}
