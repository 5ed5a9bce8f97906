package production

import (
	"sort"

	"clawcolony/internal/domain/colony"
)

// Roster is the live worker view request predicates check against. The
// dispatcher adds commissioned workers to it so predicates see them within
// the same tick.
type Roster struct {
	workers []colony.Worker
}

func NewRoster(workers []colony.Worker) *Roster {
	out := make([]colony.Worker, len(workers))
	copy(out, workers)
	return &Roster{workers: out}
}

func (r *Roster) Add(w colony.Worker) {
	r.workers = append(r.workers, w)
}

func (r *Roster) Workers() []colony.Worker {
	return r.workers
}

func (r *Roster) count(match func(colony.Worker) bool) int {
	n := 0
	for _, w := range r.workers {
		if match(w) {
			n++
		}
	}
	return n
}

func local(w colony.Worker, home string) bool {
	return w.Memory.HomeColony == home && !w.Memory.IsRemote()
}

func (r *Roster) Local(home string) int {
	return r.count(func(w colony.Worker) bool { return local(w, home) })
}

func (r *Roster) LocalMiners(home string) int {
	return r.count(func(w colony.Worker) bool {
		return local(w, home) && w.Memory.Role == colony.RoleMiner
	})
}

func (r *Roster) LocalMinersOn(home, nodeID string) int {
	return r.count(func(w colony.Worker) bool {
		return local(w, home) && w.Memory.Role == colony.RoleMiner && w.Memory.AssignedNode() == nodeID
	})
}

// DedicatedHaulers counts fixed local haulers; scored haulers are generic
// workers and do not count.
func (r *Roster) DedicatedHaulers(home string) int {
	return r.count(func(w colony.Worker) bool {
		return local(w, home) && w.Memory.Role == colony.RoleHauler && w.Memory.FixedRole
	})
}

func (r *Roster) ForTarget(target string, role colony.Role) int {
	return r.count(func(w colony.Worker) bool {
		return w.Memory.TargetColony == target && w.Memory.Role == role
	})
}

func (r *Roster) MinersOnRemote(target, nodeID string) int {
	return r.count(func(w colony.Worker) bool {
		return w.Memory.TargetColony == target && w.Memory.Role == colony.RoleMiner && w.Memory.AssignedNode() == nodeID
	})
}

// CommittedByTarget counts workers per target colony, used to break
// priority ties between remote targets.
func (r *Roster) CommittedByTarget() map[string]int {
	out := map[string]int{}
	for _, w := range r.workers {
		if w.Memory.IsRemote() {
			out[w.Memory.TargetColony]++
		}
	}
	return out
}

// ReservedContainers lists containers assigned to dedicated haulers.
func (r *Roster) ReservedContainers() map[string]uint64 {
	out := map[string]uint64{}
	for _, w := range r.workers {
		if !w.Memory.FixedRole {
			continue
		}
		if id := w.Memory.AssignedContainer(); id != "" {
			out[id] = w.ID
		}
	}
	return out
}

func sortedValues(m map[string]string) []string {
	out := make([]string, 0, len(m))
	seen := map[string]bool{}
	for _, v := range m {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
