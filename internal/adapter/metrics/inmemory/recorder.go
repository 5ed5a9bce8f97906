package inmemory

import (
	"sync"

	"clawcolony/internal/domain/colony"
)

type Snapshot struct {
	ProductionTotal uint64            `json:"production_total"`
	Rejections      uint64            `json:"rejections"`
	RoleChanges     uint64            `json:"role_changes"`
	ByRole          map[string]uint64 `json:"by_role"`
	Skips           map[string]uint64 `json:"skips"`
	Transitions     map[string]uint64 `json:"transitions"`
}

type Recorder struct {
	mu          sync.Mutex
	produced    uint64
	rejected    uint64
	changes     uint64
	byRole      map[string]uint64
	skips       map[string]uint64
	transitions map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byRole:      map[string]uint64{},
		skips:       map[string]uint64{},
		transitions: map[string]uint64{},
	}
}

func (r *Recorder) RecordProduction(role colony.Role) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.produced++
	r.byRole[string(role)]++
}

func (r *Recorder) RecordRejection() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
}

func (r *Recorder) RecordSkip(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skips[reason]++
}

func (r *Recorder) RecordRoleChange(from, to colony.Role) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes++
	r.transitions[string(from)+"->"+string(to)]++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Snapshot{
		ProductionTotal: r.produced,
		Rejections:      r.rejected,
		RoleChanges:     r.changes,
		ByRole:          copyCounts(r.byRole),
		Skips:           copyCounts(r.skips),
		Transitions:     copyCounts(r.transitions),
	}
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}

func copyCounts(in map[string]uint64) map[string]uint64 {
	out := make(map[string]uint64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
