package colony

// RemoteTarget is an off-colony site a home colony reserves and works.
type RemoteTarget struct {
	Colony     string `yaml:"colony" json:"colony"`
	Home       string `yaml:"home" json:"home"`
	TravelTime int    `yaml:"travel_time" json:"travel_time"`
}

// RefreshInterval is how long after commissioning a reserver the next one is
// due, leaving room for a round trip plus a buffer before the reservation
// lapses.
func (r RemoteTuning) RefreshInterval(travelTime int) int64 {
	if travelTime <= 0 {
		travelTime = r.DefaultTravelTime
	}
	interval := r.ReservationTicks - (travelTime*2 + r.TravelBuffer)
	if interval < r.MinRefreshInterval {
		interval = r.MinRefreshInterval
	}
	return int64(interval)
}

// ReserverDue reports whether a reserver may be queued for target. Visible
// targets are judged by the live reservation; blind ones by the persisted
// timer, where a missing timer means due.
func (r RemoteTuning) ReserverDue(target Colony, owner string, timer int64, hasTimer bool, tick int64) bool {
	if target.Visible {
		if !target.ReservedBy(owner) {
			return true
		}
		return target.ReservationTicks() <= r.ReserveThreshold
	}
	if !hasTimer {
		return true
	}
	return tick >= timer
}

// NodesWithContainer lists nodes that have a container (or a container
// construction site) within range 1.
func (c Colony) NodesWithContainer(includeSites bool) []ResourceNode {
	out := make([]ResourceNode, 0, len(c.Nodes))
	for _, n := range c.Nodes {
		if c.ContainerNear(n.Pos) != "" {
			out = append(out, n)
			continue
		}
		if !includeSites {
			continue
		}
		for _, s := range c.Sites {
			if s.Kind == StructureContainer && s.Pos.Range(n.Pos) <= 1 {
				out = append(out, n)
				break
			}
		}
	}
	return out
}

// ContainerNear returns the id of the first container within range 1 of pos.
func (c Colony) ContainerNear(pos Position) string {
	for _, s := range c.Structures {
		if s.Kind == StructureContainer && s.Pos.Range(pos) <= 1 {
			return s.ID
		}
	}
	return ""
}
