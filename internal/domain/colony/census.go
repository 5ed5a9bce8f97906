package colony

// Census counts the local (non-remote) workers homed in a colony by role.
// The assigner updates it as switches commit so later workers in the same
// tick see current numbers.
type Census struct {
	Total  int
	Fixed  int
	ByRole map[Role]int
}

func TakeCensus(home string, workers []Worker) Census {
	c := Census{ByRole: map[Role]int{}}
	for _, w := range workers {
		if w.Memory.HomeColony != home || w.Memory.IsRemote() {
			continue
		}
		c.Total++
		if w.Memory.FixedRole {
			c.Fixed++
		}
		c.ByRole[w.Memory.Role]++
	}
	return c
}

func (c Census) Count(role Role) int {
	return c.ByRole[role]
}

func (c Census) NonFixed() int {
	return c.Total - c.Fixed
}

func (c *Census) Move(from, to Role) {
	if c.ByRole == nil {
		c.ByRole = map[Role]int{}
	}
	if c.ByRole[from] > 0 {
		c.ByRole[from]--
	}
	c.ByRole[to]++
}
