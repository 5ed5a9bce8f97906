package mock

import (
	"context"
	"sort"

	"clawcolony/internal/app/ports"
	"clawcolony/internal/domain/colony"
)

// Host is a fixed ColonyHost: it serves whatever colonies and workers it was
// built with and never advances.
type Host struct {
	Now      int64
	Colonies map[string]colony.Colony
	Workers  []colony.Worker
	Err      error
}

func (h Host) Tick(_ context.Context) (int64, error) {
	if h.Err != nil {
		return 0, h.Err
	}
	return h.Now, nil
}

func (h Host) Colony(_ context.Context, name string) (colony.Colony, error) {
	if h.Err != nil {
		return colony.Colony{}, h.Err
	}
	c, ok := h.Colonies[name]
	if !ok {
		return colony.Colony{}, ports.ErrNotFound
	}
	c.Tick = h.Now
	c.Visible = true
	return c, nil
}

func (h Host) Roster(_ context.Context) ([]colony.Worker, error) {
	if h.Err != nil {
		return nil, h.Err
	}
	out := append([]colony.Worker(nil), h.Workers...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
