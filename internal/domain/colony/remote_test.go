package colony

import "testing"

func TestRefreshInterval(t *testing.T) {
	r := DefaultTuning().Remote
	if got := r.RefreshInterval(100); got != 4300 {
		t.Fatalf("interval = %d, want 4300", got)
	}
	if got := r.RefreshInterval(0); got != 4300 {
		t.Fatalf("default travel interval = %d, want 4300", got)
	}
	if got := r.RefreshInterval(3000); got != int64(r.MinRefreshInterval) {
		t.Fatalf("long travel interval = %d, want floor %d", got, r.MinRefreshInterval)
	}
}

func TestReserverDue(t *testing.T) {
	r := DefaultTuning().Remote
	visible := Colony{
		Visible:    true,
		Controller: &Controller{Reservation: &Reservation{Owner: "me", TicksToEnd: 3000}},
	}
	if r.ReserverDue(visible, "me", 0, false, 10) {
		t.Fatalf("healthy reservation should not be due")
	}
	visible.Controller.Reservation.TicksToEnd = 400
	if !r.ReserverDue(visible, "me", 0, false, 10) {
		t.Fatalf("low reservation should be due")
	}
	visible.Controller.Reservation.Owner = "them"
	visible.Controller.Reservation.TicksToEnd = 4000
	if !r.ReserverDue(visible, "me", 0, false, 10) {
		t.Fatalf("foreign reservation should be due")
	}

	blind := Colony{}
	if !r.ReserverDue(blind, "me", 0, false, 10) {
		t.Fatalf("blind target without timer should be due")
	}
	if r.ReserverDue(blind, "me", 500, true, 10) {
		t.Fatalf("blind target before timer should wait")
	}
	if !r.ReserverDue(blind, "me", 500, true, 500) {
		t.Fatalf("blind target at timer should be due")
	}
}

func TestNodesWithContainer(t *testing.T) {
	c := Colony{
		Nodes: []ResourceNode{
			{ID: "n1", Pos: Position{X: 10, Y: 10}},
			{ID: "n2", Pos: Position{X: 30, Y: 30}},
			{ID: "n3", Pos: Position{X: 40, Y: 5}},
		},
		Structures: []Structure{{ID: "c1", Kind: StructureContainer, Pos: Position{X: 11, Y: 9}}},
		Sites:      []ConstructionSite{{ID: "s1", Kind: StructureContainer, Pos: Position{X: 31, Y: 31}}},
	}
	if got := len(c.NodesWithContainer(false)); got != 1 {
		t.Fatalf("built = %d, want 1", got)
	}
	if got := len(c.NodesWithContainer(true)); got != 2 {
		t.Fatalf("built or planned = %d, want 2", got)
	}
	if got := c.ContainerNear(Position{X: 10, Y: 10}); got != "c1" {
		t.Fatalf("container near n1 = %q", got)
	}
}
