package colony

import "testing"

func TestCompose_HaulerSpendsWholeBudget(t *testing.T) {
	l := Compose(ArchetypeHauler, 1000)
	if got := l.Count(PartCarry); got != 10 {
		t.Fatalf("carry = %d, want 10", got)
	}
	if got := l.Count(PartMove); got != 10 {
		t.Fatalf("move = %d, want 10", got)
	}
	if got := l.Cost(); got != 1000 {
		t.Fatalf("cost = %d, want 1000", got)
	}
}

func TestCompose_ReturnsNilBelowOneGroup(t *testing.T) {
	cases := []struct {
		id     ArchetypeID
		budget int
	}{
		{ArchetypeGeneralist, 249},
		{ArchetypeHauler, 99},
		{ArchetypeMiner, 599},
		{ArchetypeReserver, 649},
		{ArchetypeAttacker, 0},
		{ArchetypeHauler, -10},
		{ArchetypeID("unknown"), 5000},
	}
	for _, tc := range cases {
		if l := Compose(tc.id, tc.budget); l != nil {
			t.Fatalf("Compose(%s, %d) = %v, want nil", tc.id, tc.budget, l)
		}
	}
}

func TestCompose_GeneralistGroupsThenExtraWorkWithMoveBackfill(t *testing.T) {
	l := Compose(ArchetypeGeneralist, 400)
	// one group (250) plus one extra work backfilled with a move (150)
	if got, want := l.Count(PartWork), 2; got != want {
		t.Fatalf("work = %d, want %d", got, want)
	}
	if got, want := l.Count(PartMove), 3; got != want {
		t.Fatalf("move = %d, want %d", got, want)
	}
	if got := l.Cost(); got != 400 {
		t.Fatalf("cost = %d, want 400", got)
	}
	if l.Count(PartMove) < len(l)-l.Count(PartMove) {
		t.Fatalf("mobility below parity: %v", l)
	}
}

func TestCompose_GeneralistSkipsExtraWhenMoveUnaffordable(t *testing.T) {
	l := Compose(ArchetypeGeneralist, 350)
	if got := l.Cost(); got != 250 {
		t.Fatalf("cost = %d, want 250 (extra work without move would break parity)", got)
	}
}

func TestCompose_MinerCapsAtOneGroup(t *testing.T) {
	l := Compose(ArchetypeMiner, 5000)
	if got := l.Count(PartWork); got != 5 {
		t.Fatalf("work = %d, want 5", got)
	}
	if got := len(l); got != 7 {
		t.Fatalf("len = %d, want 7", got)
	}
}

func TestCompose_ReserverTwoClaims(t *testing.T) {
	l := Compose(ArchetypeReserver, 1300)
	if got := l.Count(PartClaim); got != 2 {
		t.Fatalf("claim = %d, want 2", got)
	}
	if got := l.Cost(); got != 1300 {
		t.Fatalf("cost = %d, want 1300", got)
	}
}

func TestCompose_NeverExceedsBudgetOrCeiling(t *testing.T) {
	for id := range Archetypes {
		for budget := -50; budget <= 12000; budget += 37 {
			l := Compose(id, budget)
			if l == nil {
				continue
			}
			if l.Cost() > budget {
				t.Fatalf("%s budget %d: cost %d over budget", id, budget, l.Cost())
			}
			if len(l) > MaxLoadoutParts {
				t.Fatalf("%s budget %d: %d parts over ceiling", id, budget, len(l))
			}
		}
	}
}

func TestCompose_HaulerHitsCeiling(t *testing.T) {
	l := Compose(ArchetypeHauler, 100000)
	if len(l) != MaxLoadoutParts {
		t.Fatalf("len = %d, want %d", len(l), MaxLoadoutParts)
	}
}
