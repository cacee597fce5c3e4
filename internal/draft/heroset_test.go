package draft

import "testing"

func TestCountMembership(t *testing.T) {
	tests := []struct {
		name  string
		slots []string
		set   HeroSet
		want  int
	}{
		{"empty set", []string{"sven", "pudge"}, NewHeroSet(), 0},
		{"no overlap", []string{"sven", "pudge"}, NewHeroSet("lina"), 0},
		{"partial", []string{"sven", "pudge", "lina"}, NewHeroSet("sven", "axe"), 1},
		{"full side", []string{"sven", "pudge"}, NewHeroSet("pudge", "sven"), 2},
		{"duplicate slots count twice", []string{"sven", "sven", "pudge"}, NewHeroSet("sven"), 2},
		{"empty slots", nil, NewHeroSet("sven"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountMembership(tt.slots, tt.set); got != tt.want {
				t.Errorf("CountMembership(%v, %v) = %d, want %d", tt.slots, tt.set, got, tt.want)
			}
		})
	}
}

func TestCountMembershipBound(t *testing.T) {
	// distinct slots: count never exceeds min(len(slots), len(set))
	slots := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	sets := []HeroSet{
		NewHeroSet(),
		NewHeroSet("a"),
		NewHeroSet("a", "b", "z"),
		NewHeroSet(slots...),
	}
	for _, set := range sets {
		got := CountMembership(slots, set)
		max := len(slots)
		if set.Len() < max {
			max = set.Len()
		}
		if got > max {
			t.Errorf("CountMembership(%v, %v) = %d, exceeds bound %d", slots, set, got, max)
		}
	}
}

func TestHeroSetUnion(t *testing.T) {
	a := NewHeroSet("sven", "pudge")
	b := NewHeroSet("pudge", "lina")
	u := a.Union(b)
	if u.Len() != 3 {
		t.Fatalf("union size = %d, want 3", u.Len())
	}
	for _, h := range []string{"sven", "pudge", "lina"} {
		if !u.Has(h) {
			t.Errorf("union missing %q", h)
		}
	}
	if a.Len() != 2 || b.Len() != 2 {
		t.Errorf("union modified its operands: %v %v", a, b)
	}
}

func TestMatchRecordValidate(t *testing.T) {
	valid := MatchRecord{
		Winner:  RadiantWin,
		Radiant: [SideSize]string{"a", "b", "c", "d", "e"},
		Dire:    [SideSize]string{"f", "g", "h", "i", "j"},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*MatchRecord)
	}{
		{"zero winner", func(r *MatchRecord) { r.Winner = 0 }},
		{"winner out of range", func(r *MatchRecord) { r.Winner = 2 }},
		{"empty slot", func(r *MatchRecord) { r.Dire[4] = "" }},
		{"hero on both sides", func(r *MatchRecord) { r.Dire[0] = "a" }},
		{"hero twice on one side", func(r *MatchRecord) { r.Radiant[1] = "a" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := valid
			tt.mutate(&rec)
			if err := rec.Validate(); err == nil {
				t.Error("invalid record accepted")
			}
		})
	}
}

func TestTablesAreCopies(t *testing.T) {
	recs := []SideRecord{{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}}
	table := NewSideTable(recs)
	recs[0][0] = "mutated"
	table.EachRoster(func(roster []string) {
		if roster[0] != "a" {
			t.Errorf("table saw caller mutation: %q", roster[0])
		}
	})
}
