package rule

import (
	"errors"
	"testing"

	"github.com/baiwei2018/dota2-analysis/internal/draft"
)

func match(w draft.Winner, radiant, dire [draft.SideSize]string) draft.MatchRecord {
	return draft.MatchRecord{Winner: w, Radiant: radiant, Dire: dire}
}

var singleMatch = draft.NewMatchTable([]draft.MatchRecord{
	match(draft.RadiantWin,
		[draft.SideSize]string{"A", "B", "C", "D", "E"},
		[draft.SideSize]string{"F", "G", "H", "I", "J"}),
})

func TestWinSupportSingleRow(t *testing.T) {
	tests := []struct {
		name    string
		radiant Constraint
		dire    Constraint
		winner  draft.Winner
		want    int
	}{
		{"radiant subset, radiant won", Side(draft.NewHeroSet("A", "B")), AnySide, draft.RadiantWin, 1},
		{"non-member in radiant set", Side(draft.NewHeroSet("A", "F")), AnySide, draft.RadiantWin, 0},
		{"radiant subset, wrong winner", Side(draft.NewHeroSet("A", "B")), AnySide, draft.DireWin, 0},
		{"dire subset, dire lost", AnySide, Side(draft.NewHeroSet("F", "G")), draft.RadiantWin, 1},
		{"both sides constrained", Side(draft.NewHeroSet("A")), Side(draft.NewHeroSet("J")), draft.RadiantWin, 1},
		{"both sides, one misses", Side(draft.NewHeroSet("A")), Side(draft.NewHeroSet("A")), draft.RadiantWin, 0},
		{"full rosters", Side(draft.NewHeroSet("A", "B", "C", "D", "E")), Side(draft.NewHeroSet("F", "G", "H", "I", "J")), draft.RadiantWin, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WinSupport(singleMatch, tt.radiant, tt.dire, tt.winner)
			if err != nil {
				t.Fatalf("WinSupport: %v", err)
			}
			if got != tt.want {
				t.Errorf("WinSupport = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWinSupportNoConstraint(t *testing.T) {
	_, err := WinSupport(singleMatch, AnySide, AnySide, draft.RadiantWin)
	if !errors.Is(err, ErrConfig) {
		t.Errorf("WinSupport with no constraint: err = %v, want ErrConfig", err)
	}
}

func TestGroupSupportThresholds(t *testing.T) {
	// one full co-occurrence row and one row with only A present
	table := draft.NewSideTable([]draft.SideRecord{
		{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"},
		{"A", "X1", "X2", "X3", "X4", "X5", "X6", "X7", "X8", "X9"},
	})
	group := draft.NewHeroSet("A", "B")

	tests := []struct {
		name      string
		threshold int
		want      float64
	}{
		{"threshold 1 counts both rows", 1, 1.0},
		{"threshold 2 counts the full row only", 2, 0.5},
		{"threshold above set size counts none", 3, 0.0},
		{"threshold 0 counts everything", 0, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GroupSupport(table, group, tt.threshold)
			if err != nil {
				t.Fatalf("GroupSupport: %v", err)
			}
			if got != tt.want {
				t.Errorf("GroupSupport(threshold=%d) = %f, want %f", tt.threshold, got, tt.want)
			}
		})
	}
}

func TestGroupSupportEmptyTable(t *testing.T) {
	table := draft.NewSideTable(nil)
	_, err := GroupSupport(table, draft.NewHeroSet("A"), 1)
	if !errors.Is(err, ErrUndefinedRatio) {
		t.Errorf("GroupSupport over empty table: err = %v, want ErrUndefinedRatio", err)
	}
}

func TestWinSupportSeatSymmetry(t *testing.T) {
	recs := []draft.MatchRecord{
		match(draft.RadiantWin,
			[draft.SideSize]string{"A", "B", "C", "D", "E"},
			[draft.SideSize]string{"F", "G", "H", "I", "J"}),
		match(draft.DireWin,
			[draft.SideSize]string{"A", "G", "C", "I", "E"},
			[draft.SideSize]string{"F", "B", "H", "D", "J"}),
		match(draft.RadiantWin,
			[draft.SideSize]string{"F", "G", "H", "I", "J"},
			[draft.SideSize]string{"A", "B", "C", "D", "E"}),
	}
	swapped := make([]draft.MatchRecord, len(recs))
	for i, r := range recs {
		swapped[i] = draft.MatchRecord{Winner: -r.Winner, Radiant: r.Dire, Dire: r.Radiant}
	}
	table := draft.NewMatchTable(recs)
	mirror := draft.NewMatchTable(swapped)

	sets := []draft.HeroSet{
		draft.NewHeroSet("A"),
		draft.NewHeroSet("A", "B"),
		draft.NewHeroSet("F", "G", "H"),
	}
	for _, a := range sets {
		for _, b := range sets {
			for _, w := range []draft.Winner{draft.RadiantWin, draft.DireWin} {
				got, err := WinSupport(table, Side(a), Side(b), w)
				if err != nil {
					t.Fatalf("WinSupport: %v", err)
				}
				want, err := WinSupport(mirror, Side(b), Side(a), -w)
				if err != nil {
					t.Fatalf("WinSupport(mirror): %v", err)
				}
				if got != want {
					t.Errorf("seat symmetry broken: %v vs %v winner %d: %d != %d", a, b, w, got, want)
				}
			}
		}
	}
}
