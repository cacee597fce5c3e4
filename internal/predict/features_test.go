package predict

import (
	"testing"

	"github.com/baiwei2018/dota2-analysis/internal/draft"
)

var (
	radiant = [draft.SideSize]string{"A", "B", "C", "D", "E"}
	dire    = [draft.SideSize]string{"F", "G", "H", "I", "J"}
)

func sampleFeatures() *Features {
	matches := draft.NewMatchTable([]draft.MatchRecord{
		{Winner: draft.RadiantWin, Radiant: radiant, Dire: dire},
		{Winner: draft.RadiantWin, Radiant: radiant, Dire: dire},
		{Winner: draft.DireWin, Radiant: radiant, Dire: dire},
	})
	win := draft.NewSideTable([]draft.SideRecord{
		{"A", "B", "C", "D", "E", "A2", "B2", "C2", "D2", "E2"},
		{"A", "B", "C3", "D3", "E3", "A3", "B3", "C2", "D2", "E2"},
	})
	lose := draft.NewSideTable([]draft.SideRecord{
		{"F", "G", "H", "I", "J", "F2", "G2", "H2", "I2", "J2"},
	})
	return NewFeatures(win, lose, matches)
}

func TestVectorShape(t *testing.T) {
	f := sampleFeatures()
	v := f.Vector(radiant, dire)
	if len(v) != vectorSize {
		t.Fatalf("vector size = %d, want %d", len(v), vectorSize)
	}
	// radiant pairs co-occur on winning rosters, dire pairs on losing
	// ones; every delta should favor radiant
	for i, x := range v {
		if x < 0 {
			t.Errorf("feature %d = %f, want >= 0", i, x)
		}
	}
}

func TestVectorAntisymmetry(t *testing.T) {
	f := sampleFeatures()
	ab := f.Vector(radiant, dire)
	ba := f.Vector(dire, radiant)
	// ally deltas and the confidence delta flip sign when the seats swap
	for _, i := range []int{0, 1, 3} {
		if ab[i] != -ba[i] {
			t.Errorf("feature %d not antisymmetric: %f vs %f", i, ab[i], ba[i])
		}
	}
	// counter coefficients of a pair sum to 1 when defined
	if got := ab[2] + ba[2]; got != 0 {
		t.Errorf("counter features sum to %f, want 0", got)
	}
}

func TestVectorNeutralWithoutData(t *testing.T) {
	f := NewFeatures(draft.NewSideTable(nil), draft.NewSideTable(nil), draft.NewMatchTable(nil))
	for i, x := range f.Vector(radiant, dire) {
		if x != 0 {
			t.Errorf("feature %d = %f, want neutral 0", i, x)
		}
	}
}

func TestVectorCached(t *testing.T) {
	f := sampleFeatures()
	first := f.Vector(radiant, dire)
	second := f.Vector(radiant, dire)
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("feature %d changed between calls: %f vs %f", i, first[i], second[i])
		}
	}
	if len(f.allies) == 0 || len(f.counter) == 0 || len(f.confidence) == 0 {
		t.Error("caches not populated")
	}
}
