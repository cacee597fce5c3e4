package rule

import (
	"fmt"

	"github.com/baiwei2018/dota2-analysis/internal/draft"
)

// SideTable is the scan surface the engine needs from a win-side or
// lose-side table. draft.SideTable implements it; so can any other storage.
type SideTable interface {
	Len() int
	EachRoster(fn func(roster []string))
}

// MatchTable is the scan surface the engine needs from a full match table.
type MatchTable interface {
	Len() int
	EachMatch(fn func(w draft.Winner, radiant, dire []string))
}

// Constraint filters one side of a match by hero membership. The zero value
// is AnySide: no constraint at all, which is distinct from constraining to
// an empty set.
type Constraint struct {
	set     draft.HeroSet
	present bool
}

// AnySide matches every roster.
var AnySide = Constraint{}

// Side constrains a match side to contain every member of set.
func Side(set draft.HeroSet) Constraint {
	return Constraint{set: set, present: true}
}

func (c Constraint) Present() bool {
	return c.present
}

func (c Constraint) len() int {
	if !c.present {
		return 0
	}
	return c.set.Len()
}

func (c Constraint) count(slots []string) int {
	if !c.present {
		return 0
	}
	return draft.CountMembership(slots, c.set)
}

// GroupSupport is the fraction of rows in t whose roster holds at least
// threshold members of group. An empty table leaves the fraction undefined.
func GroupSupport(t SideTable, group draft.HeroSet, threshold int) (float64, error) {
	total := t.Len()
	if total == 0 {
		return 0, fmt.Errorf("group support over empty table: %w", ErrUndefinedRatio)
	}
	supporting := 0
	t.EachRoster(func(roster []string) {
		if draft.CountMembership(roster, group) >= threshold {
			supporting++
		}
	})
	return float64(supporting) / float64(total), nil
}

// WinSupport counts rows of t where the winner flag equals w and every
// present constraint is fully contained in its side's slots. Per row the
// winner match contributes 1 and each side its membership count; with
// disjoint slots the sum reaches len(constraints)+1 only when the flag
// matches and every constrained hero is on its side.
func WinSupport(t MatchTable, radiant, dire Constraint, w draft.Winner) (int, error) {
	if !radiant.Present() && !dire.Present() {
		return 0, fmt.Errorf("win support needs a radiant or dire constraint: %w", ErrConfig)
	}
	need := radiant.len() + dire.len() + 1
	support := 0
	t.EachMatch(func(rw draft.Winner, rslots, dslots []string) {
		sum := radiant.count(rslots) + dire.count(dslots)
		if rw == w {
			sum++
		}
		if sum >= need {
			support++
		}
	})
	return support, nil
}
