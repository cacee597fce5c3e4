// Package draft holds the tabular views over historical Dota 2 matches that
// the rule engine scans: full match records with a winner flag, and the
// win/lose side tables that are pre-split by outcome.
package draft

import "fmt"

const (
	// SideSize is the number of hero slots on one side of a match.
	SideSize = 5
	// RosterSize is the number of hero slots in a side-table row.
	RosterSize = 2 * SideSize
)

// Winner tells which side of a match won.
type Winner int

const (
	RadiantWin Winner = 1
	DireWin    Winner = -1
)

func (w Winner) Valid() bool {
	return w == RadiantWin || w == DireWin
}

// records

// MatchRecord is one historical match. Slot order carries no meaning, only
// membership does; the two sides are disjoint.
type MatchRecord struct {
	Winner  Winner
	Radiant [SideSize]string
	Dire    [SideSize]string
}

// Validate checks the invariants a loader must guarantee before a record
// enters a table: a valid winner flag, no empty slots, disjoint sides.
func (r MatchRecord) Validate() error {
	if !r.Winner.Valid() {
		return fmt.Errorf("bad winner flag %d", r.Winner)
	}
	seen := make(map[string]struct{}, RosterSize)
	for _, slots := range [2][SideSize]string{r.Radiant, r.Dire} {
		for _, h := range slots {
			if h == "" {
				return fmt.Errorf("empty hero slot")
			}
			if _, ok := seen[h]; ok {
				return fmt.Errorf("hero %q appears twice", h)
			}
			seen[h] = struct{}{}
		}
	}
	return nil
}

// SideRecord is one row of a win-side or lose-side table: the roster slots
// of whichever side the table is split on, no winner flag.
type SideRecord [RosterSize]string

// tables

// MatchTable is an immutable view over match records. It is safe to share
// across concurrent rule evaluations; nothing ever writes through it.
type MatchTable struct {
	recs []MatchRecord
}

func NewMatchTable(recs []MatchRecord) *MatchTable {
	t := &MatchTable{recs: make([]MatchRecord, len(recs))}
	copy(t.recs, recs)
	return t
}

func (t *MatchTable) Len() int {
	return len(t.recs)
}

// EachMatch calls fn once per record, in row order.
func (t *MatchTable) EachMatch(fn func(w Winner, radiant, dire []string)) {
	for i := range t.recs {
		r := &t.recs[i]
		fn(r.Winner, r.Radiant[:], r.Dire[:])
	}
}

// SideTable is an immutable view over side records.
type SideTable struct {
	recs []SideRecord
}

func NewSideTable(recs []SideRecord) *SideTable {
	t := &SideTable{recs: make([]SideRecord, len(recs))}
	copy(t.recs, recs)
	return t
}

func (t *SideTable) Len() int {
	return len(t.recs)
}

// EachRoster calls fn once per row with the row's roster slots.
func (t *SideTable) EachRoster(fn func(roster []string)) {
	for i := range t.recs {
		fn(t.recs[i][:])
	}
}
