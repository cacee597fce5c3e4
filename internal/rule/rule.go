// Package rule evaluates association rules over historical match tables:
// how strongly a group of heroes correlates with winning when drafted
// together, or with beating another group when drafted against it.
package rule

import (
	"errors"
	"fmt"

	"github.com/baiwei2018/dota2-analysis/internal/draft"
)

// Kind tells whether a rule relates allied heroes or opposing ones.
type Kind int

const (
	Allies Kind = iota + 1
	Enemies
)

func (k Kind) Valid() bool {
	return k == Allies || k == Enemies
}

func (k Kind) String() string {
	switch k {
	case Allies:
		return "allies"
	case Enemies:
		return "enemies"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Rule is an association rule lhs => rhs of a fixed kind. The hero sets and
// kind are immutable after construction; the only mutable state is the
// computed or injected metrics.
type Rule struct {
	lhs, rhs draft.HeroSet
	kind     Kind
	metrics  Metrics
}

func New(lhs, rhs draft.HeroSet, kind Kind) (*Rule, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("rule kind must be allies or enemies, got %d: %w", int(kind), ErrConfig)
	}
	if lhs.Len() == 0 || rhs.Len() == 0 {
		return nil, fmt.Errorf("rule sides must be non-empty: %w", ErrConfig)
	}
	return &Rule{lhs: lhs, rhs: rhs, kind: kind}, nil
}

// LHS returns the rule's left-hand hero set. Callers must not modify it.
func (r *Rule) LHS() draft.HeroSet { return r.lhs }

// RHS returns the rule's right-hand hero set. Callers must not modify it.
func (r *Rule) RHS() draft.HeroSet { return r.rhs }

func (r *Rule) Kind() Kind { return r.kind }

// Metrics returns the current metrics, or nil when none were computed or
// injected yet.
func (r *Rule) Metrics() Metrics { return r.metrics }

// AlliesSupport is how often the rule's heroes appear together among
// winning rosters: the fraction of rows in win holding at least len(lhs)
// members of lhs ∪ rhs.
func (r *Rule) AlliesSupport(win SideTable) (float64, error) {
	return GroupSupport(win, r.lhs.Union(r.rhs), r.lhs.Len())
}

// AlliesWinRate is, of all matches where the allied group co-occurred on
// either the winning or the losing side, the fraction that were wins.
func (r *Rule) AlliesWinRate(win, lose SideTable) (float64, error) {
	supportWin, err := r.AlliesSupport(win)
	if err != nil {
		return 0, fmt.Errorf("win side: %w", err)
	}
	supportLose, err := r.AlliesSupport(lose)
	if err != nil {
		return 0, fmt.Errorf("lose side: %w", err)
	}
	if supportWin+supportLose == 0 {
		return 0, fmt.Errorf("allies win rate: group never co-occurs: %w", ErrUndefinedRatio)
	}
	return supportWin / (supportWin + supportLose), nil
}

// beats is the support for a beating b: matches where a's side won and b's
// side lost, summed over both seat assignments since radiant/dire is an
// arbitrary label.
func beats(t MatchTable, a, b draft.HeroSet) (int, error) {
	asRadiant, err := WinSupport(t, Side(a), Side(b), draft.RadiantWin)
	if err != nil {
		return 0, err
	}
	asDire, err := WinSupport(t, Side(b), Side(a), draft.DireWin)
	if err != nil {
		return 0, err
	}
	return asRadiant + asDire, nil
}

// EnemiesConfidence estimates P(rhs wins | lhs loses): of all matches where
// lhs appeared as a side and lost, the share where rhs was the winning
// side's draft. The value can exceed 1.0 when lhs and rhs overlap or sit
// asymmetrically across seats; it is reported uncapped.
func (r *Rule) EnemiesConfidence(matches MatchTable) (float64, error) {
	rhsWins, err := beats(matches, r.rhs, r.lhs)
	if err != nil {
		return 0, err
	}
	lhsLosesRadiant, err := WinSupport(matches, Side(r.lhs), AnySide, draft.DireWin)
	if err != nil {
		return 0, err
	}
	lhsLosesDire, err := WinSupport(matches, AnySide, Side(r.lhs), draft.RadiantWin)
	if err != nil {
		return 0, err
	}
	lhsLoses := lhsLosesRadiant + lhsLosesDire
	if lhsLoses == 0 {
		return 0, fmt.Errorf("enemies confidence: lhs never loses: %w", ErrUndefinedRatio)
	}
	return float64(rhsWins) / float64(lhsLoses), nil
}

// CounterCoefficient is the share of lhs wins among all lhs/rhs
// head-to-head matches, both seat orientations counted on both sides.
func (r *Rule) CounterCoefficient(matches MatchTable) (float64, error) {
	lhsWins, err := beats(matches, r.lhs, r.rhs)
	if err != nil {
		return 0, err
	}
	rhsWins, err := beats(matches, r.rhs, r.lhs)
	if err != nil {
		return 0, err
	}
	if lhsWins+rhsWins == 0 {
		return 0, fmt.Errorf("counter coefficient: groups never meet: %w", ErrUndefinedRatio)
	}
	return float64(lhsWins) / float64(lhsWins+rhsWins), nil
}

// ComputeMetrics evaluates and stores the metric pair matching the rule's
// kind. Ratios whose denominator is zero are stored as undefined rather
// than failing the whole computation; any other error aborts. The result is
// a pure function of the inputs, so recomputing is always safe.
func (r *Rule) ComputeMetrics(win, lose SideTable, matches MatchTable) error {
	switch r.kind {
	case Allies:
		var m AlliesMetrics
		support, err := r.AlliesSupport(win)
		if err != nil {
			return err
		}
		m.Support = DefinedRatio(support)
		rate, err := r.AlliesWinRate(win, lose)
		switch {
		case err == nil:
			m.WinRate = DefinedRatio(rate)
		case !errors.Is(err, ErrUndefinedRatio):
			return err
		}
		r.metrics = m
	case Enemies:
		var m EnemiesMetrics
		conf, err := r.EnemiesConfidence(matches)
		switch {
		case err == nil:
			m.Confidence = DefinedRatio(conf)
		case !errors.Is(err, ErrUndefinedRatio):
			return err
		}
		counter, err := r.CounterCoefficient(matches)
		switch {
		case err == nil:
			m.Counter = DefinedRatio(counter)
		case !errors.Is(err, ErrUndefinedRatio):
			return err
		}
		r.metrics = m
	default:
		return fmt.Errorf("rule kind %s: %w", r.kind, ErrConfig)
	}
	return nil
}

// SetMetrics injects precomputed metrics, for callers that cache results
// instead of rescanning tables. The variant must match the rule's kind.
func (r *Rule) SetMetrics(m Metrics) error {
	if m == nil {
		return fmt.Errorf("nil metrics: %w", ErrConfig)
	}
	if m.Kind() != r.kind {
		return fmt.Errorf("cannot set %s metrics on %s rule: %w", m.Kind(), r.kind, ErrConfig)
	}
	r.metrics = m
	return nil
}
