// Package predict ranks proposed drafts: it turns a 5v5 matchup into a
// feature vector of association-rule statistics and feeds it to a small
// neural net trained on the historical match table.
package predict

import (
	"sync"

	"github.com/baiwei2018/dota2-analysis/internal/draft"
	"github.com/baiwei2018/dota2-analysis/internal/rule"
)

const vectorSize = 4

// neutral values used when a hero pair has no supporting data
const (
	neutralRatio   = 0.5
	neutralSupport = 0.0
)

type pairKey struct {
	a, b string
}

func alliesKey(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{a, b}
}

// Features computes and caches per-pair rule metrics over fixed tables.
// Safe for concurrent use.
type Features struct {
	win     rule.SideTable
	lose    rule.SideTable
	matches rule.MatchTable

	mu         sync.Mutex
	allies     map[pairKey][2]float64 // support, win rate
	counter    map[pairKey]float64
	confidence map[pairKey]float64
}

func NewFeatures(win, lose rule.SideTable, matches rule.MatchTable) *Features {
	return &Features{
		win:        win,
		lose:       lose,
		matches:    matches,
		allies:     make(map[pairKey][2]float64),
		counter:    make(map[pairKey]float64),
		confidence: make(map[pairKey]float64),
	}
}

// Vector builds the model input for a proposed matchup: pairwise ally
// support and win-rate deltas between the sides, and how strongly the
// radiant picks counter the dire picks head to head.
func (f *Features) Vector(radiant, dire [draft.SideSize]string) []float64 {
	rSupport, rRate := f.sideAllies(radiant)
	dSupport, dRate := f.sideAllies(dire)
	return []float64{
		rSupport - dSupport,
		rRate - dRate,
		f.crossCounter(radiant, dire) - neutralRatio,
		f.crossConfidence(radiant, dire) - f.crossConfidence(dire, radiant),
	}
}

// sideAllies averages the allied support and win rate over the 10 hero
// pairs within one side.
func (f *Features) sideAllies(side [draft.SideSize]string) (support, rate float64) {
	n := 0
	for i := 0; i < len(side); i++ {
		for j := i + 1; j < len(side); j++ {
			m := f.alliesPair(side[i], side[j])
			support += m[0]
			rate += m[1]
			n++
		}
	}
	return support / float64(n), rate / float64(n)
}

// crossCounter averages CounterCoefficient(a, d) over the 25 cross pairs.
func (f *Features) crossCounter(a, d [draft.SideSize]string) float64 {
	sum := 0.0
	for _, ah := range a {
		for _, dh := range d {
			sum += f.counterPair(ah, dh)
		}
	}
	return sum / float64(len(a)*len(d))
}

func (f *Features) alliesPair(a, b string) [2]float64 {
	key := alliesKey(a, b)
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.allies[key]; ok {
		return m
	}
	m := [2]float64{neutralSupport, neutralRatio}
	r, err := rule.New(draft.NewHeroSet(a), draft.NewHeroSet(b), rule.Allies)
	if err == nil {
		if support, err := r.AlliesSupport(f.win); err == nil {
			m[0] = support
		}
		if rate, err := r.AlliesWinRate(f.win, f.lose); err == nil {
			m[1] = rate
		}
	}
	f.allies[key] = m
	return m
}

func (f *Features) counterPair(a, b string) float64 {
	key := pairKey{a, b}
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.counter[key]; ok {
		return c
	}
	c := neutralRatio
	r, err := rule.New(draft.NewHeroSet(a), draft.NewHeroSet(b), rule.Enemies)
	if err == nil {
		if coeff, err := r.CounterCoefficient(f.matches); err == nil {
			c = coeff
		}
	}
	f.counter[key] = c
	return c
}

// crossConfidence averages P(a_i wins | d_j loses) over the cross pairs.
func (f *Features) crossConfidence(a, d [draft.SideSize]string) float64 {
	sum := 0.0
	for _, ah := range a {
		for _, dh := range d {
			sum += f.confidencePair(ah, dh)
		}
	}
	return sum / float64(len(a)*len(d))
}

// confidencePair is EnemiesConfidence of the rule "loser loses => winner
// wins", i.e. P(winner's side wins | loser's side loses).
func (f *Features) confidencePair(winner, loser string) float64 {
	key := pairKey{winner, loser}
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.confidence[key]; ok {
		return c
	}
	c := neutralRatio
	r, err := rule.New(draft.NewHeroSet(loser), draft.NewHeroSet(winner), rule.Enemies)
	if err == nil {
		if conf, err := r.EnemiesConfidence(f.matches); err == nil {
			c = conf
		}
	}
	f.confidence[key] = c
	return c
}
