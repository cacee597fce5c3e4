package draft

import (
	"sort"
	"strings"
)

// HeroSet is a set of hero identifiers.
type HeroSet map[string]struct{}

func NewHeroSet(heroes ...string) HeroSet {
	s := make(HeroSet, len(heroes))
	for _, h := range heroes {
		s[h] = struct{}{}
	}
	return s
}

func (s HeroSet) Has(hero string) bool {
	_, ok := s[hero]
	return ok
}

func (s HeroSet) Len() int {
	return len(s)
}

// Union returns a new set holding the members of both sets.
func (s HeroSet) Union(other HeroSet) HeroSet {
	u := make(HeroSet, len(s)+len(other))
	for h := range s {
		u[h] = struct{}{}
	}
	for h := range other {
		u[h] = struct{}{}
	}
	return u
}

func (s HeroSet) String() string {
	names := make([]string, 0, len(s))
	for h := range s {
		names = append(names, h)
	}
	sort.Strings(names)
	return "{" + strings.Join(names, " ") + "}"
}

// CountMembership reports how many of the given slots hold a member of set.
// It is pure and O(len(slots)); the result never exceeds
// min(len(slots), set.Len()) when the slots are distinct.
func CountMembership(slots []string, set HeroSet) int {
	n := 0
	for _, h := range slots {
		if _, ok := set[h]; ok {
			n++
		}
	}
	return n
}
