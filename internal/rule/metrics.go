package rule

import "fmt"

// Ratio is a ratio statistic that may be undefined when its denominator is
// zero. The undefined state is explicit so callers can always tell "computed
// as zero" from "no supporting matches exist".
type Ratio struct {
	Value   float64
	Defined bool
}

func DefinedRatio(v float64) Ratio {
	return Ratio{Value: v, Defined: true}
}

// Float unwraps the ratio, reporting ErrUndefinedRatio when it has no value.
func (r Ratio) Float() (float64, error) {
	if !r.Defined {
		return 0, ErrUndefinedRatio
	}
	return r.Value, nil
}

func (r Ratio) String() string {
	if !r.Defined {
		return "undefined"
	}
	return fmt.Sprintf("%f", r.Value)
}

// Metrics is the result of evaluating a rule. Exactly one variant exists per
// rule kind; holding the metric pairs in separate types removes any chance
// of an allies rule carrying enemy statistics.
type Metrics interface {
	Kind() Kind
}

// AlliesMetrics are the statistics of an allies rule.
type AlliesMetrics struct {
	// Support is the fraction of winning rosters where the rule's heroes
	// appear together.
	Support Ratio
	// WinRate is, of all matches where the allied group co-occurred, the
	// fraction that were wins. Undefined when the group never co-occurs.
	WinRate Ratio
}

func (AlliesMetrics) Kind() Kind { return Allies }

// EnemiesMetrics are the statistics of an enemies (counter) rule.
type EnemiesMetrics struct {
	// Confidence estimates P(rhs wins | lhs loses). It can exceed 1.0
	// when lhs and rhs overlap or sit asymmetrically across seats; that
	// is a property of the data, not an error, and is never clamped.
	Confidence Ratio
	// Counter is the share of lhs wins among lhs/rhs head-to-head
	// matches. Undefined when the groups never meet.
	Counter Ratio
}

func (EnemiesMetrics) Kind() Kind { return Enemies }
