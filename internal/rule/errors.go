package rule

import "errors"

var (
	// ErrConfig reports a misconfigured rule or query: an unknown rule
	// kind, metrics set outside the rule's kind, or a win-support query
	// with no side constraint at all.
	ErrConfig = errors.New("rule configuration error")

	// ErrUndefinedRatio reports a ratio with a zero denominator. It is
	// distinct from a ratio that computes to zero: no supporting matches
	// exist, so the statistic has no value at all.
	ErrUndefinedRatio = errors.New("ratio undefined: zero denominator")
)
