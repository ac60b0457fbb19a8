package transposition

// Policy selects how Store arbitrates between an incumbent entry and a
// candidate for the same slot.
type Policy uint8

const (
	// AlwaysReplace overwrites unconditionally. Used for age-blind bulk
	// loads such as book prefill.
	AlwaysReplace Policy = iota
	// DepthPreferred replaces iff the candidate searched at least as deep.
	DepthPreferred
	// AgeBased replaces iff the candidate comes from a newer generation.
	AgeBased
	// DepthAgeCombined prefers depth and falls back to age at equal
	// depth. This is the default for live search.
	DepthAgeCombined
)

func (p Policy) String() string {
	switch p {
	case AlwaysReplace:
		return "always-replace"
	case DepthPreferred:
		return "depth-preferred"
	case AgeBased:
		return "age-based"
	case DepthAgeCombined:
		return "depth-age-combined"
	}
	return "unknown"
}

// Decision is the three-way outcome of a replacement arbitration.
type Decision uint8

const (
	Keep Decision = iota
	Replace
	// ReplaceIfExact replaces only when the candidate carries an exact
	// bound and the incumbent does not, so a shallow re-search cannot
	// clobber a tight bound with a loose one.
	ReplaceIfExact
)

// Decide arbitrates between incumbent and candidate. A nil or empty
// incumbent always yields Replace. Pure function: no locking, no I/O.
func (p Policy) Decide(incumbent, candidate *Record) Decision {
	if incumbent == nil || incumbent.Bound == BoundNone {
		return Replace
	}
	switch p {
	case DepthPreferred:
		if candidate.Depth >= incumbent.Depth {
			return Replace
		}
		return Keep
	case AgeBased:
		if candidate.Age > incumbent.Age {
			return Replace
		}
		return Keep
	case DepthAgeCombined:
		if incumbent.Source == SourceOpeningBook && candidate.Source != SourceOpeningBook {
			// Book seeds survive unless the search went strictly deeper
			// or proved an exact score.
			if candidate.Depth > incumbent.Depth {
				return Replace
			}
			return ReplaceIfExact
		}
		if candidate.Depth > incumbent.Depth {
			return Replace
		}
		if candidate.Depth == incumbent.Depth {
			if candidate.Age > incumbent.Age {
				return Replace
			}
			return ReplaceIfExact
		}
		if candidate.Age > incumbent.Age {
			return ReplaceIfExact
		}
		return Keep
	}
	return Replace
}

// apply resolves a Decision against the incumbent's bound.
func apply(d Decision, incumbent, candidate *Record) bool {
	switch d {
	case Replace:
		return true
	case ReplaceIfExact:
		return candidate.Bound == BoundExact &&
			(incumbent == nil || incumbent.Bound != BoundExact)
	}
	return false
}
