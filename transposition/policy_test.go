package transposition

import (
	"testing"

	"github.com/matryer/is"
)

func rec(depth uint8, age uint32, bound Bound, source Source) *Record {
	return &Record{Depth: depth, Age: age, Bound: bound, Source: source}
}

func TestEmptySlotAlwaysReplaces(t *testing.T) {
	is := is.New(t)
	cand := rec(1, 0, BoundUpper, SourceMainSearch)
	for _, p := range []Policy{AlwaysReplace, DepthPreferred, AgeBased, DepthAgeCombined} {
		is.Equal(p.Decide(nil, cand), Replace)
		is.Equal(p.Decide(&Record{}, cand), Replace)
	}
}

func TestPolicyTruthTable(t *testing.T) {
	cases := []struct {
		name      string
		policy    Policy
		incumbent *Record
		candidate *Record
		want      Decision
	}{
		{"always/shallower", AlwaysReplace,
			rec(9, 5, BoundExact, SourceMainSearch), rec(1, 1, BoundUpper, SourceMainSearch), Replace},
		{"depth/deeper", DepthPreferred,
			rec(5, 0, BoundExact, SourceMainSearch), rec(7, 0, BoundUpper, SourceMainSearch), Replace},
		{"depth/equal", DepthPreferred,
			rec(5, 0, BoundExact, SourceMainSearch), rec(5, 0, BoundUpper, SourceMainSearch), Replace},
		{"depth/shallower", DepthPreferred,
			rec(5, 0, BoundExact, SourceMainSearch), rec(3, 0, BoundExact, SourceMainSearch), Keep},
		{"age/newer", AgeBased,
			rec(9, 2, BoundExact, SourceMainSearch), rec(1, 3, BoundUpper, SourceMainSearch), Replace},
		{"age/same", AgeBased,
			rec(1, 2, BoundUpper, SourceMainSearch), rec(9, 2, BoundExact, SourceMainSearch), Keep},
		{"age/older", AgeBased,
			rec(1, 2, BoundUpper, SourceMainSearch), rec(9, 1, BoundExact, SourceMainSearch), Keep},
		{"combined/deeper", DepthAgeCombined,
			rec(5, 5, BoundExact, SourceMainSearch), rec(6, 1, BoundUpper, SourceMainSearch), Replace},
		{"combined/equal-depth-newer", DepthAgeCombined,
			rec(5, 1, BoundExact, SourceMainSearch), rec(5, 2, BoundUpper, SourceMainSearch), Replace},
		{"combined/equal-depth-same-age", DepthAgeCombined,
			rec(5, 2, BoundLower, SourceMainSearch), rec(5, 2, BoundExact, SourceMainSearch), ReplaceIfExact},
		{"combined/shallower-newer", DepthAgeCombined,
			rec(5, 1, BoundLower, SourceMainSearch), rec(3, 2, BoundExact, SourceMainSearch), ReplaceIfExact},
		{"combined/shallower-stale", DepthAgeCombined,
			rec(5, 2, BoundLower, SourceMainSearch), rec(3, 2, BoundExact, SourceMainSearch), Keep},
		{"combined/book-incumbent-deeper-cand", DepthAgeCombined,
			rec(4, 0, BoundExact, SourceOpeningBook), rec(6, 9, BoundUpper, SourceMainSearch), Replace},
		{"combined/book-incumbent-equal-cand", DepthAgeCombined,
			rec(4, 0, BoundExact, SourceOpeningBook), rec(4, 9, BoundUpper, SourceMainSearch), ReplaceIfExact},
		{"combined/book-vs-book", DepthAgeCombined,
			rec(4, 0, BoundExact, SourceOpeningBook), rec(6, 0, BoundExact, SourceOpeningBook), Replace},
	}
	for _, tc := range cases {
		got := tc.policy.Decide(tc.incumbent, tc.candidate)
		if got != tc.want {
			t.Errorf("%s: got %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestApplyReplaceIfExact(t *testing.T) {
	is := is.New(t)
	exact := rec(3, 0, BoundExact, SourceMainSearch)
	lower := rec(3, 0, BoundLower, SourceMainSearch)
	exactInc := rec(5, 0, BoundExact, SourceMainSearch)

	is.True(apply(ReplaceIfExact, lower, exact))      // exact displaces non-exact
	is.True(!apply(ReplaceIfExact, exactInc, exact))  // never displaces an exact incumbent
	is.True(!apply(ReplaceIfExact, lower, lower))     // loose candidate cannot displace
	is.True(apply(Replace, exactInc, lower))          // unconditional
	is.True(!apply(Keep, lower, exact))
}
