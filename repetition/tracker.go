// Package repetition classifies how often a position fingerprint has been
// seen on the current line of play. The tracker is advisory: it counts and
// classifies, and the search driver decides what a FourFold means.
package repetition

// State is the 4-way repetition classification folded into the position
// hash and consulted for draw detection.
type State uint8

const (
	None State = iota
	TwoFold
	ThreeFold
	FourFold // sennichite; a draw in standard rules
)

// NumStates is the number of distinct classifications.
const NumStates = 4

var stateNames = [NumStates]string{"none", "twofold", "threefold", "fourfold"}

func (s State) String() string {
	if int(s) >= NumStates {
		return "invalid"
	}
	return stateNames[s]
}

// DefaultMaxPlies bounds the history when the caller passes zero. Four
// repetitions of a cycle fit comfortably within it.
const DefaultMaxPlies = 256

// Tracker keeps a bounded history of recent position fingerprints along
// with per-fingerprint occurrence counts. It is owned by a single search
// line and is not safe for concurrent use.
type Tracker struct {
	history  []uint64
	counts   map[uint64]int
	maxPlies int
}

func NewTracker(maxPlies int) *Tracker {
	if maxPlies <= 0 {
		maxPlies = DefaultMaxPlies
	}
	return &Tracker{
		history:  make([]uint64, 0, maxPlies),
		counts:   make(map[uint64]int),
		maxPlies: maxPlies,
	}
}

// Push records a newly reached position. If the history is full the
// oldest entry falls off and its count is decremented.
func (t *Tracker) Push(hash uint64) {
	t.history = append(t.history, hash)
	t.counts[hash]++
	if len(t.history) > t.maxPlies {
		oldest := t.history[0]
		copy(t.history, t.history[1:])
		t.history = t.history[:len(t.history)-1]
		t.decrement(oldest)
	}
}

// Pop unwinds the most recent position, for search-tree backtracking.
func (t *Tracker) Pop() {
	n := len(t.history)
	if n == 0 {
		return
	}
	newest := t.history[n-1]
	t.history = t.history[:n-1]
	t.decrement(newest)
}

func (t *Tracker) decrement(hash uint64) {
	if c := t.counts[hash]; c <= 1 {
		delete(t.counts, hash)
	} else {
		t.counts[hash] = c - 1
	}
}

// Classify maps the occurrence count of hash to a State. Counts beyond
// four saturate at FourFold.
func (t *Tracker) Classify(hash uint64) State {
	switch c := t.counts[hash]; {
	case c >= 4:
		return FourFold
	case c == 3:
		return ThreeFold
	case c == 2:
		return TwoFold
	default:
		return None
	}
}

// IsDraw reports whether hash has reached draw-by-repetition.
func (t *Tracker) IsDraw(hash uint64) bool {
	return t.Classify(hash) == FourFold
}

// Len returns the current history length.
func (t *Tracker) Len() int {
	return len(t.history)
}

// Reset clears the tracker for a new game or search root.
func (t *Tracker) Reset() {
	t.history = t.history[:0]
	clear(t.counts)
}
