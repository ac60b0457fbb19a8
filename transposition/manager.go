package transposition

import "sync/atomic"

// DefaultAgeInterval is how many reported search events advance the
// generation by one when the caller passes zero.
const DefaultAgeInterval = 1 << 16

// Manager owns the process-wide age clock: a monotonic generation the
// replacement policies use to prefer fresher entries. The search driver
// reports event counts (typically node counts) and the manager advances
// the generation every interval events. One manager is shared by every
// table and search lane; all methods are safe for concurrent use.
type Manager struct {
	age      atomic.Uint32
	events   atomic.Uint64
	interval uint64
}

func NewManager(eventInterval uint64) *Manager {
	if eventInterval == 0 {
		eventInterval = DefaultAgeInterval
	}
	return &Manager{interval: eventInterval}
}

// Age returns the current generation.
func (m *Manager) Age() uint32 {
	return m.age.Load()
}

// IncrementAge adds eventCount to the running event total and advances
// the generation when the total crosses interval boundaries. The
// generation never moves backwards.
func (m *Manager) IncrementAge(eventCount uint64) {
	total := m.events.Add(eventCount)
	want := uint32(total / m.interval)
	for {
		cur := m.age.Load()
		if want <= cur || m.age.CompareAndSwap(cur, want) {
			return
		}
	}
}

// Reset rewinds the clock for a new game.
func (m *Manager) Reset() {
	m.events.Store(0)
	m.age.Store(0)
}
