package transposition

import "sync/atomic"

// Stats accumulates table counters on atomics. A disabled Stats keeps
// every method a cheap no-op and snapshots to zeroes, so call sites never
// branch on whether statistics were requested.
type Stats struct {
	enabled bool

	probes           atomic.Uint64
	hits             atomic.Uint64
	misses           atomic.Uint64
	stores           atomic.Uint64
	replacements     atomic.Uint64
	atomicOps        atomic.Uint64
	poisonRecoveries atomic.Uint64
}

func newStats(enabled bool) *Stats {
	return &Stats{enabled: enabled}
}

func (s *Stats) addProbe(atomicOps uint64) {
	if !s.enabled {
		return
	}
	s.probes.Add(1)
	s.atomicOps.Add(atomicOps)
}

func (s *Stats) addHit() {
	if s.enabled {
		s.hits.Add(1)
	}
}

func (s *Stats) addMiss() {
	if s.enabled {
		s.misses.Add(1)
	}
}

func (s *Stats) addStore(replaced bool, atomicOps uint64) {
	if !s.enabled {
		return
	}
	s.stores.Add(1)
	s.atomicOps.Add(atomicOps)
	if replaced {
		s.replacements.Add(1)
	}
}

func (s *Stats) addPoisonRecovery() {
	if s.enabled {
		s.poisonRecoveries.Add(1)
	}
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	TotalProbes      uint64
	Hits             uint64
	Misses           uint64
	Stores           uint64
	Replacements     uint64
	AtomicOperations uint64
	PoisonRecoveries uint64
	HitRate          float64
}

func (s *Stats) snapshot() Snapshot {
	if !s.enabled {
		return Snapshot{}
	}
	snap := Snapshot{
		TotalProbes:      s.probes.Load(),
		Hits:             s.hits.Load(),
		Misses:           s.misses.Load(),
		Stores:           s.stores.Load(),
		Replacements:     s.replacements.Load(),
		AtomicOperations: s.atomicOps.Load(),
		PoisonRecoveries: s.poisonRecoveries.Load(),
	}
	if snap.TotalProbes > 0 {
		snap.HitRate = float64(snap.Hits) / float64(snap.TotalProbes)
	}
	return snap
}
