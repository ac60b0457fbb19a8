package transposition

import "sync"

// refSlot mirrors slot without the atomics; the table-wide lock makes
// plain fields safe.
type refSlot struct {
	data   uint64
	key    uint64
	age    uint32
	source Source
}

// ReferenceTable is the single-lock variant of the cache: one RWMutex
// over the whole array, same packed codec and probe semantics as Table.
// It serves single-threaded search and doubles as the behavioral oracle
// for the bucketed table in tests.
type ReferenceTable struct {
	mu     sync.RWMutex
	slots  []refSlot
	mask   uint64
	policy Policy
	mgr    *Manager
	stats  *Stats
}

func NewReference(entries int, policy Policy, mgr *Manager, statistics bool) (*ReferenceTable, error) {
	if entries <= 0 {
		return nil, ErrZeroSize
	}
	if mgr == nil {
		mgr = NewManager(0)
	}
	n := nextPowerOfTwo(entries)
	return &ReferenceTable{
		slots:  make([]refSlot, n),
		mask:   uint64(n - 1),
		policy: policy,
		mgr:    mgr,
		stats:  newStats(statistics),
	}, nil
}

// Probe looks up hash under the read lock, with the same rejection rules
// as Table.Probe.
func (t *ReferenceTable) Probe(hash uint64, minDepth uint8) (Record, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	t.stats.addProbe(0)
	s := &t.slots[hash&t.mask]
	if s.key != hash || !packedValid(s.data) || packedDepth(s.data) < minDepth {
		t.stats.addMiss()
		return Record{}, false
	}
	rec := unpack(s.data, hash, s.age, s.source)
	t.stats.addHit()
	return rec, true
}

// Store offers rec under the write lock, arbitrated by the configured
// policy. Never fails.
func (t *ReferenceTable) Store(rec Record) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec.Age = t.mgr.Age()
	s := &t.slots[rec.Hash&t.mask]

	var incumbent *Record
	occupied := false
	if packedValid(s.data) {
		occupied = true
		inc := unpack(s.data, s.key, s.age, s.source)
		incumbent = &inc
	}
	if !apply(t.policy.Decide(incumbent, &rec), incumbent, &rec) {
		t.stats.addStore(false, 0)
		return
	}
	s.data = pack(&rec)
	s.key = rec.Hash
	s.age = rec.Age
	s.source = rec.Source
	t.stats.addStore(occupied, 0)
}

// Clear zeroes every slot.
func (t *ReferenceTable) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.slots)
}

// Stats returns a snapshot of the counters.
func (t *ReferenceTable) Stats() Snapshot {
	return t.stats.snapshot()
}

// Len returns the slot count.
func (t *ReferenceTable) Len() int {
	return len(t.slots)
}
