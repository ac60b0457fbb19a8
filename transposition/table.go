package transposition

import (
	"errors"
	"math"
	"math/bits"
	"sync"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/fgantt/sente/book"
)

// slotBytes is the in-memory footprint of one slot, used when sizing the
// table from a fraction of system memory.
const slotBytes = 24

// slot is one table cell. Each field is independently atomic; the
// hash-key equality check on probe gates acceptance of the rest, so a
// torn read across fields degrades to a miss, never to corruption.
type slot struct {
	data   atomic.Uint64
	key    atomic.Uint64
	age    atomic.Uint32
	source atomic.Uint32
}

// bucket guards writes to one hash sub-range. writing is the
// poison-detection flag: it is raised before a writer mutates slots and
// lowered only on clean completion, so the next acquirer can tell whether
// the previous holder died mid-update.
type bucket struct {
	mu      sync.RWMutex
	writing atomic.Bool
}

// Options configures a Table. Exactly one of Entries and MemFraction
// should be set; Entries and Buckets are rounded up to powers of two.
type Options struct {
	Entries     int
	MemFraction float64
	Buckets     int
	Statistics  bool
	Prefetching bool
	Policy      Policy
}

var (
	ErrZeroSize    = errors.New("transposition: table size must be nonzero")
	ErrZeroBuckets = errors.New("transposition: bucket count must be nonzero")
)

// Table is the bucketed concurrent position cache. Probes are lock-free;
// stores briefly hold one of the bucket locks. A single Table instance is
// shared by all search lanes.
type Table struct {
	slots   []slot
	buckets []bucket

	sizeMask    uint64
	bucketShift uint
	policy      Policy
	mgr         *Manager
	stats       *Stats
	prefetch    bool

	// storeHook runs inside the write critical section when set. Test
	// seam for simulating a writer dying mid-update.
	storeHook func()
}

// New allocates a table. Slots are allocated once here and overwritten in
// place for the life of the process.
func New(opts Options, mgr *Manager) (*Table, error) {
	numElems, err := sizeFromOptions(opts)
	if err != nil {
		return nil, err
	}
	if opts.Buckets <= 0 {
		return nil, ErrZeroBuckets
	}
	numBuckets := nextPowerOfTwo(opts.Buckets)
	if mgr == nil {
		mgr = NewManager(0)
	}

	t := &Table{
		slots:   make([]slot, numElems),
		buckets: make([]bucket, numBuckets),
		// index from the low bits, bucket from the high bits, so bucket
		// contention does not correlate with index collisions.
		sizeMask:    uint64(numElems - 1),
		bucketShift: uint(64 - bits.TrailingZeros(uint(numBuckets))),
		policy:      opts.Policy,
		mgr:         mgr,
		stats:       newStats(opts.Statistics),
		prefetch:    opts.Prefetching,
	}

	log.Info().Int("num-elems", numElems).
		Int("num-buckets", numBuckets).
		Int("estimated-total-memory-bytes", numElems*slotBytes).
		Str("policy", opts.Policy.String()).
		Bool("statistics", opts.Statistics).
		Msg("transposition-table-size")
	return t, nil
}

func sizeFromOptions(opts Options) (int, error) {
	if opts.Entries > 0 {
		return nextPowerOfTwo(opts.Entries), nil
	}
	if opts.MemFraction > 0 {
		desiredNElems := opts.MemFraction * (float64(memory.TotalMemory()) / float64(slotBytes))
		power := int(math.Log2(desiredNElems))
		if power < 10 {
			power = 10
		}
		return 1 << power, nil
	}
	return 0, ErrZeroSize
}

func nextPowerOfTwo(n int) int {
	if n&(n-1) == 0 {
		return n
	}
	return 1 << bits.Len(uint(n))
}

func (t *Table) bucketFor(hash uint64) *bucket {
	return &t.buckets[hash>>t.bucketShift]
}

// Probe looks up hash, never blocking. It returns a miss on an empty
// slot, a key mismatch, or a stored depth below minDepth.
//
// A probe racing a store on the same slot may see the pre- or post-store
// state. A matching key with other fields mid-rewrite is possible and
// accepted: the packed word is decoded as a whole, so the worst case is a
// rare spurious miss or a stale-but-well-formed entry, never a torn one.
func (t *Table) Probe(hash uint64, minDepth uint8) (Record, bool) {
	t.stats.addProbe(2)
	s := &t.slots[hash&t.sizeMask]
	if s.key.Load() != hash {
		t.stats.addMiss()
		return Record{}, false
	}
	word := s.data.Load()
	if !packedValid(word) || packedDepth(word) < minDepth {
		t.stats.addMiss()
		return Record{}, false
	}
	rec := unpack(word, hash, s.age.Load(), Source(s.source.Load()))
	t.stats.addHit()
	return rec, true
}

// ProbeWithPrefetch behaves exactly like Probe and additionally touches
// the slot of nextHash so its cache line is warm for the following probe.
// A zero nextHash skips the hint.
func (t *Table) ProbeWithPrefetch(hash uint64, minDepth uint8, nextHash uint64) (Record, bool) {
	if t.prefetch && nextHash != 0 {
		// Go has no portable prefetch intrinsic; an atomic load of the
		// key word pulls the line into cache and is otherwise free.
		_ = t.slots[nextHash&t.sizeMask].key.Load()
	}
	return t.Probe(hash, minDepth)
}

// Store offers rec to the table under the configured policy. It never
// fails; the worst case is silently keeping the incumbent. The candidate
// is stamped with the current generation before arbitration.
func (t *Table) Store(rec Record) {
	b := t.bucketFor(rec.Hash)
	b.mu.Lock()
	defer b.mu.Unlock()
	t.enterCritical(b, rec.Hash)
	t.storeLocked(&rec, t.policy)
	b.writing.Store(false)
}

// StoreBatch stores many records, grouping them by bucket first so each
// bucket lock is taken at most once.
func (t *Table) StoreBatch(recs []Record) {
	t.storeBatch(recs, t.policy)
}

func (t *Table) storeBatch(recs []Record, pol Policy) {
	grouped := make([][]Record, len(t.buckets))
	for _, rec := range recs {
		bi := rec.Hash >> t.bucketShift
		grouped[bi] = append(grouped[bi], rec)
	}
	for bi, group := range grouped {
		if len(group) == 0 {
			continue
		}
		t.storeGroup(&t.buckets[bi], group, pol)
	}
}

// storeGroup writes one bucket's share of a batch. The unlock is
// deferred so a writer that panics mid-batch releases the mutex and
// leaves only the raised writing flag behind, same as Store.
func (t *Table) storeGroup(b *bucket, group []Record, pol Policy) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t.enterCritical(b, group[0].Hash)
	for i := range group {
		t.storeLocked(&group[i], pol)
	}
	b.writing.Store(false)
}

// enterCritical raises the bucket's in-progress flag. Finding it already
// raised means the previous writer panicked before lowering it: the slot
// words underneath are last-writer-wins atomics and therefore still
// well-formed, so we take over the bucket, log, and count the recovery.
func (t *Table) enterCritical(b *bucket, hash uint64) {
	if b.writing.Swap(true) {
		log.Warn().Uint64("hash", hash).
			Msg("recovered poisoned bucket lock; previous writer did not complete")
		t.stats.addPoisonRecovery()
	}
}

// storeLocked applies the replacement decision to the target slot. The
// caller holds the bucket's write lock. Slot fields stay atomic because
// probes read them without the lock; data is written before key so a
// probe matching the new key observes the new payload.
func (t *Table) storeLocked(rec *Record, pol Policy) {
	rec.Age = t.mgr.Age()
	s := &t.slots[rec.Hash&t.sizeMask]

	var incumbent *Record
	occupied := false
	if word := s.data.Load(); packedValid(word) {
		occupied = true
		inc := unpack(word, s.key.Load(), s.age.Load(), Source(s.source.Load()))
		incumbent = &inc
	}
	if t.storeHook != nil {
		t.storeHook()
	}
	if !apply(pol.Decide(incumbent, rec), incumbent, rec) {
		t.stats.addStore(false, 0)
		return
	}
	s.data.Store(pack(rec))
	s.age.Store(rec.Age)
	s.source.Store(uint32(rec.Source))
	s.key.Store(rec.Hash)
	t.stats.addStore(occupied, 4)
}

// Clear zeroes every slot. It acquires every bucket lock so no write is
// in flight anywhere; this is the one totally serialized operation.
func (t *Table) Clear() {
	for i := range t.buckets {
		t.buckets[i].mu.Lock()
		t.enterCritical(&t.buckets[i], 0)
	}
	for i := range t.slots {
		s := &t.slots[i]
		// data first: a concurrent probe then sees a stale key with an
		// invalid payload, which reads as a miss.
		s.data.Store(0)
		s.key.Store(0)
		s.age.Store(0)
		s.source.Store(0)
	}
	log.Info().Int("num-elems", len(t.slots)).Msg("transposition-table-cleared")
	for i := len(t.buckets) - 1; i >= 0; i-- {
		t.buckets[i].writing.Store(false)
		t.buckets[i].mu.Unlock()
	}
}

// PrefillFromBook bulk-seeds the table from an opening book's best-move
// entries at the given nominal depth. Entries are stored age-blind
// (AlwaysReplace) and tagged SourceOpeningBook so replacement can favor
// them later. Returns the number of records written.
func (t *Table) PrefillFromBook(b book.Book, depth uint8) int {
	entries := b.Entries()
	recs := make([]Record, 0, len(entries))
	for _, e := range entries {
		recs = append(recs, Record{
			Hash:    e.Hash,
			Score:   e.Score,
			Depth:   depth,
			Bound:   BoundExact,
			Move:    e.Move,
			HasMove: true,
			Source:  SourceOpeningBook,
		})
	}
	t.storeBatch(recs, AlwaysReplace)
	log.Info().Int("entries", len(recs)).Uint8("depth", depth).
		Msg("prefilled-from-book")
	return len(recs)
}

// Stats returns a snapshot of the counters, all zero when statistics were
// disabled at construction.
func (t *Table) Stats() Snapshot {
	return t.stats.snapshot()
}

// Len returns the slot count.
func (t *Table) Len() int {
	return len(t.slots)
}

// NumBuckets returns the lock bucket count.
func (t *Table) NumBuckets() int {
	return len(t.buckets)
}
