// Package book is the seam to the opening-book collaborator. The cache
// only needs a book's best-move entries keyed by position fingerprint;
// the book's on-disk format and lazy-loading machinery live elsewhere.
package book

import "github.com/fgantt/sente/shogi"

// Entry is one book line head: a position fingerprint, the book's best
// move there, and its assessed score.
type Entry struct {
	Hash  uint64
	Move  shogi.Move
	Score int32
}

// Book yields best-move entries for table prefill.
type Book interface {
	Entries() []Entry
}

// MemoryBook is an in-memory Book, useful for tests and for callers that
// assemble entries themselves.
type MemoryBook struct {
	entries []Entry
}

func NewMemoryBook() *MemoryBook {
	return &MemoryBook{}
}

// Add appends one entry. Duplicate hashes are kept; later entries win at
// prefill time since bulk loads replace unconditionally.
func (b *MemoryBook) Add(hash uint64, mv shogi.Move, score int32) {
	b.entries = append(b.entries, Entry{Hash: hash, Move: mv, Score: score})
}

func (b *MemoryBook) Entries() []Entry {
	return b.entries
}

func (b *MemoryBook) Len() int {
	return len(b.entries)
}
