// Package transposition implements the shared position cache of the
// search engine: a bit-packed entry codec, a replacement policy engine,
// a bucketed concurrent table with lock-free probes, a single-lock
// reference table, and the age clock the replacement policies consult.
package transposition

import "github.com/fgantt/sente/shogi"

// Bound classifies a stored score relative to the true value.
type Bound uint8

const (
	// BoundNone is reserved: a packed word with bound 0 is the empty
	// sentinel, so a freshly zeroed slot is never a false hit.
	BoundNone Bound = iota
	BoundExact
	BoundLower // fail-high floor
	BoundUpper // fail-low ceiling
)

func (b Bound) String() string {
	switch b {
	case BoundExact:
		return "exact"
	case BoundLower:
		return "lower"
	case BoundUpper:
		return "upper"
	}
	return "none"
}

// Source records entry provenance. Book-seeded entries get preferential
// treatment during eviction.
type Source uint32

const (
	SourceMainSearch Source = iota
	SourceOpeningBook
)

// Record is the logical, pre-packing cache entry.
type Record struct {
	Hash    uint64
	Score   int32
	Depth   uint8
	Bound   Bound
	Move    shogi.Move
	HasMove bool
	Age     uint32
	Source  Source
}

// ScoreMax bounds the packable score range. Out-of-range scores are
// clamped, not rejected: mate-adjacent values may exceed normal bounds
// and availability beats precision there.
const (
	ScoreMax = 500000
	ScoreMin = -ScoreMax
)

// Bit schema of the packed word, low to high:
//
//	 0..19  score, biased by ScoreMax (20 bits)
//	20..27  depth (8 bits)
//	28..29  bound (2 bits; 0 = empty sentinel)
//	30      move presence
//	31..37  origin square, or dropOrigin for a drop (7 bits)
//	38..44  destination square (7 bits)
//	45..48  piece type (4 bits)
//	49      side
//	50      promotion flag
//	51      capture flag
//	52..63  unused
const (
	scoreMask  = 1<<20 - 1
	depthShift = 20
	boundShift = 28
	moveShift  = 30

	originShift  = 31
	destShift    = 38
	squareMask   = 0x7F
	pieceShift   = 45
	pieceMask    = 0xF
	sideShift    = 49
	promoShift   = 50
	captureShift = 51

	// dropOrigin is the sentinel origin distinguishing a drop from every
	// real square (squares run 0..80).
	dropOrigin = 0x7F
)

func clampScore(score int32) int32 {
	if score > ScoreMax {
		return ScoreMax
	}
	if score < ScoreMin {
		return ScoreMin
	}
	return score
}

// pack encodes score, depth, bound and the optional move into one word.
func pack(r *Record) uint64 {
	word := uint64(uint32(clampScore(r.Score)+ScoreMax)) & scoreMask
	word |= uint64(r.Depth) << depthShift
	word |= uint64(r.Bound&3) << boundShift
	if r.HasMove {
		word |= 1 << moveShift
		origin := uint64(dropOrigin)
		if !r.Move.IsDrop() {
			origin = uint64(r.Move.From) & squareMask
		}
		word |= origin << originShift
		word |= (uint64(r.Move.To) & squareMask) << destShift
		word |= (uint64(r.Move.Piece) & pieceMask) << pieceShift
		word |= uint64(r.Move.Color&1) << sideShift
		if r.Move.Promotion {
			word |= 1 << promoShift
		}
		if r.Move.Capture {
			word |= 1 << captureShift
		}
	}
	return word
}

// unpack rebuilds the logical record from a packed word plus the slot's
// separately stored hash, age and provenance.
func unpack(word, hash uint64, age uint32, source Source) Record {
	r := Record{
		Hash:   hash,
		Score:  int32(word&scoreMask) - ScoreMax,
		Depth:  packedDepth(word),
		Bound:  Bound(word >> boundShift & 3),
		Age:    age,
		Source: source,
	}
	if word>>moveShift&1 == 1 {
		r.HasMove = true
		origin := word >> originShift & squareMask
		r.Move.From = shogi.NoSquare
		if origin != dropOrigin {
			r.Move.From = shogi.Square(origin)
		}
		r.Move.To = shogi.Square(word >> destShift & squareMask)
		r.Move.Piece = shogi.PieceType(word >> pieceShift & pieceMask)
		r.Move.Color = shogi.Color(word >> sideShift & 1)
		r.Move.Promotion = word>>promoShift&1 == 1
		r.Move.Capture = word>>captureShift&1 == 1
	}
	return r
}

// packedValid reports whether the word holds an entry at all. The
// all-zero word (empty slot) has bound 0 and fails this check.
func packedValid(word uint64) bool {
	return word>>boundShift&3 != 0
}

func packedDepth(word uint64) uint8 {
	return uint8(word >> depthShift)
}
